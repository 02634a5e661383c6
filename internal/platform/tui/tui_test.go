package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/skyjump/internal/bus"
	"github.com/vovakirdan/skyjump/internal/config"
	"github.com/vovakirdan/skyjump/internal/core"
	"github.com/vovakirdan/skyjump/internal/storage"
)

var (
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyCtrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

func TestTicksFor(t *testing.T) {
	tests := []struct {
		d    time.Duration
		rate int
		want int
	}{
		{550 * time.Millisecond, 60, 33},
		{time.Second, 60, 60},
		{2 * time.Second, 30, 60},
		{10 * time.Millisecond, 60, 1},
		{0, 60, 0},
		{time.Second, 0, 60},
	}
	for _, tt := range tests {
		if got := ticksFor(tt.d, tt.rate); got != tt.want {
			t.Errorf("ticksFor(%v, %d) = %d, want %d", tt.d, tt.rate, got, tt.want)
		}
	}
}

func TestKeyMapperMapKey(t *testing.T) {
	km := NewKeyMapper(60)
	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{keyLeft, core.ActionLeft, false},
		{runeKey('a'), core.ActionLeft, false},
		{keyRight, core.ActionRight, false},
		{runeKey('d'), core.ActionRight, false},
		{runeKey(' '), core.ActionAbility, false},
		{keyEnter, core.ActionConfirm, false},
		{runeKey('r'), core.ActionRestart, false},
		{runeKey('p'), core.ActionPause, false},
		{runeKey('q'), core.ActionBack, false},
		{keyCtrlC, core.ActionQuit, true},
		{runeKey('z'), core.ActionNone, false},
	}
	for _, tt := range tests {
		action, quit := km.MapKey(tt.msg)
		if action != tt.action || quit != tt.quit {
			t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
		}
	}
}

func TestKeyMapperSteering(t *testing.T) {
	km := NewKeyMapper(60)

	f := core.NewInputFrame()
	km.MapKeyToFrame(keyLeft, &f)
	if !f.Has(core.ActionLeft) {
		t.Fatal("first left should press")
	}

	// Terminal auto-repeat
	f = core.NewInputFrame()
	km.MapKeyToFrame(keyLeft, &f)
	if f.Has(core.ActionLeft) {
		t.Error("a repeated key should not press again")
	}

	f = core.NewInputFrame()
	km.MapKeyToFrame(keyRight, &f)
	if !f.Has(core.ActionRight) || !f.WasReleased(core.ActionLeft) {
		t.Error("reversing should release left and press right")
	}

	released := -1
	for i := 0; i < 100; i++ {
		f = core.NewInputFrame()
		km.Tick(&f)
		if f.WasReleased(core.ActionRight) {
			released = i
			break
		}
	}
	if released < 10 {
		t.Errorf("right released after %d ticks, want it held through the repeat delay", released)
	}
}

func TestModelKeys(t *testing.T) {
	m := NewModel(ModelOptions{Config: config.DefaultJumperConfig(), Runtime: testRuntime()})
	m.Init()

	next, cmd := m.Update(runeKey('q'))
	back := next.(Model)
	if !back.WentBack() || cmd == nil {
		t.Error("q outside a session should leave the program")
	}

	m.embedded = true
	next, cmd = m.Update(runeKey('q'))
	if !next.(Model).WentBack() || cmd != nil {
		t.Error("q inside a session should return to the menu without quitting")
	}

	next, _ = m.Update(keyCtrlC)
	if !next.(Model).quitting {
		t.Error("ctrl+c should quit")
	}
}

func TestModelTicks(t *testing.T) {
	cfg := config.DefaultJumperConfig()
	cfg.CountdownTicks = 0
	m := NewModel(ModelOptions{Config: cfg, Runtime: testRuntime()})
	m.Init()

	var model tea.Model = m
	for range 30 {
		var cmd tea.Cmd
		model, cmd = model.Update(TickMsg(time.Now()))
		if cmd == nil {
			t.Fatal("tick should schedule the next tick")
		}
	}
	if got := model.(Model).Game().Phase().String(); got != "running" {
		t.Errorf("phase = %s, want running", got)
	}
	if model.View() == "" {
		t.Error("view should render the game")
	}
}

func TestModelRecordsSoloScore(t *testing.T) {
	store := openStore(t)
	m := NewModel(ModelOptions{
		Config:  config.DefaultJumperConfig(),
		Runtime: testRuntime(),
		Store:   store,
		Player:  "alice",
	})
	m.Init()
	m.gameState.Score = 42
	m.recordDeath()

	scores, err := store.TopScores(storage.ModeSolo, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 || scores[0].Score != 42 || scores[0].Player != "alice" {
		t.Errorf("scores = %+v, want one solo climb of 42 by alice", scores)
	}
}

func TestModelRecordsRelayLeg(t *testing.T) {
	store := openStore(t)
	cfg := config.DefaultJumperConfig()
	cfg.Multiplayer.Transport = bus.TransportMemory

	rig, err := NewRig(context.Background(), RigOptions{
		Config:    cfg,
		TickRate:  60,
		Relay:     true,
		NoDevices: true,
	})
	if err != nil {
		t.Fatalf("NewRig: %v", err)
	}
	t.Cleanup(func() { rig.Close() })

	m := NewModel(ModelOptions{Config: cfg, Runtime: testRuntime(), Rig: rig, Store: store})
	m.Init()
	m.gameState.Score = 17
	m.recordDeath()

	legs, err := store.RecentRelayLegs(rig.SessionID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(legs) != 1 || legs[0].EndScore != 17 || legs[0].StartScore != 0 {
		t.Errorf("legs = %+v, want one leg from 0 to 17", legs)
	}
	best, err := store.HighScore(storage.ModeRelay)
	if err != nil || best != 17 {
		t.Errorf("relay high score = %d, %v; want 17", best, err)
	}
}

func TestRigWithoutRelay(t *testing.T) {
	rig, err := NewRig(context.Background(), RigOptions{Config: config.DefaultJumperConfig(), NoDevices: true})
	if err != nil {
		t.Fatal(err)
	}
	if rig.Coordinator() != nil {
		t.Error("solo rig should have no coordinator")
	}
	if _, ok := rig.Sensor.ReadFingerCount(); ok {
		t.Error("rig without devices should have no sensor readings")
	}
	if err := rig.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := rig.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(nil, testRuntime())

	next, _ := m.Update(keyDown)
	next, cmd := next.Update(keyEnter)
	menu := next.(MenuModel)
	if menu.Selected() == nil || menu.Selected().Choice != ChoiceRelay {
		t.Fatalf("selected = %+v, want relay race", menu.Selected())
	}
	if cmd == nil || menu.IsQuitting() {
		t.Error("selecting a game should end the menu without quitting")
	}

	next, _ = m.Update(keyTab)
	if sel := next.(MenuModel).Selected(); sel == nil || sel.Choice != ChoiceScores {
		t.Error("tab should open the scoreboard")
	}
}

func TestScoreboardBoards(t *testing.T) {
	store := openStore(t)
	for _, s := range []int{10, 30, 20} {
		if _, err := store.SaveScore(storage.ModeSolo, "bob", s); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := store.SaveRelayLeg(storage.RelayLeg{SessionID: "s1", PartnerID: "p1", EndScore: 12}); err != nil {
		t.Fatal(err)
	}

	m := NewScoreboardModel(store, 100, 30)
	if len(m.rows) != 3 || m.rows[0][1] != "30 m" {
		t.Fatalf("solo rows = %v, want 3 rows led by 30 m", m.rows)
	}
	if m.stats == nil || m.stats.Best != 30 {
		t.Errorf("stats = %+v, want best 30", m.stats)
	}

	next, _ := m.Update(keyTab)
	m = next.(ScoreboardModel)
	if m.current != boardRelay || len(m.rows) != 0 {
		t.Errorf("relay board = %v with %d rows, want empty", m.current, len(m.rows))
	}

	next, _ = m.Update(keyTab)
	m = next.(ScoreboardModel)
	if m.current != boardLegs || len(m.rows) != 1 {
		t.Errorf("legs board = %v with %d rows, want 1", m.current, len(m.rows))
	}
	if m.View() == "" {
		t.Error("view should render")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColor(0, 0, "ab", core.ColorGreen)
	s.SetColor(4, 1, '@', core.Color(200))

	out := RenderScreen(s)
	for _, want := range []string{"ab", "@"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered %q, want it to contain %q", out, want)
		}
	}
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("rendered %d line breaks, want 1", got)
	}
}
