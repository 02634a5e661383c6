package multiplayer

// Event reports a session change the game loop must react to.
type Event interface {
	sessionEvent()
}

// MatchedEvent is raised on the side that answered a StartMultiplayer.
// That side runs the first leg.
type MatchedEvent struct {
	PartnerID string
}

func (MatchedEvent) sessionEvent() {}

// PartnerFoundEvent is raised on the side that asked for a partner. It keeps
// waiting until the partner's leg ends.
type PartnerFoundEvent struct {
	PartnerID string
}

func (PartnerFoundEvent) sessionEvent() {}

// YieldEvent is raised when both sides claimed the first leg and this side
// lost the tie-break. It must stop running and wait.
type YieldEvent struct {
	PartnerID string
}

func (YieldEvent) sessionEvent() {}

// PartnerDiedEvent hands the relay to this side.
type PartnerDiedEvent struct {
	PartnerID string
	Score     int
	Ability   float64
}

func (PartnerDiedEvent) sessionEvent() {}

// FallbackSoloEvent is raised when the handshake gave up after Retries
// unanswered announcements.
type FallbackSoloEvent struct {
	Retries int
}

func (FallbackSoloEvent) sessionEvent() {}
