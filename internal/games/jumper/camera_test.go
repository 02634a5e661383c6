package jumper

import (
	"testing"

	"github.com/vovakirdan/skyjump/internal/core"
)

func TestCameraOnlyMovesUp(t *testing.T) {
	cam := NewCamera(800, 0.5)
	target := core.NewBox(0, 300, 10, 10)

	cam.Update(target)
	// desired = 300 + 5 - 400 = -95, half of it covered.
	if got := cam.Y(); got != -47.5 {
		t.Fatalf("Y() = %v, want -47.5", got)
	}

	prev := cam.Y()
	cam.Update(core.NewBox(0, 700, 10, 10))
	if cam.Y() != prev {
		t.Errorf("camera moved down to %v", cam.Y())
	}

	for i := 0; i < 100; i++ {
		cam.Update(target)
		if cam.Y() > prev {
			t.Fatalf("camera moved down to %v", cam.Y())
		}
		prev = cam.Y()
	}
	if cam.Y() < -95 {
		t.Errorf("camera overshot to %v", cam.Y())
	}
}

func TestCameraResetAndToScreen(t *testing.T) {
	cam := NewCamera(800, 1)
	cam.Update(core.NewBox(0, -1000, 10, 10))
	b := core.NewBox(5, -900, 10, 10)
	want := b.Y - cam.Y()
	if got := cam.ToScreen(b).Y; got != want {
		t.Errorf("ToScreen().Y = %v, want %v", got, want)
	}

	cam.Reset()
	if cam.Y() != 0 {
		t.Errorf("Y() = %v after Reset, want 0", cam.Y())
	}
	if got := cam.ToScreen(b); got != b {
		t.Errorf("ToScreen() = %+v after Reset, want identity", got)
	}
}
