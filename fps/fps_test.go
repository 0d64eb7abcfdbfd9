package fps

import (
	"math"
	"testing"
)

func TestMeter(t *testing.T) {
	var m Meter
	if _, ok := m.Tick(0); !ok {
		t.Fatal("first frame must report")
	}
	for i := 1; i < 50; i++ {
		if _, ok := m.Tick(float64(i) * 0.02); ok {
			t.Fatalf("reported early at frame %d", i)
		}
	}
	st, ok := m.Tick(1.25)
	if !ok {
		t.Fatal("expected a report after a second")
	}
	// 50 frames in 1.25 seconds
	if math.Abs(st.FPS-50/1.25) > 1e-9 {
		t.Errorf("fps: %v", st.FPS)
	}
	if math.Abs(st.FrameTime-1250.0/50) > 1e-9 {
		t.Errorf("frame time: %v", st.FrameTime)
	}
	if m.Stats() != st {
		t.Error("stats not kept")
	}
	if _, ok := m.Tick(1.5); ok {
		t.Error("reported again too early")
	}
}

func TestTitle(t *testing.T) {
	s := Stats{FPS: 59.94, FrameTime: 16.683}
	if got, exp := s.Title("GLSL primer"), "GLSL primer, 16.68 ms/frame (59.9 FPS)"; got != exp {
		t.Errorf("got %q, expected %q", got, exp)
	}
}
