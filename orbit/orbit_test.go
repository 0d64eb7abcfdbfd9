package orbit

import (
	"math"
	"testing"

	"github.com/dennwc/glsl-primer/mat4"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestMouseDrag(t *testing.T) {
	var (
		m Mouse
		a Angles
	)
	m.Update(&a, 100, 100, false, 800, 600)
	m.Update(&a, 200, 100, false, 800, 600)
	if a.Phi != 0 || a.Theta != 0 {
		t.Fatalf("moved without a button: %+v", a)
	}
	// the first poll with the button down only records the position
	m.Update(&a, 200, 100, true, 800, 600)
	if a.Phi != 0 || a.Theta != 0 {
		t.Fatalf("moved on press: %+v", a)
	}
	m.Update(&a, 400, 160, true, 800, 600)
	if !near(a.Phi, 45) || !near(a.Theta, 18) {
		t.Errorf("after drag: %+v", a)
	}
	m.Update(&a, 500, 160, false, 800, 600)
	m.Update(&a, 800, 160, true, 800, 600)
	if !near(a.Phi, 45) {
		t.Errorf("moved after release: %+v", a)
	}
}

func TestMouseWrapAndClamp(t *testing.T) {
	var (
		m Mouse
		a Angles
	)
	m.Update(&a, 0, 0, true, 100, 100)
	m.Update(&a, -50, 0, true, 100, 100) // -90 degrees
	if !near(a.Phi, 270) {
		t.Errorf("phi did not wrap: %v", a.Phi)
	}
	m.Update(&a, 250, 0, true, 100, 100) // +540 degrees
	if !near(a.Phi, 90) {
		t.Errorf("phi did not wrap: %v", a.Phi)
	}
	m.Update(&a, 250, 300, true, 100, 100)
	if a.Theta != 90 {
		t.Errorf("theta not clamped: %v", a.Theta)
	}
	m.Update(&a, 250, -500, true, 100, 100)
	if a.Theta != -90 {
		t.Errorf("theta not clamped: %v", a.Theta)
	}
}

func TestMouseZeroWindow(t *testing.T) {
	var (
		m Mouse
		a Angles
	)
	m.Update(&a, 0, 0, true, 0, 0)
	m.Update(&a, 10, 10, true, 0, 0)
	if a.Phi != 0 || a.Theta != 0 {
		t.Errorf("moved with an empty window: %+v", a)
	}
}

func TestKeys(t *testing.T) {
	var (
		k Keys
		a Angles
	)
	k.Update(&a, 10, false, true, false, false)
	if a.Phi != 0 {
		t.Fatalf("first update must not rotate: %+v", a)
	}
	k.Update(&a, 10.5, false, true, true, false)
	if !near(a.Phi, 45) || !near(a.Theta, 45) {
		t.Errorf("after half a second: %+v", a)
	}
	k.Update(&a, 11.5, true, false, true, false)
	if !near(a.Phi, 315) || a.Theta != 90 {
		t.Errorf("after one more second: %+v", a)
	}
	k.Update(&a, 14, false, false, false, true)
	if a.Theta != -90 {
		t.Errorf("theta not clamped: %v", a.Theta)
	}
}

func TestMatrix(t *testing.T) {
	a := Angles{Phi: 90, Theta: 30}
	exp := mat4.RotX(math.Pi / 6).Mul(mat4.RotY(math.Pi / 2))
	got := a.Matrix()
	for i := range got {
		if !near(got[i], exp[i]) {
			t.Fatalf("got:\n%s\nexpected:\n%s", got, exp)
		}
	}
	if (Angles{}).Matrix() != mat4.Ident() {
		t.Error("zero angles must give identity")
	}
}
