package mat4

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

// near compares element-wise with an absolute tolerance, so values that
// should be zero but carry rounding noise still match.
func near(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > eps {
			return false
		}
	}
	return true
}

func approx(a, b Mat4) bool {
	return near(a[:], b[:])
}

func sample() Mat4 {
	return Mat4{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}
}

func TestZeroRotation(t *testing.T) {
	for name, m := range map[string]Mat4{
		"x": RotX(0),
		"y": RotY(0),
		"z": RotZ(0),
	} {
		if !approx(m, Ident()) {
			t.Errorf("rotation around %s by 0 is not identity:\n%s", name, m)
		}
	}
}

func TestRotationsMatchMGL(t *testing.T) {
	for _, a := range []float32{0.3, -1.2, math.Pi / 2, 2.5} {
		if m, exp := RotX(a), mgl32.HomogRotate3DX(a); !near(m[:], exp[:]) {
			t.Errorf("RotX(%v):\n%s\nexpected:\n%v", a, m, exp)
		}
		if m, exp := RotY(a), mgl32.HomogRotate3DY(a); !near(m[:], exp[:]) {
			t.Errorf("RotY(%v):\n%s\nexpected:\n%v", a, m, exp)
		}
		if m, exp := RotZ(a), mgl32.HomogRotate3DZ(a); !near(m[:], exp[:]) {
			t.Errorf("RotZ(%v):\n%s\nexpected:\n%v", a, m, exp)
		}
	}
}

func TestRotationDirection(t *testing.T) {
	cases := []struct {
		name string
		m    Mat4
		in   mgl32.Vec4
		out  mgl32.Vec4
	}{
		{"y forward", RotY(math.Pi / 2), mgl32.Vec4{0, 0, 1, 1}, mgl32.Vec4{1, 0, 0, 1}},
		{"x up", RotX(math.Pi / 2), mgl32.Vec4{0, 1, 0, 1}, mgl32.Vec4{0, 0, 1, 1}},
		{"z right", RotZ(math.Pi / 2), mgl32.Vec4{1, 0, 0, 1}, mgl32.Vec4{0, 1, 0, 1}},
		{"translate", Translate(1, 2, 3), mgl32.Vec4{1, 1, 1, 1}, mgl32.Vec4{2, 3, 4, 1}},
		{"translate direction", Translate(1, 2, 3), mgl32.Vec4{1, 1, 1, 0}, mgl32.Vec4{1, 1, 1, 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := c.m.Transform(c.in)
			if !near(got[:], c.out[:]) {
				t.Errorf("got %v, expected %v", got, c.out)
			}
		})
	}
}

func TestMulIdentity(t *testing.T) {
	id := Ident()
	m := sample()
	var out Mat4
	Mul(&out, &id, &m)
	if out != m {
		t.Errorf("I·M != M:\n%s", out)
	}
	Mul(&out, &m, &id)
	if out != m {
		t.Errorf("M·I != M:\n%s", out)
	}
}

func TestMulMatchesMGL(t *testing.T) {
	a := RotX(0.7).Mul(Translate(1, -2, 3))
	b := RotZ(1.1).Mul(Translate(0.5, 0.25, -1))
	got := a.Mul(b)
	exp := a.MGL().Mul4(b.MGL())
	if !near(got[:], exp[:]) {
		t.Errorf("got:\n%s\nexpected:\n%v", got, exp)
	}
}

func TestMulOrder(t *testing.T) {
	// T·R rotates first, then translates
	m := Translate(0, 0, -5).Mul(RotY(math.Pi / 2))
	got := m.Transform(mgl32.Vec4{0, 0, 1, 1})
	if exp := (mgl32.Vec4{1, 0, -5, 1}); !near(got[:], exp[:]) {
		t.Errorf("got %v, expected %v", got, exp)
	}
}

func TestMulAliasing(t *testing.T) {
	a := sample()
	b := RotY(0.4)

	var fresh Mat4
	Mul(&fresh, &a, &a)
	self := a
	Mul(&self, &self, &self)
	if self != fresh {
		t.Errorf("A·A into A:\n%s\nexpected:\n%s", self, fresh)
	}

	Mul(&fresh, &a, &b)
	left := a
	Mul(&left, &left, &b)
	if left != fresh {
		t.Errorf("A·B into A:\n%s\nexpected:\n%s", left, fresh)
	}

	Mul(&fresh, &b, &a)
	right := a
	Mul(&right, &b, &right)
	if right != fresh {
		t.Errorf("B·A into A:\n%s\nexpected:\n%s", right, fresh)
	}
}

func TestPerspective(t *testing.T) {
	// the fixed projection of the lab: d=4, near=3, far=7, square viewport
	exp := Mat4{
		4, 0, 0, 0,
		0, 4, 0, 0,
		0, 0, -2.5, -1,
		0, 0, -10.5, 0,
	}
	if got := Perspective(4, 3, 7, 1); !approx(got, exp) {
		t.Errorf("got:\n%s", got)
	}
	fovy := float32(2 * math.Atan(1.0/4))
	if got, ref := Perspective(4, 3, 7, 1.6), mgl32.Perspective(fovy, 1.6, 3, 7); !near(got[:], ref[:]) {
		t.Errorf("got:\n%s\nexpected:\n%v", got, ref)
	}
}

func TestString(t *testing.T) {
	s := Translate(1, 2, 3).String()
	lines := strings.Split(s, "\n")
	if len(lines) != 4 {
		t.Fatalf("unexpected output:\n%s", s)
	}
	if lines[0] != " 1.00  0.00  0.00  1.00" {
		t.Errorf("first row: %q", lines[0])
	}
	if lines[2] != " 0.00  0.00  1.00  3.00" {
		t.Errorf("third row: %q", lines[2])
	}
}
