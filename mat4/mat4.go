// Package mat4 implements the few 4x4 transforms the viewer needs.
//
// Matrices are stored column-major, as GL expects them in a uniform:
// column i occupies elements 4i..4i+3. The layout matches mgl32.Mat4.
package mat4

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type Mat4 [16]float32

func Ident() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// RotX returns a rotation around the X axis. Positive angles rotate Y toward Z.
func RotX(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// RotY returns a rotation around the Y axis. Positive angles rotate Z toward X.
func RotY(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotZ returns a rotation around the Z axis. Positive angles rotate X toward Y.
func RotZ(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	return Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func Translate(x, y, z float32) Mat4 {
	m := Ident()
	m[12], m[13], m[14] = x, y, z
	return m
}

// Perspective returns a gluPerspective-style projection with focal distance d
// (the cotangent of half the vertical field of view) for the given aspect ratio (width/height).
func Perspective(d, near, far, aspect float32) Mat4 {
	return Mat4{
		d / aspect, 0, 0, 0,
		0, d, 0, 0,
		0, 0, (far + near) / (near - far), -1,
		0, 0, 2 * far * near / (near - far), 0,
	}
}

// Mul sets dst to the product a·b. Applying dst to a vector applies b first, then a.
// The destination may alias either of the operands.
func Mul(dst, a, b *Mat4) {
	var out Mat4
	for i := range 4 { // row
		for j := range 4 { // column
			out[i+4*j] = a[i]*b[4*j] + a[i+4]*b[4*j+1] + a[i+8]*b[4*j+2] + a[i+12]*b[4*j+3]
		}
	}
	*dst = out
}

// Mul returns m·b.
func (m Mat4) Mul(b Mat4) Mat4 {
	Mul(&m, &m, &b)
	return m
}

// Transform applies m to a homogeneous vector.
func (m Mat4) Transform(v mgl32.Vec4) mgl32.Vec4 {
	var out mgl32.Vec4
	for i := range 4 {
		out[i] = m[i]*v[0] + m[i+4]*v[1] + m[i+8]*v[2] + m[i+12]*v[3]
	}
	return out
}

// MGL converts the matrix to the equivalent mgl32 matrix.
func (m Mat4) MGL() mgl32.Mat4 {
	return mgl32.Mat4(m)
}

// String prints the matrix in the usual row-major reading order.
func (m Mat4) String() string {
	var sb strings.Builder
	for i := range 4 {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%5.2f %5.2f %5.2f %5.2f", m[i], m[i+4], m[i+8], m[i+12])
	}
	return sb.String()
}
