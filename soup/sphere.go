package soup

import (
	"errors"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrInvalidRadius = errors.New("sphere radius must be finite and not below MinRadius")
	ErrTooLarge      = errors.New("mesh is too large")
)

// MinSegments is the smallest number of latitude bands a sphere can have.
// Smaller values are raised to it.
const MinSegments = 2

// MinRadius is the smallest sphere radius. Its square is still a normal float32,
// so vertex positions and face areas do not underflow to zero.
const MinRadius = 0x1p-60

// maxSegments keeps vertex indices within uint32.
const maxSegments = 1 << 15

const maxInt = int(^uint(0) >> 1)

// SphereCounts returns the vertex and triangle counts of a sphere with the given
// number of segments, after clamping.
func SphereCounts(segments int) (nverts, ntris int, err error) {
	vsegs := max(segments, MinSegments)
	if vsegs > maxSegments {
		return 0, 0, ErrTooLarge
	}
	v := uint64(vsegs)
	h := 2 * v
	nv := 1 + (v-1)*(h+1) + 1 // top + rings + bottom
	nt := h + (v-2)*h*2 + h
	if nv > math.MaxUint32 {
		return 0, 0, ErrTooLarge
	}
	if nv > uint64(maxInt)/uint64(unsafe.Sizeof(Vertex{})) || nt > uint64(maxInt)/uint64(unsafe.Sizeof(Triangle{})) {
		return 0, 0, ErrTooLarge
	}
	return int(nv), int(nt), nil
}

// Sphere builds a textured UV sphere centered at the origin, with +Y up.
//
// The sphere has max(segments, 2) latitude bands and twice as many longitude
// subdivisions. Each ring repeats its first vertex at the end so the texture
// seam can go from s=0 to s=1 without wrapping.
func Sphere(radius float32, segments int) (*Mesh, error) {
	r := float64(radius)
	if !(r >= MinRadius) || math.IsInf(r, 0) {
		return nil, ErrInvalidRadius
	}
	nverts, ntris, err := SphereCounts(segments)
	if err != nil {
		return nil, err
	}
	vsegs := max(segments, MinSegments)
	hsegs := 2 * vsegs

	verts := make([]Vertex, nverts)
	tris := make([]Triangle, 0, ntris)

	verts[0] = Vertex{
		Pos:    mgl32.Vec3{0, radius, 0},
		Normal: mgl32.Vec3{0, 1, 0},
		UV:     mgl32.Vec2{0.5, 1},
	}
	verts[nverts-1] = Vertex{
		Pos:    mgl32.Vec3{0, -radius, 0},
		Normal: mgl32.Vec3{0, -1, 0},
		UV:     mgl32.Vec2{0.5, 0},
	}
	for j := range vsegs - 1 {
		theta := float64(j+1) / float64(vsegs) * math.Pi
		y := math.Cos(theta)
		rr := math.Sin(theta)
		t := 1 - float32(j+1)/float32(vsegs)
		for i := 0; i <= hsegs; i++ {
			phi := float64(i) / float64(hsegs) * 2 * math.Pi
			n := mgl32.Vec3{
				float32(rr * math.Sin(phi)),
				float32(y),
				float32(rr * math.Cos(phi)),
			}
			verts[1+j*(hsegs+1)+i] = Vertex{
				Pos:    n.Mul(radius),
				Normal: n,
				UV:     mgl32.Vec2{float32(i) / float32(hsegs), t},
			}
		}
	}

	h := uint32(hsegs)
	for i := range h {
		tris = append(tris, Triangle{0, 1 + i, 2 + i})
	}
	for j := range uint32(vsegs - 2) {
		for i := range h {
			i0 := 1 + j*(h+1) + i
			tris = append(tris,
				Triangle{i0, i0 + h + 1, i0 + 1},
				Triangle{i0 + 1, i0 + h + 1, i0 + h + 2},
			)
		}
	}
	last := uint32(nverts - 1)
	for i := range h {
		tris = append(tris, Triangle{last, last - 1 - i, last - 2 - i})
	}
	return &Mesh{verts: verts, tris: tris}, nil
}
