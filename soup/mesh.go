// Package soup holds triangle meshes in the interleaved layout expected by
// the GL vertex setup: 8 floats per vertex (position, normal, texcoord) and
// 3 indices per triangle.
package soup

import (
	"bufio"
	"fmt"
	"io"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is a single interleaved vertex record.
type Vertex struct {
	Pos    mgl32.Vec3
	Normal mgl32.Vec3
	UV     mgl32.Vec2
}

// Stride is the number of floats in a single vertex.
const Stride = int(unsafe.Sizeof(Vertex{}) / unsafe.Sizeof(float32(0)))

// Triangle is a triple of vertex indices, counter-clockwise when seen from the front.
type Triangle [3]uint32

// Mesh owns a vertex and a triangle sequence. The zero value is an empty mesh.
type Mesh struct {
	verts []Vertex
	tris  []Triangle
}

func (m *Mesh) NumVerts() int {
	return len(m.verts)
}

func (m *Mesh) NumTris() int {
	return len(m.tris)
}

func (m *Mesh) Vertices() []Vertex {
	return m.verts
}

func (m *Mesh) Triangles() []Triangle {
	return m.tris
}

func (m *Mesh) Vertex(i int) Vertex {
	return m.verts[i]
}

// Floats returns the vertex data as a flat float slice. It shares memory with the mesh.
func (m *Mesh) Floats() []float32 {
	if len(m.verts) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&m.verts[0])), len(m.verts)*Stride)
}

// Indices returns the triangle data as a flat index slice. It shares memory with the mesh.
func (m *Mesh) Indices() []uint32 {
	if len(m.tris) == 0 {
		return nil
	}
	return unsafe.Slice(&m.tris[0][0], len(m.tris)*3)
}

// Release drops the mesh storage, leaving an empty mesh.
func (m *Mesh) Release() {
	m.verts = nil
	m.tris = nil
}

// Replace releases the current content of m and moves the content of src into it.
// The src mesh is left empty.
func (m *Mesh) Replace(src *Mesh) {
	if m == src {
		return
	}
	m.Release()
	m.verts, m.tris = src.verts, src.tris
	src.verts, src.tris = nil, nil
}

// Bounds returns the axis-aligned extents of the mesh positions.
func (m *Mesh) Bounds() (min, max mgl32.Vec3) {
	if len(m.verts) == 0 {
		return
	}
	min = m.verts[0].Pos
	max = min
	for _, v := range m.verts[1:] {
		for k := range 3 {
			if v.Pos[k] < min[k] {
				min[k] = v.Pos[k]
			}
			if v.Pos[k] > max[k] {
				max[k] = v.Pos[k]
			}
		}
	}
	return min, max
}

// Dump writes vertex positions and triangle indices in a readable form.
func (m *Mesh) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "vertices: %d\n", len(m.verts))
	for i, v := range m.verts {
		fmt.Fprintf(bw, "%d: %8.2f %8.2f %8.2f\n", i, v.Pos[0], v.Pos[1], v.Pos[2])
	}
	fmt.Fprintf(bw, "triangles: %d\n", len(m.tris))
	for i, t := range m.tris {
		fmt.Fprintf(bw, "%d: %d %d %d\n", i, t[0], t[1], t[2])
	}
	return bw.Flush()
}
