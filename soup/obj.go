package soup

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// LoadOBJ reads a triangulated OBJ file from disk.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := ReadOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

type objCorner struct {
	v, t, n int
}

type objFace struct {
	line    int
	corners [3]objCorner
}

// ReadOBJ reads a triangulated OBJ mesh with positions, texture coordinates and normals.
// Every face must be of the form "f v/t/n v/t/n v/t/n".
//
// Vertices are not shared between faces: face k becomes vertices 3k, 3k+1 and 3k+2,
// since the same position may carry a different normal or texcoord in another face.
func ReadOBJ(r io.Reader) (*Mesh, error) {
	var (
		pos   []mgl32.Vec3
		norm  []mgl32.Vec3
		uv    []mgl32.Vec2
		faces []objFace
	)
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: malformed vertex: %w", line, err)
			}
			pos = append(pos, mgl32.Vec3{v[0], v[1], v[2]})
		case "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: malformed normal: %w", line, err)
			}
			norm = append(norm, mgl32.Vec3{v[0], v[1], v[2]})
		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: malformed texcoord: %w", line, err)
			}
			uv = append(uv, mgl32.Vec2{v[0], v[1]})
		case "f":
			f, err := parseFace(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: malformed face: %w", line, err)
			}
			f.line = line
			faces = append(faces, f)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	verts := make([]Vertex, 0, 3*len(faces))
	tris := make([]Triangle, 0, len(faces))
	for _, f := range faces {
		base := uint32(len(verts))
		for _, c := range f.corners {
			if c.v > len(pos) || c.t > len(uv) || c.n > len(norm) {
				return nil, fmt.Errorf("line %d: face references undefined data (%d/%d/%d)", f.line, c.v, c.t, c.n)
			}
			verts = append(verts, Vertex{
				Pos:    pos[c.v-1],
				Normal: norm[c.n-1],
				UV:     uv[c.t-1],
			})
		}
		tris = append(tris, Triangle{base, base + 1, base + 2})
	}
	return &Mesh{verts: verts, tris: tris}, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := range out {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

func parseFace(fields []string) (objFace, error) {
	var f objFace
	if len(fields) != 3 {
		return f, fmt.Errorf("expected 3 corners, got %d", len(fields))
	}
	for i, s := range fields {
		parts := strings.Split(s, "/")
		if len(parts) != 3 {
			return f, fmt.Errorf("corner %q is not v/t/n", s)
		}
		var idx [3]int
		for k, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil {
				return f, fmt.Errorf("corner %q: %w", s, err)
			} else if n < 1 {
				return f, fmt.Errorf("corner %q: index must be positive", s)
			}
			idx[k] = n
		}
		f.corners[i] = objCorner{v: idx[0], t: idx[1], n: idx[2]}
	}
	return f, nil
}
