package main

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/all-core/gl"

	"github.com/dennwc/glsl-primer/mat4"
	"github.com/dennwc/glsl-primer/soup"
)

func glCheckErr() {
	if e := gl.GetError(); e != 0 {
		panic(fmt.Errorf("gl error: %x", e))
	}
}

func compileProgram(vert, frag uint32) (uint32, error) {
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.BindFragDataLocation(prog, 0, gl.Str("color\x00"))
	gl.LinkProgram(prog)
	gl.DetachShader(prog, vert)
	gl.DetachShader(prog, frag)

	var st int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &st)
	if st == gl.FALSE {
		var sz int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &sz)
		text := make([]byte, sz+1)
		gl.GetProgramInfoLog(prog, sz, nil, &text[0])
		gl.DeleteProgram(prog)
		return 0, errors.New(strings.TrimRight(string(text), "\x00"))
	}
	return prog, nil
}

func compileShader(typ uint32, src string) (uint32, error) {
	if !strings.HasSuffix(src, "\x00") {
		src += "\x00"
	}
	s := gl.CreateShader(typ)
	cstr, free := gl.Strs(src)
	gl.ShaderSource(s, 1, cstr, nil)
	free()
	gl.CompileShader(s)
	var st int32
	gl.GetShaderiv(s, gl.COMPILE_STATUS, &st)
	if st == gl.FALSE {
		var sz int32
		gl.GetShaderiv(s, gl.INFO_LOG_LENGTH, &sz)
		text := make([]byte, sz+1)
		gl.GetShaderInfoLog(s, sz, nil, &text[0])
		gl.DeleteShader(s)
		return 0, errors.New(strings.TrimRight(string(text), "\x00"))
	}
	return s, nil
}

// buildProgram compiles and links a shader pair. Shader objects are released once linked.
func buildProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(gl.VERTEX_SHADER, vertSrc)
	if err != nil {
		return 0, fmt.Errorf("cannot compile vertex shader: %w", err)
	}
	defer gl.DeleteShader(vert)

	frag, err := compileShader(gl.FRAGMENT_SHADER, fragSrc)
	if err != nil {
		return 0, fmt.Errorf("cannot compile fragment shader: %w", err)
	}
	defer gl.DeleteShader(frag)

	prog, err := compileProgram(vert, frag)
	if err != nil {
		return 0, fmt.Errorf("cannot link program: %w", err)
	}
	return prog, nil
}

func glSetProgAttr(attr uint32, sz int, typ uint32, norm bool, stride, offset uintptr) {
	gl.EnableVertexAttribArray(attr)
	glCheckErr()
	gl.VertexAttribPointerWithOffset(attr, int32(sz), typ, norm, int32(stride), offset)
	glCheckErr()
}

// glMesh is a mesh uploaded to the GPU.
type glMesh struct {
	vertArr uint32
	vertBuf uint32
	elemBuf uint32
	count   int32
}

// uploadMesh copies the mesh into a new vertex array with attributes 0, 1 and 2
// bound to position, normal and texture coordinates.
func uploadMesh(m *soup.Mesh) *glMesh {
	g := &glMesh{count: int32(3 * m.NumTris())}
	gl.GenVertexArrays(1, &g.vertArr)
	gl.BindVertexArray(g.vertArr)
	gl.GenBuffers(1, &g.vertBuf)
	gl.GenBuffers(1, &g.elemBuf)
	glCheckErr()

	verts := m.Vertices()
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vertBuf)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*int(unsafe.Sizeof(soup.Vertex{})), gl.Ptr(verts), gl.STATIC_DRAW)
	glCheckErr()
	stride := unsafe.Sizeof(soup.Vertex{})
	glSetProgAttr(0, 3, gl.FLOAT, false, stride, unsafe.Offsetof(soup.Vertex{}.Pos))
	glSetProgAttr(1, 3, gl.FLOAT, false, stride, unsafe.Offsetof(soup.Vertex{}.Normal))
	glSetProgAttr(2, 2, gl.FLOAT, false, stride, unsafe.Offsetof(soup.Vertex{}.UV))

	tris := m.Triangles()
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.elemBuf)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(tris)*int(unsafe.Sizeof(soup.Triangle{})), gl.Ptr(tris), gl.STATIC_DRAW)
	glCheckErr()

	// the element buffer binding is part of the vertex array state, unbind it first
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	return g
}

func (g *glMesh) draw() {
	gl.BindVertexArray(g.vertArr)
	gl.DrawElementsWithOffset(gl.TRIANGLES, g.count, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

func (g *glMesh) delete() {
	gl.DeleteVertexArrays(1, &g.vertArr)
	gl.DeleteBuffers(1, &g.vertBuf)
	gl.DeleteBuffers(1, &g.elemBuf)
	*g = glMesh{}
}

// createTexture uploads an image as a mipmapped, repeating 2D texture.
// GL expects the bottom row first, so rows are flipped on upload.
func createTexture(img image.Image) uint32 {
	rect := img.Bounds()
	rgba, ok := img.(*image.NRGBA)
	if !ok {
		rgba = image.NewNRGBA(rect)
		draw.Draw(rgba, rect, img, rect.Min, draw.Src)
	}
	w, h := rect.Dx(), rect.Dy()
	pix := make([]byte, 4*w*h)
	for y := range h {
		src := rgba.Pix[y*rgba.Stride : y*rgba.Stride+4*w]
		copy(pix[(h-1-y)*4*w:], src)
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	glCheckErr()
	return tex
}

// uniforms holds the locations of the uniforms the viewer sets; -1 marks an unused one.
type uniforms struct {
	mv, p, time, tex int32
}

func getUniforms(prog uint32) uniforms {
	return uniforms{
		mv:   gl.GetUniformLocation(prog, gl.Str("MV\x00")),
		p:    gl.GetUniformLocation(prog, gl.Str("P\x00")),
		time: gl.GetUniformLocation(prog, gl.Str("time\x00")),
		tex:  gl.GetUniformLocation(prog, gl.Str("tex\x00")),
	}
}

func setUniformMat4(loc int32, m *mat4.Mat4) {
	if loc != -1 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}
