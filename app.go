package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"runtime"
	"time"
	"unsafe"

	"github.com/go-gl/gl/all-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/dennwc/glsl-primer/fps"
	"github.com/dennwc/glsl-primer/mat4"
	"github.com/dennwc/glsl-primer/orbit"
	"github.com/dennwc/glsl-primer/scene"
	"github.com/dennwc/glsl-primer/soup"
	_ "github.com/dennwc/glsl-primer/tga"
)

const title = "GLSL primer"

// The camera looks down -Z at the object moved 5 units away.
// Projection: focal distance 4, near plane 3, far plane 7.
const (
	camDist  = 5
	camFocal = 4
	camNear  = 3
	camFar   = 7
)

func New(c scene.Config, debug bool) *App {
	return &App{conf: c, debug: debug}
}

type App struct {
	conf  scene.Config
	debug bool
	close []func()

	win     *glfw.Window
	resized bool
	reload  bool

	mesh   soup.Mesh
	glMesh *glMesh
	tex    uint32
	prog   uint32
	unif   uniforms

	angles orbit.Angles
	mouse  orbit.Mouse
	keys   orbit.Keys
	meter  fps.Meter
	proj   mat4.Mat4
}

func (a *App) onClose(fnc func()) {
	a.close = append(a.close, fnc)
}

func (a *App) Run(ctx context.Context) error {
	defer func() {
		for i := len(a.close) - 1; i >= 0; i-- {
			a.close[i]()
		}
		a.close = nil
	}()

	runtime.LockOSThread()
	a.onClose(runtime.UnlockOSThread)

	if err := glfw.Init(); err != nil {
		return err
	}
	a.onClose(glfw.Terminate)

	if err := a.initWindow(); err != nil {
		return err
	}
	if err := a.initGL(); err != nil {
		return err
	}
	if err := a.initMesh(); err != nil {
		return err
	}
	if err := a.initTexture(); err != nil {
		return err
	}
	if err := a.compileShaders(); err != nil {
		return err
	}
	a.onClose(func() {
		gl.DeleteProgram(a.prog)
	})
	return a.loop(ctx)
}

func (a *App) initWindow() error {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if a.debug {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}

	wc := a.conf.Window
	var monitor *glfw.Monitor
	if wc.Monitor < 0 {
		monitor = glfw.GetPrimaryMonitor()
	} else {
		monitors := glfw.GetMonitors()
		if wc.Monitor >= len(monitors) {
			return fmt.Errorf("no monitor found")
		}
		monitor = monitors[wc.Monitor]
	}
	mode := monitor.GetVideoMode()

	var winMonitor *glfw.Monitor
	winSize := image.Pt(wc.Width, wc.Height)
	if winSize.X == 0 {
		winSize.X = mode.Width / 2
	}
	if winSize.Y == 0 {
		winSize.Y = mode.Height / 2
	}
	if wc.FullScreen {
		winMonitor = monitor
		winSize = image.Pt(mode.Width, mode.Height)
	}
	slog.Info("desktop", "w", mode.Width, "h", mode.Height)

	win, err := glfw.CreateWindow(winSize.X, winSize.Y, title, winMonitor, nil)
	if err != nil {
		return err
	}
	a.onClose(win.Destroy)

	win.SetFramebufferSizeCallback(func(w *glfw.Window, width int, height int) {
		a.resized = true
	})
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			win.SetShouldClose(true)
		case glfw.KeySpace:
			a.reload = true
		}
	})
	a.win = win
	return nil
}

func (a *App) initGL() error {
	a.win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return fmt.Errorf("OpenGL init failed: %w", err)
	}
	glfw.SwapInterval(0)
	slog.Info("OpenGL initialized",
		"vendor", gl.GoStr(gl.GetString(gl.VENDOR)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
		"vers", gl.GoStr(gl.GetString(gl.VERSION)),
	)

	if a.debug {
		gl.Enable(gl.DEBUG_OUTPUT)
		gl.DebugMessageCallback(func(source uint32, gltype uint32, id uint32, severity uint32, length int32, message string, userParam unsafe.Pointer) {
			switch severity {
			case gl.DEBUG_SEVERITY_NOTIFICATION:
				slog.Debug(message)
			default:
				slog.Info(message, "severity", fmt.Sprintf("%x", severity))
			}
		}, nil)
	}
	return nil
}

func (a *App) buildMesh() (*soup.Mesh, error) {
	mc := a.conf.Mesh
	if mc.OBJ != "" {
		return soup.LoadOBJ(mc.OBJ)
	}
	if mc.Segments < soup.MinSegments {
		slog.Debug("sphere segments raised to the minimum", "segments", mc.Segments, "min", soup.MinSegments)
	}
	return soup.Sphere(mc.Radius, mc.Segments)
}

func (a *App) initMesh() error {
	m, err := a.buildMesh()
	if err != nil {
		return fmt.Errorf("cannot build mesh: %w", err)
	}
	if m.NumTris() == 0 {
		return errors.New("mesh has no triangles")
	}
	a.mesh.Replace(m)
	a.onClose(a.mesh.Release)

	lo, hi := a.mesh.Bounds()
	slog.Info("mesh loaded",
		"vertices", a.mesh.NumVerts(), "triangles", a.mesh.NumTris(),
		"min", lo, "max", hi,
	)
	a.glMesh = uploadMesh(&a.mesh)
	a.onClose(a.glMesh.delete)
	return nil
}

func (a *App) loadImage() (image.Image, error) {
	if a.conf.Texture == "" {
		img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
		img.SetNRGBA(0, 0, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
		return img, nil
	}
	f, err := os.Open(a.conf.Texture)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.conf.Texture, err)
	}
	slog.Info("texture loaded", "path", a.conf.Texture, "format", format,
		"w", img.Bounds().Dx(), "h", img.Bounds().Dy())
	return img, nil
}

func (a *App) initTexture() error {
	img, err := a.loadImage()
	if err != nil {
		return fmt.Errorf("cannot load texture: %w", err)
	}
	a.tex = createTexture(img)
	a.onClose(func() {
		gl.DeleteTextures(1, &a.tex)
	})
	return nil
}

func (a *App) shaderSources() (vert, frag string, _ error) {
	sc := a.conf.Shaders
	if sc.Vertex == "" {
		return vertShader, fragShader, nil
	}
	vb, err := os.ReadFile(sc.Vertex)
	if err != nil {
		return "", "", err
	}
	fb, err := os.ReadFile(sc.Fragment)
	if err != nil {
		return "", "", err
	}
	return string(vb), string(fb), nil
}

func (a *App) compileShaders() error {
	vert, frag, err := a.shaderSources()
	if err != nil {
		return err
	}
	prog, err := buildProgram(vert, frag)
	if err != nil {
		return err
	}
	if a.prog != 0 {
		gl.DeleteProgram(a.prog)
	}
	a.prog = prog
	a.unif = getUniforms(prog)
	return nil
}

func (a *App) updateViewport() {
	width, height := a.win.GetFramebufferSize()
	gl.Viewport(0, 0, int32(width), int32(height))
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	a.proj = mat4.Perspective(camFocal, camNear, camFar, aspect)
}

func (a *App) pollInput() {
	x, y := a.win.GetCursorPos()
	w, h := a.win.GetSize()
	left := a.win.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press
	a.mouse.Update(&a.angles, x, y, left, w, h)

	a.keys.Update(&a.angles, glfw.GetTime(),
		a.win.GetKey(glfw.KeyLeft) == glfw.Press,
		a.win.GetKey(glfw.KeyRight) == glfw.Press,
		a.win.GetKey(glfw.KeyUp) == glfw.Press,
		a.win.GetKey(glfw.KeyDown) == glfw.Press,
	)
}

func (a *App) render() {
	gl.ClearColor(0.3, 0.3, 0.3, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(a.prog)
	if a.unif.tex != -1 {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, a.tex)
		gl.Uniform1i(a.unif.tex, 0)
	}
	if a.unif.time != -1 {
		gl.Uniform1f(a.unif.time, float32(glfw.GetTime()))
	}

	tz := mat4.Translate(0, 0, -camDist)
	rot := a.angles.Matrix()
	var mv mat4.Mat4
	mat4.Mul(&mv, &tz, &rot)
	setUniformMat4(a.unif.mv, &mv)
	setUniformMat4(a.unif.p, &a.proj)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	a.glMesh.draw()
	gl.UseProgram(0)
}

func (a *App) loop(ctx context.Context) error {
	done := ctx.Done()
	a.updateViewport()

	ticker := time.NewTicker(time.Second / time.Duration(a.conf.FPS))
	defer ticker.Stop()
	for {
		if a.win.ShouldClose() {
			return nil
		}
		select {
		case <-done:
			return nil
		case <-ticker.C:
		}
		if st, ok := a.meter.Tick(glfw.GetTime()); ok {
			a.win.SetTitle(st.Title(title))
		}
		if a.resized {
			a.resized = false
			a.updateViewport()
		}
		if a.reload {
			a.reload = false
			if err := a.compileShaders(); err != nil {
				slog.Error("shader reload failed", "err", err)
			} else {
				slog.Info("shaders reloaded")
			}
		}
		a.pollInput()
		a.render()
		glCheckErr()

		a.win.SwapBuffers()
		glfw.PollEvents()
	}
}
