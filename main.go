package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/dennwc/glsl-primer/scene"
)

var (
	fScene    = flag.String("scene", "", "scene file (yaml)")
	fMonitor  = flag.Int("monitor", -1, "monitor index")
	fFull     = flag.Bool("full", false, "full screen")
	fWidth    = flag.Int("width", 0, "window width (default: half of the monitor)")
	fHeight   = flag.Int("height", 0, "window height (default: half of the monitor)")
	fOBJ      = flag.String("obj", "", "OBJ mesh to render instead of a sphere")
	fRadius   = flag.Float64("radius", 1, "sphere radius")
	fSegments = flag.Int("segments", 50, "sphere segments")
	fTexture  = flag.String("texture", "", "TGA texture")
	fVert     = flag.String("vert", "", "vertex shader file")
	fFrag     = flag.String("frag", "", "fragment shader file")
	fFPS      = flag.Int("fps", 60, "frame rate limit (1..1000)")
	fDebug    = flag.Bool("debug", false, "enable debug logging")
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	flag.Parse()
	if *fDebug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	c, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := run(ctx, c); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the scene file, if any, and applies flags set on the command line over it.
func loadConfig() (scene.Config, error) {
	c := scene.Default()
	if *fScene != "" {
		var err error
		c, err = scene.Load(*fScene)
		if err != nil {
			return c, err
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "monitor":
			c.Window.Monitor = *fMonitor
		case "full":
			c.Window.FullScreen = *fFull
		case "width":
			c.Window.Width = *fWidth
		case "height":
			c.Window.Height = *fHeight
		case "obj":
			c.Mesh.OBJ = *fOBJ
		case "radius":
			c.Mesh.Radius = float32(*fRadius)
		case "segments":
			c.Mesh.Segments = *fSegments
		case "texture":
			c.Texture = *fTexture
		case "vert":
			c.Shaders.Vertex = *fVert
		case "frag":
			c.Shaders.Fragment = *fFrag
		case "fps":
			c.FPS = *fFPS
		}
	})
	return c, c.Validate()
}

func run(ctx context.Context, c scene.Config) error {
	return New(c, *fDebug).Run(ctx)
}

//go:embed shaders/vertex.glsl
var vertShader string

//go:embed shaders/fragment.glsl
var fragShader string
