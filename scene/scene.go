// Package scene describes what the viewer renders and how its window looks.
// A scene can be loaded from a YAML file.
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// MaxFPS is the highest frame rate limit the render loop accepts.
const MaxFPS = 1000

type Config struct {
	Window  Window  `yaml:"window"`
	Mesh    Mesh    `yaml:"mesh"`
	Texture string  `yaml:"texture"`
	Shaders Shaders `yaml:"shaders"`
	// FPS caps the frame rate of the render loop.
	FPS int `yaml:"fps"`
}

type Window struct {
	// Width and Height of zero mean half of the monitor size.
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Monitor    int  `yaml:"monitor"` // negative for the primary monitor
	FullScreen bool `yaml:"fullscreen"`
}

// Mesh selects the geometry: an OBJ file if set, otherwise a sphere.
type Mesh struct {
	OBJ      string  `yaml:"obj"`
	Radius   float32 `yaml:"radius"`
	Segments int     `yaml:"segments"`
}

// Shaders are GLSL file paths. Empty paths select the built-in shaders.
type Shaders struct {
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
}

func Default() Config {
	return Config{
		Window: Window{Monitor: -1},
		Mesh:   Mesh{Radius: 1, Segments: 50},
		FPS:    60,
	}
}

// Load reads a scene file. Missing fields keep their defaults; relative paths
// are resolved against the directory of the file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	c, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	c.resolve(filepath.Dir(path))
	return c, nil
}

// Parse decodes a scene on top of the defaults.
func Parse(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) resolve(dir string) {
	for _, p := range []*string{&c.Mesh.OBJ, &c.Texture, &c.Shaders.Vertex, &c.Shaders.Fragment} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

func (c *Config) Validate() error {
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return fmt.Errorf("invalid window size: %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.FPS <= 0 || c.FPS > MaxFPS {
		return fmt.Errorf("invalid frame rate: %d", c.FPS)
	}
	if c.Mesh.OBJ == "" && !(c.Mesh.Radius > 0) {
		return fmt.Errorf("invalid sphere radius: %v", c.Mesh.Radius)
	}
	if (c.Shaders.Vertex == "") != (c.Shaders.Fragment == "") {
		return errors.New("vertex and fragment shaders must be set together")
	}
	return nil
}
