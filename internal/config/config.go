package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/integrators"
	"github.com/san-kum/clothsim/internal/mesh"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDimension   = 10
	DefaultMass        = 0.1
	DefaultK           = 1.5
	DefaultDt          = 0.1
	DefaultDuration    = 30.0
	DefaultSampleEvery = 10
	DefaultScheme      = "euler"
	DefaultDataDir     = ".clothsim"
	DefaultTheme       = "default"

	EnvDataDir = "CLOTHSIM_DATA"
	EnvTheme   = "CLOTHSIM_THEME"
)

type Config struct {
	Dimension    int           `yaml:"dimension"`
	Mass         float64       `yaml:"mass"`
	Springs      SpringsConfig `yaml:"springs"`
	ColorSprings bool          `yaml:"color_springs"`
	MeshRendered bool          `yaml:"mesh_rendered"`
	Gravity      Vec3          `yaml:"gravity"`
	Pinned       []int         `yaml:"pinned,omitempty"`
	Workers      int           `yaml:"workers"`

	Scheme      string  `yaml:"scheme"`
	Dt          float64 `yaml:"dt"`
	Duration    float64 `yaml:"duration"`
	SampleEvery int     `yaml:"sample_every"`
}

type SpringsConfig struct {
	Neighbor SpringConfig `yaml:"neighbor"`
	Shear    SpringConfig `yaml:"shear"`
	Bending  SpringConfig `yaml:"bending"`
}

type SpringConfig struct {
	Enabled bool       `yaml:"enabled"`
	K       float64    `yaml:"k"`
	Color   mesh.Color `yaml:"color"`
}

type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v Vec3) R3() r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

func DefaultConfig() *Config {
	g := cloth.DefaultGravity
	return &Config{
		Dimension: DefaultDimension,
		Mass:      DefaultMass,
		Springs: SpringsConfig{
			Neighbor: SpringConfig{Enabled: true, K: DefaultK, Color: mesh.Green},
			Shear:    SpringConfig{Enabled: true, K: DefaultK, Color: mesh.Red},
			Bending:  SpringConfig{Enabled: true, K: DefaultK, Color: mesh.Blue},
		},
		Gravity:     Vec3{X: g.X, Y: g.Y, Z: g.Z},
		Scheme:      DefaultScheme,
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
		SampleEvery: DefaultSampleEvery,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	if c.Pinned != nil {
		out.Pinned = append(make([]int, 0, len(c.Pinned)), c.Pinned...)
	}
	return &out
}

func (c *Config) ClothConfig() cloth.Config {
	family := func(s SpringConfig) cloth.SpringFamily {
		return cloth.SpringFamily{Enabled: s.Enabled, K: s.K, Color: s.Color}
	}
	cc := cloth.Config{
		Dimension:    c.Dimension,
		Mass:         c.Mass,
		Neighbor:     family(c.Springs.Neighbor),
		Shear:        family(c.Springs.Shear),
		Bending:      family(c.Springs.Bending),
		ColorSprings: c.ColorSprings,
		MeshRendered: c.MeshRendered,
		Gravity:      c.Gravity.R3(),
		Workers:      c.Workers,
	}
	if c.Pinned != nil {
		cc.Pinned = append(make([]int, 0, len(c.Pinned)), c.Pinned...)
	}
	return cc
}

func (c *Config) ParsedScheme() (integrators.Scheme, error) {
	return integrators.ParseScheme(c.Scheme)
}

// Validate checks the run parameters and the cloth parameters together.
func (c *Config) Validate() error {
	if _, err := c.ParsedScheme(); err != nil {
		return err
	}
	if !(c.Dt > 0) {
		return fmt.Errorf("%w: dt must be positive, got %v", cloth.ErrInvalidStepInput, c.Dt)
	}
	if !(c.Duration > 0) {
		return fmt.Errorf("%w: duration must be positive, got %v", cloth.ErrInvalidStepInput, c.Duration)
	}
	return c.ClothConfig().Validate()
}

type Env struct {
	DataDir string
	Theme   string
}

// LoadEnv reads the optional .env files (default ./.env) into the process
// environment and returns the clothsim settings. Missing files are ignored.
func LoadEnv(files ...string) (Env, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Env{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	env := Env{DataDir: DefaultDataDir, Theme: DefaultTheme}
	if v := strings.TrimSpace(os.Getenv(EnvDataDir)); v != "" {
		env.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTheme)); v != "" {
		env.Theme = v
	}
	return env, nil
}
