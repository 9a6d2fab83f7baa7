package config

import (
	"sort"
)

var Presets = map[string]*Config{
	"drape": DefaultConfig(),
	"stiff": func() *Config {
		c := DefaultConfig()
		c.Dimension = 12
		c.Springs.Neighbor.K = 6
		c.Springs.Shear.K = 6
		c.Springs.Bending.K = 4
		c.Dt = 0.05
		return c
	}(),
	"loose": func() *Config {
		c := DefaultConfig()
		c.Springs.Neighbor.K = 0.4
		c.Springs.Shear.K = 0.2
		c.Springs.Bending.Enabled = false
		return c
	}(),
	"sheet": func() *Config {
		c := DefaultConfig()
		c.Dimension = 24
		c.Mass = 0.05
		c.MeshRendered = true
		c.Workers = 4
		c.Dt = 0.05
		c.Duration = 20
		return c
	}(),
	"wireframe": func() *Config {
		c := DefaultConfig()
		c.ColorSprings = true
		c.Duration = 15
		return c
	}(),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
