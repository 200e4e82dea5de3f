// Package config loads an eqcorr2d batch run description from a TOML file,
// the way go-musicfox layers github.com/knadh/koanf/v2 over a file provider
// and a TOML parser to load its own settings file. The CLI layers its flags
// on top of what this package loads: directory flags replace the loaded
// values, and boolean flags can only switch a feature on.
package config

import (
	"fmt"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Run describes one batch invocation of corr.Compute: where to load the A
// and B matrix lists from, which rotations and aggregators to enable, and
// whether smart mode is on.
type Run struct {
	ADir string `koanf:"a_dir"`
	BDir string `koanf:"b_dir"`

	R0   bool `koanf:"r0"`
	R90  bool `koanf:"r90"`
	R180 bool `koanf:"r180"`
	R270 bool `koanf:"r270"`

	Histogram bool `koanf:"histogram"`
	FullMaps  bool `koanf:"full_maps"`
	Worst     bool `koanf:"worst"`
	Smart     bool `koanf:"smart"`
}

// defaultRun matches the original binding's implicit default (no do_smart
// unless requested) plus the single most common aggregator, the worst
// tracker, since that is the only result cheap enough to always compute.
func defaultRun() Run {
	return Run{
		R0:    true,
		Worst: true,
	}
}

// Load reads path (a TOML file) into a Run, seeded with defaultRun() so a
// config only needs to name what it overrides.
func Load(path string) (Run, error) {
	run := defaultRun()
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return run, fmt.Errorf("config: loading %s: %w", path, err)
	}
	if err := k.Unmarshal("", &run); err != nil {
		return run, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	return run, nil
}
