// Package config loads interpreter configuration from an optional TOML
// file: a Config struct of nested, toml-tagged sections, a
// DefaultConfig constructor holding the interpreter's defaults, and a
// Load that overlays a file onto those defaults.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/harukamm/elvm/internal/ir"
)

// Config is the full set of knobs the CLI exposes: the interpreter's
// memory size (defaults to 2^24 words but may be parameterized),
// whether it traces each fetched instruction, and I/O buffer sizes.
// The IO sizes are decoded and defaulted here but not applied: the
// interpreter's bufio reader and writer use bufio's default size.
type Config struct {
	Memory struct {
		Words int `toml:"words"`
	} `toml:"memory"`

	Execution struct {
		Trace bool `toml:"trace"`
	} `toml:"execution"`

	IO struct {
		ReadBufferBytes  int `toml:"read_buffer_bytes"`
		WriteBufferBytes int `toml:"write_buffer_bytes"`
	} `toml:"io"`
}

// DefaultConfig returns the interpreter's defaults: 2^24 words of
// memory, tracing disabled, 4KB I/O buffers.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Memory.Words = ir.WordMod
	cfg.Execution.Trace = false
	cfg.IO.ReadBufferBytes = 4096
	cfg.IO.WriteBufferBytes = 4096
	return cfg
}

// Load overlays the TOML file at path onto DefaultConfig's values. The
// CLI only calls Load when the user passed -config explicitly, so an
// empty path is never seen here.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	return cfg, nil
}
