// Package config loads wasm-dwarf settings from a YAML file.
package config

import (
	"bytes"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/namui/wasm-dwarf/errors"
	"github.com/namui/wasm-dwarf/strip"
)

// DefaultFile is read from the working directory when no file is given.
const DefaultFile = "wasm-dwarf.yml"

// Config defines all options that can be set through the config file.
type Config struct {
	// Objcopy is the objcopy executable, e.g. /opt/wasi-sdk/bin/llvm-objcopy.
	Objcopy string `yaml:"objcopy"`

	// RemoveSections are the section globs stripped from the module.
	RemoveSections []string `yaml:"remove-sections"`

	// URL is embedded verbatim as the debug info reference. When empty the
	// reference is the source module's path relative to the stripped module.
	URL string `yaml:"url"`

	// Native strips in-process instead of running objcopy.
	Native bool `yaml:"native"`

	// Verify re-reads and compiles the module after patching.
	Verify bool `yaml:"verify"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Objcopy:        strip.DefaultObjcopy,
		RemoveSections: append([]string(nil), strip.DefaultSections...),
	}
}

// Load reads the config file at path. An empty path reads DefaultFile if it
// exists and falls back to Default otherwise; an explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.IO(errors.PhaseConfig, path, err)
	}
	return Parse(data)
}

// Parse decodes YAML config data on top of the defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse config")
	}
	if len(cfg.RemoveSections) == 0 {
		cfg.RemoveSections = append([]string(nil), strip.DefaultSections...)
	}
	return cfg, nil
}

// Stripper builds the stripper described by the config.
func (c *Config) Stripper() strip.Stripper {
	if c.Native {
		return &strip.Native{Sections: c.RemoveSections}
	}
	return &strip.Objcopy{Path: c.Objcopy, Sections: c.RemoveSections}
}

// Marshal encodes the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
