package babel

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

var (
	ErrMissingPresets = errors.New("missing presets")
	ErrMissingPlugins = errors.New("missing plugins")
)

// ConfigLoadError is returned when the base babel configuration cannot be read.
type ConfigLoadError struct {
	Path string
	Err  error
}

func (e *ConfigLoadError) Error() string {
	return fmt.Sprintf("load babel config %s: %v", e.Path, e.Err)
}

func (e *ConfigLoadError) Unwrap() error {
	return e.Err
}

// Babelrc holds the presets and plugins declared by the project.
type Babelrc struct {
	Presets []Entry `json:"presets"`
	Plugins []Entry `json:"plugins"`
}

// LoadBabelrc reads a .babelrc file. Comments and trailing commas are allowed,
// but both the presets and plugins keys must be present.
func LoadBabelrc(path string) (*Babelrc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigLoadError{Path: path, Err: err}
	}

	rc, err := ParseBabelrc(data)
	if err != nil {
		return nil, &ConfigLoadError{Path: path, Err: err}
	}

	return rc, nil
}

// ParseBabelrc decodes the contents of a .babelrc file.
func ParseBabelrc(data []byte) (*Babelrc, error) {
	var raw struct {
		Presets *[]Entry `json:"presets"`
		Plugins *[]Entry `json:"plugins"`
	}

	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return nil, err
	}

	if raw.Presets == nil {
		return nil, ErrMissingPresets
	}
	if raw.Plugins == nil {
		return nil, ErrMissingPlugins
	}

	return &Babelrc{Presets: *raw.Presets, Plugins: *raw.Plugins}, nil
}
