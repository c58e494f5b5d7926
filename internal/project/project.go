package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Package is the subset of package.json used by the build.
type Package struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Main    string `json:"main"`
}

// Config is the project configuration consumed by the build.
type Config struct {
	Build    BuildConfig    `json:"build" yaml:"build"`
	DevLocal DevLocalConfig `json:"devLocal" yaml:"devLocal"`
}

type BuildConfig struct {
	// Output directory, relative to the working directory.
	Dist string `json:"dist" yaml:"dist"`
}

type DevLocalConfig struct {
	DevServerPort int `json:"devServerPort" yaml:"devServerPort"`
}

// LoadPackage reads and validates package metadata.
func LoadPackage(path string) (*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read package metadata: %w", err)
	}

	var pkg Package
	if err := json.Unmarshal(jsonc.ToJSON(data), &pkg); err != nil {
		return nil, fmt.Errorf("parse package metadata %s: %w", path, err)
	}

	if err := pkg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid package metadata %s: %w", path, err)
	}

	return &pkg, nil
}

func (p *Package) Validate() error {
	var errs []error
	if p.Version == "" {
		errs = append(errs, errors.New("version is required"))
	}
	if p.Main == "" {
		errs = append(errs, errors.New("main is required"))
	}
	return errors.Join(errs...)
}

// LoadConfig reads the project configuration. Files ending in .yaml or .yml are
// parsed as YAML, anything else as JSON with comments.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project config: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(jsonc.ToJSON(data), &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse project config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid project config %s: %w", path, err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Build.Dist == "" {
		errs = append(errs, errors.New("build.dist is required"))
	}
	if c.DevLocal.DevServerPort <= 0 || c.DevLocal.DevServerPort > 65535 {
		errs = append(errs, fmt.Errorf("devLocal.devServerPort %d is out of range", c.DevLocal.DevServerPort))
	}
	return errors.Join(errs...)
}
