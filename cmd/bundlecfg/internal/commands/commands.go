package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/wolfeidau/bundlecfg/internal/babel"
	"github.com/wolfeidau/bundlecfg/internal/buildenv"
	"github.com/wolfeidau/bundlecfg/internal/project"
	"github.com/wolfeidau/bundlecfg/internal/webpack"
	"golang.org/x/term"
)

type Globals struct {
	Debug   bool
	Version string
}

// SourceFlags locate the project files the configuration is resolved from.
type SourceFlags struct {
	BuildEnv string `help:"build environment (development, test, production)" default:"" env:"BUILD_ENV"`
	WorkDir  string `help:"project directory" default:"." type:"existingdir"`
	Babelrc  string `help:"base babel configuration, relative to the project directory" default:".babelrc"`
	Package  string `help:"package metadata, relative to the project directory" default:"package.json"`
	Project  string `help:"project configuration (json or yaml), relative to the project directory" default:"config/projectConfig.json"`
}

type resolved struct {
	workDir  string
	env      buildenv.Env
	resolver *babel.Resolver
	bundle   *webpack.Config
}

func (s *SourceFlags) resolve(logger zerolog.Logger) (*resolved, error) {
	workDir, err := filepath.Abs(s.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project directory: %w", err)
	}

	pkg, err := project.LoadPackage(s.path(workDir, s.Package))
	if err != nil {
		return nil, err
	}

	cfg, err := project.LoadConfig(s.path(workDir, s.Project))
	if err != nil {
		return nil, err
	}

	rc, err := babel.LoadBabelrc(s.path(workDir, s.Babelrc))
	if err != nil {
		return nil, err
	}
	resolver := babel.NewResolver(rc)

	bundle, err := webpack.Build(webpack.Input{
		Environment: s.BuildEnv,
		WorkDir:     workDir,
		Package:     pkg,
		Project:     cfg,
		Transpiler:  resolver,
		Colors:      term.IsTerminal(int(os.Stdout.Fd())),
	})
	if err != nil {
		return nil, err
	}

	webpack.NewLogReporter(logger).Report(bundle.Mode, cfg, pkg)

	return &resolved{
		workDir:  workDir,
		env:      bundle.Mode,
		resolver: resolver,
		bundle:   bundle,
	}, nil
}

func (s *SourceFlags) path(workDir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(workDir, name)
}

// writeJSON writes indented JSON to the named file, or stdout when name is empty
// or "-". A file that could not be fully written is removed.
func writeJSON(name string, v any) error {
	if name == "" || name == "-" {
		return encodeJSON(os.Stdout, v)
	}

	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}

	encErr := encodeJSON(f, v)
	closeErr := f.Close()

	if err := errors.Join(encErr, closeErr); err != nil {
		_ = os.Remove(name)
		return err
	}
	return nil
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
