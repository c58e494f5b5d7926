package assets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/rs/zerolog"
)

// Build cleans the output, runs esbuild with the configured settings, loads
// metadata and renders the page
func (p *Pipeline) Build(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	logger := zerolog.Ctx(ctx)

	if err := p.clean(); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	for _, ext := range p.config.Unsupported {
		logger.Warn().Str("ext", ext).Msg("No native loader for extension, imports will fail")
	}

	logger.Info().Strs("entrypoints", p.config.EntryPoints).Msg("Building assets")

	result := api.Build(api.BuildOptions{
		AbsWorkingDir:     p.config.WorkDir,
		EntryPoints:       p.config.EntryPoints,
		Bundle:            true,
		Splitting:         true,
		Write:             true,
		JSX:               api.JSXAutomatic,
		Outdir:            p.config.OutputDir,
		EntryNames:        "js/[name]_[hash]",
		ChunkNames:        "js/[name]_[hash]",
		AssetNames:        "img/[hash]",
		PublicPath:        p.config.PublicPath,
		Format:            api.FormatESModule,
		Platform:          api.PlatformBrowser,
		Loader:            p.config.Loaders,
		Define:            p.config.Define,
		MinifyWhitespace:  p.config.Minify,
		MinifyIdentifiers: p.config.Minify,
		MinifySyntax:      p.config.Minify,
		TreeShaking:       api.TreeShakingTrue,
		Sourcemap:         cond(p.config.SourceMap, api.SourceMapLinked, api.SourceMapNone),
		Metafile:          true,
	})

	if len(result.Errors) > 0 {
		for _, msg := range result.Errors {
			logger.Error().Str("error", msg.Text).Msg("Build error")
		}
		return errors.New("esbuild failed with errors")
	}

	for _, msg := range result.Warnings {
		logger.Warn().Str("warning", msg.Text).Msg("Build warning")
	}

	for _, file := range result.OutputFiles {
		logger.Debug().Str("file", file.Path).Msg("Built file")
	}

	// Write metafile
	if err := os.WriteFile(p.config.MetafilePath, []byte(result.Metafile), 0600); err != nil {
		return err
	}

	// Parse and cache metadata
	var metadata BuildMetadata
	if err := json.Unmarshal([]byte(result.Metafile), &metadata); err != nil {
		return err
	}

	p.metadata = &metadata

	if p.config.Page == nil {
		return nil
	}

	return p.renderPage(ctx)
}

// clean removes the configured paths, refusing anything that would wipe the
// working directory or a parent of it
func (p *Pipeline) clean() error {
	for _, target := range p.config.CleanPaths {
		target = filepath.Clean(target)

		rel, err := filepath.Rel(p.config.WorkDir, target)
		if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return fmt.Errorf("refusing to clean %s outside of %s", target, p.config.WorkDir)
		}

		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf("clean %s: %w", target, err)
		}
	}
	return nil
}

func (p *Pipeline) renderPage(ctx context.Context) error {
	page := p.config.Page

	tmpl, err := parseTemplate(page.Template)
	if err != nil {
		return fmt.Errorf("parse page template: %w", err)
	}

	data := map[string]any{
		"Params":  page.Parameters,
		"Version": page.Parameters["version"],
		"Scripts": []string{},
		"Styles":  []string{},
	}

	for _, entry := range p.config.EntryPoints {
		scripts, _, err := p.loadScripts(entry)
		if err != nil {
			return err
		}
		data["Scripts"] = append(data["Scripts"].([]string), scripts...)
		data["Styles"] = append(data["Styles"].([]string), p.loadStyles(entry)...)
	}

	target := filepath.Join(p.config.OutputDir, page.Filename)

	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	zerolog.Ctx(ctx).Info().Str("file", target).Msg("Rendered page")

	return f.Close()
}

// LoadScripts returns the ordered list of script URLs needed for the given entrypoint
// and the main entrypoint URL
func (p *Pipeline) LoadScripts(entryPointPath string) ([]string, string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.loadScripts(entryPointPath)
}

func (p *Pipeline) loadScripts(entryPointPath string) ([]string, string, error) {
	if p.metadata == nil {
		return nil, "", errors.New("assets not built yet, call Build() first")
	}

	scripts := []string{}
	visited := make(map[string]bool)
	want := filepath.ToSlash(filepath.Clean(entryPointPath))

	// Find the output file for this entrypoint
	for outputPath, info := range p.metadata.Outputs {
		if info.EntryPoint == want && strings.HasSuffix(outputPath, ".js") {
			entrypoint := p.url(outputPath)
			scripts = append(scripts, entrypoint)
			visited[outputPath] = true
			p.addDependencies(info, &scripts, visited)
			return scripts, entrypoint, nil
		}
	}

	return nil, "", fmt.Errorf("entrypoint %s not found in metadata", entryPointPath)
}

func (p *Pipeline) loadStyles(entryPointPath string) []string {
	want := filepath.ToSlash(filepath.Clean(entryPointPath))
	for _, info := range p.metadata.Outputs {
		if info.EntryPoint == want && info.CSSBundle != "" {
			return []string{p.url(info.CSSBundle)}
		}
	}
	return nil
}

func (p *Pipeline) addDependencies(output OutputInfo, scripts *[]string, visited map[string]bool) {
	for _, imp := range output.Imports {
		chunkInfo, exists := p.metadata.Outputs[imp.Path]
		if !exists || visited[imp.Path] {
			continue
		}
		visited[imp.Path] = true
		*scripts = append(*scripts, p.url(imp.Path))
		p.addDependencies(chunkInfo, scripts, visited)
	}
}

// url maps a metafile output path, relative to the working directory, to its public URL
func (p *Pipeline) url(outputPath string) string {
	abs := filepath.Join(p.config.WorkDir, filepath.FromSlash(outputPath))
	rel, err := filepath.Rel(p.config.OutputDir, abs)
	if err != nil {
		rel = outputPath
	}

	publicPath := p.config.PublicPath
	if publicPath == "" {
		publicPath = "/"
	}
	return path.Join(publicPath, filepath.ToSlash(rel))
}

func cond[T any](condition bool, trueVal, falseVal T) T {
	if condition {
		return trueVal
	}
	return falseVal
}
