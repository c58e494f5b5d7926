package assets

import (
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/wolfeidau/bundlecfg/internal/webpack"
)

// probeExtensions are matched against the bundle rules to pick an esbuild loader.
var probeExtensions = []string{".js", ".jpg", ".jpeg", ".png", ".gif", ".svg", ".scss"}

type Config struct {
	// Absolute working directory, entry points and the metafile are relative to it
	WorkDir string
	// Entry point paths
	EntryPoints []string
	// Output directory for built files
	OutputDir string
	// Prefix for URLs of built files
	PublicPath string
	// Path to metafile
	MetafilePath string
	// Whether to minify output
	Minify bool
	// Whether to enable source maps
	SourceMap bool
	// Identifiers replaced at build time
	Define map[string]string
	// Loaders by file extension
	Loaders map[string]api.Loader
	// Paths removed before building
	CleanPaths []string
	// Page rendered after building, nil to skip
	Page *Page
	// Extensions matched by rules that have no native loader
	Unsupported []string
}

// Page is an HTML template rendered into the output directory.
type Page struct {
	Template   string
	Filename   string
	Parameters map[string]any
}

// FromWebpack derives the native build settings from a bundle configuration.
func FromWebpack(cfg *webpack.Config, workDir string) (Config, error) {
	if !filepath.IsAbs(workDir) {
		return Config{}, fmt.Errorf("working directory %q must be absolute", workDir)
	}
	if len(cfg.Entry) == 0 {
		return Config{}, errors.New("no entry points configured")
	}

	c := Config{
		WorkDir:      workDir,
		OutputDir:    cfg.Output.Path,
		PublicPath:   cfg.Output.PublicPath,
		MetafilePath: filepath.Join(cfg.Output.Path, "meta.json"),
		Minify:       cfg.Optimization.Minimize,
		SourceMap:    cfg.Devtool != "",
		Define:       map[string]string{},
		Loaders:      map[string]api.Loader{},
	}

	for _, name := range slices.Sorted(maps.Keys(cfg.Entry)) {
		c.EntryPoints = append(c.EntryPoints, cfg.Entry[name])
	}

	if p, ok := cfg.Plugin(webpack.DefinePlugin); ok {
		if defs, ok := p.Options.(webpack.Definitions); ok {
			for k, v := range defs {
				c.Define[k] = fmt.Sprint(v)
			}
		}
	}

	if p, ok := cfg.Plugin(webpack.CleanWebpackPlugin); ok {
		if opts, ok := p.Options.(webpack.CleanOptions); ok {
			c.CleanPaths = opts.Paths
		}
	}

	if p, ok := cfg.Plugin(webpack.HtmlWebpackPlugin); ok {
		if opts, ok := p.Options.(webpack.HtmlOptions); ok {
			c.Page = &Page{
				Template:   opts.Template,
				Filename:   opts.Filename,
				Parameters: opts.TemplateParameters,
			}
		}
	}

	for _, ext := range probeExtensions {
		for _, rule := range cfg.Module.Rules {
			if !rule.Matches("module" + ext) {
				continue
			}
			if loader, ok := nativeLoader(rule.Loaders()); ok {
				c.Loaders[ext] = loader
			} else {
				c.Unsupported = append(c.Unsupported, ext)
			}
			break
		}
	}

	return c, nil
}

func nativeLoader(chain []string) (api.Loader, bool) {
	if len(chain) == 0 {
		return api.LoaderNone, false
	}
	switch chain[len(chain)-1] {
	case "file-loader":
		return api.LoaderFile, true
	case "babel-loader":
		return api.LoaderJSX, true
	default:
		return api.LoaderNone, false
	}
}
