package webpack

import (
	"errors"
	"path/filepath"

	"github.com/wolfeidau/bundlecfg/internal/babel"
	"github.com/wolfeidau/bundlecfg/internal/buildenv"
	"github.com/wolfeidau/bundlecfg/internal/project"
)

const (
	srcDir       = "src"
	dependencies = "node_modules"

	analyzerPort = 12345
)

var (
	imagePattern  = MustPattern(`\.(jpe?g|png|gif|svg)$`, "i")
	stylePattern  = MustPattern(`\.scss$`, "")
	scriptPattern = MustPattern(`\.js$`, "")
	excludeDeps   = MustPattern(dependencies, "")
)

// Transpiler resolves the options passed to the script loader.
type Transpiler interface {
	Resolve(devMode bool) babel.LoaderOptions
}

// Input is everything the bundle configuration depends on.
type Input struct {
	// Environment is the raw BUILD_ENV value, empty when unset.
	Environment string
	WorkDir     string
	Package     *project.Package
	Project     *project.Config
	Transpiler  Transpiler
	// Colors enables coloured statistics, normally set when stdout is a terminal.
	Colors bool
}

// Build assembles the bundle configuration.
func Build(in Input) (*Config, error) {
	if in.Package == nil || in.Project == nil || in.Transpiler == nil {
		return nil, errors.New("package, project and transpiler are required")
	}

	env := buildenv.Resolve(in.Environment)
	dev := env.DevMode()

	outputPath := filepath.Join(in.WorkDir, in.Project.Build.Dist)
	srcPath := filepath.Join(in.WorkDir, srcDir)

	return &Config{
		Entry: map[string]string{
			"main": in.Package.Main,
		},
		Target: "web",
		Output: Output{
			Path:       outputPath,
			Filename:   "js/[name]_[hash].js",
			PublicPath: "/",
		},
		Mode:    env,
		Devtool: cond(dev, Devtool("source-map"), Devtool("")),
		DevServer: DevServer{
			Port:               in.Project.DevLocal.DevServerPort,
			ContentBase:        outputPath,
			Hot:                dev,
			HistoryAPIFallback: true,
		},
		Optimization: Optimization{
			Minimize: !dev,
		},
		Plugins: plugins(env, outputPath, srcPath, in.Package.Version),
		Module: Module{
			Rules: rules(dev, in.Transpiler),
		},
		WatchOptions: WatchOptions{
			AggregateTimeout: 100,
		},
		Bail:  !dev,
		Cache: dev,
		Stats: Stats{
			Colors:       in.Colors,
			Reasons:      dev,
			Hash:         dev,
			Version:      dev,
			Timings:      true,
			Chunks:       dev,
			ChunkModules: dev,
			Cached:       dev,
			CachedAssets: dev,
		},
	}, nil
}

func plugins(env buildenv.Env, outputPath, srcPath, version string) []Plugin {
	dev := env.DevMode()

	list := []Plugin{
		{Name: CaseSensitivePathsPlugin},
		// compatibility with old loaders
		{Name: LoaderOptionsPlugin, Options: LoaderOptions{Minimize: !dev, Debug: dev}},
		{Name: DefinePlugin, Options: definitions(env)},
		{Name: CleanWebpackPlugin, Options: CleanOptions{Paths: []string{outputPath}}},
		{Name: ExtractTextWebpackPlugin, Options: ExtractTextOptions{
			Disable:  dev,
			Filename: "css/[name]_[hash].css",
		}},
		{Name: HtmlWebpackPlugin, Options: HtmlOptions{
			Filename: "index.html",
			TemplateParameters: map[string]any{
				"version": version,
			},
			Template: filepath.Join(srcPath, "index.html"),
		}},
	}

	if dev {
		return append(list,
			Plugin{Name: BundleAnalyzerPlugin, Options: BundleAnalyzerOptions{
				AnalyzerMode: "server",
				AnalyzerHost: "localhost",
				AnalyzerPort: analyzerPort,
				LogLevel:     "info",
				OpenAnalyzer: false,
			}},
			Plugin{Name: NamedModulesPlugin},
			Plugin{Name: HotModuleReplacementPlugin},
		)
	}

	// scope hoisting
	return append(list, Plugin{Name: ModuleConcatenationPlugin})
}

func rules(dev bool, transpiler Transpiler) []Rule {
	sourceMap := map[string]any{"sourceMap": dev}

	return []Rule{
		{
			Test:    imagePattern,
			Loader:  "file-loader",
			Options: map[string]any{"name": "img/[hash].[ext]"},
		},
		{
			Test:    stylePattern,
			Exclude: &excludeDeps,
			Extract: &Extract{
				Fallback: "style-loader",
				Use: []UseEntry{
					{Loader: "css-loader", Options: sourceMap},
					{Loader: "postcss-loader", Options: map[string]any{
						"plugins": []Plugin{
							{Name: "autoprefixer", Options: map[string]any{
								"browsers": []string{"ie >= 10", "last 4 version"},
							}},
						},
						"sourceMap": dev,
					}},
					{Loader: "resolve-url-loader"},
					{Loader: "sass-loader", Options: sourceMap},
				},
			},
		},
		{
			Test:    scriptPattern,
			Exclude: &excludeDeps,
			Use: []UseEntry{
				{Loader: "babel-loader", Options: transpiler.Resolve(dev)},
			},
		},
	}
}

func cond[T any](condition bool, trueVal, falseVal T) T {
	if condition {
		return trueVal
	}
	return falseVal
}
