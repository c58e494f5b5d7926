package webpack

import "github.com/wolfeidau/bundlecfg/internal/buildenv"

const (
	CaseSensitivePathsPlugin   = "CaseSensitivePathsPlugin"
	LoaderOptionsPlugin        = "webpack.LoaderOptionsPlugin"
	DefinePlugin               = "webpack.DefinePlugin"
	CleanWebpackPlugin         = "CleanWebpackPlugin"
	ExtractTextWebpackPlugin   = "ExtractTextWebpackPlugin"
	HtmlWebpackPlugin          = "HtmlWebpackPlugin"
	BundleAnalyzerPlugin       = "BundleAnalyzerPlugin"
	NamedModulesPlugin         = "webpack.NamedModulesPlugin"
	HotModuleReplacementPlugin = "webpack.HotModuleReplacementPlugin"
	ModuleConcatenationPlugin  = "webpack.optimize.ModuleConcatenationPlugin"
)

// Plugin is a bundler plugin instance, identified by its constructor name.
type Plugin struct {
	Name    string `json:"name"`
	Options any    `json:"options,omitempty"`
}

type LoaderOptions struct {
	Minimize bool `json:"minimize"`
	Debug    bool `json:"debug"`
}

type CleanOptions struct {
	Paths []string `json:"paths"`
}

type ExtractTextOptions struct {
	Disable  bool   `json:"disable"`
	Filename string `json:"filename"`
}

type HtmlOptions struct {
	Filename           string         `json:"filename"`
	TemplateParameters map[string]any `json:"templateParameters"`
	Template           string         `json:"template"`
}

type BundleAnalyzerOptions struct {
	AnalyzerMode string `json:"analyzerMode"`
	AnalyzerHost string `json:"analyzerHost"`
	AnalyzerPort int    `json:"analyzerPort"`
	LogLevel     string `json:"logLevel"`
	OpenAnalyzer bool   `json:"openAnalyzer"`
}

// Definitions maps identifiers to the source text substituted for them at build time.
type Definitions map[string]any

func definitions(env buildenv.Env) Definitions {
	return Definitions{
		"DEV_MODE":             env.DevMode(),
		"process.env.NODE_ENV": `"` + env.String() + `"`,
		"process.env.BROWSER":  true,
	}
}

// Plugin returns the first plugin with the given name.
func (c *Config) Plugin(name string) (Plugin, bool) {
	for _, p := range c.Plugins {
		if p.Name == name {
			return p, true
		}
	}
	return Plugin{}, false
}

// PluginNames lists the configured plugins in order.
func (c *Config) PluginNames() []string {
	names := make([]string, 0, len(c.Plugins))
	for _, p := range c.Plugins {
		names = append(names, p.Name)
	}
	return names
}
