package babel

import "slices"

// blacklistedPresets are dropped from the project's presets because the
// resolver supplies its own configured "env" preset.
var blacklistedPresets = []string{
	"es2015",
	"es2016",
	"es2017",
	"es2018",
	"latest",
	"env",
}

// devPlugins attach source location and __self metadata to JSX elements so
// React can produce better warnings.
var devPlugins = []string{
	"transform-react-jsx-source",
	"transform-react-jsx-self",
}

// LoaderOptions are the options passed to babel-loader.
type LoaderOptions struct {
	CacheDirectory bool    `json:"cacheDirectory"`
	Babelrc        bool    `json:"babelrc"`
	Presets        []Entry `json:"presets"`
	Plugins        []Entry `json:"plugins"`
}

// Merge returns the fixed entries followed by every external entry that is not
// excluded. Fixed entries always take precedence.
func Merge[T any](fixed, external []T, exclude func(T) bool) []T {
	merged := make([]T, 0, len(fixed)+len(external))
	merged = append(merged, fixed...)
	for _, item := range external {
		if exclude != nil && exclude(item) {
			continue
		}
		merged = append(merged, item)
	}
	return merged
}

// Blacklisted reports whether the entry would conflict with the base preset.
func Blacklisted(e Entry) bool {
	return slices.Contains(blacklistedPresets, e.Name)
}

// Resolver computes babel-loader options from a project's base configuration.
type Resolver struct {
	babelrc *Babelrc
}

func NewResolver(babelrc *Babelrc) *Resolver {
	return &Resolver{babelrc: babelrc}
}

// Resolve returns the loader options for the given mode.
func (r *Resolver) Resolve(devMode bool) LoaderOptions {
	presets := Merge([]Entry{basePreset()}, r.babelrc.Presets, Blacklisted)

	var extra []Entry
	if devMode {
		for _, name := range devPlugins {
			extra = append(extra, Named(name))
		}
	}
	plugins := Merge(Merge(nil, r.babelrc.Plugins, diagnostic), extra, nil)

	return LoaderOptions{
		CacheDirectory: devMode,
		Babelrc:        false,
		Presets:        presets,
		Plugins:        plugins,
	}
}

// diagnostic reports whether the entry is one of the dev only plugins, which
// are controlled by the mode rather than the project.
func diagnostic(e Entry) bool {
	return slices.Contains(devPlugins, e.Name)
}

// basePreset targets the latest stable ECMAScript features.
func basePreset() Entry {
	return WithOptions("env", map[string]any{
		"modules": false,
		"loose":   true,
	})
}
