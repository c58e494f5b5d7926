package webpack

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/wolfeidau/bundlecfg/internal/buildenv"
)

// Config mirrors the webpack configuration object.
type Config struct {
	Entry        map[string]string `json:"entry"`
	Target       string            `json:"target"`
	Output       Output            `json:"output"`
	Mode         buildenv.Env      `json:"mode"`
	Devtool      Devtool           `json:"devtool"`
	DevServer    DevServer         `json:"devServer"`
	Optimization Optimization      `json:"optimization"`
	Plugins      []Plugin          `json:"plugins"`
	Module       Module            `json:"module"`
	WatchOptions WatchOptions      `json:"watchOptions"`
	Bail         bool              `json:"bail"`
	Cache        bool              `json:"cache"`
	Stats        Stats             `json:"stats"`
}

type Output struct {
	Path       string `json:"path"`
	Filename   string `json:"filename"`
	PublicPath string `json:"publicPath"`
}

// Devtool selects the source map style, empty disables source maps.
type Devtool string

func (d Devtool) MarshalJSON() ([]byte, error) {
	if d == "" {
		return []byte("false"), nil
	}
	return json.Marshal(string(d))
}

type DevServer struct {
	Port               int    `json:"port"`
	ContentBase        string `json:"contentBase"`
	Hot                bool   `json:"hot"`
	HistoryAPIFallback bool   `json:"historyApiFallback"`
}

type Optimization struct {
	Minimize bool `json:"minimize"`
}

type WatchOptions struct {
	AggregateTimeout int `json:"aggregateTimeout"`
}

type Stats struct {
	Colors       bool `json:"colors"`
	Reasons      bool `json:"reasons"`
	Hash         bool `json:"hash"`
	Version      bool `json:"version"`
	Timings      bool `json:"timings"`
	Chunks       bool `json:"chunks"`
	ChunkModules bool `json:"chunkModules"`
	Cached       bool `json:"cached"`
	CachedAssets bool `json:"cachedAssets"`
}

type Module struct {
	Rules []Rule `json:"rules"`
}

// Rule applies a loader chain to every module whose path matches Test and not Exclude.
type Rule struct {
	Test    Pattern    `json:"test"`
	Exclude *Pattern   `json:"exclude,omitempty"`
	Loader  string     `json:"loader,omitempty"`
	Options any        `json:"options,omitempty"`
	Use     []UseEntry `json:"use,omitempty"`
	Extract *Extract   `json:"extract,omitempty"`
}

// Matches reports whether the rule applies to the module path.
func (r Rule) Matches(path string) bool {
	if !r.Test.MatchString(path) {
		return false
	}
	return r.Exclude == nil || !r.Exclude.MatchString(path)
}

// Loaders returns the loader names in the order they are listed.
func (r Rule) Loaders() []string {
	var loaders []string
	if r.Loader != "" {
		loaders = append(loaders, r.Loader)
	}
	for _, u := range r.Use {
		loaders = append(loaders, u.Loader)
	}
	if r.Extract != nil {
		for _, u := range r.Extract.Use {
			loaders = append(loaders, u.Loader)
		}
	}
	return loaders
}

type UseEntry struct {
	Loader  string `json:"loader"`
	Options any    `json:"options,omitempty"`
}

// Extract moves the output of the loader chain into a separate file, using
// Fallback when extraction is disabled.
type Extract struct {
	Fallback string     `json:"fallback"`
	Use      []UseEntry `json:"use"`
}

// Pattern is a module path pattern. It serialises as the source and flags of
// the equivalent JavaScript regular expression.
type Pattern struct {
	re     *regexp.Regexp
	source string
	flags  string
}

// MustPattern compiles a pattern, only the "i" flag is supported.
func MustPattern(source, flags string) Pattern {
	p, err := NewPattern(source, flags)
	if err != nil {
		panic(err)
	}
	return p
}

func NewPattern(source, flags string) (Pattern, error) {
	expr := source
	for _, f := range flags {
		switch f {
		case 'i':
			expr = "(?i)" + expr
		default:
			return Pattern{}, fmt.Errorf("unsupported pattern flag %q", f)
		}
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, err
	}

	return Pattern{re: re, source: source, flags: flags}, nil
}

func (p Pattern) MatchString(s string) bool {
	return p.re != nil && p.re.MatchString(s)
}

func (p Pattern) String() string {
	return "/" + strings.ReplaceAll(p.source, "/", `\/`) + "/" + p.flags
}

func (p Pattern) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Source string `json:"source"`
		Flags  string `json:"flags"`
	}{p.source, p.flags})
}
