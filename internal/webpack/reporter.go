package webpack

import (
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/wolfeidau/bundlecfg/internal/buildenv"
	"github.com/wolfeidau/bundlecfg/internal/project"
)

// Reporter receives a summary of the resolved configuration.
type Reporter interface {
	Report(env buildenv.Env, cfg *project.Config, pkg *project.Package)
}

// LogReporter writes the summary to a zerolog logger.
type LogReporter struct {
	logger zerolog.Logger
}

func NewLogReporter(logger zerolog.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

func (r *LogReporter) Report(env buildenv.Env, cfg *project.Config, pkg *project.Package) {
	data, err := json.Marshal(cfg)
	if err != nil {
		r.logger.Warn().Err(err).Msg("failed to encode project configuration")
		data = []byte("null")
	}

	r.logger.Info().
		Str("build_env", env.String()).
		RawJSON("project", data).
		Msg("result project configuration")

	r.logger.Debug().Str("main", pkg.Main).Str("version", pkg.Version).Msg("package entry")
}
