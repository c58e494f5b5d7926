package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/wolfeidau/bundlecfg/internal/assets"
	"github.com/wolfeidau/bundlecfg/internal/logger"
)

type BuildCmd struct {
	SourceFlags `embed:""`
}

func (c *BuildCmd) Run(ctx context.Context, globals *Globals) error {
	log := logger.Setup(globals.Debug)
	ctx = log.WithContext(ctx)

	res, err := c.resolve(log)
	if err != nil {
		return err
	}

	cfg, err := assets.FromWebpack(res.bundle, res.workDir)
	if err != nil {
		return fmt.Errorf("failed to configure build: %w", err)
	}

	started := time.Now()
	if err := assets.New(cfg).Build(ctx); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	log.Info().
		Str("build_env", res.env.String()).
		Str("output", cfg.OutputDir).
		Dur("duration", time.Since(started)).
		Msg("build complete")

	return nil
}
