package commands

import (
	"context"

	"github.com/wolfeidau/bundlecfg/internal/logger"
)

type ConfigCmd struct {
	SourceFlags `embed:""`
	Out         string `help:"write the configuration to this file instead of stdout" short:"o" default:""`
}

func (c *ConfigCmd) Run(ctx context.Context, globals *Globals) error {
	log := logger.Setup(globals.Debug)

	res, err := c.resolve(log)
	if err != nil {
		return err
	}

	return writeJSON(c.Out, res.bundle)
}
