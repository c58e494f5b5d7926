package commands

import (
	"context"

	"github.com/wolfeidau/bundlecfg/internal/logger"
)

type BabelCmd struct {
	SourceFlags `embed:""`
	Mode        string `help:"transpile mode, auto follows the build environment" default:"auto" enum:"auto,development,production"`
	Out         string `help:"write the options to this file instead of stdout" short:"o" default:""`
}

func (c *BabelCmd) Run(ctx context.Context, globals *Globals) error {
	log := logger.Setup(globals.Debug)

	res, err := c.resolve(log)
	if err != nil {
		return err
	}

	devMode := res.env.DevMode()
	switch c.Mode {
	case "development":
		devMode = true
	case "production":
		devMode = false
	}

	return writeJSON(c.Out, res.resolver.Resolve(devMode))
}
