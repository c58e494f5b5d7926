package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/wolfeidau/bundlecfg/cmd/bundlecfg/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Config  commands.ConfigCmd `cmd:"" help:"Print the resolved webpack configuration"`
		Babel   commands.BabelCmd  `cmd:"" help:"Print the resolved babel-loader options"`
		Build   commands.BuildCmd  `cmd:"" help:"Build assets natively with esbuild"`
		Debug   bool               `help:"Enable debug mode."`
		Version kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Description("Resolve front-end build configuration."),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
