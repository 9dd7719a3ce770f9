package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/pollwatch/cmd/pollwatch/commands"
	"git.home.luguber.info/inful/pollwatch/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("pollwatch"),
		kong.Description("Polling directory watcher: detects additions, modifications and removals by periodic re-scanning."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)

	err := ctx.Run(&commands.Global{Logger: slog.Default()}, &cli)
	ctx.FatalIfErrorf(err)
}
