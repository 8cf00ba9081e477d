package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Analyze AnalyzeCmd       `cmd:"" help:"Analyze PokerNow CSV logs and print per-player stats"`
	Serve   ServeCmd         `cmd:"" help:"Run the log upload and analysis HTTP server"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokernow"),
		kong.Description("Per-player behavioral statistics from PokerNow hand-history logs"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
