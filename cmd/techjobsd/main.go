package main

import (
	"techjobs/internal/core/logger"
	"techjobs/internal/core/types"
	"techjobs/internal/daemon"

	"github.com/alecthomas/kong"
)

type ServeCmd struct {
	ConfigFile string `short:"c" long:"config" default:"${config_file}" help:"Path to config file"`
	Data       string `long:"data" help:"CSV location (path, file://, http(s):// or s3://), overrides config"`
	Debug      bool   `short:"d" long:"debug" help:"Enable debug logging"`
}

type CLI struct {
	Version kong.VersionFlag `short:"v" long:"version" help:"Print version and exit"`
	Serve   ServeCmd         `cmd:"serve" default:"1" help:"Serve job data over HTTP"`
}

func (s *ServeCmd) Run() error {
	ctx, cancel := types.DefaultSignalNotifySubContext()
	defer cancel()

	d, err := daemon.NewDaemon(s.ConfigFile, s.Debug, daemon.WithDataLocation(s.Data))
	if err != nil {
		return err
	}
	return d.Run(ctx)
}

func main() {
	var cli CLI
	kctx := kong.Parse(
		&cli,
		kong.Vars{
			"version":     "0.1.0",
			"config_file": "",
		},
		kong.Name("techjobsd"),
		kong.Description("Serve the job listings dataset over HTTP"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	if err := kctx.Run(); err != nil {
		logger.NewLogger(logger.WithName("techjobsd")).Fatal("Daemon failed", "error", err)
	}
}
