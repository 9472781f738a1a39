package main

import (
	"fmt"
	"net/url"
	"os"

	"techjobs/internal/cli"
	"techjobs/internal/config"
	"techjobs/internal/core/logger"
	"techjobs/internal/core/progress"
	"techjobs/internal/core/types"
	"techjobs/internal/source"
	"techjobs/internal/store"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"
)

type ListCmd struct {
	Column string `arg:"" help:"Column to list, or 'all' for every job"`
}

type SearchCmd struct {
	Column string `arg:"" help:"Column to search, or 'all' for every column"`
	Term   string `arg:"" optional:"" help:"Case-insensitive search term"`
}

type ColumnsCmd struct{}

type ConfigCmd struct{}

type CLI struct {
	ConfigFile string `short:"c" long:"config" default:"${config_file}" help:"Path to config file"`
	Data       string `long:"data" help:"CSV location (path, file://, http(s):// or s3://), overrides config"`
	ServerURL  string `short:"u" long:"url" help:"Query a running techjobsd instead of loading the data locally"`
	Debug      bool   `short:"d" long:"debug" help:"Enable debug logging"`

	Version kong.VersionFlag `short:"v" long:"version" help:"Print version and exit"`
	List    ListCmd          `cmd:"list" help:"List the values of a column, or all jobs"`
	Search  SearchCmd        `cmd:"search" help:"Search jobs by column, or across all columns"`
	Columns ColumnsCmd       `cmd:"columns" help:"List the dataset's columns"`
	Config  ConfigCmd        `cmd:"config" help:"Print the effective configuration"`
}

// loadConfig resolves the config file and applies command line overrides.
func (c *CLI) loadConfig() (*types.Config, error) {
	cfg, err := config.LoadConfig(config.ResolveConfigPath(c.ConfigFile))
	if err != nil {
		return nil, err
	}
	if c.Debug {
		cfg.Debug = true
		cfg.LogLevel = "debug"
	}
	if c.Data != "" {
		cfg.Data.Location = c.Data
	}
	if c.ServerURL != "" {
		u, err := url.Parse(c.ServerURL)
		if err != nil {
			return nil, fmt.Errorf("invalid server url %q: %w", c.ServerURL, err)
		}
		cfg.Client.ServerURL = u
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger.SetDefaultLevel(level)
	return cfg, config.Validate(cfg)
}

// console builds a console over a remote daemon when --url is given, and
// over a local store otherwise.
func (c *CLI) console() (*cli.Console, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}

	if c.ServerURL != "" {
		client := cli.NewClient(cfg.Client.ServerURL.String())
		return cli.NewConsole(client, os.Stdout), nil
	}

	src, err := source.New(cfg.Data)
	if err != nil {
		return nil, err
	}
	opts := append(store.FromConfig(cfg.Data), store.WithLogger(logger.NewLogger(logger.WithName("store"))))
	if isatty.IsTerminal(os.Stderr.Fd()) {
		opts = append(opts, store.WithObserver(progress.NewLoadBar()))
	}
	return cli.NewConsole(cli.NewLocalQuerier(store.New(src, opts...)), os.Stdout), nil
}

func (l *ListCmd) Run(root *CLI) error {
	ctx, cancel := types.DefaultSignalNotifySubContext()
	defer cancel()

	console, err := root.console()
	if err != nil {
		return err
	}
	return console.List(ctx, l.Column)
}

func (s *SearchCmd) Run(root *CLI) error {
	ctx, cancel := types.DefaultSignalNotifySubContext()
	defer cancel()

	console, err := root.console()
	if err != nil {
		return err
	}
	return console.Search(ctx, s.Column, s.Term)
}

func (c *ColumnsCmd) Run(root *CLI) error {
	ctx, cancel := types.DefaultSignalNotifySubContext()
	defer cancel()

	console, err := root.console()
	if err != nil {
		return err
	}
	return console.Columns(ctx)
}

func (c *ConfigCmd) Run(root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	return config.WriteYAML(os.Stdout, config.Redacted(cfg))
}

func main() {
	var root CLI
	kctx := kong.Parse(
		&root,
		kong.Vars{
			"version":     "0.1.0",
			"config_file": "",
		},
		kong.Name("techjobs"),
		kong.Description("Browse and search job listings"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	if err := kctx.Run(&root); err != nil {
		logger.NewLogger(logger.WithName("techjobs")).Fatal("Command failed", "error", err)
	}
}
