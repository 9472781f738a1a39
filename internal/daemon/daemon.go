package daemon

import (
	"context"
	"fmt"
	"net/http"

	"techjobs/internal/api"
	"techjobs/internal/config"
	"techjobs/internal/core/logger"
	"techjobs/internal/core/types"
	"techjobs/internal/source"
	"techjobs/internal/store"
)

type DaemonOption func(*Daemon)

// WithLogger sets the logger for the daemon.
func WithLogger(l *logger.Logger) DaemonOption {
	return func(d *Daemon) {
		d.logger = l
	}
}

// WithStore replaces the store built from configuration.
func WithStore(s *store.Store) DaemonOption {
	return func(d *Daemon) {
		d.store = s
	}
}

// WithDataLocation overrides the configured data location.
func WithDataLocation(location string) DaemonOption {
	return func(d *Daemon) {
		if location != "" {
			d.cfg.Data.Location = location
		}
	}
}

// Daemon serves job data queries over HTTP.
type Daemon struct {
	logger *logger.Logger
	cfg    *types.Config
	store  *store.Store
	server *api.Server
}

// NewDaemon loads configuration and prepares the store and HTTP server.
// The dataset is not read until Run.
func NewDaemon(configFile string, debug bool, opts ...DaemonOption) (*Daemon, error) {
	cfg, err := config.LoadConfig(config.ResolveConfigPath(configFile))
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.Debug = true
		cfg.LogLevel = "debug"
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger.SetDefaultLevel(level)

	d := &Daemon{
		logger: logger.NewLogger(logger.WithName("daemon")),
		cfg:    cfg,
	}
	for _, opt := range opts {
		opt(d)
	}

	if err := config.Validate(d.cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if d.store == nil {
		src, err := source.New(d.cfg.Data)
		if err != nil {
			return nil, err
		}
		storeOpts := append(store.FromConfig(d.cfg.Data), store.WithLogger(d.logger.Named("store")))
		d.store = store.New(src, storeOpts...)
	}

	d.server = api.NewServer(
		api.WithListen(d.cfg.Server.ListenAddr),
		api.WithLogger(d.logger.Named("server")),
	)
	if err := d.RegisterHandlers(d.server); err != nil {
		return nil, err
	}

	return d, nil
}

// Store returns the dataset store served by the daemon.
func (d *Daemon) Store() *store.Store {
	return d.store
}

// Run loads the dataset and serves queries until ctx is cancelled. A failed
// load does not stop the daemon; queries try again and /health reports it.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.store.EnsureLoaded(ctx); err != nil {
		d.logger.Warn("Serving without job data", "error", err)
	}
	return d.server.Run(ctx)
}

// Handler returns the HTTP handler serving every query route.
func (d *Daemon) Handler() http.Handler {
	return d.server.Handler()
}
