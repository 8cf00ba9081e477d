package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/luksz/PokerNow-Absolute-Cinema/cmd/pokernow/shared"
	"github.com/luksz/PokerNow-Absolute-Cinema/internal/config"
	"github.com/luksz/PokerNow-Absolute-Cinema/internal/server"
)

// ServeCmd runs the upload/analyze HTTP server.
type ServeCmd struct {
	Addr     string  `help:"Listen address (overrides config)"`
	BigBlind float64 `help:"Big blind size; overrides per-upload auto-detection"`
	Config   string  `help:"HCL config file" type:"path"`
	Debug    bool    `help:"Enable debug logging"`
}

func (c *ServeCmd) Run() error {
	cliLogger := shared.SetupLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Server.Address = c.Addr
	}

	level := log.InfoLevel
	if c.Debug || cfg.Server.LogLevel == "debug" {
		level = log.DebugLevel
	}
	srvLogger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})

	srv := server.New(cfg.Server, c.BigBlind, srvLogger)

	cliLogger.Info().
		Str("address", cfg.Server.Address).
		Int("max_upload_mb", cfg.Server.MaxUploadMB).
		Msg("Starting PokerNow analyzer server")

	ctx := shared.SetupSignalHandlerWithLogger(cliLogger)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		cliLogger.Info().Msg("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}
