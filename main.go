package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vessel_trmnl/internal/config"
	"vessel_trmnl/internal/daemon"
	"vessel_trmnl/internal/geo"
)

func initLogger(cfg *config.Config) {
	var logLevel slog.Level
	switch cfg.Log.Level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}

func main() {
	configPath := flag.String("config", "", "Path to config file (YAML)")
	flag.Parse()

	if *configPath != "" {
		os.Setenv("VESSEL_TRMNL_CONFIG_PATH", *configPath)
	}

	cfg, err := config.Load()
	if err != nil {
		// logger isn't initialized yet
		basicLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		basicLogger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	d, err := daemon.New(daemon.Config{
		DBPath:         cfg.DBPath,
		FleetSize:      cfg.Fleet.Size,
		Seed:           cfg.Fleet.Seed,
		TickInterval:   time.Duration(cfg.Fleet.TickInterval) * time.Second,
		BatchSize:      cfg.BatchSize,
		BatchTimeout:   time.Duration(cfg.BatchTimeout) * time.Second,
		ExportPath:     cfg.Export.Path,
		ExportInterval: time.Duration(cfg.Export.Interval) * time.Second,
	})
	if err != nil {
		slog.Error("Failed to initialize daemon", "error", err)
		os.Exit(1)
	}

	store := d.Store()
	opts := store.FilterOptions()
	vessels := store.Vessels()
	slog.Info("Fleet ready",
		"vessel_count", len(vessels),
		"vessel_types", opts.VesselTypes,
		"statuses", opts.Statuses,
		"flags", opts.Flags,
		"center", geo.Center(vessels),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := d.Start(); err != nil {
		slog.Error("Failed to start daemon", "error", err)
		if err := d.Stop(); err != nil {
			slog.Error("Error stopping daemon", "error", err)
		}
		os.Exit(1)
	}

	<-sigChan
	slog.Info("Received interrupt signal, shutting down...")

	if err := d.Stop(); err != nil {
		slog.Error("Error stopping daemon", "error", err)
	}

	slog.Info("Shutdown complete")
}
