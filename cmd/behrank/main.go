// Command behrank runs one collection pass: it crawls the configured
// search queries, enriches every discovered project and author, and
// appends this run's observations to the SQLite store. Repeated runs
// are meant to be driven by an external scheduler (cron).
//
// Usage:
//
//	behrank -config behrank.yaml
//	behrank -config behrank.yaml -secondary   # include secondary queries
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "modernc.org/sqlite"

	"github.com/vmaslov/behrank/collect"
)

func main() {
	configPath := flag.String("config", "behrank.yaml", "path to YAML config file")
	dbPath := flag.String("db", "", "override database path from config")
	secondary := flag.Bool("secondary", false, "include secondary queries in this run")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := collect.LoadConfigFile(*configPath)
	if err != nil {
		logger.Error("behrank: config", "error", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	if err := collect.Run(ctx, cfg, logger, *secondary); err != nil {
		logger.Error("behrank: run failed", "error", err)
		os.Exit(1)
	}
}
