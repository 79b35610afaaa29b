package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/tomz197/battlecursor/internal/config"
	"github.com/tomz197/battlecursor/internal/highscore"
	"github.com/tomz197/battlecursor/internal/web"
)

const (
	defaultHost       = "0.0.0.0"
	defaultPort       = "8080"
	defaultScoresPath = "/app/data/scores.yaml"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "web",
	})
	if config.GetEnv("LOG_LEVEL", "") == "debug" {
		logger.SetLevel(log.DebugLevel)
	}

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)

	presets, err := config.LoadPresets(config.GetEnv("PRESETS_FILE", ""))
	if err != nil {
		logger.Fatal("Could not load difficulty presets", "err", err)
	}

	srv := web.NewServer(web.Options{
		Presets: presets,
		Store:   highscore.NewFileStore(config.GetEnv("SCORES_FILE", defaultScoresPath), logger),
		Logger:  logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx, net.JoinHostPort(host, port)); err != nil {
		logger.Fatal("Server stopped", "err", err)
	}
}
