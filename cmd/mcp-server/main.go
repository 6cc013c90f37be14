// cmd/mcp-server/main.go: JSON-lines tool server for gosolve
//
// Reads one JSON tool request per line on stdin and writes one JSON response
// per line on stdout, so agent frameworks can drive the evaluator as a
// subprocess.
//
// Usage:
//
//	go run ./cmd/mcp-server
//	echo '{"tool":"evaluate","params":{"equation":"x**2 - 4 = 0","type":"quadratic"}}' | go run ./cmd/mcp-server
//
// Set GOSOLVE_CONFIG to use a config file other than ./config.yaml.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/njchilds90/gosolve"
	"github.com/njchilds90/gosolve/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ev := gosolve.New(
		gosolve.WithUnknown(cfg.Evaluator.Unknown),
		gosolve.WithSignificantDigits(cfg.Evaluator.SignificantDigits),
		gosolve.WithRootCheck(cfg.Evaluator.VerifyRoots),
		gosolve.WithLogger(logger),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("gosolve tool server reading requests from stdin")
	if err := ev.ServeTools(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("ev.ServeTools() > %w", err)
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(os.Getenv("GOSOLVE_CONFIG"))
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}
