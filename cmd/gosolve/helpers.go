package main

import (
	"fmt"
	"log/slog"

	"github.com/njchilds90/gosolve"
	"github.com/njchilds90/gosolve/internal/config"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

func newEvaluator(cfg *config.Config) *gosolve.Evaluator {
	return gosolve.New(
		gosolve.WithUnknown(cfg.Evaluator.Unknown),
		gosolve.WithSignificantDigits(cfg.Evaluator.SignificantDigits),
		gosolve.WithRootCheck(cfg.Evaluator.VerifyRoots),
		gosolve.WithLogger(slog.Default()),
	)
}

// equationType resolves the --type flag, falling back to the configured
// default when the flag is empty.
func equationType(flagValue string, cfg *config.Config) (gosolve.EquationType, error) {
	if flagValue == "" {
		flagValue = cfg.Display.DefaultType
	}
	typ, err := gosolve.ParseEquationType(flagValue)
	if err != nil {
		return 0, fmt.Errorf("invalid --type: %w", err)
	}
	return typ, nil
}
