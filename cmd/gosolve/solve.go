package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

var errEvaluationFailed = errors.New("evaluation failed")

func newSolveCommand() *cobra.Command {
	var (
		typeFlag   string
		outputFlag string
		noColor    bool
	)

	command := &cobra.Command{
		Use:   "solve <equation>",
		Short: "Solve a linear or quadratic equation, e.g. gosolve solve --type quadratic \"x**2 - 4 = 0\"",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			typ, err := equationType(typeFlag, cfg)
			if err != nil {
				return err
			}
			format := cfg.Display.Format
			if outputFlag != "" {
				format = outputFlag
			}
			r, err := newRenderer(cmd.OutOrStdout(), format, cfg.Display.Color && !noColor)
			if err != nil {
				return err
			}

			// Unquoted equations arrive split on spaces.
			equation := strings.Join(args, " ")
			res, err := newEvaluator(cfg).Evaluate(equation, typ)
			if err != nil {
				slog.Debug("evaluation failed", "equation", equation, "type", typ, "error", err)
				if rerr := r.Error(err); rerr != nil {
					return fmt.Errorf("r.Error() > %w", rerr)
				}
				return fmt.Errorf("%w: %v", errEvaluationFailed, err)
			}
			if err := r.Result(res); err != nil {
				return fmt.Errorf("r.Result() > %w", err)
			}
			return nil
		},
	}

	command.Flags().StringVarP(&typeFlag, "type", "t", "", "equation type: linear or quadratic (default from config)")
	command.Flags().StringVarP(&outputFlag, "output", "o", "", "output format: text, json or yaml (default from config)")
	command.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	return command
}
