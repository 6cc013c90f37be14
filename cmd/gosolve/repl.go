package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/njchilds90/gosolve"
)

const replHelp = `Type an equation such as 3*x + 2 = 0 and press enter.
Commands:
  :linear      solve equations as linear
  :quadratic   solve equations as quadratic
  :toggle      switch between linear and quadratic
  :clear       clear the input and the result
  :help        show this help
  :quit        exit`

func newReplCommand() *cobra.Command {
	var noColor bool

	command := &cobra.Command{
		Use:   "repl",
		Short: "Solve equations interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			typ, err := equationType("", cfg)
			if err != nil {
				return err
			}

			session := gosolve.NewSession(newEvaluator(cfg), cfg.Display.Placeholder)
			session.Select(typ)
			return runRepl(session, cmd.InOrStdin(), cmd.OutOrStdout(), cfg.Display.Color && !noColor)
		},
	}
	command.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	return command
}

func runRepl(session *gosolve.Session, in io.Reader, out io.Writer, useColor bool) error {
	prompt := color.New(color.FgCyan)
	failure := color.New(color.FgRed)
	if !useColor {
		prompt.DisableColor()
		failure.DisableColor()
	}

	if _, err := fmt.Fprintln(out, session.Output()); err != nil {
		return err
	}
	scanner := bufio.NewScanner(in)
	for {
		if _, err := prompt.Fprintf(out, "[%s]> ", session.Type()); err != nil {
			return err
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		var msg string
		switch line {
		case "":
			continue
		case ":quit", ":q", ":exit":
			return nil
		case ":help":
			msg = replHelp
		case ":linear":
			session.Select(gosolve.Linear)
			msg = "Equation type: linear"
		case ":quadratic":
			session.Select(gosolve.Quadratic)
			msg = "Equation type: quadratic"
		case ":toggle":
			session.Toggle()
			msg = "Equation type: " + session.Type().String()
		case ":clear":
			session.Reset()
			msg = session.Output()
		default:
			if strings.HasPrefix(line, ":") {
				msg = fmt.Sprintf("unknown command %s, type :help", line)
				break
			}
			session.SetText(line)
			msg = session.Solve()
		}

		var err error
		if strings.HasPrefix(msg, "Error: ") {
			_, err = failure.Fprintln(out, msg)
		} else {
			_, err = fmt.Fprintln(out, msg)
		}
		if err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	_, err := fmt.Fprintln(out)
	return err
}
