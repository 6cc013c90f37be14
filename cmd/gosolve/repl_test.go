package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gosolve"
)

func TestNewReplCommand(t *testing.T) {
	cmd := newReplCommand()

	assert.Equal(t, "repl", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Flags().Lookup("no-color"))
}

func TestRunRepl(t *testing.T) {
	input := strings.Join([]string{
		"3*x + 2 = 0",
		":quadratic",
		"x**2 - 4 = 0",
		":toggle",
		"x**2 = 1",
		"",
		":clear",
		":bogus",
		":quit",
		"x = 1",
	}, "\n")
	session := gosolve.NewSession(gosolve.New(), "")
	var out bytes.Buffer
	require.NoError(t, runRepl(session, strings.NewReader(input), &out, false))

	got := out.String()
	for _, want := range []string{
		gosolve.DefaultPlaceholder,
		"[linear]> Solution of the equation:\nx = -0.6667\n",
		"Equation type: quadratic",
		"[quadratic]> Roots of the equation:\nx1 = -2.000\nx2 = 2.000\n",
		"Equation type: linear",
		"Error: the equation is not linear (degree 2 > 1)",
		"unknown command :bogus, type :help",
	} {
		assert.Contains(t, got, want)
	}
	assert.NotContains(t, got, "x = 1.000", "input after :quit is not evaluated")
	assert.Equal(t, "", session.Text(), ":clear resets the text")
}

func TestRunRepl_EOF(t *testing.T) {
	session := gosolve.NewSession(gosolve.New(), "Ready")
	var out bytes.Buffer
	require.NoError(t, runRepl(session, strings.NewReader(":help\n"), &out, false))
	assert.True(t, strings.HasPrefix(out.String(), "Ready\n"))
	assert.Contains(t, out.String(), ":toggle")
}

func TestRunRepl_FromConfig(t *testing.T) {
	path := writeConfig(t, "display:\n  color: false\n  default_type: quadratic\n  placeholder: Go ahead\n")
	t.Cleanup(func() { configFile = "" })

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("x^2 - 9 = 0\n"))
	cmd.SetArgs([]string{"--config", path, "repl"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Go ahead\n[quadratic]> Roots of the equation:\nx1 = -3.000\nx2 = 3.000")
}
