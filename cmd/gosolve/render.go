package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/njchilds90/gosolve"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type renderer struct {
	w      io.Writer
	format string

	heading *color.Color
	value   *color.Color
	notice  *color.Color
	failure *color.Color
}

func newRenderer(w io.Writer, format string, useColor bool) (*renderer, error) {
	switch format {
	case formatText, formatJSON, formatYAML:
	default:
		return nil, fmt.Errorf("unsupported output format %q (want text, json or yaml)", format)
	}
	r := &renderer{
		w:       w,
		format:  format,
		heading: color.New(color.Bold),
		value:   color.New(color.FgGreen),
		notice:  color.New(color.FgYellow),
		failure: color.New(color.FgRed),
	}
	if !useColor {
		for _, c := range []*color.Color{r.heading, r.value, r.notice, r.failure} {
			c.DisableColor()
		}
	}
	return r, nil
}

// errorPayload is the structured form of a *gosolve.Error.
type errorPayload struct {
	Error  string `json:"error" yaml:"error"`
	Kind   string `json:"kind" yaml:"kind"`
	Side   string `json:"side,omitempty" yaml:"side,omitempty"`
	Input  string `json:"input,omitempty" yaml:"input,omitempty"`
	Offset *int   `json:"offset,omitempty" yaml:"offset,omitempty"`
}

func newErrorPayload(err error) errorPayload {
	p := errorPayload{Error: err.Error(), Kind: gosolve.KindOf(err).String()}
	var gerr *gosolve.Error
	if errors.As(err, &gerr) && gerr.Kind == gosolve.KindParse {
		p.Side = gerr.Side
		p.Input = gerr.Input
		offset := gerr.Offset
		p.Offset = &offset
	}
	return p
}

func (r *renderer) Result(res *gosolve.Result) error {
	switch r.format {
	case formatJSON:
		return r.encodeJSON(res)
	case formatYAML:
		return r.encodeYAML(res)
	}

	switch res.Outcome {
	case gosolve.NoSolutions, gosolve.InfiniteSolutions:
		_, err := r.notice.Fprintln(r.w, res.Display())
		return err
	}
	lines := strings.Split(res.Display(), "\n")
	if _, err := r.heading.Fprintln(r.w, lines[0]); err != nil {
		return err
	}
	for _, root := range res.Roots {
		if _, err := fmt.Fprintf(r.w, "%s = %s\n", root.Label, r.value.Sprint(root.Value)); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) Error(err error) error {
	switch r.format {
	case formatJSON:
		return r.encodeJSON(newErrorPayload(err))
	case formatYAML:
		return r.encodeYAML(newErrorPayload(err))
	}
	_, werr := r.failure.Fprintln(r.w, gosolve.DisplayError(err))
	return werr
}

func (r *renderer) encodeJSON(v interface{}) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json.Encode() > %w", err)
	}
	return nil
}

func (r *renderer) encodeYAML(v interface{}) error {
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml.Encode() > %w", err)
	}
	return enc.Close()
}
