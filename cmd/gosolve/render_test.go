package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gosolve"
)

func TestRenderer_Text(t *testing.T) {
	ev := gosolve.New()
	tests := []struct {
		name     string
		equation string
		typ      gosolve.EquationType
		want     string
	}{
		{name: "infinite", equation: "2x = x + x", typ: gosolve.Linear, want: "The equation has infinitely many solutions\n"},
		{name: "repeated", equation: "x^2 = 0", typ: gosolve.Quadratic, want: "Root of the equation (repeated):\nx = 0\n"},
		{name: "symbolic", equation: "a*x + b = 0", typ: gosolve.Linear, want: "Solution of the equation:\nx = -b/a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ev.Evaluate(tt.equation, tt.typ)
			require.NoError(t, err)

			var out bytes.Buffer
			r, err := newRenderer(&out, formatText, false)
			require.NoError(t, err)
			require.NoError(t, r.Result(res))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestRenderer_ErrorPayload(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errorPayload
	}{
		{
			name: "type mismatch",
			err:  &gosolve.Error{Kind: gosolve.KindTypeMismatch, Message: "the equation is not quadratic", Offset: -1},
			want: errorPayload{Error: "the equation is not quadratic", Kind: "type_mismatch"},
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: errorPayload{Error: "boom", Kind: "evaluation"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			r, err := newRenderer(&out, formatJSON, false)
			require.NoError(t, err)
			require.NoError(t, r.Error(tt.err))

			var got errorPayload
			require.NoError(t, json.Unmarshal(out.Bytes(), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewRenderer_UnsupportedFormat(t *testing.T) {
	_, err := newRenderer(&bytes.Buffer{}, "xml", false)
	assert.Error(t, err)
}
