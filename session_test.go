package gosolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/njchilds90/gosolve"
)

func TestSession(t *testing.T) {
	s := gosolve.NewSession(gosolve.New(), "")
	assert.Equal(t, gosolve.DefaultPlaceholder, s.Output())
	assert.Equal(t, gosolve.Linear, s.Type())

	s.SetText("x**2 - 4 = 0")
	s.Select(gosolve.Quadratic)
	assert.Equal(t, "Roots of the equation:\nx1 = -2.000\nx2 = 2.000", s.Solve())
	assert.Equal(t, s.Output(), "Roots of the equation:\nx1 = -2.000\nx2 = 2.000")

	s.Toggle()
	assert.Equal(t, gosolve.Linear, s.Type())
	assert.Equal(t, "Error: the equation is not linear (degree 2 > 1)", s.Solve())

	s.Reset()
	assert.Equal(t, "", s.Text())
	assert.Equal(t, gosolve.DefaultPlaceholder, s.Output())
	assert.Equal(t, gosolve.Linear, s.Type(), "reset keeps the selected type")
}

func TestSession_ExactlyOneTypeSelected(t *testing.T) {
	s := gosolve.NewSession(nil, "Type an equation")
	assert.Equal(t, "Type an equation", s.Output())

	for i := 0; i < 4; i++ {
		s.Toggle()
		typ := s.Type()
		assert.True(t, typ == gosolve.Linear || typ == gosolve.Quadratic)
	}

	s.Select(gosolve.Quadratic)
	s.Select(gosolve.EquationType(0))
	assert.Equal(t, gosolve.Quadratic, s.Type(), "invalid selections are ignored")
}

func TestSession_EmptyInput(t *testing.T) {
	s := gosolve.NewSession(gosolve.New(), "")
	assert.Equal(t, "Error: enter an equation", s.Solve())
}
