package gosolve

import (
	"fmt"
	"strings"

	"github.com/njchilds90/gosolve/symbolic"
)

// Outcome is the shape of a successful evaluation.
type Outcome int

const (
	Roots Outcome = iota
	RepeatedRoot
	NoSolutions
	InfiniteSolutions
)

func (o Outcome) String() string {
	switch o {
	case Roots:
		return "roots"
	case RepeatedRoot:
		return "repeated_root"
	case NoSolutions:
		return "no_solutions"
	case InfiniteSolutions:
		return "infinite_solutions"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// Root is one formatted solution.
type Root struct {
	Label string `json:"label" yaml:"label"`
	// Value is the decimal rendering, or the exact form when the root does
	// not reduce to a number.
	Value string `json:"value" yaml:"value"`
	Exact string `json:"exact" yaml:"exact"`

	// Set only when the root check is enabled and the root is real.
	Verified bool     `json:"verified,omitempty" yaml:"verified,omitempty"`
	Residual *float64 `json:"residual,omitempty" yaml:"residual,omitempty"`

	Expr symbolic.Expr `json:"-" yaml:"-"`
}

func (r Root) String() string { return r.Label + " = " + r.Value }

// Result is a successful evaluation.
type Result struct {
	Equation   string       `json:"equation" yaml:"equation"`
	Type       EquationType `json:"type" yaml:"type"`
	Unknown    string       `json:"unknown" yaml:"unknown"`
	Normalized string       `json:"normalized" yaml:"normalized"`
	Degree     int          `json:"degree" yaml:"degree"`
	Outcome    Outcome      `json:"outcome" yaml:"outcome"`
	Roots      []Root       `json:"roots,omitempty" yaml:"roots,omitempty"`
}

const (
	headingSolution = "Solution of the equation:"
	headingRoots    = "Roots of the equation:"
	headingRepeated = "Root of the equation (repeated):"

	MessageNoSolutions       = "The equation has no solutions"
	MessageInfiniteSolutions = "The equation has infinitely many solutions"
)

// Display renders the result as multi-line text, a heading followed by one
// "x = value" line per root.
func (r *Result) Display() string {
	var heading string
	switch r.Outcome {
	case NoSolutions:
		return MessageNoSolutions
	case InfiniteSolutions:
		return MessageInfiniteSolutions
	case RepeatedRoot:
		heading = headingRepeated
	default:
		heading = headingSolution
		if len(r.Roots) > 1 {
			heading = headingRoots
		}
	}
	lines := make([]string, 0, len(r.Roots)+1)
	lines = append(lines, heading)
	for _, root := range r.Roots {
		lines = append(lines, root.String())
	}
	return strings.Join(lines, "\n")
}

// Values returns the formatted root values in order.
func (r *Result) Values() []string {
	out := make([]string, len(r.Roots))
	for i, root := range r.Roots {
		out[i] = root.Value
	}
	return out
}
