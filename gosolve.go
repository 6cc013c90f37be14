// Package gosolve evaluates single-unknown linear and quadratic equations
// typed as text.
//
// An evaluation trims and splits the input on its first '=', parses both
// sides with the symbolic package, normalizes the equation to
// left - right = 0, checks the polynomial degree against the declared
// EquationType, solves it exactly and formats the roots:
//
//	ev := gosolve.New()
//	res, err := ev.Evaluate("x**2 - 4 = 0", gosolve.Quadratic)
//	if err != nil {
//		fmt.Println(gosolve.DisplayError(err))
//		return
//	}
//	fmt.Println(res.Display())
//
// Every failure is returned as an *Error carrying an ErrorKind.
package gosolve

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/njchilds90/gosolve/symbolic"
)

// ============================================================
// Equation type
// ============================================================

// EquationType is the degree the caller declares for the equation.
type EquationType int

const (
	Linear EquationType = iota + 1
	Quadratic
)

func (t EquationType) String() string {
	switch t {
	case Linear:
		return "linear"
	case Quadratic:
		return "quadratic"
	default:
		return fmt.Sprintf("EquationType(%d)", int(t))
	}
}

// Degree returns the polynomial degree the type stands for.
func (t EquationType) Degree() int { return int(t) }

func (t EquationType) MarshalText() ([]byte, error) {
	if t != Linear && t != Quadratic {
		return nil, fmt.Errorf("invalid equation type %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *EquationType) UnmarshalText(b []byte) error {
	parsed, err := ParseEquationType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseEquationType accepts "linear", "quadratic", "1" or "2", ignoring case
// and surrounding whitespace.
func ParseEquationType(s string) (EquationType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "1":
		return Linear, nil
	case "quadratic", "2":
		return Quadratic, nil
	}
	return 0, fmt.Errorf("unknown equation type %q (want linear or quadratic)", s)
}

// ============================================================
// Evaluator
// ============================================================

// DefaultUnknown is the symbol equations are solved for.
const DefaultUnknown = "x"

// Evaluator holds immutable settings, so one value can serve any number of
// evaluations.
type Evaluator struct {
	unknown   string
	digits    int
	rootCheck bool
	solver    Solver
	logger    *slog.Logger
}

type Option func(*Evaluator)

func WithUnknown(name string) Option {
	return func(e *Evaluator) {
		if name != "" {
			e.unknown = name
		}
	}
}

func WithSignificantDigits(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.digits = n
		}
	}
}

// WithRootCheck substitutes every real root back into the equation and
// records the residual on the Root. It never changes the outcome.
func WithRootCheck(enabled bool) Option {
	return func(e *Evaluator) { e.rootCheck = enabled }
}

func WithSolver(s Solver) Option {
	return func(e *Evaluator) {
		if s != nil {
			e.solver = s
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Evaluator) {
		if l != nil {
			e.logger = l
		}
	}
}

func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		unknown: DefaultUnknown,
		digits:  DefaultSignificantDigits,
		solver:  symbolic.PolySolver{},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Display evaluates text and returns the string shown to the user: the
// formatted roots or an "Error: " message.
func (e *Evaluator) Display(text string, typ EquationType) string {
	res, err := e.Evaluate(text, typ)
	if err != nil {
		return DisplayError(err)
	}
	return res.Display()
}

// Evaluate parses, classifies, solves and formats one equation. A non-nil
// error is always an *Error.
func (e *Evaluator) Evaluate(text string, typ EquationType) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("recovered panic during evaluation", "equation", text, "panic", r, "stack", string(debug.Stack()))
			res, err = nil, newError(KindEvaluation, "evaluation failed", fmt.Errorf("%v", r))
		}
	}()

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, newError(KindEmptyInput, ErrEmptyInput.Message, nil)
	}
	lhsText, rhsText, ok := strings.Cut(text, "=")
	if !ok {
		return nil, newError(KindMissingEquals, ErrMissingEquals.Message, nil)
	}
	if typ != Linear && typ != Quadratic {
		return nil, newError(KindEvaluation, fmt.Sprintf("unsupported equation type %s", typ), nil)
	}

	lhs, err := parseSide("left", lhsText)
	if err != nil {
		return nil, err
	}
	rhs, err := parseSide("right", rhsText)
	if err != nil {
		return nil, err
	}

	normalized := symbolic.Expand(symbolic.Eq(lhs, rhs).Residual())
	e.logger.Debug("normalized equation", "equation", text, "expr", normalized.String())

	degree, err := symbolic.PolyDegree(normalized, e.unknown)
	if err != nil {
		return nil, newError(KindEvaluation, "cannot determine the degree", err)
	}
	switch {
	case typ == Linear && degree > 1:
		return nil, newError(KindTypeMismatch, fmt.Sprintf("the equation is not linear (degree %d > 1)", degree), nil)
	case typ == Quadratic && degree != 2:
		return nil, newError(KindTypeMismatch, fmt.Sprintf("the equation is not quadratic (degree %d, must be 2)", degree), nil)
	}

	set, err := e.solver.Solve(normalized, e.unknown)
	if err != nil {
		return nil, newError(KindEvaluation, "could not solve the equation", err)
	}
	e.logger.Debug("solved equation", "expr", normalized.String(), "degree", degree, "solutions", set.Len(), "infinite", set.Infinite)

	res = &Result{
		Equation:   text,
		Type:       typ,
		Unknown:    e.unknown,
		Normalized: normalized.String(),
		Degree:     degree,
	}
	if err := e.classify(res, set, normalized); err != nil {
		return nil, err
	}
	return res, nil
}

func parseSide(side, text string) (symbolic.Expr, error) {
	text = strings.TrimSpace(text)
	expr, err := symbolic.Parse(text)
	if err == nil {
		return expr, nil
	}
	var syntaxErr *symbolic.SyntaxError
	if errors.As(err, &syntaxErr) {
		return nil, &Error{
			Kind:    KindParse,
			Message: fmt.Sprintf("cannot parse the %s side %q: %s at offset %d", side, text, syntaxErr.Msg, syntaxErr.Offset),
			Side:    side,
			Input:   text,
			Offset:  syntaxErr.Offset,
			Err:     err,
		}
	}
	return nil, &Error{
		Kind:    KindEvaluation,
		Message: fmt.Sprintf("cannot evaluate the %s side", side),
		Side:    side,
		Input:   text,
		Offset:  -1,
		Err:     err,
	}
}

// classify maps a solution set onto an Outcome. Shapes the declared type
// cannot produce fail closed.
func (e *Evaluator) classify(res *Result, set symbolic.SolutionSet, normalized symbolic.Expr) error {
	switch {
	case set.Infinite:
		res.Outcome = InfiniteSolutions
		return nil
	case set.Len() == 0:
		res.Outcome = NoSolutions
		return nil
	case res.Type == Linear && set.Len() == 1:
		res.Outcome = Roots
		res.Roots = []Root{e.newRoot(e.unknown, set.Solutions[0], normalized)}
		return nil
	case res.Type == Quadratic && set.Len() == 1:
		res.Outcome = RepeatedRoot
		res.Roots = []Root{e.newRoot(e.unknown, set.Solutions[0], normalized)}
		return nil
	case res.Type == Quadratic && set.Len() == 2:
		res.Outcome = Roots
		res.Roots = []Root{
			e.newRoot(e.unknown+"1", set.Solutions[0], normalized),
			e.newRoot(e.unknown+"2", set.Solutions[1], normalized),
		}
		return nil
	}
	return newError(KindEvaluation, fmt.Sprintf("unexpected solution count %d for a %s equation", set.Len(), res.Type), nil)
}

func (e *Evaluator) newRoot(label string, value symbolic.Expr, normalized symbolic.Expr) Root {
	root := Root{
		Label: label,
		Value: FormatValue(value, e.digits),
		Exact: value.String(),
		Expr:  value,
	}
	if e.rootCheck {
		if residual, ok := e.checkRoot(normalized, value); ok {
			root.Residual = &residual
			root.Verified = residual <= rootTolerance
		}
	}
	return root
}
