package gosolve

import (
	"fmt"
	"math"
	"strings"

	"github.com/Knetic/govaluate"

	"github.com/njchilds90/gosolve/symbolic"
)

// rootTolerance bounds the residual of a root that counts as verified.
const rootTolerance = 1e-7

var verifyFunctions = map[string]govaluate.ExpressionFunction{
	"sqrt": func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("sqrt takes one argument, got %d", len(args))
		}
		f, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("sqrt argument must be a number, got %T", args[0])
		}
		return math.Sqrt(f), nil
	},
}

// checkRoot evaluates the normalized expression at a real root in floating
// point, independently of the symbolic kernel, and returns |residual|.
// Complex roots and expressions with free parameters are skipped.
func (e *Evaluator) checkRoot(normalized, root symbolic.Expr) (float64, bool) {
	z, ok := symbolic.Complex(root)
	if !ok || imag(z) != 0 {
		return 0, false
	}
	text, ok := evaluableString(normalized, e.unknown)
	if !ok {
		return 0, false
	}
	expr, err := govaluate.NewEvaluableExpressionWithFunctions(text, verifyFunctions)
	if err != nil {
		e.logger.Debug("root check: cannot compile expression", "expr", text, "error", err)
		return 0, false
	}
	out, err := expr.Evaluate(map[string]interface{}{e.unknown: real(z)})
	if err != nil {
		e.logger.Debug("root check: evaluation failed", "expr", text, "error", err)
		return 0, false
	}
	v, ok := out.(float64)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	residual := math.Abs(v)
	e.logger.Debug("root check", "expr", text, e.unknown, real(z), "residual", residual)
	return residual, true
}

// evaluableString renders e in govaluate syntax. It fails on the imaginary
// unit and on any symbol other than unknown.
func evaluableString(e symbolic.Expr, unknown string) (string, bool) {
	switch v := e.(type) {
	case *symbolic.Num:
		r := v.Rat()
		if r.IsInt() {
			return "(" + r.Num().String() + ")", true
		}
		return "(" + r.Num().String() + "/" + r.Denom().String() + ")", true
	case *symbolic.Sym:
		if v.Name() != unknown {
			return "", false
		}
		return v.Name(), true
	case *symbolic.Add:
		return joinEvaluable(v.Terms(), " + ", unknown)
	case *symbolic.Mul:
		return joinEvaluable(v.Factors(), " * ", unknown)
	case *symbolic.Pow:
		base, ok := evaluableString(v.Base(), unknown)
		if !ok {
			return "", false
		}
		exp, ok := evaluableString(v.ExpExpr(), unknown)
		if !ok {
			return "", false
		}
		if exp == "(1/2)" {
			return "sqrt(" + base + ")", true
		}
		return "(" + base + " ** " + exp + ")", true
	}
	return "", false
}

func joinEvaluable(parts []symbolic.Expr, sep, unknown string) (string, bool) {
	out := make([]string, len(parts))
	for i, p := range parts {
		s, ok := evaluableString(p, unknown)
		if !ok {
			return "", false
		}
		out[i] = s
	}
	return "(" + strings.Join(out, sep) + ")", true
}
