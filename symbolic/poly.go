package symbolic

import "fmt"

// ============================================================
// Expansion
// ============================================================

const (
	// maxExpandPower bounds the integer powers of sums that Expand multiplies out.
	maxExpandPower = 10
	// maxPolyDegree bounds the exponents PolyCoeffs accepts on the variable.
	maxPolyDegree = 1 << 20
)

func Expand(e Expr) Expr { return expandExpr(e.Simplify()).Simplify() }

func expandExpr(e Expr) Expr {
	switch v := e.(type) {
	case *Mul:
		result := Expr(N(1))
		for _, f := range v.factors {
			result = mulExpanded(result, expandExpr(f))
		}
		return result
	case *Add:
		newTerms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			newTerms[i] = expandExpr(t)
		}
		return AddOf(newTerms...)
	case *Pow:
		if exp, ok := smallIntExpr(v.exp, maxExpandPower); ok && exp >= 0 {
			result := Expr(N(1))
			base := expandExpr(v.base)
			for i := int64(0); i < exp; i++ {
				result = mulExpanded(result, base)
			}
			return result
		}
		return PowOf(expandExpr(v.base), expandExpr(v.exp))
	}
	return e
}

// mulExpanded distributes the product of two already expanded expressions.
func mulExpanded(a, b Expr) Expr {
	at, bt := termsOf(a), termsOf(b)
	out := make([]Expr, 0, len(at)*len(bt))
	for _, x := range at {
		for _, y := range bt {
			out = append(out, MulOf(x, y))
		}
	}
	return AddOf(out...)
}

func termsOf(e Expr) []Expr {
	if a, ok := e.(*Add); ok {
		return a.terms
	}
	return []Expr{e}
}

// ============================================================
// Free Symbols
// ============================================================

func FreeSymbols(e Expr) map[string]struct{} {
	result := map[string]struct{}{}
	collectSymbols(e, result)
	return result
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym:
		out[v.name] = struct{}{}
	case *Add:
		for _, t := range v.terms {
			collectSymbols(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectSymbols(f, out)
		}
	case *Pow:
		collectSymbols(v.base, out)
		collectSymbols(v.exp, out)
	}
}

func dependsOn(e Expr, varName string) bool {
	_, ok := FreeSymbols(e)[varName]
	return ok
}

// ============================================================
// Polynomial utilities
// ============================================================

// NotPolynomialError reports a term in which the variable appears other than
// as a non-negative integer power.
type NotPolynomialError struct {
	Var  string
	Term string
}

func (e *NotPolynomialError) Error() string {
	return fmt.Sprintf("expression is not a polynomial in %s: term %s", e.Var, e.Term)
}

type PolyCoeffsResult map[int]Expr

// Coeff returns the coefficient of varName^deg, or 0 when the term is absent.
func (r PolyCoeffsResult) Coeff(deg int) Expr {
	if c, ok := r[deg]; ok {
		return c
	}
	return N(0)
}

// Degree returns the highest power with a coefficient that does not simplify
// to zero. The zero polynomial has degree 0.
func (r PolyCoeffsResult) Degree() int {
	deg := 0
	for d, c := range r {
		if isZero(c) {
			continue
		}
		if d > deg {
			deg = d
		}
	}
	return deg
}

// PolyCoeffs expands expr and collects the coefficient of each power of varName.
func PolyCoeffs(expr Expr, varName string) (PolyCoeffsResult, error) {
	expanded := Expand(expr)
	result := PolyCoeffsResult{}
	for _, t := range termsOf(expanded) {
		deg, coeff, err := monomial(t, varName)
		if err != nil {
			return nil, err
		}
		addCoeff(result, deg, coeff)
	}
	return result, nil
}

// PolyDegree returns the degree of expr in varName; terms that cancel after
// expansion do not count.
func PolyDegree(expr Expr, varName string) (int, error) {
	coeffs, err := PolyCoeffs(expr, varName)
	if err != nil {
		return 0, err
	}
	return coeffs.Degree(), nil
}

// monomial splits a single expanded term into varName^deg * coeff.
func monomial(e Expr, varName string) (int, Expr, error) {
	if !dependsOn(e, varName) {
		return 0, e, nil
	}
	switch v := e.(type) {
	case *Sym:
		return 1, N(1), nil
	case *Pow:
		if sym, ok := v.base.(*Sym); ok && sym.name == varName {
			if k, ok2 := smallIntExpr(v.exp, maxPolyDegree); ok2 && k >= 0 {
				return int(k), N(1), nil
			}
		}
	case *Mul:
		deg := 0
		coeffFactors := []Expr{}
		for _, f := range v.factors {
			if !dependsOn(f, varName) {
				coeffFactors = append(coeffFactors, f)
				continue
			}
			d, c, err := monomial(f, varName)
			if err != nil {
				return 0, nil, err
			}
			deg += d
			if deg > maxPolyDegree {
				return 0, nil, &NotPolynomialError{Var: varName, Term: e.String()}
			}
			coeffFactors = append(coeffFactors, c)
		}
		return deg, MulOf(coeffFactors...), nil
	}
	return 0, nil, &NotPolynomialError{Var: varName, Term: e.String()}
}

func addCoeff(out PolyCoeffsResult, deg int, val Expr) {
	if existing, ok := out[deg]; ok {
		out[deg] = AddOf(existing, val).Simplify()
	} else {
		out[deg] = val.Simplify()
	}
}

func isZero(e Expr) bool {
	n, ok := e.Simplify().(*Num)
	return ok && n.IsZero()
}
