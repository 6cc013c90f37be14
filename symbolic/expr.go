// Package symbolic provides the deterministic symbolic kernel behind gosolve.
//
// Design goals:
//   - Exact rational arithmetic (math/big.Rat)
//   - Deterministic simplification and stable output
//   - Enough algebra for single-unknown polynomial equations: expansion,
//     coefficient extraction, exact surds and the imaginary unit
package symbolic

import (
	"fmt"
	"math/big"
	"sort"
	"strings"
)

// ============================================================
// Core Interface
// ============================================================

type Expr interface {
	Simplify() Expr
	String() string
	LaTeX() string
	Sub(varName string, value Expr) Expr
	Equal(other Expr) bool
	exprType() string
	toJSON() map[string]interface{}
}

// ============================================================
// Num: exact rational number
// ============================================================

type Num struct{ val *big.Rat }

func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }
func F(p, q int64) *Num {
	if q == 0 {
		panic("symbolic: denominator is zero")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

func (n *Num) Simplify() Expr        { return n }
func (n *Num) Sub(string, Expr) Expr { return n }
func (n *Num) Equal(other Expr) bool { o, ok := other.(*Num); return ok && n.val.Cmp(o.val) == 0 }
func (n *Num) exprType() string      { return "num" }
func (n *Num) Float64() float64      { f, _ := n.val.Float64(); return f }
func (n *Num) IsZero() bool          { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool           { return n.val.Cmp(new(big.Rat).SetInt64(1)) == 0 }
func (n *Num) IsNegOne() bool        { return n.val.Cmp(new(big.Rat).SetInt64(-1)) == 0 }
func (n *Num) IsInteger() bool       { return n.val.IsInt() }
func (n *Num) Rat() *big.Rat         { return new(big.Rat).Set(n.val) }
func (n *Num) IsPositive() bool      { return n.val.Sign() > 0 }

// smallInt returns n as an int64 when it is an integer with |n| <= limit.
func smallInt(n *Num, limit int64) (int64, bool) {
	if !n.val.IsInt() || !n.val.Num().IsInt64() {
		return 0, false
	}
	k := n.val.Num().Int64()
	if k > limit || k < -limit {
		return 0, false
	}
	return k, true
}

func smallIntExpr(e Expr, limit int64) (int64, bool) {
	n, ok := e.(*Num)
	if !ok {
		return 0, false
	}
	return smallInt(n, limit)
}
func (n *Num) IsNegative() bool      { return n.val.Sign() < 0 }

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func (n *Num) LaTeX() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	sign := ""
	v := new(big.Rat).Set(n.val)
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	return fmt.Sprintf("%s\\frac{%s}{%s}", sign, v.Num().String(), v.Denom().String())
}

func (n *Num) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "num", "value": n.String()}
}

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numSub(a, b *Num) *Num { return &Num{val: new(big.Rat).Sub(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }
func numNeg(a *Num) *Num    { return &Num{val: new(big.Rat).Neg(a.val)} }
func numRecip(a *Num) *Num {
	if a.IsZero() {
		panic("symbolic: division by zero")
	}
	return &Num{val: new(big.Rat).Inv(a.val)}
}
func numDiv(a, b *Num) *Num { return numMul(a, numRecip(b)) }
func numAbs(a *Num) *Num {
	r := new(big.Rat).Set(a.val)
	if r.Sign() < 0 {
		r.Neg(r)
	}
	return &Num{val: r}
}

func isHalf(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.val.Cmp(big.NewRat(1, 2)) == 0
}

// ============================================================
// Sym: symbolic variable
// ============================================================

type Sym struct{ name string }

func S(name string) *Sym      { return &Sym{name: name} }
func (s *Sym) Simplify() Expr { return s }
func (s *Sym) String() string { return s.name }
func (s *Sym) LaTeX() string  { return s.name }
func (s *Sym) Equal(other Expr) bool { o, ok := other.(*Sym); return ok && s.name == o.name }
func (s *Sym) exprType() string      { return "sym" }
func (s *Sym) Name() string          { return s.name }
func (s *Sym) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "sym", "name": s.name}
}
func (s *Sym) Sub(varName string, value Expr) Expr {
	if s.name == varName {
		return value
	}
	return s
}

// ============================================================
// ImagUnit: the imaginary unit I (I^2 = -1)
// ============================================================

type ImagUnit struct{}

var imagUnit = &ImagUnit{}

// I returns the imaginary unit.
func I() *ImagUnit { return imagUnit }

func (*ImagUnit) Simplify() Expr        { return imagUnit }
func (*ImagUnit) String() string        { return "I" }
func (*ImagUnit) LaTeX() string         { return "i" }
func (*ImagUnit) Sub(string, Expr) Expr { return imagUnit }
func (*ImagUnit) Equal(other Expr) bool { _, ok := other.(*ImagUnit); return ok }
func (*ImagUnit) exprType() string      { return "imag" }
func (*ImagUnit) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "imag"}
}

// ============================================================
// Add: sum of terms
// ============================================================

type Add struct{ terms []Expr }

func AddOf(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

// Simplify flattens nested sums and combines like terms: terms that differ
// only by a rational coefficient are merged, numbers are accumulated last.
func (a *Add) Simplify() Expr {
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		s := t.Simplify()
		if inner, ok := s.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, s)
		}
	}
	numAccum := N(0)
	coeffs := map[string]*Num{}
	rests := map[string]Expr{}
	order := []string{}
	for _, t := range flat {
		if v, ok := t.(*Num); ok {
			numAccum = numAdd(numAccum, v)
			continue
		}
		coeff, rest := splitCoefficient(t)
		key := rest.String()
		if _, seen := coeffs[key]; !seen {
			order = append(order, key)
			coeffs[key] = N(0)
			rests[key] = rest
		}
		coeffs[key] = numAdd(coeffs[key], coeff)
	}
	sort.SliceStable(order, func(i, j int) bool {
		wi, wj := weight(rests[order[i]]), weight(rests[order[j]])
		if wi != wj {
			return wi > wj
		}
		return order[i] < order[j]
	})
	result := []Expr{}
	for _, key := range order {
		coeff := coeffs[key]
		if coeff.IsZero() {
			continue
		}
		if coeff.IsOne() {
			result = append(result, rests[key])
		} else {
			result = append(result, MulOf(coeff, rests[key]))
		}
	}
	if !numAccum.IsZero() {
		result = append(result, numAccum)
	}
	if len(result) == 0 {
		return N(0)
	}
	if len(result) == 1 {
		return result[0]
	}
	return &Add{terms: result}
}

// splitCoefficient separates the leading rational factor of a simplified term.
func splitCoefficient(e Expr) (*Num, Expr) {
	m, ok := e.(*Mul)
	if !ok {
		return N(1), e
	}
	c, ok := m.factors[0].(*Num)
	if !ok {
		return N(1), e
	}
	rest := m.factors[1:]
	if len(rest) == 1 {
		return c, rest[0]
	}
	return c, &Mul{factors: append([]Expr(nil), rest...)}
}

// weight is the total polynomial degree of a term across all symbols; sums
// list heavier terms first so polynomials read in descending powers.
func weight(e Expr) int {
	switch v := e.(type) {
	case *Sym:
		return 1
	case *Pow:
		if n, ok := v.exp.(*Num); ok && n.IsInteger() {
			k, fits := smallInt(n, maxPolyDegree)
			if !fits {
				k = maxPolyDegree
				if n.IsNegative() {
					k = -maxPolyDegree
				}
			}
			return weight(v.base) * int(k)
		}
	case *Mul:
		w := 0
		for _, f := range v.factors {
			w += weight(f)
		}
		return w
	}
	return 0
}

func (a *Add) String() string {
	if len(a.terms) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, t := range a.terms {
		s := t.String()
		switch {
		case i == 0:
			sb.WriteString(s)
		case strings.HasPrefix(s, "-"):
			sb.WriteString(" - ")
			sb.WriteString(s[1:])
		default:
			sb.WriteString(" + ")
			sb.WriteString(s)
		}
	}
	return sb.String()
}

func (a *Add) LaTeX() string {
	var sb strings.Builder
	for i, t := range a.terms {
		s := t.LaTeX()
		switch {
		case i == 0:
			sb.WriteString(s)
		case strings.HasPrefix(s, "-"):
			sb.WriteString(" - ")
			sb.WriteString(s[1:])
		default:
			sb.WriteString(" + ")
			sb.WriteString(s)
		}
	}
	return sb.String()
}

func (a *Add) Sub(varName string, value Expr) Expr {
	newTerms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		newTerms[i] = t.Sub(varName, value)
	}
	return AddOf(newTerms...)
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

func (a *Add) exprType() string { return "add" }
func (a *Add) toJSON() map[string]interface{} {
	ts := make([]map[string]interface{}, len(a.terms))
	for i, t := range a.terms {
		ts[i] = t.toJSON()
	}
	return map[string]interface{}{"type": "add", "terms": ts}
}
func (a *Add) Terms() []Expr { return a.terms }

// ============================================================
// Mul: product of factors
// ============================================================

type Mul struct{ factors []Expr }

func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

// Simplify flattens nested products, folds rational factors into a leading
// coefficient, merges equal bases by adding exponents and reduces powers of I.
// The imaginary unit, when present, is always the last factor.
func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}
	coeff := N(1)
	imag := 0
	bases := map[string]Expr{}
	exps := map[string]Expr{}
	order := []string{}
	for _, f := range flat {
		switch v := f.(type) {
		case *Num:
			coeff = numMul(coeff, v)
		case *ImagUnit:
			imag++
		default:
			base, exp := f, Expr(N(1))
			if p, ok := f.(*Pow); ok {
				base, exp = p.base, p.exp
			}
			key := base.String()
			if _, seen := bases[key]; !seen {
				order = append(order, key)
				bases[key] = base
				exps[key] = exp
				continue
			}
			exps[key] = AddOf(exps[key], exp)
		}
	}
	if coeff.IsZero() {
		return N(0)
	}

	others := []Expr{}
	refold := false
	for _, key := range order {
		p := PowOf(bases[key], exps[key])
		switch v := p.(type) {
		case *Num:
			coeff = numMul(coeff, v)
		case *ImagUnit:
			imag++
		case *Mul:
			// Powers like sqrt(-8) come back as 2*sqrt(2)*I.
			others = append(others, v.factors...)
			refold = true
		default:
			others = append(others, p)
		}
	}
	if refold {
		factors := append([]Expr{coeff}, others...)
		for i := 0; i < imag; i++ {
			factors = append(factors, imagUnit)
		}
		return MulOf(factors...)
	}
	if coeff.IsZero() {
		return N(0)
	}
	switch imag % 4 {
	case 2:
		coeff = numNeg(coeff)
		imag = 0
	case 3:
		coeff = numNeg(coeff)
		imag = 1
	default:
		imag %= 4
	}

	// Precompute sort keys to avoid repeated String() calls in comparator.
	type keyed struct {
		e   Expr
		key string
	}
	ks := make([]keyed, len(others))
	for i, e := range others {
		ks[i] = keyed{e: e, key: e.String()}
	}
	sort.Slice(ks, func(i, j int) bool { return ks[i].key < ks[j].key })
	sorted := make([]Expr, 0, len(ks)+2)
	for i := range ks {
		sorted = append(sorted, ks[i].e)
	}
	if imag == 1 {
		sorted = append(sorted, imagUnit)
	}

	if len(sorted) == 0 {
		return coeff
	}
	if coeff.IsOne() {
		if len(sorted) == 1 {
			return sorted[0]
		}
		return &Mul{factors: sorted}
	}
	return &Mul{factors: append([]Expr{coeff}, sorted...)}
}

// String renders the product as numerator/denominator, moving negative
// integer powers and coefficient denominators below the fraction bar.
func (m *Mul) String() string {
	if len(m.factors) == 0 {
		return "1"
	}
	sign := ""
	var num, den []string
	for _, f := range m.factors {
		switch v := f.(type) {
		case *Num:
			r := v.Rat()
			if r.Sign() < 0 {
				sign = "-"
				r.Neg(r)
			}
			if r.Num().Cmp(big.NewInt(1)) != 0 {
				num = append(num, r.Num().String())
			}
			if !r.IsInt() {
				den = append(den, r.Denom().String())
			}
		case *Pow:
			if e, ok := v.exp.(*Num); ok && e.IsNegative() {
				d := PowOf(v.base, numNeg(e))
				switch d.(type) {
				case *Add, *Mul:
					den = append(den, "("+d.String()+")")
				default:
					den = append(den, d.String())
				}
				continue
			}
			num = append(num, v.String())
		case *Add:
			num = append(num, "("+v.String()+")")
		default:
			num = append(num, f.String())
		}
	}
	n := strings.Join(num, "*")
	if n == "" {
		n = "1"
	}
	if len(den) == 0 {
		return sign + n
	}
	d := strings.Join(den, "*")
	if len(den) > 1 {
		d = "(" + d + ")"
	}
	return sign + n + "/" + d
}

func (m *Mul) LaTeX() string {
	parts := make([]string, 0, len(m.factors))
	for i, f := range m.factors {
		if n, ok := f.(*Num); ok && i == 0 && n.IsNegOne() {
			parts = append(parts, "-")
			continue
		}
		if _, isAdd := f.(*Add); isAdd {
			parts = append(parts, "\\left("+f.LaTeX()+"\\right)")
		} else {
			parts = append(parts, f.LaTeX())
		}
	}
	return strings.Replace(strings.Join(parts, " "), "- ", "-", 1)
}

func (m *Mul) Sub(varName string, value Expr) Expr {
	newFactors := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		newFactors[i] = f.Sub(varName, value)
	}
	return MulOf(newFactors...)
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

func (m *Mul) exprType() string { return "mul" }
func (m *Mul) toJSON() map[string]interface{} {
	fs := make([]map[string]interface{}, len(m.factors))
	for i, f := range m.factors {
		fs[i] = f.toJSON()
	}
	return map[string]interface{}{"type": "mul", "factors": fs}
}
func (m *Mul) Factors() []Expr { return m.factors }

// ============================================================
// Pow: base^exponent
// ============================================================

type Pow struct{ base, exp Expr }

func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }
func SqrtOf(arg Expr) Expr      { return PowOf(arg, F(1, 2)) }

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	if en, ok := exp.(*Num); ok && en.IsZero() {
		return N(1)
	}
	if en, ok := exp.(*Num); ok && en.IsOne() {
		return base
	}

	// Handle 0^exp carefully.
	if bn, ok := base.(*Num); ok && bn.IsZero() {
		if en, ok2 := exp.(*Num); ok2 {
			// 0^0 is indeterminate; 0^negative is division by zero.
			if en.IsZero() || en.IsNegative() {
				return &Pow{base: base, exp: exp}
			}
		}
		return N(0)
	}

	if bn, ok := base.(*Num); ok && bn.IsOne() {
		return N(1)
	}
	if bn, ok := base.(*Num); ok {
		if e, ok2 := smallIntExpr(exp, 20); ok2 {
			result := N(1)
			for i := int64(0); i < e || i < -e; i++ {
				result = numMul(result, bn)
			}
			if e < 0 {
				return numRecip(result)
			}
			return result
		}
		if isHalf(exp) {
			return sqrtNum(bn)
		}
	}
	if _, ok := base.(*ImagUnit); ok {
		if en, ok2 := exp.(*Num); ok2 && en.IsInteger() {
			k := new(big.Int).Mod(en.val.Num(), big.NewInt(4)).Int64()
			switch k {
			case 0:
				return N(1)
			case 1:
				return imagUnit
			case 2:
				return N(-1)
			default:
				return &Mul{factors: []Expr{N(-1), imagUnit}}
			}
		}
	}
	if inner, ok := base.(*Pow); ok {
		newExp := MulOf(inner.exp, exp).Simplify()
		return PowOf(inner.base, newExp)
	}
	if inner, ok := base.(*Mul); ok {
		if en, ok2 := exp.(*Num); ok2 && en.IsInteger() {
			factors := make([]Expr, len(inner.factors))
			for i, f := range inner.factors {
				factors[i] = PowOf(f, en)
			}
			return MulOf(factors...)
		}
	}
	return &Pow{base: base, exp: exp}
}

// sqrtNum returns the exact square root of a rational, pulling square factors
// out of the radicand: sqrt(8) = 2*sqrt(2), sqrt(-4) = 2*I, sqrt(1/2) = sqrt(2)/2.
func sqrtNum(n *Num) Expr {
	if n.IsNegative() {
		return MulOf(sqrtNum(numNeg(n)), imagUnit)
	}
	// sqrt(p/q) = sqrt(p*q)/q
	q := new(big.Int).Set(n.val.Denom())
	pq := new(big.Int).Mul(n.val.Num(), q)
	out, in := splitSquare(pq)
	coeff := &Num{val: new(big.Rat).SetFrac(out, q)}
	if in.Cmp(big.NewInt(1)) == 0 {
		return coeff
	}
	radical := &Pow{base: &Num{val: new(big.Rat).SetInt(in)}, exp: F(1, 2)}
	if coeff.IsOne() {
		return radical
	}
	return &Mul{factors: []Expr{coeff, radical}}
}

// splitSquare writes n = out^2 * in, pulling out square factors found by
// trial division. Large cofactors are left inside the radical.
func splitSquare(n *big.Int) (out, in *big.Int) {
	out, in = big.NewInt(1), new(big.Int).Set(n)
	if r := new(big.Int).Sqrt(in); new(big.Int).Mul(r, r).Cmp(in) == 0 {
		return r, big.NewInt(1)
	}
	d := big.NewInt(2)
	sq := new(big.Int)
	rem := new(big.Int)
	quo := new(big.Int)
	for i := 0; i < 100000; i++ {
		sq.Mul(d, d)
		if sq.Cmp(in) > 0 {
			break
		}
		for {
			quo.QuoRem(in, sq, rem)
			if rem.Sign() != 0 {
				break
			}
			in.Set(quo)
			out.Mul(out, d)
		}
		d.Add(d, big.NewInt(1))
	}
	return out, in
}

func (p *Pow) String() string {
	if isHalf(p.exp) {
		return "sqrt(" + p.base.String() + ")"
	}
	if e, ok := p.exp.(*Num); ok && e.IsNegative() {
		return (&Mul{factors: []Expr{p}}).String()
	}
	baseStr := p.base.String()
	switch b := p.base.(type) {
	case *Add, *Mul, *Pow:
		baseStr = "(" + baseStr + ")"
	case *Num:
		if b.IsNegative() || !b.IsInteger() {
			baseStr = "(" + baseStr + ")"
		}
	}
	expStr := p.exp.String()
	switch e := p.exp.(type) {
	case *Add, *Mul, *Pow:
		expStr = "(" + expStr + ")"
	case *Num:
		if e.IsNegative() || !e.IsInteger() {
			expStr = "(" + expStr + ")"
		}
	}
	return baseStr + "^" + expStr
}

func (p *Pow) LaTeX() string {
	if isHalf(p.exp) {
		return "\\sqrt{" + p.base.LaTeX() + "}"
	}
	baseStr := p.base.LaTeX()
	expStr := p.exp.LaTeX()
	_, baseIsAdd := p.base.(*Add)
	_, baseIsMul := p.base.(*Mul)
	if baseIsAdd || baseIsMul {
		baseStr = "\\left(" + baseStr + "\\right)"
	}
	return baseStr + "^{" + expStr + "}"
}

func (p *Pow) Sub(varName string, value Expr) Expr {
	return PowOf(p.base.Sub(varName, value), p.exp.Sub(varName, value))
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

func (p *Pow) exprType() string { return "pow" }
func (p *Pow) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "pow", "base": p.base.toJSON(), "exp": p.exp.toJSON()}
}
func (p *Pow) Base() Expr    { return p.base }
func (p *Pow) ExpExpr() Expr { return p.exp }

// ============================================================
// Equation
// ============================================================

type Equation struct{ LHS, RHS Expr }

func Eq(lhs, rhs Expr) *Equation { return &Equation{LHS: lhs, RHS: rhs} }
func (e *Equation) String() string {
	return e.LHS.String() + " = " + e.RHS.String()
}
func (e *Equation) LaTeX() string { return e.LHS.LaTeX() + " = " + e.RHS.LaTeX() }

// Residual returns LHS - RHS, the expression the equation sets to zero.
func (e *Equation) Residual() Expr {
	return AddOf(e.LHS, MulOf(N(-1), e.RHS)).Simplify()
}

// ============================================================
// Top-level convenience functions
// ============================================================

func LaTeX(e Expr) string { return e.LaTeX() }

func Sub(expr Expr, varName string, value Expr) Expr {
	return expr.Sub(varName, value).Simplify()
}
