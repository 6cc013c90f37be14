package symbolic

import (
	"errors"
	"fmt"
	"math/big"
)

// ============================================================
// Solvers
// ============================================================

// ErrNoUnknown is returned when a degree-0 equation still carries free
// parameters, so neither "no solutions" nor "every value" can be decided.
var ErrNoUnknown = errors.New("equation does not depend on the unknown")

// UnsupportedDegreeError is returned for polynomials of degree above two.
type UnsupportedDegreeError struct {
	Var    string
	Degree int
}

func (e *UnsupportedDegreeError) Error() string {
	return fmt.Sprintf("cannot solve a degree %d polynomial in %s", e.Degree, e.Var)
}

// SolutionSet holds the distinct roots of expr = 0 in solver order. Infinite
// is set when every value of the unknown satisfies the equation.
type SolutionSet struct {
	Solutions []Expr
	Infinite  bool
}

func (s SolutionSet) Len() int { return len(s.Solutions) }

// PolySolver solves polynomial equations of degree up to two.
type PolySolver struct{}

// Solve solves expr = 0 for varName.
func (PolySolver) Solve(expr Expr, varName string) (SolutionSet, error) {
	coeffs, err := PolyCoeffs(expr, varName)
	if err != nil {
		return SolutionSet{}, err
	}
	switch deg := coeffs.Degree(); deg {
	case 0:
		c := coeffs.Coeff(0).Simplify()
		if isZero(c) {
			return SolutionSet{Infinite: true}, nil
		}
		if _, ok := c.(*Num); ok {
			return SolutionSet{}, nil
		}
		return SolutionSet{}, fmt.Errorf("%w %s: %s = 0", ErrNoUnknown, varName, c)
	case 1:
		return SolveLinear(coeffs.Coeff(1), coeffs.Coeff(0)), nil
	case 2:
		return SolveQuadratic(coeffs.Coeff(2), coeffs.Coeff(1), coeffs.Coeff(0)), nil
	default:
		return SolutionSet{}, &UnsupportedDegreeError{Var: varName, Degree: deg}
	}
}

// SolveLinear solves a*x + b = 0 for a non-zero a.
func SolveLinear(a, b Expr) SolutionSet {
	an, aok := a.Simplify().(*Num)
	bn, bok := b.Simplify().(*Num)
	if aok && bok {
		return SolutionSet{Solutions: []Expr{numDiv(numNeg(bn), an)}}
	}
	return SolutionSet{Solutions: []Expr{MulOf(N(-1), b, PowOf(a, N(-1)))}}
}

// SolveQuadratic solves a*x^2 + b*x + c = 0 for a non-zero a.
//
// Rational coefficients give exact roots: rational when the discriminant is
// a perfect square, p ± q*sqrt(d) otherwise, with sqrt of a negative
// discriminant carried as I*sqrt(-d). Real roots are returned ascending and a
// complex pair with the negative imaginary part first. A zero discriminant
// yields the repeated root once.
func SolveQuadratic(a, b, c Expr) SolutionSet {
	an, aok := a.Simplify().(*Num)
	bn, bok := b.Simplify().(*Num)
	cn, cok := c.Simplify().(*Num)
	if !aok || !bok || !cok {
		return solveQuadraticSymbolic(a, b, c)
	}

	twoA := numMul(N(2), an)
	disc := numSub(numMul(bn, bn), numMul(N(4), numMul(an, cn)))
	if disc.IsZero() {
		return SolutionSet{Solutions: []Expr{numDiv(numNeg(bn), twoA)}}
	}
	if root, ok := sqrtRat(disc.val); ok {
		sq := &Num{val: root}
		x1 := numDiv(numSub(numNeg(bn), sq), twoA)
		x2 := numDiv(numAdd(numNeg(bn), sq), twoA)
		if x1.val.Cmp(x2.val) > 0 {
			x1, x2 = x2, x1
		}
		return SolutionSet{Solutions: []Expr{x1, x2}}
	}

	p := numDiv(numNeg(bn), twoA)
	q := numAbs(numRecip(twoA))
	sq := SqrtOf(disc)
	x1 := AddOf(p, MulOf(numNeg(q), sq))
	x2 := AddOf(p, MulOf(q, sq))
	return SolutionSet{Solutions: []Expr{x1, x2}}
}

func solveQuadraticSymbolic(a, b, c Expr) SolutionSet {
	disc := AddOf(PowOf(b, N(2)), MulOf(N(-4), a, c))
	denom := PowOf(MulOf(N(2), a), N(-1))
	x1 := MulOf(AddOf(MulOf(N(-1), b), MulOf(N(-1), SqrtOf(disc))), denom)
	x2 := MulOf(AddOf(MulOf(N(-1), b), SqrtOf(disc)), denom)
	return SolutionSet{Solutions: []Expr{x1, x2}}
}

// sqrtRat returns the exact square root of a non-negative rational when
// both numerator and denominator are perfect squares.
func sqrtRat(r *big.Rat) (*big.Rat, bool) {
	if r.Sign() < 0 {
		return nil, false
	}
	num := new(big.Int).Sqrt(r.Num())
	if new(big.Int).Mul(num, num).Cmp(r.Num()) != 0 {
		return nil, false
	}
	den := new(big.Int).Sqrt(r.Denom())
	if new(big.Int).Mul(den, den).Cmp(r.Denom()) != 0 {
		return nil, false
	}
	return new(big.Rat).SetFrac(num, den), true
}
