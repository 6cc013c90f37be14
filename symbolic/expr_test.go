package symbolic_test

import (
	"math"
	"testing"

	"github.com/njchilds90/gosolve/symbolic"
)

// ============================================================
// Num tests
// ============================================================

func TestNum_Integer(t *testing.T) {
	n := symbolic.N(42)
	if n.String() != "42" {
		t.Errorf("want 42, got %s", n.String())
	}
}

func TestNum_Rational(t *testing.T) {
	n := symbolic.F(1, 3)
	if n.String() != "1/3" {
		t.Errorf("want 1/3, got %s", n.String())
	}
}

func TestNum_LaTeX_Rational(t *testing.T) {
	n := symbolic.F(2, 5)
	if n.LaTeX() != `\frac{2}{5}` {
		t.Errorf("want \\frac{2}{5}, got %s", n.LaTeX())
	}
}

func TestNum_AddFolds(t *testing.T) {
	n, ok := symbolic.AddOf(symbolic.N(1), symbolic.F(1, 2)).(*symbolic.Num)
	if !ok || n.String() != "3/2" {
		t.Errorf("want 3/2, got %v (ok=%v)", n, ok)
	}
}

// ============================================================
// Sym tests
// ============================================================

func TestSym_Sub_Match(t *testing.T) {
	result := symbolic.S("x").Sub("x", symbolic.N(3))
	if result.String() != "3" {
		t.Errorf("want 3, got %s", result.String())
	}
}

func TestSym_Sub_NoMatch(t *testing.T) {
	result := symbolic.S("x").Sub("y", symbolic.N(3))
	if result.String() != "x" {
		t.Errorf("want x, got %s", result.String())
	}
}

// ============================================================
// Add tests
// ============================================================

func TestAdd_Simple(t *testing.T) {
	expr := symbolic.AddOf(symbolic.S("x"), symbolic.N(3))
	if expr.String() != "x + 3" {
		t.Errorf("want 'x + 3', got %s", expr.String())
	}
}

func TestAdd_CollapseToZero(t *testing.T) {
	expr := symbolic.AddOf(symbolic.N(1), symbolic.N(-1))
	if expr.String() != "0" {
		t.Errorf("want 0, got %s", expr.String())
	}
}

func TestAdd_LikeTerms(t *testing.T) {
	expr := symbolic.AddOf(symbolic.S("x"), symbolic.S("x"))
	if expr.String() != "2*x" {
		t.Errorf("want '2*x', got %s", expr.String())
	}
}

func TestAdd_CancelsPowers(t *testing.T) {
	x := symbolic.S("x")
	sq := symbolic.PowOf(x, symbolic.N(2))
	expr := symbolic.AddOf(sq, symbolic.MulOf(symbolic.N(-1), sq), x)
	if expr.String() != "x" {
		t.Errorf("want x, got %s", expr.String())
	}
}

func TestAdd_DescendingPowersWithMinus(t *testing.T) {
	x := symbolic.S("x")
	expr := symbolic.AddOf(symbolic.N(4), symbolic.MulOf(symbolic.N(-4), x), symbolic.PowOf(x, symbolic.N(2)))
	if expr.String() != "x^2 - 4*x + 4" {
		t.Errorf("want 'x^2 - 4*x + 4', got %s", expr.String())
	}
}

// ============================================================
// Mul tests
// ============================================================

func TestMul_ZeroCollapse(t *testing.T) {
	expr := symbolic.MulOf(symbolic.N(0), symbolic.S("x"))
	if expr.String() != "0" {
		t.Errorf("want 0, got %s", expr.String())
	}
}

func TestMul_MergesPowers(t *testing.T) {
	x := symbolic.S("x")
	expr := symbolic.MulOf(x, x, x)
	if expr.String() != "x^3" {
		t.Errorf("want x^3, got %s", expr.String())
	}
}

func TestMul_Division(t *testing.T) {
	expr := symbolic.MulOf(symbolic.N(-1), symbolic.S("b"), symbolic.PowOf(symbolic.S("a"), symbolic.N(-1)))
	if expr.String() != "-b/a" {
		t.Errorf("want -b/a, got %s", expr.String())
	}
}

func TestMul_RationalCoefficient(t *testing.T) {
	expr := symbolic.MulOf(symbolic.F(1, 2), symbolic.S("x"))
	if expr.String() != "x/2" {
		t.Errorf("want x/2, got %s", expr.String())
	}
}

func TestMul_ImagSquared(t *testing.T) {
	expr := symbolic.MulOf(symbolic.I(), symbolic.I())
	if expr.String() != "-1" {
		t.Errorf("want -1, got %s", expr.String())
	}
}

// ============================================================
// Pow tests
// ============================================================

func TestPow_ImagUnitCycle(t *testing.T) {
	want := []string{"1", "I", "-1", "-I"}
	for k, w := range want {
		got := symbolic.PowOf(symbolic.I(), symbolic.N(int64(k))).String()
		if got != w {
			t.Errorf("I^%d: want %s, got %s", k, w, got)
		}
	}
}

func TestSqrt(t *testing.T) {
	cases := []struct {
		in   symbolic.Expr
		want string
	}{
		{symbolic.N(9), "3"},
		{symbolic.N(8), "2*sqrt(2)"},
		{symbolic.N(-4), "2*I"},
		{symbolic.F(1, 2), "sqrt(2)/2"},
		{symbolic.F(9, 4), "3/2"},
	}
	for _, c := range cases {
		got := symbolic.SqrtOf(c.in).String()
		if got != c.want {
			t.Errorf("sqrt(%s): want %s, got %s", c.in, c.want, got)
		}
	}
}

func TestSqrt_SquaredIsRadicand(t *testing.T) {
	r := symbolic.SqrtOf(symbolic.N(2))
	if got := symbolic.MulOf(r, r).String(); got != "2" {
		t.Errorf("want 2, got %s", got)
	}
}

func TestPow_NegativeExponentString(t *testing.T) {
	x := symbolic.S("x")
	cases := []struct {
		in   symbolic.Expr
		want string
	}{
		{symbolic.PowOf(x, symbolic.N(-1)), "1/x"},
		{symbolic.PowOf(symbolic.S("I"), symbolic.N(-1)), "1/I"},
		{symbolic.PowOf(x, symbolic.N(-2)), "1/x^2"},
		{symbolic.PowOf(symbolic.AddOf(x, symbolic.N(1)), symbolic.N(-1)), "1/(x + 1)"},
	}
	for _, c := range cases {
		if got := c.in.String(); got != c.want {
			t.Errorf("want %s, got %s", c.want, got)
		}
		if got := symbolic.MulOf(symbolic.N(1), c.in).String(); got != c.want {
			t.Errorf("as a product: want %s, got %s", c.want, got)
		}
	}
}

func TestPow_LaTeX(t *testing.T) {
	expr := symbolic.PowOf(symbolic.S("x"), symbolic.N(2))
	if expr.LaTeX() != "x^{2}" {
		t.Errorf("want x^{2}, got %s", expr.LaTeX())
	}
	if got := symbolic.SqrtOf(symbolic.N(2)).LaTeX(); got != `\sqrt{2}` {
		t.Errorf("want \\sqrt{2}, got %s", got)
	}
}

// ============================================================
// Equation / numeric tests
// ============================================================

func TestEquation_Residual(t *testing.T) {
	eq := symbolic.Eq(symbolic.S("x"), symbolic.N(3))
	if got := eq.Residual().String(); got != "x - 3" {
		t.Errorf("want 'x - 3', got %s", got)
	}
	if eq.String() != "x = 3" {
		t.Errorf("want 'x = 3', got %s", eq.String())
	}
}

func TestComplex(t *testing.T) {
	z, ok := symbolic.Complex(symbolic.SqrtOf(symbolic.N(2)))
	if !ok || math.Abs(real(z)-math.Sqrt2) > 1e-12 || imag(z) != 0 {
		t.Errorf("sqrt(2): got %v (ok=%v)", z, ok)
	}
	z, ok = symbolic.Complex(symbolic.SqrtOf(symbolic.N(-4)))
	if !ok || z != 2i {
		t.Errorf("sqrt(-4): got %v (ok=%v)", z, ok)
	}
	if _, ok := symbolic.Complex(symbolic.S("x")); ok {
		t.Error("free symbol should not reduce to a number")
	}
	if symbolic.IsReal(symbolic.I()) {
		t.Error("I is not real")
	}
}

func TestToJSON_Num(t *testing.T) {
	s, err := symbolic.ToJSON(symbolic.N(5))
	if err != nil {
		t.Fatal(err)
	}
	if s != `{"type":"num","value":"5"}` {
		t.Errorf("unexpected JSON: %s", s)
	}
}

func TestDeterminism(t *testing.T) {
	build := func() string {
		return symbolic.AddOf(symbolic.S("b"), symbolic.S("a"), symbolic.MulOf(symbolic.S("c"), symbolic.S("a"))).String()
	}
	first := build()
	for i := 0; i < 10; i++ {
		if got := build(); got != first {
			t.Fatalf("non-deterministic output: %s vs %s", first, got)
		}
	}
}
