package symbolic

import (
	"math"
	"math/cmplx"
)

// Complex reduces a closed-form expression to a complex128. It fails for
// expressions with free symbols and for non-finite results.
func Complex(e Expr) (complex128, bool) {
	z, ok := complexOf(e)
	if !ok || cmplx.IsNaN(z) || cmplx.IsInf(z) {
		return 0, false
	}
	return z, true
}

// IsReal reports whether e reduces to a number with no imaginary part.
func IsReal(e Expr) bool {
	z, ok := Complex(e)
	return ok && imag(z) == 0
}

func complexOf(e Expr) (complex128, bool) {
	switch v := e.(type) {
	case *Num:
		return complex(v.Float64(), 0), true
	case *ImagUnit:
		return 1i, true
	case *Add:
		var acc complex128
		for _, t := range v.terms {
			z, ok := complexOf(t)
			if !ok {
				return 0, false
			}
			acc += z
		}
		return acc, true
	case *Mul:
		acc := complex(1, 0)
		for _, f := range v.factors {
			z, ok := complexOf(f)
			if !ok {
				return 0, false
			}
			acc *= z
		}
		return acc, true
	case *Pow:
		b, ok := complexOf(v.base)
		if !ok {
			return 0, false
		}
		x, ok := complexOf(v.exp)
		if !ok {
			return 0, false
		}
		if b == 0 && real(x) < 0 {
			return 0, false
		}
		if imag(b) == 0 && imag(x) == 0 && (real(b) >= 0 || real(x) == math.Trunc(real(x))) {
			return complex(math.Pow(real(b), real(x)), 0), true
		}
		return cmplx.Pow(b, x), true
	}
	return 0, false
}
