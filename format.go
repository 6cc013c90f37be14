package gosolve

import (
	"strconv"
	"strings"

	"github.com/njchilds90/gosolve/symbolic"
)

// DefaultSignificantDigits is the precision roots are displayed at.
const DefaultSignificantDigits = 4

// FormatValue renders value as a decimal with the given number of significant
// digits, e.g. 2.000, -0.6667, 1.235e+4 or -1.000 - 1.414*I. Values that do
// not reduce to a finite number are rendered in symbolic form. FormatValue
// never panics.
func FormatValue(value symbolic.Expr, digits int) (out string) {
	if value == nil {
		return ""
	}
	defer func() {
		if r := recover(); r != nil {
			out = value.String()
		}
	}()
	if digits < 1 {
		digits = DefaultSignificantDigits
	}
	z, ok := symbolic.Complex(value)
	if !ok {
		return value.String()
	}
	return formatComplex(z, digits)
}

func formatComplex(z complex128, digits int) string {
	re, im := real(z), imag(z)
	switch {
	case im == 0:
		return formatFloat(re, digits)
	case re == 0:
		return formatFloat(im, digits) + "*I"
	case im < 0:
		return formatFloat(re, digits) + " - " + formatFloat(-im, digits) + "*I"
	default:
		return formatFloat(re, digits) + " + " + formatFloat(im, digits) + "*I"
	}
}

// formatFloat uses fixed notation while the decimal exponent lies strictly
// between min(-digits/3, -5) and digits, and exponent notation otherwise.
// Trailing zeros are kept: they carry the precision.
func formatFloat(f float64, digits int) string {
	if f == 0 {
		return "0"
	}
	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}
	mant, expStr, _ := strings.Cut(strconv.FormatFloat(f, 'e', digits-1, 64), "e")
	exp, err := strconv.Atoi(expStr)
	if err != nil {
		return sign + strconv.FormatFloat(f, 'g', digits, 64)
	}
	ds := strings.Replace(mant, ".", "", 1)

	minFixed := min(-(digits / 3), -5)
	if minFixed < exp && exp < digits {
		if exp < 0 {
			return sign + "0." + strings.Repeat("0", -exp-1) + ds
		}
		split := exp + 1
		return sign + ds[:split] + "." + ds[split:]
	}
	return sign + ds[:1] + "." + ds[1:] + "e" + signedExp(exp)
}

func signedExp(exp int) string {
	if exp >= 0 {
		return "+" + strconv.Itoa(exp)
	}
	return strconv.Itoa(exp)
}
