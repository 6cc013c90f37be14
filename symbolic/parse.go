package symbolic

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ============================================================
// Parser: infix text to Expr
// ============================================================
//
// Grammar:
//
//	sum     := product (('+' | '-') product)*
//	product := unary (('*' | '/') unary | power)*   juxtaposition multiplies
//	unary   := ('+' | '-') unary | power
//	power   := atom (('^' | '**') unary)?          right associative
//	atom    := number | ident | 'sqrt' '(' sum ')' | '(' sum ')'

// ErrDivisionByZero is returned when a divisor simplifies to zero.
var ErrDivisionByZero = errors.New("division by zero")

const maxParseDepth = 200

// SyntaxError describes malformed input. Offset is a byte offset into Input.
type SyntaxError struct {
	Input  string
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d in %q: %s", e.Offset, e.Input, e.Msg)
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPow
	tokLParen
	tokRParen
)

type token struct {
	kind   tokenKind
	text   string
	offset int
}

func (t token) describe() string {
	if t.kind == tokEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.text)
}

// startsAtom reports whether a token can begin an implicit multiplication operand.
func (t token) startsAtom() bool {
	return t.kind == tokNumber || t.kind == tokIdent || t.kind == tokLParen
}

func lex(input string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(input) {
		r, size := utf8.DecodeRuneInString(input[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case r >= '0' && r <= '9' || r == '.':
			start := i
			dot := false
			for i < len(input) {
				c := input[i]
				if c == '.' {
					if dot {
						return nil, &SyntaxError{Input: input, Offset: i, Msg: "malformed number"}
					}
					dot = true
					i++
					continue
				}
				if c < '0' || c > '9' {
					break
				}
				i++
			}
			text := input[start:i]
			if text == "." {
				return nil, &SyntaxError{Input: input, Offset: start, Msg: "malformed number"}
			}
			toks = append(toks, token{kind: tokNumber, text: text, offset: start})
		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(input) {
				c, n := utf8.DecodeRuneInString(input[i:])
				if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' {
					break
				}
				i += n
			}
			toks = append(toks, token{kind: tokIdent, text: input[start:i], offset: start})
		case r == '*':
			if strings.HasPrefix(input[i:], "**") {
				toks = append(toks, token{kind: tokPow, text: "**", offset: i})
				i += 2
				continue
			}
			toks = append(toks, token{kind: tokStar, text: "*", offset: i})
			i++
		case r == '^':
			toks = append(toks, token{kind: tokPow, text: "^", offset: i})
			i++
		case r == '+':
			toks = append(toks, token{kind: tokPlus, text: "+", offset: i})
			i++
		case r == '-':
			toks = append(toks, token{kind: tokMinus, text: "-", offset: i})
			i++
		case r == '/':
			toks = append(toks, token{kind: tokSlash, text: "/", offset: i})
			i++
		case r == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", offset: i})
			i++
		case r == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", offset: i})
			i++
		default:
			return nil, &SyntaxError{Input: input, Offset: i, Msg: fmt.Sprintf("unexpected character %q", r)}
		}
	}
	return append(toks, token{kind: tokEOF, offset: len(input)}), nil
}

type parser struct {
	input string
	toks  []token
	pos   int
	depth int
}

// Parse reads an infix expression such as "3x^2 - 2(x + 1)/5" into a
// simplified Expr. Identifiers become symbols; "sqrt" is the only function.
func Parse(input string) (Expr, error) {
	toks, err := lex(input)
	if err != nil {
		return nil, err
	}
	if toks[0].kind == tokEOF {
		return nil, &SyntaxError{Input: input, Offset: 0, Msg: "empty expression"}
	}
	p := &parser{input: input, toks: toks}
	e, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.errorf(t, "unexpected %s", t.describe())
	}
	return e.Simplify(), nil
}

// MustParse is like Parse but panics on error. Intended for tests and examples.
func MustParse(input string) Expr {
	e, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return e
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) errorf(t token, format string, args ...interface{}) error {
	return &SyntaxError{Input: p.input, Offset: t.offset, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > maxParseDepth {
		return p.errorf(p.peek(), "expression nested too deeply")
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

func (p *parser) parseSum() (Expr, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	terms := []Expr{left}
	for {
		switch p.peek().kind {
		case tokPlus:
			p.next()
			right, err := p.parseProduct()
			if err != nil {
				return nil, err
			}
			terms = append(terms, right)
		case tokMinus:
			p.next()
			right, err := p.parseProduct()
			if err != nil {
				return nil, err
			}
			terms = append(terms, MulOf(N(-1), right))
		default:
			if len(terms) == 1 {
				return left, nil
			}
			return AddOf(terms...), nil
		}
	}
}

func (p *parser) parseProduct() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	factors := []Expr{left}
	for {
		t := p.peek()
		switch {
		case t.kind == tokStar:
			p.next()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			factors = append(factors, right)
		case t.kind == tokSlash:
			p.next()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			if n, ok := right.Simplify().(*Num); ok && n.IsZero() {
				return nil, fmt.Errorf("%w at offset %d in %q", ErrDivisionByZero, t.offset, p.input)
			}
			factors = append(factors, PowOf(right, N(-1)))
		case t.startsAtom():
			right, err := p.parsePower()
			if err != nil {
				return nil, err
			}
			factors = append(factors, right)
		default:
			if len(factors) == 1 {
				return left, nil
			}
			return MulOf(factors...), nil
		}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	switch p.peek().kind {
	case tokPlus:
		p.next()
		return p.parseUnary()
	case tokMinus:
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return MulOf(N(-1), operand), nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Expr, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	t := p.peek()
	if t.kind != tokPow {
		return base, nil
	}
	p.next()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if bn, ok := base.Simplify().(*Num); ok && bn.IsZero() {
		if en, ok := exp.Simplify().(*Num); ok && en.IsNegative() {
			return nil, fmt.Errorf("%w at offset %d in %q", ErrDivisionByZero, t.offset, p.input)
		}
	}
	return PowOf(base, exp), nil
}

func (p *parser) parseAtom() (Expr, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		text := t.text
		if strings.HasPrefix(text, ".") {
			text = "0" + text
		}
		if strings.HasSuffix(text, ".") {
			text += "0"
		}
		r, ok := new(big.Rat).SetString(text)
		if !ok {
			return nil, p.errorf(t, "malformed number %q", t.text)
		}
		return &Num{val: r}, nil
	case tokIdent:
		if t.text == "sqrt" {
			if p.peek().kind != tokLParen {
				return nil, p.errorf(p.peek(), "sqrt requires a parenthesized argument")
			}
			arg, err := p.parseGroup()
			if err != nil {
				return nil, err
			}
			return SqrtOf(arg), nil
		}
		return S(t.text), nil
	case tokLParen:
		p.pos--
		return p.parseGroup()
	}
	return nil, p.errorf(t, "unexpected %s", t.describe())
}

func (p *parser) parseGroup() (Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	open := p.next()
	inner, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokRParen {
		return nil, p.errorf(open, "unclosed parenthesis")
	}
	p.next()
	return inner, nil
}
