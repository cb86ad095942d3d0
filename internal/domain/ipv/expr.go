package ipv

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ipv-restaurante/internal/domain"
)

const (
	maxExprLen   = 256
	maxExprDepth = 32
	// cellDecimals son los decimales con que se muestra una celda evaluada.
	cellDecimals = 3
)

// Evaluate calcula una expresión aritmética con números decimales, + - * /, signo unario
// y paréntesis. Cualquier otro símbolo es un error.
func Evaluate(expr string) (decimal.Decimal, error) {
	if len(expr) > maxExprLen {
		return decimal.Zero, fmt.Errorf("%w: demasiado larga", domain.ErrInvalidExpression)
	}
	p := &exprParser{src: expr}
	p.skipSpaces()
	if p.done() {
		return decimal.Zero, fmt.Errorf("%w: vacía", domain.ErrInvalidExpression)
	}
	v, err := p.parseExpr(0)
	if err != nil {
		return decimal.Zero, err
	}
	p.skipSpaces()
	if !p.done() {
		return decimal.Zero, p.errorf("símbolo inesperado %q", p.src[p.pos])
	}
	return v, nil
}

// EvaluateCell evalúa la expresión escrita en una celda y la redondea a 3 decimales.
func EvaluateCell(expr string) (decimal.Decimal, error) {
	v, err := Evaluate(expr)
	if err != nil {
		return decimal.Zero, err
	}
	return v.Round(cellDecimals), nil
}

type exprParser struct {
	src string
	pos int
}

func (p *exprParser) done() bool { return p.pos >= len(p.src) }

func (p *exprParser) skipSpaces() {
	for !p.done() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *exprParser) peek() byte {
	p.skipSpaces()
	if p.done() {
		return 0
	}
	return p.src[p.pos]
}

func (p *exprParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s (posición %d)", domain.ErrInvalidExpression, fmt.Sprintf(format, args...), p.pos)
}

// expr := term (('+' | '-') term)*
func (p *exprParser) parseExpr(depth int) (decimal.Decimal, error) {
	left, err := p.parseTerm(depth)
	if err != nil {
		return decimal.Zero, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			right, err := p.parseTerm(depth)
			if err != nil {
				return decimal.Zero, err
			}
			left = left.Add(right)
		case '-':
			p.pos++
			right, err := p.parseTerm(depth)
			if err != nil {
				return decimal.Zero, err
			}
			left = left.Sub(right)
		default:
			return left, nil
		}
	}
}

// term := factor (('*' | '/') factor)*
func (p *exprParser) parseTerm(depth int) (decimal.Decimal, error) {
	left, err := p.parseFactor(depth)
	if err != nil {
		return decimal.Zero, err
	}
	for {
		switch p.peek() {
		case '*':
			p.pos++
			right, err := p.parseFactor(depth)
			if err != nil {
				return decimal.Zero, err
			}
			left = left.Mul(right)
		case '/':
			p.pos++
			right, err := p.parseFactor(depth)
			if err != nil {
				return decimal.Zero, err
			}
			if right.IsZero() {
				return decimal.Zero, p.errorf("división por cero")
			}
			left = left.Div(right)
		default:
			return left, nil
		}
	}
}

// factor := ('+' | '-') factor | number | '(' expr ')'
func (p *exprParser) parseFactor(depth int) (decimal.Decimal, error) {
	if depth > maxExprDepth {
		return decimal.Zero, p.errorf("anidamiento excesivo")
	}
	switch c := p.peek(); {
	case c == '+':
		p.pos++
		return p.parseFactor(depth + 1)
	case c == '-':
		p.pos++
		v, err := p.parseFactor(depth + 1)
		return v.Neg(), err
	case c == '(':
		p.pos++
		v, err := p.parseExpr(depth + 1)
		if err != nil {
			return decimal.Zero, err
		}
		if p.peek() != ')' {
			return decimal.Zero, p.errorf("falta ')'")
		}
		p.pos++
		return v, nil
	case c == '.' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	case c == 0:
		return decimal.Zero, p.errorf("expresión incompleta")
	default:
		return decimal.Zero, p.errorf("símbolo inesperado %q", c)
	}
}

func (p *exprParser) parseNumber() (decimal.Decimal, error) {
	start := p.pos
	dot := false
	for !p.done() {
		c := p.src[p.pos]
		if c == '.' && !dot {
			dot = true
		} else if c < '0' || c > '9' {
			break
		}
		p.pos++
	}
	lit := p.src[start:p.pos]
	if strings.Trim(lit, ".") == "" {
		return decimal.Zero, p.errorf("número inválido")
	}
	lit = strings.TrimSuffix(lit, ".")
	if strings.HasPrefix(lit, ".") {
		lit = "0" + lit
	}
	v, err := decimal.NewFromString(lit)
	if err != nil {
		return decimal.Zero, p.errorf("número inválido %q", lit)
	}
	return v, nil
}
