package engine

import (
	"fmt"
	"math"
	"strconv"

	"github.com/rs/zerolog/log"
)

// Evaluate evaluates a compiled numeric expression. Syntax errors and
// non-finite results degrade to 0; evaluation never fails past this boundary.
func Evaluate(expr string) float64 {
	v, err := evalExpr(expr)
	if err != nil {
		log.Debug().Err(err).Str("expr", expr).Msg("expression evaluation failed, using 0")
		return 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// evalExpr parses and evaluates the expression grammar:
//
//	ternary    := or ("?" ternary ":" ternary)?
//	or         := and ("||" and)*
//	and        := equality ("&&" equality)*
//	equality   := comparison (("==" | "!=") comparison)*
//	comparison := additive (("<" | "<=" | ">" | ">=") additive)*
//	additive   := multiplicative (("+" | "-") multiplicative)*
//	multiplicative := unary (("*" | "/" | "%") unary)*
//	unary      := ("-" | "+" | "!") unary | primary
//	primary    := number | "(" ternary ")"
//
// Comparisons yield 1 or 0, conditions treat any non-zero value as true.
// There are no identifiers: placeholders are substituted before evaluation,
// so the grammar is closed over numeric literals and operators only.
func evalExpr(expr string) (float64, error) {
	p := &exprParser{src: expr}
	v, err := p.ternary()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return 0, fmt.Errorf("unexpected %q at offset %d", p.src[p.pos], p.pos)
	}
	return v, nil
}

type exprParser struct {
	src string
	pos int
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			break
		}
		p.pos++
	}
}

// match consumes op if it is next in the input. Single-char operators are not
// matched when they are a prefix of a longer operator ("<" vs "<=", "!" vs
// "!=", "&" never matches alone).
func (p *exprParser) match(op string) bool {
	p.skipSpace()
	if !p.hasPrefix(op) {
		return false
	}
	if len(op) == 1 {
		next := p.pos + 1
		if next < len(p.src) {
			c := p.src[next]
			if (op == "<" || op == ">" || op == "!") && c == '=' {
				return false
			}
		}
	}
	p.pos += len(op)
	return true
}

func (p *exprParser) hasPrefix(op string) bool {
	return p.pos+len(op) <= len(p.src) && p.src[p.pos:p.pos+len(op)] == op
}

func (p *exprParser) ternary() (float64, error) {
	cond, err := p.or()
	if err != nil {
		return 0, err
	}
	if !p.match("?") {
		return cond, nil
	}
	whenTrue, err := p.ternary()
	if err != nil {
		return 0, err
	}
	if !p.match(":") {
		return 0, fmt.Errorf("expected ':' at offset %d", p.pos)
	}
	whenFalse, err := p.ternary()
	if err != nil {
		return 0, err
	}
	if cond != 0 {
		return whenTrue, nil
	}
	return whenFalse, nil
}

func (p *exprParser) or() (float64, error) {
	left, err := p.and()
	if err != nil {
		return 0, err
	}
	for p.match("||") {
		right, err := p.and()
		if err != nil {
			return 0, err
		}
		if left == 0 {
			left = right
		}
	}
	return left, nil
}

func (p *exprParser) and() (float64, error) {
	left, err := p.equality()
	if err != nil {
		return 0, err
	}
	for p.match("&&") {
		right, err := p.equality()
		if err != nil {
			return 0, err
		}
		if left != 0 {
			left = right
		}
	}
	return left, nil
}

func (p *exprParser) equality() (float64, error) {
	left, err := p.comparison()
	if err != nil {
		return 0, err
	}
	for {
		switch {
		case p.match("=="):
			right, err := p.comparison()
			if err != nil {
				return 0, err
			}
			left = boolToNum(left == right)
		case p.match("!="):
			right, err := p.comparison()
			if err != nil {
				return 0, err
			}
			left = boolToNum(left != right)
		default:
			return left, nil
		}
	}
}

func (p *exprParser) comparison() (float64, error) {
	left, err := p.additive()
	if err != nil {
		return 0, err
	}
	for {
		switch {
		case p.match("<="):
			right, err := p.additive()
			if err != nil {
				return 0, err
			}
			left = boolToNum(left <= right)
		case p.match(">="):
			right, err := p.additive()
			if err != nil {
				return 0, err
			}
			left = boolToNum(left >= right)
		case p.match("<"):
			right, err := p.additive()
			if err != nil {
				return 0, err
			}
			left = boolToNum(left < right)
		case p.match(">"):
			right, err := p.additive()
			if err != nil {
				return 0, err
			}
			left = boolToNum(left > right)
		default:
			return left, nil
		}
	}
}

func (p *exprParser) additive() (float64, error) {
	left, err := p.multiplicative()
	if err != nil {
		return 0, err
	}
	for {
		switch {
		case p.match("+"):
			right, err := p.multiplicative()
			if err != nil {
				return 0, err
			}
			left += right
		case p.match("-"):
			right, err := p.multiplicative()
			if err != nil {
				return 0, err
			}
			left -= right
		default:
			return left, nil
		}
	}
}

func (p *exprParser) multiplicative() (float64, error) {
	left, err := p.unary()
	if err != nil {
		return 0, err
	}
	for {
		switch {
		case p.match("*"):
			right, err := p.unary()
			if err != nil {
				return 0, err
			}
			left *= right
		case p.match("/"):
			right, err := p.unary()
			if err != nil {
				return 0, err
			}
			left /= right
		case p.match("%"):
			right, err := p.unary()
			if err != nil {
				return 0, err
			}
			left = math.Mod(left, right)
		default:
			return left, nil
		}
	}
}

func (p *exprParser) unary() (float64, error) {
	switch {
	case p.match("-"):
		v, err := p.unary()
		return -v, err
	case p.match("+"):
		return p.unary()
	case p.match("!"):
		v, err := p.unary()
		if err != nil {
			return 0, err
		}
		return boolToNum(v == 0), nil
	}
	return p.primary()
}

func (p *exprParser) primary() (float64, error) {
	p.skipSpace()
	if p.match("(") {
		v, err := p.ternary()
		if err != nil {
			return 0, err
		}
		if !p.match(")") {
			return 0, fmt.Errorf("expected ')' at offset %d", p.pos)
		}
		return v, nil
	}
	return p.number()
}

func (p *exprParser) number() (float64, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
		p.pos++
	}
	if p.pos < len(p.src) && p.src[p.pos] == '.' {
		p.pos++
		for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
			p.pos++
		}
	}
	if p.pos == start {
		return 0, fmt.Errorf("expected number at offset %d", start)
	}
	n, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q: %w", p.src[start:p.pos], err)
	}
	return n, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func boolToNum(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
