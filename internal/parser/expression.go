package parser

import (
	"strconv"

	"vlsng/internal/errors"
	"vlsng/internal/lexer"
	"vlsng/internal/stdlib"
	"vlsng/internal/value"
)

// expression parses and eagerly evaluates a full arithmetic expression
// against the live program's symbol table, following the precedence
// addsub < muldiv < pow < unary < primary.
func (p *Parser) expression() (value.TypedValue, error) {
	return p.addSub()
}

func (p *Parser) addSub() (value.TypedValue, error) {
	left, err := p.mulDiv()
	if err != nil {
		return value.TypedValue{}, err
	}
	for {
		switch p.peek().Type {
		case lexer.TokenPlus:
			p.advance()
			right, err := p.mulDiv()
			if err != nil {
				return value.TypedValue{}, err
			}
			left, err = left.Add(right)
			if err != nil {
				return value.TypedValue{}, p.typeError(err)
			}
		case lexer.TokenMinus:
			p.advance()
			right, err := p.mulDiv()
			if err != nil {
				return value.TypedValue{}, err
			}
			left, err = left.Sub(right)
			if err != nil {
				return value.TypedValue{}, p.typeError(err)
			}
		default:
			return left, nil
		}
	}
}

func (p *Parser) mulDiv() (value.TypedValue, error) {
	left, err := p.power()
	if err != nil {
		return value.TypedValue{}, err
	}
	for {
		switch p.peek().Type {
		case lexer.TokenAsterisk:
			p.advance()
			right, err := p.power()
			if err != nil {
				return value.TypedValue{}, err
			}
			left, err = left.Mul(right)
			if err != nil {
				return value.TypedValue{}, p.typeError(err)
			}
		case lexer.TokenSlash:
			p.advance()
			right, err := p.power()
			if err != nil {
				return value.TypedValue{}, err
			}
			left, err = left.Div(right)
			if err != nil {
				return value.TypedValue{}, p.typeError(err)
			}
		default:
			return left, nil
		}
	}
}

// power is right-associative: 2^3^2 == 2^(3^2).
func (p *Parser) power() (value.TypedValue, error) {
	left, err := p.unary()
	if err != nil {
		return value.TypedValue{}, err
	}
	if p.peek().Type == lexer.TokenCaret {
		p.advance()
		right, err := p.power()
		if err != nil {
			return value.TypedValue{}, err
		}
		left, err = left.Pow(right)
		if err != nil {
			return value.TypedValue{}, p.typeError(err)
		}
	}
	return left, nil
}

func (p *Parser) unary() (value.TypedValue, error) {
	switch p.peek().Type {
	case lexer.TokenMinus:
		p.advance()
		v, err := p.unary()
		if err != nil {
			return value.TypedValue{}, err
		}
		result, err := v.Negate()
		if err != nil {
			return value.TypedValue{}, p.typeError(err)
		}
		return result, nil
	case lexer.TokenPlus:
		p.advance()
		return p.unary()
	default:
		return p.primary()
	}
}

func (p *Parser) primary() (value.TypedValue, error) {
	tok := p.peek()
	switch tok.Type {
	case lexer.TokenNumericLiteral:
		p.advance()
		f, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return value.TypedValue{}, errors.Newf(errors.Lexical, "invalid numeric literal %q", tok.Lexeme).AtLine("", tok.Line)
		}
		return value.FromFloat(f), nil

	case lexer.TokenStringLiteral:
		p.advance()
		return value.FromText(value.Text(tok.Lexeme)), nil

	case lexer.TokenOpenBrace:
		return p.sequenceLiteral()

	case lexer.TokenOpenBrack:
		return p.rangeLiteral()

	case lexer.TokenOpenParen:
		p.advance()
		v, err := p.expression()
		if err != nil {
			return value.TypedValue{}, err
		}
		if _, err := p.expect(lexer.TokenCloseParen); err != nil {
			return value.TypedValue{}, err
		}
		return v, nil

	case lexer.TokenIdentifier:
		p.advance()
		if p.peek().Type == lexer.TokenOpenParen {
			return p.procedureCall(tok.Lexeme)
		}
		v, ok := p.program.Symbol(tok.Lexeme)
		if !ok {
			return value.TypedValue{}, errors.Newf(errors.Semantic, "unknown identifier %q", tok.Lexeme).AtLine("", tok.Line)
		}
		return v, nil

	default:
		return value.TypedValue{}, p.syntaxErrorf("unexpected token %s in expression", tok)
	}
}

func (p *Parser) procedureCall(name string) (value.TypedValue, error) {
	if _, err := p.expect(lexer.TokenOpenParen); err != nil {
		return value.TypedValue{}, err
	}
	var args []value.TypedValue
	if p.peek().Type != lexer.TokenCloseParen {
		v, err := p.expression()
		if err != nil {
			return value.TypedValue{}, err
		}
		args = append(args, v)
		for p.match(lexer.TokenComma) {
			v, err := p.expression()
			if err != nil {
				return value.TypedValue{}, err
			}
			args = append(args, v)
		}
	}
	if _, err := p.expect(lexer.TokenCloseParen); err != nil {
		return value.TypedValue{}, err
	}

	proc, ok := stdlib.Lookup(name)
	if !ok {
		return value.TypedValue{}, errors.Newf(errors.Semantic, "unknown procedure %q", name)
	}
	result, err := proc.Call(args, p.program)
	if err != nil {
		return value.TypedValue{}, errors.Wrap(errors.TypeArity, err, name)
	}
	return result, nil
}

func (p *Parser) sequenceLiteral() (value.TypedValue, error) {
	if _, err := p.expect(lexer.TokenOpenBrace); err != nil {
		return value.TypedValue{}, err
	}
	var seq value.Sequence
	if p.peek().Type != lexer.TokenCloseBrace {
		for {
			v, err := p.expression()
			if err != nil {
				return value.TypedValue{}, err
			}
			n, err := v.AsNumber()
			if err != nil {
				return value.TypedValue{}, err
			}
			seq = append(seq, n)
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	if _, err := p.expect(lexer.TokenCloseBrace); err != nil {
		return value.TypedValue{}, err
	}
	return value.FromSequence(seq), nil
}

// rangeLiteral parses the `[lo, hi]` shorthand into the inclusive integer
// sequence lo, lo+1, ..., hi stepping by 1; hi < lo yields an empty
// sequence. See SPEC_FULL.md §10 for why this stepping/inclusivity was
// chosen over the other readings the spec left open.
func (p *Parser) rangeLiteral() (value.TypedValue, error) {
	if _, err := p.expect(lexer.TokenOpenBrack); err != nil {
		return value.TypedValue{}, err
	}
	loVal, err := p.expression()
	if err != nil {
		return value.TypedValue{}, err
	}
	lo, err := loVal.AsNumber()
	if err != nil {
		return value.TypedValue{}, err
	}
	if _, err := p.expect(lexer.TokenComma); err != nil {
		return value.TypedValue{}, err
	}
	hiVal, err := p.expression()
	if err != nil {
		return value.TypedValue{}, err
	}
	hi, err := hiVal.AsNumber()
	if err != nil {
		return value.TypedValue{}, err
	}
	if _, err := p.expect(lexer.TokenCloseBrack); err != nil {
		return value.TypedValue{}, err
	}

	var seq value.Sequence
	for v := lo.Real; v <= hi.Real+1e-9; v++ {
		seq = append(seq, value.NumberFromFloat(v))
	}
	return value.FromSequence(seq), nil
}

func (p *Parser) typeError(err error) error {
	return errors.Wrap(errors.TypeArity, err, "arithmetic").AtLine("", p.peek().Line)
}
