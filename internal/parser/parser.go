// Package parser implements vlsng's recursive-descent parser: it tokenises
// with internal/lexer and, per statement, either evaluates an expression
// eagerly against the live *graph.Program's symbol table, declares a node
// or group, wires a connection, or invokes a directive. Grounded on
// original_source/src/Parser.cc's single-pass, eval-as-you-go design.
package parser

import (
	"fmt"

	"vlsng/internal/errors"
	"vlsng/internal/graph"
	"vlsng/internal/lexer"
	"vlsng/internal/value"
)

func init() {
	graph.ParseFunc = Parse
}

// Parse tokenises source and populates program, statement by statement.
// Parsing is additive: existing symbols, nodes, and groups survive unless
// the caller previously called program.Reset().
func Parse(program *graph.Program, source string) error {
	p := &Parser{
		source:  source,
		tokens:  lexer.NewScanner(source).ScanTokens(),
		program: program,
	}
	return p.run()
}

// Parser holds the token stream and the program being built. source is kept
// alongside the token stream so sub-graph bodies can be sliced out verbatim
// by byte offset rather than reassembled from tokens.
type Parser struct {
	source        string
	tokens        []lexer.Token
	pos           int
	program       *graph.Program
	inlineCounter int
}

func (p *Parser) run() error {
	for {
		p.skipBlankLines()
		if p.peek().Type == lexer.TokenEOF {
			return nil
		}
		if err := p.statement(); err != nil {
			return err
		}
	}
}

func (p *Parser) skipBlankLines() {
	for p.peek().Type == lexer.TokenNewline {
		p.advance()
	}
}

func (p *Parser) statement() error {
	tok := p.peek()
	switch tok.Type {
	case lexer.TokenAmpersand:
		if err := p.directive(); err != nil {
			return err
		}
	case lexer.TokenIdentifier:
		next := p.peekAt(1)
		switch next.Type {
		case lexer.TokenColon:
			if err := p.declaration(); err != nil {
				return err
			}
		case lexer.TokenOpenBrace:
			if err := p.connection(); err != nil {
				return err
			}
		default:
			return p.syntaxErrorf("expected ':' or '{' after identifier %q", tok.Lexeme)
		}
	default:
		return p.syntaxErrorf("unexpected token %s at start of statement", tok)
	}
	return p.statementEnd()
}

func (p *Parser) statementEnd() error {
	tok := p.peek()
	if tok.Type == lexer.TokenEOF {
		return nil
	}
	if tok.Type != lexer.TokenNewline {
		return p.syntaxErrorf("expected end of statement, got %s", tok)
	}
	p.advance()
	return nil
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(offset int) lexer.Token {
	i := p.pos + offset
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) advance() lexer.Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) match(t lexer.TokenType) bool {
	if p.peek().Type == t {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(t lexer.TokenType) (lexer.Token, error) {
	if p.peek().Type != t {
		return lexer.Token{}, p.syntaxErrorf("expected %s, got %s", t, p.peek())
	}
	return p.advance(), nil
}

func (p *Parser) syntaxErrorf(format string, args ...interface{}) error {
	return errors.Newf(errors.Syntactic, format, args...).AtLine("", p.peek().Line)
}

func (p *Parser) directive() error {
	p.advance() // '&'
	nameTok, err := p.expect(lexer.TokenIdentifier)
	if err != nil {
		return err
	}
	var args []value.TypedValue
	for !p.atStatementEnd() {
		v, err := p.expression()
		if err != nil {
			return err
		}
		args = append(args, v)
	}
	return p.program.InvokeDirective(nameTok.Lexeme, args)
}

func (p *Parser) atStatementEnd() bool {
	t := p.peek().Type
	return t == lexer.TokenNewline || t == lexer.TokenEOF
}

func (p *Parser) nextInlineName() string {
	name := fmt.Sprintf("inline_object%d", p.inlineCounter)
	p.inlineCounter++
	return name
}
