package parser

import (
	"vlsng/internal/errors"
	"vlsng/internal/graph"
	"vlsng/internal/lexer"
	"vlsng/internal/nodes"
	"vlsng/internal/value"
)

// subgraphObjectType is the reserved object-type name that introduces a
// sub-graph definition (`name: sub~ in_arity, out_arity { ... }`) instead of
// a concrete node, per spec.md §4.3's "declaration whose RHS is a braced
// source block bound to an object-type identifier".
const subgraphObjectType = "sub"

// declaration parses `name: <object~ args... [x N]>`, `name: sub~ in, out {
// source }`, or `name: <expr>`.
func (p *Parser) declaration() error {
	nameTok, err := p.expect(lexer.TokenIdentifier)
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.TokenColon); err != nil {
		return err
	}

	if tok := p.peek(); tok.Type == lexer.TokenObject {
		if tok.Lexeme == subgraphObjectType {
			return p.subgraphDeclaration(nameTok.Lexeme)
		}
		return p.nodeDeclaration(nameTok.Lexeme)
	}

	v, err := p.expression()
	if err != nil {
		return err
	}
	p.program.SetSymbol(nameTok.Lexeme, v)
	return nil
}

// subgraphDeclaration parses the arity pair and the braced source block of a
// sub-graph definition, storing the body's source text verbatim via
// Program.DefineSubgraph. The body is not parsed here: its tokens are only
// stepped over, tracking brace depth, and its text is sliced directly out of
// the original source by byte offset, then handed to
// run_subgraph/implementation_of to be parsed (or returned) later, on its
// own terms.
func (p *Parser) subgraphDeclaration(name string) error {
	p.advance() // consumes the 'sub' OBJECT token

	inVal, err := p.expression()
	if err != nil {
		return err
	}
	inArity, err := inVal.AsNumber()
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.TokenComma); err != nil {
		return err
	}
	outVal, err := p.expression()
	if err != nil {
		return err
	}
	outArity, err := outVal.AsNumber()
	if err != nil {
		return err
	}

	if _, err := p.expect(lexer.TokenOpenBrace); err != nil {
		return err
	}
	bodyStart := p.tokens[p.pos].Start

	depth := 1
	for depth > 0 {
		tok := p.peek()
		switch tok.Type {
		case lexer.TokenOpenBrace:
			depth++
		case lexer.TokenCloseBrace:
			depth--
			if depth == 0 {
				bodyEnd := tok.Start
				p.advance() // consumes the matching '}'
				p.program.DefineSubgraph(name, int(inArity.Real), int(outArity.Real), p.source[bodyStart:bodyEnd])
				return nil
			}
		case lexer.TokenEOF:
			return p.syntaxErrorf("unterminated sub-graph body for %q", name)
		case lexer.TokenError:
			return errors.Newf(errors.Lexical, "%s in sub-graph body for %q", tok.Lexeme, name).AtLine("", tok.Line)
		}
		p.advance()
	}
	return nil
}

func (p *Parser) nodeDeclaration(name string) error {
	objTok := p.advance() // consumes the OBJECT token (lexeme is the type name, '~' already stripped)
	typeName := objTok.Lexeme

	ctor, ok := nodes.Registry[typeName]
	if !ok {
		return errors.Newf(errors.Semantic, "unknown object type %q", typeName).AtLine("", objTok.Line)
	}

	var args []value.TypedValue
	if !p.atStatementEnd() && p.peek().Type != lexer.TokenX {
		v, err := p.expression()
		if err != nil {
			return err
		}
		args = append(args, v)
		for p.match(lexer.TokenComma) {
			v, err := p.expression()
			if err != nil {
				return err
			}
			args = append(args, v)
		}
	}

	size := 1
	isGroup := false
	if p.match(lexer.TokenX) {
		isGroup = true
		n, err := p.expression()
		if err != nil {
			return err
		}
		count, err := n.AsNumber()
		if err != nil {
			return err
		}
		size = int(count.Real)
	}

	if !isGroup {
		n, err := ctor(args)
		if err != nil {
			return errors.Wrap(errors.TypeArity, err, typeName)
		}
		p.program.AddNode(name, n)
		return nil
	}

	p.program.AddGroup(name, size)
	for i := 0; i < size; i++ {
		n, err := ctor(args)
		if err != nil {
			return errors.Wrap(errors.TypeArity, err, typeName)
		}
		p.program.AddNode(graph.GroupMemberName(name, i), n)
	}
	return nil
}
