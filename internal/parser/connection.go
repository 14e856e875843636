package parser

import (
	"vlsng/internal/errors"
	"vlsng/internal/graph"
	"vlsng/internal/lexer"
	"vlsng/internal/nodes"
	"vlsng/internal/value"
)

// term is one stop in a connection chain: either a plain port reference
// (name{port}) or an inline operator splice (`* 0.5`) awaiting
// materialization into a synthetic node.
type term struct {
	isInline bool
	name     string // set for a portRef term
	port     int    // set for a portRef term

	op      lexer.TokenType // set for an inline term
	operand value.TypedValue
}

// connection parses a chain of port references joined by `->`/`=>`, with
// optional inline operator splices between arrows, and wires the resulting
// edges into the program.
func (p *Parser) connection() error {
	var stops []term
	var arrows []lexer.TokenType

	first, err := p.chainTerm()
	if err != nil {
		return err
	}
	stops = append(stops, first)

	for p.peek().Type == lexer.TokenArrow || p.peek().Type == lexer.TokenBiclique {
		arrow := p.advance().Type
		next, err := p.chainTerm()
		if err != nil {
			return err
		}
		arrows = append(arrows, arrow)
		stops = append(stops, next)
	}

	if len(arrows) == 0 {
		return p.syntaxErrorf("connection statement has no '->' or '=>'")
	}

	resolved := make([]resolvedStop, len(stops))
	for i, t := range stops {
		r, err := p.resolveTerm(t)
		if err != nil {
			return err
		}
		resolved[i] = r
	}

	for i, arrow := range arrows {
		if err := p.wire(resolved[i], resolved[i+1], arrow); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) chainTerm() (term, error) {
	switch p.peek().Type {
	case lexer.TokenPlus, lexer.TokenMinus, lexer.TokenAsterisk, lexer.TokenSlash:
		opTok := p.advance()
		operand, err := p.expression()
		if err != nil {
			return term{}, err
		}
		return term{isInline: true, op: opTok.Type, operand: operand}, nil
	case lexer.TokenIdentifier:
		nameTok, err := p.expect(lexer.TokenIdentifier)
		if err != nil {
			return term{}, err
		}
		if _, err := p.expect(lexer.TokenOpenBrace); err != nil {
			return term{}, err
		}
		idx, err := p.expression()
		if err != nil {
			return term{}, err
		}
		n, err := idx.AsNumber()
		if err != nil {
			return term{}, err
		}
		if _, err := p.expect(lexer.TokenCloseBrace); err != nil {
			return term{}, err
		}
		return term{name: nameTok.Lexeme, port: int(n.Real)}, nil
	default:
		return term{}, p.syntaxErrorf("expected a port reference or inline operator, got %s", p.peek())
	}
}

// resolvedStop names a concrete node (or group) and port after inline
// operator terms have been materialized into synthetic nodes.
type resolvedStop struct {
	name string
	port int
}

func (p *Parser) resolveTerm(t term) (resolvedStop, error) {
	if !t.isInline {
		return resolvedStop{name: t.name, port: t.port}, nil
	}

	typeName, ok := nodes.InlineConstructors[string(t.op)]
	if !ok {
		return resolvedStop{}, p.syntaxErrorf("unsupported inline operator %q", string(t.op))
	}
	ctor := nodes.Registry[typeName]
	n, err := ctor([]value.TypedValue{t.operand})
	if err != nil {
		return resolvedStop{}, errors.Wrap(errors.TypeArity, err, "inline operator")
	}
	name := p.nextInlineName()
	p.program.AddNode(name, n)
	return resolvedStop{name: name, port: 0}, nil
}

func (p *Parser) resolveNodeNames(name string) (names []string, isGroup bool) {
	if members, ok := p.program.GroupMembers(name); ok {
		return members, true
	}
	return []string{name}, false
}

// wire connects from -> to, inferring the connection cardinality from
// whether each side names a group and from the arrow token used:
//   ->  between two plain nodes         -> one_to_one
//   ->  group -> plain node             -> many_to_one
//   ->  plain node -> group             -> one_to_many
//   ->  group -> a *different* group    -> many_to_many (equal sizes required)
//   ->  a group connected to itself     -> series (chains its members)
//   =>  group -> group                  -> biclique (full bipartite)
func (p *Parser) wire(from, to resolvedStop, arrow lexer.TokenType) error {
	fromNames, fromIsGroup := p.resolveNodeNames(from.name)
	toNames, toIsGroup := p.resolveNodeNames(to.name)

	if arrow == lexer.TokenBiclique {
		if !fromIsGroup || !toIsGroup {
			return errors.New(errors.TypeArity, "biclique connections ('=>') require a group on both sides")
		}
		return p.program.Connect(fromNames, from.port, toNames, to.port, graph.Biclique)
	}

	switch {
	case fromIsGroup && toIsGroup && from.name == to.name:
		return p.program.Connect(fromNames, from.port, nil, to.port, graph.Series)
	case fromIsGroup && toIsGroup:
		if len(fromNames) != len(toNames) {
			return errors.Newf(errors.TypeArity, "many_to_many requires equal group sizes, got %d and %d", len(fromNames), len(toNames))
		}
		return p.program.Connect(fromNames, from.port, toNames, to.port, graph.ManyToMany)
	case fromIsGroup:
		return p.program.Connect(fromNames, from.port, toNames, to.port, graph.ManyToOne)
	case toIsGroup:
		return p.program.Connect(fromNames, from.port, toNames, to.port, graph.OneToMany)
	default:
		return p.program.Connect(fromNames, from.port, toNames, to.port, graph.OneToOne)
	}
}
