package spec

import (
	"io"

	verr "github.com/nihei9/noam/error"
)

type RootNode struct {
	Rules []*RuleNode
}

// RuleNode is a rule `LHS -> RHS[0] | RHS[1] | ... ;`. The left side of a rule is a sequence of
// symbols so that unrestricted grammars can be written.
type RuleNode struct {
	LHS []*ElementNode
	RHS []*AlternativeNode
	Pos Position
}

// AlternativeNode is either ε or a non-empty sequence of symbols.
type AlternativeNode struct {
	Elements []*ElementNode
	Epsilon  bool
	Pos      Position
}

// ElementNode holds exactly one of Nonterminal and Terminal.
type ElementNode struct {
	Nonterminal string
	Terminal    string
	Pos         Position
}

func raiseSyntaxError(pos Position, synErr *SyntaxError) {
	panic(&verr.SpecError{
		Cause: synErr,
		Row:   pos.Row,
		Col:   pos.Col,
	})
}

func Parse(src io.Reader) (*RootNode, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	root, err := p.parse()
	if err != nil {
		return nil, err
	}
	return root, nil
}

type parser struct {
	lex       *lexer
	peekedTok *token
	lastTok   *token
}

func newParser(src io.Reader) (*parser, error) {
	lex, err := newLexer(src)
	if err != nil {
		return nil, err
	}
	return &parser{
		lex: lex,
	}, nil
}

func (p *parser) parse() (root *RootNode, retErr error) {
	defer func() {
		err := recover()
		if err != nil {
			retErr = err.(error)
			return
		}
	}()
	return p.parseRoot(), nil
}

func (p *parser) parseRoot() *RootNode {
	pos := p.pos()
	rule := p.parseRule()
	if rule == nil {
		raiseSyntaxError(pos, synErrNoRule)
	}
	hasInitial := false
	for _, elem := range rule.LHS {
		if elem.Nonterminal != "" {
			hasInitial = true
			break
		}
	}
	if !hasInitial {
		raiseSyntaxError(rule.Pos, synErrNoInitial)
	}
	root := &RootNode{
		Rules: []*RuleNode{rule},
	}
	for {
		rule := p.parseRule()
		if rule == nil {
			break
		}
		root.Rules = append(root.Rules, rule)
	}
	return root
}

func (p *parser) parseRule() *RuleNode {
	if p.consume(tokenKindEOF) {
		return nil
	}
	if p.consume(tokenKindEpsilon) {
		raiseSyntaxError(p.lastTok.pos, synErrEpsilonOnLeftSide)
	}
	pos := p.pos()
	lhs := p.parseElements()
	if len(lhs) == 0 {
		raiseSyntaxError(pos, synErrNoLeftSide)
	}
	if p.consume(tokenKindEpsilon) {
		raiseSyntaxError(p.lastTok.pos, synErrEpsilonOnLeftSide)
	}
	if !p.consume(tokenKindArrow) {
		raiseSyntaxError(p.pos(), synErrNoArrow)
	}
	alt := p.parseAlternative()
	rhs := []*AlternativeNode{alt}
	for {
		if !p.consume(tokenKindOr) {
			break
		}
		alt := p.parseAlternative()
		rhs = append(rhs, alt)
	}
	if !p.consume(tokenKindSemicolon) {
		raiseSyntaxError(p.pos(), synErrNoSemicolon)
	}
	return &RuleNode{
		LHS: lhs,
		RHS: rhs,
		Pos: pos,
	}
}

func (p *parser) parseAlternative() *AlternativeNode {
	pos := p.pos()
	if p.consume(tokenKindEpsilon) {
		if elems := p.parseElements(); len(elems) > 0 {
			raiseSyntaxError(elems[0].Pos, synErrEpsilonWithSymbols)
		}
		return &AlternativeNode{
			Epsilon: true,
			Pos:     pos,
		}
	}
	elems := p.parseElements()
	if len(elems) == 0 {
		raiseSyntaxError(pos, synErrEmptyAlternative)
	}
	if p.consume(tokenKindEpsilon) {
		raiseSyntaxError(p.lastTok.pos, synErrEpsilonWithSymbols)
	}
	return &AlternativeNode{
		Elements: elems,
		Pos:      pos,
	}
}

func (p *parser) parseElements() []*ElementNode {
	var elems []*ElementNode
	for {
		elem := p.parseElement()
		if elem == nil {
			break
		}
		elems = append(elems, elem)
	}
	return elems
}

func (p *parser) parseElement() *ElementNode {
	switch {
	case p.consume(tokenKindNonterminal):
		return &ElementNode{
			Nonterminal: p.lastTok.text,
			Pos:         p.lastTok.pos,
		}
	case p.consume(tokenKindTerminal):
		return &ElementNode{
			Terminal: p.lastTok.text,
			Pos:      p.lastTok.pos,
		}
	}
	return nil
}

// pos returns the position of the next token.
func (p *parser) pos() Position {
	if p.peekedTok == nil {
		tok, err := p.lex.next()
		if err != nil {
			panic(err)
		}
		p.peekedTok = tok
	}
	return p.peekedTok.pos
}

func (p *parser) consume(expected tokenKind) bool {
	var tok *token
	var err error
	if p.peekedTok != nil {
		tok = p.peekedTok
		p.peekedTok = nil
	} else {
		tok, err = p.lex.next()
		if err != nil {
			panic(err)
		}
	}
	p.lastTok = tok
	if tok.kind == tokenKindInvalid {
		raiseSyntaxError(tok.pos, synErrInvalidToken)
	}
	if tok.kind == expected {
		return true
	}
	p.peekedTok = tok
	p.lastTok = nil

	return false
}
