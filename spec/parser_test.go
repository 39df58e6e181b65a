package spec

import (
	"errors"
	"strings"
	"testing"

	verr "github.com/nihei9/noam/error"
)

func TestParse(t *testing.T) {
	nt := func(name string) *ElementNode {
		return &ElementNode{
			Nonterminal: name,
		}
	}
	term := func(name string) *ElementNode {
		return &ElementNode{
			Terminal: name,
		}
	}
	alternative := func(elems ...*ElementNode) *AlternativeNode {
		return &AlternativeNode{
			Elements: elems,
		}
	}
	epsilon := &AlternativeNode{
		Epsilon: true,
	}
	rule := func(lhs []*ElementNode, alts ...*AlternativeNode) *RuleNode {
		return &RuleNode{
			LHS: lhs,
			RHS: alts,
		}
	}
	lhs := func(elems ...*ElementNode) []*ElementNode {
		return elems
	}

	tests := []struct {
		caption string
		src     string
		ast     *RootNode
		synErr  *SyntaxError
	}{
		{
			caption: "a grammar can contain rules with alternatives and epsilon",
			src: `
# a^n b^n
S -> 'a' S 'b'
   | ε
   ;
`,
			ast: &RootNode{
				Rules: []*RuleNode{
					rule(lhs(nt("S")),
						alternative(term("a"), nt("S"), term("b")),
						epsilon,
					),
				},
			},
		},
		{
			caption: "a left side can contain more than one symbol",
			src: `
S -> 'a' B C | $;
C B -> B C;
'a' B -> 'a' 'b';
<B C> -> 'c';
`,
			ast: &RootNode{
				Rules: []*RuleNode{
					rule(lhs(nt("S")),
						alternative(term("a"), nt("B"), nt("C")),
						epsilon,
					),
					rule(lhs(nt("C"), nt("B")),
						alternative(nt("B"), nt("C")),
					),
					rule(lhs(term("a"), nt("B")),
						alternative(term("a"), term("b")),
					),
					rule(lhs(nt("B C")),
						alternative(term("c")),
					),
				},
			},
		},
		{
			caption: "a grammar needs at least one rule",
			src:     `# empty`,
			synErr:  synErrNoRule,
		},
		{
			caption: "the first rule needs a nonterminal on its left side",
			src:     `'a' -> 'b';`,
			synErr:  synErrNoInitial,
		},
		{
			caption: "a rule needs a left side",
			src:     `-> 'a';`,
			synErr:  synErrNoLeftSide,
		},
		{
			caption: "epsilon cannot be a left side",
			src:     `ε -> 'a';`,
			synErr:  synErrEpsilonOnLeftSide,
		},
		{
			caption: "epsilon cannot follow a left side",
			src:     `S ε -> 'a';`,
			synErr:  synErrEpsilonOnLeftSide,
		},
		{
			caption: "a left side must be followed by an arrow",
			src:     `S 'a';`,
			synErr:  synErrNoArrow,
		},
		{
			caption: "an alternative cannot be empty",
			src:     `S -> 'a' | ;`,
			synErr:  synErrEmptyAlternative,
		},
		{
			caption: "epsilon cannot follow symbols",
			src:     `S -> 'a' ε;`,
			synErr:  synErrEpsilonWithSymbols,
		},
		{
			caption: "symbols cannot follow epsilon",
			src:     `S -> ε 'a';`,
			synErr:  synErrEpsilonWithSymbols,
		},
		{
			caption: "a rule must end with a semicolon",
			src:     `S -> 'a'`,
			synErr:  synErrNoSemicolon,
		},
		{
			caption: "an invalid token cannot appear",
			src:     `S -> @;`,
			synErr:  synErrInvalidToken,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			ast, err := Parse(strings.NewReader(tt.src))
			if tt.synErr != nil {
				var specErr *verr.SpecError
				if !errors.As(err, &specErr) {
					t.Fatalf("unexpected error; want: %v, got: %v", tt.synErr, err)
				}
				if specErr.Cause != tt.synErr {
					t.Fatalf("unexpected error; want: %v, got: %v", tt.synErr, specErr.Cause)
				}
				if ast != nil {
					t.Fatalf("AST must be nil")
				}
			} else {
				if err != nil {
					t.Fatal(err)
				}
				testRootNode(t, ast, tt.ast)
			}
		})
	}
}

func TestParse_ErrorPosition(t *testing.T) {
	src := "S -> 'a';\nA -> 'b'\nB -> 'c';"
	_, err := Parse(strings.NewReader(src))
	var specErr *verr.SpecError
	if !errors.As(err, &specErr) {
		t.Fatalf("unexpected error; want: %T, got: %v", specErr, err)
	}
	if specErr.Cause != synErrNoSemicolon {
		t.Fatalf("unexpected error; want: %v, got: %v", synErrNoSemicolon, specErr.Cause)
	}
	// A right side may span lines, so B belongs to the right side of A and the arrow is unexpected.
	if specErr.Row != 3 || specErr.Col != 3 {
		t.Fatalf("unexpected position; want: 3:3, got: %v:%v", specErr.Row, specErr.Col)
	}
}

func testRootNode(t *testing.T, root, expected *RootNode) {
	t.Helper()
	if len(root.Rules) != len(expected.Rules) {
		t.Fatalf("unexpected length of rules; want: %v, got: %v", len(expected.Rules), len(root.Rules))
	}
	for i, rule := range root.Rules {
		testRuleNode(t, rule, expected.Rules[i])
	}
}

func testRuleNode(t *testing.T, rule, expected *RuleNode) {
	t.Helper()
	if len(rule.LHS) != len(expected.LHS) {
		t.Fatalf("unexpected length of an LHS; want: %v, got: %v", len(expected.LHS), len(rule.LHS))
	}
	for i, elem := range rule.LHS {
		testElementNode(t, elem, expected.LHS[i])
	}
	if len(rule.RHS) != len(expected.RHS) {
		t.Fatalf("unexpected length of an RHS; want: %v, got: %v", len(expected.RHS), len(rule.RHS))
	}
	for i, alt := range rule.RHS {
		testAlternativeNode(t, alt, expected.RHS[i])
	}
}

func testAlternativeNode(t *testing.T, alt, expected *AlternativeNode) {
	t.Helper()
	if alt.Epsilon != expected.Epsilon {
		t.Fatalf("unexpected epsilon flag; want: %v, got: %v", expected.Epsilon, alt.Epsilon)
	}
	if len(alt.Elements) != len(expected.Elements) {
		t.Fatalf("unexpected length of elements; want: %v, got: %v", len(expected.Elements), len(alt.Elements))
	}
	for i, elem := range alt.Elements {
		testElementNode(t, elem, expected.Elements[i])
	}
}

func testElementNode(t *testing.T, elem, expected *ElementNode) {
	t.Helper()
	if elem.Nonterminal != expected.Nonterminal || elem.Terminal != expected.Terminal {
		t.Fatalf("unexpected element; want: %+v, got: %+v", expected, elem)
	}
}
