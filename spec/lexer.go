package spec

import (
	"fmt"
	"io"
	"strings"
	"sync"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
	verr "github.com/nihei9/noam/error"
)

type tokenKind string

const (
	tokenKindNonterminal = tokenKind("nonterminal")
	tokenKindTerminal    = tokenKind("terminal")
	tokenKindArrow       = tokenKind("->")
	tokenKindOr          = tokenKind("|")
	tokenKindSemicolon   = tokenKind(";")
	tokenKindEpsilon     = tokenKind("ε")
	tokenKindEOF         = tokenKind("eof")
	tokenKindInvalid     = tokenKind("invalid")
)

type Position struct {
	Row int
	Col int
}

func newPosition(row, col int) Position {
	return Position{
		Row: row,
		Col: col,
	}
}

type token struct {
	kind tokenKind
	text string
	pos  Position
}

func newSymbolToken(kind tokenKind, pos Position) *token {
	return &token{
		kind: kind,
		pos:  pos,
	}
}

func newTextToken(kind tokenKind, text string, pos Position) *token {
	return &token{
		kind: kind,
		text: text,
		pos:  pos,
	}
}

func newEOFToken(pos Position) *token {
	return &token{
		kind: tokenKindEOF,
		pos:  pos,
	}
}

func newInvalidToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindInvalid,
		text: text,
		pos:  pos,
	}
}

// lexSpec describes the tokens of the grammar notation:
//
//	S -> 'a' S | ε ;  # a comment
//
// An identifier or a text enclosed in <> is a nonterminal, and a text enclosed in single quotes
// is a terminal. `$` is an alternative spelling of ε.
var lexSpec = &mlspec.LexSpec{
	Name: "grammar_notation",
	Entries: []*mlspec.LexEntry{
		{
			Kind:    "white_space",
			Pattern: `[\u{0009}\u{0020}]+`,
		},
		{
			Kind:    "newline",
			Pattern: `\u{000D}?\u{000A}`,
		},
		{
			Kind:    "line_comment",
			Pattern: `#[^\u{000A}]*`,
		},
		{
			Kind:    "arrow",
			Pattern: mlspec.LexPattern(mlspec.EscapePattern("->")),
		},
		{
			Kind:    "or",
			Pattern: mlspec.LexPattern(mlspec.EscapePattern("|")),
		},
		{
			Kind:    "semicolon",
			Pattern: ";",
		},
		{
			Kind:    "epsilon",
			Pattern: `\u{03B5}|\u{0024}`,
		},
		{
			Kind:    "identifier",
			Pattern: `[A-Za-z_][0-9A-Za-z_]*`,
		},
		{
			Kind:    "bracketed_nonterminal",
			Pattern: `<[^<>\u{000A}]*>`,
		},
		{
			Kind:    "terminal",
			Pattern: `'[^'\u{000A}]*'`,
		},
	},
}

var (
	compiledLexSpec    *mlspec.CompiledLexSpec
	compiledLexSpecErr error
	compileLexSpecOnce sync.Once
)

func compileLexSpec() (*mlspec.CompiledLexSpec, error) {
	compileLexSpecOnce.Do(func() {
		cspec, err, cErrs := mlcompiler.Compile(lexSpec, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
		if err != nil {
			if len(cErrs) > 0 {
				var b strings.Builder
				writeCompileError(&b, cErrs[0])
				for _, cerr := range cErrs[1:] {
					fmt.Fprintf(&b, "\n")
					writeCompileError(&b, cerr)
				}
				err = fmt.Errorf("%v", b.String())
			}
			compiledLexSpecErr = err
			return
		}
		compiledLexSpec = cspec
	})
	return compiledLexSpec, compiledLexSpecErr
}

func writeCompileError(w io.Writer, cErr *mlcompiler.CompileError) {
	if cErr.Fragment {
		fmt.Fprintf(w, "fragment ")
	}
	fmt.Fprintf(w, "%v: %v", cErr.Kind, cErr.Cause)
	if cErr.Detail != "" {
		fmt.Fprintf(w, ": %v", cErr.Detail)
	}
}

type lexer struct {
	d         *mldriver.Lexer
	kindNames []mlspec.LexKindName
}

func newLexer(src io.Reader) (*lexer, error) {
	s, err := compileLexSpec()
	if err != nil {
		return nil, err
	}
	d, err := mldriver.NewLexer(mldriver.NewLexSpec(s), src)
	if err != nil {
		return nil, err
	}
	return &lexer{
		d:         d,
		kindNames: s.KindNames,
	}, nil
}

func (l *lexer) next() (*token, error) {
	var tok *mldriver.Token
	for {
		var err error
		tok, err = l.d.Next()
		if err != nil {
			return nil, err
		}
		pos := newPosition(tok.Row+1, tok.Col+1)
		if tok.Invalid {
			return newInvalidToken(string(tok.Lexeme), pos), nil
		}
		if tok.EOF {
			return newEOFToken(pos), nil
		}
		switch l.kindNames[tok.KindID] {
		case "white_space", "newline", "line_comment":
			continue
		}

		break
	}

	pos := newPosition(tok.Row+1, tok.Col+1)
	text := string(tok.Lexeme)
	switch l.kindNames[tok.KindID] {
	case "arrow":
		return newSymbolToken(tokenKindArrow, pos), nil
	case "or":
		return newSymbolToken(tokenKindOr, pos), nil
	case "semicolon":
		return newSymbolToken(tokenKindSemicolon, pos), nil
	case "epsilon":
		return newSymbolToken(tokenKindEpsilon, pos), nil
	case "identifier":
		return newTextToken(tokenKindNonterminal, text, pos), nil
	case "bracketed_nonterminal":
		// Remove the angle brackets.
		name := text[1 : len(text)-1]
		if name == "" {
			return nil, &verr.SpecError{
				Cause: synErrEmptyNonterminal,
				Row:   pos.Row,
				Col:   pos.Col,
			}
		}
		return newTextToken(tokenKindNonterminal, name, pos), nil
	case "terminal":
		// Remove the quotes.
		name := text[1 : len(text)-1]
		if name == "" {
			return nil, &verr.SpecError{
				Cause: synErrEmptyTerminal,
				Row:   pos.Row,
				Col:   pos.Col,
			}
		}
		return newTextToken(tokenKindTerminal, name, pos), nil
	default:
		return newInvalidToken(text, pos), nil
	}
}
