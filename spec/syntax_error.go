package spec

import "fmt"

type SyntaxError struct {
	message string
}

func newSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		message: message,
	}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: %s", e.message)
}

var (
	// lexical errors
	synErrEmptyTerminal    = newSyntaxError("a terminal must not be empty")
	synErrEmptyNonterminal = newSyntaxError("a bracketed nonterminal must not be empty")

	// syntax errors
	synErrInvalidToken       = newSyntaxError("invalid token")
	synErrNoRule             = newSyntaxError("a grammar must have at least one rule")
	synErrNoLeftSide         = newSyntaxError("a rule needs a left side")
	synErrNoInitial          = newSyntaxError("the left side of the first rule must contain a nonterminal")
	synErrNoArrow            = newSyntaxError("an arrow must follow the left side")
	synErrEmptyAlternative   = newSyntaxError("an alternative must have at least one symbol or epsilon")
	synErrEpsilonWithSymbols = newSyntaxError("epsilon must be the only element of an alternative")
	synErrNoSemicolon        = newSyntaxError("the semicolon is missing at the last of a rule")
	synErrEpsilonOnLeftSide  = newSyntaxError("epsilon cannot appear on a left side")
)

// SemanticError is a problem with a description that is well-formed but cannot be converted.
type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	semErrInvalidValue  = newSemanticError("a value must be a string, an integer or an array of them")
	semErrUnknownFormat = newSemanticError("unknown format")
	semErrUnknownTag    = newSemanticError("unknown tag")
	semErrMissingField  = newSemanticError("a required field is missing")
)
