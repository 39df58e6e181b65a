package grammar

import (
	"fmt"

	verr "github.com/nihei9/noam/error"
)

var (
	ErrNoInitialNonterminal      = verr.NewRule("an initial nonterminal must be defined")
	ErrNilSymbol                 = verr.NewRule("nonterminals and terminals must be defined")
	ErrNoNonterminals            = verr.NewRule("nonterminals must not be empty")
	ErrNoTerminals               = verr.NewRule("terminals must not be empty")
	ErrDuplicateNonterminal      = verr.NewRule("nonterminals must not contain duplicates")
	ErrDuplicateTerminal         = verr.NewRule("terminals must not contain duplicates")
	ErrSymbolOverlap             = verr.NewRule("terminals and nonterminals must be disjoint")
	ErrUnknownInitialNonterminal = verr.NewRule("an initial nonterminal must be a nonterminal")
	ErrEmptyLeftSide             = verr.NewRule("a left side of a production must not be empty")
	ErrUndefinedLeftSymbol       = verr.NewRule("a left side of a production must consist of nonterminals and terminals")
	ErrEmptyRightSide            = verr.NewRule("a right side of a production must not be empty")
	ErrUndefinedRightSymbol      = verr.NewRule("a right side of a production must be epsilon or consist of nonterminals and terminals")
	ErrDuplicateProduction       = verr.NewRule("productions must not contain duplicates")
)

func semanticError(rule *verr.Error, format string, a ...interface{}) error {
	return &verr.Error{
		Kind:    rule.Kind,
		Rule:    rule.Rule,
		Message: fmt.Sprintf(format, a...),
	}
}
