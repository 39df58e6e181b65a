package error

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

type Kind string

const (
	KindInvalidEntity     = Kind("invalid entity")
	KindDuplicateEntity   = Kind("duplicate entity")
	KindUnknownState      = Kind("unknown state")
	KindUnknownSymbol     = Kind("unknown symbol")
	KindTypeMismatch      = Kind("type mismatch")
	KindAlphabetMismatch  = Kind("alphabet mismatch")
	KindStateOverlap      = Kind("state overlap")
	KindValidationFailure = Kind("validation failure")
)

func (k Kind) String() string {
	return string(k)
}

// Error is a failure reported by the automaton, grammar and regex packages.
// Rule is set only for validation failures and names the violated invariant.
type Error struct {
	Kind    Kind
	Rule    string
	Message string
}

func New(kind Kind, format string, a ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, a...),
	}
}

// NewRule returns a validation failure for an invariant. Validators return these values
// as they are, so callers can compare them with errors.Is.
func NewRule(rule string) *Error {
	return &Error{
		Kind: KindValidationFailure,
		Rule: rule,
	}
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v", e.Kind)
	if e.Rule != "" {
		fmt.Fprintf(&b, ": %v", e.Rule)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %v", e.Message)
	}
	return b.String()
}

// Is reports whether target is an *Error of the same kind. A target with a rule matches only
// the same rule.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Rule == "" || t.Rule == e.Rule
}

var (
	ErrInvalidEntity     = &Error{Kind: KindInvalidEntity}
	ErrDuplicateEntity   = &Error{Kind: KindDuplicateEntity}
	ErrUnknownState      = &Error{Kind: KindUnknownState}
	ErrUnknownSymbol     = &Error{Kind: KindUnknownSymbol}
	ErrTypeMismatch      = &Error{Kind: KindTypeMismatch}
	ErrAlphabetMismatch  = &Error{Kind: KindAlphabetMismatch}
	ErrStateOverlap      = &Error{Kind: KindStateOverlap}
	ErrValidationFailure = &Error{Kind: KindValidationFailure}
)

type SpecErrors []*SpecError

func (e SpecErrors) Error() string {
	if len(e) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%v", e[0])
	for _, err := range e[1:] {
		fmt.Fprintf(&b, "\n%v", err)
	}

	return b.String()
}

// SpecError is an error found in a description file.
type SpecError struct {
	Cause      error
	Detail     string
	FilePath   string
	SourceName string
	Row        int
	Col        int
}

func (e *SpecError) Error() string {
	var b strings.Builder
	if e.SourceName != "" {
		fmt.Fprintf(&b, "%v: ", e.SourceName)
	}
	if e.Row != 0 && e.Col != 0 {
		fmt.Fprintf(&b, "%v:%v: ", e.Row, e.Col)
	}
	fmt.Fprintf(&b, "error: %v", e.Cause)
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %v", e.Detail)
	}

	line := readLine(e.FilePath, e.Row)
	if line != "" {
		fmt.Fprintf(&b, "\n    %v", line)
	}

	return b.String()
}

func (e *SpecError) Unwrap() error {
	return e.Cause
}

func readLine(filePath string, row int) string {
	if filePath == "" || row <= 0 {
		return ""
	}

	f, err := os.Open(filePath)
	if err != nil {
		return ""
	}
	defer f.Close()

	i := 1
	s := bufio.NewScanner(f)
	for s.Scan() {
		if i == row {
			return s.Text()
		}
		i++
	}

	return ""
}
