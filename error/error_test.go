package error

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestError_Is(t *testing.T) {
	ruleA := NewRule("rule a")
	ruleB := NewRule("rule b")
	tests := []struct {
		err    error
		target error
		is     bool
	}{
		{err: New(KindTypeMismatch, "a DFA is required"), target: ErrTypeMismatch, is: true},
		{err: New(KindTypeMismatch, "a DFA is required"), target: ErrUnknownState, is: false},
		{err: ruleA, target: ErrValidationFailure, is: true},
		{err: ruleA, target: ruleA, is: true},
		{err: ruleA, target: ruleB, is: false},
		{err: &Error{Kind: KindValidationFailure, Rule: "rule a", Message: "index: 1"}, target: ruleA, is: true},
		{err: fmt.Errorf("wrapped: %w", ruleA), target: ruleA, is: true},
		{err: &SpecError{Cause: ErrInvalidEntity}, target: ErrInvalidEntity, is: true},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			if is := errors.Is(tt.err, tt.target); is != tt.is {
				t.Fatalf("unexpected result; want: %v, got: %v", tt.is, is)
			}
		})
	}
}

func TestSpecError_Error(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grammar.txt")
	err := os.WriteFile(path, []byte("S -> 'a';\nA -> 'b'\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		err  *SpecError
		text string
	}{
		{
			err: &SpecError{
				Cause:  errors.New("a cause"),
				Detail: "a detail",
			},
			text: "error: a cause: a detail",
		},
		{
			err: &SpecError{
				Cause:      errors.New("a cause"),
				FilePath:   path,
				SourceName: "grammar.txt",
				Row:        2,
				Col:        9,
			},
			text: "grammar.txt: 2:9: error: a cause\n    A -> 'b'",
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			if s := tt.err.Error(); s != tt.text {
				t.Fatalf("unexpected text; want: %q, got: %q", tt.text, s)
			}
		})
	}

	errs := SpecErrors{tests[0].err, tests[0].err}
	if s := errs.Error(); s != "error: a cause: a detail\nerror: a cause: a detail" {
		t.Fatalf("unexpected text: %q", s)
	}
}
