// Package tester runs test case files against an automaton.
package tester

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nihei9/noam/fsm"
	"github.com/nihei9/noam/spec"
	"github.com/nihei9/noam/value"
)

// Mismatch is a word the automaton judged differently than the test case expects.
type Mismatch struct {
	Word     []value.Value
	Expected bool
}

func (m *Mismatch) String() string {
	verb := "reject"
	if m.Expected {
		verb = "accept"
	}
	return fmt.Sprintf("expected to %v %v", verb, formatWord(m.Word))
}

func formatWord(w []value.Value) string {
	if len(w) == 0 {
		return "ε"
	}
	syms := make([]string, len(w))
	for i, sym := range w {
		syms[i] = sym.String()
	}
	return "[" + strings.Join(syms, " ") + "]"
}

type TestResult struct {
	TestCasePath string
	Error        error
	Mismatches   []*Mismatch
}

func (r *TestResult) String() string {
	if r.Error != nil {
		const indent1 = "    "
		const indent2 = indent1 + indent1

		msgLines := strings.Split(r.Error.Error(), "\n")
		msg := fmt.Sprintf("Failed %v:\n%v%v", r.TestCasePath, indent1, strings.Join(msgLines, "\n"+indent1))
		if len(r.Mismatches) == 0 {
			return msg
		}
		var lines []string
		for _, m := range r.Mismatches {
			lines = append(lines, m.String())
		}
		return fmt.Sprintf("%v\n%v%v", msg, indent2, strings.Join(lines, "\n"+indent2))
	}
	return fmt.Sprintf("Passed %v", r.TestCasePath)
}

type TestCaseWithMetadata struct {
	TestCase *spec.TestCase
	FilePath string
	Error    error
}

// ListTestCases reads a test case file, or every file under a directory.
func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	if !fi.IsDir() {
		c, err := parseTestCase(testPath)
		return []*TestCaseWithMetadata{
			{
				TestCase: c,
				FilePath: testPath,
				Error:    err,
			},
		}
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		cs := ListTestCases(filepath.Join(testPath, e.Name()))
		cases = append(cases, cs...)
	}
	return cases
}

func parseTestCase(testCasePath string) (*spec.TestCase, error) {
	f, err := os.Open(testCasePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return spec.ParseTestCase(f)
}

type Tester struct {
	Automaton *fsm.Automaton
	Cases     []*TestCaseWithMetadata
}

func (t *Tester) Run() []*TestResult {
	var rs []*TestResult
	for _, c := range t.Cases {
		rs = append(rs, runTest(t.Automaton, c))
	}
	return rs
}

func runTest(a *fsm.Automaton, c *TestCaseWithMetadata) *TestResult {
	if c.Error != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        c.Error,
		}
	}

	var mismatches []*Mismatch
	for _, expected := range []bool{true, false} {
		words := c.TestCase.Accept
		if !expected {
			words = c.TestCase.Reject
		}
		for _, w := range words {
			ok, err := a.Accepts(w)
			if err != nil {
				return &TestResult{
					TestCasePath: c.FilePath,
					Error:        fmt.Errorf("%v: %w", formatWord(w), err),
				}
			}
			if ok != expected {
				mismatches = append(mismatches, &Mismatch{
					Word:     w,
					Expected: expected,
				})
			}
		}
	}
	if len(mismatches) > 0 {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("%v word(s) were judged wrongly", len(mismatches)),
			Mismatches:   mismatches,
		}
	}
	return &TestResult{
		TestCasePath: c.FilePath,
	}
}
