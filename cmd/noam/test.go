package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nihei9/noam/tester"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "test <automaton file path> <test file path>|<test directory path>",
		Short: "Test an automaton",
		Long: `test runs test case files against an automaton. A test case file is YAML like the following:

  description: words with an even number of a
  accept:
    - []
    - [a, a]
  reject:
    - [a]`,
		Example: `  noam test automaton.json test`,
		Args:    cobra.ExactArgs(2),
		RunE:    runTest,
	}
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	a, err := readAutomaton(args[0])
	if err != nil {
		return fmt.Errorf("Cannot read an automaton: %w", err)
	}

	var cs []*tester.TestCaseWithMetadata
	{
		cs = tester.ListTestCases(args[1])
		errOccurred := false
		for _, c := range cs {
			if c.Error != nil {
				fmt.Fprintf(os.Stderr, "Failed to read a test case or a directory: %v\n%v\n", c.FilePath, c.Error)
				errOccurred = true
			}
		}
		if errOccurred {
			return errors.New("Cannot run test")
		}
	}

	t := &tester.Tester{
		Automaton: a,
		Cases:     cs,
	}
	rs := t.Run()
	testFailed := false
	for _, r := range rs {
		fmt.Fprintln(os.Stdout, r)
		if r.Error != nil {
			testFailed = true
		}
	}
	logger.Debug().Int("cases", len(rs)).Bool("failed", testFailed).Msg("ran tests")
	if testFailed {
		return errors.New("Test failed")
	}
	return nil
}
