package main

import (
	"fmt"
	"os"

	"github.com/nihei9/noam/fsm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "check nonempty|infinite <automaton file path> | check equivalent|subset <automaton file path> <automaton file path>",
		Short: "Decide a property of languages",
		Long: `check prints "true" or "false".
nonempty:   the language contains a word.
infinite:   the language contains infinitely many words.
equivalent: the two automata accept the same language.
subset:     the language of the second automaton is a subset of the language of the first.`,
		Example: `  noam check infinite a.json
  noam check subset a.json b.json`,
		Args: cobra.RangeArgs(2, 3),
		RunE: runCheck,
	}
	rootCmd.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	var result bool
	switch args[0] {
	case "nonempty", "infinite":
		if len(args) != 2 {
			return fmt.Errorf("%v takes one automaton", args[0])
		}
		a, err := readAutomaton(args[1])
		if err != nil {
			return err
		}
		if args[0] == "nonempty" {
			result, err = fsm.IsLanguageNonEmpty(a)
		} else {
			result, err = fsm.IsLanguageInfinite(a)
		}
		if err != nil {
			return err
		}
	case "equivalent", "subset":
		if len(args) != 3 {
			return fmt.Errorf("%v takes two automata", args[0])
		}
		a, err := readAutomaton(args[1])
		if err != nil {
			return err
		}
		b, err := readAutomaton(args[2])
		if err != nil {
			return err
		}
		if args[0] == "equivalent" {
			result, err = areEquivalent(a, b)
		} else {
			result, err = fsm.IsSubset(a, b)
		}
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid property: %v", args[0])
	}

	fmt.Fprintln(os.Stdout, result)
	return nil
}

// areEquivalent compares automata of any type. fsm.AreEquivalent accepts only DFAs.
func areEquivalent(a, b *fsm.Automaton) (bool, error) {
	da, err := fsm.Determinize(a)
	if err != nil {
		return false, err
	}
	db, err := fsm.Determinize(b)
	if err != nil {
		return false, err
	}
	return fsm.AreEquivalent(da, db)
}
