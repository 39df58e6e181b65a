package main

import (
	"fmt"

	"github.com/nihei9/noam/fsm"
	"github.com/spf13/cobra"
)

var transformFlags = struct {
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "transform complement|kleene|reverse <automaton file path>",
		Short: "Transform an automaton",
		Long: `transform builds an automaton for the complement, the Kleene star or the reversal of a language.
complement requires a DFA; use convert --to dfa first.`,
		Example: `  noam transform kleene a.json`,
		Args:    cobra.ExactArgs(2),
		RunE:    runTransform,
	}
	transformFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runTransform(cmd *cobra.Command, args []string) error {
	var op func(a *fsm.Automaton) (*fsm.Automaton, error)
	switch args[0] {
	case "complement":
		op = fsm.Complement
	case "kleene":
		op = fsm.Kleene
	case "reverse":
		op = fsm.Reverse
	default:
		return fmt.Errorf("invalid operation: %v", args[0])
	}

	a, err := readAutomaton(args[1])
	if err != nil {
		return err
	}
	t, err := op(a)
	if err != nil {
		return fmt.Errorf("Cannot %v the automaton: %w", args[0], err)
	}

	return writeAutomaton(t, *transformFlags.output)
}
