package main

import (
	"fmt"

	"github.com/nihei9/noam/fsm"
	"github.com/spf13/cobra"
)

var combineFlags = struct {
	output *string
}{}

var binaryOps = map[string]func(a, b *fsm.Automaton) (*fsm.Automaton, error){
	"union":        fsm.Union,
	"intersection": fsm.Intersection,
	"difference":   fsm.Difference,
	"concat":       fsm.Concatenation,
}

func init() {
	cmd := &cobra.Command{
		Use:   "combine union|intersection|difference|concat <automaton file path> <automaton file path>",
		Short: "Combine two automata",
		Long: `combine builds an automaton from two automata over the same alphabet.
union, intersection and difference build a product DFA; concat requires disjoint states.`,
		Example: `  noam combine union a.json b.json -o union.json`,
		Args:    cobra.ExactArgs(3),
		RunE:    runCombine,
	}
	combineFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runCombine(cmd *cobra.Command, args []string) error {
	op, ok := binaryOps[args[0]]
	if !ok {
		return fmt.Errorf("invalid operation: %v", args[0])
	}
	a, err := readAutomaton(args[1])
	if err != nil {
		return err
	}
	b, err := readAutomaton(args[2])
	if err != nil {
		return err
	}

	c, err := op(a, b)
	if err != nil {
		return fmt.Errorf("Cannot %v the automata: %w", args[0], err)
	}

	return writeAutomaton(c, *combineFlags.output)
}
