package main

import (
	"fmt"

	"github.com/nihei9/noam/fsm"
	"github.com/spf13/cobra"
)

var convertFlags = struct {
	to     *string
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "convert <automaton file path>",
		Short: "Convert an automaton into an NFA, a DFA or a minimal DFA",
		Example: `  noam convert enfa.json --to nfa
  noam convert nfa.yaml --to min -o dfa.json`,
		Args: cobra.ExactArgs(1),
		RunE: runConvert,
	}
	convertFlags.to = cmd.Flags().String("to", "dfa", "target form (nfa|dfa|min)")
	convertFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	a, err := readAutomaton(args[0])
	if err != nil {
		return err
	}

	var converted *fsm.Automaton
	switch *convertFlags.to {
	case "nfa":
		if a.Type() != fsm.TypeENFA {
			converted = a
			break
		}
		converted, err = fsm.ConvertENFAToNFA(a)
	case "dfa":
		converted, err = fsm.Determinize(a)
	case "min":
		converted, err = fsm.Minimize(a)
	default:
		return fmt.Errorf("invalid target form: %v", *convertFlags.to)
	}
	if err != nil {
		return fmt.Errorf("Cannot convert the automaton: %w", err)
	}

	return writeAutomaton(converted, *convertFlags.output)
}
