package main

import (
	"fmt"
	"io"

	"github.com/nihei9/noam/fsm"
	"github.com/nihei9/noam/regex"
	"github.com/nihei9/noam/spec"
	"github.com/spf13/cobra"
)

var regexFlags = struct {
	minimize *bool
	output   *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "regex <regex tree file path>",
		Short: "Build an automaton from a regex tree",
		Long: `regex builds an ε-NFA accepting the language of a regex tree with Thompson's construction.
A regex tree node is an object with a tag: alt (choices), sequence (elements), kleene_star (expr),
literal (obj) or epsilon.`,
		Example: `  noam regex regex.json --minimize`,
		Args:    cobra.ExactArgs(1),
		RunE:    runRegex,
	}
	regexFlags.minimize = cmd.Flags().Bool("minimize", false, "minimize the automaton")
	regexFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runRegex(cmd *cobra.Command, args []string) error {
	var root regex.Node
	err := withInput(args[0], func(r io.Reader, format spec.Format) error {
		var err error
		root, err = spec.ParseRegex(r, format)
		return err
	})
	if err != nil {
		return err
	}
	logger.Debug().Str("regex", root.String()).Msg("read a regex tree")

	a, err := regex.ToAutomaton(root)
	if err != nil {
		return fmt.Errorf("Cannot build an automaton: %w", err)
	}
	if *regexFlags.minimize {
		a, err = fsm.Minimize(a)
		if err != nil {
			return fmt.Errorf("Cannot minimize the automaton: %w", err)
		}
	}

	return writeAutomaton(a, *regexFlags.output)
}
