package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var acceptFlags = struct {
	trail *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "accept <automaton file path> [<symbol>...]",
		Short: "Run an automaton on a word",
		Long: `accept runs an automaton on the word made of the given symbols and prints "accepted" or "rejected".
An argument is matched against the string symbols first, then against the integer symbols.`,
		Example: `  noam accept automaton.json a a b`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runAccept,
	}
	acceptFlags.trail = cmd.Flags().Bool("trail", false, "print the states the automaton passes through")
	rootCmd.AddCommand(cmd)
}

func runAccept(cmd *cobra.Command, args []string) error {
	a, err := readAutomaton(args[0])
	if err != nil {
		return err
	}
	word := parseWord(a, args[1:])

	if *acceptFlags.trail {
		trail, err := a.TransitionTrail(a.InitialState(), word)
		if err != nil {
			return err
		}
		for i, states := range trail {
			ss := make([]string, len(states))
			for j, s := range states {
				ss[j] = s.String()
			}
			if i == 0 {
				fmt.Fprintf(os.Stdout, "{%v}\n", strings.Join(ss, ", "))
				continue
			}
			fmt.Fprintf(os.Stdout, "--%v--> {%v}\n", word[i-1], strings.Join(ss, ", "))
		}
	}

	ok, err := a.Accepts(word)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintln(os.Stdout, "accepted")
	} else {
		fmt.Fprintln(os.Stdout, "rejected")
	}
	return nil
}
