package main

import (
	"fmt"
	"io"
	"os"

	"github.com/nihei9/noam/grammar"
	"github.com/nihei9/noam/spec"
	"github.com/spf13/cobra"
)

var grammarFlags = struct {
	output *string
}{}

func init() {
	grammarCmd := &cobra.Command{
		Use:     "grammar <automaton file path>",
		Short:   "Derive a regular grammar generating the language of an automaton",
		Example: `  noam grammar automaton.json -o grammar.txt`,
		Args:    cobra.ExactArgs(1),
		RunE:    runGrammar,
	}
	grammarFlags.output = grammarCmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(grammarCmd)

	classifyCmd := &cobra.Command{
		Use:   "classify <grammar file path>",
		Short: "Print the type of a grammar in the Chomsky hierarchy",
		Long: `classify reads a grammar written like the following and prints one of
regular, context-free, context-sensitive and unrestricted.

  S -> 'a' S 'b'
     | ε
     ;`,
		Example: `  noam classify grammar.txt`,
		Args:    cobra.ExactArgs(1),
		RunE:    runClassify,
	}
	rootCmd.AddCommand(classifyCmd)
}

func runGrammar(cmd *cobra.Command, args []string) error {
	a, err := readAutomaton(args[0])
	if err != nil {
		return err
	}

	g := grammar.FromAutomaton(a)
	logger.Debug().
		Int("nonterminals", len(g.Nonterminals)).
		Int("productions", len(g.Productions)).
		Msg("derived a grammar")

	return writeFile(*grammarFlags.output, func(w io.Writer) error {
		_, err := fmt.Fprint(w, g)
		return err
	})
}

func runClassify(cmd *cobra.Command, args []string) (retErr error) {
	path := args[0]
	defer func() {
		if retErr != nil {
			annotateSpecError(retErr, path)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("Cannot open the grammar file %s: %w", path, err)
	}
	defer f.Close()

	g, err := spec.ParseGrammar(f)
	if err != nil {
		return err
	}
	typ := g.DetermineType()
	logger.Debug().
		Str("path", path).
		Int("productions", len(g.Productions)).
		Str("type", typ.String()).
		Msg("classified a grammar")

	fmt.Fprintln(os.Stdout, typ)
	return nil
}
