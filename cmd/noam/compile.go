package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nihei9/noam/fsm"
	"github.com/nihei9/noam/table"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	compressionLevel *int
	output           *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "compile <automaton file path>",
		Short: "Compile an automaton into a portable transition table",
		Long: `compile minimizes an automaton and writes its transition table in JSON.
The table needs no automaton library to run: row i holds the transitions of the state with ID i.`,
		Example: `  noam compile automaton.json -o table.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runCompile,
	}
	compileFlags.compressionLevel = cmd.Flags().IntP("compression-level", "l", table.CompressionLevelMax, "compression level")
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	a, err := readAutomaton(args[0])
	if err != nil {
		return err
	}
	dfa, err := fsm.Minimize(a)
	if err != nil {
		return fmt.Errorf("Cannot minimize the automaton: %w", err)
	}
	logAutomaton(dfa).Msg("minimized the automaton")

	tab, err := table.Compile(dfa, table.CompressionLevel(*compileFlags.compressionLevel))
	if err != nil {
		return fmt.Errorf("Cannot compile the automaton: %w", err)
	}
	logger.Debug().
		Int("rows", tab.RowCount).
		Int("cols", tab.ColCount).
		Int("compression_level", *compileFlags.compressionLevel).
		Msg("compiled a table")

	b, err := json.Marshal(tab)
	if err != nil {
		return err
	}
	return writeFile(*compileFlags.output, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%v\n", string(b))
		return err
	})
}
