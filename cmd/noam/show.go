package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/nihei9/noam/fsm"
	"github.com/nihei9/noam/value"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "show <automaton file path>",
		Short:   "Print an automaton in a readable format",
		Example: `  noam show automaton.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runShow,
	}
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := readAutomaton(args[0])
	if err != nil {
		return err
	}

	err = writeAutomatonSummary(os.Stdout, a)
	if err != nil {
		return err
	}

	return nil
}

const automatonTemplate = `# Type

{{ .Type }}

# States

{{ range .States -}}
{{ . }}
{{ end }}
# Transitions

{{ range .Transitions -}}
{{ . }}
{{ end -}}
`

func writeAutomatonSummary(w io.Writer, a *fsm.Automaton) error {
	tmpl, err := template.New("").Parse(automatonTemplate)
	if err != nil {
		return err
	}

	states := make([]string, len(a.States()))
	for i, s := range a.States() {
		var marks []string
		if value.Equal(s, a.InitialState()) {
			marks = append(marks, "initial")
		}
		if a.IsAccepting(s) {
			marks = append(marks, "accepting")
		}
		if len(marks) > 0 {
			states[i] = fmt.Sprintf("%v (%v)", s, strings.Join(marks, ", "))
		} else {
			states[i] = s.String()
		}
	}

	var trans []string
	for _, t := range a.Transitions() {
		to := make([]string, len(t.To))
		for i, s := range t.To {
			to[i] = s.String()
		}
		trans = append(trans, fmt.Sprintf("%v --%v--> %v", t.From, t.Symbol, strings.Join(to, ", ")))
	}

	return tmpl.Execute(w, map[string]interface{}{
		"Type":        a.Type(),
		"States":      states,
		"Transitions": trans,
	})
}
