package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
	verr "github.com/nihei9/noam/error"
	"github.com/nihei9/noam/fsm"
	"github.com/nihei9/noam/spec"
	"github.com/nihei9/noam/value"
)

// readAutomaton reads an automaton description. The path "-" means stdin, whose content must be
// JSON.
func readAutomaton(path string) (*fsm.Automaton, error) {
	start := time.Now()

	var a *fsm.Automaton
	err := withInput(path, func(r io.Reader, format spec.Format) error {
		var err error
		a, err = spec.ParseAutomaton(r, format)
		return err
	})
	if err != nil {
		return nil, err
	}

	logAutomaton(a).
		Str("path", path).
		Int64("duration_us", time.Since(start).Microseconds()).
		Msg("read an automaton")
	return a, nil
}

func withInput(path string, read func(r io.Reader, format spec.Format) error) (retErr error) {
	defer func() {
		if retErr != nil {
			annotateSpecError(retErr, path)
		}
	}()

	if path == "-" {
		return read(os.Stdin, spec.FormatJSON)
	}

	format, err := spec.FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("Cannot open the file %s: %w", path, err)
	}
	defer f.Close()
	return read(f, format)
}

func annotateSpecError(err error, path string) {
	sourceName := path
	if path == "-" {
		path = ""
		sourceName = "stdin"
	}
	var specErrs verr.SpecErrors
	if errors.As(err, &specErrs) {
		for _, e := range specErrs {
			e.FilePath = path
			e.SourceName = sourceName
		}
		return
	}
	var specErr *verr.SpecError
	if errors.As(err, &specErr) {
		specErr.FilePath = path
		specErr.SourceName = sourceName
	}
}

// writeOutput writes a result to a file at path, or to stdout when path is empty.
func writeOutput(path string, write func(w io.Writer, format spec.Format) error) error {
	if path == "" {
		return write(os.Stdout, spec.FormatJSON)
	}

	format, err := spec.FormatFromPath(path)
	if err != nil {
		return err
	}
	return writeFile(path, func(w io.Writer) error {
		return write(w, format)
	})
}

// writeFile writes to stdout when path is empty. A file is closed before returning, and a failed
// close is reported like a failed write.
func writeFile(path string, write func(w io.Writer) error) (retErr error) {
	if path == "" {
		return write(os.Stdout)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("Cannot write an output file %s: %w", path, err)
	}
	defer func() {
		err := f.Close()
		if err != nil && retErr == nil {
			retErr = fmt.Errorf("Cannot close an output file %s: %w", path, err)
		}
	}()
	return write(f)
}

func writeAutomaton(a *fsm.Automaton, path string) error {
	logAutomaton(a).Str("path", path).Msg("write an automaton")
	return writeOutput(path, func(w io.Writer, format spec.Format) error {
		return spec.WriteAutomaton(w, a, format)
	})
}

// logAutomaton starts a debug event describing the size and the type of an automaton.
func logAutomaton(a *fsm.Automaton) *bolt.Event {
	return logger.Debug().
		Str("type", a.Type().String()).
		Int("states", len(a.States())).
		Int("symbols", len(a.Alphabet())).
		Int("transitions", len(a.Transitions()))
}

// parseWord converts command line arguments into symbols of an automaton. An argument that is not
// a symbol as a string is tried as an integer.
func parseWord(a *fsm.Automaton, args []string) []value.Value {
	word := make([]value.Value, len(args))
	for i, arg := range args {
		var sym value.Value = value.String(arg)
		if !a.HasSymbol(sym) {
			if n, err := strconv.Atoi(arg); err == nil && a.HasSymbol(value.Int(n)) {
				sym = value.Int(n)
			}
		}
		word[i] = sym
	}
	return word
}
