package spec

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	verr "github.com/nihei9/noam/error"
	"github.com/nihei9/noam/fsm"
	"github.com/nihei9/noam/value"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON = Format("json")
	FormatYAML = Format("yaml")
)

// FormatFromPath chooses a format by the extension of a file path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", &verr.SpecError{
		Cause:  semErrUnknownFormat,
		Detail: path,
	}
}

// epsilonSymbol stands for ε wherever a description expects a symbol.
const epsilonSymbol = "$"

// AutomatonDescription is the serialized form of an automaton. A state or a symbol is a string,
// an integer or an array of them; arrays are read as tuples.
type AutomatonDescription struct {
	States          []interface{}            `json:"states" yaml:"states"`
	Alphabet        []interface{}            `json:"alphabet" yaml:"alphabet"`
	InitialState    interface{}              `json:"initialState" yaml:"initialState"`
	AcceptingStates []interface{}            `json:"acceptingStates" yaml:"acceptingStates"`
	Transitions     []*TransitionDescription `json:"transitions" yaml:"transitions"`
}

type TransitionDescription struct {
	FromState interface{}   `json:"fromState" yaml:"fromState"`
	ToStates  []interface{} `json:"toStates" yaml:"toStates"`
	Symbol    interface{}   `json:"symbol" yaml:"symbol"`
}

// ParseAutomaton reads an automaton description and builds a validated automaton from it.
func ParseAutomaton(src io.Reader, format Format) (*fsm.Automaton, error) {
	desc := &AutomatonDescription{}
	err := decode(src, format, desc)
	if err != nil {
		return nil, err
	}
	def, err := desc.definition()
	if err != nil {
		return nil, err
	}
	return fsm.FromDefinition(def)
}

func decode(src io.Reader, format Format, v interface{}) error {
	switch format {
	case FormatJSON:
		d := json.NewDecoder(src)
		d.UseNumber()
		return d.Decode(v)
	case FormatYAML:
		return yaml.NewDecoder(src).Decode(v)
	}
	return &verr.SpecError{
		Cause:  semErrUnknownFormat,
		Detail: string(format),
	}
}

func (desc *AutomatonDescription) definition() (*fsm.Definition, error) {
	var errs verr.SpecErrors
	convert := func(field string, v interface{}, sym bool) value.Value {
		val, err := toValue(v, sym)
		if err != nil {
			errs = append(errs, &verr.SpecError{
				Cause:  err,
				Detail: fmt.Sprintf("%v: %v", field, v),
			})
		}
		return val
	}
	convertAll := func(field string, vs []interface{}, sym bool) []value.Value {
		if vs == nil {
			return nil
		}
		vals := make([]value.Value, len(vs))
		for i, v := range vs {
			vals[i] = convert(field, v, sym)
		}
		return vals
	}

	def := &fsm.Definition{
		States:          convertAll("states", desc.States, false),
		Alphabet:        convertAll("alphabet", desc.Alphabet, true),
		InitialState:    convert("initialState", desc.InitialState, false),
		AcceptingStates: convertAll("acceptingStates", desc.AcceptingStates, false),
	}
	for i, t := range desc.Transitions {
		if t == nil {
			errs = append(errs, &verr.SpecError{
				Cause:  semErrMissingField,
				Detail: fmt.Sprintf("transitions[%v]", i),
			})
			continue
		}
		def.Transitions = append(def.Transitions, fsm.Transition{
			From:   convert("fromState", t.FromState, false),
			Symbol: convert("symbol", t.Symbol, true),
			To:     convertAll("toStates", t.ToStates, false),
		})
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return def, nil
}

// toValue converts a decoded JSON or YAML value. A missing value stays nil so that validation
// reports it in terms of the automaton.
func toValue(v interface{}, sym bool) (value.Value, error) {
	switch w := v.(type) {
	case nil:
		return nil, nil
	case string:
		if sym && w == epsilonSymbol {
			return value.Epsilon, nil
		}
		return value.String(w), nil
	case json.Number:
		n, err := w.Int64()
		if err != nil {
			return nil, semErrInvalidValue
		}
		return value.Int(n), nil
	case int:
		return value.Int(w), nil
	case int64:
		return value.Int(w), nil
	case []interface{}:
		elems := make([]value.Value, len(w))
		for i, e := range w {
			if e == nil {
				return nil, semErrInvalidValue
			}
			elem, err := toValue(e, false)
			if err != nil {
				return nil, err
			}
			elems[i] = elem
		}
		return value.NewTuple(elems...), nil
	}
	return nil, semErrInvalidValue
}

// NewAutomatonDescription describes an automaton. Tuples and groups both become arrays, and ε
// becomes "$".
func NewAutomatonDescription(a *fsm.Automaton) *AutomatonDescription {
	def := a.Definition()
	desc := &AutomatonDescription{
		States:          fromValues(def.States),
		Alphabet:        fromValues(def.Alphabet),
		AcceptingStates: fromValues(def.AcceptingStates),
		Transitions:     []*TransitionDescription{},
	}
	if def.InitialState != nil {
		desc.InitialState = fromValue(def.InitialState)
	}
	for _, t := range def.Transitions {
		desc.Transitions = append(desc.Transitions, &TransitionDescription{
			FromState: fromValue(t.From),
			ToStates:  fromValues(t.To),
			Symbol:    fromValue(t.Symbol),
		})
	}
	return desc
}

func fromValues(vs []value.Value) []interface{} {
	ws := make([]interface{}, len(vs))
	for i, v := range vs {
		ws[i] = fromValue(v)
	}
	return ws
}

func fromValue(v value.Value) interface{} {
	switch w := v.(type) {
	case value.String:
		return string(w)
	case value.Int:
		return int(w)
	case value.Tuple:
		return fromValues(w.Elements())
	case value.Group:
		return fromValues(w.Elements())
	}
	if value.IsEpsilon(v) {
		return epsilonSymbol
	}
	return v.String()
}

// WriteAutomaton writes the description of an automaton.
func WriteAutomaton(w io.Writer, a *fsm.Automaton, format Format) error {
	return encode(w, format, NewAutomatonDescription(a))
}

func encode(w io.Writer, format Format, v interface{}) error {
	switch format {
	case FormatJSON:
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		return e.Encode(v)
	case FormatYAML:
		e := yaml.NewEncoder(w)
		e.SetIndent(2)
		err := e.Encode(v)
		if err != nil {
			return err
		}
		return e.Close()
	}
	return &verr.SpecError{
		Cause:  semErrUnknownFormat,
		Detail: string(format),
	}
}
