package spec

import (
	"fmt"
	"io"

	verr "github.com/nihei9/noam/error"
	"github.com/nihei9/noam/value"
	"gopkg.in/yaml.v3"
)

// TestCase lists words an automaton must accept and words it must reject. A word is a list of
// symbols, each a string, an integer or an array of them.
//
//	description: words with an even number of a
//	accept:
//	  - []
//	  - [a, a]
//	reject:
//	  - [a]
type TestCase struct {
	Description string
	Accept      [][]value.Value
	Reject      [][]value.Value
}

type testCaseDescription struct {
	Description string          `yaml:"description"`
	Accept      [][]interface{} `yaml:"accept"`
	Reject      [][]interface{} `yaml:"reject"`
}

// ParseTestCase reads a test case written in YAML. JSON is accepted too, since it is a subset
// of YAML.
func ParseTestCase(src io.Reader) (*TestCase, error) {
	desc := &testCaseDescription{}
	err := yaml.NewDecoder(src).Decode(desc)
	if err != nil {
		return nil, err
	}

	var errs verr.SpecErrors
	words := func(field string, ws [][]interface{}) [][]value.Value {
		vs := make([][]value.Value, len(ws))
		for i, w := range ws {
			vs[i] = make([]value.Value, len(w))
			for j, sym := range w {
				v, err := toValue(sym, false)
				if err == nil && v == nil {
					err = semErrInvalidValue
				}
				if err != nil {
					errs = append(errs, &verr.SpecError{
						Cause:  err,
						Detail: fmt.Sprintf("%v[%v][%v]: %v", field, i, j, sym),
					})
					continue
				}
				vs[i][j] = v
			}
		}
		return vs
	}

	c := &TestCase{
		Description: desc.Description,
		Accept:      words("accept", desc.Accept),
		Reject:      words("reject", desc.Reject),
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return c, nil
}
