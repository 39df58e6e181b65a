package spec

import (
	"fmt"
	"io"

	verr "github.com/nihei9/noam/error"
	"github.com/nihei9/noam/regex"
)

const (
	regexTagAlternation = "alt"
	regexTagSequence    = "sequence"
	regexTagKleeneStar  = "kleene_star"
	regexTagLiteral     = "literal"
	regexTagEpsilon     = "epsilon"
)

// RegexDescription is the serialized form of a regex tree node. Tag selects the kind of the node
// and the field it uses: choices for alt, elements for sequence, expr for kleene_star and obj for
// literal.
type RegexDescription struct {
	Tag      string              `json:"tag" yaml:"tag"`
	Choices  []*RegexDescription `json:"choices,omitempty" yaml:"choices,omitempty"`
	Elements []*RegexDescription `json:"elements,omitempty" yaml:"elements,omitempty"`
	Expr     *RegexDescription   `json:"expr,omitempty" yaml:"expr,omitempty"`
	Obj      interface{}         `json:"obj,omitempty" yaml:"obj,omitempty"`
}

// ParseRegex reads a regex tree description.
func ParseRegex(src io.Reader, format Format) (regex.Node, error) {
	desc := &RegexDescription{}
	err := decode(src, format, desc)
	if err != nil {
		return nil, err
	}
	return desc.node("root")
}

func (desc *RegexDescription) node(path string) (regex.Node, error) {
	if desc == nil {
		return nil, &verr.SpecError{
			Cause:  semErrMissingField,
			Detail: path,
		}
	}
	switch desc.Tag {
	case regexTagAlternation:
		choices, err := nodes(path+".choices", desc.Choices)
		if err != nil {
			return nil, err
		}
		return regex.NewAlternation(choices...), nil
	case regexTagSequence:
		elems, err := nodes(path+".elements", desc.Elements)
		if err != nil {
			return nil, err
		}
		return regex.NewSequence(elems...), nil
	case regexTagKleeneStar:
		expr, err := desc.Expr.node(path + ".expr")
		if err != nil {
			return nil, err
		}
		return regex.NewKleeneStar(expr), nil
	case regexTagLiteral:
		if desc.Obj == nil {
			return nil, &verr.SpecError{
				Cause:  semErrMissingField,
				Detail: path + ".obj",
			}
		}
		sym, err := toValue(desc.Obj, false)
		if err != nil {
			return nil, &verr.SpecError{
				Cause:  err,
				Detail: fmt.Sprintf("%v.obj: %v", path, desc.Obj),
			}
		}
		return regex.NewLiteral(sym), nil
	case regexTagEpsilon:
		return regex.NewEpsilon(), nil
	}
	return nil, &verr.SpecError{
		Cause:  semErrUnknownTag,
		Detail: fmt.Sprintf("%v: %v", path, desc.Tag),
	}
}

func nodes(path string, descs []*RegexDescription) ([]regex.Node, error) {
	ns := make([]regex.Node, len(descs))
	for i, d := range descs {
		n, err := d.node(fmt.Sprintf("%v[%v]", path, i))
		if err != nil {
			return nil, err
		}
		ns[i] = n
	}
	return ns, nil
}

// NewRegexDescription describes a regex tree.
func NewRegexDescription(n regex.Node) (*RegexDescription, error) {
	switch m := n.(type) {
	case *regex.Alternation:
		choices, err := newRegexDescriptions(m.Choices)
		if err != nil {
			return nil, err
		}
		return &RegexDescription{
			Tag:     regexTagAlternation,
			Choices: choices,
		}, nil
	case *regex.Sequence:
		elems, err := newRegexDescriptions(m.Elements)
		if err != nil {
			return nil, err
		}
		return &RegexDescription{
			Tag:      regexTagSequence,
			Elements: elems,
		}, nil
	case *regex.KleeneStar:
		expr, err := NewRegexDescription(m.Expr)
		if err != nil {
			return nil, err
		}
		return &RegexDescription{
			Tag:  regexTagKleeneStar,
			Expr: expr,
		}, nil
	case *regex.Literal:
		if m.Symbol == nil {
			return nil, verr.New(verr.KindInvalidEntity, "a literal must have a symbol")
		}
		return &RegexDescription{
			Tag: regexTagLiteral,
			Obj: fromValue(m.Symbol),
		}, nil
	case *regex.Epsilon:
		return &RegexDescription{
			Tag: regexTagEpsilon,
		}, nil
	}
	return nil, verr.New(verr.KindInvalidEntity, "unknown node: %T", n)
}

func newRegexDescriptions(ns []regex.Node) ([]*RegexDescription, error) {
	descs := make([]*RegexDescription, len(ns))
	for i, n := range ns {
		d, err := NewRegexDescription(n)
		if err != nil {
			return nil, err
		}
		descs[i] = d
	}
	return descs, nil
}

// WriteRegex writes the description of a regex tree.
func WriteRegex(w io.Writer, n regex.Node, format Format) error {
	desc, err := NewRegexDescription(n)
	if err != nil {
		return err
	}
	return encode(w, format, desc)
}
