package grammar

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/nihei9/noam/value"
)

// Production rewrites Left into Right. A Right consisting of value.Epsilon alone is an epsilon
// production.
type Production struct {
	Left  []value.Value
	Right []value.Value
}

func NewProduction(left []value.Value, right ...value.Value) *Production {
	return &Production{
		Left:  left,
		Right: right,
	}
}

func (p *Production) IsEpsilon() bool {
	return len(p.Right) == 1 && value.IsEpsilon(p.Right[0])
}

func (p *Production) String() string {
	var b strings.Builder
	for i, sym := range p.Left {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%v", sym)
	}
	b.WriteString(" ->")
	for _, sym := range p.Right {
		fmt.Fprintf(&b, " %v", sym)
	}
	return b.String()
}

type productionID [32]byte

func (id productionID) String() string {
	return hex.EncodeToString(id[:])
}

func writeKeys(b *strings.Builder, syms []value.Value) {
	for _, sym := range syms {
		k := sym.Key()
		fmt.Fprintf(b, "%v:%v", len(k), k)
	}
}

func genProductionID(left, right []value.Value) productionID {
	var b strings.Builder
	writeKeys(&b, left)
	b.WriteByte('>')
	writeKeys(&b, right)
	return productionID(sha256.Sum256([]byte(b.String())))
}

func symbolsKey(syms []value.Value) string {
	var b strings.Builder
	writeKeys(&b, syms)
	return b.String()
}

// productionSet holds distinct productions grouped by their left sides. Both the groups and the
// productions in a group keep insertion order.
type productionSet struct {
	lhs2Prods map[string][]*Production
	lhsOrder  []string
	id2Prod   map[productionID]*Production
}

func newProductionSet() *productionSet {
	return &productionSet{
		lhs2Prods: map[string][]*Production{},
		id2Prod:   map[productionID]*Production{},
	}
}

func (ps *productionSet) append(prod *Production) bool {
	id := genProductionID(prod.Left, prod.Right)
	if _, ok := ps.id2Prod[id]; ok {
		return false
	}

	lhs := symbolsKey(prod.Left)
	if prods, ok := ps.lhs2Prods[lhs]; ok {
		ps.lhs2Prods[lhs] = append(prods, prod)
	} else {
		ps.lhs2Prods[lhs] = []*Production{prod}
		ps.lhsOrder = append(ps.lhsOrder, lhs)
	}
	ps.id2Prod[id] = prod

	return true
}

// groups returns the productions grouped by their left sides.
func (ps *productionSet) groups() [][]*Production {
	gs := make([][]*Production, 0, len(ps.lhsOrder))
	for _, lhs := range ps.lhsOrder {
		gs = append(gs, ps.lhs2Prods[lhs])
	}
	return gs
}
