// Package table compiles a DFA into a compact transition table that can be serialized and run
// without the fsm package.
package table

import (
	"fmt"

	verr "github.com/nihei9/noam/error"
	"github.com/nihei9/noam/fsm"
	"github.com/nihei9/noam/value"
)

// StateIDNil is the ID of no state. The states of a table have IDs from 1.
const StateIDNil = 0

const (
	CompressionLevelMin = 0
	CompressionLevelMax = 2
)

// Table is a compiled DFA. Row i of the transition table belongs to the state with ID i, and
// column j to Symbols[j]. Row 0 is StateIDNil and holds no transitions.
type Table struct {
	Symbols         []string `json:"symbols"`
	States          []string `json:"states"`
	InitialState    int      `json:"initial_state"`
	AcceptingStates []bool   `json:"accepting_states"`
	RowCount        int      `json:"row_count"`
	ColCount        int      `json:"col_count"`

	// Only one of the following holds the transitions, depending on the compression level.
	UncompressedTransition []int                 `json:"uncompressed_transition,omitempty"`
	UniqueRows             *UniqueRowsTable      `json:"unique_rows,omitempty"`
	Transition             *RowDisplacementTable `json:"transition,omitempty"`
}

type compileConfig struct {
	compressionLevel int
}

type CompileOption func(config *compileConfig)

func CompressionLevel(lv int) CompileOption {
	return func(config *compileConfig) {
		config.compressionLevel = lv
	}
}

// Compile converts a DFA into a table. Symbols are identified by their string forms, which must
// therefore be distinct.
func Compile(dfa *fsm.Automaton, opts ...CompileOption) (*Table, error) {
	config := &compileConfig{
		compressionLevel: CompressionLevelMax,
	}
	for _, opt := range opts {
		opt(config)
	}
	if config.compressionLevel < CompressionLevelMin || config.compressionLevel > CompressionLevelMax {
		return nil, fmt.Errorf("compression level must be %v to %v: %v", CompressionLevelMin, CompressionLevelMax, config.compressionLevel)
	}

	if typ := dfa.Type(); typ != fsm.TypeDFA {
		return nil, verr.New(verr.KindTypeMismatch, "a DFA is required; got: %v", typ)
	}
	if dfa.InitialState() == nil {
		return nil, verr.New(verr.KindInvalidEntity, "the automaton has no initial state")
	}
	alphabet := dfa.Alphabet()
	if len(alphabet) == 0 {
		return nil, verr.New(verr.KindInvalidEntity, "a table needs at least one symbol")
	}

	syms := make([]string, len(alphabet))
	sym2Col := map[string]int{}
	for i, sym := range alphabet {
		name := sym.String()
		if _, ok := sym2Col[name]; ok {
			return nil, verr.New(verr.KindInvalidEntity, "symbol names must be distinct: %v", name)
		}
		sym2Col[name] = i
		syms[i] = name
	}

	states := dfa.States()
	stateKey2ID := map[string]int{}
	stateNames := make([]string, len(states)+1)
	acc := make([]bool, len(states)+1)
	for i, s := range states {
		id := i + 1
		stateKey2ID[s.Key()] = id
		stateNames[id] = s.String()
		acc[id] = dfa.IsAccepting(s)
	}

	rowCount := len(states) + 1
	colCount := len(alphabet)
	tran := make([]int, rowCount*colCount)
	for _, t := range dfa.Transitions() {
		from := stateKey2ID[t.From.Key()]
		to := stateKey2ID[t.To[0].Key()]
		tran[from*colCount+sym2Col[t.Symbol.String()]] = to
	}

	tab := &Table{
		Symbols:         syms,
		States:          stateNames,
		InitialState:    stateKey2ID[dfa.InitialState().Key()],
		AcceptingStates: acc,
		RowCount:        rowCount,
		ColCount:        colCount,
	}

	if config.compressionLevel == 0 {
		tab.UncompressedTransition = tran
		return tab, nil
	}

	orig, err := NewOriginalTable(tran, colCount)
	if err != nil {
		return nil, err
	}
	urTab := &UniqueRowsTable{}
	err = urTab.Compress(orig)
	if err != nil {
		return nil, err
	}
	if config.compressionLevel == 1 {
		tab.UniqueRows = urTab
		return tab, nil
	}

	orig, err = NewOriginalTable(urTab.UniqueRows, colCount)
	if err != nil {
		return nil, err
	}
	rdTab := NewRowDisplacementTable(StateIDNil)
	err = rdTab.Compress(orig)
	if err != nil {
		return nil, err
	}
	tab.UniqueRows = &UniqueRowsTable{
		RowNums:          urTab.RowNums,
		OriginalRowCount: urTab.OriginalRowCount,
		OriginalColCount: urTab.OriginalColCount,
	}
	tab.Transition = rdTab

	return tab, nil
}

// Lookup returns the ID of the state the state with ID `state` moves to on the symbol of
// column `col`.
func (t *Table) Lookup(state, col int) (int, error) {
	if state < 0 || state >= t.RowCount || col < 0 || col >= t.ColCount {
		return StateIDNil, fmt.Errorf("indexes are out of range: [%v, %v]", state, col)
	}
	switch {
	case t.Transition != nil:
		return t.Transition.Lookup(t.UniqueRows.RowNums[state], col)
	case t.UniqueRows != nil:
		return t.UniqueRows.Lookup(state, col)
	}
	return t.UncompressedTransition[state*t.ColCount+col], nil
}

// Column returns the column of a symbol name.
func (t *Table) Column(name string) (int, bool) {
	for i, sym := range t.Symbols {
		if sym == name {
			return i, true
		}
	}
	return 0, false
}

// Accepts runs the table on a word given as symbol names.
func (t *Table) Accepts(names []string) (bool, error) {
	state := t.InitialState
	for _, name := range names {
		col, ok := t.Column(name)
		if !ok {
			return false, verr.New(verr.KindUnknownSymbol, "not a symbol of the table: %v", name)
		}
		next, err := t.Lookup(state, col)
		if err != nil {
			return false, err
		}
		if next == StateIDNil {
			return false, nil
		}
		state = next
	}
	return t.AcceptingStates[state], nil
}

// SymbolNames converts symbols into the names Accepts takes.
func SymbolNames(syms []value.Value) []string {
	names := make([]string, len(syms))
	for i, sym := range syms {
		names[i] = sym.String()
	}
	return names
}
