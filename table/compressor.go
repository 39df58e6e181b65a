package table

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// OriginalTable is a row-major table of state IDs before compression.
type OriginalTable struct {
	entries  []int
	rowCount int
	colCount int
}

func NewOriginalTable(entries []int, colCount int) (*OriginalTable, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("entries is empty")
	}
	if colCount <= 0 {
		return nil, fmt.Errorf("colCount must be >=1")
	}
	if len(entries)%colCount != 0 {
		return nil, fmt.Errorf("entries length or column count are incorrect; entries length: %v, column count: %v", len(entries), colCount)
	}

	return &OriginalTable{
		entries:  entries,
		rowCount: len(entries) / colCount,
		colCount: colCount,
	}, nil
}

type compressor interface {
	Compress(orig *OriginalTable) error
	Lookup(row, col int) (int, error)
	OriginalTableSize() (int, int)
}

var (
	_ compressor = &UniqueRowsTable{}
	_ compressor = &RowDisplacementTable{}
)

// UniqueRowsTable stores each distinct row once. Rows of states that move the same way on every
// symbol share an entry in UniqueRows.
type UniqueRowsTable struct {
	UniqueRows       []int `json:"unique_rows"`
	RowNums          []int `json:"row_nums"`
	OriginalRowCount int   `json:"original_row_count"`
	OriginalColCount int   `json:"original_col_count"`
}

func (tab *UniqueRowsTable) Lookup(row, col int) (int, error) {
	if row < 0 || row >= tab.OriginalRowCount || col < 0 || col >= tab.OriginalColCount {
		return 0, fmt.Errorf("indexes are out of range: [%v, %v]", row, col)
	}
	return tab.UniqueRows[tab.RowNums[row]*tab.OriginalColCount+col], nil
}

func (tab *UniqueRowsTable) OriginalTableSize() (int, int) {
	return tab.OriginalRowCount, tab.OriginalColCount
}

func (tab *UniqueRowsTable) UniqueRowCount() int {
	if tab.OriginalColCount == 0 {
		return 0
	}
	return len(tab.UniqueRows) / tab.OriginalColCount
}

func (tab *UniqueRowsTable) Compress(orig *OriginalTable) error {
	var uniqueRows []int
	rowNums := make([]int, orig.rowCount)
	key2RowNum := map[string]int{}
	for row := 0; row < orig.rowCount; row++ {
		start := row * orig.colCount
		entries := orig.entries[start : start+orig.colCount]
		k := rowKey(entries)
		rowNum, ok := key2RowNum[k]
		if !ok {
			rowNum = len(key2RowNum)
			key2RowNum[k] = rowNum
			uniqueRows = append(uniqueRows, entries...)
		}
		rowNums[row] = rowNum
	}

	tab.UniqueRows = uniqueRows
	tab.RowNums = rowNums
	tab.OriginalRowCount = orig.rowCount
	tab.OriginalColCount = orig.colCount

	return nil
}

func rowKey(entries []int) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(strconv.Itoa(e))
		b.WriteByte(',')
	}
	return b.String()
}

// ForbiddenValue marks a slot of Bounds owned by no row.
const ForbiddenValue = -1

// RowDisplacementTable overlays the rows of a sparse table on one array. Row r starts at
// RowDisplacement[r], and Bounds tells which row owns each slot.
type RowDisplacementTable struct {
	OriginalRowCount int   `json:"original_row_count"`
	OriginalColCount int   `json:"original_col_count"`
	EmptyValue       int   `json:"empty_value"`
	Entries          []int `json:"entries"`
	Bounds           []int `json:"bounds"`
	RowDisplacement  []int `json:"row_displacement"`
}

func NewRowDisplacementTable(emptyValue int) *RowDisplacementTable {
	return &RowDisplacementTable{
		EmptyValue: emptyValue,
	}
}

func (tab *RowDisplacementTable) Lookup(row int, col int) (int, error) {
	if row < 0 || row >= tab.OriginalRowCount || col < 0 || col >= tab.OriginalColCount {
		return tab.EmptyValue, fmt.Errorf("indexes are out of range: [%v, %v]", row, col)
	}
	d := tab.RowDisplacement[row]
	if tab.Bounds[d+col] != row {
		return tab.EmptyValue, nil
	}
	return tab.Entries[d+col], nil
}

func (tab *RowDisplacementTable) OriginalTableSize() (int, int) {
	return tab.OriginalRowCount, tab.OriginalColCount
}

type rowInfo struct {
	rowNum      int
	nonEmptyCol []int
}

// Compress places the densest rows first, each at the lowest displacement where its non-empty
// columns land on free slots.
func (tab *RowDisplacementTable) Compress(orig *OriginalTable) error {
	infos := make([]rowInfo, orig.rowCount)
	for row := 0; row < orig.rowCount; row++ {
		infos[row].rowNum = row
		for col := 0; col < orig.colCount; col++ {
			if orig.entries[row*orig.colCount+col] != tab.EmptyValue {
				infos[row].nonEmptyCol = append(infos[row].nonEmptyCol, col)
			}
		}
	}
	sort.SliceStable(infos, func(i int, j int) bool {
		return len(infos[i].nonEmptyCol) > len(infos[j].nonEmptyCol)
	})

	origEntriesLen := len(orig.entries)
	entries := make([]int, origEntriesLen)
	bounds := make([]int, origEntriesLen)
	for i := 0; i < origEntriesLen; i++ {
		entries[i] = tab.EmptyValue
		bounds[i] = ForbiddenValue
	}

	resultBottom := orig.colCount
	rowDisplacement := make([]int, orig.rowCount)
	nextRowDisplacement := 0
	for _, info := range infos {
		if len(info.nonEmptyCol) == 0 {
			continue
		}

		for !fits(entries, tab.EmptyValue, nextRowDisplacement, info.nonEmptyCol) {
			nextRowDisplacement++
		}
		rowDisplacement[info.rowNum] = nextRowDisplacement
		for _, col := range info.nonEmptyCol {
			entries[nextRowDisplacement+col] = orig.entries[info.rowNum*orig.colCount+col]
			bounds[nextRowDisplacement+col] = info.rowNum
		}
		if bottom := nextRowDisplacement + orig.colCount; bottom > resultBottom {
			resultBottom = bottom
		}
		nextRowDisplacement++
	}

	tab.OriginalRowCount = orig.rowCount
	tab.OriginalColCount = orig.colCount
	tab.Entries = entries[:resultBottom]
	tab.Bounds = bounds[:resultBottom]
	tab.RowDisplacement = rowDisplacement

	return nil
}

func fits(entries []int, emptyValue int, displacement int, cols []int) bool {
	for _, col := range cols {
		if entries[displacement+col] != emptyValue {
			return false
		}
	}
	return true
}
