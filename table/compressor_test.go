package table

import (
	"fmt"
	"testing"
)

func TestCompressor_Compress(t *testing.T) {
	x := StateIDNil

	allCompressors := func() []compressor {
		return []compressor{
			&UniqueRowsTable{},
			NewRowDisplacementTable(x),
		}
	}

	tests := []struct {
		original []int
		rowCount int
		colCount int
	}{
		{
			// A total DFA: only the row of the nil state is empty.
			original: []int{
				x, x, x,
				2, 1, 3,
				2, 3, 3,
				3, 3, 3,
			},
			rowCount: 4,
			colCount: 3,
		},
		{
			original: []int{
				x, x, x, x,
				x, x, x, x,
			},
			rowCount: 2,
			colCount: 4,
		},
		{
			original: []int{
				1, x, x, x,
				x, 2, x, x,
				x, x, 3, x,
				1, x, x, 4,
			},
			rowCount: 4,
			colCount: 4,
		},
		{
			original: []int{
				5,
				5,
				x,
			},
			rowCount: 3,
			colCount: 1,
		},
	}
	for i, tt := range tests {
		for _, comp := range allCompressors() {
			t.Run(fmt.Sprintf("%T #%v", comp, i), func(t *testing.T) {
				dup := make([]int, len(tt.original))
				copy(dup, tt.original)

				orig, err := NewOriginalTable(tt.original, tt.colCount)
				if err != nil {
					t.Fatal(err)
				}
				err = comp.Compress(orig)
				if err != nil {
					t.Fatal(err)
				}
				rowCount, colCount := comp.OriginalTableSize()
				if rowCount != tt.rowCount || colCount != tt.colCount {
					t.Fatalf("unexpected table size; want: %vx%v, got: %vx%v", tt.rowCount, tt.colCount, rowCount, colCount)
				}
				for i := 0; i < tt.rowCount; i++ {
					for j := 0; j < tt.colCount; j++ {
						v, err := comp.Lookup(i, j)
						if err != nil {
							t.Fatal(err)
						}
						want := tt.original[i*tt.colCount+j]
						if v != want {
							t.Fatalf("unexpected entry (%v, %v); want: %v, got: %v", i, j, want, v)
						}
					}
				}

				for _, idx := range [][2]int{{0, -1}, {-1, 0}, {rowCount - 1, colCount}, {rowCount, colCount - 1}} {
					if _, err := comp.Lookup(idx[0], idx[1]); err == nil {
						t.Fatalf("expected error didn't occur %v", idx)
					}
				}

				for idx := range tt.original {
					if tt.original[idx] != dup[idx] {
						t.Fatalf("the original table is broken at %v; want: %v, got: %v", idx, dup[idx], tt.original[idx])
					}
				}
			})
		}
	}
}

func TestUniqueRowsTable_Compress(t *testing.T) {
	orig, err := NewOriginalTable([]int{
		0, 0,
		2, 1,
		2, 1,
		0, 0,
	}, 2)
	if err != nil {
		t.Fatal(err)
	}
	tab := &UniqueRowsTable{}
	err = tab.Compress(orig)
	if err != nil {
		t.Fatal(err)
	}
	if n := tab.UniqueRowCount(); n != 2 {
		t.Fatalf("unexpected unique row count: want: %v, got: %v", 2, n)
	}
	want := []int{0, 1, 1, 0}
	for i, n := range want {
		if tab.RowNums[i] != n {
			t.Fatalf("unexpected row number of #%v: want: %v, got: %v", i, n, tab.RowNums[i])
		}
	}
}

func TestNewOriginalTable(t *testing.T) {
	tests := []struct {
		entries  []int
		colCount int
	}{
		{entries: nil, colCount: 1},
		{entries: []int{1, 2}, colCount: 0},
		{entries: []int{1, 2, 3}, colCount: 2},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			_, err := NewOriginalTable(tt.entries, tt.colCount)
			if err == nil {
				t.Fatalf("expected error didn't occur")
			}
		})
	}
}
