package staticdash

import "fmt"

// Table is the tabular data capability consumed by TableBlock. Column order
// and row order are preserved as given; cell values are already stringified
// for display.
type Table interface {
	Columns() []string
	Rows() [][]string
}

type sliceTable struct {
	cols []string
	rows [][]string
}

func (t *sliceTable) Columns() []string { return t.cols }
func (t *sliceTable) Rows() [][]string  { return t.rows }

// NewTable builds a Table from a column list and row-major values. Values are
// stringified with fmt.Sprint. Rows shorter than the column list are padded
// with empty cells so every rendered row has the same arity.
func NewTable(columns []string, rows [][]any) Table {
	out := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(columns))
		for j := range columns {
			if j < len(row) {
				cells[j] = fmt.Sprint(row[j])
			}
		}
		out[i] = cells
	}
	return &sliceTable{cols: append([]string(nil), columns...), rows: out}
}
