package client

import (
	"errors"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/zoobzio/clickql/clickhouse"
)

// ErrMissingParam indicates a query parameter with no binding.
var ErrMissingParam = errors.New("missing query parameter")

// Column describes one column of a materialized result set.
type Column struct {
	Name string
	Type clickhouse.DataType
}

// Table is a fully materialized result set held in row-major order.
type Table struct {
	columns []Column
	rows    [][]any
}

// NewTable creates an empty table with the given columns.
func NewTable(columns []Column) *Table {
	return &Table{columns: columns}
}

// AppendRow adds a row. The row length must match the column count;
// a mismatched row is rejected so column accessors never misindex.
func (t *Table) AppendRow(row []any) error {
	if len(row) != len(t.columns) {
		return fmt.Errorf("row has %d values, table has %d columns", len(row), len(t.columns))
	}
	t.rows = append(t.rows, row)
	return nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns the i'th row.
func (t *Table) Row(i int) []any {
	return t.rows[i]
}

// Columns returns the column descriptors.
func (t *Table) Columns() []Column {
	return t.columns
}

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	return names
}

// Column returns all values of the named column.
func (t *Table) Column(name string) ([]any, error) {
	idx := -1
	for i, col := range t.columns {
		if col.Name == name {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("no column named %q", name)
	}

	values := make([]any, len(t.rows))
	for i, row := range t.rows {
		values[i] = row[idx]
	}
	return values, nil
}

// Format writes the table in an aligned text layout.
func (t *Table) Format(w io.Writer) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(t.ColumnNames())

	for _, row := range t.rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprint(v)
		}
		tw.Append(cells)
	}

	tw.Render()
}
