package frame

import (
	"fmt"
	"sort"
)

// Frame is an ordered set of equal-length columns.
type Frame struct {
	cols []*Col

	by []*Col // sort keys, set by Sort
}

func NewFrame(cols ...*Col) (*Frame, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("no columns in NewFrame")
	}

	n := cols[0].Len()
	seen := make(map[string]bool)
	for _, c := range cols {
		if c.Len() != n {
			return nil, fmt.Errorf("all columns must have the same length, column %s has %d not %d",
				c.Name(""), c.Len(), n)
		}

		if seen[c.Name("")] {
			return nil, fmt.Errorf("duplicate column name %s", c.Name(""))
		}

		seen[c.Name("")] = true
	}

	return &Frame{cols: cols}, nil
}

func (f *Frame) RowCount() int {
	if len(f.cols) == 0 {
		return 0
	}

	return f.cols[0].Len()
}

func (f *Frame) ColumnCount() int {
	return len(f.cols)
}

func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.cols))
	for ind, c := range f.cols {
		names[ind] = c.Name("")
	}

	return names
}

func (f *Frame) HasColumn(colName string) bool {
	for _, c := range f.cols {
		if c.Name("") == colName {
			return true
		}
	}

	return false
}

func (f *Frame) Column(colName string) (*Col, error) {
	for _, c := range f.cols {
		if c.Name("") == colName {
			return c, nil
		}
	}

	return nil, fmt.Errorf("no column %s", colName)
}

// AppendColumn adds col to f.  If replace is true, an existing column of the same
// name is dropped first.
func (f *Frame) AppendColumn(col *Col, replace bool) error {
	if col.Len() != f.RowCount() {
		return fmt.Errorf("column %s has %d rows, frame has %d", col.Name(""), col.Len(), f.RowCount())
	}

	if f.HasColumn(col.Name("")) {
		if !replace {
			return fmt.Errorf("frame already has column %s", col.Name(""))
		}

		if e := f.DropColumns(col.Name("")); e != nil {
			return e
		}
	}

	f.cols = append(f.cols, col)

	return nil
}

func (f *Frame) DropColumns(colNames ...string) error {
	for _, nm := range colNames {
		if !f.HasColumn(nm) {
			return fmt.Errorf("no column %s to drop", nm)
		}

		var keep []*Col
		for _, c := range f.cols {
			if c.Name("") != nm {
				keep = append(keep, c)
			}
		}
		f.cols = keep
	}

	return nil
}

// KeepColumns returns a new frame holding copies of the named columns, in the order given.
func (f *Frame) KeepColumns(colNames ...string) (*Frame, error) {
	var cols []*Col
	for _, nm := range colNames {
		c, e := f.Column(nm)
		if e != nil {
			return nil, e
		}

		cols = append(cols, c.Copy())
	}

	return NewFrame(cols...)
}

// Rename renames column from to to.
func (f *Frame) Rename(from, to string) error {
	if f.HasColumn(to) {
		return fmt.Errorf("frame already has column %s", to)
	}

	c, e := f.Column(from)
	if e != nil {
		return e
	}

	c.Name(to)

	return nil
}

func (f *Frame) Copy() *Frame {
	cols := make([]*Col, len(f.cols))
	for ind, c := range f.cols {
		cols[ind] = c.Copy()
	}

	out, _ := NewFrame(cols...)

	return out
}

// Take returns a new frame holding the given rows, in order.
func (f *Frame) Take(rows []int) *Frame {
	cols := make([]*Col, len(f.cols))
	for ind, c := range f.cols {
		cols[ind] = c.Take(rows)
	}

	out, _ := NewFrame(cols...)

	return out
}

// Filter returns the rows for which keep returns true.
func (f *Frame) Filter(keep func(row int) bool) *Frame {
	var rows []int
	for row := 0; row < f.RowCount(); row++ {
		if keep(row) {
			rows = append(rows, row)
		}
	}

	if rows == nil {
		rows = []int{}
	}

	return f.Take(rows)
}

// Append appends the rows of g to f.  g must have the same columns; they are matched
// by name, so the column order may differ.
func (f *Frame) Append(g *Frame) (*Frame, error) {
	if f.ColumnCount() != g.ColumnCount() {
		return nil, fmt.Errorf("frames have different column counts")
	}

	var cols []*Col
	for _, c := range f.cols {
		c2, e := g.Column(c.Name(""))
		if e != nil {
			return nil, e
		}

		cx, ex := c.AppendRows(c2)
		if ex != nil {
			return nil, ex
		}

		cols = append(cols, cx)
	}

	return NewFrame(cols...)
}

// Sort sorts the frame in place, ascending by the key columns in order.
func (f *Frame) Sort(keys ...string) error {
	var by []*Col
	for _, k := range keys {
		c, e := f.Column(k)
		if e != nil {
			return e
		}

		by = append(by, c)
	}

	f.by = by
	sort.Stable(f)
	f.by = nil

	return nil
}

// Len is required for sort
func (f *Frame) Len() int {
	return f.RowCount()
}

func (f *Frame) Less(i, j int) bool {
	for _, c := range f.by {
		if c.Less(i, j) {
			return true
		}

		if c.Less(j, i) {
			return false
		}

		// equal -- keep checking
	}

	return false
}

func (f *Frame) Swap(i, j int) {
	for _, c := range f.cols {
		switch x := c.data.(type) {
		case []float64:
			x[i], x[j] = x[j], x[i]
		case []int:
			x[i], x[j] = x[j], x[i]
		case []string:
			x[i], x[j] = x[j], x[i]
		}
	}
}
