package frame

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// All reshaping and relational operations on frames are here.

const keySep = "\x1f"

// rowKey builds a composite grouping key from the given columns at row.
func rowKey(cols []*Col, row int) string {
	parts := make([]string, len(cols))
	for ind, c := range cols {
		parts[ind] = c.ElementString(row)
	}

	return strings.Join(parts, keySep)
}

func keyCols(f *Frame, names []string) ([]*Col, error) {
	var cols []*Col
	for _, nm := range names {
		c, e := f.Column(nm)
		if e != nil {
			return nil, e
		}

		cols = append(cols, c)
	}

	return cols, nil
}

// Melt reshapes f from wide to long.  Each valueVar column produces one output row per
// input row: the id columns, the source column name under varName and the cell under
// valueName.  The value column is float if every valueVar is numeric, string otherwise.
func Melt(f *Frame, idVars, valueVars []string, varName, valueName string) (*Frame, error) {
	if len(valueVars) == 0 {
		return nil, fmt.Errorf("no value columns to melt")
	}

	var vals []*Col
	allNumeric := true
	for _, nm := range valueVars {
		c, e := f.Column(nm)
		if e != nil {
			return nil, e
		}

		if c.DataType() == DTstring {
			allNumeric = false
		}

		vals = append(vals, c)
	}

	nIn := f.RowCount()
	nOut := nIn * len(valueVars)

	// replicate the id columns: all rows for the first value var, then the second, ...
	rows := make([]int, nOut)
	for v := 0; v < len(valueVars); v++ {
		for r := 0; r < nIn; r++ {
			rows[v*nIn+r] = r
		}
	}

	var cols []*Col
	for _, nm := range idVars {
		c, e := f.Column(nm)
		if e != nil {
			return nil, e
		}

		cols = append(cols, c.Take(rows))
	}

	varData := make([]string, nOut)
	for v, nm := range valueVars {
		for r := 0; r < nIn; r++ {
			varData[v*nIn+r] = nm
		}
	}
	varCol, _ := NewCol(varName, varData)
	cols = append(cols, varCol)

	var valCol *Col
	if allNumeric {
		data := make([]float64, nOut)
		for v, c := range vals {
			cf := c.ToFloat()
			fd, _ := cf.Float64s()
			copy(data[v*nIn:(v+1)*nIn], fd)
		}
		valCol, _ = NewCol(valueName, data)
	} else {
		data := make([]string, nOut)
		for v, c := range vals {
			for r := 0; r < nIn; r++ {
				data[v*nIn+r] = c.ElementString(r)
			}
		}
		valCol, _ = NewCol(valueName, data)
	}
	cols = append(cols, valCol)

	return NewFrame(cols...)
}

// LeftJoin joins right onto left by the key columns.  Every left row appears in the
// output; a left row with k matches in right appears k times.  Right columns whose
// names collide with non-key left columns are skipped, so the left frame wins name
// clashes.  Right int payload columns are promoted to float so unmatched rows can
// carry NaN; unmatched string payloads are empty.
func LeftJoin(left, right *Frame, on ...string) (*Frame, error) {
	if len(on) == 0 {
		return nil, fmt.Errorf("no join keys")
	}

	lKeys, e := keyCols(left, on)
	if e != nil {
		return nil, e
	}

	rKeys, ex := keyCols(right, on)
	if ex != nil {
		return nil, ex
	}

	index := make(map[string][]int)
	for row := 0; row < right.RowCount(); row++ {
		k := rowKey(rKeys, row)
		index[k] = append(index[k], row)
	}

	isKey := make(map[string]bool)
	for _, nm := range on {
		isKey[nm] = true
	}

	var payload []*Col
	for _, c := range right.cols {
		nm := c.Name("")
		if isKey[nm] || left.HasColumn(nm) {
			continue
		}

		payload = append(payload, c)
	}

	// matched right row per output row; -1 marks no match
	var lRows, rRows []int
	for row := 0; row < left.RowCount(); row++ {
		matches := index[rowKey(lKeys, row)]
		if len(matches) == 0 {
			lRows = append(lRows, row)
			rRows = append(rRows, -1)
			continue
		}

		for _, m := range matches {
			lRows = append(lRows, row)
			rRows = append(rRows, m)
		}
	}

	var cols []*Col
	for _, c := range left.cols {
		cols = append(cols, c.Take(lRows))
	}

	for _, c := range payload {
		switch c.DataType() {
		case DTfloat, DTint:
			cf := c.ToFloat()
			src, _ := cf.Float64s()
			d := make([]float64, len(rRows))
			for ind, r := range rRows {
				if r < 0 {
					d[ind] = math.NaN()
					continue
				}
				d[ind] = src[r]
			}
			cx, _ := NewCol(c.Name(""), d)
			cols = append(cols, cx)
		case DTstring:
			src, _ := c.Strings()
			d := make([]string, len(rRows))
			for ind, r := range rRows {
				if r < 0 {
					continue
				}
				d[ind] = src[r]
			}
			cx, _ := NewCol(c.Name(""), d)
			cols = append(cols, cx)
		}
	}

	return NewFrame(cols...)
}

// groups maps composite key -> rows, with keys listed in first-appearance order.
func groups(cols []*Col, n int) (order []string, rows map[string][]int) {
	rows = make(map[string][]int)
	for row := 0; row < n; row++ {
		k := rowKey(cols, row)
		if _, ok := rows[k]; !ok {
			order = append(order, k)
		}
		rows[k] = append(rows[k], row)
	}

	return order, rows
}

// nanMean is the mean of the non-NaN entries of x at rows; NaN if there are none.
func nanMean(x []float64, rows []int) float64 {
	sum, n := 0.0, 0
	for _, r := range rows {
		if math.IsNaN(x[r]) {
			continue
		}
		sum += x[r]
		n++
	}

	if n == 0 {
		return math.NaN()
	}

	return sum / float64(n)
}

// ByMean groups f by the key columns and averages each value column within the group,
// skipping NaNs.  The output holds one row per group in first-appearance order.
func ByMean(f *Frame, keys []string, valCols ...string) (*Frame, error) {
	kc, e := keyCols(f, keys)
	if e != nil {
		return nil, e
	}

	order, grpRows := groups(kc, f.RowCount())

	first := make([]int, len(order))
	for ind, k := range order {
		first[ind] = grpRows[k][0]
	}

	var cols []*Col
	for _, c := range kc {
		cols = append(cols, c.Take(first))
	}

	for _, nm := range valCols {
		c, ex := f.Column(nm)
		if ex != nil {
			return nil, ex
		}

		x, exx := c.ToFloat().Float64s()
		if exx != nil {
			return nil, exx
		}

		d := make([]float64, len(order))
		for ind, k := range order {
			d[ind] = nanMean(x, grpRows[k])
		}

		cx, _ := NewCol(nm, d)
		cols = append(cols, cx)
	}

	return NewFrame(cols...)
}

// Pivot spreads the values of column across new columns, one per distinct cell of
// column (sorted), grouped by the index columns.  Cells holding more than one value
// are averaged (NaN-skipping); absent cells are NaN.
func Pivot(f *Frame, index []string, column, value string) (*Frame, error) {
	kc, e := keyCols(f, index)
	if e != nil {
		return nil, e
	}

	colBy, ex := f.Column(column)
	if ex != nil {
		return nil, ex
	}

	valCol, exx := f.Column(value)
	if exx != nil {
		return nil, exx
	}

	x, exxx := valCol.ToFloat().Float64s()
	if exxx != nil {
		return nil, exxx
	}

	order, grpRows := groups(kc, f.RowCount())

	// distinct spread values, sorted
	seen := make(map[string]bool)
	var spread []string
	for row := 0; row < f.RowCount(); row++ {
		v := colBy.ElementString(row)
		if !seen[v] {
			seen[v] = true
			spread = append(spread, v)
		}
	}
	sort.Strings(spread)

	first := make([]int, len(order))
	for ind, k := range order {
		first[ind] = grpRows[k][0]
	}

	var cols []*Col
	for _, c := range kc {
		cols = append(cols, c.Take(first))
	}

	for _, sv := range spread {
		d := make([]float64, len(order))
		for ind, k := range order {
			var cell []int
			for _, r := range grpRows[k] {
				if colBy.ElementString(r) == sv {
					cell = append(cell, r)
				}
			}
			d[ind] = nanMean(x, cell)
		}

		cx, _ := NewCol(sv, d)
		cols = append(cols, cx)
	}

	return NewFrame(cols...)
}

// Unique returns the named columns deduplicated on their composite value, keeping the
// first occurrence of each combination.
func Unique(f *Frame, colNames ...string) (*Frame, error) {
	sub, e := f.KeepColumns(colNames...)
	if e != nil {
		return nil, e
	}

	kc, _ := keyCols(sub, colNames)

	seen := make(map[string]bool)
	var rows []int
	for row := 0; row < sub.RowCount(); row++ {
		k := rowKey(kc, row)
		if seen[k] {
			continue
		}
		seen[k] = true
		rows = append(rows, row)
	}

	if rows == nil {
		rows = []int{}
	}

	return sub.Take(rows), nil
}

// DistinctCount counts the distinct values of a column.
func DistinctCount(f *Frame, colName string) (int, error) {
	u, e := Unique(f, colName)
	if e != nil {
		return 0, e
	}

	return u.RowCount(), nil
}
