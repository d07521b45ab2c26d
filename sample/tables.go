package sample

import (
	"sort"

	"github.com/invertedv/esgpanel/frame"
	"github.com/invertedv/esgpanel/panel"
)

// RegionIncomeTable cross-tabulates countries by Region and Income Group, counting
// each country once, with row and column totals.  It works on either the full or the
// filtered panel; countries the classification join left unlabeled are not tabulated.
func RegionIncomeTable(f *frame.Frame) (*frame.Frame, error) {
	u, e := frame.Unique(f, panel.ColName, panel.ColRegion, panel.ColIncome)
	if e != nil {
		return nil, e
	}

	regCol, _ := u.Column(panel.ColRegion)
	incCol, _ := u.Column(panel.ColIncome)
	regions, _ := regCol.Strings()
	incomes, _ := incCol.Strings()

	counts := make(map[string]map[string]int)
	incSet := make(map[string]bool)
	for row := 0; row < u.RowCount(); row++ {
		r, c := regions[row], incomes[row]
		if r == "" || c == "" {
			continue
		}

		if counts[r] == nil {
			counts[r] = make(map[string]int)
		}
		counts[r][c]++
		incSet[c] = true
	}

	var regionLevels []string
	for r := range counts {
		regionLevels = append(regionLevels, r)
	}
	sort.Strings(regionLevels)

	var incomeLevels []string
	for c := range incSet {
		incomeLevels = append(incomeLevels, c)
	}
	sort.Strings(incomeLevels)

	nRows := len(regionLevels) + 1 // plus the Total row

	rowNames := make([]string, nRows)
	copy(rowNames, regionLevels)
	rowNames[nRows-1] = "Total"

	var cols []*frame.Col
	nameCol, _ := frame.NewCol(panel.ColRegion, rowNames)
	cols = append(cols, nameCol)

	rowTotals := make([]int, nRows)
	for _, inc := range incomeLevels {
		d := make([]int, nRows)
		for ind, reg := range regionLevels {
			d[ind] = counts[reg][inc]
			d[nRows-1] += counts[reg][inc]
			rowTotals[ind] += counts[reg][inc]
			rowTotals[nRows-1] += counts[reg][inc]
		}

		c, ex := frame.NewCol(inc, d)
		if ex != nil {
			return nil, ex
		}

		cols = append(cols, c)
	}

	totCol, _ := frame.NewCol("Total", rowTotals)
	cols = append(cols, totCol)

	return frame.NewFrame(cols...)
}

// Metadata lists the selected countries once each with code, region and income group,
// sorted by (Region, Income Group, Country Name), with a 1-based index column.
func Metadata(f50 *frame.Frame) (*frame.Frame, error) {
	u, e := frame.Unique(f50, panel.ColName, panel.ColCode, panel.ColRegion, panel.ColIncome)
	if e != nil {
		return nil, e
	}

	if e := u.Sort(panel.ColRegion, panel.ColIncome, panel.ColName); e != nil {
		return nil, e
	}

	idx := make([]int, u.RowCount())
	for ind := range idx {
		idx[ind] = ind + 1
	}

	idxCol, ex := frame.NewCol("N", idx)
	if ex != nil {
		return nil, ex
	}

	out, exx := u.KeepColumns(panel.ColName, panel.ColCode, panel.ColRegion, panel.ColIncome)
	if exx != nil {
		return nil, exx
	}

	cols := append([]*frame.Col{idxCol}, mustCols(out)...)

	return frame.NewFrame(cols...)
}

func mustCols(f *frame.Frame) []*frame.Col {
	var cols []*frame.Col
	for _, nm := range f.ColumnNames() {
		c, _ := f.Column(nm)
		cols = append(cols, c)
	}

	return cols
}
