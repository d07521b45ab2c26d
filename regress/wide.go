package regress

import (
	"math"

	"github.com/invertedv/esgpanel/frame"
	"github.com/invertedv/esgpanel/panel"
)

// BuildEconWide spreads the five economic indicators into one column per indicator,
// one row per (country name, code, year, region, income group).  Duplicate
// (country, year, indicator) observations are averaged.
func BuildEconWide(f50 *frame.Frame) (*frame.Frame, error) {
	keep := make(map[string]bool)
	for _, ind := range EconIndicators {
		keep[ind.Long] = true
	}

	indCol, e := f50.Column(panel.ColIndicator)
	if e != nil {
		return nil, e
	}

	names, ex := indCol.Strings()
	if ex != nil {
		return nil, ex
	}

	econ := f50.Filter(func(row int) bool { return keep[names[row]] })

	index := []string{panel.ColName, panel.ColCode, panel.ColYear, panel.ColRegion, panel.ColIncome}
	wide, exx := frame.Pivot(econ, index, panel.ColIndicator, panel.ColValue)
	if exx != nil {
		return nil, exx
	}

	order := append([]string{}, index...)
	for _, ind := range EconIndicators {
		if wide.HasColumn(ind.Long) {
			if e := wide.Rename(ind.Long, ind.Short); e != nil {
				return nil, e
			}
		} else {
			nan := make([]float64, wide.RowCount())
			for i := range nan {
				nan[i] = math.NaN()
			}

			c, _ := frame.NewCol(ind.Short, nan)
			if e := wide.AppendColumn(c, false); e != nil {
				return nil, e
			}
		}

		order = append(order, ind.Short)
	}

	return wide.KeepColumns(order...)
}

// BuildDataset left-joins the wide economic table with the composite indices and
// renames the country code for formula compatibility.  One row per (country, year).
func BuildDataset(f50 *frame.Frame) (*frame.Frame, error) {
	esgWide, e := BuildESGIndices(f50)
	if e != nil {
		return nil, e
	}

	econWide, ex := BuildEconWide(f50)
	if ex != nil {
		return nil, ex
	}

	reg, exx := frame.LeftJoin(econWide, esgWide, panel.ColName, panel.ColCode, panel.ColYear)
	if exx != nil {
		return nil, exx
	}

	if e := reg.Sort(panel.ColCode, panel.ColYear); e != nil {
		return nil, e
	}

	if e := reg.Rename(panel.ColCode, ColCountryCode); e != nil {
		return nil, e
	}

	return reg, nil
}
