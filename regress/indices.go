package regress

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/invertedv/esgpanel/frame"
	"github.com/invertedv/esgpanel/panel"
)

const (
	colZ        = "value_z"
	colCategory = "ESG_category"
)

// zScores standardizes x to sample mean 0, sample (n-1) variance 1, skipping NaNs.
// A constant or single-observation population yields NaN.
func zScores(x []float64) []float64 {
	var obs []float64
	for _, v := range x {
		if !math.IsNaN(v) {
			obs = append(obs, v)
		}
	}

	z := make([]float64, len(x))
	if len(obs) < 2 {
		for ind := range z {
			z[ind] = math.NaN()
		}

		return z
	}

	mean, sd := stat.MeanStdDev(obs, nil)

	for ind, v := range x {
		if math.IsNaN(v) || sd == 0 || math.IsNaN(sd) {
			z[ind] = math.NaN()
			continue
		}

		z[ind] = (v - mean) / sd
	}

	return z
}

// BuildESGIndices builds one row per (country name, code, year) with the three
// composite indices.  Each recognized indicator is direction-corrected, z-scored
// across the whole filtered population (all countries and years pooled), and the
// z-scores are averaged within each category.
func BuildESGIndices(f50 *frame.Frame) (*frame.Frame, error) {
	indCol, e := f50.Column(panel.ColIndicator)
	if e != nil {
		return nil, e
	}

	names, ex := indCol.Strings()
	if ex != nil {
		return nil, ex
	}

	esg := f50.Filter(func(row int) bool {
		_, ok := ESGMap[names[row]]
		return ok
	})

	valCol, exx := esg.Column(panel.ColValue)
	if exx != nil {
		return nil, exx
	}

	vals, _ := valCol.ToFloat().Float64s()

	esgNamesCol, _ := esg.Column(panel.ColIndicator)
	esgNames, _ := esgNamesCol.Strings()

	signed := make([]float64, esg.RowCount())
	cats := make([]string, esg.RowCount())
	for row := range signed {
		m := ESGMap[esgNames[row]]
		signed[row] = vals[row] * m.Direction
		cats[row] = m.Category
	}

	// z-score within each indicator, across the whole population
	z := make([]float64, len(signed))
	byIndicator := make(map[string][]int)
	for row, nm := range esgNames {
		byIndicator[nm] = append(byIndicator[nm], row)
	}
	for _, rows := range byIndicator {
		x := make([]float64, len(rows))
		for ind, r := range rows {
			x[ind] = signed[r]
		}

		zx := zScores(x)
		for ind, r := range rows {
			z[r] = zx[ind]
		}
	}

	zCol, _ := frame.NewCol(colZ, z)
	if e := esg.AppendColumn(zCol, false); e != nil {
		return nil, e
	}

	catCol, _ := frame.NewCol(colCategory, cats)
	if e := esg.AppendColumn(catCol, false); e != nil {
		return nil, e
	}

	keys := []string{panel.ColName, panel.ColCode, panel.ColYear, colCategory}
	agg, e1 := frame.ByMean(esg, keys, colZ)
	if e1 != nil {
		return nil, e1
	}

	wide, e2 := frame.Pivot(agg, []string{panel.ColName, panel.ColCode, panel.ColYear}, colCategory, colZ)
	if e2 != nil {
		return nil, e2
	}

	// a category absent from the data still gets a (missing) index column
	for cat, nm := range map[string]string{CatE: ColENV, CatS: ColSOC, CatG: ColGOV} {
		if wide.HasColumn(cat) {
			if e := wide.Rename(cat, nm); e != nil {
				return nil, e
			}
			continue
		}

		nan := make([]float64, wide.RowCount())
		for ind := range nan {
			nan[ind] = math.NaN()
		}

		c, _ := frame.NewCol(nm, nan)
		if e := wide.AppendColumn(c, false); e != nil {
			return nil, e
		}
	}

	out, e3 := wide.KeepColumns(panel.ColName, panel.ColCode, panel.ColYear, ColENV, ColSOC, ColGOV)
	if e3 != nil {
		return nil, e3
	}

	if e := out.Sort(panel.ColCode, panel.ColYear); e != nil {
		return nil, e
	}

	return out, nil
}
