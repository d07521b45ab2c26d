package regress

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/invertedv/esgpanel/frame"
	"github.com/invertedv/esgpanel/panel"
)

// PlotIndices draws the yearly cross-country mean of each composite index as a line
// chart and saves it to fileName.  f is any frame holding Year and the three index
// columns, e.g. the regression dataset.
func PlotIndices(f *frame.Frame, fileName string) error {
	means, e := frame.ByMean(f, []string{panel.ColYear}, ColENV, ColSOC, ColGOV)
	if e != nil {
		return e
	}

	if e := means.Sort(panel.ColYear); e != nil {
		return e
	}

	yc, _ := means.Column(panel.ColYear)
	years, ex := yc.ToFloat().Float64s()
	if ex != nil {
		return ex
	}

	p := plot.New()
	p.Title.Text = "Composite ESG indices, sample mean by year"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Index (z-score units)"
	p.Add(plotter.NewGrid())

	var args []any
	for _, nm := range []string{ColENV, ColSOC, ColGOV} {
		c, exx := means.Column(nm)
		if exx != nil {
			return exx
		}

		vals, _ := c.Float64s()

		var xys plotter.XYs
		for ind, v := range vals {
			if math.IsNaN(v) {
				continue
			}
			xys = append(xys, plotter.XY{X: years[ind], Y: v})
		}

		sort.Slice(xys, func(i, j int) bool { return xys[i].X < xys[j].X })
		args = append(args, nm, xys)
	}

	if e := plotutil.AddLinePoints(p, args...); e != nil {
		return fmt.Errorf("plotting indices: %w", e)
	}

	if e := p.Save(8*vg.Inch, 5*vg.Inch, fileName); e != nil {
		return fmt.Errorf("saving %s: %w", fileName, e)
	}

	return nil
}
