package panel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/invertedv/esgpanel/frame"
)

const (
	colSeriesName = "Series Name"
	colSeriesCode = "Series Code"
)

// Source labels stamped on the long rows.
const (
	SourceESG      = "ESG"
	SourceEconomic = "Economic"
)

// yearColumns returns the wide columns holding one year each.  The raw exports embed
// the year in brackets, e.g. "2015 [YR2015]".
func yearColumns(f *frame.Frame) []string {
	var cols []string
	for _, nm := range f.ColumnNames() {
		if strings.Contains(nm, "[") {
			cols = append(cols, nm)
		}
	}

	return cols
}

// cleanWide reshapes a raw wide table to long form: one row per (country, indicator,
// year), with the indicator categorized and the source stamped.  Rows with an empty
// indicator name are dropped.
func cleanWide(raw *frame.Frame, categorize func(string) string, source string) (*frame.Frame, error) {
	w := raw.Copy()
	if w.HasColumn(colSeriesCode) {
		if e := w.DropColumns(colSeriesCode); e != nil {
			return nil, e
		}
	}

	yearCols := yearColumns(w)
	if yearCols == nil {
		return nil, fmt.Errorf("no year columns in %s source", source)
	}

	long, e := frame.Melt(w, []string{ColName, ColCode, colSeriesName}, yearCols, ColYear, ColValue)
	if e != nil {
		return nil, e
	}

	if e := long.Rename(colSeriesName, ColIndicator); e != nil {
		return nil, e
	}

	// the leading 4 digits of the year header are the year
	yc, _ := long.Column(ColYear)
	headers, _ := yc.Strings()
	years := make([]int, len(headers))
	for ind, h := range headers {
		h = strings.TrimSpace(h)
		if len(h) < 4 {
			return nil, fmt.Errorf("cannot parse year from column %q", h)
		}

		y, ex := strconv.Atoi(h[:4])
		if ex != nil {
			return nil, fmt.Errorf("cannot parse year from column %q", h)
		}

		years[ind] = y
	}

	yInt, _ := frame.NewCol(ColYear, years)
	if e := long.AppendColumn(yInt, true); e != nil {
		return nil, e
	}

	ic, _ := long.Column(ColIndicator)
	names, _ := ic.Strings()
	cats := make([]string, len(names))
	for ind, nm := range names {
		cats[ind] = categorize(nm)
	}

	cCol, _ := frame.NewCol(ColCategory, cats)
	if e := long.AppendColumn(cCol, false); e != nil {
		return nil, e
	}

	srcCol, _ := frame.Constant(ColSource, source, long.RowCount())
	if e := long.AppendColumn(srcCol, false); e != nil {
		return nil, e
	}

	out := long.Filter(func(row int) bool { return names[row] != "" })

	return out, nil
}

// CleanESG reshapes the raw ESG wide table to long form.
func CleanESG(raw *frame.Frame) (*frame.Frame, error) {
	return cleanWide(raw, AssignCategory, SourceESG)
}

// CleanEconomic reshapes the raw economic-indicator wide table to long form.
func CleanEconomic(raw *frame.Frame) (*frame.Frame, error) {
	return cleanWide(raw, AssignEconomicCategory, SourceEconomic)
}
