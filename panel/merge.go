package panel

import (
	"github.com/invertedv/esgpanel/frame"
)

// commonCols is the shared long schema both source streams are aligned to before
// concatenation.
var commonCols = []string{ColName, ColCode, ColIndicator, ColYear, ColValue, ColCategory, ColSource}

// panelCols is the column order of the persisted panel.
var panelCols = append(append([]string{}, commonCols...), ColRegion, ColIncome)

// MergeToPanel coerces each stream's Value to numeric (non-numeric placeholders become
// NaN), concatenates the two long streams, sorts them and joins the country
// classification by country code; the long rows keep their own country name.
func MergeToPanel(esgLong, econLong, class *frame.Frame) (*frame.Frame, error) {
	a, e := esgLong.KeepColumns(commonCols...)
	if e != nil {
		return nil, e
	}

	b, ex := econLong.KeepColumns(commonCols...)
	if ex != nil {
		return nil, ex
	}

	// Melt types Value per stream -- float when every cell is numeric, string when any
	// is a placeholder -- so unify before concatenating
	for _, s := range []*frame.Frame{a, b} {
		v, e1 := s.Column(ColValue)
		if e1 != nil {
			return nil, e1
		}

		if e1 := s.AppendColumn(v.ToFloat(), true); e1 != nil {
			return nil, e1
		}
	}

	all, exx := a.Append(b)
	if exx != nil {
		return nil, exx
	}

	if e := all.Sort(ColCode, ColYear, ColCategory); e != nil {
		return nil, e
	}

	out, exxx := frame.LeftJoin(all, class, ColCode)
	if exxx != nil {
		return nil, exxx
	}

	return out.KeepColumns(panelCols...)
}
