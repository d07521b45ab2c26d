package panel

import (
	"fmt"

	"github.com/invertedv/esgpanel/frame"
	"github.com/xuri/excelize/v2"
)

// raw classification column headers
const (
	classEconomy = "Economy"
	classCode    = "Code"
	classIncome  = "Income group"
)

// LoadClassification reads the first sheet of the classification workbook into an
// all-string frame, first row as header.
func LoadClassification(fileName string) (*frame.Frame, error) {
	wb, e := excelize.OpenFile(fileName)
	if e != nil {
		return nil, fmt.Errorf("opening %s: %w", fileName, e)
	}
	defer func() { _ = wb.Close() }()

	sheet := wb.GetSheetName(0)
	rows, ex := wb.GetRows(sheet)
	if ex != nil {
		return nil, fmt.Errorf("reading sheet %s of %s: %w", sheet, fileName, ex)
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("classification sheet %s has no data rows", sheet)
	}

	header := rows[0]
	body := rows[1:]

	var cols []*frame.Col
	for ind, nm := range header {
		cells := make([]string, len(body))
		for row, rec := range body {
			if ind < len(rec) {
				cells[row] = rec[ind]
			}
		}

		c, exx := frame.NewCol(nm, cells)
		if exx != nil {
			return nil, exx
		}

		cols = append(cols, c)
	}

	return frame.NewFrame(cols...)
}

// PrepareClassification renames the classification columns to the shared panel schema
// and keeps only code, name, region and income group.
func PrepareClassification(raw *frame.Frame) (*frame.Frame, error) {
	w := raw.Copy()

	renames := [][2]string{
		{classEconomy, ColName},
		{classCode, ColCode},
		{classIncome, ColIncome},
	}
	for _, r := range renames {
		if e := w.Rename(r[0], r[1]); e != nil {
			return nil, fmt.Errorf("classification table: %w", e)
		}
	}

	return w.KeepColumns(ColCode, ColName, ColRegion, ColIncome)
}
