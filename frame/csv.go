package frame

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// All code interacting with files is here

const (
	Sep         = ','
	EOL         = '\n'
	FloatFormat = "%v"
	Header      = true
)

// Files writes a frame to a delimited file.
type Files struct {
	FieldNames  []string
	EOL         byte
	Sep         byte
	FloatFormat string
	Header      bool

	file     *os.File
	fileName string
}

func NewFiles() *Files {
	return &Files{
		EOL:         byte(EOL),
		Sep:         byte(Sep),
		FloatFormat: FloatFormat,
		Header:      Header,
	}
}

func (f *Files) Create(fileName string) error {
	var e error
	f.fileName = fileName
	f.file, e = os.Create(fileName)

	return e
}

func (f *Files) FileName() string {
	return f.fileName
}

func (f *Files) Close() error {
	if f.file == nil {
		return fmt.Errorf("no open files")
	}

	return f.file.Close()
}

func (f *Files) WriteHeader() error {
	if !f.Header {
		return nil
	}

	if f.FieldNames == nil {
		return fmt.Errorf("field names not set in *Files")
	}

	_, e := f.file.WriteString(strings.Join(f.FieldNames, string(rune(f.Sep))) + string(rune(f.EOL)))

	return e
}

// quote wraps a field in double quotes when it contains the separator or a quote.
func (f *Files) quote(s string) string {
	if strings.ContainsRune(s, rune(f.Sep)) || strings.Contains(s, `"`) {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}

	return s
}

func (f *Files) WriteLine(v []any) error {
	var line []byte
	for ind := 0; ind < len(v); ind++ {
		var lx []byte
		switch d := v[ind].(type) {
		case float64:
			if !math.IsNaN(d) {
				lx = []byte(fmt.Sprintf(f.FloatFormat, d))
			}
		case int:
			lx = []byte(strconv.Itoa(d))
		case string:
			lx = []byte(f.quote(d))
		default:
			lx = []byte("#err#")
		}
		line = append(line, lx...)
		if ind < len(v)-1 {
			line = append(line, f.Sep)
		}
	}
	if _, e := f.file.Write(line); e != nil {
		return e
	}
	_, e := f.file.Write([]byte{f.EOL})

	return e
}

// WriteCSV saves f to fileName, header first, NaN as the empty field.
func WriteCSV(f *Frame, fileName string) error {
	w := NewFiles()
	w.FieldNames = f.ColumnNames()

	if e := w.Create(fileName); e != nil {
		return fmt.Errorf("creating %s: %w", fileName, e)
	}
	defer func() { _ = w.Close() }()

	if e := w.WriteHeader(); e != nil {
		return e
	}

	for row := 0; row < f.RowCount(); row++ {
		v := make([]any, f.ColumnCount())
		for ind, c := range f.cols {
			v[ind] = c.Element(row)
		}

		if e := w.WriteLine(v); e != nil {
			return e
		}
	}

	return nil
}

// inferCol types a column of raw cells: int if every non-empty cell is an integer and
// none is empty, float if every non-empty cell is numeric (empty -> NaN), else string.
func inferCol(name string, cells []string) *Col {
	isInt, isFloat := true, true
	for _, s := range cells {
		s = strings.TrimSpace(s)
		if s == "" {
			isInt = false
			continue
		}

		if _, e := strconv.Atoi(s); e != nil {
			isInt = false
		}

		if _, e := strconv.ParseFloat(s, 64); e != nil {
			isInt, isFloat = false, false
			break
		}
	}

	switch {
	case isInt && len(cells) > 0:
		d := make([]int, len(cells))
		for ind, s := range cells {
			d[ind], _ = strconv.Atoi(strings.TrimSpace(s))
		}
		c, _ := NewCol(name, d)
		return c
	case isFloat && len(cells) > 0:
		d := make([]float64, len(cells))
		for ind, s := range cells {
			s = strings.TrimSpace(s)
			if s == "" {
				d[ind] = math.NaN()
				continue
			}
			d[ind], _ = strconv.ParseFloat(s, 64)
		}
		c, _ := NewCol(name, d)
		return c
	default:
		d := make([]string, len(cells))
		copy(d, cells)
		c, _ := NewCol(name, d)
		return c
	}
}

// ReadCSV loads a delimited file into a frame.  The first record is the header.
// Column types are inferred: int, then float (empty cells become NaN), else string.
func ReadCSV(fileName string) (*Frame, error) {
	file, e := os.Open(fileName)
	if e != nil {
		return nil, fmt.Errorf("opening %s: %w", fileName, e)
	}
	defer func() { _ = file.Close() }()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	recs, ex := r.ReadAll()
	if ex != nil {
		return nil, fmt.Errorf("reading %s: %w", fileName, ex)
	}

	if len(recs) < 1 {
		return nil, fmt.Errorf("%s is empty", fileName)
	}

	header := recs[0]
	body := recs[1:]

	var cols []*Col
	for ind, nm := range header {
		cells := make([]string, len(body))
		for row, rec := range body {
			if ind < len(rec) {
				cells[row] = rec[ind]
			}
		}

		cols = append(cols, inferCol(nm, cells))
	}

	return NewFrame(cols...)
}
