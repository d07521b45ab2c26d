// Package frame implements the small in-memory columnar tables the pipeline runs on.
// A Frame is an ordered set of equal-length typed columns.  Float NaN and the empty
// string are the missing-value markers.
package frame

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DataTypes are the column types the package supports
type DataTypes uint8

const (
	DTunknown DataTypes = iota
	DTstring
	DTfloat
	DTint
)

func (dt DataTypes) String() string {
	switch dt {
	case DTstring:
		return "string"
	case DTfloat:
		return "float"
	case DTint:
		return "int"
	}

	return "unknown"
}

// Col is a named column.  data is one of []float64, []int, []string.
type Col struct {
	name  string
	dType DataTypes
	data  any
}

func NewCol(name string, data any) (*Col, error) {
	c := &Col{name: name}

	switch data.(type) {
	case []float64:
		c.dType = DTfloat
	case []int:
		c.dType = DTint
	case []string:
		c.dType = DTstring
	default:
		return nil, fmt.Errorf("unsupported data type for column %s", name)
	}

	c.data = data

	return c, nil
}

// Name returns the column name.  A non-empty renameTo renames the column first.
func (c *Col) Name(renameTo string) string {
	if renameTo != "" {
		c.name = renameTo
	}

	return c.name
}

func (c *Col) DataType() DataTypes {
	return c.dType
}

func (c *Col) Len() int {
	switch x := c.data.(type) {
	case []float64:
		return len(x)
	case []int:
		return len(x)
	case []string:
		return len(x)
	}

	return 0
}

func (c *Col) Data() any {
	return c.data
}

// Element returns the value at row as any; nil if row is out of range.
func (c *Col) Element(row int) any {
	if row < 0 || row >= c.Len() {
		return nil
	}

	switch x := c.data.(type) {
	case []float64:
		return x[row]
	case []int:
		return x[row]
	case []string:
		return x[row]
	}

	return nil
}

// ElementString renders the value at row; float NaN renders as the empty string.
func (c *Col) ElementString(row int) string {
	switch x := c.data.(type) {
	case []float64:
		if math.IsNaN(x[row]) {
			return ""
		}

		return strconv.FormatFloat(x[row], 'g', -1, 64)
	case []int:
		return strconv.Itoa(x[row])
	case []string:
		return x[row]
	}

	return ""
}

// Float64s returns the data as []float64
func (c *Col) Float64s() ([]float64, error) {
	if x, ok := c.data.([]float64); ok {
		return x, nil
	}

	return nil, fmt.Errorf("column %s is not float", c.name)
}

// Ints returns the data as []int
func (c *Col) Ints() ([]int, error) {
	if x, ok := c.data.([]int); ok {
		return x, nil
	}

	return nil, fmt.Errorf("column %s is not int", c.name)
}

// Strings returns the data as []string
func (c *Col) Strings() ([]string, error) {
	if x, ok := c.data.([]string); ok {
		return x, nil
	}

	return nil, fmt.Errorf("column %s is not string", c.name)
}

func (c *Col) Copy() *Col {
	out := &Col{name: c.name, dType: c.dType}

	switch x := c.data.(type) {
	case []float64:
		d := make([]float64, len(x))
		copy(d, x)
		out.data = d
	case []int:
		d := make([]int, len(x))
		copy(d, x)
		out.data = d
	case []string:
		d := make([]string, len(x))
		copy(d, x)
		out.data = d
	}

	return out
}

// Take returns a new column holding the rows of c given by rows, in order.
func (c *Col) Take(rows []int) *Col {
	out := &Col{name: c.name, dType: c.dType}

	switch x := c.data.(type) {
	case []float64:
		d := make([]float64, len(rows))
		for ind, r := range rows {
			d[ind] = x[r]
		}
		out.data = d
	case []int:
		d := make([]int, len(rows))
		for ind, r := range rows {
			d[ind] = x[r]
		}
		out.data = d
	case []string:
		d := make([]string, len(rows))
		for ind, r := range rows {
			d[ind] = x[r]
		}
		out.data = d
	}

	return out
}

// AppendRows appends the rows of c2 to c.  The types must agree.
func (c *Col) AppendRows(c2 *Col) (*Col, error) {
	if c.dType != c2.dType {
		return nil, fmt.Errorf("cannot append %s column to %s column %s", c2.dType, c.dType, c.name)
	}

	out := c.Copy()
	switch x := out.data.(type) {
	case []float64:
		out.data = append(x, c2.data.([]float64)...)
	case []int:
		out.data = append(x, c2.data.([]int)...)
	case []string:
		out.data = append(x, c2.data.([]string)...)
	}

	return out, nil
}

// Less compares rows i and j of c.  NaNs compare as not-less.
func (c *Col) Less(i, j int) bool {
	switch x := c.data.(type) {
	case []float64:
		return x[i] < x[j]
	case []int:
		return x[i] < x[j]
	case []string:
		return x[i] < x[j]
	}

	return false
}

// ToFloat coerces c to a float column.  String cells that do not parse become NaN.
func (c *Col) ToFloat() *Col {
	out := &Col{name: c.name, dType: DTfloat}

	switch x := c.data.(type) {
	case []float64:
		d := make([]float64, len(x))
		copy(d, x)
		out.data = d
	case []int:
		d := make([]float64, len(x))
		for ind, v := range x {
			d[ind] = float64(v)
		}
		out.data = d
	case []string:
		d := make([]float64, len(x))
		for ind, v := range x {
			f, e := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if e != nil {
				f = math.NaN()
			}
			d[ind] = f
		}
		out.data = d
	}

	return out
}

// Constant builds a column of length n repeating a single value.
func Constant(name string, value any, n int) (*Col, error) {
	switch v := value.(type) {
	case float64:
		d := make([]float64, n)
		for ind := range d {
			d[ind] = v
		}
		return NewCol(name, d)
	case int:
		d := make([]int, n)
		for ind := range d {
			d[ind] = v
		}
		return NewCol(name, d)
	case string:
		d := make([]string, n)
		for ind := range d {
			d[ind] = v
		}
		return NewCol(name, d)
	}

	return nil, fmt.Errorf("unsupported constant type for column %s", name)
}
