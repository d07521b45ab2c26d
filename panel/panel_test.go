package panel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/invertedv/esgpanel/frame"
)

func TestAssignCategory(t *testing.T) {
	cases := []struct{ name, category string }{
		{"CO2 emissions (metric tons per capita)", Environmental},
		{"Fossil fuel energy consumption (% of total)", Environmental},
		{"Renewable energy consumption (% of total final energy consumption)", Environmental},
		{"Methane emissions (metric tons of CO2 equivalent per capita)", Environmental},
		{"Nitrous oxide emissions (metric tons of CO2 equivalent per capita)", Environmental},
		{"Unemployment, total (% of total labor force) (modeled ILO estimate)", Social},
		{"Gini index", Social},
		{"Economic and Social Rights Performance Score", Social},
		{"Control of Corruption: Estimate", Governance},
		{"Political Stability and Absence of Violence/Terrorism: Estimate", Governance},
		{"GDP growth (annual %)", Economic},
		{"Research and development expenditure (% of GDP)", Economic},
		{"Patents granted", Other},
	}

	for _, c := range cases {
		assert.Equal(t, c.category, AssignCategory(c.name), c.name)
	}
}

func TestAssignCategory_precedence(t *testing.T) {
	// the environmental rule fires before the economic one
	assert.Equal(t, Environmental, AssignCategory("Renewable share of GDP"))
	// governance fires before gdp
	assert.Equal(t, Governance, AssignCategory("Corruption cost (% of GDP)"))
}

func TestAssignEconomicCategory(t *testing.T) {
	assert.Equal(t, Economic, AssignEconomicCategory("GDP per capita (constant 2015 US$)"))
	assert.Equal(t, Economic, AssignEconomicCategory("Inflation, consumer prices (annual %)"))
	assert.Equal(t, Economic, AssignEconomicCategory("Foreign direct investment, net inflows (% of GDP)"))
	assert.Equal(t, Economic, AssignEconomicCategory("Research and development expenditure (% of GDP)"))
	assert.Equal(t, Other, AssignEconomicCategory("Gini index"))
}

func rawESG() *frame.Frame {
	name, _ := frame.NewCol(ColName, []string{"Chile", "Chile", "Peru"})
	code, _ := frame.NewCol(ColCode, []string{"CHL", "CHL", "PER"})
	series, _ := frame.NewCol(colSeriesName, []string{"Gini index", "CO2 emissions (metric tons per capita)", ""})
	sCode, _ := frame.NewCol(colSeriesCode, []string{"SI.POV.GINI", "EN.ATM.CO2E.PC", ""})
	y20, _ := frame.NewCol("2020 [YR2020]", []string{"44.9", "4.3", ".."})
	y21, _ := frame.NewCol("2021 [YR2021]", []string{"..", "4.5", ".."})
	f, _ := frame.NewFrame(name, code, series, sCode, y20, y21)

	return f
}

func TestCleanESG(t *testing.T) {
	long, e := CleanESG(rawESG())
	assert.Nil(t, e)

	// 3 raw rows x 2 year columns, minus 2 rows for the empty indicator
	assert.Equal(t, 4, long.RowCount())
	assert.False(t, long.HasColumn(colSeriesCode))

	yr, _ := long.Column(ColYear)
	assert.Equal(t, frame.DTint, yr.DataType())
	years, _ := yr.Ints()
	assert.ElementsMatch(t, []int{2020, 2020, 2021, 2021}, years)

	cat, _ := long.Column(ColCategory)
	ind, _ := long.Column(ColIndicator)
	for row := 0; row < long.RowCount(); row++ {
		want := Social
		if ind.Element(row) == "CO2 emissions (metric tons per capita)" {
			want = Environmental
		}
		assert.Equal(t, want, cat.Element(row))
	}

	src, _ := long.Column(ColSource)
	assert.Equal(t, SourceESG, src.Element(0))
}

func TestCleanESG_badYearHeader(t *testing.T) {
	name, _ := frame.NewCol(ColName, []string{"Chile"})
	code, _ := frame.NewCol(ColCode, []string{"CHL"})
	series, _ := frame.NewCol(colSeriesName, []string{"Gini index"})
	bad, _ := frame.NewCol("x [?]", []string{"1"})
	f, _ := frame.NewFrame(name, code, series, bad)

	_, e := CleanESG(f)
	assert.NotNil(t, e)
}

func classFrame() *frame.Frame {
	econ, _ := frame.NewCol(classEconomy, []string{"Chile", "Peru"})
	code, _ := frame.NewCol(classCode, []string{"CHL", "PER"})
	region, _ := frame.NewCol(ColRegion, []string{"Latin America & Caribbean", "Latin America & Caribbean"})
	income, _ := frame.NewCol(classIncome, []string{"High income", "Upper middle income"})
	lending, _ := frame.NewCol("Lending category", []string{"IBRD", "IBRD"})
	f, _ := frame.NewFrame(econ, code, region, income, lending)

	return f
}

func TestPrepareClassification(t *testing.T) {
	class, e := PrepareClassification(classFrame())
	assert.Nil(t, e)
	assert.Equal(t, []string{ColCode, ColName, ColRegion, ColIncome}, class.ColumnNames())
	assert.Equal(t, 2, class.RowCount())
}

func TestMergeToPanel(t *testing.T) {
	esgLong, e := CleanESG(rawESG())
	assert.Nil(t, e)

	// a one-row economic stream
	name, _ := frame.NewCol(ColName, []string{"Chile"})
	code, _ := frame.NewCol(ColCode, []string{"CHL"})
	series, _ := frame.NewCol(colSeriesName, []string{"GDP growth (annual %)"})
	y20, _ := frame.NewCol("2020 [YR2020]", []string{"-6.1"})
	raw, _ := frame.NewFrame(name, code, series, y20)

	econLong, ex := CleanEconomic(raw)
	assert.Nil(t, ex)

	class, exx := PrepareClassification(classFrame())
	assert.Nil(t, exx)

	full, exxx := MergeToPanel(esgLong, econLong, class)
	assert.Nil(t, exxx)

	assert.Equal(t, panelCols, full.ColumnNames())
	assert.Equal(t, 5, full.RowCount())

	// classification joined by code; the long rows keep their own country name
	reg, _ := full.Column(ColRegion)
	assert.Equal(t, "Latin America & Caribbean", reg.Element(0))

	// ".." placeholders coerce to NaN
	v, _ := full.Column(ColValue)
	assert.Equal(t, frame.DTfloat, v.DataType())
	vals, _ := v.Float64s()
	nNaN := 0
	for _, x := range vals {
		if math.IsNaN(x) {
			nNaN++
		}
	}
	assert.Equal(t, 1, nNaN)

	// sorted by code, year, category
	codes, _ := full.Column(ColCode)
	assert.Equal(t, "CHL", codes.Element(0))
}

func TestMergeToPanel_numericOnlyStream(t *testing.T) {
	esgLong, e := CleanESG(rawESG())
	assert.Nil(t, e)

	// a source with no missing cells melts to a float Value column
	name, _ := frame.NewCol(ColName, []string{"Chile", "Peru"})
	code, _ := frame.NewCol(ColCode, []string{"CHL", "PER"})
	series, _ := frame.NewCol(colSeriesName, []string{"GDP growth (annual %)", "GDP growth (annual %)"})
	y20, _ := frame.NewCol("2020 [YR2020]", []float64{-6.1, -11.0})
	raw, _ := frame.NewFrame(name, code, series, y20)

	econLong, ex := CleanEconomic(raw)
	assert.Nil(t, ex)

	ev, _ := econLong.Column(ColValue)
	assert.Equal(t, frame.DTfloat, ev.DataType())

	class, exx := PrepareClassification(classFrame())
	assert.Nil(t, exx)

	full, exxx := MergeToPanel(esgLong, econLong, class)
	assert.Nil(t, exxx)
	assert.Equal(t, 6, full.RowCount())

	v, _ := full.Column(ColValue)
	assert.Equal(t, frame.DTfloat, v.DataType())
}
