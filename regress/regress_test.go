package regress

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"

	"github.com/invertedv/esgpanel/frame"
	"github.com/invertedv/esgpanel/panel"
)

func TestZScores(t *testing.T) {
	z := zScores([]float64{1, 2, 3, 4, 5, 6})

	// sample mean 0, sample sd 1
	mean, m2 := 0.0, 0.0
	for _, v := range z {
		mean += v
	}
	mean /= float64(len(z))
	for _, v := range z {
		m2 += (v - mean) * (v - mean)
	}
	sd := math.Sqrt(m2 / float64(len(z)-1))

	assert.InDelta(t, 0, mean, 1e-12)
	assert.InDelta(t, 1, sd, 1e-12)
}

func TestZScores_missingAndConstant(t *testing.T) {
	z := zScores([]float64{1, math.NaN(), 3})
	assert.True(t, math.IsNaN(z[1]))
	// NaN excluded from the reference population: mean 2, sd sqrt(2)
	assert.InDelta(t, -1/math.Sqrt2, z[0], 1e-12)

	for _, v := range zScores([]float64{2, 2, 2}) {
		assert.True(t, math.IsNaN(v))
	}

	for _, v := range zScores([]float64{5}) {
		assert.True(t, math.IsNaN(v))
	}
}

// panelRows builds a frame shaped like the 50-country panel.
func panelRows(names, codes, indicators []string, years []int, values []float64) *frame.Frame {
	n := len(values)

	cats := make([]string, n)
	srcs := make([]string, n)
	regions := make([]string, n)
	incomes := make([]string, n)
	for ind := range cats {
		cats[ind] = panel.AssignCategory(indicators[ind])
		srcs[ind] = panel.SourceESG
		regions[ind] = "Somewhere"
		incomes[ind] = "High income"
	}

	nm, _ := frame.NewCol(panel.ColName, names)
	cd, _ := frame.NewCol(panel.ColCode, codes)
	in, _ := frame.NewCol(panel.ColIndicator, indicators)
	yr, _ := frame.NewCol(panel.ColYear, years)
	vl, _ := frame.NewCol(panel.ColValue, values)
	ct, _ := frame.NewCol(panel.ColCategory, cats)
	sc, _ := frame.NewCol(panel.ColSource, srcs)
	rg, _ := frame.NewCol(panel.ColRegion, regions)
	ic, _ := frame.NewCol(panel.ColIncome, incomes)

	f, e := frame.NewFrame(nm, cd, in, yr, vl, ct, sc, rg, ic)
	if e != nil {
		panic(e)
	}

	return f
}

// three countries, two years, one indicator per category plus a second environmental
// indicator observed twice; all values chosen so the z-scores are hand-computable.
func testPanel50() *frame.Frame {
	var names, codes, indicators []string
	var years []int
	var values []float64

	countries := []struct{ name, code string }{{"Alandia", "AAA"}, {"Borduria", "BBB"}, {"Cordova", "CCC"}}

	co2 := "CO2 emissions (metric tons per capita)"
	gini := "Gini index"
	corr := "Control of Corruption: Estimate"
	renew := "Renewable energy consumption (% of total final energy consumption)"

	v := 0.0
	for _, c := range countries {
		for _, y := range []int{2020, 2021} {
			v++
			names = append(names, c.name, c.name, c.name)
			codes = append(codes, c.code, c.code, c.code)
			indicators = append(indicators, co2, gini, corr)
			years = append(years, y, y, y)
			values = append(values, v, 10*v, v/10)
		}
	}

	// renewables observed for Alandia and Borduria in 2020 only
	names = append(names, "Alandia", "Borduria")
	codes = append(codes, "AAA", "BBB")
	indicators = append(indicators, renew, renew)
	years = append(years, 2020, 2020)
	values = append(values, 30, 50)

	return panelRows(names, codes, indicators, years, values)
}

func TestBuildESGIndices(t *testing.T) {
	wide, e := BuildESGIndices(testPanel50())
	assert.Nil(t, e)

	// one row per (country, year), sorted by code then year
	assert.Equal(t, 6, wide.RowCount())
	cd, _ := wide.Column(panel.ColCode)
	yr, _ := wide.Column(panel.ColYear)
	assert.Equal(t, "AAA", cd.Element(0))
	assert.Equal(t, 2020, yr.Element(0))
	assert.Equal(t, "CCC", cd.Element(5))

	env, _ := wide.Column(ColENV)
	soc, _ := wide.Column(ColSOC)
	gov, _ := wide.Column(ColGOV)

	// CO2 values 1..6, direction -1: signed -1..-6, mean -3.5, sd sqrt(3.5)
	zCO2A20 := 2.5 / math.Sqrt(3.5)
	// renewables 30,50, direction +1: mean 40, sd sqrt(200)
	zRenA20 := -10 / math.Sqrt(200)

	// Alandia 2020: ENV averages the two environmental z-scores
	assert.InDelta(t, (zCO2A20+zRenA20)/2, env.Element(0).(float64), 1e-10)

	// Gini 10..60, direction -1: mirror of the CO2 pattern
	assert.InDelta(t, 25.0/math.Sqrt(350), soc.Element(0).(float64), 1e-10)

	// corruption 0.1..0.6, direction +1: worst score standardizes lowest
	assert.InDelta(t, -0.25/math.Sqrt(0.035), gov.Element(0).(float64), 1e-10)

	// Cordova 2021 has only one environmental indicator: ENV is its own z-score
	zCO2C21 := -2.5 / math.Sqrt(3.5)
	assert.InDelta(t, zCO2C21, env.Element(5).(float64), 1e-10)
}

func TestBuildESGIndices_missingCategory(t *testing.T) {
	// only environmental indicators observed
	f := panelRows(
		[]string{"Alandia", "Borduria"},
		[]string{"AAA", "BBB"},
		[]string{"CO2 emissions (metric tons per capita)", "CO2 emissions (metric tons per capita)"},
		[]int{2020, 2020},
		[]float64{1, 2})

	wide, e := BuildESGIndices(f)
	assert.Nil(t, e)

	soc, _ := wide.Column(ColSOC)
	gov, _ := wide.Column(ColGOV)
	for row := 0; row < wide.RowCount(); row++ {
		// a missing category yields a missing index, not zero
		assert.True(t, math.IsNaN(soc.Element(row).(float64)))
		assert.True(t, math.IsNaN(gov.Element(row).(float64)))
	}
}

func econPanel() *frame.Frame {
	gdp := "GDP growth (annual %)"
	inf := "Inflation, consumer prices (annual %)"

	// duplicate (Alandia, 2020, gdp) rows average to 2.0
	return panelRows(
		[]string{"Alandia", "Alandia", "Alandia", "Borduria"},
		[]string{"AAA", "AAA", "AAA", "BBB"},
		[]string{gdp, gdp, inf, gdp},
		[]int{2020, 2020, 2020, 2020},
		[]float64{1, 3, 7, 4})
}

func TestBuildEconWide(t *testing.T) {
	wide, e := BuildEconWide(econPanel())
	assert.Nil(t, e)

	assert.Equal(t, 2, wide.RowCount())
	for _, ind := range EconIndicators {
		assert.True(t, wide.HasColumn(ind.Short), ind.Short)
	}

	g, _ := wide.Column("gdp_growth")
	assert.Equal(t, 2.0, g.Element(0))
	assert.Equal(t, 4.0, g.Element(1))

	// indicators never observed are missing, not zero
	rd, _ := wide.Column("R&D_expenditure")
	assert.True(t, math.IsNaN(rd.Element(0).(float64)))
}

func TestBuildDataset(t *testing.T) {
	f50, e := testPanel50().Append(econPanel())
	assert.Nil(t, e)

	reg, ex := BuildDataset(f50)
	assert.Nil(t, ex)

	assert.True(t, reg.HasColumn(ColCountryCode))
	assert.False(t, reg.HasColumn(panel.ColCode))
	for _, nm := range []string{ColENV, ColSOC, ColGOV, "gdp_growth", panel.ColYear} {
		assert.True(t, reg.HasColumn(nm), nm)
	}

	// the join introduces no duplicate (country_code, Year) pairs
	u, exx := frame.Unique(reg, ColCountryCode, panel.ColYear)
	assert.Nil(t, exx)
	assert.Equal(t, reg.RowCount(), u.RowCount())
}

// fePanel builds a noise-free regression dataset obeying
// y = 2*ENV - SOC + 0.5*GOV + countryEff + yearEff exactly.
func fePanel() *frame.Frame {
	countries := []string{"AAA", "BBB", "CCC", "DDD"}
	years := []int{2018, 2019, 2020, 2021, 2022}
	countryEff := map[string]float64{"AAA": 1.0, "BBB": -0.5, "CCC": 2.0, "DDD": 0.25}
	yearEff := map[int]float64{2018: 0, 2019: 0.3, 2020: -1.1, 2021: 0.7, 2022: 0.2}

	var codes []string
	var yrs []int
	var env, soc, gov, y []float64

	i := 0.0
	for _, c := range countries {
		for _, yr := range years {
			i++
			e := math.Sin(i)
			s := math.Cos(2 * i)
			g := math.Sin(3*i + 1)

			codes = append(codes, c)
			yrs = append(yrs, yr)
			env = append(env, e)
			soc = append(soc, s)
			gov = append(gov, g)
			y = append(y, 2*e-s+0.5*g+countryEff[c]+yearEff[yr])
		}
	}

	cc, _ := frame.NewCol(ColCountryCode, codes)
	yc, _ := frame.NewCol(panel.ColYear, yrs)
	ec, _ := frame.NewCol(ColENV, env)
	sc, _ := frame.NewCol(ColSOC, soc)
	gc, _ := frame.NewCol(ColGOV, gov)
	dep, _ := frame.NewCol("gdp_growth", y)
	f, _ := frame.NewFrame(cc, yc, ec, sc, gc, dep)

	return f
}

func TestFitCountryYearFE(t *testing.T) {
	m, e := FitCountryYearFE(fePanel())
	assert.Nil(t, e)

	// intercept + 3 indices + (4-1) country dummies + (5-1) year dummies
	assert.Equal(t, 11, m.K)
	assert.Equal(t, 11, len(m.Terms))
	assert.Equal(t, 20, m.N)
	assert.Equal(t, 4, m.NClusters)

	// noise-free data recovers the coefficients exactly
	assert.InDelta(t, 2.0, m.Coef[1], 1e-8)
	assert.InDelta(t, -1.0, m.Coef[2], 1e-8)
	assert.InDelta(t, 0.5, m.Coef[3], 1e-8)
	assert.InDelta(t, 1.0, m.R2, 1e-8)

	assert.Equal(t, "Intercept", m.Terms[0])
	assert.Equal(t, "C(country_code)[T.BBB]", m.Terms[4])
	assert.Equal(t, "C(Year)[T.2019]", m.Terms[7])
}

func TestFitCountryYearFE_dropsMissing(t *testing.T) {
	f := fePanel()

	env, _ := f.Column(ColENV)
	x, _ := env.Float64s()
	x[0] = math.NaN()

	m, e := FitCountryYearFE(f)
	assert.Nil(t, e)
	assert.Equal(t, 19, m.N)
}

func TestClusteredSE_exceedsNaiveUnderClusterCorrelation(t *testing.T) {
	// 5 clusters of 4 observations; the regressor and the residual are constant
	// within a cluster, the textbook case where naive OLS understates the variance
	nPer, nClust := 4, 5
	n := nPer * nClust

	x := mat.NewDense(n, 2, nil)
	resid := mat.NewVecDense(n, nil)
	clusters := make([]string, n)

	u := []float64{0.5, -0.5, 0.5, -0.5, 0.5}
	for g := 0; g < nClust; g++ {
		for i := 0; i < nPer; i++ {
			row := g*nPer + i
			x.Set(row, 0, 1)
			x.Set(row, 1, float64(g+1))
			resid.SetVec(row, u[g])
			clusters[row] = string(rune('a' + g))
		}
	}

	clustered, e := clusteredSE(x, resid, clusters)
	assert.Nil(t, e)

	naive, ex := naiveSE(x, resid)
	assert.Nil(t, ex)

	assert.Greater(t, clustered[1], naive[1])
}

func TestClusteredSE_tooFewClusters(t *testing.T) {
	x := mat.NewDense(4, 1, []float64{1, 1, 1, 1})
	resid := mat.NewVecDense(4, []float64{1, -1, 1, -1})

	_, e := clusteredSE(x, resid, []string{"a", "a", "a", "a"})
	assert.NotNil(t, e)
}

func TestSummary(t *testing.T) {
	m, e := FitCountryYearFE(fePanel())
	assert.Nil(t, e)

	s := m.Summary()
	assert.Contains(t, s, "gdp_growth")
	assert.Contains(t, s, ColENV)
	assert.Contains(t, s, "Clusters")
	assert.Contains(t, s, "C(country_code)[T.BBB]")

	fn := filepath.Join(t.TempDir(), "fe.txt")
	assert.Nil(t, m.WriteSummary(fn))
}

func TestPlotIndices(t *testing.T) {
	wide, e := BuildESGIndices(testPanel50())
	assert.Nil(t, e)

	fn := filepath.Join(t.TempDir(), "indices.png")
	assert.Nil(t, PlotIndices(wide, fn))
}
