// Package regress builds the regression-ready dataset -- standardized composite ESG
// indices joined with the wide economic indicators -- and fits the two-way fixed-effects
// model of GDP growth on those indices with country-clustered standard errors.
package regress

// ESG category codes used while aggregating.
const (
	CatE = "E"
	CatS = "S"
	CatG = "G"
)

// Composite index column names.
const (
	ColENV = "ENV_index"
	ColSOC = "SOC_index"
	ColGOV = "GOV_index"
)

// ColCountryCode is the formula-friendly rename of the panel's country code column.
const ColCountryCode = "country_code"

// ESGIndicator gives an indicator's category and its direction: +1 when a higher value
// is better, -1 when it is worse.
type ESGIndicator struct {
	Category  string
	Direction float64
}

// ESGMap is the fixed set of recognized ESG indicators.
var ESGMap = map[string]ESGIndicator{
	// Environmental
	"CO2 emissions (metric tons per capita)":                             {CatE, -1},
	"Methane emissions (metric tons of CO2 equivalent per capita)":       {CatE, -1},
	"Nitrous oxide emissions (metric tons of CO2 equivalent per capita)": {CatE, -1},
	"Fossil fuel energy consumption (% of total)":                        {CatE, -1},
	"Renewable energy consumption (% of total final energy consumption)": {CatE, +1},
	"Renewable electricity output (% of total electricity output)":       {CatE, +1},

	// Social
	"Unemployment, total (% of total labor force) (modeled ILO estimate)": {CatS, -1},
	"Gini index": {CatS, -1},
	"Economic and Social Rights Performance Score": {CatS, +1},

	// Governance
	"Control of Corruption: Estimate":                                 {CatG, +1},
	"Political Stability and Absence of Violence/Terrorism: Estimate": {CatG, +1},
}

// EconIndicators are the five economic series kept for the regression dataset, with
// their formula-friendly short names.
var EconIndicators = []struct {
	Long  string
	Short string
}{
	{"GDP growth (annual %)", "gdp_growth"},
	{"GDP per capita (constant 2015 US$)", "gdp_per_capita"},
	{"Inflation, consumer prices (annual %)", "inflation"},
	{"Foreign direct investment, net inflows (% of GDP)", "fdi_inflows"},
	{"Research and development expenditure (% of GDP)", "R&D_expenditure"},
}
