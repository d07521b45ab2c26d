// Package panel builds the full country-year indicator panel: it loads the raw wide
// tables, reshapes them to long form, categorizes each indicator and merges in the
// country classification.
package panel

import "strings"

// Shared column names of the long panel schema.
const (
	ColName      = "Country Name"
	ColCode      = "Country Code"
	ColIndicator = "Indicator"
	ColYear      = "Year"
	ColValue     = "Value"
	ColCategory  = "Category"
	ColSource    = "Source"
	ColRegion    = "Region"
	ColIncome    = "Income Group"
)

// Category labels.
const (
	Environmental = "Environmental"
	Social        = "Social"
	Governance    = "Governance"
	Economic      = "Economic"
	Other         = "Other"
)

// categoryRule maps an indicator-name substring to a category.  Rules are evaluated in
// order and the first match wins: "gdp" and "expenditure" are deliberately checked
// last so an indicator naming both an ESG concept and GDP lands in the ESG category.
type categoryRule struct {
	substr   string
	category string
}

var esgRules = []categoryRule{
	// Environmental
	{"co2", Environmental},
	{"fossil", Environmental},
	{"renewable", Environmental},
	{"methane", Environmental},
	{"nitrous", Environmental},

	// Social
	{"unemployment", Social},
	{"gini", Social},
	{"rights", Social},

	// Governance
	{"corruption", Governance},
	{"political", Governance},

	// Economic
	{"gdp", Economic},
	{"expenditure", Economic},
}

var econRules = []categoryRule{
	{"gdp", Economic},
	{"inflation", Economic},
	{"foreign direct investment", Economic},
	{"research", Economic},
	{"r&d", Economic},
}

func matchCategory(rules []categoryRule, indicatorName string) string {
	lower := strings.ToLower(indicatorName)
	for _, r := range rules {
		if strings.Contains(lower, r.substr) {
			return r.category
		}
	}

	return Other
}

// AssignCategory labels an ESG-source indicator as Environmental, Social, Governance,
// Economic or Other.
func AssignCategory(indicatorName string) string {
	return matchCategory(esgRules, indicatorName)
}

// AssignEconomicCategory labels an economic-source indicator as Economic or Other.
func AssignEconomicCategory(indicatorName string) string {
	return matchCategory(econRules, indicatorName)
}
