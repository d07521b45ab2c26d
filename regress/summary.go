package regress

import (
	"fmt"
	"os"
	"strings"
)

const summaryWidth = 88

// Summary renders the fitted model as a fixed-width results table: coefficients,
// clustered standard errors, t statistics, p-values and 95% confidence bounds.
func (m *Model) Summary() string {
	var b strings.Builder

	line := strings.Repeat("=", summaryWidth)
	thin := strings.Repeat("-", summaryWidth)

	center := func(s string) string {
		pad := (summaryWidth - len(s)) / 2
		if pad < 0 {
			pad = 0
		}
		return strings.Repeat(" ", pad) + s
	}

	b.WriteString(center("Two-Way Fixed Effects Regression Results") + "\n")
	b.WriteString(line + "\n")
	b.WriteString(fmt.Sprintf("%-28s %14s    %-28s %8d\n", "Dep. Variable:", m.Depvar, "No. Observations:", m.N))
	b.WriteString(fmt.Sprintf("%-28s %14s    %-28s %8d\n", "Covariance Type:", "cluster", "Clusters ("+ColCountryCode+"):", m.NClusters))
	b.WriteString(fmt.Sprintf("%-28s %14.4f    %-28s %8.4f\n", "R-squared:", m.R2, "Adj. R-squared:", m.AdjR2))
	b.WriteString(fmt.Sprintf("%-28s %14d\n", "Df Model:", m.K-1))
	b.WriteString(line + "\n")
	b.WriteString(fmt.Sprintf("%-30s %10s %10s %8s %8s %8s %8s\n",
		"", "coef", "std err", "t", "P>|t|", "[0.025", "0.975]"))
	b.WriteString(thin + "\n")

	for j, term := range m.Terms {
		b.WriteString(fmt.Sprintf("%-30s %10.4f %10.4f %8.3f %8.3f %8.3f %8.3f\n",
			term, m.Coef[j], m.SE[j], m.TStat[j], m.PValue[j], m.CILower[j], m.CIUpper[j]))
	}

	b.WriteString(line + "\n")
	b.WriteString("Standard errors are clustered by " + ColCountryCode + ".\n")

	return b.String()
}

// WriteSummary persists the results table to fileName.
func (m *Model) WriteSummary(fileName string) error {
	if e := os.WriteFile(fileName, []byte(m.Summary()), 0o644); e != nil {
		return fmt.Errorf("writing %s: %w", fileName, e)
	}

	return nil
}
