package regress

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/invertedv/esgpanel/frame"
	"github.com/invertedv/esgpanel/panel"
)

// Model holds a fitted fixed-effects OLS: coefficients, cluster-robust standard errors
// and fit statistics.
type Model struct {
	Depvar string
	Terms  []string

	Coef    []float64
	SE      []float64
	TStat   []float64
	PValue  []float64
	CILower []float64
	CIUpper []float64

	N         int
	K         int
	NClusters int
	R2        float64
	AdjR2     float64
}

// olsFit solves min ||y - X b|| by QR and returns the coefficients and residuals.
func olsFit(x *mat.Dense, y *mat.VecDense) (beta, resid *mat.VecDense, err error) {
	var qr mat.QR
	qr.Factorize(x)

	beta = &mat.VecDense{}
	if e := qr.SolveVecTo(beta, false, y); e != nil {
		return nil, nil, fmt.Errorf("singular design matrix: %w", e)
	}

	n, _ := x.Dims()
	resid = mat.NewVecDense(n, nil)
	resid.MulVec(x, beta)
	resid.SubVec(y, resid)

	return beta, resid, nil
}

// xtxInverse returns (X'X)^{-1}.
func xtxInverse(x *mat.Dense) (*mat.Dense, error) {
	var xtx mat.Dense
	xtx.Mul(x.T(), x)

	var inv mat.Dense
	if e := inv.Inverse(&xtx); e != nil {
		return nil, fmt.Errorf("X'X is not invertible: %w", e)
	}

	return &inv, nil
}

// naiveSE is the classical homoskedastic OLS standard error: s^2 (X'X)^{-1}.
func naiveSE(x *mat.Dense, resid *mat.VecDense) ([]float64, error) {
	n, k := x.Dims()

	inv, e := xtxInverse(x)
	if e != nil {
		return nil, e
	}

	s2 := mat.Dot(resid, resid) / float64(n-k)

	se := make([]float64, k)
	for j := 0; j < k; j++ {
		se[j] = math.Sqrt(s2 * inv.At(j, j))
	}

	return se, nil
}

// clusteredSE is the cluster-robust (CRVE) standard error with the finite-sample
// correction G/(G-1) * (N-1)/(N-K).
func clusteredSE(x *mat.Dense, resid *mat.VecDense, clusters []string) ([]float64, error) {
	n, k := x.Dims()
	if len(clusters) != n {
		return nil, fmt.Errorf("cluster labels have length %d, design has %d rows", len(clusters), n)
	}

	inv, e := xtxInverse(x)
	if e != nil {
		return nil, e
	}

	byCluster := make(map[string][]int)
	for row, c := range clusters {
		byCluster[c] = append(byCluster[c], row)
	}

	g := len(byCluster)
	if g < 2 {
		return nil, fmt.Errorf("need at least 2 clusters, have %d", g)
	}

	// meat = sum over clusters of (X_g' u_g)(X_g' u_g)'
	meat := mat.NewDense(k, k, nil)
	s := make([]float64, k)
	for _, rows := range byCluster {
		for j := 0; j < k; j++ {
			s[j] = 0
			for _, r := range rows {
				s[j] += x.At(r, j) * resid.AtVec(r)
			}
		}

		for a := 0; a < k; a++ {
			for b := 0; b < k; b++ {
				meat.Set(a, b, meat.At(a, b)+s[a]*s[b])
			}
		}
	}

	c := float64(g) / float64(g-1) * float64(n-1) / float64(n-k)

	var tmp, v mat.Dense
	tmp.Mul(inv, meat)
	v.Mul(&tmp, inv)
	v.Scale(c, &v)

	se := make([]float64, k)
	for j := 0; j < k; j++ {
		se[j] = math.Sqrt(v.At(j, j))
	}

	return se, nil
}

// levels returns the sorted distinct values of x.
func levels(x []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range x {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)

	return out
}

// FitCountryYearFE fits gdp_growth on the three composite indices with country and
// year fixed effects, dropping rows with any missing regressor or outcome, clustering
// the standard errors by country.
func FitCountryYearFE(reg *frame.Frame) (*Model, error) {
	need := []string{ColCountryCode, panel.ColYear, "gdp_growth", ColENV, ColSOC, ColGOV}
	sub, e := reg.KeepColumns(need...)
	if e != nil {
		return nil, e
	}

	codeCol, _ := sub.Column(ColCountryCode)
	codes, ex := codeCol.Strings()
	if ex != nil {
		return nil, ex
	}

	yearCol, _ := sub.Column(panel.ColYear)
	years, exx := yearCol.ToFloat().Float64s()
	if exx != nil {
		return nil, exx
	}

	numeric := make([][]float64, 4)
	for ind, nm := range []string{"gdp_growth", ColENV, ColSOC, ColGOV} {
		c, _ := sub.Column(nm)
		x, e1 := c.ToFloat().Float64s()
		if e1 != nil {
			return nil, e1
		}
		numeric[ind] = x
	}

	// listwise deletion over the model variables
	var rows []int
	for row := 0; row < sub.RowCount(); row++ {
		ok := !math.IsNaN(years[row])
		for _, x := range numeric {
			if math.IsNaN(x[row]) {
				ok = false
				break
			}
		}
		if ok {
			rows = append(rows, row)
		}
	}

	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("no complete observations for the fixed-effects model")
	}

	obsCodes := make([]string, n)
	obsYears := make([]string, n)
	for ind, r := range rows {
		obsCodes[ind] = codes[r]
		obsYears[ind] = fmt.Sprintf("%d", int(years[r]))
	}

	countryLevels := levels(obsCodes)
	yearLevels := levels(obsYears)

	terms := []string{"Intercept", ColENV, ColSOC, ColGOV}
	for _, c := range countryLevels[1:] {
		terms = append(terms, fmt.Sprintf("C(%s)[T.%s]", ColCountryCode, c))
	}
	for _, y := range yearLevels[1:] {
		terms = append(terms, fmt.Sprintf("C(%s)[T.%s]", panel.ColYear, y))
	}

	k := len(terms)
	if n <= k {
		return nil, fmt.Errorf("only %d observations for %d parameters", n, k)
	}

	x := mat.NewDense(n, k, nil)
	y := mat.NewVecDense(n, nil)
	for ind, r := range rows {
		y.SetVec(ind, numeric[0][r])

		x.Set(ind, 0, 1)
		x.Set(ind, 1, numeric[1][r])
		x.Set(ind, 2, numeric[2][r])
		x.Set(ind, 3, numeric[3][r])

		col := 4
		for _, c := range countryLevels[1:] {
			if obsCodes[ind] == c {
				x.Set(ind, col, 1)
			}
			col++
		}
		for _, yl := range yearLevels[1:] {
			if obsYears[ind] == yl {
				x.Set(ind, col, 1)
			}
			col++
		}
	}

	beta, resid, e2 := olsFit(x, y)
	if e2 != nil {
		return nil, e2
	}

	se, e3 := clusteredSE(x, resid, obsCodes)
	if e3 != nil {
		return nil, e3
	}

	g := len(countryLevels)

	// t statistics with G-1 degrees of freedom
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(g - 1)}
	tCrit := tDist.Quantile(0.975)

	m := &Model{
		Depvar:    "gdp_growth",
		Terms:     terms,
		Coef:      make([]float64, k),
		SE:        se,
		TStat:     make([]float64, k),
		PValue:    make([]float64, k),
		CILower:   make([]float64, k),
		CIUpper:   make([]float64, k),
		N:         n,
		K:         k,
		NClusters: g,
	}

	for j := 0; j < k; j++ {
		b := beta.AtVec(j)
		m.Coef[j] = b
		m.TStat[j] = b / se[j]
		m.PValue[j] = 2 * tDist.Survival(math.Abs(m.TStat[j]))
		m.CILower[j] = b - tCrit*se[j]
		m.CIUpper[j] = b + tCrit*se[j]
	}

	ssr := mat.Dot(resid, resid)
	yBar := stat.Mean(y.RawVector().Data, nil)
	sst := 0.0
	for ind := 0; ind < n; ind++ {
		d := y.AtVec(ind) - yBar
		sst += d * d
	}

	m.R2 = 1 - ssr/sst
	m.AdjR2 = 1 - (1-m.R2)*float64(n-1)/float64(n-k)

	return m, nil
}
