package sample

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/invertedv/esgpanel/config"
	"github.com/invertedv/esgpanel/frame"
	"github.com/invertedv/esgpanel/panel"
	"github.com/invertedv/esgpanel/store"
)

const mirrorTable = "panel_50_countries"

// sample composition artifacts
const (
	regionIncomeFile = "sample_region_income.csv"
	metadataFile     = "sample_countries.csv"
)

// Select keeps the rows of the full panel whose country name is in names.  Missing
// values stay in; they are handled downstream.  The distinct retained-country count is
// returned so callers can surface spelling drift.
func Select(full *frame.Frame, names []string) (*frame.Frame, int, error) {
	if len(names) == 0 {
		return nil, 0, fmt.Errorf("the selected-country list is empty")
	}

	selected := make(map[string]bool)
	for _, nm := range names {
		selected[nm] = true
	}

	nameCol, e := full.Column(panel.ColName)
	if e != nil {
		return nil, 0, e
	}

	countries, ex := nameCol.Strings()
	if ex != nil {
		return nil, 0, ex
	}

	out := full.Filter(func(row int) bool { return selected[countries[row]] })

	n, exx := frame.DistinctCount(out, panel.ColName)
	if exx != nil {
		return nil, 0, exx
	}

	return out, n, nil
}

// BuildPanel runs the country-selection stage: load the full panel, filter it to the
// curated sample and persist the result.
func BuildPanel(cfg *config.Config, log *zap.SugaredLogger) (*frame.Frame, error) {
	full, e := frame.ReadCSV(cfg.FullPanelPath())
	if e != nil {
		return nil, e
	}
	log.Infow("loaded full panel", "rows", full.RowCount(), "cols", full.ColumnCount())

	f50, nUnique, ex := Select(full, SelectedCountryNames)
	if ex != nil {
		return nil, ex
	}
	log.Infow("filtered panel", "rows", f50.RowCount(), "uniqueCountries", nUnique)

	if e := config.EnsureDir(cfg.Panel50Path()); e != nil {
		return nil, e
	}

	if e := frame.WriteCSV(f50, cfg.Panel50Path()); e != nil {
		return nil, e
	}
	log.Infow("saved 50-country panel", "file", cfg.Panel50Path())

	if cfg.Store.Enabled() {
		if e := store.Mirror(cfg.Store.Driver, cfg.Store.DSN, mirrorTable, f50); e != nil {
			return nil, e
		}
		log.Infow("mirrored 50-country panel", "table", mirrorTable)
	}

	tab, e1 := RegionIncomeTable(f50)
	if e1 != nil {
		return nil, e1
	}

	meta, e2 := Metadata(f50)
	if e2 != nil {
		return nil, e2
	}

	tabPath := filepath.Join(cfg.Data.ResultsDir, regionIncomeFile)
	if e := config.EnsureDir(tabPath); e != nil {
		return nil, e
	}

	if e := frame.WriteCSV(tab, tabPath); e != nil {
		return nil, e
	}

	metaPath := filepath.Join(cfg.Data.ResultsDir, metadataFile)
	if e := frame.WriteCSV(meta, metaPath); e != nil {
		return nil, e
	}
	log.Infow("saved sample composition", "crosstab", tabPath, "countries", metaPath)

	return f50, nil
}
