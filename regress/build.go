package regress

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/invertedv/esgpanel/config"
	"github.com/invertedv/esgpanel/frame"
	"github.com/invertedv/esgpanel/store"
)

const mirrorTable = "panel_fe_regression"

// Run executes the regression stage: load the 50-country panel, build and persist the
// regression dataset, fit the fixed-effects model and persist its results table and
// the index figure.
func Run(cfg *config.Config, log *zap.SugaredLogger) (*Model, error) {
	if _, e := os.Stat(cfg.Panel50Path()); e != nil {
		return nil, fmt.Errorf("could not find the 50-country panel at %s: %w", cfg.Panel50Path(), e)
	}

	f50, e := frame.ReadCSV(cfg.Panel50Path())
	if e != nil {
		return nil, e
	}
	log.Infow("loaded 50-country panel", "rows", f50.RowCount(), "cols", f50.ColumnCount())

	reg, ex := BuildDataset(f50)
	if ex != nil {
		return nil, ex
	}
	log.Infow("regression dataset", "rows", reg.RowCount(), "cols", reg.ColumnCount(),
		"columns", reg.ColumnNames())

	if e := config.EnsureDir(cfg.RegressionPath()); e != nil {
		return nil, e
	}

	if e := frame.WriteCSV(reg, cfg.RegressionPath()); e != nil {
		return nil, e
	}
	log.Infow("saved regression dataset", "file", cfg.RegressionPath())

	if cfg.Store.Enabled() {
		if e := store.Mirror(cfg.Store.Driver, cfg.Store.DSN, mirrorTable, reg); e != nil {
			return nil, e
		}
		log.Infow("mirrored regression dataset", "table", mirrorTable)
	}

	model, exx := FitCountryYearFE(reg)
	if exx != nil {
		return nil, exx
	}

	fmt.Println(model.Summary())

	if e := config.EnsureDir(cfg.SummaryPath()); e != nil {
		return nil, e
	}

	if e := model.WriteSummary(cfg.SummaryPath()); e != nil {
		return nil, e
	}
	log.Infow("saved regression table", "file", cfg.SummaryPath())

	if e := config.EnsureDir(cfg.FigurePath()); e != nil {
		return nil, e
	}

	if e := PlotIndices(reg, cfg.FigurePath()); e != nil {
		return nil, e
	}
	log.Infow("saved index figure", "file", cfg.FigurePath())

	return model, nil
}
