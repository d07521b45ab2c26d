package panel

import (
	"go.uber.org/zap"

	"github.com/invertedv/esgpanel/config"
	"github.com/invertedv/esgpanel/frame"
	"github.com/invertedv/esgpanel/store"
)

// table name of the optional database mirror
const mirrorTable = "panel_full_unfiltered"

// BuildMerged runs the whole data-preparation stage: load the three raw sources, clean
// and reshape both wide tables, merge in the classification and persist the full
// unfiltered panel.
func BuildMerged(cfg *config.Config, log *zap.SugaredLogger) (*frame.Frame, error) {
	esgRaw, e := frame.ReadCSV(cfg.ESGPath())
	if e != nil {
		return nil, e
	}

	econRaw, ex := frame.ReadCSV(cfg.EconomicPath())
	if ex != nil {
		return nil, ex
	}

	classRaw, exx := LoadClassification(cfg.ClassificationPath())
	if exx != nil {
		return nil, exx
	}

	log.Infow("loaded raw sources",
		"esgRows", esgRaw.RowCount(),
		"economicRows", econRaw.RowCount(),
		"classificationRows", classRaw.RowCount())

	esgLong, e1 := CleanESG(esgRaw)
	if e1 != nil {
		return nil, e1
	}

	econLong, e2 := CleanEconomic(econRaw)
	if e2 != nil {
		return nil, e2
	}

	class, e3 := PrepareClassification(classRaw)
	if e3 != nil {
		return nil, e3
	}

	full, e4 := MergeToPanel(esgLong, econLong, class)
	if e4 != nil {
		return nil, e4
	}

	log.Infow("merged panel", "rows", full.RowCount(), "cols", full.ColumnCount())

	if e := config.EnsureDir(cfg.FullPanelPath()); e != nil {
		return nil, e
	}

	if e := frame.WriteCSV(full, cfg.FullPanelPath()); e != nil {
		return nil, e
	}
	log.Infow("saved merged panel", "file", cfg.FullPanelPath())

	if cfg.Store.Enabled() {
		if e := store.Mirror(cfg.Store.Driver, cfg.Store.DSN, mirrorTable, full); e != nil {
			return nil, e
		}
		log.Infow("mirrored merged panel", "table", mirrorTable)
	}

	return full, nil
}
