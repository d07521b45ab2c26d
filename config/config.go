// Package config holds the pipeline configuration: where the raw sources live, where
// processed artifacts and results are written, and the optional database mirror.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Persisted artifact file names.
const (
	FullPanelFile  = "panel_full_unfiltered.csv"
	Panel50File    = "panel_50_countries.csv"
	RegressionFile = "panel_FE_regression.csv"
	SummaryFile    = "fixed_effects_regression.txt"
	FigureFile     = "esg_indices.png"
)

type Config struct {
	Data  DataConfig  `toml:"data"`
	Store StoreConfig `toml:"store"`
}

type DataConfig struct {
	RawDir       string `toml:"raw_dir"`
	ProcessedDir string `toml:"processed_dir"`
	ResultsDir   string `toml:"results_dir"`

	ESGFile            string `toml:"esg_file"`
	EconomicFile       string `toml:"economic_file"`
	ClassificationFile string `toml:"classification_file"`
}

// StoreConfig enables mirroring of the persisted artifacts to a database table.
// Driver is "clickhouse" or "postgres"; empty disables the mirror.
type StoreConfig struct {
	Driver string `toml:"driver"`
	DSN    string `toml:"dsn"`
}

func (s StoreConfig) Enabled() bool {
	return s.Driver != "" && s.DSN != ""
}

func Default() *Config {
	return &Config{
		Data: DataConfig{
			RawDir:             filepath.Join("data", "raw"),
			ProcessedDir:       filepath.Join("data", "processed"),
			ResultsDir:         "results",
			ESGFile:            "esg-economic-data.csv",
			EconomicFile:       "gdp-inflation-fdi-data.csv",
			ClassificationFile: "country-classification.xlsx",
		},
	}
}

// Load reads a TOML config file.  An empty or missing path falls back to the defaults;
// a file that exists but does not parse is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	data, e := os.ReadFile(path)
	if e != nil {
		if os.IsNotExist(e) {
			return cfg, nil
		}

		return nil, fmt.Errorf("reading config %s: %w", path, e)
	}

	if e := toml.Unmarshal(data, cfg); e != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, e)
	}

	return cfg, nil
}

func (c *Config) ESGPath() string {
	return filepath.Join(c.Data.RawDir, c.Data.ESGFile)
}

func (c *Config) EconomicPath() string {
	return filepath.Join(c.Data.RawDir, c.Data.EconomicFile)
}

func (c *Config) ClassificationPath() string {
	return filepath.Join(c.Data.RawDir, c.Data.ClassificationFile)
}

func (c *Config) FullPanelPath() string {
	return filepath.Join(c.Data.ProcessedDir, FullPanelFile)
}

func (c *Config) Panel50Path() string {
	return filepath.Join(c.Data.ProcessedDir, Panel50File)
}

func (c *Config) RegressionPath() string {
	return filepath.Join(c.Data.ProcessedDir, RegressionFile)
}

func (c *Config) SummaryPath() string {
	return filepath.Join(c.Data.ResultsDir, "regression", SummaryFile)
}

func (c *Config) FigurePath() string {
	return filepath.Join(c.Data.ResultsDir, "figures", FigureFile)
}

// EnsureDir creates the directory holding path.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
