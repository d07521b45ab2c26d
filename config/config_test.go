package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, filepath.Join("data", "raw", "esg-economic-data.csv"), cfg.ESGPath())
	assert.Equal(t, filepath.Join("data", "processed", Panel50File), cfg.Panel50Path())
	assert.Equal(t, filepath.Join("results", "regression", SummaryFile), cfg.SummaryPath())
	assert.False(t, cfg.Store.Enabled())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "esgpanel.toml")

	body := `
[data]
raw_dir = "inputs"
esg_file = "esg.csv"

[store]
driver = "clickhouse"
dsn = "clickhouse://localhost:9000/panels"
`
	assert.Nil(t, os.WriteFile(fn, []byte(body), 0o644))

	cfg, e := Load(fn)
	assert.Nil(t, e)

	// overridden values
	assert.Equal(t, filepath.Join("inputs", "esg.csv"), cfg.ESGPath())
	assert.True(t, cfg.Store.Enabled())

	// untouched values keep their defaults
	assert.Equal(t, "gdp-inflation-fdi-data.csv", cfg.Data.EconomicFile)
}

func TestLoad_missingFileFallsBack(t *testing.T) {
	cfg, e := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Nil(t, e)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_badTOML(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "bad.toml")
	assert.Nil(t, os.WriteFile(fn, []byte("data = [unclosed"), 0o644))

	_, e := Load(fn)
	assert.NotNil(t, e)
}
