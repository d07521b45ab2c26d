// esgpanel builds a country-year ESG/economic panel from the raw World Bank exports,
// selects the 50-country analysis sample, and fits a two-way fixed-effects regression
// of GDP growth on composite ESG indices with country-clustered standard errors.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/invertedv/esgpanel/config"
	"github.com/invertedv/esgpanel/panel"
	"github.com/invertedv/esgpanel/regress"
	"github.com/invertedv/esgpanel/sample"
)

var version = "0.1.0"

var (
	cfgPath string

	cfg *config.Config
	log *zap.SugaredLogger
)

func setup(*cobra.Command, []string) error {
	zl, e := zap.NewDevelopment()
	if e != nil {
		return e
	}
	log = zl.Sugar()

	cfg, e = config.Load(cfgPath)

	return e
}

func runPrepare(*cobra.Command, []string) error {
	_, e := panel.BuildMerged(cfg, log)
	return e
}

func runSample(*cobra.Command, []string) error {
	_, e := sample.BuildPanel(cfg, log)
	return e
}

func runRegress(*cobra.Command, []string) error {
	_, e := regress.Run(cfg, log)
	return e
}

func runAll(cmd *cobra.Command, args []string) error {
	for _, stage := range []struct {
		name string
		fn   func(*cobra.Command, []string) error
	}{
		{"data preparation", runPrepare},
		{"country selection", runSample},
		{"fixed-effects regression", runRegress},
	} {
		log.Infow("stage start", "stage", stage.name)
		if e := stage.fn(cmd, args); e != nil {
			return fmt.Errorf("%s stage: %w", stage.name, e)
		}
		log.Infow("stage done", "stage", stage.name)
	}

	return nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "esgpanel",
		Short: "ESG & economic performance panel pipeline",
		Long: `esgpanel is a one-shot batch pipeline.  It reshapes the raw wide indicator
tables into a long country-year panel, merges in the country classification, filters
to the fixed 50-country sample, builds standardized composite ESG indices and fits a
two-way fixed-effects regression of GDP growth on those indices with standard errors
clustered by country.`,
		Version:           version,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "esgpanel.toml", "path to the TOML config file")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "prepare",
			Short: "Build and save the full unfiltered panel from the raw sources",
			RunE:  runPrepare,
		},
		&cobra.Command{
			Use:   "sample",
			Short: "Filter the full panel to the 50-country sample",
			RunE:  runSample,
		},
		&cobra.Command{
			Use:   "regress",
			Short: "Build the regression dataset and fit the fixed-effects model",
			RunE:  runRegress,
		},
		&cobra.Command{
			Use:   "run",
			Short: "Run all pipeline stages in order",
			RunE:  runAll,
		},
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
