package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/bikedash/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
	// Dataset flags (override config if set)
	flagDataset   string
	flagSheet     string
	flagDelimiter string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "bikedash",
	Short: "bikedash: bike-rental dashboard tables from a CSV or XLSX dataset",
	Long: `bikedash loads a bike-sharing dataset, filters it by date range and derives the
dashboard tables (daily rentals, seasons, weather, weather factors, user types)
together with chart requests for a presentation host.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.bikedash/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagDataset, "dataset", "", "dataset file (overrides config dataset_path)")
	rootCmd.PersistentFlags().StringVar(&flagSheet, "sheet", "", "XLSX: sheet name (default first sheet)")
	rootCmd.PersistentFlags().StringVar(&flagDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Defaults()
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("dataset") && flagDataset != "" {
		cfg.DatasetPath = flagDataset
	}
	if f.Changed("sheet") {
		cfg.SheetName = flagSheet
	}
	if f.Changed("delimiter") {
		cfg.Delimiter = flagDelimiter
	}
	if debug {
		fmt.Fprintf(os.Stderr, "debug: dataset=%s listen=%s watch=%v\n", cfg.DatasetPath, cfg.ListenAddr, cfg.Watch)
	}
}
