package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/bikedash/internal/dashboard"
	"github.com/KaramelBytes/bikedash/internal/export"
	"github.com/KaramelBytes/bikedash/internal/utils"
	"github.com/spf13/cobra"
)

var (
	expStart string
	expEnd   string
	expOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the dashboard tables to an XLSX workbook (or JSON)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, end, err := parseRange(expStart, expEnd)
		if err != nil {
			return err
		}
		ds, err := loadDataset(args)
		if err != nil {
			return err
		}
		d, err := dashboard.Build(ds, start, end, dashboardOptions(0))
		if err != nil {
			return err
		}
		switch strings.ToLower(filepath.Ext(expOut)) {
		case ".xlsx":
			if err := export.WriteFile(d, expOut); err != nil {
				return err
			}
		case ".json":
			b, err := utils.PrettyJSON(d)
			if err != nil {
				return err
			}
			if err := utils.SafeWriteFile(expOut, b); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported export format: %s (use .xlsx or .json)", expOut)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d days (%s rentals) to %s\n", len(d.Daily), d.TotalLabel(), expOut)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&expStart, "start", "", "first day (YYYY-MM-DD, default dataset minimum)")
	exportCmd.Flags().StringVar(&expEnd, "end", "", "last day (YYYY-MM-DD, default dataset maximum)")
	exportCmd.Flags().StringVar(&expOut, "out", "dashboard.xlsx", "output path (.xlsx or .json)")
}
