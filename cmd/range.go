package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rangeCmd = &cobra.Command{
	Use:   "range [file]",
	Short: "Show the first and last day present in the dataset",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if ds.Empty() {
			fmt.Fprintln(out, "No records")
			return nil
		}
		lo, hi := ds.Bounds()
		fmt.Fprintf(out, "min: %s\n", lo.Format("2006-01-02"))
		fmt.Fprintf(out, "max: %s\n", hi.Format("2006-01-02"))
		fmt.Fprintf(out, "records: %d\n", len(ds.Records))
		if ds.Rejected > 0 {
			fmt.Fprintf(out, "rejected: %d\n", ds.Rejected)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rangeCmd)
}
