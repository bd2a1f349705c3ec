package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a stored report to a spreadsheet",
	Long: `Export a stored report as an XLSX workbook with one sheet each for the
driver, policies, operators, vehicles, claims and previous inquiries.

Without --output the workbook is written to the configured export directory
as report_<id>.xlsx.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "output file path")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if err := requireReports(); err != nil {
		return err
	}

	result, err := reportService.Export(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("exporting report %s: %w", args[0], err)
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		dir := "."
		if settingsService != nil {
			if settings, err := settingsService.Get(); err == nil && settings.Export.Dir != "" {
				dir = settings.Export.Dir
			}
		}
		output = filepath.Join(dir, result.FileName)
	}

	if err := os.WriteFile(output, result.Data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	cmd.Printf("Exported %s\n", output)
	return nil
}
