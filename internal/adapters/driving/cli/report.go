package cli

import (
	"bufio"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dashreport/internal/core/domain"
)

var reportCmd = &cobra.Command{
	Use:     "report",
	Aliases: []string{"reports"},
	Short:   "Manage stored reports",
}

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored reports",
	Args:  cobra.NoArgs,
	RunE:  runReportList,
}

var reportGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a stored report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportGet,
}

var reportDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportDelete,
}

var reportClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stored reports",
	Args:  cobra.NoArgs,
	RunE:  runReportClear,
}

func init() {
	reportListCmd.Flags().StringP("format", "f", formatText, "output format: text, json or yaml")
	reportGetCmd.Flags().StringP("format", "f", formatJSON, "output format: json, yaml or text")
	reportClearCmd.Flags().BoolP("yes", "y", false, "skip confirmation")

	reportCmd.AddCommand(reportListCmd)
	reportCmd.AddCommand(reportGetCmd)
	reportCmd.AddCommand(reportDeleteCmd)
	reportCmd.AddCommand(reportClearCmd)
	rootCmd.AddCommand(reportCmd)
}

func runReportList(cmd *cobra.Command, _ []string) error {
	if err := requireReports(); err != nil {
		return err
	}

	reports, err := reportService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing reports: %w", err)
	}

	format, _ := cmd.Flags().GetString("format")
	if format != formatText {
		return writeValue(cmd.OutOrStdout(), format, reports)
	}

	if len(reports) == 0 {
		cmd.Println("No reports stored.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDRIVER\tREPORT DATE\tPOLICIES\tCLAIMS\tFILE")
	for i := range reports {
		r := &reports[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			shortID(r.ID),
			r.Header.DriverLabel(),
			orDash(domain.Deref(r.Header.ReportDate)),
			len(r.Policies),
			len(r.Claims),
			r.FileName)
	}
	return w.Flush()
}

func runReportGet(cmd *cobra.Command, args []string) error {
	if err := requireReports(); err != nil {
		return err
	}

	report, err := reportService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("getting report %s: %w", args[0], err)
	}

	format, _ := cmd.Flags().GetString("format")
	if format == formatText {
		printReport(cmd, report)
		return nil
	}
	return writeValue(cmd.OutOrStdout(), format, report)
}

func runReportDelete(cmd *cobra.Command, args []string) error {
	if err := requireReports(); err != nil {
		return err
	}

	if err := reportService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("deleting report %s: %w", args[0], err)
	}
	cmd.Println("Report deleted")
	return nil
}

func runReportClear(cmd *cobra.Command, _ []string) error {
	if err := requireReports(); err != nil {
		return err
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		cmd.Print("Delete all stored reports? [y/N]: ")
		reader := bufio.NewReader(cmd.InOrStdin())
		answer, _ := reader.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := reportService.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("clearing reports: %w", err)
	}
	cmd.Println("All data cleared")
	return nil
}

// shortID abbreviates a report id for tables.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
