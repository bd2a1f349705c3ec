package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dashreport/internal/core/domain"
	"github.com/custodia-labs/dashreport/internal/core/ports/driving"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a DASH report",
	Long: `Parse a DASH report (.pdf or .txt) and print the structured result.

Text files may separate pages with form feed characters. Use --save to
store the report so it can be listed, compared and exported later.

Examples:
  dashreport parse report.pdf
  dashreport parse report.pdf --save --format yaml
  dashreport parse scan.txt --name "client-123.pdf"`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().Bool("save", false, "store the parsed report")
	parseCmd.Flags().StringP("format", "f", formatJSON, "output format: json, yaml or text")
	parseCmd.Flags().String("name", "", "file name to record on the report")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	if err := requireReports(); err != nil {
		return err
	}

	save, _ := cmd.Flags().GetBool("save")
	format, _ := cmd.Flags().GetString("format")
	name, _ := cmd.Flags().GetString("name")

	report, err := reportService.ParseFile(cmd.Context(), args[0], driving.ParseOptions{
		FileName: name,
		Save:     save,
	})
	if err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	if format == formatText {
		printReport(cmd, report)
	} else if err := writeValue(cmd.OutOrStdout(), format, report); err != nil {
		return err
	}

	if save {
		cmd.PrintErrf("Saved report %s\n", report.ID)
	}
	return nil
}

// printReport prints a human-readable overview of a report.
func printReport(cmd *cobra.Command, r *domain.Report) {
	h := r.Header
	cmd.Printf("Report:  %s\n", r.ID)
	cmd.Printf("File:    %s (%d pages)\n", r.FileName, r.PagesCount)
	cmd.Printf("Driver:  %s\n", h.DriverLabel())
	cmd.Printf("DLN:     %s %s\n", orDash(domain.Deref(h.DLN)), domain.Deref(h.Province))
	cmd.Printf("Date:    %s\n", orDash(domain.Deref(h.ReportDate)))
	cmd.Println()

	cmd.Printf("Policies (%d):\n", len(r.Policies))
	for i := range r.Policies {
		p := &r.Policies[i].Header
		cmd.Printf("  [%d] %s  %s to %s  %s  earliest term: %s\n",
			i,
			orDash(domain.Deref(p.PolicyNumber)),
			orDash(domain.Deref(p.EffectiveDate)),
			orDash(domain.Deref(p.ExpiryDate)),
			orDash(domain.Deref(p.Status)),
			orDash(p.StartOfEarliestTerm))
	}

	cmd.Printf("Claims (%d):\n", len(r.Claims))
	for i := range r.Claims {
		c := &r.Claims[i]
		fault := "not at fault"
		if c.AtFault {
			fault = "at fault"
		}
		cmd.Printf("  #%d %s  %s  %s  subtotal %s\n",
			i+1, orDash(domain.Deref(c.DateOfLoss)), orDash(domain.Deref(c.Insurer)), fault, c.Subtotal)
	}
}
