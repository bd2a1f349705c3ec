package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/dashreport/internal/core/ports/driving"
)

var diffCmd = &cobra.Command{
	Use:   "diff <report-a> <report-b>",
	Short: "Compare two policies field by field",
	Long: `Compare one policy from each of two stored reports and print every
field that differs. Policies are addressed by their zero-based position in
the report; both default to the first policy.

Examples:
  dashreport diff 3f2a 9c1b
  dashreport diff 3f2a 3f2a --policy 0,1`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().StringP("policy", "p", "0,0", "policy indices as a,b")
	diffCmd.Flags().StringP("format", "f", formatText, "output format: text, json or yaml")
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	if err := requireReports(); err != nil {
		return err
	}

	policy, _ := cmd.Flags().GetString("policy")
	indexA, indexB, err := parsePolicyPair(policy)
	if err != nil {
		return err
	}

	entries, err := reportService.ComparePolicies(cmd.Context(),
		driving.PolicyRef{ReportID: args[0], Index: indexA},
		driving.PolicyRef{ReportID: args[1], Index: indexB})
	if err != nil {
		return fmt.Errorf("comparing policies: %w", err)
	}

	format, _ := cmd.Flags().GetString("format")
	if format != formatText {
		return writeValue(cmd.OutOrStdout(), format, entries)
	}

	if len(entries) == 0 {
		cmd.Println("No differences.")
		return nil
	}
	for _, e := range entries {
		cmd.Printf("%s\n  A: %s\n  B: %s\n", e.Path, brief(e.A), brief(e.B))
	}
	cmd.Printf("\n%d difference(s)\n", len(entries))
	return nil
}

// parsePolicyPair parses "a,b" into two non-negative indices.
func parsePolicyPair(s string) (int, int, error) {
	left, right, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid --policy %q: want two indices like 0,1", s)
	}
	a, errA := strconv.Atoi(strings.TrimSpace(left))
	b, errB := strconv.Atoi(strings.TrimSpace(right))
	if errA != nil || errB != nil || a < 0 || b < 0 {
		return 0, 0, fmt.Errorf("invalid --policy %q: want two indices like 0,1", s)
	}
	return a, b, nil
}

// brief renders a diff value on one line.
func brief(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
