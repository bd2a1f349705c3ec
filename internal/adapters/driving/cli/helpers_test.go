package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dashreport/internal/adapters/driven/export/xlsx"
	"github.com/custodia-labs/dashreport/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/dashreport/internal/core/services"
	"github.com/custodia-labs/dashreport/internal/normalisers"
)

const fixturePath = "testdata/dash_report.txt"

// setupTestServices wires in-memory services and restores the previous
// ones when the test ends.
func setupTestServices(t *testing.T) *services.ReportService {
	t.Helper()

	oldReports, oldSettings, oldClose := reportService, settingsService, closeServices
	t.Cleanup(func() {
		reportService, settingsService, closeServices = oldReports, oldSettings, oldClose
	})

	reports := services.NewReportService(memory.NewReportStore(), normalisers.Default(), xlsx.New())
	SetServices(&Services{
		Reports:  reports,
		Settings: services.NewSettingsService(memory.NewConfigStore()),
	})
	return reports
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default so runs do not leak state.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// saveFixture parses and stores the fixture, returning its id.
func saveFixture(t *testing.T) string {
	t.Helper()
	out, err := execute(t, "", "parse", fixturePath, "--save")
	require.NoError(t, err)
	idx := strings.LastIndex(out, "Saved report ")
	require.GreaterOrEqual(t, idx, 0, out)
	return strings.TrimSpace(out[idx+len("Saved report "):])
}
