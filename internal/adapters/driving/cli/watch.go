package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dashreport/internal/adapters/driving/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Parse and store reports dropped into a directory",
	Long: `Watch a directory and parse every .pdf or .txt report written into it.
Parsed reports are stored. Without an argument the directory comes from
watch.dir in the config file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Bool("initial-scan", true, "parse files already in the directory")
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "quiet period before a file is parsed")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := requireReports(); err != nil {
		return err
	}

	dir := ""
	if len(args) == 1 {
		dir = args[0]
	} else if settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}
		dir = settings.Watch.Dir
	}
	if dir == "" {
		return errors.New("no directory given and watch.dir is not set")
	}

	initialScan, _ := cmd.Flags().GetBool("initial-scan")
	debounce, _ := cmd.Flags().GetDuration("debounce")

	watcher, err := watch.NewWatcher(reportService, watch.Config{
		Dir:         dir,
		Debounce:    debounce,
		InitialScan: initialScan,
		OnResult: func(r watch.Result) {
			name := filepath.Base(r.Path)
			if r.Err != nil {
				cmd.PrintErrf("%s: %v\n", name, r.Err)
				return
			}
			cmd.Printf("%s: saved %s (%s, %d policies, %d claims)\n",
				name, r.Report.ID, r.Report.Header.DriverLabel(),
				len(r.Report.Policies), len(r.Report.Claims))
		},
	})
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s\n", dir)
	return watcher.Run(cmd.Context())
}
