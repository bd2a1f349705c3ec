package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dashreport/internal/core/domain"
)

// errSettingsNotConfigured is returned when no settings service is wired.
var errSettingsNotConfigured = errors.New("settings service not configured")

var configCmd = &cobra.Command{
	Use:     "config",
	Aliases: []string{"settings"},
	Short:   "Manage application settings",
	Long: `View and change settings stored in config.toml.

Environment variables override stored values:
  DASHREPORT_STORAGE_BACKEND  memory or sqlite
  PORT                        HTTP listen port`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a single setting, for example:

  dashreport config set storage.backend memory
  dashreport config set server.rate_limit 50
  dashreport config set watch.dir ~/inbox`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if settingsService == nil {
			return errSettingsNotConfigured
		}
		cmd.Println(settingsService.ConfigPath())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	values := settingValues(settings)
	for _, key := range settingsService.Keys() {
		cmd.Printf("  %-22s %s\n", key, orDash(values[key]))
	}
	cmd.Println()
	cmd.Printf("Config file: %s\n", settingsService.ConfigPath())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("setting %s: %w", args[0], err)
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

// settingValues flattens settings to their config keys.
func settingValues(s *domain.AppSettings) map[string]string {
	return map[string]string{
		"storage.backend":      string(s.Storage.Backend),
		"storage.data_dir":     s.Storage.DataDir,
		"server.addr":          s.Server.Addr,
		"server.rate_limit":    strconv.Itoa(s.Server.RateLimit),
		"server.max_upload_mb": strconv.Itoa(s.Server.MaxUploadMB),
		"watch.dir":            s.Watch.Dir,
		"export.dir":           s.Export.Dir,
	}
}
