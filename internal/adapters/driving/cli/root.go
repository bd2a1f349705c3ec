// Package cli provides the dashreport command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dashreport/internal/core/ports/driving"
	"github.com/custodia-labs/dashreport/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Services are the core services the commands drive.
type Services struct {
	Reports  driving.ReportService
	Settings driving.SettingsService

	// Close releases storage. May be nil.
	Close func() error
}

// ServiceFactory builds services for a config directory.
// An empty configDir means the default location.
type ServiceFactory func(configDir string) (*Services, error)

var (
	reportService   driving.ReportService
	settingsService driving.SettingsService

	serviceFactory ServiceFactory
	closeServices  func() error

	configDir string
	verbose   bool
)

// annotationNoServices marks commands that run without building services.
const annotationNoServices = "dashreport/no-services"

// errServicesNotConfigured is returned when a command runs without services.
var errServicesNotConfigured = errors.New("report service not configured")

var rootCmd = &cobra.Command{
	Use:   "dashreport",
	Short: "Parse and compare DASH driver reports",
	Long: `dashreport extracts structured data from DASH (Driver Abstract Summary
History) insurance reports: driver header, policies with operators and
vehicles, claims and previous inquiries.

Reports can be parsed once, stored, compared policy by policy, exported to
a spreadsheet, or served over HTTP and MCP.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return releaseServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print diagnostic output to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "",
		"directory holding config.toml and the report database (default ~/.dashreport)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices injects services directly, bypassing any factory.
func SetServices(services *Services) {
	reportService = services.Reports
	settingsService = services.Settings
	closeServices = services.Close
}

// SetServiceFactory registers how services are built once flags are parsed.
func SetServiceFactory(factory ServiceFactory) {
	serviceFactory = factory
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if cmd.Annotations[annotationNoServices] == "true" {
		return nil
	}
	if serviceFactory == nil || reportService != nil {
		return nil
	}
	services, err := serviceFactory(configDir)
	if err != nil {
		return fmt.Errorf("initialising services: %w", err)
	}
	SetServices(services)
	return nil
}

func releaseServices() error {
	if closeServices == nil {
		return nil
	}
	closeFn := closeServices
	closeServices = nil
	return closeFn()
}

func requireReports() error {
	if reportService == nil {
		return errServicesNotConfigured
	}
	return nil
}
