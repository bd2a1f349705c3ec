package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dashreport/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/dashreport/internal/core/domain"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API for uploading, listing, comparing and exporting reports.

Routes:
  POST   /api/parse          multipart upload, field "file"
  GET    /api/reports
  GET    /api/reports/{id}
  DELETE /api/reports/{id}
  POST   /api/clear
  POST   /api/diff           {"policyA": {...}, "policyB": {...}}
  GET    /api/export/{id}
  GET    /healthz

The listen address defaults to server.addr from the config file; the PORT
environment variable overrides it.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address, e.g. :8000")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := requireReports(); err != nil {
		return err
	}

	cfg, err := serverConfig()
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}

	server, err := httpapi.NewServer(reportService, cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	cmd.Printf("Listening on %s\n", cfg.Addr)
	return server.ListenAndServe(cmd.Context())
}

func serverConfig() (httpapi.Config, error) {
	defaults := domain.DefaultAppSettings().Server
	if settingsService == nil {
		return httpapi.Config{
			Addr:        defaults.Addr,
			RateLimit:   defaults.RateLimit,
			MaxUploadMB: defaults.MaxUploadMB,
		}, nil
	}

	settings, err := settingsService.Get()
	if err != nil {
		return httpapi.Config{}, fmt.Errorf("loading settings: %w", err)
	}
	return httpapi.Config{
		Addr:        settings.Server.Addr,
		RateLimit:   settings.Server.RateLimit,
		MaxUploadMB: settings.Server.MaxUploadMB,
	}, nil
}
