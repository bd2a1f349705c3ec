// Package tui provides an interactive terminal user interface for dashreport.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/dashreport/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Reports lists, shows and deletes stored reports.
	Reports driving.ReportService

	// Settings shows application settings. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(reports driving.ReportService, settings driving.SettingsService) *Ports {
	return &Ports{
		Reports:  reports,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Reports == nil {
		return ErrMissingReportService
	}
	return nil
}
