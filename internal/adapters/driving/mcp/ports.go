package mcp

import (
	"github.com/custodia-labs/dashreport/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Reports parses, stores and compares reports.
	Reports driving.ReportService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Reports == nil {
		return ErrMissingReportService
	}
	return nil
}
