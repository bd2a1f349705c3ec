// Package mcp provides an MCP (Model Context Protocol) server adapter for dashreport.
// It lets AI assistants list, read, parse and compare DASH reports.
package mcp

import "errors"

// ErrMissingReportService is returned when the report service is not provided.
var ErrMissingReportService = errors.New("mcp: report service is required")
