// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/dashreport/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewReports lists stored reports.
	ViewReports
	// ViewReportDetail shows one report.
	ViewReportDetail
	// ViewSettings shows the current settings.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewReports:
		return "reports"
	case ViewReportDetail:
		return "report_detail"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// ReportsLoaded carries the stored report summaries.
type ReportsLoaded struct {
	Reports []domain.ReportSummary
	Err     error
}

// ReportSelected is sent when a report is chosen from the list.
type ReportSelected struct {
	ID string
}

// ReportLoaded carries a full report for the detail view.
type ReportLoaded struct {
	Report *domain.Report
	Err    error
}

// ReportDeleted signals a report was deleted.
type ReportDeleted struct {
	ID  string
	Err error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Path     string
	Err      error
}
