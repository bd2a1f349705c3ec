// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/dashreport/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dashreport/internal/core/domain"
)

// ReportList displays report summaries in a navigable, filterable list.
type ReportList struct {
	all      []domain.ReportSummary
	visible  []domain.ReportSummary
	filter   string
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewReportList creates a new report list component.
func NewReportList(s *styles.Styles) *ReportList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ReportList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the report list.
func (r *ReportList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ReportList) Update(msg tea.Msg) (*ReportList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the report list.
func (r *ReportList) View() string {
	if len(r.visible) == 0 {
		if r.filter != "" {
			return r.styles.Muted.Render(fmt.Sprintf("No reports match %q", r.filter))
		}
		return r.styles.Muted.Render("No reports. Parse one with: dashreport parse <file> --save")
	}

	lines := make([]string, 0, len(r.visible)+2)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Reports (%d)", len(r.visible))), "")

	// Each report takes two lines
	visibleCount := (r.height - 4) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(r.visible) {
		end = len(r.visible)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderReport(i, &r.visible[i]))
	}

	return strings.Join(lines, "\n")
}

func (r *ReportList) renderReport(index int, report *domain.ReportSummary) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	name := truncate(report.Header.DriverLabel(), r.width-24)
	date := domain.Deref(report.Header.ReportDate)

	var title string
	if index == r.selected {
		title = r.styles.Selected.Render(fmt.Sprintf("%s%s  %s", indicator, name, date))
	} else {
		title = r.styles.Normal.Render(indicator+name+"  ") + r.styles.Muted.Render(date)
	}

	detail := fmt.Sprintf("    %s · %d policies · %d claims",
		report.FileName, len(report.Policies), len(report.Claims))

	return title + "\n" + r.styles.Muted.Render(truncate(detail, r.width-2))
}

// SetReports replaces the list contents and reapplies the filter.
func (r *ReportList) SetReports(reports []domain.ReportSummary) {
	r.all = reports
	r.apply()
}

// SetFilter narrows the list to reports whose driver name or file
// name contains the query, case-insensitively.
func (r *ReportList) SetFilter(query string) {
	r.filter = strings.TrimSpace(query)
	r.apply()
}

// Filter returns the active filter query.
func (r *ReportList) Filter() string {
	return r.filter
}

func (r *ReportList) apply() {
	if r.filter == "" {
		r.visible = r.all
	} else {
		q := strings.ToLower(r.filter)
		r.visible = make([]domain.ReportSummary, 0, len(r.all))
		for i := range r.all {
			name := strings.ToLower(domain.Deref(r.all[i].Header.DriverName))
			file := strings.ToLower(r.all[i].FileName)
			if strings.Contains(name, q) || strings.Contains(file, q) {
				r.visible = append(r.visible, r.all[i])
			}
		}
	}
	if r.selected >= len(r.visible) {
		r.selected = max(len(r.visible)-1, 0)
	}
}

// Selected returns the index of the selected report.
func (r *ReportList) Selected() int {
	return r.selected
}

// SelectedReport returns the currently selected report, or nil if none.
func (r *ReportList) SelectedReport() *domain.ReportSummary {
	if r.selected < 0 || r.selected >= len(r.visible) {
		return nil
	}
	return &r.visible[r.selected]
}

// MoveUp moves selection up.
func (r *ReportList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ReportList) MoveDown() {
	if r.selected < len(r.visible)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ReportList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of visible reports.
func (r *ReportList) Count() int {
	return len(r.visible)
}

// IsEmpty returns whether no reports are visible.
func (r *ReportList) IsEmpty() bool {
	return len(r.visible) == 0
}

func truncate(s string, n int) string {
	if n < 10 {
		n = 10
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
