// Package reportdetail provides the single report view for the TUI.
package reportdetail

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/dashreport/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/dashreport/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dashreport/internal/core/domain"
)

// placeholder is shown for fields the report does not carry.
const placeholder = "—"

// reserved is the number of lines used by the title and footer.
const reserved = 5

// View shows one report in a scrollable viewport.
type View struct {
	styles   *styles.Styles
	viewport viewport.Model

	report *domain.Report
	err    error
	width  int
	height int
}

// NewView creates a new report detail view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:   s,
		viewport: viewport.New(80, 24-reserved),
		width:    80,
		height:   24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetReport replaces the displayed report and scrolls to the top.
func (v *View) SetReport(report *domain.Report) {
	v.report = report
	v.err = nil
	v.viewport.SetContent(v.render())
	v.viewport.GotoTop()
}

// Update handles messages for the detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ReportLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.SetReport(msg.Report)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "backspace":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewReports}
			}
		case "g", "home":
			v.viewport.GotoTop()
			return v, nil
		case "G", "end":
			v.viewport.GotoBottom()
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View renders the detail view.
func (v *View) View() string {
	var b strings.Builder

	title := "Report"
	if v.report != nil {
		title = v.report.Header.DriverLabel()
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", max(min(v.width-4, 60), 1)))
	b.WriteString("\n")

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err)))
	case v.report == nil:
		b.WriteString(v.styles.Muted.Render("No report loaded"))
	default:
		b.WriteString(v.viewport.View())
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render(fmt.Sprintf("[↑/↓] scroll  [g/G] top/bottom  [esc] back  %3.f%%",
		v.viewport.ScrollPercent()*100)))
	return b.String()
}

// render builds the full report text for the viewport.
func (v *View) render() string {
	r := v.report
	if r == nil {
		return ""
	}
	h := r.Header

	var b strings.Builder
	v.section(&b, "Driver Information")
	v.field(&b, "Driver Name", str(h.DriverName))
	v.field(&b, "Address", str(h.Address))
	v.field(&b, "DLN", strings.TrimSpace(str(h.DLN)+" "+domain.Deref(h.Province)))
	v.field(&b, "Date of Birth", str(h.DateOfBirth))
	v.field(&b, "Gender", str(h.Gender))
	v.field(&b, "Marital Status", str(h.MaritalStatus))
	v.field(&b, "Claims (6y)", num(h.ClaimsLast6Years))
	v.field(&b, "At-Fault Claims (6y)", num(h.AtFaultClaimsLast6Years))
	v.field(&b, "Years Continuous Insurance", num(h.YearsContinuousInsurance))
	v.field(&b, "Report Date", str(h.ReportDate))
	v.field(&b, "Source File", r.FileName)

	v.section(&b, fmt.Sprintf("Policies (%d)", len(r.Policies)))
	for i := range r.Policies {
		p := &r.Policies[i]
		company := domain.Deref(p.Header.Insurer)
		if company == "" {
			company = p.Header.RangeInsurerStatus
		}
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("#%d  %s", i+1, orPlaceholder(company))))
		b.WriteString("\n")
		v.field(&b, "Policy #", str(p.Header.PolicyNumber))
		v.field(&b, "Effective / Expiry", str(p.Header.EffectiveDate)+" / "+str(p.Header.ExpiryDate))
		v.field(&b, "Status", str(p.Header.Status))
		v.field(&b, "Start of Earliest Term", orPlaceholder(p.Header.StartOfEarliestTerm))
		v.field(&b, "Operators / Vehicles", fmt.Sprintf("%d / %d", len(p.Operators), len(p.Vehicles)))
	}

	v.section(&b, fmt.Sprintf("Claims (%d)", len(r.Claims)))
	for i := range r.Claims {
		c := &r.Claims[i]
		line := fmt.Sprintf("#%d  %s  %s  %s", i+1, str(c.DateOfLoss), str(c.Insurer), str(c.ClaimStatus))
		if c.AtFault {
			line += "  " + v.styles.AtFault.Render("AT FAULT")
		}
		b.WriteString(line)
		b.WriteString("\n")
		v.field(&b, "Subtotal", orPlaceholder(c.Subtotal))
	}

	if len(r.PreviousInquiries) > 0 {
		v.section(&b, "Previous Inquiries")
		for _, q := range r.PreviousInquiries {
			b.WriteString(fmt.Sprintf("%s  %s\n", q.Date, q.Who))
		}
	}

	return b.String()
}

func (v *View) section(b *strings.Builder, title string) {
	b.WriteString(v.styles.Section.Render(title))
	b.WriteString("\n")
}

func (v *View) field(b *strings.Builder, label, value string) {
	b.WriteString(v.styles.Label.Render(label))
	b.WriteString(v.styles.Normal.Render(value))
	b.WriteString("\n")
}

func str(s *string) string {
	return orPlaceholder(domain.Deref(s))
}

func num(n *int) string {
	if n == nil {
		return placeholder
	}
	return strconv.Itoa(*n)
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = width
	v.viewport.Height = max(height-reserved, 1)
}

// Report returns the displayed report.
func (v *View) Report() *domain.Report {
	return v.report
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
