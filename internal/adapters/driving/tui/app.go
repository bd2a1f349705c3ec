package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/dashreport/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/dashreport/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dashreport/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/dashreport/internal/adapters/driving/tui/views/reportdetail"
	"github.com/custodia-labs/dashreport/internal/adapters/driving/tui/views/reports"
	"github.com/custodia-labs/dashreport/internal/adapters/driving/tui/views/settings"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles

	menuView     *menu.View
	reportsView  *reports.View
	detailView   *reportdetail.View
	settingsView *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	a := &App{
		ports:       ports,
		styles:      styles.DefaultStyles(),
		currentView: messages.ViewMenu,
	}
	a.build(context.Background())
	return a, nil
}

func (a *App) build(ctx context.Context) {
	a.ctx = ctx
	a.menuView = menu.NewView(a.styles)
	a.reportsView = reports.NewView(ctx, a.styles, a.ports.Reports)
	a.detailView = reportdetail.NewView(a.styles)
	a.settingsView = settings.NewView(a.styles, a.ports.Settings)
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.build(ctx)
	if a.ready {
		a.SetDimensions(a.width, a.height)
	}
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("dashreport"),
	)
}

// Update implements tea.Model.
//
//nolint:gocognit,gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewReports:
			if msg.String() == "?" && !a.reportsView.Filtering() {
				a.currentView = messages.ViewHelp
				return a, nil
			}
			a.reportsView, cmd = a.reportsView.Update(msg)
			a.err = a.reportsView.Err()
		case messages.ViewReportDetail:
			a.detailView, cmd = a.detailView.Update(msg)
		case messages.ViewSettings:
			a.settingsView, cmd = a.settingsView.Update(msg)
		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
		}
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewReports:
			return a, a.reportsView.Init()
		case messages.ViewSettings:
			return a, a.settingsView.Init()
		case messages.ViewMenu, messages.ViewReportDetail, messages.ViewHelp:
		}
		return a, nil

	case messages.ReportSelected:
		a.currentView = messages.ViewReportDetail
		a.detailView.SetReport(nil)
		return a, a.loadReport(msg.ID)

	case messages.ReportLoaded:
		a.err = msg.Err
		a.detailView, cmd = a.detailView.Update(msg)
		return a, cmd

	case messages.ReportsLoaded, messages.ReportDeleted:
		a.reportsView, cmd = a.reportsView.Update(msg)
		a.err = a.reportsView.Err()
		return a, cmd

	case messages.SettingsLoaded:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		switch a.currentView {
		case messages.ViewReports:
			a.reportsView, cmd = a.reportsView.Update(msg)
		case messages.ViewReportDetail:
			a.detailView, cmd = a.detailView.Update(msg)
		case messages.ViewMenu, messages.ViewSettings, messages.ViewHelp:
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (cursor blinks, mouse) to the active view
	switch a.currentView {
	case messages.ViewReports:
		a.reportsView, cmd = a.reportsView.Update(msg)
	case messages.ViewReportDetail:
		a.detailView, cmd = a.detailView.Update(msg)
	case messages.ViewMenu, messages.ViewSettings, messages.ViewHelp:
	}
	return a, cmd
}

func (a *App) loadReport(id string) tea.Cmd {
	svc := a.ports.Reports
	ctx := a.ctx
	return func() tea.Msg {
		report, err := svc.Get(ctx, id)
		return messages.ReportLoaded{Report: report, Err: err}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewReports:
		return a.reportsView.View()
	case messages.ViewReportDetail:
		return a.detailView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewMenu:
	}
	return a.menuView.View()
}

func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ctrl+c      Quit

Reports:
  j/k, ↑/↓    Navigate reports
  enter       Open report
  /           Filter by driver or file name
  d           Delete report (y to confirm)
  r           Reload

Report:
  j/k, ↑/↓    Scroll
  g/G         Top / bottom
  esc         Back to reports

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.reportsView.SetDimensions(width, height)
	a.detailView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
