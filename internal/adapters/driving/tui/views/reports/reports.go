// Package reports provides the stored report list view for the TUI.
package reports

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/dashreport/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/dashreport/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/dashreport/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/dashreport/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/dashreport/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/dashreport/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dashreport/internal/core/ports/driving"
)

// mode is the input mode of the view.
type mode int

const (
	modeBrowse mode = iota
	modeFilter
	modeConfirmDelete
)

// View lists stored reports with filtering and deletion.
type View struct {
	ctx     context.Context
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	service driving.ReportService

	list   *list.ReportList
	filter *input.FilterInput
	bar    *status.Bar

	mode    mode
	pending string
	loading bool
	err     error
	width   int
	height  int
}

// NewView creates a new report list view.
func NewView(ctx context.Context, s *styles.Styles, service driving.ReportService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	return &View{
		ctx:     ctx,
		styles:  s,
		keymap:  km,
		service: service,
		list:    list.NewReportList(s),
		filter:  input.NewFilterInput(s),
		bar:     status.NewBar(s, km),
		width:   80,
		height:  24,
	}
}

// Init loads the report list.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.bar.SetState(status.StateLoading)
	return v.load()
}

func (v *View) load() tea.Cmd {
	return func() tea.Msg {
		reports, err := v.service.List(v.ctx)
		return messages.ReportsLoaded{Reports: reports, Err: err}
	}
}

func (v *View) remove(id string) tea.Cmd {
	return func() tea.Msg {
		return messages.ReportDeleted{ID: id, Err: v.service.Delete(v.ctx, id)}
	}
}

// Update handles messages for the report list.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ReportsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.err = nil
		v.list.SetReports(msg.Reports)
		v.syncBar()
		return v, nil

	case messages.ReportDeleted:
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.bar.SetMessage("Report deleted")
		return v, v.load()

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case modeFilter:
			return v.handleFilterKey(msg)
		case modeConfirmDelete:
			return v.handleConfirmKey(msg)
		case modeBrowse:
			return v.handleBrowseKey(msg)
		}
	}

	return v, nil
}

func (v *View) handleBrowseKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Up), keymap.Matches(keyStr, v.keymap.Down):
		v.list.Update(msg)
		v.bar.SetMessage("")
	case keymap.Matches(keyStr, v.keymap.Select):
		if r := v.list.SelectedReport(); r != nil {
			id := r.ID
			return v, func() tea.Msg { return messages.ReportSelected{ID: id} }
		}
	case keymap.Matches(keyStr, v.keymap.Filter):
		v.mode = modeFilter
		return v, v.filter.Focus()
	case keymap.Matches(keyStr, v.keymap.Delete):
		if r := v.list.SelectedReport(); r != nil {
			v.mode = modeConfirmDelete
			v.pending = r.ID
			v.bar.SetState(status.StateConfirm)
			v.bar.SetMessage(fmt.Sprintf("Delete report for %s?", r.Header.DriverLabel()))
		}
	case keymap.Matches(keyStr, v.keymap.Reload):
		v.loading = true
		v.bar.SetState(status.StateLoading)
		return v, v.load()
	case keymap.Matches(keyStr, v.keymap.Back):
		if v.list.Filter() != "" {
			v.filter.Reset()
			v.list.SetFilter("")
			v.syncBar()
			return v, nil
		}
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	case keymap.Matches(keyStr, v.keymap.Quit):
		return v, tea.Quit
	}
	return v, nil
}

func (v *View) handleFilterKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // only submit and cancel leave filter mode
	switch msg.Type {
	case tea.KeyEnter:
		v.mode = modeBrowse
		v.filter.Blur()
		return v, nil
	case tea.KeyEsc:
		v.mode = modeBrowse
		v.filter.Blur()
		v.filter.Reset()
		v.list.SetFilter("")
		v.syncBar()
		return v, nil
	}

	var cmd tea.Cmd
	v.filter, cmd = v.filter.Update(msg)
	v.list.SetFilter(v.filter.Value())
	v.syncBar()
	return v, cmd
}

func (v *View) handleConfirmKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Confirm):
		id := v.pending
		v.mode = modeBrowse
		v.pending = ""
		v.bar.SetState(status.StateLoading)
		v.bar.SetMessage("")
		return v, v.remove(id)
	case keymap.Matches(keyStr, v.keymap.Cancel):
		v.mode = modeBrowse
		v.pending = ""
		v.bar.SetMessage("")
		v.syncBar()
	}
	return v, nil
}

func (v *View) setError(err error) {
	v.err = err
	v.bar.SetState(status.StateError)
	v.bar.SetMessage(err.Error())
}

func (v *View) syncBar() {
	v.bar.SetState(status.StateReports)
	v.bar.SetCount(v.list.Count())
}

// View renders the report list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Reports"))
	b.WriteString("\n\n")

	if v.mode == modeFilter || v.list.Filter() != "" {
		b.WriteString(v.filter.View())
		b.WriteString("\n\n")
	}

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading reports..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err)))
	default:
		b.WriteString(v.list.View())
	}

	b.WriteString("\n\n")
	b.WriteString(v.bar.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetDimensions(width, height-6)
	v.filter.SetWidth(width)
	v.bar.SetWidth(width)
}

// Filtering reports whether the filter input has focus.
func (v *View) Filtering() bool {
	return v.mode == modeFilter
}

// Confirming reports whether a deletion awaits confirmation.
func (v *View) Confirming() bool {
	return v.mode == modeConfirmDelete
}

// Count returns the number of visible reports.
func (v *View) Count() int {
	return v.list.Count()
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
