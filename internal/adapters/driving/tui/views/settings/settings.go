// Package settings provides the read-only settings view for the TUI.
package settings

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/dashreport/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/dashreport/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dashreport/internal/core/domain"
	"github.com/custodia-labs/dashreport/internal/core/ports/driving"
)

// View shows the effective settings and where they are stored.
type View struct {
	styles  *styles.Styles
	service driving.SettingsService

	settings *domain.AppSettings
	path     string
	err      error
	width    int
	height   int
}

// NewView creates a new settings view. service may be nil.
func NewView(s *styles.Styles, service driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{styles: s, service: service}
}

// Init loads the settings.
func (v *View) Init() tea.Cmd {
	if v.service == nil {
		return nil
	}
	svc := v.service
	return func() tea.Msg {
		settings, err := svc.Get()
		return messages.SettingsLoaded{Settings: settings, Path: svc.ConfigPath(), Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case messages.SettingsLoaded:
		v.err = msg.Err
		if msg.Err == nil {
			v.settings = msg.Settings
			v.path = msg.Path
		}

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
	}
	return v, nil
}

// View renders the settings.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	switch {
	case v.service == nil:
		b.WriteString(v.styles.Muted.Render("Settings are not available"))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err)))
	case v.settings == nil:
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
	default:
		for _, row := range v.rows() {
			b.WriteString(v.styles.Label.Render(row[0]))
			b.WriteString(v.styles.Normal.Render(row[1]))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Stored in " + v.path))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Change with: dashreport config set <key> <value>"))
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[esc] back"))
	return b.String()
}

func (v *View) rows() [][2]string {
	s := v.settings
	return [][2]string{
		{"storage.backend", string(s.Storage.Backend)},
		{"storage.data_dir", orDefault(s.Storage.DataDir)},
		{"server.addr", s.Server.Addr},
		{"server.rate_limit", strconv.Itoa(s.Server.RateLimit)},
		{"server.max_upload_mb", strconv.Itoa(s.Server.MaxUploadMB)},
		{"watch.dir", orDefault(s.Watch.Dir)},
		{"export.dir", orDefault(s.Export.Dir)},
	}
}

func orDefault(s string) string {
	if s == "" {
		return "(default)"
	}
	return s
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Settings returns the loaded settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}
