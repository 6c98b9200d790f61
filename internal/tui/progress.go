package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/egoavara/rau/internal/rau"
)

// ProgressModel shows a spinner until dismissed.
type ProgressModel struct {
	req         rau.DialogRequest
	spinner     spinner.Model
	done        bool
	interrupted bool
}

// NewProgressModel creates a progress indicator for req.
func NewProgressModel(req rau.DialogRequest) ProgressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle
	return ProgressModel{req: req, spinner: s}
}

// ID identifies the indicator as a page.
func (m ProgressModel) ID() string {
	return "progress/" + m.req.Title
}

func (m ProgressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dismissMsg:
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.interrupted = true
			m.done = true
			return m, tea.Quit
		case "esc":
			// Hiding a cancelable indicator does not stop the work behind it.
			if m.req.Cancelable {
				m.done = true
				return m, tea.Quit
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m ProgressModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	if m.req.Title != "" {
		b.WriteString(titleStyle.UnsetMarginBottom().Render(m.req.Title))
		if m.req.Message != "" {
			b.WriteString(": ")
		}
	}
	b.WriteString(messageStyle.Render(m.req.Message))
	b.WriteString("\n")
	return b.String()
}

// Interrupted reports whether the user pressed ctrl+c.
func (m ProgressModel) Interrupted() bool {
	return m.interrupted
}
