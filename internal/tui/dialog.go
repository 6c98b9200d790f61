package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/egoavara/rau/internal/i18n"
	"github.com/egoavara/rau/internal/rau"
)

// dismissMsg closes a dialog from outside the program.
type dismissMsg struct{}

// DialogModel is the bubbletea model for a dialog with buttons.
type DialogModel struct {
	req         rau.DialogRequest
	cursor      int
	chosen      int
	done        bool
	interrupted bool
}

// NewDialogModel creates a dialog model for req.
func NewDialogModel(req rau.DialogRequest) DialogModel {
	return DialogModel{req: req, chosen: -1}
}

// ID identifies the dialog as a page.
func (m DialogModel) ID() string {
	return "dialog/" + m.req.Title
}

func (m DialogModel) Init() tea.Cmd {
	return nil
}

func (m DialogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

		case "left", "h", "up", "k", "shift+tab":
			if m.cursor > 0 {
				m.cursor--
			}

		case "right", "l", "down", "j", "tab":
			if m.cursor < len(m.req.Buttons)-1 {
				m.cursor++
			}

		case "enter", " ":
			if len(m.req.Buttons) == 0 {
				return m, nil
			}
			m.chosen = m.cursor
			m.done = true
			return m, tea.Quit

		case "esc":
			if !m.req.Cancelable {
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m DialogModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	if m.req.Title != "" {
		b.WriteString(titleStyle.Render(m.req.Title))
		b.WriteString("\n")
	}
	if m.req.Message != "" {
		b.WriteString(messageStyle.Render(m.req.Message))
		b.WriteString("\n\n")
	}

	buttons := make([]string, 0, len(m.req.Buttons))
	for i, btn := range m.req.Buttons {
		if i == m.cursor {
			buttons = append(buttons, selectedStyle.Render("▸ "+btn.Text))
		} else {
			buttons = append(buttons, optionStyle.Render("  "+btn.Text))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	b.WriteString("\n")

	help := "←/→: " + i18n.Text("dialog.help.move", "move") + " | Enter: " + i18n.Text("dialog.help.select", "select")
	if m.req.Cancelable {
		help += " | Esc: " + i18n.Text("dialog.help.close", "close")
	}
	b.WriteString(helpStyle.Render(help))

	return boxStyle.Render(b.String())
}

// Chosen returns the picked button, if any.
func (m DialogModel) Chosen() (rau.Button, bool) {
	if m.chosen < 0 || m.chosen >= len(m.req.Buttons) {
		return rau.Button{}, false
	}
	return m.req.Buttons[m.chosen], true
}

// Interrupted reports whether the user pressed ctrl+c.
func (m DialogModel) Interrupted() bool {
	return m.interrupted
}
