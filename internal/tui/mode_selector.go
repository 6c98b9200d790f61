package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/egoavara/rau/internal/config"
	"github.com/egoavara/rau/internal/i18n"
)

// ModeOption represents an update mode option
type ModeOption struct {
	Mode        config.AutoUpdateMode
	Label       string
	Description string
	Preview     string
}

// ModeSelectorModel is the bubbletea model for mode selection
type ModeSelectorModel struct {
	options   []ModeOption
	cursor    int
	selected  config.AutoUpdateMode
	quitting  bool
	confirmed bool
}

// NewModeSelectorModel creates a mode selector with current preselected
func NewModeSelectorModel(current config.AutoUpdateMode) ModeSelectorModel {
	options := []ModeOption{
		{
			Mode:        config.AutoUpdateModeNotify,
			Label:       i18n.Text("mode.notify.label", "Notify"),
			Description: i18n.Text("mode.notify.desc", "Ask before installing a new version"),
			Preview:     "$ rau check\n\nA new update is ready!\nVersion 1.2.0 is ready to install.\n\n[Update now] [Later]",
		},
		{
			Mode:        config.AutoUpdateModeAuto,
			Label:       i18n.Text("mode.auto.label", "Automatic"),
			Description: i18n.Text("mode.auto.desc", "Install and restart without asking"),
			Preview:     "$ rau check\n\nUpdate is in progress...\n✓ restarted on 1.2.0",
		},
		{
			Mode:        config.AutoUpdateModeDisabled,
			Label:       i18n.Text("mode.disabled.label", "Disabled"),
			Description: i18n.Text("mode.disabled.desc", "Never check for updates"),
			Preview:     "$ rau check\n\nupdate checks are disabled",
		},
	}

	m := ModeSelectorModel{
		options:  options,
		selected: config.AutoUpdateModeNotify,
	}
	for i, opt := range options {
		if opt.Mode == current {
			m.cursor = i
			m.selected = current
		}
	}
	return m
}

func (m ModeSelectorModel) Init() tea.Cmd {
	return nil
}

func (m ModeSelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}

		case "enter", " ":
			m.selected = m.options[m.cursor].Mode
			m.confirmed = true
			m.quitting = true
			return m, tea.Quit

		case "esc":
			// Keep the current mode
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m ModeSelectorModel) View() string {
	if m.quitting {
		return ""
	}

	var left strings.Builder
	left.WriteString(titleStyle.Render(i18n.Text("mode.title", "Select update mode")))
	left.WriteString("\n\n")

	for i, opt := range m.options {
		if i == m.cursor {
			left.WriteString(selectedStyle.Render(fmt.Sprintf("▸ %s", opt.Label)))
			left.WriteString("\n")
			left.WriteString(descSelectedStyle.Render(opt.Description))
		} else {
			left.WriteString(optionStyle.Render(fmt.Sprintf("  %s", opt.Label)))
			left.WriteString("\n")
			left.WriteString(descStyle.Render(opt.Description))
		}
		left.WriteString("\n\n")
	}

	help := helpStyle.Render("↑/↓: " + i18n.Text("mode.help.move", "move") + " | Enter: " + i18n.Text("mode.help.select", "select"))
	left.WriteString(help)

	preview := previewTitleStyle.Render(i18n.Text("mode.preview", "Preview:")) + "\n\n" + m.options[m.cursor].Preview
	rightBox := previewBoxStyle.Width(40).Height(10).Render(preview)

	return lipgloss.JoinHorizontal(lipgloss.Top, boxStyle.Render(left.String()), "  ", rightBox)
}

// GetSelected returns the selected mode
func (m ModeSelectorModel) GetSelected() config.AutoUpdateMode {
	return m.selected
}

// IsConfirmed returns whether the user confirmed selection
func (m ModeSelectorModel) IsConfirmed() bool {
	return m.confirmed
}

// RunModeSelector launches the interactive mode selector
func RunModeSelector(current config.AutoUpdateMode) (config.AutoUpdateMode, bool, error) {
	p := tea.NewProgram(NewModeSelectorModel(current))

	finalModel, err := p.Run()
	if err != nil {
		return current, false, err
	}

	m := finalModel.(ModeSelectorModel)
	if !m.IsConfirmed() {
		return current, false, nil
	}
	return m.GetSelected(), true, nil
}
