package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mindslayer001/tracebug/internal/update"
	"github.com/mindslayer001/tracebug/ui/components"
	"github.com/mindslayer001/tracebug/ui/styles"
)

func (m *AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textarea.Blink,
		m.dispatcher.ListenForCoreEvents(),
	}
	if m.preload != "" {
		cmds = append(cmds, m.appModel.Editor.LoadFromFile(m.preload))
	}
	return tea.Batch(cmds...)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle core events and continue listening
	if coreEvent, ok := msg.(update.CoreEventMsg); ok {
		cmd := update.HandleCoreEvent(&m.appModel, coreEvent)
		update.RefreshResponse(&m.appModel)
		return m, tea.Batch(cmd, m.dispatcher.ListenForCoreEvents())
	}

	cmd := update.HandleUpdateWithEventBus(&m.appModel, msg, m.env)
	return m, cmd
}

func (m *AppModel) View() string {
	var b strings.Builder

	if m.appModel.PickerOpen {
		b.WriteString(components.RenderPicker(m.appModel.Picker, m.appModel.Width))
	} else {
		b.WriteString(components.RenderEditor(m.appModel.Editor, m.appModel.Submission.IsPending(), m.appModel.Width))
	}
	b.WriteString("\n")

	b.WriteString(lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle().Render("Analysis"),
		m.appModel.Response.View(),
	))
	b.WriteString("\n")

	status := m.appModel.Status
	if m.appModel.BaseURL != "" {
		status += " · " + m.appModel.BaseURL
	}
	b.WriteString(components.RenderStatus(status, m.appModel.Notice, m.appModel.Width))

	return b.String()
}
