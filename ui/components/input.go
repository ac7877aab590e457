package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mindslayer001/tracebug/internal/editor"
	"github.com/mindslayer001/tracebug/ui/styles"
)

// RenderEditor draws the editor pane with its file name, any file error and
// the submit control. The control reads "Sending..." and is dimmed while a
// submission is pending.
func RenderEditor(ed *editor.Editor, pending bool, width int) string {
	title := styles.TitleStyle().Render("Code Editor")
	if name := ed.SourceFileName(); name != "" {
		title += styles.FileNameStyle().Render(name)
	}

	parts := []string{title, styles.EditorStyle(width, !pending).Render(ed.View())}

	if err := ed.Err(); err != nil {
		parts = append(parts, styles.ErrorStyle().Render(err.Error()))
	}

	label := "Send [ctrl+s]"
	if pending {
		label = "Sending..."
	}
	parts = append(parts, styles.ButtonStyle(pending).Render(label))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
