package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/lipgloss"

	"github.com/mindslayer001/tracebug/internal/editor"
	"github.com/mindslayer001/tracebug/ui/styles"
)

func RenderPicker(picker filepicker.Model, width int) string {
	title := styles.TitleStyle().Render("Open File") +
		styles.FileNameStyle().Render(strings.Join(editor.AcceptedExtensions, " ")+"  (esc to cancel)")
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		styles.EditorStyle(width, true).Render(picker.View()),
	)
}
