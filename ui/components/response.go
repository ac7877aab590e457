package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/mindslayer001/tracebug/internal/models"
	"github.com/mindslayer001/tracebug/internal/render"
	"github.com/mindslayer001/tracebug/ui/styles"
)

const (
	idlePlaceholder = "No response yet."
	pendingLabel    = "Analyzing..."
)

// RenderResponse draws the response pane for the current submission state.
// doc is the parsed message of a Succeeded state and nil otherwise.
func RenderResponse(state models.SubmissionState, doc *render.Document, spinner string, selected int, width int) string {
	switch state.Kind {
	case models.Pending:
		return spinner + " " + pendingLabel

	case models.Failed:
		return styles.ErrorStyle().Width(max(width-2, 0)).Render(state.Error)

	case models.Succeeded:
		if state.Response == nil {
			return styles.PlaceholderStyle().Render(idlePlaceholder)
		}
		if doc == nil {
			doc = render.NewDocument(state.Response.Message)
		}
		length := styles.LengthStyle().Render("Length:") + fmt.Sprintf(" %d", state.Response.Length)
		body := doc.Render(width, render.TerminalCodeRenderer{
			Width:    width,
			Selected: doc.Block(selected),
		})
		return lipgloss.JoinVertical(lipgloss.Left, length, "", body)
	}

	return styles.PlaceholderStyle().Render(idlePlaceholder)
}
