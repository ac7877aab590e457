package models

import (
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/mindslayer001/tracebug/internal/editor"
	"github.com/mindslayer001/tracebug/internal/render"
)

// AppModel represents the UI state - only local UI concerns
type AppModel struct {
	Editor        *editor.Editor   // Owns the snippet
	Submission    SubmissionState  // Last state pushed by core
	Revision      uint64           // Revision of Submission
	Document      *render.Document // Parsed response, set only while Succeeded
	SelectedBlock int              // Code block targeted by copy
	Picker        filepicker.Model // File picker
	PickerOpen    bool             // Whether the picker replaces the editor
	Spinner       spinner.Model    // Pending indicator
	Response      viewport.Model   // Scrollable response pane
	Status        string           // Status bar text
	Notice        string           // Transient notice (copy failures etc.)
	BaseURL       string           // Backend shown in the status bar
	Width         int              // Terminal width
	Height        int              // Terminal height
}
