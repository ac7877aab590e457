package update

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mindslayer001/tracebug/internal/editor"
	"github.com/mindslayer001/tracebug/internal/models"
	"github.com/mindslayer001/tracebug/internal/render"
	"github.com/mindslayer001/tracebug/ui/components"
)

func HandleUpdateWithEventBus(appModel *models.AppModel, msg tea.Msg, env Env) tea.Cmd {
	cmd := dispatch(appModel, msg, env)
	if affectsResponse(msg) {
		RefreshResponse(appModel)
	}
	return cmd
}

// affectsResponse reports whether msg can change what the response pane
// shows. Keystrokes and cursor blinks skip the markdown re-render.
func affectsResponse(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case CoreEventMsg, tea.WindowSizeMsg, spinner.TickMsg,
		render.CopyResultMsg, render.CopyResetMsg:
		return true
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+n", "ctrl+p":
			return true
		}
	}
	return false
}

func dispatch(appModel *models.AppModel, msg tea.Msg, env Env) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return HandleKeyMsgWithEventBus(appModel, msg, env)
	case tea.WindowSizeMsg:
		HandleWindowSizeMsg(appModel, msg)
		return nil
	case CoreEventMsg:
		return HandleCoreEvent(appModel, msg)
	case editor.FileLoadedMsg:
		HandleFileLoaded(appModel, msg, env)
		return nil
	case editor.FileLoadFailedMsg:
		HandleFileLoadFailed(appModel, msg, env)
		return nil
	case render.CopyResultMsg:
		return HandleCopyResult(appModel, msg, env)
	case render.CopyResetMsg:
		msg.Block.HandleCopyReset(msg)
		return nil
	case spinner.TickMsg:
		if !appModel.Submission.IsPending() {
			return nil
		}
		var cmd tea.Cmd
		appModel.Spinner, cmd = appModel.Spinner.Update(msg)
		return cmd
	}

	// Directory listings and cursor blinks
	if appModel.PickerOpen {
		return updatePicker(appModel, msg)
	}
	return appModel.Editor.Update(msg)
}

// RefreshResponse re-renders the response pane into the viewport
func RefreshResponse(appModel *models.AppModel) {
	content := components.RenderResponse(
		appModel.Submission,
		appModel.Document,
		appModel.Spinner.View(),
		appModel.SelectedBlock,
		appModel.Response.Width,
	)
	appModel.Response.SetContent(content)
}
