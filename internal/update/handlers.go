package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/mindslayer001/tracebug/internal/editor"
	"github.com/mindslayer001/tracebug/internal/eventbus"
	"github.com/mindslayer001/tracebug/internal/models"
	"github.com/mindslayer001/tracebug/internal/render"
)

// Env carries the collaborators handlers need besides the model
type Env struct {
	EventBus  *eventbus.EventBus
	Clipboard render.Clipboard
	Logger    *zap.Logger
}

// HandleKeyMsgWithEventBus handles keyboard input using event bus
func HandleKeyMsgWithEventBus(appModel *models.AppModel, keyMsg tea.KeyMsg, env Env) tea.Cmd {
	if appModel.PickerOpen {
		return handlePickerKey(appModel, keyMsg)
	}

	switch keyMsg.String() {
	case "ctrl+c":
		return tea.Quit
	case "ctrl+s":
		return submit(appModel, env)
	case "ctrl+l":
		appModel.Notice = ""
		appModel.Editor.Clear()
		return nil
	case "ctrl+o":
		appModel.PickerOpen = true
		appModel.Editor.Blur()
		return appModel.Picker.Init()
	case "ctrl+n":
		selectBlock(appModel, appModel.SelectedBlock+1)
		return nil
	case "ctrl+p":
		selectBlock(appModel, appModel.SelectedBlock-1)
		return nil
	case "ctrl+y":
		return copySelected(appModel, env)
	case "pgup", "pgdown":
		var cmd tea.Cmd
		appModel.Response, cmd = appModel.Response.Update(keyMsg)
		return cmd
	}

	return appModel.Editor.Update(keyMsg)
}

// submit is a no-op while a submission is pending
func submit(appModel *models.AppModel, env Env) tea.Cmd {
	if appModel.Submission.IsPending() {
		return nil
	}
	appModel.Notice = ""

	if err := env.EventBus.SendToCore(eventbus.SubmitSnippetEvent{Code: appModel.Editor.Content()}); err != nil {
		env.Logger.Error("failed to send submission to core", zap.Error(err))
		appModel.Notice = "Error sending snippet: " + err.Error()
	}
	return nil
}

func selectBlock(appModel *models.AppModel, index int) {
	if appModel.Document == nil || len(appModel.Document.Blocks) == 0 {
		return
	}
	count := len(appModel.Document.Blocks)
	appModel.SelectedBlock = (index%count + count) % count
}

func copySelected(appModel *models.AppModel, env Env) tea.Cmd {
	var block *render.CodeBlock
	if appModel.Document != nil {
		block = appModel.Document.Block(appModel.SelectedBlock)
	}
	if block == nil {
		appModel.Notice = "No code block to copy"
		return nil
	}
	return block.CopyCmd(env.Clipboard)
}

func handlePickerKey(appModel *models.AppModel, keyMsg tea.KeyMsg) tea.Cmd {
	switch keyMsg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		appModel.PickerOpen = false
		return appModel.Editor.Focus()
	}
	return updatePicker(appModel, keyMsg)
}

// updatePicker forwards msg to the picker and starts a file load when a
// file was chosen
func updatePicker(appModel *models.AppModel, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	appModel.Picker, cmd = appModel.Picker.Update(msg)

	if didSelect, path := appModel.Picker.DidSelectFile(msg); didSelect {
		appModel.PickerOpen = false
		return tea.Batch(cmd, appModel.Editor.Focus(), appModel.Editor.LoadFromFile(path))
	}
	if didSelect, path := appModel.Picker.DidSelectDisabledFile(msg); didSelect {
		appModel.Notice = "Not a supported source file: " + path
	}
	return cmd
}

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// HandleCoreEvent processes events from the core
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg CoreEventMsg) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.StateUpdateEvent:
		if event.Revision < appModel.Revision {
			return nil
		}
		wasPending := appModel.Submission.IsPending()
		previous := appModel.Submission.Response

		appModel.Submission = event.State
		appModel.Revision = event.Revision

		switch event.State.Kind {
		case models.Succeeded:
			if event.State.Response != previous || appModel.Document == nil {
				appModel.Document = render.NewDocument(event.State.Response.Message)
				appModel.SelectedBlock = 0
				appModel.Response.GotoTop()
			}
			appModel.Status = "Analysis complete"
		case models.Pending:
			appModel.Document = nil
			appModel.Status = "Sending..."
			if !wasPending {
				return appModel.Spinner.Tick
			}
		case models.Failed:
			appModel.Document = nil
			appModel.Status = "Error"
		default:
			appModel.Document = nil
			appModel.Status = "Ready"
		}
	}

	return nil
}

// HandleFileLoaded applies a finished file read to the editor. A load clears
// error state: the file error, the notice and a Failed submission. Never
// submits.
func HandleFileLoaded(appModel *models.AppModel, msg editor.FileLoadedMsg, env Env) {
	appModel.Editor.ApplyFileLoaded(msg)
	appModel.Notice = ""
	appModel.Status = "Loaded " + msg.Name
	env.Logger.Info("file loaded", zap.String("file", msg.Name), zap.Int("bytes", len(msg.Content)))

	if appModel.Submission.Kind == models.Failed {
		if err := env.EventBus.SendToCore(eventbus.ResetEvent{}); err != nil {
			env.Logger.Error("failed to send reset to core", zap.Error(err))
		}
	}
}

// HandleFileLoadFailed records a failed file read without touching content
func HandleFileLoadFailed(appModel *models.AppModel, msg editor.FileLoadFailedMsg, env Env) {
	appModel.Editor.ApplyFileLoadFailed(msg)
	env.Logger.Warn("file load failed", zap.String("path", msg.Err.Path), zap.Error(msg.Err.Err))
}

// HandleCopyResult applies a clipboard outcome to its block. Failures are
// logged and surfaced as a notice; nothing else changes.
func HandleCopyResult(appModel *models.AppModel, msg render.CopyResultMsg, env Env) tea.Cmd {
	cmd := msg.Block.HandleCopyResult(msg)
	if msg.Err != nil {
		env.Logger.Warn("clipboard write failed",
			zap.Int("block", msg.Block.Index),
			zap.Error(msg.Err))
		appModel.Notice = "Copy failed: " + msg.Err.Error()
	}
	return cmd
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height

	// Editor takes roughly 40% of the screen, the rest goes to the response
	editorHeight := max(sizeMsg.Height*2/5, 3)
	responseHeight := max(sizeMsg.Height-editorHeight-8, 3)

	appModel.Editor.SetSize(max(sizeMsg.Width-4, 10), editorHeight)
	appModel.Response.Width = sizeMsg.Width
	appModel.Response.Height = responseHeight
	appModel.Picker.Height = editorHeight
}
