package update

import (
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mindslayer001/tracebug/internal/editor"
	"github.com/mindslayer001/tracebug/internal/eventbus"
	"github.com/mindslayer001/tracebug/internal/models"
	"github.com/mindslayer001/tracebug/internal/render"
)

type failingClipboard struct{}

func (failingClipboard) WriteAll(string) error { return errors.New("no clipboard") }

func newTestModel(t *testing.T) (*models.AppModel, Env) {
	t.Helper()
	eb := eventbus.NewEventBus()
	t.Cleanup(eb.Close)

	appModel := &models.AppModel{
		Editor: editor.New(func() {
			_ = eb.SendToCore(eventbus.ResetEvent{})
		}),
		Submission: models.IdleState(),
		Spinner:    spinner.New(),
		Response:   viewport.New(80, 20),
	}
	return appModel, Env{EventBus: eb, Clipboard: failingClipboard{}, Logger: zap.NewNop()}
}

func ctrl(key tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: key}
}

func pendingCoreEvents(eb *eventbus.EventBus) int {
	return len(eb.UIToCore())
}

func TestSubmitSendsEditorContent(t *testing.T) {
	appModel, env := newTestModel(t)
	appModel.Editor.SetContent("print('hello')")

	HandleKeyMsgWithEventBus(appModel, ctrl(tea.KeyCtrlS), env)

	require.Equal(t, 1, pendingCoreEvents(env.EventBus))
	event := <-env.EventBus.UIToCore()
	assert.Equal(t, eventbus.SubmitSnippetEvent{Code: "print('hello')"}, event)
}

func TestSubmitWhilePendingDoesNothing(t *testing.T) {
	appModel, env := newTestModel(t)
	appModel.Editor.SetContent("x = 1")
	appModel.Submission = models.PendingState()

	HandleKeyMsgWithEventBus(appModel, ctrl(tea.KeyCtrlS), env)

	assert.Zero(t, pendingCoreEvents(env.EventBus))
}

func TestClearSendsReset(t *testing.T) {
	appModel, env := newTestModel(t)
	appModel.Editor.SetContent("x = 1")

	HandleKeyMsgWithEventBus(appModel, ctrl(tea.KeyCtrlL), env)

	assert.Empty(t, appModel.Editor.Content())
	require.Equal(t, 1, pendingCoreEvents(env.EventBus))
	assert.Equal(t, eventbus.ResetEvent{}, <-env.EventBus.UIToCore())
}

func TestFileLoadDoesNotSubmit(t *testing.T) {
	appModel, env := newTestModel(t)

	HandleUpdateWithEventBus(appModel, editor.FileLoadedMsg{Name: "a.py", Content: "pass"}, env)

	assert.Equal(t, "pass", appModel.Editor.Content())
	assert.Equal(t, "a.py", appModel.Editor.SourceFileName())
	assert.Zero(t, pendingCoreEvents(env.EventBus))
	assert.Equal(t, models.Idle, appModel.Submission.Kind)
}

func TestCoreEventIgnoresOlderRevision(t *testing.T) {
	appModel, _ := newTestModel(t)

	resp := models.AnalysisResponse{Code: "x=1", Length: 3, Message: "Looks fine."}
	HandleCoreEvent(appModel, CoreEventMsg{Event: eventbus.StateUpdateEvent{
		State:    models.SucceededState(resp),
		Revision: 4,
	}})
	HandleCoreEvent(appModel, CoreEventMsg{Event: eventbus.StateUpdateEvent{
		State:    models.PendingState(),
		Revision: 3,
	}})

	assert.Equal(t, models.Succeeded, appModel.Submission.Kind)
	assert.Equal(t, uint64(4), appModel.Revision)
	require.NotNil(t, appModel.Document)
}

func TestCoreEventPendingStartsSpinner(t *testing.T) {
	appModel, _ := newTestModel(t)

	cmd := HandleCoreEvent(appModel, CoreEventMsg{Event: eventbus.StateUpdateEvent{
		State:    models.PendingState(),
		Revision: 1,
	}})

	assert.NotNil(t, cmd)
	assert.Equal(t, "Sending...", appModel.Status)
	assert.Nil(t, appModel.Document)
}

func TestCoreEventSuccessBuildsDocument(t *testing.T) {
	appModel, _ := newTestModel(t)

	resp := models.AnalysisResponse{
		Code:    "x=1",
		Length:  3,
		Message: "Looks fine. ```python\nx=1\n```",
	}
	HandleCoreEvent(appModel, CoreEventMsg{Event: eventbus.StateUpdateEvent{
		State:    models.SucceededState(resp),
		Revision: 2,
	}})

	require.NotNil(t, appModel.Document)
	require.Len(t, appModel.Document.Blocks, 1)
	assert.Equal(t, "python", appModel.Document.Blocks[0].Language)
	assert.Equal(t, "Analysis complete", appModel.Status)
}

func TestCopyWithoutBlocksShowsNotice(t *testing.T) {
	appModel, env := newTestModel(t)

	cmd := HandleKeyMsgWithEventBus(appModel, ctrl(tea.KeyCtrlY), env)

	assert.Nil(t, cmd)
	assert.Equal(t, "No code block to copy", appModel.Notice)
}

func TestCopyFailureShowsNoticeAndKeepsLabel(t *testing.T) {
	appModel, env := newTestModel(t)
	HandleCoreEvent(appModel, CoreEventMsg{Event: eventbus.StateUpdateEvent{
		State: models.SucceededState(models.AnalysisResponse{
			Message: "```go\nfmt.Println(1)\n```",
		}),
		Revision: 1,
	}})

	cmd := HandleKeyMsgWithEventBus(appModel, ctrl(tea.KeyCtrlY), env)
	require.NotNil(t, cmd)

	HandleUpdateWithEventBus(appModel, cmd(), env)

	assert.Contains(t, appModel.Notice, "Copy failed")
	assert.False(t, appModel.Document.Blocks[0].Copied())
}

func TestSelectBlockWraps(t *testing.T) {
	appModel, env := newTestModel(t)
	HandleCoreEvent(appModel, CoreEventMsg{Event: eventbus.StateUpdateEvent{
		State: models.SucceededState(models.AnalysisResponse{
			Message: "```a\n1\n```\n\n```b\n2\n```",
		}),
		Revision: 1,
	}})

	HandleKeyMsgWithEventBus(appModel, ctrl(tea.KeyCtrlP), env)
	assert.Equal(t, 1, appModel.SelectedBlock)

	HandleKeyMsgWithEventBus(appModel, ctrl(tea.KeyCtrlN), env)
	assert.Equal(t, 0, appModel.SelectedBlock)
}

func TestTabIndentsInsteadOfLeavingEditor(t *testing.T) {
	appModel, env := newTestModel(t)

	HandleKeyMsgWithEventBus(appModel, ctrl(tea.KeyTab), env)

	assert.Equal(t, editor.Indent, appModel.Editor.Content())
}

func TestResponseRefreshesOnlyForRelevantMessages(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.Msg
		want bool
	}{
		{"core event", CoreEventMsg{}, true},
		{"resize", tea.WindowSizeMsg{Width: 80, Height: 24}, true},
		{"spinner", spinner.TickMsg{}, true},
		{"copy result", render.CopyResultMsg{}, true},
		{"copy reset", render.CopyResetMsg{}, true},
		{"next block", ctrl(tea.KeyCtrlN), true},
		{"typing", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, false},
		{"page down", ctrl(tea.KeyPgDown), false},
		{"file loaded", editor.FileLoadedMsg{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, affectsResponse(tt.msg))
		})
	}
}

func TestTypingDoesNotRerenderResponse(t *testing.T) {
	appModel, env := newTestModel(t)
	HandleUpdateWithEventBus(appModel, CoreEventMsg{Event: eventbus.StateUpdateEvent{
		State:    models.SucceededState(models.AnalysisResponse{Message: "Looks fine."}),
		Revision: 1,
	}}, env)
	require.Contains(t, appModel.Response.View(), "Looks fine.")

	// Content set behind the handler's back stays until a relevant message
	appModel.Response.SetContent("sentinel")
	HandleUpdateWithEventBus(appModel, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, env)
	assert.Contains(t, appModel.Response.View(), "sentinel")

	HandleUpdateWithEventBus(appModel, tea.WindowSizeMsg{Width: 80, Height: 40}, env)
	assert.Contains(t, appModel.Response.View(), "Looks fine.")
}

func TestFileLoadClearsFailedSubmission(t *testing.T) {
	appModel, env := newTestModel(t)
	appModel.Submission = models.FailedState("Backend returned HTTP 500: Internal Server Error")
	appModel.Notice = "Copy failed: no clipboard"

	HandleUpdateWithEventBus(appModel, editor.FileLoadedMsg{Name: "a.py", Content: "pass"}, env)

	assert.Empty(t, appModel.Notice)
	require.Equal(t, 1, pendingCoreEvents(env.EventBus))
	assert.Equal(t, eventbus.ResetEvent{}, <-env.EventBus.UIToCore())
}

func TestFileLoadKeepsSuccessfulResponse(t *testing.T) {
	appModel, env := newTestModel(t)
	appModel.Submission = models.SucceededState(models.AnalysisResponse{Message: "ok"})

	HandleUpdateWithEventBus(appModel, editor.FileLoadedMsg{Name: "a.py", Content: "pass"}, env)

	assert.Zero(t, pendingCoreEvents(env.EventBus))
}
