package app

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mindslayer001/tracebug/internal/config"
	"github.com/mindslayer001/tracebug/internal/editor"
	"github.com/mindslayer001/tracebug/internal/eventbus"
)

type nopClipboard struct{}

func (nopClipboard) WriteAll(string) error { return nil }

func newTestApplication(t *testing.T, opts Options) *Application {
	t.Helper()
	t.Setenv("TRACEBUG_BASE_URL", "")
	cfg, err := config.LoadConfigFrom(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	opts.Clipboard = nopClipboard{}
	application, err := NewApplication(cfg, opts, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		application.dispatcher.Stop()
		application.eventBus.Close()
	})
	return application
}

func TestBaseURLOptionOverridesConfig(t *testing.T) {
	application := newTestApplication(t, Options{BaseURL: "http://override:9000"})
	assert.Equal(t, "http://override:9000", application.model.appModel.BaseURL)

	application = newTestApplication(t, Options{})
	assert.Equal(t, config.DefaultBaseURL, application.model.appModel.BaseURL)
}

func TestClearingEditorSendsReset(t *testing.T) {
	application := newTestApplication(t, Options{})

	application.model.appModel.Editor.Clear()

	select {
	case event := <-application.eventBus.UIToCore():
		assert.Equal(t, eventbus.ResetEvent{}, event)
	default:
		t.Fatal("expected a reset event")
	}
}

func TestInitialViewShowsIdlePlaceholder(t *testing.T) {
	application := newTestApplication(t, Options{})
	model := application.model

	model.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	view := ansi.Strip(model.View())
	assert.Contains(t, view, "Code Editor")
	assert.Contains(t, view, "No response yet.")
	assert.Contains(t, view, "Send [ctrl+s]")
}

func TestFileLoadUpdatesEditor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.py")
	require.NoError(t, os.WriteFile(path, []byte("pass"), 0600))

	application := newTestApplication(t, Options{File: path})
	model := application.model

	msg := model.appModel.Editor.LoadFromFile(path)()
	model.Update(msg)

	assert.Equal(t, "pass", model.appModel.Editor.Content())
	assert.Equal(t, editor.FileLoadedMsg{Name: "a.py", Content: "pass"}, msg)
	assert.Equal(t, "a.py", model.appModel.Editor.SourceFileName())
}
