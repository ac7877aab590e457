package editor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// Indent is inserted in place of a tab keystroke
const Indent = "  "

// AcceptedExtensions pre-filters the file picker. Loading itself accepts any text.
var AcceptedExtensions = []string{
	".py", ".js", ".ts", ".jsx", ".tsx", ".java", ".cpp", ".c", ".cs", ".php", ".rb", ".go", ".rs",
}

// FileReadError reports a file that could not be loaded into the editor
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}

// FileLoadedMsg carries the full text of a file read by LoadFromFile
type FileLoadedMsg struct {
	Name    string
	Content string
}

// FileLoadFailedMsg is returned when LoadFromFile could not read the file
type FileLoadFailedMsg struct {
	Err *FileReadError
}

// Editor owns the snippet text and the name of the file it came from.
// It is only mutated from the Bubble Tea update loop.
//
// Text goes through the textarea, which expands literal tab characters to
// four spaces, including tabs inside string literals. Line endings are
// normalized to "\n" before that.
type Editor struct {
	textarea       textarea.Model
	sourceFileName string
	err            error
	onClear        func()
}

// New creates an editor. onClear is invoked after every Clear so the
// submission side can drop whatever it is holding.
func New(onClear func()) *Editor {
	ta := textarea.New()
	ta.Placeholder = "Write your code here..."
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Focus()

	return &Editor{
		textarea: ta,
		onClear:  onClear,
	}
}

func (e *Editor) Content() string {
	return e.textarea.Value()
}

func (e *Editor) SourceFileName() string {
	return e.sourceFileName
}

// Err returns the last file load error, if any
func (e *Editor) Err() error {
	return e.err
}

// SetContent replaces the snippet text unconditionally
func (e *Editor) SetContent(text string) {
	e.textarea.SetValue(NormalizeLineEndings(text))
}

// NormalizeLineEndings converts CRLF and lone CR line breaks to LF. The
// textarea treats a bare "\r" as its own line break.
func NormalizeLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// LoadFromFile reads the file off the update loop and reports back with
// FileLoadedMsg or FileLoadFailedMsg.
func (e *Editor) LoadFromFile(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return FileLoadFailedMsg{Err: &FileReadError{Path: path, Err: err}}
		}
		return FileLoadedMsg{
			Name:    filepath.Base(path),
			Content: NormalizeLineEndings(string(data)),
		}
	}
}

// ApplyFileLoaded replaces the content with the loaded file
func (e *Editor) ApplyFileLoaded(msg FileLoadedMsg) {
	e.textarea.SetValue(NormalizeLineEndings(msg.Content))
	e.sourceFileName = msg.Name
	e.err = nil
}

// ApplyFileLoadFailed records the error and leaves the content untouched
func (e *Editor) ApplyFileLoadFailed(msg FileLoadFailedMsg) {
	e.err = msg.Err
}

// InsertTabAtCursor inserts Indent at the caret and leaves the caret after it
func (e *Editor) InsertTabAtCursor() {
	e.textarea.InsertString(Indent)
}

func (e *Editor) Clear() {
	e.textarea.Reset()
	e.sourceFileName = ""
	e.err = nil
	if e.onClear != nil {
		e.onClear()
	}
}

func (e *Editor) SetSize(width, height int) {
	e.textarea.SetWidth(width)
	e.textarea.SetHeight(height)
}

func (e *Editor) Focus() tea.Cmd {
	return e.textarea.Focus()
}

func (e *Editor) Blur() {
	e.textarea.Blur()
}

// Update feeds input to the textarea. Tab is intercepted so focus stays here.
func (e *Editor) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyTab {
		e.InsertTabAtCursor()
		return nil
	}

	var cmd tea.Cmd
	e.textarea, cmd = e.textarea.Update(msg)
	return cmd
}

func (e *Editor) View() string {
	return e.textarea.View()
}
