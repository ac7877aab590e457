package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	// DefaultLanguage labels fences without a language tag
	DefaultLanguage = "text"

	// CopyFeedbackDuration is how long a block shows its copied state
	CopyFeedbackDuration = 2 * time.Second

	copyLabel   = "[ctrl+y] copy"
	copiedLabel = "✓ copied"
)

// Clipboard writes text to the system clipboard
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard is the OS clipboard
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// CopyResultMsg reports the outcome of a clipboard write started by CopyCmd
type CopyResultMsg struct {
	Block *CodeBlock
	Token int
	Err   error
}

// CopyResetMsg fires CopyFeedbackDuration after a successful copy
type CopyResetMsg struct {
	Block *CodeBlock
	Token int
}

// CodeBlock is one fenced block of a rendered response. Its copy state
// belongs to this instance only.
type CodeBlock struct {
	Index    int
	Language string
	Code     string // trimmed block text, exactly what gets copied

	copied    bool
	copyToken int
}

func NewCodeBlock(index int, language, code string) *CodeBlock {
	language = strings.TrimSpace(language)
	if language == "" {
		language = DefaultLanguage
	}
	return &CodeBlock{
		Index:    index,
		Language: language,
		Code:     strings.TrimSpace(code),
	}
}

func (b *CodeBlock) Copied() bool {
	return b.copied
}

func (b *CodeBlock) LineCount() int {
	return strings.Count(b.Code, "\n") + 1
}

// CopyCmd writes the block text to clip off the update loop
func (b *CodeBlock) CopyCmd(clip Clipboard) tea.Cmd {
	b.copyToken++
	token := b.copyToken
	text := b.Code

	return func() tea.Msg {
		return CopyResultMsg{Block: b, Token: token, Err: clip.WriteAll(text)}
	}
}

// HandleCopyResult applies a clipboard outcome. A success flips the copied
// flag and returns the timer that reverts it.
func (b *CodeBlock) HandleCopyResult(msg CopyResultMsg) tea.Cmd {
	if msg.Token != b.copyToken {
		return nil
	}
	if msg.Err != nil {
		b.copied = false
		return nil
	}

	b.copied = true
	token := msg.Token
	return tea.Tick(CopyFeedbackDuration, func(time.Time) tea.Msg {
		return CopyResetMsg{Block: b, Token: token}
	})
}

// HandleCopyReset reverts the copied flag unless a newer copy took over
func (b *CodeBlock) HandleCopyReset(msg CopyResetMsg) {
	if msg.Token == b.copyToken {
		b.copied = false
	}
}

// TerminalCodeRenderer draws code for a terminal of the given width
type TerminalCodeRenderer struct {
	Width    int
	Selected *CodeBlock
}

func (r TerminalCodeRenderer) RenderInline(code string) string {
	return InlineCodeStyle().Render(code)
}

func (r TerminalCodeRenderer) RenderBlock(block *CodeBlock) string {
	label := copyLabel
	if block.copied {
		label = copiedLabel
	}
	header := LanguageLabelStyle().Render(block.Language) + "  " + CopyLabelStyle(block.copied).Render(label)

	lines := strings.Split(highlight(block.Code, block.Language), "\n")
	if len(lines) > 1 {
		numberWidth := len(fmt.Sprint(len(lines)))
		for i, line := range lines {
			number := fmt.Sprintf("%*d ┆ ", numberWidth, i+1)
			lines[i] = LineNumberStyle().Render(number) + line
		}
	}

	width := r.Width - 2
	if width < 20 {
		width = 0
	}
	body := lipgloss.JoinVertical(lipgloss.Left, header, strings.Join(lines, "\n"))
	return CodeBlockStyle(width, block == r.Selected).Render(body)
}

// highlight returns code colored for language, or the code unchanged when
// chroma has no grammar for it
func highlight(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		return code
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
