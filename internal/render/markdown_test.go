package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingRenderer captures what the document delegates to it
type recordingRenderer struct {
	inline []string
	blocks []*CodeBlock
}

func (r *recordingRenderer) RenderInline(code string) string {
	r.inline = append(r.inline, code)
	return "<" + code + ">"
}

func (r *recordingRenderer) RenderBlock(block *CodeBlock) string {
	r.blocks = append(r.blocks, block)
	return "[" + block.Language + ":" + block.Code + "]"
}

func TestFenceTrailingProseBecomesBlock(t *testing.T) {
	doc := NewDocument("Looks fine. ```python\nx=1\n```")

	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, "python", doc.Blocks[0].Language)
	assert.Equal(t, "x=1", doc.Blocks[0].Code)

	rec := &recordingRenderer{}
	out := doc.Render(0, rec)
	assert.Equal(t, "Looks fine.\n\n[python:x=1]", out)
	assert.Empty(t, rec.inline)
}

func TestFenceWithoutLanguageIsText(t *testing.T) {
	doc := NewDocument("```\nplain\n```")

	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, "text", doc.Blocks[0].Language)
}

func TestIndentedCodeIsDelegatedAsText(t *testing.T) {
	doc := NewDocument("Example:\n\n    go run .\n")

	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, "text", doc.Blocks[0].Language)
	assert.Equal(t, "go run .", doc.Blocks[0].Code)
}

func TestInlineCodeIsDelegated(t *testing.T) {
	rec := &recordingRenderer{}
	out := NewDocument("Avoid `eval(x)` here.").Render(0, rec)

	assert.Equal(t, []string{"eval(x)"}, rec.inline)
	assert.Empty(t, rec.blocks)
	assert.Equal(t, "Avoid <eval(x)> here.", out)
}

func TestInlineTripleBacktickSpanStaysInline(t *testing.T) {
	doc := NewDocument("use ```a``` here")
	assert.Empty(t, doc.Blocks)
}

func TestBlockCodeIsTrimmed(t *testing.T) {
	doc := NewDocument("```go\n\n  fmt.Println(1)  \n\n```")

	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, "fmt.Println(1)", doc.Blocks[0].Code)
}

func TestClosingFenceTrailingCode(t *testing.T) {
	doc := NewDocument("```js\nlet a = 1```\nafter")

	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, "let a = 1", doc.Blocks[0].Code)
}

func TestRendersStandardMarkdown(t *testing.T) {
	md := strings.Join([]string{
		"# Risk report",
		"",
		"Found **two** issues in *module*, see [docs](https://example.com).",
		"",
		"- division by zero",
		"- use of `eval`",
		"",
		"1. first",
		"2. second",
		"",
		"> quoted",
		"",
		"---",
	}, "\n")

	rec := &recordingRenderer{}
	out := ansi.Strip(NewDocument(md).Render(0, rec))

	assert.Contains(t, out, "Risk report")
	assert.NotContains(t, out, "# Risk")
	assert.Contains(t, out, "Found two issues in module, see docs (https://example.com).")
	assert.Contains(t, out, "• division by zero")
	assert.Contains(t, out, "• use of <eval>")
	assert.Contains(t, out, "1. first")
	assert.Contains(t, out, "2. second")
	assert.Contains(t, out, "quoted")
	assert.Contains(t, out, "─")
	assert.Equal(t, []string{"eval"}, rec.inline)
}

func TestBlocksKeepDocumentOrder(t *testing.T) {
	doc := NewDocument("```python\na = 1\n```\n\ntext\n\n```go\nb := 2\n```")

	require.Len(t, doc.Blocks, 2)
	assert.Equal(t, 0, doc.Blocks[0].Index)
	assert.Equal(t, "python", doc.Blocks[0].Language)
	assert.Equal(t, 1, doc.Blocks[1].Index)
	assert.Equal(t, "go", doc.Blocks[1].Language)
	assert.Same(t, doc.Blocks[1], doc.Block(1))
	assert.Nil(t, doc.Block(2))
	assert.Nil(t, doc.Block(-1))
}

func TestNormalizeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"untouched", "a\n```go\nx\n```", "a\n```go\nx\n```"},
		{"opener after prose", "Looks fine. ```python\nx=1\n```", "Looks fine.\n```python\nx=1\n```"},
		{"closer after code", "```\nx=1```", "```\nx=1\n```"},
		{"inline span", "use ```a``` here", "use ```a``` here"},
		{"inside backticks", "`a ```b", "`a ```b"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeFences(tc.in))
		})
	}
}
