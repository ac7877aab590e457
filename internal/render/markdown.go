package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// CodeRenderer draws the code-bearing nodes of a document. Every other node
// kind is drawn by the Document itself.
type CodeRenderer interface {
	RenderInline(code string) string
	RenderBlock(block *CodeBlock) string
}

// Document is a parsed analysis message
type Document struct {
	source   []byte
	root     ast.Node
	Blocks   []*CodeBlock // fenced and indented blocks in document order
	blockFor map[ast.Node]*CodeBlock
}

var parser = goldmark.New().Parser()

// NewDocument parses a markdown message. Each code block gets its own
// CodeBlock so copy state never leaks between blocks or documents.
func NewDocument(markdown string) *Document {
	source := []byte(normalizeFences(markdown))
	doc := &Document{
		source:   source,
		root:     parser.Parse(text.NewReader(source)),
		blockFor: make(map[ast.Node]*CodeBlock),
	}

	_ = ast.Walk(doc.root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.FencedCodeBlock:
			doc.addBlock(node, string(node.Language(source)))
			return ast.WalkSkipChildren, nil
		case *ast.CodeBlock:
			doc.addBlock(node, DefaultLanguage)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return doc
}

func (d *Document) addBlock(n ast.Node, language string) {
	block := NewCodeBlock(len(d.Blocks), language, d.lines(n))
	d.Blocks = append(d.Blocks, block)
	d.blockFor[n] = block
}

// Block returns the i-th code block or nil
func (d *Document) Block(i int) *CodeBlock {
	if i < 0 || i >= len(d.Blocks) {
		return nil
	}
	return d.Blocks[i]
}

// Render draws the document, handing code nodes to code
func (d *Document) Render(width int, code CodeRenderer) string {
	r := &markdownRenderer{doc: d, code: code, width: width}
	return r.blocks(d.root)
}

type markdownRenderer struct {
	doc   *Document
	code  CodeRenderer
	width int
}

func (r *markdownRenderer) blocks(parent ast.Node) string {
	var parts []string
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if out := r.block(n); out != "" {
			parts = append(parts, out)
		}
	}

	sep := "\n\n"
	if list, ok := parent.(*ast.ListItem); ok && isTight(list) {
		sep = "\n"
	}
	return strings.Join(parts, sep)
}

func (r *markdownRenderer) block(n ast.Node) string {
	switch node := n.(type) {
	case *ast.Heading:
		content := r.inlines(node)
		if node.Level <= 2 {
			return TitleStyle().Render(content)
		}
		return SubtitleStyle().Render(content)

	case *ast.Paragraph, *ast.TextBlock:
		return r.wrap(r.inlines(node))

	case *ast.List:
		return r.list(node)

	case *ast.Blockquote:
		return QuoteStyle().Render(r.blocks(node))

	case *ast.ThematicBreak:
		width := r.width
		if width <= 0 || width > 80 {
			width = 40
		}
		return RuleStyle().Render(strings.Repeat("─", width))

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if block, ok := r.doc.blockFor[n]; ok {
			return r.code.RenderBlock(block)
		}
		return ""

	case *ast.HTMLBlock:
		return strings.TrimRight(r.doc.lines(node), "\n")
	}

	// Unknown block kinds fall back to their children
	if n.HasChildren() {
		return r.blocks(n)
	}
	return ""
}

func (r *markdownRenderer) list(list *ast.List) string {
	var items []string
	number := list.Start
	if number == 0 {
		number = 1
	}

	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "• "
		if list.IsOrdered() {
			marker = fmt.Sprintf("%d. ", number)
			number++
		}

		content := r.blocks(item)
		pad := strings.Repeat(" ", lipgloss.Width(marker))
		lines := strings.Split(content, "\n")
		for i := range lines {
			if i == 0 {
				lines[i] = marker + lines[i]
			} else if lines[i] != "" {
				lines[i] = pad + lines[i]
			}
		}
		items = append(items, strings.Join(lines, "\n"))
	}

	sep := "\n"
	if !list.IsTight {
		sep = "\n\n"
	}
	return lipgloss.NewStyle().MarginLeft(2).Render(strings.Join(items, sep))
}

func (r *markdownRenderer) inlines(parent ast.Node) string {
	var b strings.Builder
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		b.WriteString(r.inline(n))
	}
	return b.String()
}

func (r *markdownRenderer) inline(n ast.Node) string {
	source := r.doc.source

	switch node := n.(type) {
	case *ast.Text:
		value := string(node.Segment.Value(source))
		if node.HardLineBreak() {
			return value + "\n"
		}
		if node.SoftLineBreak() {
			return value + " "
		}
		return value

	case *ast.String:
		return string(node.Value)

	case *ast.CodeSpan:
		return r.code.RenderInline(codeSpanText(node, source))

	case *ast.Emphasis:
		content := r.inlines(node)
		if node.Level >= 2 {
			return BoldStyle().Render(content)
		}
		return ItalicStyle().Render(content)

	case *ast.Link:
		label := r.inlines(node)
		dest := string(node.Destination)
		if label == "" || label == dest {
			return LinkStyle().Render(dest)
		}
		return LinkStyle().Render(label) + " (" + dest + ")"

	case *ast.AutoLink:
		return LinkStyle().Render(string(node.URL(source)))

	case *ast.Image:
		return "[image: " + r.inlines(node) + "] (" + string(node.Destination) + ")"

	case *ast.RawHTML:
		var b strings.Builder
		for i := 0; i < node.Segments.Len(); i++ {
			seg := node.Segments.At(i)
			b.Write(seg.Value(source))
		}
		return b.String()
	}

	return r.inlines(n)
}

func (r *markdownRenderer) wrap(content string) string {
	if r.width <= 0 {
		return content
	}
	return lipgloss.NewStyle().Width(r.width).Render(content)
}

// lines concatenates the raw source lines of a block node
func (d *Document) lines(n ast.Node) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(d.source))
	}
	return b.String()
}

func codeSpanText(n *ast.CodeSpan, source []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
		case *ast.String:
			b.Write(t.Value)
		}
	}
	return strings.TrimSpace(strings.ReplaceAll(b.String(), "\n", " "))
}

func isTight(item *ast.ListItem) bool {
	if list, ok := item.Parent().(*ast.List); ok {
		return list.IsTight
	}
	return true
}

var fenceInfo = regexp.MustCompile(`^[\w+#.-]*\s*$`)

// normalizeFences moves code fences that share a line with other text onto
// their own line. The backend often emits "Looks fine. ```python" with the
// opener trailing a sentence, which CommonMark would read as inline code.
func normalizeFences(markdown string) string {
	lines := strings.Split(markdown, "\n")
	out := make([]string, 0, len(lines))
	inFence := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if inFence {
			if strings.HasPrefix(trimmed, "```") {
				inFence = false
				out = append(out, line)
				continue
			}
			// Closer trailing the last line of code
			if idx := strings.LastIndex(line, "```"); idx > 0 && strings.TrimSpace(line[idx+3:]) == "" {
				out = append(out, line[:idx], "```")
				inFence = false
				continue
			}
			out = append(out, line)
			continue
		}

		if strings.HasPrefix(trimmed, "```") {
			// A fence that also closes on this line is an inline code span
			if !strings.Contains(trimmed[3:], "```") {
				inFence = true
			}
			out = append(out, line)
			continue
		}

		// Opener trailing prose
		if idx := strings.LastIndex(line, "```"); idx > 0 &&
			fenceInfo.MatchString(line[idx+3:]) &&
			strings.Count(line[:idx], "`")%2 == 0 {
			out = append(out, strings.TrimRight(line[:idx], " \t"), strings.TrimSpace(line[idx:]))
			inFence = true
			continue
		}

		out = append(out, line)
	}

	return strings.Join(out, "\n")
}
