package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/clinsum/internal/report"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown reports using goldmark. Headings become
// heading blocks; every other top-level element becomes a body block.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader) (report.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return report.Document{}, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var out report.Document
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := string(node.Text(src))
			out.Blocks = append(out.Blocks, report.HeadingBlock(title, node.Level))
		default:
			if t := extractText(n, src); t != "" {
				out.Blocks = append(out.Blocks, report.BodyBlock(t))
			}
		}
	}
	return out, nil
}

// extractText gets the text content of a goldmark AST node. Raw lines are
// used only for childless blocks (code blocks); anything with inline children
// is flattened through them to avoid duplicating the text.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.FirstChild() == nil {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			// Recurse for nested inlines.
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
