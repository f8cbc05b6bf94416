package taxonomy

import (
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ParseOutline converts a markdown diagnosis outline into the taxonomy tree
// format. Headings nest by level; text between headings becomes a single
// content child of the enclosing heading. The result is wrapped in a "root"
// node, matching the stored taxonomy schema.
func ParseOutline(r io.Reader) ([]*Node, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	type stackEntry struct {
		node  *Node
		level int
	}
	root := &Node{Text: "root", Header: true}
	stack := []stackEntry{{node: root, level: 0}}
	var content strings.Builder

	flush := func() {
		if t := strings.TrimSpace(content.String()); t != "" {
			top := stack[len(stack)-1].node
			top.Children = append(top.Children, &Node{Text: t})
		}
		content.Reset()
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			flush()
			child := &Node{Text: string(node.Text(src)), Header: true}
			for len(stack) > 1 && stack[len(stack)-1].level >= node.Level {
				stack = stack[:len(stack)-1]
			}
			parent := stack[len(stack)-1].node
			parent.Children = append(parent.Children, child)
			stack = append(stack, stackEntry{node: child, level: node.Level})
		default:
			if t := blockText(n, src); t != "" {
				if content.Len() > 0 {
					content.WriteString(" ")
				}
				content.WriteString(t)
			}
		}
	}
	flush()

	return []*Node{root}, nil
}

// blockText gets the flattened text content of a goldmark AST node. Raw
// lines are used only for childless blocks; nodes with inline children are
// flattened through them to avoid duplicating the text.
func blockText(n ast.Node, src []byte) string {
	var buf strings.Builder
	if n.Type() == ast.TypeBlock && n.FirstChild() == nil {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		} else {
			buf.WriteString(blockText(c, src))
		}
	}
	return strings.TrimSpace(strings.Join(strings.Fields(buf.String()), " "))
}
