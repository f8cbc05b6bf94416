package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/clinsum/internal/report"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML reports. h1-h6 become heading blocks; paragraph-like
// elements become body blocks.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader) (report.Document, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return report.Document{}, fmt.Errorf("parse html: %w", err)
	}

	var out report.Document
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				out.Blocks = append(out.Blocks, report.HeadingBlock(textContent(n), level))
				return
			}
			// Skip non-content elements.
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "p", "li", "td", "blockquote":
				if t := textContent(n); t != "" {
					out.Blocks = append(out.Blocks, report.BodyBlock(t))
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	return out, nil
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
