package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_HeadingsAndBody(t *testing.T) {
	input := `# Title

Name: Lea Avatar

## clinical summary and impression

Summary text here.
`
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(doc.Blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(doc.Blocks))
	}

	if !doc.Blocks[0].Style.Heading || doc.Blocks[0].Style.Level != 1 {
		t.Errorf("expected block 0 to be an h1, got %+v", doc.Blocks[0].Style)
	}
	if doc.Blocks[0].Text != "Title" {
		t.Errorf("expected %q, got %q", "Title", doc.Blocks[0].Text)
	}
	if doc.Blocks[1].Style.Heading {
		t.Errorf("expected block 1 to be body text")
	}
	if doc.Blocks[1].Text != "Name: Lea Avatar" {
		t.Errorf("expected %q, got %q", "Name: Lea Avatar", doc.Blocks[1].Text)
	}
	if !doc.Blocks[2].Style.Heading || doc.Blocks[2].Style.Level != 2 {
		t.Errorf("expected block 2 to be an h2, got %+v", doc.Blocks[2].Style)
	}
	if doc.Blocks[3].Text != "Summary text here." {
		t.Errorf("expected %q, got %q", "Summary text here.", doc.Blocks[3].Text)
	}
}

func TestMarkdownParser_BlockOrder(t *testing.T) {
	input := "para one\n\n## A\n\npara two\n\n## B\n\npara three\n"
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"para one", "A", "para two", "B", "para three"}
	if len(doc.Blocks) != len(want) {
		t.Fatalf("expected %d blocks, got %d", len(want), len(doc.Blocks))
	}
	for i, w := range want {
		if doc.Blocks[i].Text != w {
			t.Errorf("block[%d]: expected %q, got %q", i, w, doc.Blocks[i].Text)
		}
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Blocks) != 0 {
		t.Errorf("expected 0 blocks for empty input, got %d", len(doc.Blocks))
	}
}
