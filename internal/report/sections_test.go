package report

import "testing"

var testSections = NewSectionSet(
	"clinical summary and impression",
	"mental health assessment",
	"dsm-5 diagnostic summary",
)

func TestExtractSections_RetainsFromHeadingToNextHeading(t *testing.T) {
	doc := Document{Blocks: []Block{
		HeadingBlock("Title", 1),
		BodyBlock("preamble"),
		HeadingBlock("Clinical Summary and Impression", 2),
		BodyBlock("summary text"),
		HeadingBlock("Unrelated Section", 2),
		BodyBlock("dropped"),
	}}

	got := ExtractSections(doc, testSections)
	want := []string{"Clinical Summary and Impression", "summary text"}
	if len(got) != len(want) {
		t.Fatalf("expected %d blocks, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Text != w {
			t.Errorf("block[%d]: expected %q, got %q", i, w, got[i].Text)
		}
	}
}

func TestExtractSections_SubHeadingEndsSection(t *testing.T) {
	// Retention is re-decided at every heading regardless of level, so a
	// deeper heading outside the set still closes the section above it.
	doc := Document{Blocks: []Block{
		HeadingBlock("Mental Health Assessment", 1),
		BodyBlock("kept"),
		HeadingBlock("History", 3),
		BodyBlock("dropped"),
	}}

	got := ExtractSections(doc, testSections)
	if len(got) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(got))
	}
	if got[1].Text != "kept" {
		t.Errorf("expected %q, got %q", "kept", got[1].Text)
	}
}

func TestExtractSections_MultipleDisjointRuns(t *testing.T) {
	doc := Document{Blocks: []Block{
		HeadingBlock("clinical summary and impression", 2),
		BodyBlock("run one"),
		HeadingBlock("Other", 2),
		BodyBlock("skipped"),
		HeadingBlock("DSM-5 Diagnostic Summary", 2),
		BodyBlock("run two"),
	}}

	got := ExtractSections(doc, testSections)
	want := []string{
		"clinical summary and impression",
		"run one",
		"DSM-5 Diagnostic Summary",
		"run two",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d blocks, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Text != w {
			t.Errorf("block[%d]: expected %q, got %q", i, w, got[i].Text)
		}
	}
}

func TestExtractSections_TitleNormalization(t *testing.T) {
	doc := Document{Blocks: []Block{
		HeadingBlock("  Clinical Summary AND Impression  ", 2),
		BodyBlock("kept"),
	}}

	got := ExtractSections(doc, testSections)
	if len(got) != 2 {
		t.Fatalf("expected normalized heading to match, got %d blocks", len(got))
	}
}

func TestExtractSections_NoSectionOfInterest(t *testing.T) {
	doc := Document{Blocks: []Block{
		HeadingBlock("Introduction", 1),
		BodyBlock("text"),
	}}

	got := ExtractSections(doc, testSections)
	if len(got) != 0 {
		t.Errorf("expected empty result, got %d blocks", len(got))
	}
}

func TestExtractSections_Idempotent(t *testing.T) {
	// Re-extracting an already-filtered document is a no-op.
	doc := Document{Blocks: []Block{
		HeadingBlock("Title", 1),
		HeadingBlock("mental health assessment", 2),
		BodyBlock("one"),
		BodyBlock("two"),
		HeadingBlock("Other", 2),
		BodyBlock("dropped"),
	}}

	first := ExtractSections(doc, testSections)
	second := ExtractSections(Document{Blocks: first}, testSections)
	if len(first) != len(second) {
		t.Fatalf("expected %d blocks, got %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("block[%d] changed: %+v vs %+v", i, first[i], second[i])
		}
	}
}
