package summarize

import (
	"os"
	"path/filepath"
	"testing"
)

func writePromptFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write prompt file: %v", err)
	}
	return path
}

func TestLoadPrompts(t *testing.T) {
	path := writePromptFile(t, `
system:
  summarize_clinical_report: |
    You summarize clinical reports.
user:
  follow_up: "Continue."
`)

	set, err := LoadPrompts(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := set.Lookup("system", "summarize_clinical_report")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got != "You summarize clinical reports.\n" {
		t.Errorf("unexpected prompt: %q", got)
	}

	if _, err := set.Lookup("user", "follow_up"); err != nil {
		t.Errorf("user lookup failed: %v", err)
	}
}

func TestLoadPrompts_MissingFile(t *testing.T) {
	if _, err := LoadPrompts(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPromptSet_LookupErrors(t *testing.T) {
	set := &PromptSet{System: map[string]string{"known": "x"}}

	if _, err := set.Lookup("system", "unknown"); err == nil {
		t.Error("expected error for unknown prompt name")
	}
	if _, err := set.Lookup("bogus", "known"); err == nil {
		t.Error("expected error for unknown category")
	}
}
