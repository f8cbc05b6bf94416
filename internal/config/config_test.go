package config

import "testing"

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("CLINSUM_API_KEY", "k")
	t.Setenv("OPENAI_API_KEY", "k")
	t.Setenv("ELASTIC_PASSWORD", "p")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	cfg := Load()

	if cfg.Port != "8091" {
		t.Errorf("unexpected default port: %q", cfg.Port)
	}
	if cfg.SummarizationIndex != "summarization" || cfg.DiagnosesIndex != "diagnoses" {
		t.Errorf("unexpected default indices: %q %q", cfg.SummarizationIndex, cfg.DiagnosesIndex)
	}
	if cfg.SectionTitles != nil {
		t.Errorf("expected nil section titles when unset, got %v", cfg.SectionTitles)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestLoad_SectionTitles(t *testing.T) {
	setRequired(t)
	t.Setenv("ANONYMIZER_SECTIONS", "one, two ,,three")
	cfg := Load()

	want := []string{"one", "two", "three"}
	if len(cfg.SectionTitles) != len(want) {
		t.Fatalf("expected %d titles, got %v", len(want), cfg.SectionTitles)
	}
	for i, w := range want {
		if cfg.SectionTitles[i] != w {
			t.Errorf("title[%d]: expected %q, got %q", i, w, cfg.SectionTitles[i])
		}
	}
}

func TestValidate_MissingKeys(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{"api key", "CLINSUM_API_KEY"},
		{"openai key", "OPENAI_API_KEY"},
		{"elastic password", "ELASTIC_PASSWORD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.unset, "")
			if err := Load().Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
