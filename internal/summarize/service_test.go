package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/dgallion1/clinsum/internal/docstore"
)

// fakeIndex implements the handful of index endpoints the service touches.
type fakeIndex struct {
	docs map[string]map[string]any
}

func (f *fakeIndex) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		switch {
		case len(parts) == 3 && parts[1] == "_create":
			var doc map[string]any
			json.NewDecoder(r.Body).Decode(&doc)
			f.docs[parts[2]] = doc
			w.WriteHeader(http.StatusCreated)
		case len(parts) == 3 && parts[1] == "_update":
			doc, ok := f.docs[parts[2]]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			var body struct {
				Doc map[string]any `json:"doc"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			for k, v := range body.Doc {
				doc[k] = v
			}
		case len(parts) == 2 && parts[1] == "_search":
			payload, _ := io.ReadAll(r.Body)
			hits := []map[string]any{}
			for id, doc := range f.docs {
				report, _ := doc["report"].(string)
				var q struct {
					Query struct {
						MatchPhrase map[string]string `json:"match_phrase"`
					} `json:"query"`
				}
				json.Unmarshal(payload, &q)
				if q.Query.MatchPhrase["report"] == report {
					hits = append(hits, map[string]any{"_id": id, "_source": doc})
				}
			}
			json.NewEncoder(w).Encode(map[string]any{
				"hits": map[string]any{
					"total": map[string]any{"value": len(hits)},
					"hits":  hits,
				},
			})
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	})
}

// fakeLLM serves chat completions, optionally failing the first n requests
// with a retryable status.
type fakeLLM struct {
	failFirst int32
	calls     atomic.Int32
	reply     string
}

func (f *fakeLLM) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := f.calls.Add(1)
		if n <= f.failFirst {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": f.reply}},
			},
		})
	})
}

func testPrompts() *PromptSet {
	return &PromptSet{
		System: map[string]string{
			summaryPromptName: "Summarize the report.",
		},
	}
}

func newTestService(t *testing.T, llm *fakeLLM) (*Service, *fakeIndex) {
	t.Helper()
	fake := &fakeIndex{docs: make(map[string]map[string]any)}
	indexSrv := httptest.NewServer(fake.handler())
	t.Cleanup(indexSrv.Close)
	llmSrv := httptest.NewServer(llm.handler())
	t.Cleanup(llmSrv.Close)

	store := docstore.NewClient(indexSrv.URL, "", "")
	t.Cleanup(store.Close)
	client := NewOpenAIClient("test-key", "test-model", llmSrv.URL)
	t.Cleanup(client.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(store, client, testPrompts(), "summarization", log), fake
}

func TestSummarize_StoresReportAndSummary(t *testing.T) {
	svc, fake := newTestService(t, &fakeLLM{reply: "## Summary\n\nAll good."})

	result, err := svc.Summarize(context.Background(), "the report text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Cached {
		t.Error("first summarization must not be cached")
	}
	if result.Summary != "## Summary\n\nAll good." {
		t.Errorf("unexpected summary: %q", result.Summary)
	}

	doc, ok := fake.docs[result.DocumentID]
	if !ok {
		t.Fatal("report document not stored")
	}
	if doc["report"] != "the report text" {
		t.Errorf("report not stored: %v", doc)
	}
	if doc["summary"] != result.Summary {
		t.Errorf("summary not stored: %v", doc)
	}
}

func TestSummarize_ServesCachedSummary(t *testing.T) {
	llm := &fakeLLM{reply: "cached summary"}
	svc, _ := newTestService(t, llm)

	first, err := svc.Summarize(context.Background(), "same report")
	if err != nil {
		t.Fatalf("first call: %v", err)
	}

	second, err := svc.Summarize(context.Background(), "same report")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if !second.Cached {
		t.Error("expected cached result on identical report")
	}
	if second.Summary != first.Summary {
		t.Errorf("cached summary differs: %q vs %q", second.Summary, first.Summary)
	}
	if llm.calls.Load() != 1 {
		t.Errorf("expected 1 LLM call, got %d", llm.calls.Load())
	}
}

func TestSummarize_RetriesTransientFailures(t *testing.T) {
	llm := &fakeLLM{failFirst: 1, reply: "after retry"}
	svc, _ := newTestService(t, llm)

	result, err := svc.Summarize(context.Background(), "flaky report")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Summary != "after retry" {
		t.Errorf("unexpected summary: %q", result.Summary)
	}
	if llm.calls.Load() != 2 {
		t.Errorf("expected 2 LLM calls, got %d", llm.calls.Load())
	}
}

func TestSummarize_AmbiguousCache(t *testing.T) {
	svc, fake := newTestService(t, &fakeLLM{reply: "x"})
	fake.docs["a"] = map[string]any{"report": "dup", "summary": "one"}
	fake.docs["b"] = map[string]any{"report": "dup", "summary": "two"}

	_, err := svc.Summarize(context.Background(), "dup")
	if !errors.Is(err, ErrAmbiguousCache) {
		t.Errorf("expected ErrAmbiguousCache, got %v", err)
	}
}

func TestSummarize_IncompleteCacheEntryIsRedone(t *testing.T) {
	llm := &fakeLLM{reply: "fresh summary"}
	svc, fake := newTestService(t, llm)
	fake.docs["orphan"] = map[string]any{"report": "half done"}

	result, err := svc.Summarize(context.Background(), "half done")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Cached {
		t.Error("summary-less cache entry must not be served")
	}
	if result.Summary != "fresh summary" {
		t.Errorf("unexpected summary: %q", result.Summary)
	}
	if result.DocumentID != "orphan" {
		t.Errorf("expected orphaned document to be reused, got %q", result.DocumentID)
	}
	if fake.docs["orphan"]["summary"] != "fresh summary" {
		t.Errorf("summary not stored on orphaned document: %v", fake.docs["orphan"])
	}
	if len(fake.docs) != 1 {
		t.Errorf("expected no duplicate document, got %d", len(fake.docs))
	}
}
