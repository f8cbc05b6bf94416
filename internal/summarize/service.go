package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/clinsum/internal/docstore"
)

// ErrAmbiguousCache is returned when more than one stored document matches a
// report, which should never happen and indicates index corruption.
var ErrAmbiguousCache = errors.New("more than one document matches the report")

const summaryPromptName = "summarize_clinical_report"

// Result is the outcome of a summarization request.
type Result struct {
	Summary    string `json:"summary"`
	Cached     bool   `json:"cached"`
	DocumentID string `json:"document_id,omitempty"`
}

// Service summarizes clinical reports through the LLM, caching both the
// report and the summary in the search index for reuse and auditing.
type Service struct {
	store   *docstore.Client
	llm     *OpenAIClient
	prompts *PromptSet
	index   string
	log     *slog.Logger
}

func NewService(store *docstore.Client, llm *OpenAIClient, prompts *PromptSet, index string, log *slog.Logger) *Service {
	return &Service{
		store:   store,
		llm:     llm,
		prompts: prompts,
		index:   index,
		log:     log,
	}
}

// Summarize returns the summary for a report, serving a cached one when the
// identical report was summarized before.
func (s *Service) Summarize(ctx context.Context, reportText string) (*Result, error) {
	cached, docID, err := s.lookupCached(ctx, reportText)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		s.log.Info("serving cached summary")
		return cached, nil
	}

	// docID is non-empty when a previous attempt stored the report but
	// failed before the summary landed; reuse that document rather than
	// creating a duplicate the ambiguity guard would later reject.
	if docID == "" {
		docID, err = s.store.Create(ctx, s.index, map[string]any{"report": reportText})
		if err != nil {
			return nil, fmt.Errorf("store report: %w", err)
		}
	}
	log := s.log.With("document_id", docID)

	systemPrompt, err := s.prompts.Lookup("system", summaryPromptName)
	if err != nil {
		return nil, err
	}

	log.Info("requesting summary")
	summary, err := s.complete(ctx, systemPrompt, reportText, log)
	if err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, s.index, docID, map[string]any{"summary": summary}); err != nil {
		return nil, fmt.Errorf("store summary: %w", err)
	}

	return &Result{Summary: summary, DocumentID: docID}, nil
}

// complete calls the LLM, retrying transient failures with backoff.
func (s *Service) complete(ctx context.Context, systemPrompt, userText string, log *slog.Logger) (string, error) {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		var summary string
		summary, lastErr = s.llm.Complete(ctx, systemPrompt, userText)
		if lastErr == nil {
			return summary, nil
		}
		if !isRetryable(lastErr) {
			return "", lastErr
		}
		log.Warn("retryable completion error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(backoff(attempt)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", lastErr
}

// lookupCached returns the stored summary for an identical report, nil when
// the report has not been summarized before. When the report was stored but
// never summarized, it returns the orphaned document's ID so the caller can
// complete it in place.
func (s *Service) lookupCached(ctx context.Context, reportText string) (*Result, string, error) {
	result, err := s.store.Search(ctx, s.index, map[string]any{
		"match_phrase": map[string]any{"report": reportText},
	}, 0)
	if err != nil {
		return nil, "", fmt.Errorf("cache lookup: %w", err)
	}

	switch result.Hits.Total.Value {
	case 0:
		return nil, "", nil
	case 1:
		hit := result.Hits.Hits[0]
		summary, _ := hit.Source["summary"].(string)
		if summary == "" {
			return nil, hit.ID, nil
		}
		return &Result{Summary: summary, Cached: true, DocumentID: hit.ID}, "", nil
	default:
		return nil, "", ErrAmbiguousCache
	}
}
