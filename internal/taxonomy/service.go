package taxonomy

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dgallion1/clinsum/internal/docstore"
)

// Entry is a stored taxonomy tree with its index document ID.
type Entry struct {
	ID   string `json:"id"`
	Node *Node  `json:"node"`
}

// Service provides CRUD and search over diagnosis trees in the search index.
type Service struct {
	store *docstore.Client
	index string
	log   *slog.Logger
}

func NewService(store *docstore.Client, index string, log *slog.Logger) *Service {
	return &Service{store: store, index: index, log: log}
}

const listLimit = 200

// List returns every stored diagnosis tree.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	result, err := s.store.Search(ctx, s.index, map[string]any{"match_all": map[string]any{}}, listLimit)
	if err != nil {
		return nil, fmt.Errorf("list diagnoses: %w", err)
	}
	return entriesFromHits(result.Hits.Hits)
}

// Search matches diagnosis trees whose text matches the term.
func (s *Service) Search(ctx context.Context, term string) ([]Entry, error) {
	result, err := s.store.Search(ctx, s.index, map[string]any{
		"match": map[string]any{"text": term},
	}, listLimit)
	if err != nil {
		return nil, fmt.Errorf("search diagnoses: %w", err)
	}
	return entriesFromHits(result.Hits.Hits)
}

// Create stores a new diagnosis tree and returns its document ID.
func (s *Service) Create(ctx context.Context, node *Node) (string, error) {
	if node == nil || node.Text == "" {
		return "", fmt.Errorf("diagnosis text is required")
	}
	doc, err := nodeToDoc(node)
	if err != nil {
		return "", err
	}
	id, err := s.store.Create(ctx, s.index, doc)
	if err != nil {
		return "", fmt.Errorf("create diagnosis: %w", err)
	}
	s.log.Info("created diagnosis", "id", id, "text", node.Text)
	return id, nil
}

// Get retrieves a diagnosis tree by document ID.
func (s *Service) Get(ctx context.Context, id string) (*Node, error) {
	doc, err := s.store.Get(ctx, s.index, id)
	if err != nil {
		return nil, err
	}
	return nodeFromDoc(doc)
}

// Update overwrites a diagnosis tree.
func (s *Service) Update(ctx context.Context, id string, node *Node) error {
	if node == nil || node.Text == "" {
		return fmt.Errorf("diagnosis text is required")
	}
	doc, err := nodeToDoc(node)
	if err != nil {
		return err
	}
	if err := s.store.Update(ctx, s.index, id, doc); err != nil {
		return err
	}
	s.log.Info("updated diagnosis", "id", id)
	return nil
}

// Delete removes a diagnosis tree.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, s.index, id); err != nil {
		return err
	}
	s.log.Info("deleted diagnosis", "id", id)
	return nil
}

func entriesFromHits(hits []docstore.Hit) ([]Entry, error) {
	entries := make([]Entry, 0, len(hits))
	for _, hit := range hits {
		node, err := nodeFromDoc(hit.Source)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{ID: hit.ID, Node: node})
	}
	return entries, nil
}

// nodeToDoc round-trips through JSON to produce the generic map the store
// client expects.
func nodeToDoc(node *Node) (map[string]any, error) {
	raw, err := json.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("marshal diagnosis: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal diagnosis: %w", err)
	}
	return doc, nil
}

func nodeFromDoc(doc map[string]any) (*Node, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	var node Node
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("decode diagnosis: %w", err)
	}
	return &node, nil
}
