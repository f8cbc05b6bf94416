package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a document or index does not exist.
var ErrNotFound = errors.New("document not found")

// Client communicates with an Elasticsearch-compatible search index over its
// HTTP API.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

func NewClient(baseURL, username, password string) *Client {
	return &Client{
		baseURL:  baseURL,
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SearchResult is the hits envelope of a search response.
type SearchResult struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []Hit `json:"hits"`
	} `json:"hits"`
}

// Hit is a single matched document.
type Hit struct {
	ID     string         `json:"_id"`
	Source map[string]any `json:"_source"`
}

// EnsureIndex creates the index if it does not already exist.
func (c *Client) EnsureIndex(ctx context.Context, index string) error {
	resp, err := c.do(ctx, http.MethodHead, "/"+index, nil)
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	if resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("check index %s: status %d", index, resp.StatusCode)
	}

	resp, err = c.do(ctx, http.MethodPut, "/"+index, nil)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("create index %s: status %d: %s", index, resp.StatusCode, readBody(resp))
	}
	return nil
}

// Create stores a new document and returns its generated ID. The document is
// stamped with created_at and modified_at, so it must not carry either field
// already.
func (c *Client) Create(ctx context.Context, index string, doc map[string]any) (string, error) {
	if _, ok := doc["created_at"]; ok {
		return "", fmt.Errorf("document already has a created_at field")
	}
	if _, ok := doc["modified_at"]; ok {
		return "", fmt.Errorf("document already has a modified_at field")
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	doc["created_at"] = now
	doc["modified_at"] = now

	id := fmt.Sprintf("%x", [16]byte(uuid.New()))
	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/%s/_create/%s", index, id), body)
	if err != nil {
		return "", fmt.Errorf("create document: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("create document in %s: status %d: %s", index, resp.StatusCode, readBody(resp))
	}
	return id, nil
}

// Get retrieves a document's source by ID.
func (c *Client) Get(ctx context.Context, index, id string) (map[string]any, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/%s/_doc/%s", index, id), nil)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get document %s/%s: status %d: %s", index, id, resp.StatusCode, readBody(resp))
	}

	var envelope struct {
		Source map[string]any `json:"_source"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return envelope.Source, nil
}

// Update applies a partial document update and refreshes modified_at.
func (c *Client) Update(ctx context.Context, index, id string, doc map[string]any) error {
	doc["modified_at"] = time.Now().UTC().Format(time.RFC3339Nano)
	body, err := json.Marshal(map[string]any{"doc": doc})
	if err != nil {
		return fmt.Errorf("marshal update: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/%s/_update/%s", index, id), body)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("update document %s/%s: status %d: %s", index, id, resp.StatusCode, readBody(resp))
	}
	return nil
}

// Delete removes a document by ID.
func (c *Client) Delete(ctx context.Context, index, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/%s/_doc/%s", index, id), nil)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("delete document %s/%s: status %d: %s", index, id, resp.StatusCode, readBody(resp))
	}
	return nil
}

// Search runs a query against an index. size limits the number of hits
// returned; zero keeps the server default.
func (c *Client) Search(ctx context.Context, index string, query map[string]any, size int) (*SearchResult, error) {
	payload := map[string]any{"query": query}
	if size > 0 {
		payload["size"] = size
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/%s/_search", index), body)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search %s: status %d: %s", index, resp.StatusCode, readBody(resp))
	}

	var result SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode search result: %w", err)
	}
	return &result, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	return c.httpClient.Do(req)
}

func readBody(resp *http.Response) string {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return string(b)
}

// Close releases any resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
