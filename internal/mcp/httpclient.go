package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/gymlog/internal/models"
)

// HTTPClient implements Source by calling the gymlog REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// the logs live next to the server (reached over Tailscale).
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPClient creates an HTTPClient targeting the given base URL. apiKey is
// sent on POST /api/v1/parse.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// errNotFound marks a 404 from the server.
type errNotFound struct{ path string }

func (e errNotFound) Error() string { return "httpclient: " + e.path + " not found" }

func (c *HTTPClient) do(req *http.Request, path string) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, errNotFound{path: path}
	default:
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	return c.do(req, path)
}

func (c *HTTPClient) Document(ctx context.Context) (*models.Document, error) {
	body, err := c.get(ctx, "/api/v1/document", nil)
	if err != nil {
		return nil, err
	}
	var doc models.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("httpclient: decode document: %w", err)
	}
	return &doc, nil
}

func (c *HTTPClient) Parse(ctx context.Context, text string) (*models.Document, error) {
	const path = "/api/v1/parse"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/markdown; charset=utf-8")
	req.Header.Set("X-API-Key", c.apiKey)

	body, err := c.do(req, path)
	if err != nil {
		return nil, err
	}
	var doc models.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("httpclient: decode parsed document: %w", err)
	}
	return &doc, nil
}

func (c *HTTPClient) Lookup(ctx context.Context, exercise string) (string, bool, error) {
	body, err := c.get(ctx, "/api/v1/exercises/lookup", url.Values{"name": {exercise}})
	if err != nil {
		if _, ok := err.(errNotFound); ok {
			return "", false, nil
		}
		return "", false, err
	}
	var ex models.Exercise
	if err := json.Unmarshal(body, &ex); err != nil {
		return "", false, fmt.Errorf("httpclient: decode lookup: %w", err)
	}
	if ex.MuscleGroup == nil {
		return "", false, nil
	}
	return *ex.MuscleGroup, true, nil
}

func (c *HTTPClient) MuscleGroups(ctx context.Context) ([]models.MuscleGroup, error) {
	body, err := c.get(ctx, "/api/v1/taxonomy", nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		MuscleGroups []models.MuscleGroup `json:"muscle_groups"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("httpclient: decode taxonomy: %w", err)
	}
	return resp.MuscleGroups, nil
}

func (c *HTTPClient) Progress(ctx context.Context, exercise string) ([]models.ProgressPoint, error) {
	body, err := c.get(ctx, "/api/v1/progress", url.Values{"exercise": {exercise}})
	if err != nil {
		return nil, err
	}
	var points []models.ProgressPoint
	if err := json.Unmarshal(body, &points); err != nil {
		return nil, fmt.Errorf("httpclient: decode progress: %w", err)
	}
	return points, nil
}
