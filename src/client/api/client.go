// Package api implements the HTTP client for the Agent Comparer API
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultBaseURL is the production Agent Comparer endpoint
const DefaultBaseURL = "https://agentcomparer.com"

// ProjectName is set at build time - used for User-Agent
var ProjectName = "comparer-cli"

// Version is set at build time
var Version = "dev"

// Cache is an optional response cache consulted for GET requests
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, data []byte)
}

// Client is the API client for the Agent Comparer server
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Cache      Cache
}

// NewClient creates a new API client
func NewClient(baseURL, apiKey string, timeout int) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}
}

// RequestError is returned for any transport failure or non-2xx response.
// StatusCode is 0 when the request never reached the server.
type RequestError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: server returned %d: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Endpoint, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// ListModels fetches all available model records
func (c *Client) ListModels() ([]Model, error) {
	var models []Model
	if err := c.getJSON("/api/models/list", &models); err != nil {
		return nil, err
	}
	return models, nil
}

// GetStats fetches per-provider model counts from the stats endpoint
func (c *Client) GetStats() (map[string]int, error) {
	var stats map[string]int
	if err := c.getJSON("/api/models/stats", &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// GetProviders returns a provider -> model count map derived from the
// full model list. Despite the name it returns counts, not a list; the
// list-providers command depends on this shape.
func (c *Client) GetProviders() (map[string]int, error) {
	models, err := c.ListModels()
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, m := range models {
		counts[m.Provider()]++
	}
	return counts, nil
}

// SearchModels posts the criteria to the search endpoint and returns the
// raw response. Unset criteria fields are sent as null.
func (c *Client) SearchModels(criteria SearchCriteria) (json.RawMessage, error) {
	body := searchRequest{
		Metadata: Metadata{
			AgentID: "cli",
			TaskID:  "search",
		},
		SearchCriteria: criteria,
	}
	return c.postJSON("/api/agents/search", body)
}

// CompareModels posts a caller-supplied compare spec and returns the raw response
func (c *Client) CompareModels(data any) (json.RawMessage, error) {
	return c.postJSON("/api/agents/compare", data)
}

// CalculatePrice posts a caller-supplied calculation spec and returns the raw response
func (c *Client) CalculatePrice(data any) (json.RawMessage, error) {
	return c.postJSON("/api/agents/calculate", data)
}

// getJSON performs a GET and decodes the response, going through the
// response cache when one is attached. Cache keys include the base URL:
// entries persist across invocations, and a --server override must never
// be served another server's data.
func (c *Client) getJSON(path string, out any) error {
	cacheKey := c.BaseURL + path
	if c.Cache != nil {
		if data, ok := c.Cache.Get(cacheKey); ok {
			if err := json.Unmarshal(data, out); err == nil {
				slog.Debug("cache hit", "endpoint", path)
				return nil
			}
			// Corrupt entry - fall through to the network
		}
	}

	resp, err := c.doRequest(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Endpoint: path, Err: fmt.Errorf("read response: %w", err)}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &RequestError{Endpoint: path, Err: fmt.Errorf("decode response: %w", err)}
	}

	if c.Cache != nil {
		c.Cache.Set(cacheKey, data)
	}
	return nil
}

// postJSON performs a POST with a JSON body and returns the raw response
func (c *Client) postJSON(path string, body any) (json.RawMessage, error) {
	resp, err := c.doRequest(http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Endpoint: path, Err: fmt.Errorf("read response: %w", err)}
	}
	if !json.Valid(data) {
		return nil, &RequestError{Endpoint: path, Err: fmt.Errorf("invalid JSON in response")}
	}
	return json.RawMessage(data), nil
}

// doRequest performs an HTTP request with the credential and tracing headers
func (c *Client) doRequest(method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, &RequestError{Endpoint: path, Err: fmt.Errorf("marshal body: %w", err)}
		}
		bodyReader = strings.NewReader(string(bodyBytes))
	}

	req, err := http.NewRequest(method, c.BaseURL+path, bodyReader)
	if err != nil {
		return nil, &RequestError{Endpoint: path, Err: fmt.Errorf("create request: %w", err)}
	}

	req.Header.Set("User-Agent", fmt.Sprintf("%s/%s", ProjectName, Version))
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.APIKey)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	slog.Debug("api request", "method", method, "endpoint", path)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &RequestError{Endpoint: path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyData, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &RequestError{
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s", strings.TrimSpace(string(bodyData))),
		}
	}

	return resp, nil
}
