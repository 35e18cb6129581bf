package ragie

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL = "https://api.ragie.ai"

	retrievalsPath = "/retrievals"
	documentsPath  = "/documents"

	// partitionHeader scopes document requests to a partition.
	partitionHeader = "partition"

	// maxErrorBody bounds how much of a failed response is kept in the error.
	maxErrorBody = 4 << 10
)

// Client calls the Ragie REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		if u = strings.TrimRight(u, "/"); u != "" {
			c.baseURL = u
		}
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets a client-wide request timeout. Zero keeps the default
// client behavior.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

// New returns a Client authenticated with apiKey.
func New(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Filter is a metadata filter applied server-side.
type Filter map[string]any

// RetrievalRequest is the body of POST /retrievals.
type RetrievalRequest struct {
	Query     string `json:"query"`
	Filter    Filter `json:"filter,omitempty"`
	Partition string `json:"partition,omitempty"`
	TopK      int    `json:"top_k,omitempty"`
	Rerank    *bool  `json:"rerank,omitempty"`
}

// Retrieve runs a retrieval and returns the undecoded response.
func (c *Client) Retrieve(ctx context.Context, req RetrievalRequest) (*RetrievalResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode retrieval request: %w", err)
	}

	logrus.Debugf("POST %s%s", c.baseURL, retrievalsPath)

	raw, err := c.do(ctx, http.MethodPost, retrievalsPath, bytes.NewReader(body), nil)
	if err != nil {
		return nil, err
	}

	if !json.Valid(raw) {
		return nil, fmt.Errorf("retrieval response is not valid JSON")
	}

	return &RetrievalResponse{Raw: raw}, nil
}

// GetDocument fetches a document's metadata by id.
func (c *Client) GetDocument(ctx context.Context, id, partition string) (json.RawMessage, error) {
	path := documentsPath + "/" + url.PathEscape(id)

	var header http.Header
	if partition != "" {
		header = http.Header{}
		header.Set(partitionHeader, partition)
	}

	logrus.Debugf("GET %s%s", c.baseURL, path)

	raw, err := c.do(ctx, http.MethodGet, path, nil, header)
	if err != nil {
		return nil, err
	}

	if !json.Valid(raw) {
		return nil, fmt.Errorf("document response is not valid JSON")
	}

	return raw, nil
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}

	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return raw, nil
}
