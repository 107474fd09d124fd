package ragapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/amartinez/docchat"
)

// Interface compliance check.
var _ docchat.Provider = (*Client)(nil)

// Client implements [docchat.Provider] for the retrieval-chat backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for dropped malformed stream lines.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a new backend [Client] for the given base URL, e.g.
// "http://localhost:8000/api/chat".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		logger:     slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Stream sends a streaming chat request and returns a [docchat.Stream]
// over the reply fragments. A non-2xx status fails immediately with
// *docchat.TransportError; no stream is created.
func (c *Client) Stream(ctx context.Context, req docchat.Request) (docchat.Stream, error) {
	resp, err := c.post(ctx, streamPath, req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &docchat.TransportError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return newStream(ctx, resp.Body, c.logger), nil
}

// Message sends a non-streaming chat request and returns the complete
// reply text.
func (c *Client) Message(ctx context.Context, req docchat.Request) (string, error) {
	resp, err := c.post(ctx, messagePath, req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &docchat.TransportError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var mr messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return "", fmt.Errorf("ragapi: decode message response: %w", err)
	}
	if !mr.Success {
		return "", fmt.Errorf("ragapi: backend reported failure")
	}
	return mr.Response, nil
}

// Health checks the backend's chat health route.
func (c *Client) Health(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return fmt.Errorf("ragapi: %w", err)
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("ragapi: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &docchat.TransportError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	var hr healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&hr); err != nil {
		return fmt.Errorf("ragapi: decode health response: %w", err)
	}
	if hr.Status != "healthy" {
		return fmt.Errorf("ragapi: backend unhealthy: %s", hr.Status)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, req docchat.Request) (*http.Response, error) {
	history := req.History
	if history == nil {
		history = []docchat.HistoryEntry{}
	}
	body, err := json.Marshal(apiRequest{
		Message:             req.Message,
		ConversationHistory: history,
	})
	if err != nil {
		return nil, fmt.Errorf("ragapi: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ragapi: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ragapi: %w", err)
	}
	return resp, nil
}
