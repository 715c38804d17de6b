// Package api implements the HTTP client for the document chat backend.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"go.uber.org/zap"

	"github.com/diogo/docchat/internal/config"
	apierrors "github.com/diogo/docchat/internal/errors"
	"github.com/diogo/docchat/internal/models"
)

const (
	// DefaultTimeout bounds a single request when no option overrides it
	DefaultTimeout = 300 * time.Second

	// maxResponseSize caps how much of a response body is read
	maxResponseSize = 8 * 1024 * 1024

	// maxErrorBody caps the raw body kept on an APIError
	maxErrorBody = 4096
)

// DocChatClient defines the backend operations used by the controllers and the TUI
type DocChatClient interface {
	Upload(ctx context.Context, path string) (*models.UploadResponse, error)
	UploadReader(ctx context.Context, r io.Reader, fileName string) (*models.UploadResponse, error)
	Chat(ctx context.Context, message string) (*models.ChatResponse, error)
	BaseURL() string
	Close()
}

// Client talks to the /upload and /chat endpoints
type Client struct {
	httpClient tls_client.HttpClient
	baseURL    string
	timeout    time.Duration
	userAgent  string
	logger     *zap.Logger
	mu         sync.RWMutex
	closed     bool
}

// Ensure Client implements DocChatClient
var _ DocChatClient = (*Client)(nil)

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithTimeout sets the per-request timeout. Zero keeps DefaultTimeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient tls_client.HttpClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// NewClient creates a new Client for the backend at baseURL
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if err := config.ValidateServerURL(baseURL); err != nil {
		return nil, err
	}

	client := &Client{
		baseURL:   baseURL,
		timeout:   DefaultTimeout,
		userAgent: models.DefaultHeaders()["User-Agent"],
		logger:    zap.NewNop(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(int(client.timeout / time.Second)),
			tls_client.WithClientProfile(profiles.Chrome_120),
			tls_client.WithNotFollowRedirects(),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// BaseURL returns the backend URL the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close releases idle connections. Later requests fail.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.httpClient.CloseIdleConnections()
}

// IsClosed returns whether the client is closed
func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// response is a fully read backend reply
type response struct {
	status int
	body   []byte
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// post sends body to endpoint and reads the whole reply.
// Only transport failures are returned as errors; status handling is left
// to the caller.
func (c *Client) post(ctx context.Context, endpoint string, body io.Reader, contentType string) (*response, error) {
	if c.IsClosed() {
		return nil, fmt.Errorf("client is closed")
	}

	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodPost, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", contentType)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		c.logger.Debug("request failed",
			zap.String("endpoint", endpoint),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, apierrors.NewNetworkError(strings.TrimPrefix(endpoint, "/"), endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, apierrors.NewNetworkError(strings.TrimPrefix(endpoint, "/"), endpoint,
			fmt.Errorf("failed to read response: %w", err))
	}

	c.logger.Debug("request finished",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)))

	return &response{status: resp.StatusCode, body: data}, nil
}

// statusError converts a non-2xx reply into an APIError carrying the
// server's "error" field
func statusError(endpoint string, resp *response) error {
	body := resp.body
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return apierrors.NewAPIErrorWithBody(resp.status, endpoint, models.ErrorField(resp.body), string(bytes.TrimSpace(body)))
}
