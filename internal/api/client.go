// Package api provides the request/response client for the Malcolm service.
package api

import (
	"fmt"
	"io"
	"strings"
	"sync"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	"github.com/diogo/malcolmweb/internal/device"
	"github.com/diogo/malcolmweb/internal/models"
)

// MalcolmClient is the main client for the Malcolm service's HTTP endpoints.
// The realtime channel is a separate concern (see internal/realtime); this
// client only covers the one-shot request/response calls.
type MalcolmClient struct {
	httpClient tls_client.HttpClient
	baseURL    string
	timeoutSec int
	mu         sync.RWMutex
	closed     bool
}

// ClientOption is a function that configures the client
type ClientOption func(*MalcolmClient)

// WithBaseURL sets the service root URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *MalcolmClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout sets the request timeout in seconds.
func WithTimeout(seconds int) ClientOption {
	return func(c *MalcolmClient) {
		c.timeoutSec = seconds
	}
}

// WithHTTPClient replaces the underlying HTTP client. Intended for tests.
func WithHTTPClient(httpClient tls_client.HttpClient) ClientOption {
	return func(c *MalcolmClient) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new MalcolmClient
func NewClient(opts ...ClientOption) (*MalcolmClient, error) {
	client := &MalcolmClient{
		baseURL:    models.DefaultBaseURL,
		timeoutSec: 60,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(client.timeoutSec),
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

// BaseURL returns the configured service root.
func (c *MalcolmClient) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// Close marks the client as closed. Further calls fail fast.
func (c *MalcolmClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// IsClosed returns whether the client is closed
func (c *MalcolmClient) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// endpoint joins the base URL with a service path.
func (c *MalcolmClient) endpoint(path string) string {
	return c.BaseURL() + path
}

// MalcolmClientInterface abstracts the client for commands and TUI tests.
type MalcolmClientInterface interface {
	Optimize(profile device.Profile) ([]string, error)
	UploadFile(path string) (*models.UploadResult, error)
	UploadReader(r io.Reader, filename string) (*models.UploadResult, error)
	Download(filename, destDir string) (string, error)
	Health() (string, error)
	Meta() (map[string]any, error)
	BaseURL() string
	Close()
	IsClosed() bool
}

// Ensure MalcolmClient implements MalcolmClientInterface
var _ MalcolmClientInterface = (*MalcolmClient)(nil)
