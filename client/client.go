// Package client is the Go SDK for the KADA Connect API. It wraps the
// JSON envelope, bearer auth with transparent refresh, and the admin
// key header behind typed methods.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// TokenStore holds the session tokens between requests. Implementations
// must be safe for concurrent use.
type TokenStore interface {
	AccessToken() string
	RefreshToken() string
	SetTokens(access, refresh string)
	Clear()
}

// MemoryTokenStore keeps tokens in process memory.
type MemoryTokenStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

// AccessToken returns the stored access token.
func (s *MemoryTokenStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

// RefreshToken returns the stored refresh token.
func (s *MemoryTokenStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

// SetTokens replaces both tokens.
func (s *MemoryTokenStore) SetTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.refresh = refresh
}

// Clear drops both tokens.
func (s *MemoryTokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
}

// Client talks to a KADA Connect API server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
	adminKey   string
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTokenStore swaps the token store.
func WithTokenStore(store TokenStore) Option {
	return func(c *Client) {
		if store != nil {
			c.tokens = store
		}
	}
}

// WithAdminKey sends the given value as X-Admin-Key on every request.
func WithAdminKey(key string) Option {
	return func(c *Client) {
		c.adminKey = key
	}
}

// New builds a Client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		tokens:     &MemoryTokenStore{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tokens exposes the token store, mainly so callers can persist or
// inspect the session.
func (c *Client) Tokens() TokenStore {
	return c.tokens
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do performs one API call. On a 401 it refreshes the session once and
// retries; a failed refresh clears the stored tokens so the caller
// drops back to anonymous.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	resp, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && c.tokens.RefreshToken() != "" && path != "/auth/refresh" {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if err := c.refreshSession(ctx); err != nil {
			c.tokens.Clear()
			return &APIError{StatusCode: http.StatusUnauthorized, Message: "session expired"}
		}

		resp, err = c.send(ctx, method, path, query, body)
		if err != nil {
			return err
		}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &env); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := env.Message
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if c.adminKey != "" {
		req.Header.Set("X-Admin-Key", c.adminKey)
	}

	return c.httpClient.Do(req)
}

func (c *Client) refreshSession(ctx context.Context) error {
	var pair TokenPair
	payload := map[string]string{"refresh_token": c.tokens.RefreshToken()}
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, payload, &pair); err != nil {
		return err
	}
	c.tokens.SetTokens(pair.AccessToken, pair.RefreshToken)
	return nil
}

// setQueryParam adds a filter value, dropping empty strings and the
// catch-all sentinel so the server never sees them as literals.
func setQueryParam(query url.Values, key, value string) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "all") {
		return
	}
	query.Set(key, value)
}

func setPaging(query url.Values, page, limit int) {
	if page > 0 {
		query.Set("page", fmt.Sprintf("%d", page))
	}
	if limit > 0 {
		query.Set("limit", fmt.Sprintf("%d", limit))
	}
}
