package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/httpclient"
)

// Syncer pushes local mutations to the remote wishlist service and pulls its
// canonical list. Every method is best-effort from the store's point of view:
// errors are logged by the caller, never replayed or queued.
type Syncer interface {
	Notify(ctx context.Context, productID, action string) error
	NotifyClear(ctx context.Context) error
	FetchAll(ctx context.Context) ([]Item, error)
}

// Doer executes a single HTTP request. Satisfied by both httpclient.Client
// and httpclient.CircuitBreakerClient.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// TokenProvider returns the session bearer token for the current visitor.
type TokenProvider func() (string, error)

// HTTPSyncerConfig configures an HTTPSyncer.
type HTTPSyncerConfig struct {
	// BaseURL is the wishlist service origin, e.g. "https://api.luxfashion.example".
	BaseURL string

	// Token supplies the session bearer token per request. Required.
	Token TokenProvider

	// Doer overrides the HTTP client. When nil, a no-retry client wrapped in
	// a circuit breaker is used: a dead remote should short-circuit, not
	// accumulate hanging requests, and failed notifications are never
	// retried.
	Doer Doer

	Logger *slog.Logger
}

// HTTPSyncer talks to the remote wishlist service over its JSON API.
type HTTPSyncer struct {
	baseURL string
	token   TokenProvider
	doer    Doer
	logger  *slog.Logger
}

// NewHTTPSyncer creates a syncer against the remote wishlist service.
func NewHTTPSyncer(cfg HTTPSyncerConfig) *HTTPSyncer {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	doer := cfg.Doer
	if doer == nil {
		base := httpclient.New(httpclient.SyncConfig())
		doer = httpclient.NewCircuitBreakerClient(base, httpclient.DefaultCircuitBreakerConfig("wishlist-sync"), logger)
	}

	return &HTTPSyncer{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		doer:    doer,
		logger:  logger,
	}
}

type mutationPayload struct {
	ProductID string `json:"productId"`
	Action    string `json:"action"`
}

type mutationReply struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

type fetchReply struct {
	Items []Item `json:"items"`
}

// Notify sends a single add/remove mutation.
func (s *HTTPSyncer) Notify(ctx context.Context, productID, action string) error {
	body, err := json.Marshal(mutationPayload{ProductID: productID, Action: action})
	if err != nil {
		return fmt.Errorf("marshal wishlist mutation: %w", err)
	}

	req, err := s.newRequest(ctx, http.MethodPost, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.doer.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("notify wishlist %s: %w", action, err)
	}
	defer drain(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("notify wishlist %s: unexpected status %d", action, resp.StatusCode)
	}

	var reply mutationReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return fmt.Errorf("decode wishlist %s reply: %w", action, err)
	}
	if !reply.Success {
		return fmt.Errorf("wishlist %s rejected: %s", action, reply.Message)
	}

	return nil
}

// NotifyClear sends a clear-all mutation.
func (s *HTTPSyncer) NotifyClear(ctx context.Context) error {
	req, err := s.newRequest(ctx, http.MethodDelete, http.NoBody)
	if err != nil {
		return err
	}

	resp, err := s.doer.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("notify wishlist clear: %w", err)
	}
	defer drain(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("notify wishlist clear: unexpected status %d", resp.StatusCode)
	}

	return nil
}

// FetchAll pulls the server's canonical wishlist. A response without a
// well-formed items sequence is an error; the store treats it as a no-op.
func (s *HTTPSyncer) FetchAll(ctx context.Context) ([]Item, error) {
	req, err := s.newRequest(ctx, http.MethodGet, http.NoBody)
	if err != nil {
		return nil, err
	}

	resp, err := s.doer.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fetch wishlist: %w", err)
	}
	defer drain(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch wishlist: unexpected status %d", resp.StatusCode)
	}

	var reply fetchReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("decode wishlist response: %w", err)
	}
	if reply.Items == nil {
		return nil, fmt.Errorf("wishlist response missing items")
	}

	return reply.Items, nil
}

func (s *HTTPSyncer) newRequest(ctx context.Context, method string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+"/api/v1/wishlist", body)
	if err != nil {
		return nil, fmt.Errorf("create wishlist request: %w", err)
	}

	token, err := s.token()
	if err != nil {
		return nil, fmt.Errorf("resolve session token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	return req, nil
}

func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 64<<10))
	_ = body.Close()
}
