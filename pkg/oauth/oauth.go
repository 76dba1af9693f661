// Package oauth provides OAuth 2.0 client-credentials utilities for the
// platform adapters.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var ErrTokenNotFound = errors.New("token not found")

// expirySkew refreshes tokens slightly before the platform would reject
// them, so an in-flight request never races the expiry.
const expirySkew = 60 * time.Second

type Config struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
}

// TwitchOAuthConfig returns the app access-token config for the Twitch
// Helix API.
func TwitchOAuthConfig(clientID, clientSecret string) Config {
	return Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     "https://id.twitch.tv/oauth2/token",
	}
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`

	// ExpiresAt is the absolute expiry, filled in by TokenCache so a
	// persisted token stays checkable across process restarts.
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Flow performs client-credentials token requests.
type Flow struct {
	config     Config
	httpClient HTTPClient
}

type FlowOption func(*Flow)

func WithHTTPClient(client HTTPClient) FlowOption {
	return func(f *Flow) { f.httpClient = client }
}

func NewFlow(config Config, opts ...FlowOption) *Flow {
	f := &Flow{config: config, httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchToken requests a fresh app access token via the client-credentials
// grant.
func (f *Flow) FetchToken(ctx context.Context) (*Token, error) {
	data := url.Values{}
	data.Set("client_id", f.config.ClientID)
	data.Set("client_secret", f.config.ClientSecret)
	data.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.config.TokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch token: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token request failed: status %d", resp.StatusCode)
	}

	var token Token
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &token, nil
}

// TokenCache holds a process-wide app token and refreshes it lazily on
// expiry. The read-check-refresh-write sequence runs under a mutex so
// concurrent fetch tasks never trigger redundant refreshes.
type TokenCache struct {
	flow     *Flow
	now      func() time.Time
	storage  *TokenStorage
	provider string

	mu          sync.Mutex
	token       *Token
	expires     time.Time
	invalidated bool
}

type CacheOption func(*TokenCache)

// WithClock overrides the cache's time source (used for expiry tests).
func WithClock(now func() time.Time) CacheOption {
	return func(c *TokenCache) { c.now = now }
}

// WithStorage persists refreshed tokens under the given provider name and
// warm-starts the cache from a previously saved token.
func WithStorage(storage *TokenStorage, provider string) CacheOption {
	return func(c *TokenCache) {
		c.storage = storage
		c.provider = provider
	}
}

func NewTokenCache(flow *Flow, opts ...CacheOption) *TokenCache {
	c := &TokenCache{flow: flow, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the cached access token, refreshing it first when missing
// or within the expiry skew.
func (c *TokenCache) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != nil && c.now().Before(c.expires.Add(-expirySkew)) {
		return c.token.AccessToken, nil
	}

	if c.token == nil && !c.invalidated && c.storage != nil {
		if saved, err := c.storage.Load(c.provider); err == nil {
			if c.now().Before(saved.ExpiresAt.Add(-expirySkew)) {
				c.token = saved
				c.expires = saved.ExpiresAt
				return saved.AccessToken, nil
			}
		}
	}

	token, err := c.flow.FetchToken(ctx)
	if err != nil {
		return "", err
	}
	c.token = token
	c.invalidated = false
	c.expires = c.now().Add(time.Duration(token.ExpiresIn) * time.Second)
	token.ExpiresAt = c.expires
	if c.storage != nil {
		// Persistence is best effort; a failed save only costs a
		// refresh on the next run.
		_ = c.storage.Save(c.provider, token)
	}
	return token.AccessToken, nil
}

// Invalidate drops the cached token so the next Token call refreshes. The
// stored copy is skipped too: a token the platform just rejected is no
// better coming from disk.
func (c *TokenCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = nil
	c.invalidated = true
}

// TokenStorage persists tokens on disk so the CLI reuses an app token
// across runs instead of minting one per invocation.
type TokenStorage struct {
	dir string
}

func NewTokenStorage(dir string) *TokenStorage {
	return &TokenStorage{dir: dir}
}

func (s *TokenStorage) Save(provider string, token *Token) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	cleanProvider := filepath.Base(provider)
	return os.WriteFile(filepath.Join(s.dir, cleanProvider+"_token.json"), data, 0600)
}

func (s *TokenStorage) Load(provider string) (*Token, error) {
	cleanProvider := filepath.Base(provider)
	data, err := os.ReadFile(filepath.Join(s.dir, cleanProvider+"_token.json")) // #nosec G304 -- provider is sanitized
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to read token: %w", err)
	}

	var token Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token: %w", err)
	}

	return &token, nil
}
