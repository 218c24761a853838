package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// Client holds the provider access token and keeps it fresh. The token must be
// valid for at least the duration of one webhook request before any core
// operation fires; no core operation refreshes it mid-flight.
type Client struct {
	conf oauth2.Config

	mu           sync.Mutex
	code         string
	refreshToken string
	token        *oauth2.Token
}

// NewClient creates a token client from the configuration.
func NewClient(conf Conf) *Client {
	return &Client{
		conf:         conf.toOauth2Config(),
		code:         conf.Code,
		refreshToken: conf.RefreshToken,
	}
}

// Bootstrap acquires the initial token at startup. The one-time authorization
// code is tried first; when it is absent or already consumed, the configured
// refresh token is used instead.
func (c *Client) Bootstrap(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.code != "" {
		tok, err := c.conf.Exchange(ctx, c.code)
		if err == nil {
			c.setToken(tok)
			return nil
		}
		// The code is single use, so a failed exchange is expected on
		// restart. Fall back to the refresh flow.
	}
	if c.refreshToken == "" {
		return errors.New("no usable authorization code or refresh token configured")
	}
	return c.refreshLocked(ctx)
}

// Refresh ensures the access token stays valid for at least minValidity.
// It is a no-op when the current token already satisfies the requirement.
func (c *Client) Refresh(ctx context.Context, minValidity time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != nil && c.token.Expiry.After(time.Now().Add(minValidity)) {
		return nil
	}
	return c.refreshLocked(ctx)
}

// SetAuthHeader sets the bearer token on the request, refreshing first when
// the current token is no longer valid.
func (c *Client) SetAuthHeader(r *http.Request) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == nil || !c.token.Valid() {
		if err := c.refreshLocked(r.Context()); err != nil {
			return err
		}
	}
	c.token.SetAuthHeader(r)
	return nil
}

func (c *Client) refreshLocked(ctx context.Context) error {
	seed := &oauth2.Token{RefreshToken: c.refreshToken}
	tok, err := c.conf.TokenSource(ctx, seed).Token()
	if err != nil {
		return fmt.Errorf("failed to refresh token: %w", err)
	}
	c.setToken(tok)
	return nil
}

func (c *Client) setToken(tok *oauth2.Token) {
	c.token = tok
	if tok.RefreshToken != "" {
		c.refreshToken = tok.RefreshToken
	}
}
