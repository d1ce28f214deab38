// Package api is the HTTP core every resource client goes through. It
// attaches the bearer token, recovers from an expired access token with a
// single coalesced refresh-and-retry, and normalizes every failure into one
// of three error shapes.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const defaultTimeout = 30 * time.Second

// TokenStore is the slice of the token store the client needs.
type TokenStore interface {
	AccessToken() string
	RefreshToken() string
	SetTokens(access, refresh string) error
	ClearTokens() error
}

type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenStore
	limiter *rate.Limiter
	log     *slog.Logger

	onSessionExpired func()
	gate             refreshGate
}

type Options struct {
	// Timeout applies to every request. Zero means 30 seconds.
	Timeout time.Duration
	// RequestsPerSecond throttles outgoing calls; zero disables throttling.
	RequestsPerSecond float64
	Burst             int
	Logger            *slog.Logger
	HTTPClient        *http.Client
	// OnSessionExpired fires once per failed refresh, after tokens are
	// cleared. The session controller hooks it to tear the session down.
	OnSessionExpired func()
}

func New(baseURL string, tokens TokenStore, opts Options) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	httpc := opts.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: timeout}
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	return &Client{
		baseURL:          baseURL,
		httpc:            httpc,
		tokens:           tokens,
		limiter:          limiter,
		log:              log,
		onSessionExpired: opts.OnSessionExpired,
	}
}

// SetOnSessionExpired replaces the expiry hook. Call before issuing requests.
func (c *Client) SetOnSessionExpired(fn func()) { c.onSessionExpired = fn }

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Do issues one API request. On a first-time 401 it refreshes the token pair
// through the gate and retries exactly once; a 401 on the retry is terminal.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return &RequestError{Err: errors.Wrap(err, "marshal request body")}
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &RequestError{Err: err}
		}
	}

	access := c.tokens.AccessToken()
	status, respBody, err := c.send(ctx, method, path, query, payload, access)
	if err != nil {
		return err
	}

	// Refresh only when a token was attached and rejected. An anonymous 401
	// (bad login credentials, say) carries the backend's own error payload
	// and there is no session to refresh or expire.
	if status == http.StatusUnauthorized && access != "" {
		fresh, rerr := c.gate.do(ctx, c.refreshTokens)
		if rerr != nil {
			return rerr
		}
		// Retried exactly once with the fresh token; a second 401 falls
		// through and propagates like any other server error.
		status, respBody, err = c.send(ctx, method, path, query, payload, fresh)
		if err != nil {
			return err
		}
	}

	if status < 200 || status > 299 {
		serr := classify(status, respBody)
		c.log.Debug("api error response", "method", method, "path", path, "status", status)
		return serr
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &RequestError{Err: errors.Wrap(err, "decode response body")}
		}
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte, token string) (int, []byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return 0, nil, &RequestError{Err: errors.Wrap(err, "build request")}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Debug("api request failed", "method", method, "path", path, "error", err)
		return 0, nil, &ConnectivityError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &ConnectivityError{Err: err}
	}
	c.log.Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	return resp.StatusCode, respBody, nil
}
