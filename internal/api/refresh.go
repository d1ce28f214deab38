package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/pkg/errors"
)

var ErrNoRefreshToken = errors.New("no refresh token available")

// refreshGate serializes token refreshes. At most one refresh call is in
// flight; callers that hit a 401 while one is outstanding park on a waiter
// channel and receive the shared result. Waiters are resolved in the order
// they enqueued.
type refreshGate struct {
	mu         sync.Mutex
	refreshing bool
	waiters    []chan refreshResult
}

type refreshResult struct {
	access string
	err    error
}

// do runs fn if no refresh is in flight, otherwise waits for the in-flight
// one to settle. The winner's result is fanned out to every waiter.
func (g *refreshGate) do(ctx context.Context, fn func() (string, error)) (string, error) {
	g.mu.Lock()
	if g.refreshing {
		ch := make(chan refreshResult, 1)
		g.waiters = append(g.waiters, ch)
		g.mu.Unlock()
		select {
		case res := <-ch:
			return res.access, res.err
		case <-ctx.Done():
			return "", &RequestError{Err: ctx.Err()}
		}
	}
	g.refreshing = true
	g.mu.Unlock()

	access, err := fn()

	g.mu.Lock()
	waiters := g.waiters
	g.waiters = nil
	g.refreshing = false
	g.mu.Unlock()

	for _, ch := range waiters {
		ch <- refreshResult{access: access, err: err}
	}
	return access, err
}

// refreshTokens trades the stored refresh token for a new pair. Any failure
// tears the session down: tokens are cleared and the session-expired hook
// fires, the CLI analog of a forced redirect to the login page. Only the
// gate's winning caller runs this.
func (c *Client) refreshTokens() (string, error) {
	newAccess, err := c.callRefresh()
	if err != nil {
		if clearErr := c.tokens.ClearTokens(); clearErr != nil {
			c.log.Error("failed to clear tokens after refresh failure", "error", clearErr)
		}
		if c.onSessionExpired != nil {
			c.onSessionExpired()
		}
		return "", err
	}
	return newAccess, nil
}

func (c *Client) callRefresh() (string, error) {
	refresh := c.tokens.RefreshToken()
	if refresh == "" {
		return "", &Error{StatusCode: http.StatusUnauthorized, Kind: KindDetail, Detail: ErrNoRefreshToken.Error()}
	}

	payload, err := json.Marshal(map[string]string{"refresh": refresh})
	if err != nil {
		return "", &RequestError{Err: err}
	}

	// No bearer header and no gate: the refresh endpoint authenticates by
	// refresh token alone, and routing it through Do would recurse.
	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/auth/token/refresh/", bytes.NewReader(payload))
	if err != nil {
		return "", &RequestError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", &ConnectivityError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ConnectivityError{Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", classify(resp.StatusCode, body)
	}

	var pair struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := json.Unmarshal(body, &pair); err != nil {
		return "", &RequestError{Err: errors.Wrap(err, "decode refresh response")}
	}
	if err := c.tokens.SetTokens(pair.Access, pair.Refresh); err != nil {
		return "", &RequestError{Err: errors.Wrap(err, "persist refreshed tokens")}
	}
	c.log.Debug("access token refreshed")
	return pair.Access, nil
}
