package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"lineup/internal/types"
)

const (
	RouteSubmitGuesses = "/submit_guesses"
	RouteGameState     = "/game_state"
)

var ErrServerStatus = errors.New("server error")

// Client talks to the lineup server on behalf of a ui.Controller.
// It keeps the session cookie across requests.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// New returns a client for baseURL. timeout bounds each request; zero means no limit
// beyond the caller's context.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("server url %q must include scheme and host", baseURL)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: u,
		http:    &http.Client{Jar: jar, Timeout: timeout},
	}, nil
}

func (c *Client) url(path string) string {
	return c.baseURL.String() + path
}

// SubmitGuesses posts one form entry per position. Non-2xx statuses return ErrServerStatus;
// a 2xx body carrying an error key is returned as is for the caller to inspect.
func (c *Client) SubmitGuesses(ctx context.Context, guesses url.Values) (*types.SubmitResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(RouteSubmitGuesses), strings.NewReader(guesses.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %d", ErrServerStatus, resp.StatusCode)
	}

	var out types.SubmitResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode submit response: %w", err)
	}
	return &out, nil
}

// Navigate performs a GET of path, following redirects, and discards the page.
func (c *Client) Navigate(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %d", ErrServerStatus, resp.StatusCode)
	}
	return nil
}

// GameState fetches the current session's team and positions.
func (c *Client) GameState(ctx context.Context) (*types.GameStateResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(RouteGameState), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %d", ErrServerStatus, resp.StatusCode)
	}
	var out types.GameStateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode game state: %w", err)
	}
	return &out, nil
}
