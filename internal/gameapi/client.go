package gameapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

// HeaderProvider allows injecting per-request headers
type HeaderProvider func() map[string]string

// Client is a stateless adapter for the remote game service. It holds no
// session state; callers own the game id for its lifetime.
type Client struct {
	baseURL string
	http    *fasthttp.Client
	headers HeaderProvider

	defaultTimeout time.Duration
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.defaultTimeout = d
		}
	}
}

func WithMaxConnsPerHost(n int) Option {
	return func(c *Client) { c.http.MaxConnsPerHost = n }
}

func WithHeaderProvider(h HeaderProvider) Option {
	return func(c *Client) { c.headers = h }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:           &fasthttp.Client{ReadTimeout: 10 * time.Second, WriteTimeout: 10 * time.Second, MaxConnsPerHost: 4},
		defaultTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateGame asks the server to start a fresh session and returns its id.
func (c *Client) CreateGame(ctx context.Context) (string, error) {
	var resp createGameResponse
	if err := c.doJSON(ctx, fasthttp.MethodPost, "/game", nil, &resp, fasthttp.StatusOK); err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.GameID) == "" {
		return "", fmt.Errorf("%w: missing game_id", ErrInvalidResponse)
	}
	return resp.GameID, nil
}

// SubmitGuess scores guess against the session's hidden code.
func (c *Client) SubmitGuess(ctx context.Context, gameID, guess string) (Score, error) {
	if gameID == "" {
		return Score{}, fmt.Errorf("%w: empty game id", ErrInvalidRequest)
	}
	req := guessRequest{GameID: gameID, Guess: guess}
	var score Score
	if err := c.doJSON(ctx, fasthttp.MethodPost, "/guess", req, &score, fasthttp.StatusOK); err != nil {
		return Score{}, err
	}
	return score, nil
}

// DeleteGame releases the server-side session. Only 204 counts as success.
func (c *Client) DeleteGame(ctx context.Context, gameID string) error {
	if gameID == "" {
		return fmt.Errorf("%w: empty game id", ErrInvalidRequest)
	}
	return c.doJSON(ctx, fasthttp.MethodDelete, "/game/"+url.PathEscape(gameID), nil, nil, fasthttp.StatusNoContent)
}

// doJSON performs one request/response exchange. Every call is single-shot:
// the remote contract defines no retry semantics, so none are attempted here.
func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any, wantStatus int) error {
	if c.baseURL == "" {
		return fmt.Errorf("%w: empty base URL", ErrInvalidRequest)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	req.Header.SetContentType("application/json")

	if c.headers != nil {
		for k, v := range c.headers() {
			if strings.TrimSpace(k) != "" && strings.TrimSpace(v) != "" {
				req.Header.Set(k, v)
			}
		}
	}

	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		req.SetBody(payload)
	}

	if err := c.http.DoDeadline(req, resp, c.computeDeadline(ctx)); err != nil {
		return &ServerError{Message: fmt.Sprintf("request failed: %v", err)}
	}

	status := resp.StatusCode()
	if status != wantStatus {
		var body errorResponse
		if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Error != "" {
			return &ServerError{Status: status, Message: body.Error}
		}
		return &ServerError{Status: status, Message: truncate(string(resp.Body()), 512)}
	}

	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
	}
	return nil
}

func (c *Client) computeDeadline(ctx context.Context) time.Time {
	clientDL := time.Now().Add(c.defaultTimeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(clientDL) {
		return dl
	}
	return clientDL
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
