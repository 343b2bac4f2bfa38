package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sicmundus/tracker/internal/logging"
)

const requestIDHeader = "X-Request-ID"

// TokenSource yields the current bearer token, "" when signed out.
// The gateway only ever reads it.
type TokenSource interface {
	Token() string
}

type Gateway struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  logging.Logger
}

// NewGateway builds a gateway for the API rooted at baseURL
// (e.g. "http://localhost:8006/api"). A nil httpClient means a plain
// &http.Client{} without timeout.
func NewGateway(baseURL string, httpClient *http.Client, tokens TokenSource, logger logging.Logger) *Gateway {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		tokens:  tokens,
		logger:  logger,
	}
}

// Do sends one request. body, when non-nil, is encoded as JSON; out, when
// non-nil, receives the decoded JSON response.
func (g *Gateway) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if token := g.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		g.logger.Debug(ctx, "api call failed", "method", method, "path", path, "request_id", requestID, "err", err)
		return &APIError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	g.logger.Debug(ctx, "api call", "method", method, "path", path, "status", resp.StatusCode, "request_id", requestID)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Message: err.Error(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(data))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }
