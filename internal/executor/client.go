// Package executor proxies code runs to a Piston-compatible execution service.
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	// ErrUnsupportedLanguage is returned for languages outside the runtime map.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrUpstream wraps any failure talking to the execution service.
	ErrUpstream = errors.New("execution service failure")
)

// maxResponseBytes caps how much upstream output is relayed.
const maxResponseBytes = 1 << 20

type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient posts to endpoint, e.g. https://emkc.org/api/v2/piston/execute.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

type file struct {
	Content string `json:"content"`
}

type executeRequest struct {
	Language string `json:"language"`
	Version  string `json:"version"`
	Files    []file `json:"files"`
}

// Execute runs code and returns the upstream JSON response unchanged.
func (c *Client) Execute(ctx context.Context, language, code string) (json.RawMessage, error) {
	rt, ok := lookup(language)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}

	body, err := json.Marshal(executeRequest{
		Language: rt.Language,
		Version:  rt.Version,
		Files:    []file{{Content: code}},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUpstream, err)
	}
	if resp.StatusCode >= 300 {
		log.Warn().Str("module", "executor").Int("status", resp.StatusCode).Str("language", rt.Language).Msg("execution service rejected request")
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: invalid json response", ErrUpstream)
	}
	return json.RawMessage(raw), nil
}
