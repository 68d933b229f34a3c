// Package client holds thin HTTP clients for the sibling marketplace
// services (chat, demand, profile, agent). They satisfy the gateway
// ports on the command side; failures surface as errors for the caller
// to fall back on, never as panics.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"coachly/internal/pkg/config"
	"coachly/internal/pkg/errs"
)

var ErrUnexpectedStatus = errs.New("unexpected response status from upstream service")

type httpClient struct {
	baseURL string
	client  *http.Client
}

func newHTTPClient(baseURL string, cfg config.ClientsConfig) httpClient {
	return httpClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

func (c httpClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errs.Wrap(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

func (c httpClient) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return errs.Wrap(err, "failed to encode request body")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return errs.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

func (c httpClient) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return errs.Wrap(err, "request failed")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errs.Wrap(ErrUnexpectedStatus, resp.Status)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.Wrap(err, "failed to decode response body")
	}
	return nil
}
