// Package upstream contains typed HTTP clients for the read-only data
// sources the aggregator consumes: the market-data API, the exchange
// stats API, and the order subgraph. Every request is routed through the
// shared TTL request cache so repeated aggregation passes within the
// cache window never re-query a slow source.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUnavailable marks any upstream failure: network error, non-success
// status, or a payload that does not match the expected shape. Callers
// can detect the class with errors.Is.
var ErrUnavailable = errors.New("upstream unavailable")

const defaultTimeout = 15 * time.Second

// httpDoer is the subset of *http.Client the clients need; tests can
// substitute their own transport.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}

// getJSON issues a GET and decodes the response body into out,
// failing fast on non-2xx statuses and malformed payloads.
func getJSON(ctx context.Context, client httpDoer, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: build request %s: %v", ErrUnavailable, url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: get %s: %v", ErrUnavailable, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: get %s: unexpected status %d", ErrUnavailable, url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: get %s: decode payload: %v", ErrUnavailable, url, err)
	}
	return nil
}

// postJSON issues a POST with a JSON body and decodes the response into
// out, with the same failure policy as getJSON.
func postJSON(ctx context.Context, client httpDoer, url string, body any, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: post %s: encode body: %v", ErrUnavailable, url, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%w: build request %s: %v", ErrUnavailable, url, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: post %s: %v", ErrUnavailable, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain a little of the body for a useful error message.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("%w: post %s: unexpected status %d: %s", ErrUnavailable, url, resp.StatusCode, snippet)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: post %s: decode payload: %v", ErrUnavailable, url, err)
	}
	return nil
}
