// Package provider implements one adapter per upstream USPTO data source.
// Each adapter knows how to build a source-specific query for an entity name
// and how to map the source's response schema into the canonical record
// shapes in internal/domain/records.
//
// Adapters never let ordinary failures escape uncategorised: a transport
// error, timeout, bad status, or malformed body is returned as a data-source
// (SRC_*) AppError, which the resolver absorbs as "zero records" and uses to
// advance its fallback chain.
package provider

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/patwell/ipgate/internal/config"
	"github.com/patwell/ipgate/pkg/errors"
)

// maxResponseBytes caps how much of an upstream body is read, protecting the
// process from a misbehaving source.
const maxResponseBytes = 8 << 20

// newHTTPClient builds the shared upstream client posture: bounded timeout
// and, when configured, relaxed TLS verification.  Several USPTO hosts serve
// certificate chains that fail strict verification; relaxing trust is a
// deliberate policy scoped to those upstreams, not a general stance.
func newHTTPClient(cfg config.ProviderConfig) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: cfg.InsecureSkipVerify}
	return &http.Client{
		Timeout:   cfg.Timeout,
		Transport: transport,
	}
}

// doJSON issues req, enforces a 200 response, and decodes the body into dest.
// Every failure mode maps to a data-source error code.
func doJSON(client *http.Client, req *http.Request, dest interface{}) error {
	resp, err := client.Do(req)
	if err != nil {
		if req.Context().Err() == context.DeadlineExceeded || isTimeout(err) {
			return errors.Wrap(err, errors.CodeSourceTimeout, "upstream request timed out")
		}
		return errors.Wrap(err, errors.CodeSourceUnavailable, "upstream request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.New(errors.CodeSourceBadStatus,
			fmt.Sprintf("upstream returned status %d", resp.StatusCode)).
			WithDetail(req.URL.Host)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errors.Wrap(err, errors.CodeSourceUnavailable, "failed to read upstream response")
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return errors.Wrap(err, errors.CodeSourceParseError, "failed to parse upstream response")
	}
	return nil
}

func isTimeout(err error) bool {
	type timeout interface{ Timeout() bool }
	for err != nil {
		if te, ok := err.(timeout); ok && te.Timeout() {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// getJSON issues a GET with the request bound to ctx.
func getJSON(ctx context.Context, client *http.Client, url string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, errors.CodeSourceUnavailable, "failed to build upstream request")
	}
	req.Header.Set("Accept", "application/json")
	return doJSON(client, req, dest)
}

// postJSON issues a POST with a JSON body bound to ctx.
func postJSON(ctx context.Context, client *http.Client, url string, payload, dest interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, errors.CodeSourceUnavailable, "failed to encode upstream request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, errors.CodeSourceUnavailable, "failed to build upstream request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return doJSON(client, req, dest)
}

// strOrNil returns nil for an empty date string, so canonical records carry
// an explicit null instead of "".
func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
