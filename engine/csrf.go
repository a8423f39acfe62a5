package engine

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/fathomsec/fathom/semaphore"
)

// CSRFRefresher is the capability the fuzz worker holds when --csrf-url and
// --csrf-regex were both configured. It is passed into the pool as a
// function value rather than read from conditional global state, per the
// engine's design notes.
type CSRFRefresher func(ctx context.Context) (token string, err error)

// NewCSRFRefresher builds a CSRFRefresher that issues a fresh GET to url on
// every call — no caching between probes, so a rotating anti-CSRF token is
// handled correctly. Concurrent refresh calls from the worker pool are
// capped by lim so a large --threads value cannot hammer the CSRF endpoint
// harder than the target itself is being hit.
func NewCSRFRefresher(client *http.Client, url string, headers map[string]string, re *regexp.Regexp, lim *semaphore.Limiter) CSRFRefresher {
	return func(ctx context.Context) (string, error) {
		lim.Acquire()
		defer lim.Release()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return "", fmt.Errorf("building CSRF refresh request: %w", err)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := client.Do(req)
		if err != nil {
			return "", fmt.Errorf("CSRF refresh request failed: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return "", fmt.Errorf("reading CSRF refresh response: %w", err)
		}

		m := re.FindSubmatch(body)
		if len(m) < 2 {
			return "", fmt.Errorf("CSRF regex did not match the refresh response")
		}
		return string(m[1]), nil
	}
}

// applyCSRF replaces every CSRFCSRF occurrence in the probe's URL, body,
// and headers with token, leaving every other byte untouched.
func applyCSRF(p Probe, token string) Probe {
	p.URL = strings.ReplaceAll(p.URL, csrfSentinel, token)
	p.Body = strings.ReplaceAll(p.Body, csrfSentinel, token)

	if len(p.Headers) > 0 {
		headers := make(map[string]string, len(p.Headers))
		for k, v := range p.Headers {
			headers[k] = strings.ReplaceAll(v, csrfSentinel, token)
		}
		p.Headers = headers
	}
	return p
}
