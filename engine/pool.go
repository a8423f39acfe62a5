package engine

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
)

// maxBodyBytes caps how much of a response body is read, bounding memory.
// Truncation does not change classification semantics since body filters
// only scan a prefix.
const maxBodyBytes = 2 * 1024 * 1024

// Pool is a fixed-size worker pool that drains probes from a bounded
// channel, dispatches them, and publishes one Result per dispatched probe
// on a channel buffered to twice the worker count.
type Pool struct {
	Threads int
	Client  *http.Client
	Resolve DNSResolveFunc
	CSRF    CSRFRefresher
}

// Run starts Threads workers consuming probes and returns the channel they
// publish results on. The returned channel is closed once every worker has
// drained probes (which happens when probes is closed and emptied).
func (p *Pool) Run(ctx context.Context, probes <-chan Probe) <-chan Result {
	threads := p.Threads
	if threads <= 0 {
		threads = 1
	}

	results := make(chan Result, threads*2)

	var wg sync.WaitGroup
	wg.Add(threads)
	for i := 0; i < threads; i++ {
		go func() {
			defer wg.Done()
			p.worker(ctx, probes, results)
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

func (p *Pool) worker(ctx context.Context, probes <-chan Probe, results chan<- Result) {
	for probe := range probes {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if probe.Mode == ModeDNS {
			results <- p.dispatchDNS(ctx, probe)
			continue
		}
		results <- p.dispatchHTTP(ctx, probe)
	}
}

func (p *Pool) dispatchDNS(ctx context.Context, probe Probe) Result {
	r := Result{Mode: ModeDNS, Domain: probe.Domain}

	addrs, resolved, err := p.Resolve(ctx, probe.Domain)
	if err != nil {
		r.Err = err
		r.ErrKind = ErrTransport
		return r
	}

	r.Resolved = resolved
	r.Addresses = addrs
	return r
}

func (p *Pool) dispatchHTTP(ctx context.Context, probe Probe) Result {
	r := Result{Mode: probe.Mode, URL: probe.URL, Method: probe.Method, Headers: probe.Headers}
	if probe.Mode == ModeVhost {
		r.Domain = probe.Host
	}

	if probe.NeedsCSRF {
		token, err := p.CSRF(ctx)
		if err != nil {
			r.Err = err
			r.ErrKind = ErrCSRFExtraction
			return r
		}
		probe = applyCSRF(probe, token)
		r.URL = probe.URL
	}

	var body io.Reader
	if probe.Body != "" {
		body = bytes.NewReader([]byte(probe.Body))
	}

	req, err := http.NewRequestWithContext(ctx, probe.Method, probe.URL, body)
	if err != nil {
		r.Err = err
		r.ErrKind = ErrTransport
		return r
	}
	for k, v := range probe.Headers {
		req.Header.Set(k, v)
	}
	if probe.Mode == ModeVhost {
		req.Host = probe.Host
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		r.Err = err
		r.ErrKind = ErrTransport
		return r
	}
	defer resp.Body.Close()

	r.Status = resp.StatusCode
	r.Location = resp.Header.Get("Location")

	// Only vhost and fuzz classification needs the body; dir only needs
	// the status code, so its body is drained but not retained.
	if probe.Mode == ModeVhost || probe.Mode == ModeFuzz {
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if readErr == nil {
			r.Body = body
		}
	} else {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	}

	return r
}
