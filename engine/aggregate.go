package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
)

// Aggregator deduplicates reportable results and preserves first-observation
// order. It is written only by the Driver, from a single goroutine, so no
// locking would strictly be required — the mutex here guards against a
// caller (e.g. a test) driving it concurrently, and costs nothing on the
// single-writer path.
//
// Adapted from stringset.Set (a map[string]struct{} used as a membership
// test) extended with a parallel ordered slice, since Set alone gives
// membership but not insertion order.
type Aggregator struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	results []Result
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{seen: make(map[string]struct{})}
}

// Add inserts r if its mode-specific key has not been seen before. It
// returns true iff r was newly inserted (a finding, as opposed to a
// duplicate that was silently discarded).
func (a *Aggregator) Add(r Result) bool {
	key := aggregateKey(r)

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, dup := a.seen[key]; dup {
		return false
	}
	a.seen[key] = struct{}{}
	a.results = append(a.results, r)
	return true
}

// Results returns the ordered, deduplicated findings observed so far.
func (a *Aggregator) Results() []Result {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]Result, len(a.results))
	copy(out, a.results)
	return out
}

// Len reports how many unique findings have been recorded.
func (a *Aggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.results)
}

// aggregateKey computes the mode-specific uniqueness key: dir = (method,
// url, status); dns = domain; vhost = (method, vhost, status); fuzz =
// (method, url, status, body-snippet hash).
func aggregateKey(r Result) string {
	switch r.Mode {
	case ModeDNS:
		return "dns:" + r.Domain
	case ModeVhost:
		return fmt.Sprintf("vhost:%s:%s:%d", r.Method, r.Domain, r.Status)
	case ModeFuzz:
		return fmt.Sprintf("fuzz:%s:%s:%d:%s", r.Method, r.URL, r.Status, bodySnippetHash(r.Body))
	default: // ModeDir
		return fmt.Sprintf("dir:%s:%s:%d", r.Method, r.URL, r.Status)
	}
}

// bodySnippetHash hashes a bounded prefix of the body so two fuzz results
// with wildly different (potentially multi-megabyte) bodies don't inflate
// the aggregator key, while still distinguishing genuinely different
// responses sharing a status code.
func bodySnippetHash(body []byte) string {
	const snippet = 4096
	if len(body) > snippet {
		body = body[:snippet]
	}
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:8])
}
