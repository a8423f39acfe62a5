// Package engine implements the mode-agnostic enumeration pipeline: probe
// generation, dispatch, classification, and aggregation shared by the dir,
// dns, vhost, and fuzz subcommands.
package engine

// Mode identifies which of the four enumeration modes a Probe or Result
// belongs to.
type Mode string

// The four enumeration modes sharing this engine.
const (
	ModeDir   Mode = "dir"
	ModeDNS   Mode = "dns"
	ModeVhost Mode = "vhost"
	ModeFuzz  Mode = "fuzz"
)

// Probe is one fully-resolved attempt unit. Every field needed to dispatch
// the request is populated before the probe reaches a worker; the only
// exception is the CSRFCSRF placeholder in a FuzzProbe, which the CSRF
// refresher substitutes immediately before the request is sent.
type Probe struct {
	Mode Mode

	// HTTP-mode fields (dir, vhost, fuzz).
	URL     string
	Method  string
	Body    string
	Headers map[string]string

	// Host is set only for vhost probes: the dispatch URL (URL above) is
	// left unchanged and this Host header value carries the candidate.
	Host string

	// DNS-mode field: the fully-qualified candidate domain, trailing dot
	// included.
	Domain string

	// NeedsCSRF is true for a fuzz probe whose template contained the
	// CSRFCSRF placeholder; the worker must refresh before dispatch.
	NeedsCSRF bool
}
