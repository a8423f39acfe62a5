package engine

import (
	"fmt"
	"strings"

	"golang.org/x/net/idna"
)

// FUZZ is the literal sentinel substituted from the i-th wordlist in fuzz
// mode. CSRFCSRF is replaced per-probe, at dispatch time, by the CSRF
// refresher — never by the Target Generator.
const (
	fuzzSentinel = "FUZZ"
	csrfSentinel = "CSRFCSRF"
)

func normalizeDomain(d string) string {
	d = strings.TrimSuffix(strings.TrimSpace(d), ".")
	if ascii, err := idna.Lookup.ToASCII(d); err == nil {
		return ascii
	}
	return d
}

// DirConfig parameterizes the dir Target Generator.
type DirConfig struct {
	BaseURL     string
	Method      string
	Body        string
	Headers     map[string]string
	Words       []string
	Extensions  []string
	AppendSlash bool
}

// GenerateDir produces the dir mode probe sequence in the exact order
// specified: for each word, the bare path, then the path with each
// extension, then (if AppendSlash) the bare path with a trailing slash and
// each extension with a trailing slash.
func GenerateDir(cfg DirConfig) []Probe {
	base := strings.TrimSuffix(cfg.BaseURL, "/") + "/"
	method := cfg.Method
	if method == "" {
		method = "GET"
	}

	var probes []Probe
	emit := func(suffix string) {
		probes = append(probes, Probe{
			Mode:    ModeDir,
			URL:     base + suffix,
			Method:  method,
			Body:    cfg.Body,
			Headers: cfg.Headers,
		})
	}

	for _, w := range cfg.Words {
		emit(w)
		for _, e := range cfg.Extensions {
			emit(w + "." + e)
		}
		if cfg.AppendSlash {
			emit(w + "/")
			for _, e := range cfg.Extensions {
				emit(w + "." + e + "/")
			}
		}
	}

	return probes
}

// DNSConfig parameterizes the dns Target Generator.
type DNSConfig struct {
	Domain string
	Words  []string
}

// GenerateDNS emits one absolute FQDN candidate (trailing dot) per word.
func GenerateDNS(cfg DNSConfig) []Probe {
	domain := normalizeDomain(cfg.Domain)

	probes := make([]Probe, len(cfg.Words))
	for i, w := range cfg.Words {
		probes[i] = Probe{
			Mode:   ModeDNS,
			Domain: w + "." + domain + ".",
		}
	}
	return probes
}

// VhostConfig parameterizes the vhost Target Generator.
type VhostConfig struct {
	URL     string
	Domain  string
	Method  string
	Headers map[string]string
	Words   []string
}

// GenerateVhost emits one probe per word; the dispatch URL is unchanged,
// only the candidate Host header value varies.
func GenerateVhost(cfg VhostConfig) []Probe {
	domain := normalizeDomain(cfg.Domain)
	method := cfg.Method
	if method == "" {
		method = "GET"
	}

	probes := make([]Probe, len(cfg.Words))
	for i, w := range cfg.Words {
		probes[i] = Probe{
			Mode:    ModeVhost,
			URL:     cfg.URL,
			Host:    w + "." + domain,
			Method:  method,
			Headers: cfg.Headers,
		}
	}
	return probes
}

// FuzzConfig parameterizes the fuzz Target Generator.
type FuzzConfig struct {
	URL       string
	Method    string
	Body      string
	Headers   map[string]string
	Wordlists [][]string
	HasCSRF   bool
}

// GenerateFuzz validates that the number of FUZZ occurrences across the
// template (scanned URL, method, body, then headers in key order) equals
// the number of wordlists, then emits the Cartesian product of the
// wordlists in lexicographic-by-wordlist-index order. The i-th occurrence
// of FUZZ is substituted from the i-th wordlist.
func GenerateFuzz(cfg FuzzConfig) ([]Probe, error) {
	method := cfg.Method
	if method == "" {
		method = "GET"
	}

	count := strings.Count(cfg.URL, fuzzSentinel) +
		strings.Count(method, fuzzSentinel) +
		strings.Count(cfg.Body, fuzzSentinel)
	headerKeys := sortedHeaderKeys(cfg.Headers)
	for _, k := range headerKeys {
		count += strings.Count(cfg.Headers[k], fuzzSentinel)
	}

	if count != len(cfg.Wordlists) {
		return nil, fmt.Errorf("%w: template has %d FUZZ occurrences, %d wordlist(s) supplied",
			ErrFuzzPlaceholderCount, count, len(cfg.Wordlists))
	}

	var probes []Probe
	combos := cartesian(cfg.Wordlists)
	for _, tuple := range combos {
		idx := 0
		url := substituteNth(cfg.URL, fuzzSentinel, tuple, &idx)
		m := substituteNth(method, fuzzSentinel, tuple, &idx)
		body := substituteNth(cfg.Body, fuzzSentinel, tuple, &idx)

		headers := make(map[string]string, len(cfg.Headers))
		for _, k := range headerKeys {
			headers[k] = substituteNth(cfg.Headers[k], fuzzSentinel, tuple, &idx)
		}

		probes = append(probes, Probe{
			Mode:      ModeFuzz,
			URL:       url,
			Method:    m,
			Body:      body,
			Headers:   headers,
			NeedsCSRF: cfg.HasCSRF && strings.Contains(url+m+body+joinValues(headers), csrfSentinel),
		})
	}

	return probes, nil
}

func joinValues(m map[string]string) string {
	var b strings.Builder
	for _, v := range m {
		b.WriteString(v)
	}
	return b.String()
}

func sortedHeaderKeys(h map[string]string) []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	// Deterministic, stable order independent of map iteration, so identical
	// inputs yield byte-identical probe sequences across runs.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

// substituteNth replaces each occurrence of sentinel in s with the word
// drawn from the matching position of tuple, advancing *idx once per
// replacement so a sentinel occurring in multiple fields still draws from
// consecutive wordlist indices in field-scan order.
func substituteNth(s, sentinel string, tuple []string, idx *int) string {
	for strings.Contains(s, sentinel) {
		s = strings.Replace(s, sentinel, tuple[*idx], 1)
		*idx++
	}
	return s
}

// cartesian returns the Cartesian product of the input slices, in
// lexicographic-by-slice-index order (the last slice varies fastest).
func cartesian(lists [][]string) [][]string {
	if len(lists) == 0 {
		return nil
	}

	result := [][]string{{}}
	for _, list := range lists {
		var next [][]string
		for _, prefix := range result {
			for _, word := range list {
				tuple := make([]string, len(prefix), len(prefix)+1)
				copy(tuple, prefix)
				next = append(next, append(tuple, word))
			}
		}
		result = next
	}
	return result
}
