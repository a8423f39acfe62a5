package config

import (
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	"github.com/fathomsec/fathom/engine"
	"github.com/fathomsec/fathom/semaphore"
	"github.com/fathomsec/fathom/wordlist"
)

// DefaultThreads is applied by LoadFileDefaults when neither -threads/-t
// nor an INI file set a positive value.
const DefaultThreads = 10

// Common holds the flags shared across all four subcommands.
type Common struct {
	Threads               int
	Verbosity              int
	NoProgressBar          bool
	NoBanner               bool
	ExitOnConnectionErrors bool
	Output                 string
	ConfigFile             string
}

// DefineCommonFlags registers the shared flags onto fs.
func DefineCommonFlags(fs *flag.FlagSet, c *Common) {
	fs.IntVar(&c.Threads, "threads", 0, "number of concurrent workers (default 10)")
	fs.IntVar(&c.Threads, "t", 0, "number of concurrent workers (shorthand, default 10)")
	fs.BoolFunc("verbose", "increase log verbosity (repeatable)", func(string) error { c.Verbosity++; return nil })
	fs.BoolFunc("v", "increase log verbosity (repeatable, shorthand)", func(string) error { c.Verbosity++; return nil })
	fs.BoolVar(&c.NoProgressBar, "no-progress-bar", false, "disable the in-place progress display")
	fs.BoolVar(&c.NoBanner, "no-banner", false, "suppress the startup banner")
	fs.BoolVar(&c.ExitOnConnectionErrors, "exit-on-connection-errors", false, "abort the run on any transport error, not just the first")
	fs.StringVar(&c.Output, "output", "", "write results to this file (.json, .csv, else a plain table)")
	fs.StringVar(&c.Output, "o", "", "write results to this file (shorthand)")
	fs.StringVar(&c.ConfigFile, "config", "", "path to an optional INI config file")
}

// HTTPCommon holds the HTTP-probe flags shared by dir, vhost, and fuzz.
type HTTPCommon struct {
	URL                 string
	Method              string
	Body                string
	Headers             Repeated
	UserAgent           string
	InsecureCert        bool
	IncludeStatusCodes  IntCSV
	IgnoreStatusCodes   IntCSV
}

// DefineHTTPFlags registers the HTTP-probe flags onto fs.
func DefineHTTPFlags(fs *flag.FlagSet, h *HTTPCommon) {
	fs.StringVar(&h.URL, "url", "", "target base URL")
	fs.StringVar(&h.URL, "u", "", "target base URL (shorthand)")
	fs.StringVar(&h.Method, "method", "GET", "HTTP method")
	fs.StringVar(&h.Method, "X", "GET", "HTTP method (shorthand)")
	fs.StringVar(&h.Body, "body", "", "request body")
	fs.StringVar(&h.Body, "b", "", "request body (shorthand)")
	fs.Var(&h.Headers, "header", "request header \"Name: Value\" (repeatable)")
	fs.Var(&h.Headers, "H", "request header \"Name: Value\" (repeatable, shorthand)")
	fs.StringVar(&h.UserAgent, "user-agent", "", "User-Agent header override")
	fs.StringVar(&h.UserAgent, "a", "", "User-Agent header override (shorthand)")
	fs.BoolVar(&h.InsecureCert, "ignore-certificate", false, "skip TLS certificate verification")
	fs.BoolVar(&h.InsecureCert, "k", false, "skip TLS certificate verification (shorthand)")
	fs.Var(&h.IncludeStatusCodes, "include-status-codes", "CSV of status codes to report exclusively")
	fs.Var(&h.IncludeStatusCodes, "s", "CSV of status codes to report exclusively (shorthand)")
	fs.Var(&h.IgnoreStatusCodes, "ignore-status-codes", "CSV of status codes to never report")
	fs.Var(&h.IgnoreStatusCodes, "S", "CSV of status codes to never report (shorthand)")
}

// BodyFilter holds the vhost/fuzz body-filter flags.
type BodyFilter struct {
	IncludeString Repeated
	IgnoreString  Repeated
}

// DefineBodyFilterFlags registers the body-filter flags onto fs.
func DefineBodyFilterFlags(fs *flag.FlagSet, b *BodyFilter) {
	fs.Var(&b.IncludeString, "include-string", "only report bodies containing this substring (repeatable)")
	fs.Var(&b.IgnoreString, "ignore-string", "never report bodies containing this substring (repeatable)")
	fs.Var(&b.IgnoreString, "x", "never report bodies containing this substring (repeatable, shorthand)")
}

func validateURL(raw string) error {
	if raw == "" {
		return engine.NewConfigError("--url is required")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		return engine.NewConfigError(fmt.Sprintf("invalid --url %q: %v", raw, err))
	}
	return nil
}

func classifierFrom(h HTTPCommon, b BodyFilter) *engine.ClassifierConfig {
	return &engine.ClassifierConfig{
		IncludeStatus: intSetOf(h.IncludeStatusCodes),
		IgnoreStatus:  intSetOf(h.IgnoreStatusCodes),
		IncludeBody:   dedupeExact(b.IncludeString),
		IgnoreBody:    dedupeExact(b.IgnoreString),
	}
}

func clientFor(h HTTPCommon) (*engine.ClientConfig, error) {
	headers, err := parseHeaders(h.Headers)
	if err != nil {
		return nil, engine.NewConfigError(err.Error())
	}
	return &engine.ClientConfig{
		InsecureSkipVerify: h.InsecureCert,
		UserAgent:          h.UserAgent,
		DefaultHeaders:     headers,
	}, nil
}

// DirArgs holds the dir-mode-specific flags.
type DirArgs struct {
	HTTP        HTTPCommon
	Wordlist    string
	Extensions  CSV
	AppendSlash bool
}

// DefineDirFlags registers dir-mode flags onto fs.
func DefineDirFlags(fs *flag.FlagSet, a *DirArgs) {
	DefineHTTPFlags(fs, &a.HTTP)
	fs.StringVar(&a.Wordlist, "wordlist", "", "path to the wordlist")
	fs.StringVar(&a.Wordlist, "w", "", "path to the wordlist (shorthand)")
	fs.Var(&a.Extensions, "extensions", "CSV of extensions to append to each word")
	fs.Var(&a.Extensions, "e", "CSV of extensions to append to each word (shorthand)")
	fs.BoolVar(&a.AppendSlash, "append-slash", false, "also probe each candidate with a trailing slash")
	fs.BoolVar(&a.AppendSlash, "f", false, "also probe each candidate with a trailing slash (shorthand)")
}

// BuildDir validates a and returns the probe set, HTTP client config, and
// classifier ready for the driver.
func BuildDir(a DirArgs) ([]engine.Probe, *engine.ClientConfig, *engine.ClassifierConfig, error) {
	if err := validateURL(a.HTTP.URL); err != nil {
		return nil, nil, nil, err
	}
	if a.Wordlist == "" {
		return nil, nil, nil, engine.NewConfigError("--wordlist is required")
	}
	words, err := wordlist.Load(a.Wordlist)
	if err != nil {
		return nil, nil, nil, engine.NewConfigError(err.Error())
	}
	headers, err := parseHeaders(a.HTTP.Headers)
	if err != nil {
		return nil, nil, nil, engine.NewConfigError(err.Error())
	}
	client, err := clientFor(a.HTTP)
	if err != nil {
		return nil, nil, nil, err
	}

	probes := engine.GenerateDir(engine.DirConfig{
		BaseURL:     a.HTTP.URL,
		Method:      a.HTTP.Method,
		Body:        a.HTTP.Body,
		Headers:     headers,
		Words:       words,
		Extensions:  a.Extensions,
		AppendSlash: a.AppendSlash,
	})
	return probes, client, classifierFrom(a.HTTP, BodyFilter{}), nil
}

// DNSArgs holds the dns-mode-specific flags.
type DNSArgs struct {
	Domain   string
	Wordlist string
	Resolver string
}

// DefineDNSFlags registers dns-mode flags onto fs.
func DefineDNSFlags(fs *flag.FlagSet, a *DNSArgs) {
	fs.StringVar(&a.Domain, "domain", "", "base domain")
	fs.StringVar(&a.Domain, "d", "", "base domain (shorthand)")
	fs.StringVar(&a.Wordlist, "wordlist", "", "path to the wordlist")
	fs.StringVar(&a.Wordlist, "w", "", "path to the wordlist (shorthand)")
	fs.StringVar(&a.Resolver, "resolver", "", "resolver address (host:port), default 8.8.8.8:53")
}

// BuildDNS validates a and returns the probe set ready for the driver.
func BuildDNS(a DNSArgs) ([]engine.Probe, error) {
	if a.Domain == "" {
		return nil, engine.NewConfigError("--domain is required")
	}
	if a.Wordlist == "" {
		return nil, engine.NewConfigError("--wordlist is required")
	}
	words, err := wordlist.Load(a.Wordlist)
	if err != nil {
		return nil, engine.NewConfigError(err.Error())
	}
	return engine.GenerateDNS(engine.DNSConfig{Domain: a.Domain, Words: words}), nil
}

// VhostArgs holds the vhost-mode-specific flags.
type VhostArgs struct {
	HTTP       HTTPCommon
	BodyFilter BodyFilter
	Domain     string
	Wordlist   string
}

// DefineVhostFlags registers vhost-mode flags onto fs.
func DefineVhostFlags(fs *flag.FlagSet, a *VhostArgs) {
	DefineHTTPFlags(fs, &a.HTTP)
	DefineBodyFilterFlags(fs, &a.BodyFilter)
	fs.StringVar(&a.Domain, "domain", "", "base domain to prepend candidate subdomains to")
	fs.StringVar(&a.Domain, "d", "", "base domain (shorthand)")
	fs.StringVar(&a.Wordlist, "wordlist", "", "path to the wordlist")
	fs.StringVar(&a.Wordlist, "w", "", "path to the wordlist (shorthand)")
}

// BuildVhost validates a and returns the probe set, HTTP client config, and
// classifier ready for the driver.
func BuildVhost(a VhostArgs) ([]engine.Probe, *engine.ClientConfig, *engine.ClassifierConfig, error) {
	if err := validateURL(a.HTTP.URL); err != nil {
		return nil, nil, nil, err
	}
	if a.Domain == "" {
		return nil, nil, nil, engine.NewConfigError("--domain is required")
	}
	if a.Wordlist == "" {
		return nil, nil, nil, engine.NewConfigError("--wordlist is required")
	}
	if len(a.BodyFilter.IgnoreString) == 0 {
		return nil, nil, nil, engine.ErrVhostRequiresIgnoreString
	}
	words, err := wordlist.Load(a.Wordlist)
	if err != nil {
		return nil, nil, nil, engine.NewConfigError(err.Error())
	}
	headers, err := parseHeaders(a.HTTP.Headers)
	if err != nil {
		return nil, nil, nil, engine.NewConfigError(err.Error())
	}
	client, err := clientFor(a.HTTP)
	if err != nil {
		return nil, nil, nil, err
	}

	probes := engine.GenerateVhost(engine.VhostConfig{
		URL:     a.HTTP.URL,
		Domain:  a.Domain,
		Method:  a.HTTP.Method,
		Headers: headers,
		Words:   words,
	})
	return probes, client, classifierFrom(a.HTTP, a.BodyFilter), nil
}

// FuzzArgs holds the fuzz-mode-specific flags.
type FuzzArgs struct {
	HTTP       HTTPCommon
	BodyFilter BodyFilter
	Wordlists  Repeated
	CSRFUrl    string
	CSRFRegex  string
	CSRFHeader Repeated
}

// DefineFuzzFlags registers fuzz-mode flags onto fs.
func DefineFuzzFlags(fs *flag.FlagSet, a *FuzzArgs) {
	DefineHTTPFlags(fs, &a.HTTP)
	DefineBodyFilterFlags(fs, &a.BodyFilter)
	fs.Var(&a.Wordlists, "wordlist", "path to a wordlist, one per FUZZ field (repeatable)")
	fs.Var(&a.Wordlists, "w", "path to a wordlist, one per FUZZ field (repeatable, shorthand)")
	fs.StringVar(&a.CSRFUrl, "csrf-url", "", "URL to GET for a fresh CSRF token")
	fs.StringVar(&a.CSRFRegex, "csrf-regex", "", "regex with exactly one capturing group extracting the token")
	fs.Var(&a.CSRFHeader, "csrf-header", "header to send on the CSRF refresh request (repeatable)")
}

// BuildFuzz validates a and returns the probe set, the single shared HTTP
// client (used for both probe dispatch and CSRF refresh — one client, one
// connection pool), classifier, and (if configured) a CSRFRefresher ready
// for the driver. threads sizes the CSRF-refresh semaphore so a large
// worker pool cannot hammer the refresh endpoint harder than the target
// itself.
func BuildFuzz(a FuzzArgs, threads int) ([]engine.Probe, *http.Client, *engine.ClassifierConfig, engine.CSRFRefresher, error) {
	if err := validateURL(a.HTTP.URL); err != nil {
		return nil, nil, nil, nil, err
	}
	if len(a.Wordlists) == 0 {
		return nil, nil, nil, nil, engine.NewConfigError("at least one --wordlist is required")
	}
	if (a.CSRFUrl == "") != (a.CSRFRegex == "") {
		return nil, nil, nil, nil, engine.NewConfigError("--csrf-url and --csrf-regex must be specified together")
	}

	wordlists, err := wordlist.LoadAll(a.Wordlists)
	if err != nil {
		return nil, nil, nil, nil, engine.NewConfigError(err.Error())
	}
	headers, err := parseHeaders(a.HTTP.Headers)
	if err != nil {
		return nil, nil, nil, nil, engine.NewConfigError(err.Error())
	}
	clientCfg, err := clientFor(a.HTTP)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	client := engine.NewClient(*clientCfg)

	probes, err := engine.GenerateFuzz(engine.FuzzConfig{
		URL:       a.HTTP.URL,
		Method:    a.HTTP.Method,
		Body:      a.HTTP.Body,
		Headers:   headers,
		Wordlists: wordlists,
		HasCSRF:   a.CSRFUrl != "",
	})
	if err != nil {
		return nil, nil, nil, nil, err
	}

	var refresher engine.CSRFRefresher
	if a.CSRFUrl != "" {
		re, err := regexp.Compile(a.CSRFRegex)
		if err != nil {
			return nil, nil, nil, nil, engine.NewConfigError(fmt.Sprintf("invalid --csrf-regex: %v", err))
		}
		if re.NumSubexp() != 1 {
			return nil, nil, nil, nil, engine.NewConfigError("--csrf-regex must have exactly one capturing group")
		}
		csrfHeaders, err := parseHeaders(a.CSRFHeader)
		if err != nil {
			return nil, nil, nil, nil, engine.NewConfigError(err.Error())
		}
		capacity := threads
		if capacity <= 0 || capacity > 4 {
			capacity = 4
		}
		sem := semaphore.New(capacity)
		refresher = engine.NewCSRFRefresher(client, a.CSRFUrl, csrfHeaders, re, sem)
	}

	return probes, client, classifierFrom(a.HTTP, a.BodyFilter), refresher, nil
}
