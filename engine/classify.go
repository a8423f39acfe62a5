package engine

import "bytes"

// ClassifierConfig holds the per-mode filter rules a Result is checked
// against. Fields left at their zero value mean "no override" — the
// per-mode default behavior in Classify applies.
type ClassifierConfig struct {
	IncludeStatus map[int]struct{}
	IgnoreStatus  map[int]struct{}
	IncludeBody   []string
	IgnoreBody    []string
}

// Classify decides whether r is reportable, and if so tags its body-filter
// outcome fields. It never mutates r's HTTP/DNS outcome fields, only the
// MatchedInclude/MatchedIgnore booleans used for display.
func Classify(mode Mode, r *Result, cfg *ClassifierConfig) bool {
	if mode == ModeDNS {
		return r.Resolved
	}

	if !statusReportable(mode, r.Status, cfg) {
		return false
	}

	if mode == ModeVhost || mode == ModeFuzz {
		return bodyReportable(r, cfg)
	}

	return true
}

func statusReportable(mode Mode, status int, cfg *ClassifierConfig) bool {
	if len(cfg.IncludeStatus) > 0 {
		_, ok := cfg.IncludeStatus[status]
		return ok
	}

	if len(cfg.IgnoreStatus) > 0 {
		_, ok := cfg.IgnoreStatus[status]
		return !ok
	}

	// Default behavior, per mode, when neither override is configured.
	switch mode {
	case ModeDir, ModeFuzz:
		return status != 404
	case ModeVhost:
		return true
	default:
		return true
	}
}

func bodyReportable(r *Result, cfg *ClassifierConfig) bool {
	for _, s := range cfg.IgnoreBody {
		if bytes.Contains(r.Body, []byte(s)) {
			r.MatchedIgnore = true
			return false
		}
	}

	for _, s := range cfg.IncludeBody {
		if !bytes.Contains(r.Body, []byte(s)) {
			return false
		}
	}
	if len(cfg.IncludeBody) > 0 {
		r.MatchedInclude = true
	}

	return true
}
