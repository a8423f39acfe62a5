package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fathomsec/fathom/engine"
)

// NewFileSink picks a serialization format from path's extension —
// ".json" for JSON Lines, ".csv" for CSV, anything else for a plain
// aligned table — and returns a ResultsSink that writes every field of
// engine.Result to it except the raw response Body and ErrKind. One
// format, consistent for the whole run.
func NewFileSink(path string) engine.ResultsSink {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return &jsonSink{path: path}
	case ".csv":
		return &csvSink{path: path}
	default:
		return &tableSink{path: path}
	}
}

// jsonRecord is the on-disk shape of one ProbeResult field set, flattened
// for serialization.
type jsonRecord struct {
	Mode           string   `json:"mode"`
	Method         string   `json:"method,omitempty"`
	URL            string   `json:"url,omitempty"`
	Domain         string   `json:"domain,omitempty"`
	Headers        string   `json:"headers,omitempty"`
	Status         int      `json:"status,omitempty"`
	Location       string   `json:"location,omitempty"`
	Resolved       bool     `json:"resolved,omitempty"`
	Addresses      []string `json:"addresses,omitempty"`
	MatchedInclude bool     `json:"matched_include,omitempty"`
	MatchedIgnore  bool     `json:"matched_ignore,omitempty"`
	Error          string   `json:"error,omitempty"`
}

func toRecord(r engine.Result) jsonRecord {
	rec := jsonRecord{
		Mode:           string(r.Mode),
		Method:         r.Method,
		URL:            r.URL,
		Domain:         r.Domain,
		Headers:        formatHeaders(r.Headers),
		Status:         r.Status,
		Location:       r.Location,
		Resolved:       r.Resolved,
		MatchedInclude: r.MatchedInclude,
		MatchedIgnore:  r.MatchedIgnore,
	}
	for _, a := range r.Addresses {
		rec.Addresses = append(rec.Addresses, fmt.Sprintf("%s(%s)", a.IP, a.Family))
	}
	if r.Err != nil {
		rec.Error = r.Err.Error()
	}
	return rec
}

// formatHeaders renders the effective header subset used with the probe
// as "Name: Value" pairs joined by "; ", sorted for a stable rendering
// across runs.
func formatHeaders(headers map[string]string) string {
	if len(headers) == 0 {
		return ""
	}
	names := make([]string, 0, len(headers))
	for k := range headers {
		names = append(names, k)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, k := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", k, headers[k]))
	}
	return strings.Join(parts, "; ")
}

type jsonSink struct{ path string }

func (s *jsonSink) Write(results []engine.Result) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("opening output file %s: %w", s.path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, r := range results {
		if err := enc.Encode(toRecord(r)); err != nil {
			return fmt.Errorf("writing JSON result: %w", err)
		}
	}
	return nil
}

type csvSink struct{ path string }

func (s *csvSink) Write(results []engine.Result) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("opening output file %s: %w", s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"mode", "method", "url", "domain", "headers", "status", "location", "resolved", "addresses", "matched_include", "matched_ignore", "error"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		rec := toRecord(r)
		row := []string{
			rec.Mode, rec.Method, rec.URL, rec.Domain, rec.Headers,
			strconv.Itoa(rec.Status), rec.Location,
			strconv.FormatBool(rec.Resolved), strings.Join(rec.Addresses, ";"),
			strconv.FormatBool(rec.MatchedInclude), strconv.FormatBool(rec.MatchedIgnore),
			rec.Error,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing CSV result: %w", err)
		}
	}
	return nil
}

type tableSink struct{ path string }

func (s *tableSink) Write(results []engine.Result) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("opening output file %s: %w", s.path, err)
	}
	defer f.Close()

	tw := tabwriter.NewWriter(f, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MODE\tMETHOD\tTARGET\tHEADERS\tSTATUS\tLOCATION\tADDRESSES\tERROR")
	for _, r := range results {
		rec := toRecord(r)
		target := rec.URL
		if target == "" {
			target = rec.Domain
		}
		status := ""
		if rec.Status != 0 {
			status = strconv.Itoa(rec.Status)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.Mode, rec.Method, target, rec.Headers, status, rec.Location, strings.Join(rec.Addresses, ";"), rec.Error)
	}
	return tw.Flush()
}
