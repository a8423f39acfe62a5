package report

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/fathomsec/fathom/bus"
	"github.com/fathomsec/fathom/engine"
)

var (
	green  = color.New(color.FgHiGreen).SprintFunc()
	cyan   = color.New(color.FgHiCyan).SprintFunc()
	yellow = color.New(color.FgHiYellow).SprintFunc()
	red    = color.New(color.FgHiRed).SprintFunc()
	magenta = color.New(color.FgHiMagenta).SprintFunc()
)

// TerminalSink is the default ProgressSink: an in-place "HH:MM:SS R req/s"
// line plus interleaved finding lines that don't disturb it. The in-place
// line does not show the received count or the total.
//
// Adapted from the color-variable style of the original print routines and
// the bus package, used so a slow terminal write never blocks a worker
// publishing a Finding.
type TerminalSink struct {
	total       int
	mu          sync.Mutex
	lastLine    string
	interactive bool
	b           *bus.Bus
}

// NewTerminalSink builds a TerminalSink. disabled forces the headless
// (newline-per-update, no in-place redraw) mode regardless of TTY
// detection. The CLI passes false; --no-progress-bar selects
// NoopProgress instead of a TerminalSink.
func NewTerminalSink(disabled bool) *TerminalSink {
	t := &TerminalSink{
		interactive: !disabled && term.IsTerminal(int(os.Stdout.Fd())),
	}
	t.b = bus.NewBus(t.printLine, t.printProgress)
	return t
}

func (t *TerminalSink) Start(total int) {
	t.total = total
}

func (t *TerminalSink) Increment(rate float64) {
	t.b.PublishRate(rate)
}

func (t *TerminalSink) Finding(r engine.Result) {
	t.b.PublishLine(formatFinding(r))
}

func (t *TerminalSink) Stop() {
	if t.interactive {
		fmt.Println()
	}
	t.b.Stop()
}

func (t *TerminalSink) printLine(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.interactive {
		fmt.Printf("\r\033[K%s\n%s", line, t.lastLine)
	} else {
		fmt.Println(line)
	}
}

func (t *TerminalSink) printProgress(rate float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.interactive {
		return
	}
	t.lastLine = fmt.Sprintf("\r\033[K%s %.1f req/s", cyan(time.Now().Format("15:04:05")), rate)
	fmt.Print(t.lastLine)
}

// formatFinding renders one finding line, colored by status-code class for
// HTTP modes and padded with the alignment-tab rule observed in the
// original tool: a status-code string of length [0,8) gets 4 tabs, [8,16)
// gets 3, [16,24) gets 2, [24,32) gets 1 — a crude fixed-width column
// emulation that predates a real table renderer.
func formatFinding(r engine.Result) string {
	switch r.Mode {
	case engine.ModeDNS:
		return formatDNSFinding(r)
	case engine.ModeDir, engine.ModeFuzz:
		return formatHTTPFinding(r, r.URL)
	case engine.ModeVhost:
		return formatHTTPFinding(r, r.Domain)
	default:
		return ""
	}
}

func formatDNSFinding(r engine.Result) string {
	var addrs []string
	for _, a := range r.Addresses {
		addrs = append(addrs, fmt.Sprintf("%s(%s)", a.IP, a.Family))
	}
	return fmt.Sprintf("%s %s", green(strings.TrimSuffix(r.Domain, ".")), yellow(strings.Join(addrs, ", ")))
}

func formatHTTPFinding(r engine.Result, target string) string {
	status := strconv.Itoa(r.Status)
	line := fmt.Sprintf("%s%s %s %s", statusColor(r.Status)(status), alignmentTabs(status), r.Method, target)
	if r.Location != "" {
		line += " -> " + r.Location
	}
	if h := formatHeaders(r.Headers); h != "" {
		line += " [" + h + "]"
	}
	return line
}

func statusColor(status int) func(a ...interface{}) string {
	switch {
	case status >= 200 && status < 300:
		return green
	case status >= 300 && status < 400:
		return cyan
	case status >= 400 && status < 500:
		return yellow
	case status >= 500:
		return red
	default:
		return magenta
	}
}

// alignmentTabs returns the fixed-width padding for a status-code string.
func alignmentTabs(statusText string) string {
	n := len(statusText)
	switch {
	case n < 8:
		return "\t\t\t\t"
	case n < 16:
		return "\t\t\t"
	case n < 24:
		return "\t\t"
	case n < 32:
		return "\t"
	default:
		return ""
	}
}
