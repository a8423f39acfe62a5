// Package bus schedules the two kinds of output a running scan produces —
// discovered findings and periodic throughput updates — so that a slow
// terminal write can never stall a worker reporting a result. Findings
// always drain ahead of progress updates, and a backlog of progress
// updates collapses to the most recent one rather than queuing.
package bus

// Bus decouples publishing a line from rendering it. report.TerminalSink
// is its only subscriber: lines is the discovered-finding stream, rate is
// the requests/second gauge.
type Bus struct {
	lines chan string
	rates chan float64
	done  chan struct{}
}

// NewBus starts a Bus that calls onLine for every published finding line
// and onRate for every published throughput sample, from a single internal
// goroutine so neither callback needs its own locking.
func NewBus(onLine func(string), onRate func(float64)) *Bus {
	b := &Bus{
		lines: make(chan string, 64),
		rates: make(chan float64, 1),
		done:  make(chan struct{}),
	}
	go b.run(onLine, onRate)
	return b
}

// PublishLine enqueues a finding line. Never blocks on a stopped Bus.
func (b *Bus) PublishLine(line string) {
	select {
	case b.lines <- line:
	case <-b.done:
	}
}

// PublishRate records the latest throughput sample, replacing any sample
// still waiting to be rendered — a progress gauge only ever needs to show
// the most recent value.
func (b *Bus) PublishRate(rate float64) {
	select {
	case b.rates <- rate:
		return
	default:
	}
	select {
	case <-b.rates:
	default:
	}
	select {
	case b.rates <- rate:
	default:
	}
}

// Stop halts the dispatch goroutine. Publishing after Stop is a no-op.
func (b *Bus) Stop() {
	close(b.done)
}

func (b *Bus) run(onLine func(string), onRate func(float64)) {
	for {
		// Findings always drain ahead of progress updates.
		select {
		case line := <-b.lines:
			onLine(line)
			continue
		default:
		}

		select {
		case line := <-b.lines:
			onLine(line)
		case rate := <-b.rates:
			onRate(rate)
		case <-b.done:
			return
		}
	}
}
