// Package report implements the two external-collaborator surfaces the
// engine calls through an interface and never owns directly: progress
// rendering and result serialization. Concrete implementations live here;
// the engine only knows engine.ProgressSink / engine.ResultsSink.
package report

import "github.com/fathomsec/fathom/engine"

// NoopProgress discards every notification. Used for headless runs
// (--no-progress-bar) and in tests that don't want terminal noise.
type NoopProgress struct{}

func (NoopProgress) Start(int)             {}
func (NoopProgress) Increment(float64)      {}
func (NoopProgress) Finding(engine.Result)  {}
func (NoopProgress) Stop()                  {}

// NoopResults discards the final result set. Used when --output was not
// given.
type NoopResults struct{}

func (NoopResults) Write([]engine.Result) error { return nil }
