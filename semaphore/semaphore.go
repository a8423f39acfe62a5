// Package semaphore bounds how many goroutines may hold a resource at
// once. fathom uses exactly one: capping concurrent CSRF token refreshes
// to a fraction of --threads so a large worker pool cannot hammer a
// refresh endpoint harder than the target itself is being probed.
package semaphore

// Limiter is a counting semaphore: Acquire blocks until a slot is free,
// Release gives one back.
type Limiter struct {
	c chan struct{}
}

// New returns a Limiter allowing up to max concurrent holders. max <= 0
// is treated as 1, since a limiter of zero capacity would deadlock every
// caller.
func New(max int) *Limiter {
	if max <= 0 {
		max = 1
	}
	return &Limiter{c: make(chan struct{}, max)}
}

// Acquire blocks until a slot is available.
func (l *Limiter) Acquire() {
	l.c <- struct{}{}
}

// Release returns a slot to the pool.
func (l *Limiter) Release() {
	<-l.c
}
