package semaphore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiterBoundsConcurrency(t *testing.T) {
	lim := New(2)

	lim.Acquire()
	lim.Acquire()

	acquired := make(chan struct{})
	go func() {
		lim.Acquire()
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("acquired a third slot past the cap of 2")
	case <-time.After(50 * time.Millisecond):
	}

	lim.Release()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("third Acquire did not unblock after a Release")
	}

	lim.Release()
}

func TestNewTreatsNonPositiveMaxAsOne(t *testing.T) {
	lim := New(0)
	assert.Equal(t, 1, cap(lim.c))
}
