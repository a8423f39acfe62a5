package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregatorDeduplicatesByModeKey(t *testing.T) {
	agg := NewAggregator()

	assert.True(t, agg.Add(Result{Mode: ModeDir, Method: "GET", URL: "http://x/a", Status: 200}))
	assert.False(t, agg.Add(Result{Mode: ModeDir, Method: "GET", URL: "http://x/a", Status: 200}))
	assert.True(t, agg.Add(Result{Mode: ModeDir, Method: "GET", URL: "http://x/b", Status: 200}))

	assert.Equal(t, 2, agg.Len())
}

func TestAggregatorPreservesInsertionOrder(t *testing.T) {
	agg := NewAggregator()
	agg.Add(Result{Mode: ModeDNS, Domain: "b.example.com."})
	agg.Add(Result{Mode: ModeDNS, Domain: "a.example.com."})
	agg.Add(Result{Mode: ModeDNS, Domain: "c.example.com."})

	results := agg.Results()
	assert.Equal(t, []string{"b.example.com.", "a.example.com.", "c.example.com."}, []string{
		results[0].Domain, results[1].Domain, results[2].Domain,
	})
}

func TestAggregatorFuzzKeyIncludesBodyHash(t *testing.T) {
	agg := NewAggregator()
	base := Result{Mode: ModeFuzz, Method: "GET", URL: "http://x/FUZZ", Status: 200}

	a := base
	a.Body = []byte("one")
	b := base
	b.Body = []byte("two")

	assert.True(t, agg.Add(a))
	assert.True(t, agg.Add(b))
	assert.Equal(t, 2, agg.Len())
}

func TestAggregatorVhostKeyIgnoresURL(t *testing.T) {
	agg := NewAggregator()
	first := Result{Mode: ModeVhost, Method: "GET", Domain: "dev.example.com", Status: 200, URL: "http://10.0.0.1/"}
	second := first
	second.URL = "http://10.0.0.2/"

	assert.True(t, agg.Add(first))
	assert.False(t, agg.Add(second))
}
