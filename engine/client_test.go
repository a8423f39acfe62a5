package engine

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClientAppliesDefaultUserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{})
	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	resp, err := client.Do(req)
	assert.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, DefaultUserAgent, got)
}

func TestNewClientAppliesConfiguredUserAgentAndDefaultHeaders(t *testing.T) {
	var ua, custom string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		custom = r.Header.Get("X-Scan-Id")
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		UserAgent:      "fathom-test/1.0",
		DefaultHeaders: map[string]string{"X-Scan-Id": "abc123"},
	})
	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	resp, err := client.Do(req)
	assert.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "fathom-test/1.0", ua)
	assert.Equal(t, "abc123", custom)
}

func TestNewClientDoesNotOverrideExplicitHeaders(t *testing.T) {
	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{UserAgent: "fathom-test/1.0"})
	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	req.Header.Set("User-Agent", "caller-set/9.9")
	resp, err := client.Do(req)
	assert.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "caller-set/9.9", ua)
}
