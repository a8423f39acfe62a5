package engine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPoolDispatchHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/admin" {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ok"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	pool := &Pool{Threads: 2, Client: NewClient(ClientConfig{Timeout: 2 * time.Second})}
	probes := make(chan Probe, 2)
	probes <- Probe{Mode: ModeDir, Method: "GET", URL: srv.URL + "/admin"}
	probes <- Probe{Mode: ModeDir, Method: "GET", URL: srv.URL + "/missing"}
	close(probes)

	results := pool.Run(context.Background(), probes)

	var got []Result
	for r := range results {
		got = append(got, r)
	}

	assert.Len(t, got, 2)
	for _, r := range got {
		assert.NoError(t, r.Err)
	}
}

func TestPoolDispatchHTTPVhostSetsHost(t *testing.T) {
	var gotHost string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHost = r.Host
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	pool := &Pool{Threads: 1, Client: NewClient(ClientConfig{Timeout: 2 * time.Second})}
	probes := make(chan Probe, 1)
	probes <- Probe{Mode: ModeVhost, Method: "GET", URL: srv.URL, Host: "dev.example.com"}
	close(probes)

	for range pool.Run(context.Background(), probes) {
	}

	assert.Equal(t, "dev.example.com", gotHost)
}

func TestPoolDispatchHTTPTransportError(t *testing.T) {
	pool := &Pool{Threads: 1, Client: NewClient(ClientConfig{Timeout: 200 * time.Millisecond})}
	probes := make(chan Probe, 1)
	probes <- Probe{Mode: ModeDir, Method: "GET", URL: "http://127.0.0.1:1"}
	close(probes)

	var got Result
	for r := range pool.Run(context.Background(), probes) {
		got = r
	}

	assert.Error(t, got.Err)
	assert.Equal(t, ErrTransport, got.ErrKind)
}

func TestPoolDispatchDNS(t *testing.T) {
	resolve := func(ctx context.Context, fqdn string) ([]Address, bool, error) {
		if fqdn == "found.example.com." {
			return []Address{{IP: "1.2.3.4", Family: "IPv4"}}, true, nil
		}
		return nil, false, nil
	}

	pool := &Pool{Threads: 1, Resolve: resolve}
	probes := make(chan Probe, 2)
	probes <- Probe{Mode: ModeDNS, Domain: "found.example.com."}
	probes <- Probe{Mode: ModeDNS, Domain: "missing.example.com."}
	close(probes)

	var got []Result
	for r := range pool.Run(context.Background(), probes) {
		got = append(got, r)
	}
	assert.Len(t, got, 2)
}
