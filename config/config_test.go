package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fathomsec/fathom/engine"
)

func writeWordlist(t *testing.T, words ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	data := ""
	for _, w := range words {
		data += w + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestBuildDirRequiresURL(t *testing.T) {
	_, _, _, err := BuildDir(DirArgs{Wordlist: writeWordlist(t, "admin")})
	var cfgErr *engine.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestBuildDirProducesProbes(t *testing.T) {
	probes, client, classifier, err := BuildDir(DirArgs{
		HTTP:     HTTPCommon{URL: "http://example.com", Method: "GET"},
		Wordlist: writeWordlist(t, "admin", "login"),
	})
	require.NoError(t, err)
	assert.Len(t, probes, 2)
	assert.NotNil(t, client)
	assert.NotNil(t, classifier)
}

func TestBuildVhostRequiresIgnoreString(t *testing.T) {
	_, _, _, err := BuildVhost(VhostArgs{
		HTTP:     HTTPCommon{URL: "http://10.0.0.1"},
		Domain:   "example.com",
		Wordlist: writeWordlist(t, "dev"),
	})
	assert.ErrorIs(t, err, engine.ErrVhostRequiresIgnoreString)
}

func TestBuildFuzzRequiresMatchingCSRFFlags(t *testing.T) {
	_, _, _, _, err := BuildFuzz(FuzzArgs{
		HTTP:      HTTPCommon{URL: "http://example.com/FUZZ"},
		Wordlists: Repeated{writeWordlist(t, "a")},
		CSRFUrl:   "http://example.com/login",
	}, 4)
	var cfgErr *engine.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestBuildFuzzPlaceholderMismatch(t *testing.T) {
	_, _, _, _, err := BuildFuzz(FuzzArgs{
		HTTP:      HTTPCommon{URL: "http://example.com/FUZZ/FUZZ"},
		Wordlists: Repeated{writeWordlist(t, "a")},
	}, 4)
	assert.ErrorIs(t, err, engine.ErrFuzzPlaceholderCount)
}

func TestBuildDNSRequiresDomainAndWordlist(t *testing.T) {
	_, err := BuildDNS(DNSArgs{})
	var cfgErr *engine.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestBuildDNSProducesProbes(t *testing.T) {
	probes, err := BuildDNS(DNSArgs{Domain: "example.com", Wordlist: writeWordlist(t, "www", "mail")})
	require.NoError(t, err)
	assert.Len(t, probes, 2)
}
