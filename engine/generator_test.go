package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateDir(t *testing.T) {
	probes := GenerateDir(DirConfig{
		BaseURL:    "http://example.com",
		Words:      []string{"admin"},
		Extensions: []string{"php", "bak"},
	})

	var urls []string
	for _, p := range probes {
		urls = append(urls, p.URL)
	}

	assert.Equal(t, []string{
		"http://example.com/admin",
		"http://example.com/admin.php",
		"http://example.com/admin.bak",
	}, urls)
	assert.Equal(t, "GET", probes[0].Method)
}

func TestGenerateDirAppendSlash(t *testing.T) {
	probes := GenerateDir(DirConfig{
		BaseURL:     "http://example.com",
		Words:       []string{"admin"},
		Extensions:  []string{"php"},
		AppendSlash: true,
	})

	var urls []string
	for _, p := range probes {
		urls = append(urls, p.URL)
	}

	assert.Equal(t, []string{
		"http://example.com/admin",
		"http://example.com/admin.php",
		"http://example.com/admin/",
		"http://example.com/admin.php/",
	}, urls)
}

func TestGenerateDNS(t *testing.T) {
	probes := GenerateDNS(DNSConfig{Domain: "Example.COM.", Words: []string{"www", "mail"}})

	assert.Equal(t, "www.example.com.", probes[0].Domain)
	assert.Equal(t, "mail.example.com.", probes[1].Domain)
	assert.Equal(t, ModeDNS, probes[0].Mode)
}

func TestGenerateVhostLeavesURLUnchanged(t *testing.T) {
	probes := GenerateVhost(VhostConfig{
		URL:    "http://10.0.0.1/",
		Domain: "example.com",
		Words:  []string{"dev", "staging"},
	})

	for _, p := range probes {
		assert.Equal(t, "http://10.0.0.1/", p.URL)
	}
	assert.Equal(t, "dev.example.com", probes[0].Host)
	assert.Equal(t, "staging.example.com", probes[1].Host)
}

func TestGenerateFuzzPlaceholderCountMismatch(t *testing.T) {
	_, err := GenerateFuzz(FuzzConfig{
		URL:       "http://example.com/FUZZ",
		Wordlists: [][]string{{"a"}, {"b"}},
	})
	assert.ErrorIs(t, err, ErrFuzzPlaceholderCount)
}

func TestGenerateFuzzCartesianProductAndFieldOrder(t *testing.T) {
	probes, err := GenerateFuzz(FuzzConfig{
		URL:     "http://example.com/FUZZ",
		Method:  "GET",
		Body:    "user=FUZZ",
		Headers: map[string]string{"X-Token": "FUZZ"},
		Wordlists: [][]string{
			{"a", "b"},
			{"1", "2"},
			{"x"},
		},
	})
	assert.NoError(t, err)
	assert.Len(t, probes, 4)

	seen := make(map[string]bool)
	for _, p := range probes {
		seen[p.URL+"|"+p.Body+"|"+p.Headers["X-Token"]] = true
	}
	assert.True(t, seen["http://example.com/a|user=1|x"])
	assert.True(t, seen["http://example.com/b|user=2|x"])
}

func TestGenerateFuzzNeedsCSRFOnlyWhenPresent(t *testing.T) {
	probes, err := GenerateFuzz(FuzzConfig{
		URL:       "http://example.com/FUZZ?csrf=CSRFCSRF",
		Wordlists: [][]string{{"a"}},
		HasCSRF:   true,
	})
	assert.NoError(t, err)
	assert.True(t, probes[0].NeedsCSRF)

	probesNoCSRF, err := GenerateFuzz(FuzzConfig{
		URL:       "http://example.com/FUZZ",
		Wordlists: [][]string{{"a"}},
		HasCSRF:   true,
	})
	assert.NoError(t, err)
	assert.False(t, probesNoCSRF[0].NeedsCSRF)
}

func TestCartesianEmpty(t *testing.T) {
	assert.Nil(t, cartesian(nil))
}
