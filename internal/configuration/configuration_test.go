package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInitializesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	config, err := Parse(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api", config.APIURL)
	assert.Equal(t, "grok", config.Chat.Model)
	assert.Equal(t, 3, config.Chat.HistoryWindow)
	assert.Equal(t, 20, config.Chat.TypingIntervalMs)
	assert.Equal(t, "grok-2-vision-latest", config.Elearning.VisionModel)

	// The default file was written out.
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestNormalizeURL(t *testing.T) {
	cases := map[string]string{
		"http://host:8000":         "http://host:8000/api",
		"http://host:8000/":        "http://host:8000/api",
		"http://host:8000/api":     "http://host:8000/api",
		"http://host:8000/api/":    "http://host:8000/api",
		"https://rag.vinhuni.edu":  "https://rag.vinhuni.edu/api",
		"https://rag.vinhuni.edu/": "https://rag.vinhuni.edu/api",
	}
	for input, expected := range cases {
		assert.Equal(t, expected, NormalizeURL(input), "input %q", input)
	}
	// Idempotent on its own output.
	assert.Equal(t, NormalizeURL("http://h"), NormalizeURL(NormalizeURL("http://h")))
}

func TestSettersPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	config, err := Parse(path)
	require.NoError(t, err)

	require.NoError(t, config.SetAPIURL("http://host:9000"))
	require.NoError(t, config.SetAPIKey("secret"))

	reloaded, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "http://host:9000/api", reloaded.APIURL)
	assert.Equal(t, "secret", reloaded.APIKey)
}
