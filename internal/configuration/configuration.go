package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/vinhuni-its/ragbot/internal/file"
)

// APIPathSuffix is the fixed path suffix every base URL must carry.
const APIPathSuffix = "/api"

var defaultConfig = Config{
	APIURL:         "http://localhost:8000/api",
	APIKey:         "",
	RequestTimeout: 30,

	Chat: &ChatConfig{
		Model:            "grok",
		TopK:             15,
		TopN:             5,
		Temperature:      0.1,
		MaxTokens:        1000,
		HistoryWindow:    3,
		TypingIntervalMs: 20,
	},

	Elearning: &ElearningConfig{
		Model:       "grok",
		VisionModel: "grok-2-vision-latest",
		TopK:        5,
		TopN:        2,
		Temperature: 0.5,
		MaxTokens:   2000,
	},
}

// Config holds configuration for the ragbot tool.
type Config struct {
	APIURL         string `json:"api_url"`
	APIKey         string `json:"api_key"`
	RequestTimeout int    `json:"request_timeout"`

	Chat      *ChatConfig      `json:"chat"`
	Elearning *ElearningConfig `json:"elearning"`

	// path this config was loaded from, so mutators can persist in place.
	path string
}

// ChatConfig holds configuration for the general chat assistant.
type ChatConfig struct {
	// The model used for text-only queries.
	Model string `json:"model"`
	// Number of documents fetched by the retriever.
	TopK int `json:"top_k"`
	// Number of documents kept after reranking.
	TopN        int     `json:"top_n"`
	Temperature float32 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	// Size of the rolling conversational context window sent to the backend.
	HistoryWindow int `json:"history_window"`
	// Delay between revealed characters of a bot answer.
	TypingIntervalMs int `json:"typing_interval_ms"`
}

// ElearningConfig holds configuration for the course assistant.
type ElearningConfig struct {
	Model       string  `json:"model"`
	VisionModel string  `json:"vision_model"`
	TopK        int     `json:"top_k"`
	TopN        int     `json:"top_n"`
	Temperature float32 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// Parse a configuration file.
func Parse(path string) (*Config, error) {
	path, err := file.ExpandPath(path)
	if err != nil {
		return nil, errors.Wrap(err, "expanding path")
	}

	if err := initializeIfNotPresent(path); err != nil {
		return nil, errors.Wrap(err, "initializing configuration")
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	config := &Config{}
	if err = json.Unmarshal(bytes, config); err != nil {
		return nil, errors.Wrap(err, "unmarshaling into config")
	}
	config.path = path
	if config.Chat == nil {
		config.Chat = defaultConfig.Chat
	}
	if config.Elearning == nil {
		config.Elearning = defaultConfig.Elearning
	}
	if config.Chat.HistoryWindow <= 0 {
		config.Chat.HistoryWindow = defaultConfig.Chat.HistoryWindow
	}
	if config.Chat.TypingIntervalMs <= 0 {
		config.Chat.TypingIntervalMs = defaultConfig.Chat.TypingIntervalMs
	}
	return config, nil
}

// NormalizeURL guarantees the fixed path suffix is present on a base URL.
func NormalizeURL(url string) string {
	url = strings.TrimRight(url, "/")
	if strings.HasSuffix(url, APIPathSuffix) {
		return url
	}
	return url + APIPathSuffix
}

// SetAPIURL normalizes, stores and persists the API base URL.
func (c *Config) SetAPIURL(url string) error {
	c.APIURL = NormalizeURL(url)
	return c.Save()
}

// SetAPIKey stores and persists the API key.
func (c *Config) SetAPIKey(key string) error {
	c.APIKey = key
	return c.Save()
}

// Save persists the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.path == "" {
		return nil
	}
	return c.save(c.path)
}

func (c *Config) save(path string) error {
	bytes, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	if err := os.WriteFile(path, bytes, 0644); err != nil {
		return errors.Wrap(err, "writing file")
	}
	return nil
}

// initializeIfNotPresent initializes a config if it does not exist.
func initializeIfNotPresent(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	// Create the directories.
	dir, _ := filepath.Split(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating folders")
	}

	if err := defaultConfig.save(path); err != nil {
		return errors.Wrap(err, "saving default config")
	}
	return nil
}
