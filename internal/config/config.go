package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type DebugConfig struct {
	LogRequests  bool   `toml:"log_requests"`
	LogResponses bool   `toml:"log_responses"`
	LogDirectory string `toml:"log_directory"`
}

type Config struct {
	Bind                 string      `toml:"bind"`
	Endpoint             string      `toml:"endpoint"`
	ChatModel            string      `toml:"chat_model"`
	CleanModel           string      `toml:"clean_model"`
	ContextWindow        int         `toml:"context_window"`
	ReservedOutputTokens int         `toml:"reserved_output_tokens"`
	TimeoutSeconds       int         `toml:"timeout_seconds"`
	SystemPrompt         string      `toml:"system_prompt"`
	TextsDir             string      `toml:"texts_dir"`
	DataDir              string      `toml:"data_dir"`
	Debug                DebugConfig `toml:"debug"`
}

// DefaultSystemPrompt is appended once as the first turn of every new chat
// session; it puts the model in the skeptical-buyer role the user pitches to.
const DefaultSystemPrompt = "You are a skeptical and discerning buyer. A salesperson (the user) will attempt to convince you " +
	"to purchase a product of their choice. Your behavior should follow these rules: Do not agree to " +
	"buy the product unless the salesperson provides compelling and persuasive reasoning, clear " +
	"relevance to your needs or problems, and specific value that meets your expectations. Ask " +
	"critical and thoughtful questions. Challenge vague or weak claims. If the offer is vague, " +
	"irrelevant, or unconvincing, then express doubt or reject it. Only agree to a purchase if you " +
	"feel genuinely persuaded by the pitch. Maintain a polite and respectful tone, but stay firm and " +
	"objective. Never agree too quickly or without solid justification."

func Default() Config {
	defaultDataDir := defaultDataDir()
	return Config{
		Bind:                 ":8000",
		Endpoint:             "http://localhost:11434",
		ChatModel:            "mistral:7b",
		CleanModel:           "mistral:7b",
		ContextWindow:        4096,
		ReservedOutputTokens: 1024,
		TimeoutSeconds:       120,
		SystemPrompt:         DefaultSystemPrompt,
		TextsDir:             "./sample_texts",
		DataDir:              defaultDataDir,
		Debug: DebugConfig{
			LogRequests:  false,
			LogResponses: false,
			LogDirectory: filepath.Join(defaultDataDir, "debug"),
		},
	}
}

func LoadOrCreate(path string) (Config, error) {
	config := Default()

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return config, err
			}

			configData, err := toml.Marshal(config)
			if err != nil {
				return config, err
			}

			if err := os.WriteFile(path, configData, 0o644); err != nil {
				return config, err
			}

			return config, nil
		}

		return config, err
	}

	configData, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}

	if err := toml.Unmarshal(configData, &config); err != nil {
		return config, err
	}

	config.DataDir = expandPath(config.DataDir)
	config.TextsDir = expandPath(config.TextsDir)
	config.Endpoint = strings.TrimSpace(config.Endpoint)
	config.Bind = strings.TrimSpace(config.Bind)

	if config.Endpoint == "" {
		return config, errors.New("endpoint is required")
	}

	if config.Bind == "" {
		config.Bind = ":8000"
	}

	if config.ContextWindow <= 0 {
		return config, errors.New("context_window must be positive")
	}

	if config.ReservedOutputTokens < 0 || config.ReservedOutputTokens >= config.ContextWindow {
		return config, errors.New("reserved_output_tokens must fit inside context_window")
	}

	return config, nil
}

// RequestTimeout is the fixed per-call timeout toward the inference backend.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 120 * time.Second
	}

	return time.Duration(c.TimeoutSeconds) * time.Second
}

// MaxInputTokens is the per-chunk token budget: the context window minus the
// fixed output reserve. Distinct from the whole-document chunking gate.
func (c Config) MaxInputTokens() int {
	return c.ContextWindow - c.ReservedOutputTokens
}

func defaultDataDir() string {
	homeDir, _ := os.UserHomeDir()

	if homeDir == "" {
		return ".llmkit"
	}

	return filepath.Join(homeDir, ".llmkit")
}

func expandPath(path string) string {
	if path == "" {
		return ""
	}

	if strings.HasPrefix(path, "~") {
		homeDir, _ := os.UserHomeDir()

		if homeDir != "" {
			trimmed := strings.TrimPrefix(path, "~")
			trimmed = strings.TrimPrefix(trimmed, string(os.PathSeparator))

			return filepath.Join(homeDir, trimmed)
		}
	}

	return path
}
