package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config holds all configurable internsim settings.
type Config struct {
	Model          string   `json:"model"`           // model identifier sent to the generation service
	BaseURL        string   `json:"base_url"`        // OpenAI-compatible endpoint; empty = Groq
	APIKeyEnv      string   `json:"api_key_env"`     // env var holding the API key
	DefaultFormat  string   `json:"default_format"`  // "markdown" | "json"
	OutputDir      string   `json:"output_dir"`      // where timeline documents are written
	ContextDir     string   `json:"context_dir"`     // codebase context directory, empty = none
	IgnorePatterns []string `json:"ignore_patterns"` // glob patterns excluded from codebase context
}

// Defaults returns sensible default configuration values.
func Defaults() Config {
	return Config{
		Model:          "llama-3.3-70b-versatile",
		APIKeyEnv:      "GROQ_API_KEY",
		DefaultFormat:  "markdown",
		OutputDir:      ".",
		IgnorePatterns: []string{},
	}
}

// LoadGlobal reads ~/.config/internsim/config.json.
// Returns defaults if the file is absent.
func LoadGlobal() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(home, ".config", "internsim", "config.json")
	return loadFile(path, true)
}

// LoadProject reads .internsimrc in the current working directory.
// Returns nil (no error) if the file is absent.
func LoadProject() (*Config, error) {
	return loadFile(".internsimrc", false)
}

// loadFile reads and parses a JSON config file at path.
// If returnDefaults is true, returns defaults when the file is absent.
// If returnDefaults is false, returns nil when the file is absent.
func loadFile(path string, returnDefaults bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if returnDefaults {
				d := Defaults()
				return &d, nil
			}
			return nil, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

// Merge combines global and project configs, with project taking precedence.
// Missing keys fall back to global, then defaults.
func Merge(global, project *Config) Config {
	result := Defaults()

	apply := func(c *Config) {
		if c == nil {
			return
		}
		if c.Model != "" {
			result.Model = c.Model
		}
		if c.BaseURL != "" {
			result.BaseURL = c.BaseURL
		}
		if c.APIKeyEnv != "" {
			result.APIKeyEnv = c.APIKeyEnv
		}
		if c.DefaultFormat != "" {
			result.DefaultFormat = c.DefaultFormat
		}
		if c.OutputDir != "" {
			result.OutputDir = c.OutputDir
		}
		if c.ContextDir != "" {
			result.ContextDir = c.ContextDir
		}
		if len(c.IgnorePatterns) > 0 {
			result.IgnorePatterns = c.IgnorePatterns
		}
	}

	// Apply global values over defaults, then project values over global.
	apply(global)
	apply(project)

	return result
}

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
