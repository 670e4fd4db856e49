package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gnana997/twbracket/pkg/fixer"
	"github.com/gnana997/twbracket/pkg/provider"
	"github.com/gnana997/twbracket/pkg/twconfig"
)

// defaultConfigPath is where the project config lives, relative to the
// working directory.
var defaultConfigPath = filepath.Join(".twbracket", "config.yaml")

// ProjectConfig holds the contents of .twbracket/config.yaml.
type ProjectConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	// LogFile receives one JSONL line per MCP tool call. Empty disables it.
	LogFile string `yaml:"log_file"`

	DebounceMs  int      `yaml:"debounce_ms"`
	ConfigFiles []string `yaml:"config_files"`
	Languages   []string `yaml:"languages"`

	// Aliases adds property shorthands, e.g. {"bw": "border"}. Built-in
	// aliases cannot be redefined.
	Aliases map[string]string `yaml:"aliases"`

	Fix FixConfig `yaml:"fix"`

	DocumentCacheSize int `yaml:"document_cache_size"`
}

// FixConfig selects the files `twbracket fix` walks.
type FixConfig struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// defaultProjectConfig returns the settings used when no file exists.
func defaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		LogLevel:          envOrDefault("TWBRACKET_LOG_LEVEL", "info"),
		LogFormat:         "json",
		DebounceMs:        200,
		ConfigFiles:       twconfig.DefaultConfigFileNames,
		Languages:         provider.DefaultLanguages,
		DocumentCacheSize: provider.DefaultDocumentCacheSize,
		Fix: FixConfig{
			Include: fixer.DefaultInclude,
			Exclude: fixer.DefaultExclude,
		},
	}
}

// loadProjectConfig reads path over the defaults. A missing file yields the
// defaults without error.
func loadProjectConfig(path string) (*ProjectConfig, error) {
	cfg := defaultProjectConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if cfg.DebounceMs < 0 {
		return nil, fmt.Errorf("%s: debounce_ms must not be negative", path)
	}
	if cfg.DocumentCacheSize < 0 {
		return nil, fmt.Errorf("%s: document_cache_size must not be negative", path)
	}
	if len(cfg.ConfigFiles) == 0 {
		cfg.ConfigFiles = twconfig.DefaultConfigFileNames
	}
	if len(cfg.Languages) == 0 {
		cfg.Languages = provider.DefaultLanguages
	}
	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
