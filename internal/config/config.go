// Package config loads the YAML configuration for the lexisearch service.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigError wraps a failure to load or validate a configuration file.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Config is the top-level configuration for the serve subcommand.
type Config struct {
	ListenAddr  string `yaml:"listen_addr"`
	CorpusRoot  string `yaml:"corpus_root"`
	LogLevel    string `yaml:"log_level"`
	CatalogPath string `yaml:"catalog_path"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		ListenAddr:  ":8080",
		CorpusRoot:  ".",
		LogLevel:    "info",
		CatalogPath: "lexisearch.db",
	}
}

// Load reads and parses a YAML config file at path, filling in defaults for
// any field the file leaves zero-valued.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &ConfigError{Path: path, Err: err}
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, &ConfigError{Path: path, Err: err}
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = Default().ListenAddr
	}
	if cfg.CorpusRoot == "" {
		cfg.CorpusRoot = Default().CorpusRoot
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = Default().LogLevel
	}
	if cfg.CatalogPath == "" {
		cfg.CatalogPath = Default().CatalogPath
	}
	return cfg, nil
}
