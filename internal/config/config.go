package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the top-level configuration for verilog-doc
type Config struct {
	// Sources is a list of glob patterns selecting Verilog files
	Sources []string `json:"sources,omitempty"`

	// Exclude is a list of glob patterns to remove from the source set
	Exclude []string `json:"exclude,omitempty"`

	// Extensions lists the file extensions treated as Verilog
	Extensions []string `json:"extensions,omitempty"`

	// Cache controls the persistent extraction cache
	Cache CacheConfig `json:"cache,omitempty"`
}

// CacheConfig controls incremental extraction cache behavior
type CacheConfig struct {
	// Enabled turns on the persistent cache
	Enabled *bool `json:"enabled,omitempty"`

	// Dir is the cache directory (relative to project root if not absolute)
	Dir string `json:"dir,omitempty"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() *Config {
	return &Config{
		Sources:    []string{"*.v", "*.vlog", "**/*.v", "**/*.vlog"},
		Exclude:    []string{},
		Extensions: []string{".v", ".vlog"},
		Cache: CacheConfig{
			Enabled: boolPtr(true),
			Dir:     ".verilog_doc_cache",
		},
	}
}

func boolPtr(v bool) *bool {
	return &v
}

// Load finds and loads the configuration file
// Search order:
//  1. ./verilog_doc.json (current working directory)
//  2. ./.verilog_doc.json (current working directory)
//  3. <rootPath>/verilog_doc.json (if different from cwd)
//  4. ~/.config/verilog_doc/config.json
//
// Returns DefaultConfig if no config file is found
func Load(rootPath string) (*Config, error) {
	cwd, _ := os.Getwd()

	searchPaths := []string{
		filepath.Join(cwd, "verilog_doc.json"),
		filepath.Join(cwd, ".verilog_doc.json"),
	}

	// If rootPath is a directory and different from cwd, also check there
	if info, err := os.Stat(rootPath); err == nil && info.IsDir() {
		absRoot, _ := filepath.Abs(rootPath)
		if absRoot != cwd {
			searchPaths = append(searchPaths,
				filepath.Join(rootPath, "verilog_doc.json"),
				filepath.Join(rootPath, ".verilog_doc.json"),
			)
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(home, ".config", "verilog_doc", "config.json"))
	}

	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}

	// No config found, return defaults
	return DefaultConfig(), nil
}

// LoadFile loads configuration from a specific file
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if len(c.Sources) == 0 {
		c.Sources = []string{"*.v", "*.vlog", "**/*.v", "**/*.vlog"}
	}
	if len(c.Extensions) == 0 {
		c.Extensions = []string{".v", ".vlog"}
	}
	if c.Cache.Dir == "" {
		c.Cache.Dir = ".verilog_doc_cache"
	}
	if c.Cache.Enabled == nil {
		c.Cache.Enabled = boolPtr(true)
	}
}

// Save writes the configuration to a file
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CacheEnabled reports whether the persistent cache is on.
func (c *Config) CacheEnabled() bool {
	return c.Cache.Enabled == nil || *c.Cache.Enabled
}

// HasVerilogExtension checks a file against the configured extensions.
func (c *Config) HasVerilogExtension(path string) bool {
	ext := lowerExt(path)
	for _, want := range c.Extensions {
		if ext == want {
			return true
		}
	}
	return false
}

// ShouldExcludeFile checks if a file matches an exclude pattern.
func (c *Config) ShouldExcludeFile(filePath string) bool {
	for _, pattern := range c.Exclude {
		if matched, _ := filepath.Match(pattern, filePath); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, filepath.Base(filePath)); matched {
			return true
		}
	}
	return false
}
