package info

import (
	"fmt"
	"runtime"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/viant/boundary/inspector/diag"
	"gopkg.in/yaml.v3"
)

// DefaultDirective is the boundary literal recognized when none is configured
const DefaultDirective = "use client"

// SupportedExtensions lists the source extensions with a grammar
var SupportedExtensions = []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".mts", ".cts", ".tsx"}

// Config controls discovery, inspection and resolution
type Config struct {
	Directive          string   `yaml:"directive,omitempty" toml:"directive,omitempty"`                   // boundary literal, unquoted
	Extensions         []string `yaml:"extensions,omitempty" toml:"extensions,omitempty"`                 // allow-list, also resolver probing order
	IgnoreDirs         []string `yaml:"ignoreDirs,omitempty" toml:"ignoreDirs,omitempty"`                 // directory names never descended into
	SkipHidden         bool     `yaml:"skipHidden" toml:"skipHidden"`                                     // skip directories starting with '.'
	RespectGitignore   bool     `yaml:"respectGitignore" toml:"respectGitignore"`                         // honor .gitignore at the project root
	Concurrency        int      `yaml:"concurrency,omitempty" toml:"concurrency,omitempty"`               // parse worker pool size
	MaxFileSizeBytes   int64    `yaml:"maxFileSizeBytes,omitempty" toml:"maxFileSizeBytes,omitempty"`     // 0 disables; larger files are skipped with a diagnostic
	ResolveCacheSize   int      `yaml:"resolveCacheSize,omitempty" toml:"resolveCacheSize,omitempty"`     // filesystem probe cache entries
	DefaultAliasPrefix string   `yaml:"defaultAliasPrefix,omitempty" toml:"defaultAliasPrefix,omitempty"` // used when no alias config is usable
	DefaultAliasDir    string   `yaml:"defaultAliasDir,omitempty" toml:"defaultAliasDir,omitempty"`       // relative to the project root
}

func DefaultConfig() *Config {
	return &Config{
		Directive:          DefaultDirective,
		Extensions:         []string{".js", ".jsx", ".ts", ".tsx"},
		IgnoreDirs:         []string{"node_modules"},
		SkipHidden:         true,
		RespectGitignore:   true,
		Concurrency:        runtime.GOMAXPROCS(0),
		ResolveCacheSize:   4096,
		DefaultAliasPrefix: "@/",
		DefaultAliasDir:    "src",
	}
}

// ParseConfig decodes a YAML document over the defaults; absent keys keep their default value
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseTOMLConfig decodes a TOML document over the defaults
func ParseTOMLConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	defaults := DefaultConfig()
	if c.Directive == "" {
		c.Directive = defaults.Directive
	}
	if len(c.Extensions) == 0 {
		c.Extensions = defaults.Extensions
	}
	if c.Concurrency <= 0 {
		c.Concurrency = defaults.Concurrency
	}
	if c.ResolveCacheSize <= 0 {
		c.ResolveCacheSize = defaults.ResolveCacheSize
	}
	if c.DefaultAliasPrefix == "" {
		c.DefaultAliasPrefix = defaults.DefaultAliasPrefix
	}
}

// Validate rejects extensions no grammar can parse
func (c *Config) Validate() error {
	for _, ext := range c.Extensions {
		if !slices.Contains(SupportedExtensions, ext) {
			return diag.New(diag.UnsupportedExtension, "", fmt.Sprintf("unsupported extension %q, expected one of %v", ext, SupportedExtensions), nil)
		}
	}
	return nil
}

// HasExtension reports whether ext is in the allow-list
func (c *Config) HasExtension(ext string) bool {
	for _, candidate := range c.Extensions {
		if candidate == ext {
			return true
		}
	}
	return false
}

// IsIgnoredDir reports whether a directory name must not be descended into
func (c *Config) IsIgnoredDir(name string) bool {
	if c.SkipHidden && len(name) > 1 && name[0] == '.' {
		return true
	}
	for _, candidate := range c.IgnoreDirs {
		if candidate == name {
			return true
		}
	}
	return false
}
