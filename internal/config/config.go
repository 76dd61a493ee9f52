// Package config provides configuration for the contextgen CLI.
// Configuration is read from a YAML file and can be overridden by
// command-line flags; absent keys keep their default values.
package config

import "github.com/Harsha9198/openai-helper/internal/fscontext"

// Config holds the full CLI configuration.
type Config struct {
	// Directory is the root path to scan.
	Directory string `yaml:"directory"`

	// Filter patterns, matching anywhere in the name or path.
	RegexWhitelist     string `yaml:"regex_whitelist"`
	RegexBlacklist     string `yaml:"regex_blacklist"`
	RegexPathWhitelist string `yaml:"regex_path_whitelist"`
	RegexPathBlacklist string `yaml:"regex_path_blacklist"`

	// Visibility and traversal flags.
	AllowHidden               bool `yaml:"allow_hidden"`
	AllowHiddenSubdirectories bool `yaml:"allow_hidden_subdirectories"`
	Recursive                 bool `yaml:"recursive"`
	SkipUnreadable            bool `yaml:"skip_unreadable"`
	SkipEmpty                 bool `yaml:"skip_empty"`

	// Model selects the tokenizer encoding.
	Model string `yaml:"model"`

	// ChunkSize and TokenLimit control reading and budgeting.
	ChunkSize  int `yaml:"chunk_size"`
	TokenLimit int `yaml:"token_limit"`

	// LogLevel controls logging verbosity.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Recursive:      true,
		SkipUnreadable: true,
		Model:          "gpt-4",
		ChunkSize:      fscontext.DefaultChunkSize,
		TokenLimit:     fscontext.DefaultTokenLimit,
		LogLevel:       "info",
	}
}

// ProviderOptions maps the configuration to fscontext.Options.
func (c *Config) ProviderOptions() fscontext.Options {
	return fscontext.Options{
		Directory:                 c.Directory,
		RegexWhitelist:            c.RegexWhitelist,
		RegexBlacklist:            c.RegexBlacklist,
		RegexPathWhitelist:        c.RegexPathWhitelist,
		RegexPathBlacklist:        c.RegexPathBlacklist,
		AllowHidden:               c.AllowHidden,
		AllowHiddenSubdirectories: c.AllowHiddenSubdirectories,
		Recursive:                 c.Recursive,
		SkipUnreadable:            c.SkipUnreadable,
		SkipEmpty:                 c.SkipEmpty,
	}
}

// ReadOptions maps the configuration to fscontext.ReadOptions.
func (c *Config) ReadOptions() fscontext.ReadOptions {
	return fscontext.ReadOptions{
		ChunkSize:  c.ChunkSize,
		TokenLimit: c.TokenLimit,
	}
}
