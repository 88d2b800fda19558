package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the single immutable options object handed to every rule
// invocation. Loaded once at startup; no ambient global state.
type Config struct {
	// MaxLineLength is the long-line threshold in display columns.
	MaxLineLength int `toml:"max_line_length"`
	// TabWidth is the tab expansion width for indentation math.
	TabWidth int `toml:"tab_width"`
	// MinSeverity filters the report: "check", "warn" or "error".
	MinSeverity string `toml:"min_severity"`
	// Ignore lists diagnostic type tags to suppress entirely.
	Ignore []string `toml:"ignore"`
	// Strict enables the larger rule subset.
	Strict bool `toml:"strict"`
	// Terse collapses the report to the summary line.
	Terse bool `toml:"terse"`
	// Color is "auto", "on" or "off".
	Color string `toml:"color"`
	// Fix enables writing <input>.EXPERIMENTAL-FIX files.
	Fix bool `toml:"fix"`
	// FixDiff prints applied fixes as a unified diff.
	FixDiff bool `toml:"fix_diff"`
	// WarnExit makes WARN diagnostics fail the run too.
	WarnExit bool `toml:"warn_exit"`
	// Dictionary is the path to a misspelling dictionary file.
	Dictionary string `toml:"dictionary"`
	// OwnersRoot is the tree root for OWNERS lookups; empty disables the
	// ownership coverage check.
	OwnersRoot string `toml:"owners_root"`
	// ThrottleLimit caps repeats of one diagnostic type; 0 disables.
	ThrottleLimit int `toml:"throttle_limit"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MaxLineLength: 80,
		TabWidth:      8,
		MinSeverity:   "check",
		Color:         "auto",
		ThrottleLimit: 10,
	}
}

// Load reads a TOML config file over the defaults. A missing or
// unparseable file is a fatal configuration error for the caller.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}
