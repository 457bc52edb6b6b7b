package config

import (
	"fmt"
	"strings"

	"github.com/sdejongh/rawpick/pkg/models"
	"github.com/sdejongh/rawpick/pkg/ratelimit"
)

// Config represents the application configuration
type Config struct {
	Match   MatchConfig   `yaml:"match"`
	Copy    CopyConfig    `yaml:"copy"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// MatchConfig holds matching-related settings
type MatchConfig struct {
	Extensions []string `yaml:"extensions"` // RAW extensions, without leading dot
	Exclude    []string `yaml:"exclude"`    // Globs skipped while scanning the root
}

// CopyConfig holds copy-related settings
type CopyConfig struct {
	Bandwidth string `yaml:"bandwidth"` // e.g. "20MB"; empty = unlimited
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show a progress bar on terminals
	Quiet    bool   `yaml:"quiet"`    // Suppress per-file lines
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Format string `yaml:"format"` // "json" or "text"
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	File   string `yaml:"file"`   // Log file path (empty = no file log)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Match: MatchConfig{
			Extensions: []string{"cr2", "cr3", "nef", "arw", "raf", "orf", "rw2", "dng"},
			Exclude:    []string{},
		},
		Copy: CopyConfig{
			Bandwidth: "",
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: true,
			Quiet:    false,
		},
		Logging: LoggingConfig{
			Format: "text",
			Level:  "info",
			File:   "",
		},
	}
}

// rule is one validation check; message is reported when ok returns false
type rule struct {
	field   string
	message string
	ok      func(c *Config) bool
}

var rules = []rule{
	{"match.extensions", "must be set", func(c *Config) bool {
		return c.Match.Extensions != nil
	}},
	{"match.extensions", "must contain at least one extension", func(c *Config) bool {
		return c.Match.Extensions == nil || len(c.Match.Extensions) > 0
	}},
	{"match.extensions", "must not contain blank entries", func(c *Config) bool {
		for _, ext := range c.Match.Extensions {
			if strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(ext), ".")) == "" {
				return false
			}
		}
		return true
	}},
	{"copy.bandwidth", "must be a byte rate such as '20MB' or '512KiB'", func(c *Config) bool {
		_, err := ratelimit.ParseRate(c.Copy.Bandwidth)
		return err == nil
	}},
	{"output.format", "must be 'human' or 'json'", func(c *Config) bool {
		return c.Output.Format == "human" || c.Output.Format == "json"
	}},
	{"logging.format", "must be 'json' or 'text'", func(c *Config) bool {
		return c.Logging.Format == "json" || c.Logging.Format == "text"
	}},
	{"logging.level", "must be 'debug', 'info', 'warn', or 'error'", func(c *Config) bool {
		switch c.Logging.Level {
		case "debug", "info", "warn", "error":
			return true
		}
		return false
	}},
}

// ValidationErrors lists every rule a configuration violated
type ValidationErrors []*models.ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration against every rule.
// All violations are collected before failing; the returned error is a
// *models.Error of kind KindConfigInvalid wrapping ValidationErrors.
func (c *Config) Validate() error {
	var violations ValidationErrors
	for _, r := range rules {
		if !r.ok(c) {
			violations = append(violations, &models.ValidationError{Field: r.field, Message: r.message})
		}
	}
	if len(violations) == 0 {
		return nil
	}
	return models.NewError(models.KindConfigInvalid, "",
		fmt.Sprintf("invalid configuration (%d problems)", len(violations)), violations)
}
