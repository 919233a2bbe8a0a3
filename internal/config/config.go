// Package config handles the digest settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "axd"
	// ConfigFile is the settings file name.
	ConfigFile = "config.yml"

	// DefaultStyle names downloaded files.
	DefaultStyle = "($arxivid) $title - $authors.pdf"
	// DefaultDownloadDir holds one dated directory per run day.
	DefaultDownloadDir = "~/Papers/arxiv-digest"
	// DefaultBarWidth is the width of the statistics bar.
	DefaultBarWidth = 120
	// DefaultNameMax is the longest file name most file systems accept.
	DefaultNameMax = 255
	// DefaultDownloadTool fetches PDFs.
	DefaultDownloadTool = "wget"
	// DefaultSMTPHost and DefaultSMTPPort are used when only an address is configured.
	DefaultSMTPHost = "smtp.gmail.com"
	DefaultSMTPPort = 587

	// Listing sources.
	SourceHTML = "html"
	SourceRSS  = "rss"

	// Fetch error policies.
	OnErrorHalt = "halt"
	OnErrorSkip = "skip"

	// PasswordEnv holds the SMTP password; it is never written to the settings file.
	PasswordEnv = "AXD_SMTP_PASSWORD"
)

// ErrNotConfigured is returned when no settings file exists yet.
var ErrNotConfigured = errors.New("axd is not configured")

// Config represents the settings stored in ~/.config/axd/config.yml.
type Config struct {
	Style             string   `yaml:"style"`
	Colored           bool     `yaml:"colored"`
	CategoryWhitelist []string `yaml:"category_whitelist"`
	CategoryBlacklist []string `yaml:"category_blacklist,omitempty"`
	KeywordBlacklist  []string `yaml:"keyword_blacklist,omitempty"`

	DownloadDir  string `yaml:"download_dir"`
	DownloadTool string `yaml:"download_tool,omitempty"`
	NameMax      int    `yaml:"name_max,omitempty"`
	BarWidth     int    `yaml:"bar_width,omitempty"`
	Source       string `yaml:"source,omitempty"`         // html or rss
	OnFetchError string `yaml:"on_fetch_error,omitempty"` // halt or skip

	Email Email `yaml:"email,omitempty"`
}

// Email configures the daily digest mail. An empty To disables mailing.
type Email struct {
	To       string `yaml:"to,omitempty"`
	From     string `yaml:"from,omitempty"`
	SMTPHost string `yaml:"smtp_host,omitempty"`
	SMTPPort int    `yaml:"smtp_port,omitempty"`
	Username string `yaml:"username,omitempty"`
}

// Default returns a configuration with every default applied and no categories.
func Default() *Config {
	cfg := &Config{Colored: true}
	cfg.applyDefaults()
	return cfg
}

// Path returns the path to the settings file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/axd/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load reads the settings file at path, applies defaults and validates it.
// Returns ErrNotConfigured if the file does not exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s does not exist", ErrNotConfigured, path)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrInvalidConfig, path, err)
	}

	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the configuration to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Normalize applies defaults and validates the configuration.
func (c *Config) Normalize() error {
	c.applyDefaults()
	return c.Validate()
}

func (c *Config) applyDefaults() {
	if c.Style == "" {
		c.Style = DefaultStyle
	}
	if c.DownloadDir == "" {
		c.DownloadDir = DefaultDownloadDir
	}
	if c.DownloadTool == "" {
		c.DownloadTool = DefaultDownloadTool
	}
	if c.NameMax == 0 {
		c.NameMax = DefaultNameMax
	}
	if c.BarWidth == 0 {
		c.BarWidth = DefaultBarWidth
	}
	if c.Source == "" {
		c.Source = SourceHTML
	}
	if c.OnFetchError == "" {
		c.OnFetchError = OnErrorHalt
	}
	if c.Email.To != "" {
		if c.Email.From == "" {
			c.Email.From = c.Email.To
		}
		if c.Email.Username == "" {
			c.Email.Username = c.Email.From
		}
		if c.Email.SMTPHost == "" {
			c.Email.SMTPHost = DefaultSMTPHost
		}
		if c.Email.SMTPPort == 0 {
			c.Email.SMTPPort = DefaultSMTPPort
		}
	}
}

// DownloadRoot returns the download directory with ~ expanded.
func (c *Config) DownloadRoot() string {
	return ExpandPath(c.DownloadDir)
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
