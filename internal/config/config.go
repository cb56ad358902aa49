package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/brandonbloom/railskit/internal/command"
)

// FileName is the config file looked up in the target root.
const FileName = "railskit.toml"

// Config captures the user editable settings stored in railskit.toml.
type Config struct {
	SiteTitle     string        `toml:"site_title"`
	TimeZone      string        `toml:"time_zone"`
	StrictAnchors bool          `toml:"strict_anchors"`
	Hosts         HostsBlock    `toml:"hosts"`
	Assets        AssetsBlock   `toml:"assets"`
	Commands      CommandsBlock `toml:"commands"`
	Git           GitBlock      `toml:"git"`
	Log           LogBlock      `toml:"log"`
}

// HostsBlock sets the mailer default_url_options hosts.
type HostsBlock struct {
	Development string `toml:"development"`
	Production  string `toml:"production"`
}

// AssetsBlock describes where downloaded assets come from.
type AssetsBlock struct {
	H5BPBaseURL     string `toml:"h5bp_base_url"`
	DOMAssistantURL string `toml:"domassistant_url"`
	SelectivizrURL  string `toml:"selectivizr_url"`
	Timeout         string `toml:"timeout"`
	UserAgent       string `toml:"user_agent"`
}

// CommandsBlock holds command prefixes, parsed with shell quoting rules.
type CommandsBlock struct {
	Bundle string `toml:"bundle"`
	Rails  string `toml:"rails"`
	Rake   string `toml:"rake"`
}

// GitBlock governs the repository steps.
type GitBlock struct {
	Enabled       *bool  `toml:"enabled"`
	CommitMessage string `toml:"commit_message"`
}

// LogBlock configures diagnostic logging.
type LogBlock struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

const (
	DefaultSiteTitle       = "Rails App"
	DefaultDevelopmentHost = "localhost:3000"
	DefaultProductionHost  = "www.example.com"
	DefaultH5BPBaseURL     = "https://github.com/paulirish/html5-boilerplate/raw/master"
	DefaultDOMAssistantURL = "http://domassistant.googlecode.com/files/DOMAssistantComplete-2.8.js"
	DefaultSelectivizrURL  = "https://github.com/keithclark/selectivizr/raw/master/selectivizr.js"
	DefaultTimeout         = "60s"
	DefaultCommitMessage   = "Initial commit"
)

var (
	// ErrInvalidBaseURL indicates an asset URL is not absolute http(s).
	ErrInvalidBaseURL = errors.New("config.assets URLs must be absolute http or https URLs")
	// ErrInvalidLogFormat indicates the log format is not recognized.
	ErrInvalidLogFormat = errors.New("config.log.format must be text or json")
	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config.log.level must be debug, info, warn, or error")
)

// GitEnabled reports whether the git steps should run.
func (g GitBlock) GitEnabled() bool {
	if g.Enabled == nil {
		return true
	}
	return *g.Enabled
}

// FetchTimeout parses the configured timeout. Validate guarantees it parses.
func (a AssetsBlock) FetchTimeout() time.Duration {
	d, err := time.ParseDuration(a.Timeout)
	if err != nil {
		return 0
	}
	return d
}

func (a *AssetsBlock) applyDefaults() {
	if a.H5BPBaseURL == "" {
		a.H5BPBaseURL = DefaultH5BPBaseURL
	}
	a.H5BPBaseURL = strings.TrimRight(a.H5BPBaseURL, "/")
	if a.DOMAssistantURL == "" {
		a.DOMAssistantURL = DefaultDOMAssistantURL
	}
	if a.SelectivizrURL == "" {
		a.SelectivizrURL = DefaultSelectivizrURL
	}
	if a.Timeout == "" {
		a.Timeout = DefaultTimeout
	}
}

// Validate ensures every asset URL and the timeout are usable.
func (a AssetsBlock) Validate() error {
	for _, raw := range []string{a.H5BPBaseURL, a.DOMAssistantURL, a.SelectivizrURL} {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidBaseURL, raw)
		}
	}
	if d, err := time.ParseDuration(a.Timeout); err != nil || d <= 0 {
		return fmt.Errorf("config.assets.timeout %q must be a positive duration", a.Timeout)
	}
	return nil
}

func (c *CommandsBlock) applyDefaults() {
	if c.Bundle == "" {
		c.Bundle = "bundle"
	}
	if c.Rails == "" {
		c.Rails = "rails"
	}
	if c.Rake == "" {
		c.Rake = "rake"
	}
}

// Validate ensures each prefix splits into at least one word.
func (c CommandsBlock) Validate() error {
	for name, value := range map[string]string{"bundle": c.Bundle, "rails": c.Rails, "rake": c.Rake} {
		if _, err := command.Split(value); err != nil {
			return fmt.Errorf("config.commands.%s: %w", name, err)
		}
	}
	return nil
}

func (l *LogBlock) applyDefaults() {
	if l.Level == "" {
		l.Level = "info"
	}
	l.Level = strings.ToLower(l.Level)
	if l.Format == "" {
		l.Format = "text"
	}
	l.Format = strings.ToLower(l.Format)
}

// Validate checks level and format names.
func (l LogBlock) Validate() error {
	switch l.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return ErrInvalidLogLevel
	}
	switch l.Format {
	case "text", "json":
		return nil
	default:
		return ErrInvalidLogFormat
	}
}

// Default returns a baseline configuration.
func Default() Config {
	cfg := Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.SiteTitle == "" {
		c.SiteTitle = DefaultSiteTitle
	}
	if c.Hosts.Development == "" {
		c.Hosts.Development = DefaultDevelopmentHost
	}
	if c.Hosts.Production == "" {
		c.Hosts.Production = DefaultProductionHost
	}
	if c.Git.CommitMessage == "" {
		c.Git.CommitMessage = DefaultCommitMessage
	}
	c.Assets.applyDefaults()
	c.Commands.applyDefaults()
	c.Log.applyDefaults()
}

// Validate ensures the configuration can drive a run.
func (c Config) Validate() error {
	if err := c.Assets.Validate(); err != nil {
		return err
	}
	if err := c.Commands.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	return nil
}

// Load reads configuration from disk. Missing files return a default config.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Save writes configuration to disk, creating parent directories as needed.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
