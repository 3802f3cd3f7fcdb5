package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/kkyungseo/support-project-radar/internal/rules"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// Source describes one configured announcement source.
type Source struct {
	Name    string    `yaml:"name"`
	Type    string    `yaml:"type"` // "kstartup" or "feed"
	Enabled bool      `yaml:"enabled"`
	URL     string    `yaml:"url,omitempty"` // feed sources
	API     APIConfig `yaml:"api,omitempty"` // kstartup sources
}

// APIConfig holds the paginated OpenAPI parameters for a kstartup source.
type APIConfig struct {
	BaseURL          string            `yaml:"base_url"`
	Endpoints        map[string]string `yaml:"endpoints"`
	EnabledEndpoints []string          `yaml:"enabled_endpoints"`
	PerPage          int               `yaml:"per_page"`
	MaxPages         int               `yaml:"max_pages"`
	ServiceKeyParam  string            `yaml:"service_key_param"`
	ServiceKeyEnv    string            `yaml:"service_key_env"`
}

type SeenConfig struct {
	Driver string `yaml:"driver"` // "sqlite" (default) or "postgres"
	Path   string `yaml:"path,omitempty"`
	DSN    string `yaml:"dsn,omitempty"`
}

type NotifyConfig struct {
	WebhookEnv string `yaml:"webhook_env"`
	MaxItems   int    `yaml:"max_items"`
}

type ReportConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

type Config struct {
	LookbackDays int           `yaml:"lookback_days"`
	MaxItems     int           `yaml:"max_items,omitempty"`
	Seen         SeenConfig    `yaml:"seen"`
	Report       ReportConfig  `yaml:"report"`
	Notify       NotifyConfig  `yaml:"notify"`
	Rules        rules.RuleSet `yaml:"rules"`
	Sources      []Source      `yaml:"sources"`
}

func (c *Config) EnabledSources() []Source {
	var out []Source
	for _, s := range c.Sources {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}

// SelectSources returns the enabled sources, restricted to the given names
// when any are provided. Registration order is preserved.
func (c *Config) SelectSources(names []string) []Source {
	enabled := c.EnabledSources()
	if len(names) == 0 {
		return enabled
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	var out []Source
	for _, s := range enabled {
		if wanted[s.Name] {
			out = append(out, s)
		}
	}
	return out
}

// WebhookURL resolves the Slack webhook from the configured env var.
// Empty means notification is not configured.
func (c *Config) WebhookURL() string {
	env := c.Notify.WebhookEnv
	if env == "" {
		env = "SLACK_WEBHOOK_URL"
	}
	return os.Getenv(env)
}

func (c *Config) NotifyMaxItems() int {
	if c.Notify.MaxItems <= 0 {
		return 10
	}
	return c.Notify.MaxItems
}

// SeenDBPath returns the configured sqlite path or the XDG default.
func (c *Config) SeenDBPath() string {
	if c.Seen.Path != "" {
		return c.Seen.Path
	}
	return filepath.Join(xdg.DataHome, "support-radar", "seen.db")
}

// ReportDir returns the configured run-report directory or the XDG default.
func (c *Config) ReportDir() string {
	if c.Report.Dir != "" {
		return c.Report.Dir
	}
	return filepath.Join(xdg.DataHome, "support-radar", "runs")
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "support-radar", "config.yaml")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = defaults.LookbackDays
	}
	if cfg.Seen.Driver == "" {
		cfg.Seen.Driver = "sqlite"
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	switch cfg.Seen.Driver {
	case "sqlite":
	case "postgres":
		if cfg.Seen.DSN == "" {
			return fmt.Errorf("seen: postgres driver requires dsn")
		}
	default:
		return fmt.Errorf("seen: unknown driver %q (valid: sqlite, postgres)", cfg.Seen.Driver)
	}

	for i, s := range cfg.Sources {
		if s.Name == "" {
			return fmt.Errorf("source %d: name is required", i)
		}
		switch s.Type {
		case "feed":
			if s.URL == "" {
				return fmt.Errorf("source %q: url is required", s.Name)
			}
			u, err := url.Parse(s.URL)
			if err != nil {
				return fmt.Errorf("source %q: invalid url: %w", s.Name, err)
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return fmt.Errorf("source %q: url scheme must be http or https, got %q", s.Name, u.Scheme)
			}
		case "kstartup":
			if s.API.BaseURL == "" {
				return fmt.Errorf("source %q: api.base_url is required", s.Name)
			}
		default:
			return fmt.Errorf("source %q: unknown type %q (valid: kstartup, feed)", s.Name, s.Type)
		}
	}
	return nil
}
