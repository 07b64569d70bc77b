package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration for one jobinsights run.
type Config struct {
	API          APIConfig
	Search       SearchConfig
	Filters      FilterConfig
	RateLimit    RateLimitConfig
	Skills       SkillsConfig
	Output       OutputConfig
	Notification NotificationConfig
}

// APIConfig holds the RapidAPI credentials and transport settings.
type APIConfig struct {
	Host    string
	Key     string
	BaseURL string        // optional override, defaults to https://<Host>
	Timeout time.Duration // per-request timeout
}

// SearchConfig describes what to search for.
type SearchConfig struct {
	Query    string `yaml:"query"`
	Location string `yaml:"location"`
	Pages    int    `yaml:"pages"`
}

// FilterConfig narrows records after deduplication. Empty values are ignored.
type FilterConfig struct {
	EmploymentType string `yaml:"employment_type"`
	LocationType   string `yaml:"location_type"`
}

// RateLimitConfig bounds the random pause between page requests.
type RateLimitConfig struct {
	MinDelay time.Duration
	MaxDelay time.Duration
}

// SkillsConfig controls the skill lexicon.
type SkillsConfig struct {
	Match    string   `yaml:"match"`    // "substring" or "word"
	Keywords []string `yaml:"keywords"` // empty = built-in lexicon
}

// OutputConfig names the report artifacts. Relative file names are placed
// under Dir; an empty SQLite path disables the SQLite export.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	CSV    string `yaml:"csv"`
	Chart  string `yaml:"chart"`
	PDF    string `yaml:"pdf"`
	SQLite string `yaml:"sqlite"`
}

// NotificationConfig controls which notifier is used and its settings.
type NotificationConfig struct {
	Type       string `yaml:"type"`        // "log" or "slack"
	WebhookURL string `yaml:"webhook_url"` // required if type is "slack"
}

// rawConfig is used for YAML unmarshaling (snake_case fields and duration as string).
type rawConfig struct {
	API          rawAPIConfig       `yaml:"api"`
	Search       SearchConfig       `yaml:"search"`
	Filters      FilterConfig       `yaml:"filters"`
	RateLimit    rawRateLimitConfig `yaml:"rate_limit"`
	Skills       SkillsConfig       `yaml:"skills"`
	Output       OutputConfig       `yaml:"output"`
	Notification NotificationConfig `yaml:"notification"`
}

type rawAPIConfig struct {
	Host    string `yaml:"host"`
	Key     string `yaml:"key"`
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

type rawRateLimitConfig struct {
	MinDelay string `yaml:"min_delay"`
	MaxDelay string `yaml:"max_delay"`
}

// defaultYAML mirrors config.example.yaml and is used when no config file exists.
const defaultYAML = `
api:
  host: ${RAPIDAPI_HOST}
  key: ${RAPIDAPI_KEY}
search:
  pages: 1
`

// LoadDotEnv loads environment variables from the .env files that exist.
// Variables already set in the environment take precedence.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Load reads and parses the YAML config file at path, validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// LoadOrDefault behaves like Load but falls back to the built-in defaults
// when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Parse([]byte(defaultYAML))
	}
	return cfg, err
}

// Parse expands environment variables in data and decodes it into a Config.
// Call Validate before using the result for a run.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	var err error
	timeout := 30 * time.Second // default
	if raw.API.Timeout != "" {
		timeout, err = time.ParseDuration(raw.API.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse api.timeout %q: %w", raw.API.Timeout, err)
		}
	}

	minDelay := 1 * time.Second // default
	if raw.RateLimit.MinDelay != "" {
		minDelay, err = time.ParseDuration(raw.RateLimit.MinDelay)
		if err != nil {
			return nil, fmt.Errorf("parse rate_limit.min_delay %q: %w", raw.RateLimit.MinDelay, err)
		}
	}

	maxDelay := 3 * time.Second // default
	if raw.RateLimit.MaxDelay != "" {
		maxDelay, err = time.ParseDuration(raw.RateLimit.MaxDelay)
		if err != nil {
			return nil, fmt.Errorf("parse rate_limit.max_delay %q: %w", raw.RateLimit.MaxDelay, err)
		}
	}

	cfg := &Config{
		API: APIConfig{
			Host:    strings.TrimSpace(raw.API.Host),
			Key:     strings.TrimSpace(raw.API.Key),
			BaseURL: raw.API.BaseURL,
			Timeout: timeout,
		},
		Search:  raw.Search,
		Filters: raw.Filters,
		RateLimit: RateLimitConfig{
			MinDelay: minDelay,
			MaxDelay: maxDelay,
		},
		Skills:       raw.Skills,
		Output:       raw.Output,
		Notification: raw.Notification,
	}
	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Search.Pages == 0 {
		cfg.Search.Pages = 1
	}
	if cfg.Skills.Match == "" {
		cfg.Skills.Match = "substring"
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "reports"
	}
	if cfg.Output.CSV == "" {
		cfg.Output.CSV = "job_listings.csv"
	}
	if cfg.Output.Chart == "" {
		cfg.Output.Chart = "job_market_insights.png"
	}
	if cfg.Output.PDF == "" {
		cfg.Output.PDF = "job_market_insights.pdf"
	}
	if cfg.Notification.Type == "" {
		cfg.Notification.Type = "log"
	}
}

// ArtifactPath resolves an artifact file name against the output directory.
// Absolute names and names that already include a directory are kept.
func (o OutputConfig) ArtifactPath(name string) string {
	if name == "" || filepath.IsAbs(name) || filepath.Dir(name) != "." {
		return name
	}
	return filepath.Join(o.Dir, name)
}

// Validate checks that cfg is complete enough for a run.
func Validate(cfg *Config) error {
	if cfg.API.Host == "" {
		return fmt.Errorf("api.host is required (set RAPIDAPI_HOST)")
	}
	if cfg.API.Key == "" {
		return fmt.Errorf("api.key is required (set RAPIDAPI_KEY)")
	}
	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %v", cfg.API.Timeout)
	}
	if strings.TrimSpace(cfg.Search.Query) == "" {
		return fmt.Errorf("search.query is required")
	}
	if cfg.Search.Pages < 1 {
		return fmt.Errorf("search.pages must be at least 1, got %d", cfg.Search.Pages)
	}
	if cfg.RateLimit.MinDelay < 0 || cfg.RateLimit.MaxDelay < cfg.RateLimit.MinDelay {
		return fmt.Errorf("rate_limit: need 0 <= min_delay <= max_delay, got %v and %v",
			cfg.RateLimit.MinDelay, cfg.RateLimit.MaxDelay)
	}
	if cfg.Skills.Match != "substring" && cfg.Skills.Match != "word" {
		return fmt.Errorf("skills.match must be \"substring\" or \"word\", got %q", cfg.Skills.Match)
	}

	switch cfg.Notification.Type {
	case "log":
	case "slack":
		if cfg.Notification.WebhookURL == "" {
			return fmt.Errorf("notification.webhook_url is required when type is \"slack\"")
		}
		if !strings.HasPrefix(cfg.Notification.WebhookURL, "https://hooks.slack.com/") {
			return fmt.Errorf("notification.webhook_url must start with https://hooks.slack.com/")
		}
	default:
		return fmt.Errorf("notification.type must be \"log\" or \"slack\", got %q", cfg.Notification.Type)
	}

	return nil
}
