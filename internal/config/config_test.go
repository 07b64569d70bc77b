package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	t.Setenv("TEST_RAPIDAPI_KEY", "k-123")
	path := writeConfig(t, `
api:
  host: linkedin-jobs-search.p.rapidapi.com
  key: ${TEST_RAPIDAPI_KEY}
  timeout: 10s
search:
  query: Data Scientist
  location: Johannesburg
  pages: 3
filters:
  employment_type: Full-time
  location_type: Remote
rate_limit:
  min_delay: 500ms
  max_delay: 2s
skills:
  match: word
  keywords: [go, sql]
output:
  dir: out
  sqlite: jobs.db
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.API.Key != "k-123" {
		t.Errorf("API.Key = %q, want expanded env var", cfg.API.Key)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("API.Timeout = %v, want 10s", cfg.API.Timeout)
	}
	if cfg.Search.Query != "Data Scientist" || cfg.Search.Location != "Johannesburg" || cfg.Search.Pages != 3 {
		t.Errorf("Search = %+v", cfg.Search)
	}
	if cfg.Filters.EmploymentType != "Full-time" || cfg.Filters.LocationType != "Remote" {
		t.Errorf("Filters = %+v", cfg.Filters)
	}
	if cfg.RateLimit.MinDelay != 500*time.Millisecond || cfg.RateLimit.MaxDelay != 2*time.Second {
		t.Errorf("RateLimit = %+v", cfg.RateLimit)
	}
	if cfg.Skills.Match != "word" || len(cfg.Skills.Keywords) != 2 {
		t.Errorf("Skills = %+v", cfg.Skills)
	}
	if got := cfg.Output.ArtifactPath(cfg.Output.SQLite); got != filepath.Join("out", "jobs.db") {
		t.Errorf("sqlite path = %q", got)
	}
	if cfg.Output.CSV != "job_listings.csv" {
		t.Errorf("Output.CSV default = %q", cfg.Output.CSV)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
api:
  host: h
  key: k
search:
  query: Analyst
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Search.Pages != 1 {
		t.Errorf("Pages = %d, want 1", cfg.Search.Pages)
	}
	if cfg.RateLimit.MinDelay != time.Second || cfg.RateLimit.MaxDelay != 3*time.Second {
		t.Errorf("RateLimit = %+v, want 1s..3s", cfg.RateLimit)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.API.Timeout)
	}
	if cfg.Skills.Match != "substring" || cfg.Notification.Type != "log" || cfg.Output.Dir != "reports" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("Load: expected error for missing file")
	}
}

func TestLoadOrDefault_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("RAPIDAPI_HOST", "env-host")
	t.Setenv("RAPIDAPI_KEY", "env-key")

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if cfg.API.Host != "env-host" || cfg.API.Key != "env-key" {
		t.Errorf("API = %+v", cfg.API)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "search: [broken")
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected error for invalid YAML")
	}
}

func TestLoad_BadDuration(t *testing.T) {
	path := writeConfig(t, "rate_limit:\n  min_delay: soon\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected error for bad duration")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Parse([]byte("api: {host: h, key: k}\nsearch: {query: q}\n"))
		if err != nil {
			t.Fatal(err)
		}
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing host", func(c *Config) { c.API.Host = "" }},
		{"missing key", func(c *Config) { c.API.Key = "" }},
		{"missing query", func(c *Config) { c.Search.Query = "  " }},
		{"zero pages", func(c *Config) { c.Search.Pages = 0 }},
		{"inverted delays", func(c *Config) { c.RateLimit.MaxDelay = c.RateLimit.MinDelay - 1 }},
		{"unknown match mode", func(c *Config) { c.Skills.Match = "fuzzy" }},
		{"slack without webhook", func(c *Config) { c.Notification.Type = "slack" }},
		{"slack with foreign webhook", func(c *Config) {
			c.Notification.Type = "slack"
			c.Notification.WebhookURL = "https://example.com/hook"
		}},
		{"unknown notifier", func(c *Config) { c.Notification.Type = "email" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Error("Validate: expected error")
			}
		})
	}

	if err := Validate(valid()); err != nil {
		t.Errorf("Validate(valid) = %v", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("JOBINSIGHTS_TEST_DOTENV=from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("JOBINSIGHTS_TEST_DOTENV", "")
	os.Unsetenv("JOBINSIGHTS_TEST_DOTENV")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("JOBINSIGHTS_TEST_DOTENV"); got != "from-file" {
		t.Errorf("env = %q, want from-file", got)
	}

	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("LoadDotEnv(missing) = %v, want nil", err)
	}
}
