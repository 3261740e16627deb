package pages

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the service configuration. Zero values take documented
// defaults via defaults(), so a partial YAML file or an empty Config is
// always usable.
type Config struct {
	// BaseURL is the platform root the scraper targets.
	BaseURL string `yaml:"base_url"`

	// AcquireBudget bounds a whole extraction attempt. Default: 30s.
	AcquireBudget time.Duration `yaml:"acquire_budget"`

	// ItemBudget bounds the per-post engagement detail fetch. Default: 3s.
	ItemBudget time.Duration `yaml:"item_budget"`

	// MaxSessions caps concurrent browser sessions. Default: 3.
	MaxSessions int64 `yaml:"max_sessions"`

	// MaxPosts / MaxPeople cap how many items one acquisition collects.
	// Defaults: 20 / 50.
	MaxPosts  int `yaml:"max_posts"`
	MaxPeople int `yaml:"max_people"`

	// MaxPageSize caps the page_size query parameter. Default: 100.
	MaxPageSize int `yaml:"max_page_size"`

	// DefaultPageSize applies when page_size is absent. Default: 10.
	DefaultPageSize int `yaml:"default_page_size"`
}

func (c *Config) defaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://www.linkedin.com"
	}
	if c.AcquireBudget <= 0 {
		c.AcquireBudget = 30 * time.Second
	}
	if c.ItemBudget <= 0 {
		c.ItemBudget = 3 * time.Second
	}
	if c.MaxSessions <= 0 {
		c.MaxSessions = 3
	}
	if c.MaxPosts <= 0 {
		c.MaxPosts = 20
	}
	if c.MaxPeople <= 0 {
		c.MaxPeople = 50
	}
	if c.MaxPageSize <= 0 {
		c.MaxPageSize = 100
	}
	if c.DefaultPageSize <= 0 {
		c.DefaultPageSize = 10
	}
}

// LoadConfig reads a YAML configuration file and applies defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.defaults()
	return &cfg, nil
}
