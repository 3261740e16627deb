package pages

import (
	"log/slog"

	"github.com/pageintel/pageintel/browser"
	"github.com/pageintel/pageintel/pages/internal/scrape"
)

// NewScraper builds the production Fetcher over a started browser
// manager, sized from the service config.
func NewScraper(mgr *browser.Manager, cfg *Config, logger *slog.Logger) Fetcher {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.defaults()
	return scrape.New(mgr, scrape.Config{
		BaseURL:     cfg.BaseURL,
		MaxSessions: cfg.MaxSessions,
		ItemBudget:  cfg.ItemBudget,
		MaxPosts:    cfg.MaxPosts,
		MaxPeople:   cfg.MaxPeople,
		Logger:      logger,
	})
}
