package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/stealth"
)

// Tab wraps a Rod page opened with stealth applied and resource blocking
// configured. One Tab backs one acquisition attempt.
type Tab struct {
	Page    *rod.Page
	PageURL string
}

// OpenTab creates a stealth tab, navigates to the URL, and waits for the
// initial load. The navigation shares the caller's context so the whole
// attempt stays under one budget.
func OpenTab(ctx context.Context, mgr *Manager, pageURL string) (*Tab, error) {
	b := mgr.Browser()
	if b == nil {
		return nil, fmt.Errorf("browser: no active browser")
	}

	page, err := stealth.Page(b)
	if err != nil {
		return nil, fmt.Errorf("browser: create tab: %w", err)
	}

	if len(mgr.cfg.ResourceBlocking) > 0 {
		if err := applyResourceBlocking(page, mgr.cfg.ResourceBlocking); err != nil {
			mgr.cfg.Logger.Warn("browser: resource blocking failed", "error", err)
		}
	}

	navCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := page.Context(navCtx).Navigate(pageURL); err != nil {
		page.Close()
		return nil, fmt.Errorf("browser: navigate %s: %w", pageURL, err)
	}

	if err := page.Context(navCtx).WaitLoad(); err != nil {
		mgr.cfg.Logger.Warn("browser: wait load timeout", "url", pageURL, "error", err)
	}

	return &Tab{Page: page, PageURL: pageURL}, nil
}

// HTML serialises the complete DOM as outer HTML.
func (t *Tab) HTML(ctx context.Context) (string, error) {
	res, err := t.Page.Context(ctx).Eval(`() => document.documentElement.outerHTML`)
	if err != nil {
		return "", fmt.Errorf("browser: get DOM: %w", err)
	}
	return res.Value.Str(), nil
}

// CurrentURL returns the tab's current location, which may differ from
// PageURL after redirects (authwall, checkpoint).
func (t *Tab) CurrentURL(ctx context.Context) (string, error) {
	res, err := t.Page.Context(ctx).Eval(`() => window.location.href`)
	if err != nil {
		return "", fmt.Errorf("browser: get URL: %w", err)
	}
	return res.Value.Str(), nil
}

// Title returns the document title.
func (t *Tab) Title(ctx context.Context) (string, error) {
	res, err := t.Page.Context(ctx).Eval(`() => document.title`)
	if err != nil {
		return "", fmt.Errorf("browser: get title: %w", err)
	}
	return res.Value.Str(), nil
}

// ScrollToBottom scrolls the viewport down once and waits briefly so lazy
// content can render. Callers repeat it to load more feed items.
func (t *Tab) ScrollToBottom(ctx context.Context) error {
	_, err := t.Page.Context(ctx).Eval(`() => window.scrollTo(0, document.body.scrollHeight)`)
	if err != nil {
		return fmt.Errorf("browser: scroll: %w", err)
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(500 * time.Millisecond):
	}
	return nil
}

// Close closes the tab.
func (t *Tab) Close() error {
	if t.Page != nil {
		return t.Page.Close()
	}
	return nil
}
