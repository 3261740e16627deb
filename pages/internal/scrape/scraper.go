package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/pageintel/pageintel/browser"
)

// Config configures the scraper.
type Config struct {
	// BaseURL is the platform root. Default: "https://www.linkedin.com".
	BaseURL string

	// MaxSessions caps concurrent browser tabs. Default: 3.
	MaxSessions int64

	// ItemBudget bounds the engagement detail fetch per post. A post whose
	// detail fetch exceeds it is kept with engagement marked unavailable.
	// Default: 3s.
	ItemBudget time.Duration

	// MaxPosts / MaxPeople cap how many items are collected. Defaults: 20 / 50.
	MaxPosts  int
	MaxPeople int

	// ScrollPasses is how many times the feed is scrolled to load more
	// posts. Default: 3.
	ScrollPasses int

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://www.linkedin.com"
	}
	if c.MaxSessions <= 0 {
		c.MaxSessions = 3
	}
	if c.ItemBudget <= 0 {
		c.ItemBudget = 3 * time.Second
	}
	if c.MaxPosts <= 0 {
		c.MaxPosts = 20
	}
	if c.MaxPeople <= 0 {
		c.MaxPeople = 50
	}
	if c.ScrollPasses <= 0 {
		c.ScrollPasses = 3
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Scraper extracts company page data through a shared browser manager.
// A weighted semaphore bounds concurrent sessions; Fetch blocks until a
// slot frees up or the caller's context expires.
type Scraper struct {
	mgr *browser.Manager
	cfg Config
	sem *semaphore.Weighted
}

// New creates a Scraper on top of a started browser manager.
func New(mgr *browser.Manager, cfg Config) *Scraper {
	cfg.defaults()
	return &Scraper{
		mgr: mgr,
		cfg: cfg,
		sem: semaphore.NewWeighted(cfg.MaxSessions),
	}
}

// Fetch runs one extraction attempt for the given page identifier. The
// attempt lives entirely under ctx; the tab is closed on every path.
func (s *Scraper) Fetch(ctx context.Context, pageID string) (*RawPage, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("scrape: acquire session: %w", err)
	}
	defer s.sem.Release(1)

	pageURL := fmt.Sprintf("%s/company/%s/", s.cfg.BaseURL, pageID)
	log := s.cfg.Logger.With("page_id", pageID)

	tab, err := browser.OpenTab(ctx, s.mgr, pageURL)
	if err != nil {
		return nil, err
	}
	defer tab.Close()

	// Let client-side rendering settle before reading anything.
	if err := sleepCtx(ctx, 2*time.Second); err != nil {
		return nil, err
	}

	finalURL, err := tab.CurrentURL(ctx)
	if err != nil {
		return nil, err
	}
	title, err := tab.Title(ctx)
	if err != nil {
		return nil, err
	}
	var bodyLen int
	if err := s.evalJSON(ctx, tab, bodyTextLenScript, &bodyLen); err != nil {
		return nil, err
	}

	if err := classify(finalURL, title, bodyLen); err != nil {
		log.Info("scrape: attempt rejected", "final_url", finalURL, "title", title, "error", err)
		return nil, err
	}

	raw := &RawPage{
		ID:        pageID,
		URL:       pageURL,
		FinalURL:  finalURL,
		FetchedAt: time.Now().UTC(),
	}

	if err := s.extractProfile(ctx, tab, raw); err != nil {
		return nil, err
	}

	if err := s.extractPosts(ctx, tab, raw); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Warn("scrape: posts section failed", "error", err)
		raw.PostsOK = false
	}

	if err := s.extractPeople(ctx, tab, raw); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Warn("scrape: people section failed", "error", err)
		raw.PeopleOK = false
	}

	log.Info("scrape: extracted",
		"posts", len(raw.Posts), "posts_ok", raw.PostsOK,
		"people", len(raw.People), "people_ok", raw.PeopleOK)
	return raw, nil
}

func (s *Scraper) extractProfile(ctx context.Context, tab *browser.Tab, raw *RawPage) error {
	var top struct {
		Name           string `json:"name"`
		ProfilePicture string `json:"profile_picture"`
		Description    string `json:"description"`
		FollowersText  string `json:"followers_text"`
	}
	if err := s.evalJSON(ctx, tab, profileScript, &top); err != nil {
		return fmt.Errorf("scrape: profile: %w", err)
	}
	raw.Name = top.Name
	raw.ProfilePicture = top.ProfilePicture
	raw.Description = top.Description
	raw.FollowersText = top.FollowersText

	// The about section lives behind a tab click; its absence is not fatal.
	clicked, err := s.click(ctx, tab, "about")
	if err != nil {
		return err
	}
	if clicked {
		if err := sleepCtx(ctx, time.Second); err != nil {
			return err
		}
	}

	var about struct {
		Industry    string `json:"industry"`
		CompanySize string `json:"company_size"`
		HQ          string `json:"headquarters"`
		Founded     string `json:"founded"`
		Website     string `json:"website"`
		Specialties string `json:"specialties"`
	}
	if err := s.evalJSON(ctx, tab, aboutScript, &about); err != nil {
		return fmt.Errorf("scrape: about: %w", err)
	}
	raw.Industry = about.Industry
	raw.CompanySize = about.CompanySize
	raw.Headquarters = about.HQ
	raw.Founded = about.Founded
	raw.Website = about.Website
	raw.Specialties = about.Specialties
	return nil
}

func (s *Scraper) extractPosts(ctx context.Context, tab *browser.Tab, raw *RawPage) error {
	if _, err := s.click(ctx, tab, "posts"); err != nil {
		return err
	}
	if err := sleepCtx(ctx, 2*time.Second); err != nil {
		return err
	}

	for range s.cfg.ScrollPasses {
		if err := tab.ScrollToBottom(ctx); err != nil {
			return err
		}
	}

	var items []struct {
		ContentHTML string   `json:"content_html"`
		PostedDate  string   `json:"posted_date"`
		PostURL     string   `json:"post_url"`
		MediaURLs   []string `json:"media_urls"`
	}
	if err := s.evalJSONArg(ctx, tab, postsScript, s.cfg.MaxPosts, &items); err != nil {
		return fmt.Errorf("scrape: posts: %w", err)
	}

	raw.Posts = make([]RawPost, 0, len(items))
	for i, it := range items {
		post := RawPost{
			ContentHTML: it.ContentHTML,
			PostedDate:  it.PostedDate,
			PostURL:     it.PostURL,
			MediaURLs:   it.MediaURLs,
			DetailOK:    true,
		}

		var detail struct {
			Likes    string `json:"likes"`
			Comments string `json:"comments"`
			Shares   string `json:"shares"`
			Items    []struct {
				AuthorName string `json:"author_name"`
				AuthorURL  string `json:"author_url"`
				Text       string `json:"text"`
			} `json:"items"`
		}
		itemCtx, cancel := context.WithTimeout(ctx, s.cfg.ItemBudget)
		err := s.evalJSONArg(itemCtx, tab, detailScript, i, &detail)
		cancel()
		switch {
		case err == nil:
			post.LikesText = detail.Likes
			post.CommentsText = detail.Comments
			post.SharesText = detail.Shares
			for _, c := range detail.Items {
				post.Comments = append(post.Comments, RawComment{
					AuthorName: c.AuthorName,
					AuthorURL:  c.AuthorURL,
					Text:       c.Text,
				})
			}
		case ctx.Err() != nil:
			// Whole-extraction budget gone, not just this item.
			return ctx.Err()
		default:
			// Item budget exceeded: keep the post, detail unknown.
			post.DetailOK = false
		}

		raw.Posts = append(raw.Posts, post)
	}

	raw.PostsOK = true
	return nil
}

func (s *Scraper) extractPeople(ctx context.Context, tab *browser.Tab, raw *RawPage) error {
	clicked, err := s.click(ctx, tab, "people")
	if err != nil {
		return err
	}
	if !clicked {
		return fmt.Errorf("scrape: people section not reachable")
	}
	if err := sleepCtx(ctx, 2*time.Second); err != nil {
		return err
	}

	var cards []struct {
		Name           string `json:"name"`
		ProfileURL     string `json:"profile_url"`
		ProfilePicture string `json:"profile_picture"`
		Title          string `json:"title"`
	}
	if err := s.evalJSONArg(ctx, tab, peopleScript, s.cfg.MaxPeople, &cards); err != nil {
		return fmt.Errorf("scrape: people: %w", err)
	}

	raw.People = make([]RawPerson, 0, len(cards))
	for _, c := range cards {
		if c.Name == "" {
			continue
		}
		raw.People = append(raw.People, RawPerson{
			Name:           c.Name,
			ProfileURL:     c.ProfileURL,
			ProfilePicture: c.ProfilePicture,
			Title:          c.Title,
		})
	}

	raw.PeopleOK = true
	return nil
}

func (s *Scraper) click(ctx context.Context, tab *browser.Tab, fragment string) (bool, error) {
	res, err := tab.Page.Context(ctx).Eval(clickScript, fragment)
	if err != nil {
		return false, fmt.Errorf("scrape: click %q: %w", fragment, err)
	}
	return res.Value.Bool(), nil
}

// evalJSON runs a script that returns JSON.stringify output and decodes it.
func (s *Scraper) evalJSON(ctx context.Context, tab *browser.Tab, script string, out any) error {
	res, err := tab.Page.Context(ctx).Eval(script)
	if err != nil {
		return err
	}
	// bodyTextLenScript returns a bare number rather than a JSON string.
	if n, ok := out.(*int); ok {
		*n = res.Value.Int()
		return nil
	}
	return json.Unmarshal([]byte(res.Value.Str()), out)
}

func (s *Scraper) evalJSONArg(ctx context.Context, tab *browser.Tab, script string, arg any, out any) error {
	res, err := tab.Page.Context(ctx).Eval(script, arg)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(res.Value.Str()), out)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
