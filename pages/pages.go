// Package pages implements the company-page insights service: cache-first
// lookups backed by on-demand browser acquisition, a normalizing layer
// between the two, and a filterable listing API over the SQLite store.
package pages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pageintel/pageintel/idgen"
	"github.com/pageintel/pageintel/pages/internal/scrape"
	"github.com/pageintel/pageintel/pages/internal/store"
)

// Fetcher runs one extraction attempt. *scrape.Scraper is the production
// implementation; tests substitute fakes.
type Fetcher interface {
	Fetch(ctx context.Context, pageID string) (*scrape.RawPage, error)
}

// Service orchestrates lookups and acquisitions.
type Service struct {
	st      *store.Store
	fetcher Fetcher
	cfg     *Config
	logger  *slog.Logger
	flight  singleflight.Group
	now     func() time.Time
	newID   idgen.Generator
}

// ServiceOption customises Service construction.
type ServiceOption func(*Service)

// WithClock overrides the service clock (tests).
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// New creates a Service over an opened database (schema already applied)
// and a fetcher.
func New(db *sql.DB, fetcher Fetcher, cfg *Config, logger *slog.Logger, opts ...ServiceOption) *Service {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.defaults()
	if logger == nil {
		logger = slog.Default()
	}

	svc := &Service{
		st:      store.NewStore(db),
		fetcher: fetcher,
		cfg:     cfg,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   idgen.Prefixed("acq_", idgen.NanoID(12)),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

var pageIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

func validPageID(id string) error {
	if id == "" || len(id) > 256 || !pageIDPattern.MatchString(id) {
		return fmt.Errorf("%w: bad page id %q", ErrInvalidInput, id)
	}
	return nil
}

// Resolve returns the stored record for the identifier, acquiring it from
// the source only when the store has none. A stored record is returned
// as-is: staleness never triggers implicit re-acquisition.
func (s *Service) Resolve(ctx context.Context, pageID string) (*Page, error) {
	if err := validPageID(pageID); err != nil {
		return nil, err
	}

	page, err := s.st.GetPage(ctx, pageID)
	if err != nil {
		return nil, err
	}
	if page != nil {
		return page, nil
	}

	return s.acquire(ctx, pageID)
}

// Refresh unconditionally re-acquires the page and replaces its stored
// posts and people. ErrNotFound when the identifier resolves nowhere.
func (s *Service) Refresh(ctx context.Context, pageID string) (*Page, error) {
	if err := validPageID(pageID); err != nil {
		return nil, err
	}
	return s.acquire(ctx, pageID)
}

// acquire runs the single-flight acquisition. Concurrent callers for the
// same id attach to one in-flight attempt and all receive its outcome.
// The attempt itself runs under a budget-only context detached from the
// first caller's request context, so one caller going away cannot poison
// the others; each waiting caller still honours its own cancellation.
func (s *Service) acquire(ctx context.Context, pageID string) (*Page, error) {
	ch := s.flight.DoChan(pageID, func() (any, error) {
		budgetCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.AcquireBudget)
		defer cancel()
		return s.runAcquisition(budgetCtx, pageID)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Page), nil
	}
}

func (s *Service) runAcquisition(ctx context.Context, pageID string) (*Page, error) {
	start := s.now()
	log := s.logger.With("page_id", pageID, "acquisition_id", s.newID())

	raw, err := s.fetcher.Fetch(ctx, pageID)
	if err != nil {
		mapped := mapFetchError(err)
		log.Warn("acquisition failed", "error", err, "elapsed", s.now().Sub(start))
		return nil, mapped
	}

	page, posts, people := Normalize(raw)
	if err := s.st.SaveAcquisition(ctx, page, posts, people); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: store write cut off", ErrTimeout)
		}
		return nil, err
	}

	// Re-read so refreshes return the preserved first-seen scraped_at.
	stored, err := s.st.GetPage(ctx, pageID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("pages: page %s vanished after save", pageID)
	}

	log.Info("acquisition complete",
		"posts", len(posts), "people", len(people),
		"elapsed", s.now().Sub(start))
	return stored, nil
}

// mapFetchError converts scraper outcomes onto the public taxonomy.
func mapFetchError(err error) error {
	switch {
	case errors.Is(err, scrape.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, err)
	case errors.Is(err, scrape.ErrBlocked):
		return fmt.Errorf("%w: %s", ErrBlocked, err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s", ErrTimeout, err)
	default:
		return err
	}
}

// ListOptions selects and paginates the page listing.
type ListOptions struct {
	Name        string
	Industry    string
	FollowerMin *int64
	FollowerMax *int64
	Page        int
	PageSize    int
}

func (s *Service) checkPagination(page, pageSize int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = s.cfg.DefaultPageSize
	}
	if page < 1 {
		return 0, 0, fmt.Errorf("%w: page must be >= 1", ErrInvalidInput)
	}
	if pageSize < 1 || pageSize > s.cfg.MaxPageSize {
		return 0, 0, fmt.Errorf("%w: page_size must be 1..%d", ErrInvalidInput, s.cfg.MaxPageSize)
	}
	return page, pageSize, nil
}

func totalPages(total, pageSize int) int {
	if total == 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// ListPages returns a filtered, paginated page listing. Requests beyond
// the last page yield an empty item set with the true total.
func (s *Service) ListPages(ctx context.Context, opts ListOptions) (*PageList, error) {
	page, pageSize, err := s.checkPagination(opts.Page, opts.PageSize)
	if err != nil {
		return nil, err
	}
	if opts.FollowerMin != nil && *opts.FollowerMin < 0 {
		return nil, fmt.Errorf("%w: follower_count_min must be >= 0", ErrInvalidInput)
	}
	if opts.FollowerMax != nil && *opts.FollowerMax < 0 {
		return nil, fmt.Errorf("%w: follower_count_max must be >= 0", ErrInvalidInput)
	}

	items, total, err := s.st.ListPages(ctx, store.PageFilter{
		Name:        opts.Name,
		Industry:    opts.Industry,
		FollowerMin: opts.FollowerMin,
		FollowerMax: opts.FollowerMax,
	}, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	return &PageList{
		Pages:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// requirePage returns ErrNotFound when the parent page is absent from the
// store. Sub-listings never trigger acquisition.
func (s *Service) requirePage(ctx context.Context, pageID string) (*Page, error) {
	if err := validPageID(pageID); err != nil {
		return nil, err
	}
	page, err := s.st.GetPage(ctx, pageID)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, fmt.Errorf("%w: page %s", ErrNotFound, pageID)
	}
	return page, nil
}

// ListPosts returns one page of the stored post window for a page.
func (s *Service) ListPosts(ctx context.Context, pageID string, pageNum, pageSize int) (*PostList, error) {
	if _, err := s.requirePage(ctx, pageID); err != nil {
		return nil, err
	}
	pageNum, pageSize, err := s.checkPagination(pageNum, pageSize)
	if err != nil {
		return nil, err
	}

	items, total, err := s.st.ListPosts(ctx, pageID, pageSize, (pageNum-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return &PostList{
		Posts:      items,
		Total:      total,
		Page:       pageNum,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// ListPeople returns one page of the stored people sample for a page.
func (s *Service) ListPeople(ctx context.Context, pageID string, pageNum, pageSize int) (*PersonList, error) {
	if _, err := s.requirePage(ctx, pageID); err != nil {
		return nil, err
	}
	pageNum, pageSize, err := s.checkPagination(pageNum, pageSize)
	if err != nil {
		return nil, err
	}

	items, total, err := s.st.ListPeople(ctx, pageID, pageSize, (pageNum-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return &PersonList{
		People:     items,
		Total:      total,
		Page:       pageNum,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// Followers returns the follower summary for a stored page.
func (s *Service) Followers(ctx context.Context, pageID string) (*Followers, error) {
	page, err := s.requirePage(ctx, pageID)
	if err != nil {
		return nil, err
	}
	return &Followers{
		PageID:        page.PageID,
		FollowerCount: page.FollowerCount,
		Note:          "Full follower list requires platform API access",
	}, nil
}
