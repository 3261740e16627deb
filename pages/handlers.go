package pages

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pageintel/pageintel/shield"
)

// Routes returns the service's API router, mounted by the caller under
// its prefix of choice (conventionally /api).
func (s *Service) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", s.handleBanner)
	r.Get("/pages", s.handleListPages)
	r.Get("/pages/{pageID}", s.handleGetPage)
	r.Get("/pages/{pageID}/posts", s.handleListPosts)
	r.Get("/pages/{pageID}/employees", s.handleListPeople)
	r.Get("/pages/{pageID}/followers", s.handleFollowers)
	r.Post("/pages/{pageID}/refresh", s.handleRefresh)
	r.Post("/pages/demo/{pageID}", s.handleSeedDemo)
	return r
}

func (s *Service) handleBanner(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Page Insights Microservice API",
		"version": "1.0.0",
	})
}

func (s *Service) handleGetPage(w http.ResponseWriter, r *http.Request) {
	page, err := s.Resolve(r.Context(), chi.URLParam(r, "pageID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Service) handleRefresh(w http.ResponseWriter, r *http.Request) {
	page, err := s.Refresh(r.Context(), chi.URLParam(r, "pageID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Service) handleListPages(w http.ResponseWriter, r *http.Request) {
	opts := ListOptions{
		Name:     r.URL.Query().Get("name"),
		Industry: r.URL.Query().Get("industry"),
	}

	var err error
	if opts.Page, err = queryInt(r, "page", 1); err != nil {
		s.writeError(w, r, err)
		return
	}
	if opts.PageSize, err = queryInt(r, "page_size", s.cfg.DefaultPageSize); err != nil {
		s.writeError(w, r, err)
		return
	}
	if opts.FollowerMin, err = queryInt64Ptr(r, "follower_count_min"); err != nil {
		s.writeError(w, r, err)
		return
	}
	if opts.FollowerMax, err = queryInt64Ptr(r, "follower_count_max"); err != nil {
		s.writeError(w, r, err)
		return
	}

	list, err := s.ListPages(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Service) handleListPosts(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := paginationParams(r, 15)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	list, err := s.ListPosts(r.Context(), chi.URLParam(r, "pageID"), page, pageSize)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Service) handleListPeople(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := paginationParams(r, 20)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	list, err := s.ListPeople(r.Context(), chi.URLParam(r, "pageID"), page, pageSize)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Service) handleFollowers(w http.ResponseWriter, r *http.Request) {
	followers, err := s.Followers(r.Context(), chi.URLParam(r, "pageID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, followers)
}

func (s *Service) handleSeedDemo(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "pageID")
	page, created, err := s.SeedDemo(r.Context(), pageID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !created {
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Page already exists",
			"page_id": page.PageID,
		})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "Demo page created successfully",
		"page_id": page.PageID,
		"note":    "This is mock data for demonstration purposes",
	})
}

func paginationParams(r *http.Request, defaultSize int) (int, int, error) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		return 0, 0, err
	}
	pageSize, err := queryInt(r, "page_size", defaultSize)
	if err != nil {
		return 0, 0, err
	}
	return page, pageSize, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errInvalidParam(name)
	}
	return n, nil
}

func queryInt64Ptr(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, errInvalidParam(name)
	}
	return &n, nil
}

func errInvalidParam(name string) error {
	return &paramError{name: name}
}

type paramError struct{ name string }

func (e *paramError) Error() string { return "pages: invalid parameter " + e.name }
func (e *paramError) Unwrap() error { return ErrInvalidInput }

// errorStatus maps the service taxonomy onto HTTP. Every error body
// carries error_kind so clients can branch without parsing messages.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, ErrBlocked):
		return http.StatusServiceUnavailable, "blocked"
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func (s *Service) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, kind := errorStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		shield.GetLogger(r.Context()).Error("request failed", "error", err)
		msg = "internal error"
	}
	writeJSON(w, status, map[string]string{
		"error":      msg,
		"error_kind": kind,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
