package pages

import "github.com/pageintel/pageintel/pages/internal/store"

// Record types are defined in the store layer and re-exported here so
// callers never import internal packages.
type (
	Page    = store.Page
	Post    = store.Post
	Comment = store.Comment
	Person  = store.Person
)

// Schema is the SQLite schema for the insights store, re-exported for
// callers to apply with dbopen.WithSchema.
const Schema = store.Schema

// Section status values for posts_status / people_status /
// comments_status. "unavailable" means the section failed to extract; an
// empty section with status "ok" genuinely has no items.
const (
	StatusOK          = store.StatusOK
	StatusUnavailable = store.StatusUnavailable
)

// PageList is the paginated result of a filtered page listing.
type PageList struct {
	Pages      []Page `json:"pages"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalPages int    `json:"total_pages"`
}

// PostList is the paginated result of a page's post sub-listing.
type PostList struct {
	Posts      []Post `json:"posts"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalPages int    `json:"total_pages"`
}

// PersonList is the paginated result of a page's people sub-listing.
// The wire name stays "users" for compatibility with existing clients.
type PersonList struct {
	People     []Person `json:"users"`
	Total      int      `json:"total"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalPages int      `json:"total_pages"`
}

// Followers summarises a page's follower information. The platform does
// not expose the member list to scraping, only the count.
type Followers struct {
	PageID        string `json:"page_id"`
	FollowerCount *int64 `json:"follower_count"`
	Note          string `json:"note"`
}
