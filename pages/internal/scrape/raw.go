// Package scrape drives a headless browser session against a LinkedIn
// company page and returns the raw extracted data. Values come back as
// the page displays them (abbreviated counts, relative dates); the caller
// normalizes them.
package scrape

import (
	"errors"
	"time"
)

// Sentinel errors for attempt outcomes. The service layer maps these onto
// its public error taxonomy.
var (
	// ErrBlocked means the platform denied access: authwall, login
	// redirect, checkpoint, or a page that stayed empty after load.
	ErrBlocked = errors.New("scrape: access blocked")

	// ErrNotFound means the page identifier does not resolve to a
	// company page.
	ErrNotFound = errors.New("scrape: page not found")
)

// RawPage is the unnormalized result of one extraction attempt.
// String fields hold display text verbatim; empty string means the
// element was absent.
type RawPage struct {
	ID             string
	URL            string
	FinalURL       string
	Name           string
	ProfilePicture string
	Description    string
	Website        string
	Industry       string
	CompanySize    string
	Headquarters   string
	Founded        string
	Specialties    string
	FollowersText  string

	Posts  []RawPost
	People []RawPerson

	// PostsOK / PeopleOK are false when the whole section failed to
	// extract. The profile above is still valid in that case.
	PostsOK  bool
	PeopleOK bool

	FetchedAt time.Time
}

// RawPost holds one feed item as displayed. Engagement texts are the raw
// counter strings ("1.2K", "12 comments"). DetailOK is false when the
// per-item detail fetch timed out: the post itself is kept but its
// counters and comment set are unknown.
type RawPost struct {
	ContentHTML  string
	PostedDate   string
	PostURL      string
	MediaURLs    []string
	LikesText    string
	CommentsText string
	SharesText   string
	Comments     []RawComment
	DetailOK     bool
}

// RawComment is one visible comment under a post.
type RawComment struct {
	AuthorName string
	AuthorURL  string
	Text       string
}

// RawPerson holds one profile card from the people section.
type RawPerson struct {
	Name           string
	ProfileURL     string
	ProfilePicture string
	Title          string
}
