package store

import "time"

// Section status values for posts_status / people_status / comments_status.
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
)

// Page is a normalized company page record. Counter fields use *int64:
// nil means the source did not expose the value, which is distinct from
// an actual zero and maps to NULL in the database.
type Page struct {
	PageID         string    `json:"page_id"`
	PageName       string    `json:"page_name,omitempty"`
	PageURL        string    `json:"page_url"`
	LinkedInID     string    `json:"linkedin_id,omitempty"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	Description    string    `json:"description,omitempty"`
	Website        string    `json:"website,omitempty"`
	Industry       string    `json:"industry,omitempty"`
	CompanySize    string    `json:"company_size,omitempty"`
	Headquarters   string    `json:"headquarters,omitempty"`
	Founded        string    `json:"founded,omitempty"`
	Specialties    []string  `json:"specialties"`
	FollowerCount  *int64    `json:"follower_count"`
	EmployeeCount  *int64    `json:"employee_count"`
	PostsStatus    string    `json:"posts_status"`
	PeopleStatus   string    `json:"people_status"`
	ScrapedAt      time.Time `json:"scraped_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Post is a normalized feed item. CommentsStatus is "unavailable" when
// the per-item detail fetch timed out: the post stands but its counters
// and comments are unknown.
type Post struct {
	PostID         string    `json:"post_id"`
	PageID         string    `json:"page_id"`
	Content        string    `json:"content,omitempty"`
	PostedDate     string    `json:"posted_date,omitempty"`
	Likes          *int64    `json:"likes"`
	CommentsCount  *int64    `json:"comments_count"`
	Shares         *int64    `json:"shares"`
	PostURL        string    `json:"post_url,omitempty"`
	MediaURLs      []string  `json:"media_urls"`
	Comments       []Comment `json:"comments"`
	CommentsStatus string    `json:"comments_status"`
}

// Comment is one visible comment under a post, in display order.
type Comment struct {
	AuthorName string `json:"author_name,omitempty"`
	AuthorURL  string `json:"author_url,omitempty"`
	Text       string `json:"text,omitempty"`
}

// Person is one entry from a page's people section.
type Person struct {
	UserID         string `json:"user_id"`
	PageID         string `json:"page_id"`
	Name           string `json:"name"`
	ProfileURL     string `json:"profile_url,omitempty"`
	ProfilePicture string `json:"profile_picture,omitempty"`
	Title          string `json:"title,omitempty"`
}
