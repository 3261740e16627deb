package pages

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"

	"github.com/pageintel/pageintel/pages/internal/scrape"
)

// maxContentLen caps normalized post content in runes.
const maxContentLen = 500

// countPattern matches the first numeric token in a display counter:
// "12,345 followers", "1.2K", "10,001+ employees", "3M reactions".
var countPattern = regexp.MustCompile(`(\d[\d,]*(?:\.\d+)?)\s*([KkMmBb])?`)

// ParseCount converts a display counter into a count. It returns nil when
// the text carries no number (empty, "—", "N/A"): unknown is not zero.
// Abbreviated suffixes expand: "12.5K" → 12500, "3M" → 3000000.
func ParseCount(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "—" || s == "-" || strings.EqualFold(s, "n/a") {
		return nil
	}

	m := countPattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}

	digits := strings.ReplaceAll(m[1], ",", "")
	f, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return nil
	}

	switch strings.ToUpper(m[2]) {
	case "K":
		f *= 1_000
	case "M":
		f *= 1_000_000
	case "B":
		f *= 1_000_000_000
	}

	n := int64(f)
	return &n
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"01/02/2006",
}

// ParseDate canonicalises a date string to "2006-01-02" when it matches a
// recognised absolute layout. Relative forms ("3d", "2 weeks ago") and
// anything unrecognised pass through verbatim so no information is lost.
func ParseDate(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

// ContentText converts a captured HTML fragment into markdown text,
// falling back to a plain-text flattening when conversion fails. Output
// is trimmed and capped at maxContentLen runes.
func ContentText(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}

	text, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		text = flattenHTML(fragment)
	}

	text = strings.TrimSpace(text)
	if runes := []rune(text); len(runes) > maxContentLen {
		text = string(runes[:maxContentLen])
	}
	return text
}

// flattenHTML extracts the text nodes of an HTML fragment in document
// order, joined with single spaces.
func flattenHTML(fragment string) string {
	node, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}

	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)
	return strings.Join(parts, " ")
}

var activityURN = regexp.MustCompile(`urn:li:activity:\d+`)

// postID derives a stable identifier for a post: the activity URN when
// the permalink carries one, the permalink itself otherwise, and a
// positional id as last resort.
func postID(pageID, postURL string, idx int) string {
	if urn := activityURN.FindString(postURL); urn != "" {
		return urn
	}
	if postURL != "" {
		return postURL
	}
	return fmt.Sprintf("%s_post_%d", pageID, idx)
}

var profileSlug = regexp.MustCompile(`/in/([^/?#]+)`)

// personID derives a stable identifier for a person from the profile URL
// slug, with a positional fallback.
func personID(pageID, profileURL string, idx int) string {
	if m := profileSlug.FindStringSubmatch(profileURL); m != nil {
		return m[1]
	}
	if profileURL != "" {
		return profileURL
	}
	return fmt.Sprintf("%s_user_%d", pageID, idx)
}

func sectionStatus(ok bool) string {
	if ok {
		return StatusOK
	}
	return StatusUnavailable
}

// Normalize converts a raw extraction into store-ready records. It is
// total: any RawPage yields a valid Page, with unknown counters as nil
// and duplicate posts/people collapsed on their natural ids (first
// occurrence wins).
func Normalize(raw *scrape.RawPage) (*Page, []Post, []Person) {
	page := &Page{
		PageID:         raw.ID,
		PageName:       raw.Name,
		PageURL:        raw.URL,
		LinkedInID:     raw.ID,
		ProfilePicture: raw.ProfilePicture,
		Description:    raw.Description,
		Website:        raw.Website,
		Industry:       raw.Industry,
		CompanySize:    raw.CompanySize,
		Headquarters:   raw.Headquarters,
		Founded:        strings.TrimSpace(raw.Founded),
		Specialties:    splitSpecialties(raw.Specialties),
		FollowerCount:  ParseCount(raw.FollowersText),
		EmployeeCount:  ParseCount(raw.CompanySize),
		PostsStatus:    sectionStatus(raw.PostsOK),
		PeopleStatus:   sectionStatus(raw.PeopleOK),
		ScrapedAt:      raw.FetchedAt,
		UpdatedAt:      raw.FetchedAt,
	}

	posts := make([]Post, 0, len(raw.Posts))
	seenPosts := make(map[string]struct{}, len(raw.Posts))
	for i, rp := range raw.Posts {
		id := postID(raw.ID, rp.PostURL, i)
		if _, dup := seenPosts[id]; dup {
			continue
		}
		seenPosts[id] = struct{}{}

		post := Post{
			PostID:         id,
			PageID:         raw.ID,
			Content:        ContentText(rp.ContentHTML),
			PostedDate:     ParseDate(rp.PostedDate),
			PostURL:        rp.PostURL,
			MediaURLs:      dedupStrings(rp.MediaURLs),
			Comments:       []Comment{},
			CommentsStatus: StatusUnavailable,
		}
		if rp.DetailOK {
			post.Likes = ParseCount(rp.LikesText)
			post.CommentsCount = ParseCount(rp.CommentsText)
			post.Shares = ParseCount(rp.SharesText)
			post.CommentsStatus = StatusOK
			for _, c := range rp.Comments {
				post.Comments = append(post.Comments, Comment{
					AuthorName: c.AuthorName,
					AuthorURL:  c.AuthorURL,
					Text:       c.Text,
				})
			}
		}
		posts = append(posts, post)
	}

	people := make([]Person, 0, len(raw.People))
	seenPeople := make(map[string]struct{}, len(raw.People))
	for i, rp := range raw.People {
		id := personID(raw.ID, rp.ProfileURL, i)
		if _, dup := seenPeople[id]; dup {
			continue
		}
		seenPeople[id] = struct{}{}

		people = append(people, Person{
			UserID:         id,
			PageID:         raw.ID,
			Name:           rp.Name,
			ProfileURL:     rp.ProfileURL,
			ProfilePicture: rp.ProfilePicture,
			Title:          rp.Title,
		})
	}

	return page, posts, people
}

func splitSpecialties(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func dedupStrings(in []string) []string {
	out := []string{}
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
