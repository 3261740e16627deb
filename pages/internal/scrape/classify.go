package scrape

import "strings"

// minBodyText is the body text length below which a loaded page counts as
// a soft block (the platform served an empty shell instead of content).
const minBodyText = 200

// classify inspects the landed URL, document title, and body text length
// and decides whether the attempt was blocked or hit a missing page.
// Returns nil when the page looks like a real company profile.
func classify(finalURL, title string, bodyTextLen int) error {
	u := strings.ToLower(finalURL)
	t := strings.ToLower(title)

	switch {
	case strings.Contains(u, "authwall"),
		strings.Contains(u, "/login"),
		strings.Contains(u, "/checkpoint"),
		strings.Contains(u, "/uas/"):
		return ErrBlocked
	}

	switch {
	case strings.Contains(t, "sign in"),
		strings.Contains(t, "sign up"),
		strings.Contains(t, "join linkedin"),
		strings.Contains(t, "security verification"):
		return ErrBlocked
	}

	switch {
	case strings.Contains(t, "page not found"),
		strings.Contains(t, "not found"),
		strings.Contains(u, "/company/unavailable"):
		return ErrNotFound
	}

	if bodyTextLen < minBodyText {
		return ErrBlocked
	}

	return nil
}
