package scrape

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	// WHAT: maps landed URL / title / body size onto blocked, not-found, or ok.
	// WHY: the service relies on this split to choose between 404 and 503.
	tests := []struct {
		name     string
		finalURL string
		title    string
		bodyLen  int
		want     error
	}{
		{
			name:     "normal company page",
			finalURL: "https://www.linkedin.com/company/acme/",
			title:    "Acme Corp | LinkedIn",
			bodyLen:  5000,
			want:     nil,
		},
		{
			name:     "authwall redirect",
			finalURL: "https://www.linkedin.com/authwall?trk=...",
			title:    "LinkedIn",
			bodyLen:  5000,
			want:     ErrBlocked,
		},
		{
			name:     "login redirect",
			finalURL: "https://www.linkedin.com/login?session_redirect=...",
			title:    "LinkedIn Login",
			bodyLen:  5000,
			want:     ErrBlocked,
		},
		{
			name:     "checkpoint challenge",
			finalURL: "https://www.linkedin.com/checkpoint/challenge/xyz",
			title:    "Security Verification",
			bodyLen:  5000,
			want:     ErrBlocked,
		},
		{
			name:     "sign-in title without redirect",
			finalURL: "https://www.linkedin.com/company/acme/",
			title:    "Sign In | LinkedIn",
			bodyLen:  5000,
			want:     ErrBlocked,
		},
		{
			name:     "page not found title",
			finalURL: "https://www.linkedin.com/company/no-such-page/",
			title:    "Page Not Found | LinkedIn",
			bodyLen:  5000,
			want:     ErrNotFound,
		},
		{
			name:     "unavailable redirect",
			finalURL: "https://www.linkedin.com/company/unavailable/",
			title:    "LinkedIn",
			bodyLen:  5000,
			want:     ErrNotFound,
		},
		{
			name:     "empty shell counts as soft block",
			finalURL: "https://www.linkedin.com/company/acme/",
			title:    "Acme Corp | LinkedIn",
			bodyLen:  50,
			want:     ErrBlocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.finalURL, tt.title, tt.bodyLen)
			if !errors.Is(got, tt.want) && got != tt.want {
				t.Errorf("classify() = %v, want %v", got, tt.want)
			}
		})
	}
}
