package pages

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
)

// demoTitles and demoNames back the seeded people sample.
var demoTitles = []string{
	"Software Engineer", "Product Manager", "Data Scientist",
	"Marketing Manager", "Sales Director",
}

var demoNames = []string{
	"John Smith", "Sarah Johnson", "Michael Chen", "Emily Davis",
	"David Wilson", "Lisa Anderson", "James Brown", "Maria Garcia",
}

// SeedDemo creates a deterministic demo corpus for the identifier: one
// page, 15 posts, 8 people. Counts derive from a hash of the id so the
// same id always seeds the same data. Returns created=false without
// touching anything when the page already exists.
func (s *Service) SeedDemo(ctx context.Context, pageID string) (*Page, bool, error) {
	if err := validPageID(pageID); err != nil {
		return nil, false, err
	}

	existing, err := s.st.GetPage(ctx, pageID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	h := fnv.New32a()
	h.Write([]byte(pageID))
	seed := int64(h.Sum32())

	now := s.now()
	title := capitalize(pageID)
	followers := 50_000 + seed%450_000
	employees := 1_000 + seed%9_000

	page := &Page{
		PageID:         pageID,
		PageName:       title + " Corporation",
		PageURL:        fmt.Sprintf("%s/company/%s/", s.cfg.BaseURL, pageID),
		LinkedInID:     pageID,
		ProfilePicture: fmt.Sprintf("https://media.licdn.com/dms/image/v2/%s/company-logo_200_200/0/1234567890000", pageID),
		Description: fmt.Sprintf("Leading technology company specializing in innovative solutions. "+
			"%s is transforming the industry with cutting-edge products and services.", title),
		Website:       fmt.Sprintf("https://www.%s.com", strings.ToLower(pageID)),
		Industry:      "Technology, Information and Internet",
		CompanySize:   "10,001+ employees",
		Headquarters:  "San Francisco, CA",
		Founded:       "2010",
		Specialties:   []string{"Cloud Computing", "Artificial Intelligence", "Software Development", "Data Analytics"},
		FollowerCount: &followers,
		EmployeeCount: &employees,
		PostsStatus:   StatusOK,
		PeopleStatus:  StatusOK,
		ScrapedAt:     now,
		UpdatedAt:     now,
	}

	posts := make([]Post, 0, 15)
	for i := range 15 {
		likes := 100 + (seed+int64(i)*37)%4_900
		comments := 10 + (seed+int64(i)*53)%490
		shares := 5 + (seed+int64(i)*71)%195
		posts = append(posts, Post{
			PostID: fmt.Sprintf("%s_post_%d", pageID, i),
			PageID: pageID,
			Content: fmt.Sprintf("Exciting update #%d from %s! We're proud to announce our "+
				"latest innovations in technology and continue to drive excellence in our industry.", i+1, title),
			PostedDate:     fmt.Sprintf("%d days ago", 1+(seed+int64(i))%30),
			Likes:          &likes,
			CommentsCount:  &comments,
			Shares:         &shares,
			PostURL:        fmt.Sprintf("https://www.linkedin.com/feed/update/urn:li:activity:123456%d/", i),
			MediaURLs:      []string{},
			Comments:       []Comment{},
			CommentsStatus: StatusOK,
		})
	}

	people := make([]Person, 0, len(demoNames))
	for i, name := range demoNames {
		people = append(people, Person{
			UserID:         fmt.Sprintf("%s_user_%d", pageID, i),
			PageID:         pageID,
			Name:           name,
			ProfileURL:     fmt.Sprintf("https://www.linkedin.com/in/%s/", strings.ReplaceAll(strings.ToLower(name), " ", "-")),
			ProfilePicture: fmt.Sprintf("https://media.licdn.com/dms/image/v2/profile-%d/photo.jpg", i),
			Title:          demoTitles[i%len(demoTitles)],
		})
	}

	if err := s.st.SaveAcquisition(ctx, page, posts, people); err != nil {
		return nil, false, err
	}
	return page, true, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
