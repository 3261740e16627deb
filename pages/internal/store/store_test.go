package store_test

import (
	"context"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pageintel/pageintel/dbopen"
	"github.com/pageintel/pageintel/pages/internal/store"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	db := dbopen.OpenMemory(t, dbopen.WithSchema(store.Schema))
	return store.NewStore(db)
}

func i64(v int64) *int64 { return &v }

func samplePage(id string, followers *int64) *store.Page {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &store.Page{
		PageID:        id,
		PageName:      "Acme Corp",
		PageURL:       "https://www.linkedin.com/company/" + id + "/",
		LinkedInID:    id,
		Industry:      "Technology, Information and Internet",
		Specialties:   []string{"Cloud Computing", "AI"},
		FollowerCount: followers,
		PostsStatus:   store.StatusOK,
		PeopleStatus:  store.StatusOK,
		ScrapedAt:     now,
		UpdatedAt:     now,
	}
}

func TestGetPage_Missing(t *testing.T) {
	s := newStore(t)
	got, err := s.GetPage(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if got != nil {
		t.Fatalf("GetPage = %+v, want nil for missing page", got)
	}
}

func TestSaveAcquisition_Roundtrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	page := samplePage("acme", i64(12500))
	posts := []store.Post{
		{
			PostID:         "urn:li:activity:1",
			PageID:         "acme",
			Content:        "hello",
			PostedDate:     "2024-01-05",
			Likes:          i64(42),
			CommentsCount:  i64(3),
			Shares:         nil,
			PostURL:        "https://www.linkedin.com/feed/update/urn:li:activity:1/",
			MediaURLs:      []string{"https://img.example/a.png"},
			Comments:       []store.Comment{{AuthorName: "Ada", Text: "nice"}},
			CommentsStatus: store.StatusOK,
		},
	}
	people := []store.Person{
		{UserID: "ada", PageID: "acme", Name: "Ada Lovelace", Title: "Engineer"},
	}

	if err := s.SaveAcquisition(ctx, page, posts, people); err != nil {
		t.Fatalf("SaveAcquisition: %v", err)
	}

	got, err := s.GetPage(ctx, "acme")
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if got == nil {
		t.Fatal("GetPage = nil after save")
	}
	if got.PageName != "Acme Corp" {
		t.Errorf("PageName = %q", got.PageName)
	}
	if got.FollowerCount == nil || *got.FollowerCount != 12500 {
		t.Errorf("FollowerCount = %v, want 12500", got.FollowerCount)
	}
	if len(got.Specialties) != 2 || got.Specialties[0] != "Cloud Computing" {
		t.Errorf("Specialties = %v", got.Specialties)
	}
	if !got.ScrapedAt.Equal(page.ScrapedAt) {
		t.Errorf("ScrapedAt = %v, want %v", got.ScrapedAt, page.ScrapedAt)
	}

	gotPosts, total, err := s.ListPosts(ctx, "acme", 10, 0)
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if total != 1 || len(gotPosts) != 1 {
		t.Fatalf("ListPosts total=%d len=%d, want 1/1", total, len(gotPosts))
	}
	p := gotPosts[0]
	if p.Likes == nil || *p.Likes != 42 {
		t.Errorf("Likes = %v, want 42", p.Likes)
	}
	if p.Shares != nil {
		t.Errorf("Shares = %v, want nil (unknown)", *p.Shares)
	}
	if len(p.Comments) != 1 || p.Comments[0].AuthorName != "Ada" {
		t.Errorf("Comments = %v", p.Comments)
	}
	if len(p.MediaURLs) != 1 {
		t.Errorf("MediaURLs = %v", p.MediaURLs)
	}

	gotPeople, total, err := s.ListPeople(ctx, "acme", 10, 0)
	if err != nil {
		t.Fatalf("ListPeople: %v", err)
	}
	if total != 1 || len(gotPeople) != 1 || gotPeople[0].Name != "Ada Lovelace" {
		t.Fatalf("ListPeople = %v (total %d)", gotPeople, total)
	}
}

func TestSaveAcquisition_RefreshPreservesScrapedAt(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	first := samplePage("acme", i64(100))
	if err := s.SaveAcquisition(ctx, first, []store.Post{
		{PostID: "p1", PageID: "acme", CommentsStatus: store.StatusOK, MediaURLs: []string{}, Comments: []store.Comment{}},
		{PostID: "p2", PageID: "acme", CommentsStatus: store.StatusOK, MediaURLs: []string{}, Comments: []store.Comment{}},
	}, nil); err != nil {
		t.Fatalf("first save: %v", err)
	}

	second := samplePage("acme", i64(200))
	second.PageName = "Acme Corporation"
	second.ScrapedAt = first.ScrapedAt.Add(time.Hour)
	second.UpdatedAt = first.UpdatedAt.Add(time.Hour)
	if err := s.SaveAcquisition(ctx, second, []store.Post{
		{PostID: "p3", PageID: "acme", CommentsStatus: store.StatusOK, MediaURLs: []string{}, Comments: []store.Comment{}},
	}, nil); err != nil {
		t.Fatalf("refresh save: %v", err)
	}

	got, err := s.GetPage(ctx, "acme")
	if err != nil {
		t.Fatal(err)
	}
	if !got.ScrapedAt.Equal(first.ScrapedAt) {
		t.Errorf("ScrapedAt = %v, want original %v preserved across refresh",
			got.ScrapedAt, first.ScrapedAt)
	}
	if !got.UpdatedAt.Equal(second.UpdatedAt) {
		t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, second.UpdatedAt)
	}
	if got.PageName != "Acme Corporation" {
		t.Errorf("PageName = %q, want refreshed value", got.PageName)
	}
	if *got.FollowerCount != 200 {
		t.Errorf("FollowerCount = %d, want 200", *got.FollowerCount)
	}

	// Post window is replaced wholesale, not merged.
	posts, total, err := s.ListPosts(ctx, "acme", 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(posts) != 1 || posts[0].PostID != "p3" {
		t.Errorf("posts after refresh = %v (total %d), want only p3", posts, total)
	}
}

func TestListPosts_Pagination(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	posts := make([]store.Post, 5)
	for i := range posts {
		posts[i] = store.Post{
			PostID:         string(rune('a' + i)),
			PageID:         "acme",
			CommentsStatus: store.StatusOK,
			MediaURLs:      []string{},
			Comments:       []store.Comment{},
		}
	}
	if err := s.SaveAcquisition(ctx, samplePage("acme", nil), posts, nil); err != nil {
		t.Fatal(err)
	}

	got, total, err := s.ListPosts(ctx, "acme", 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(got) != 2 || got[0].PostID != "c" || got[1].PostID != "d" {
		t.Errorf("page 2 = %v, want c,d (capture order)", got)
	}

	// Beyond the last page: empty items, correct total.
	got, total, err = s.ListPosts(ctx, "acme", 2, 10)
	if err != nil {
		t.Fatal(err)
	}
	if total != 5 || len(got) != 0 {
		t.Errorf("beyond range: len=%d total=%d, want 0/5", len(got), total)
	}
}
