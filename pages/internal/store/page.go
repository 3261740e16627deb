package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pageintel/pageintel/dbopen"
)

const pageColumns = `page_id, page_name, page_url, linkedin_id, profile_picture,
	description, website, industry, company_size, headquarters, founded,
	specialties_json, follower_count, employee_count, posts_status,
	people_status, scraped_at, updated_at`

// SaveAcquisition persists one acquisition atomically: the page profile is
// upserted and the post window and people sample are replaced wholesale.
// On refresh, scraped_at keeps its original value while updated_at moves;
// concurrent readers see either the old snapshot or the new one, never a
// mix.
func (s *Store) SaveAcquisition(ctx context.Context, page *Page, posts []Post, people []Person) error {
	return dbopen.RunTx(ctx, s.DB, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO pages (`+pageColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(page_id) DO UPDATE SET
				page_name        = excluded.page_name,
				page_url         = excluded.page_url,
				linkedin_id      = excluded.linkedin_id,
				profile_picture  = excluded.profile_picture,
				description      = excluded.description,
				website          = excluded.website,
				industry         = excluded.industry,
				company_size     = excluded.company_size,
				headquarters     = excluded.headquarters,
				founded          = excluded.founded,
				specialties_json = excluded.specialties_json,
				follower_count   = excluded.follower_count,
				employee_count   = excluded.employee_count,
				posts_status     = excluded.posts_status,
				people_status    = excluded.people_status,
				updated_at       = excluded.updated_at`,
			page.PageID, page.PageName, page.PageURL, page.LinkedInID,
			page.ProfilePicture, page.Description, page.Website, page.Industry,
			page.CompanySize, page.Headquarters, page.Founded,
			jsonEncode(page.Specialties),
			nullInt(page.FollowerCount), nullInt(page.EmployeeCount),
			page.PostsStatus, page.PeopleStatus,
			encodeTime(page.ScrapedAt), encodeTime(page.UpdatedAt))
		if err != nil {
			return fmt.Errorf("store: upsert page: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE page_id = ?`, page.PageID); err != nil {
			return fmt.Errorf("store: clear posts: %w", err)
		}
		for i, p := range posts {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO posts (page_id, post_id, seq, content, posted_date,
					likes, comments_count, shares, post_url, media_urls_json,
					comments_json, comments_status)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				page.PageID, p.PostID, i, p.Content, p.PostedDate,
				nullInt(p.Likes), nullInt(p.CommentsCount), nullInt(p.Shares),
				p.PostURL, jsonEncode(p.MediaURLs), jsonEncode(p.Comments),
				p.CommentsStatus)
			if err != nil {
				return fmt.Errorf("store: insert post %s: %w", p.PostID, err)
			}
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM people WHERE page_id = ?`, page.PageID); err != nil {
			return fmt.Errorf("store: clear people: %w", err)
		}
		for i, p := range people {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO people (page_id, user_id, seq, name, profile_url,
					profile_picture, title)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				page.PageID, p.UserID, i, p.Name, p.ProfileURL,
				p.ProfilePicture, p.Title)
			if err != nil {
				return fmt.Errorf("store: insert person %s: %w", p.UserID, err)
			}
		}

		return nil
	})
}

// GetPage returns the page record, or (nil, nil) when absent.
func (s *Store) GetPage(ctx context.Context, pageID string) (*Page, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE page_id = ?`, pageID)
	return scanPage(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPage(row rowScanner) (*Page, error) {
	var p Page
	var specialties, scrapedAt, updatedAt string
	var followers, employees sql.NullInt64

	err := row.Scan(&p.PageID, &p.PageName, &p.PageURL, &p.LinkedInID,
		&p.ProfilePicture, &p.Description, &p.Website, &p.Industry,
		&p.CompanySize, &p.Headquarters, &p.Founded,
		&specialties, &followers, &employees,
		&p.PostsStatus, &p.PeopleStatus, &scrapedAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: scan page: %w", err)
	}

	p.Specialties = jsonDecodeStrings(specialties)
	p.FollowerCount = intPtr(followers)
	p.EmployeeCount = intPtr(employees)
	if p.ScrapedAt, err = decodeTime(scrapedAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
