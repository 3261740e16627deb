package store

import (
	"context"
	"database/sql"
	"fmt"
)

// ListPosts returns one page of a page's post window in capture order,
// plus the window's total size. The caller must have verified the parent
// page exists.
func (s *Store) ListPosts(ctx context.Context, pageID string, limit, offset int) ([]Post, int, error) {
	var total int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM posts WHERE page_id = ?`, pageID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("store: count posts: %w", err)
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT page_id, post_id, content, posted_date, likes, comments_count,
			shares, post_url, media_urls_json, comments_json, comments_status
		FROM posts WHERE page_id = ?
		ORDER BY seq ASC
		LIMIT ? OFFSET ?`, pageID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("store: list posts: %w", err)
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		var p Post
		var media, comments string
		var likes, commentCount, shares sql.NullInt64
		err := rows.Scan(&p.PageID, &p.PostID, &p.Content, &p.PostedDate,
			&likes, &commentCount, &shares, &p.PostURL, &media, &comments,
			&p.CommentsStatus)
		if err != nil {
			return nil, 0, fmt.Errorf("store: scan post: %w", err)
		}
		p.Likes = intPtr(likes)
		p.CommentsCount = intPtr(commentCount)
		p.Shares = intPtr(shares)
		p.MediaURLs = jsonDecodeStrings(media)
		p.Comments = jsonDecodeComments(comments)
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("store: list posts: %w", err)
	}
	return posts, total, nil
}
