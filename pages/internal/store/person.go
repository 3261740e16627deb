package store

import (
	"context"
	"fmt"
)

// ListPeople returns one page of a page's people sample in capture order,
// plus the sample's total size.
func (s *Store) ListPeople(ctx context.Context, pageID string, limit, offset int) ([]Person, int, error) {
	var total int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM people WHERE page_id = ?`, pageID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("store: count people: %w", err)
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT page_id, user_id, name, profile_url, profile_picture, title
		FROM people WHERE page_id = ?
		ORDER BY seq ASC
		LIMIT ? OFFSET ?`, pageID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("store: list people: %w", err)
	}
	defer rows.Close()

	people := []Person{}
	for rows.Next() {
		var p Person
		err := rows.Scan(&p.PageID, &p.UserID, &p.Name, &p.ProfileURL,
			&p.ProfilePicture, &p.Title)
		if err != nil {
			return nil, 0, fmt.Errorf("store: scan person: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("store: list people: %w", err)
	}
	return people, total, nil
}
