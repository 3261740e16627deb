package store

import (
	"context"
	"fmt"
	"strings"
)

// PageFilter selects pages for listing. All set fields combine with AND.
// Name and Industry match as case-insensitive substrings. Follower bounds
// are inclusive and only ever match pages whose follower count is known:
// NULL counters fall outside every range.
type PageFilter struct {
	Name        string
	Industry    string
	FollowerMin *int64
	FollowerMax *int64
}

// ListPages returns one page of the filtered listing plus the total match
// count. Ordering is newest acquisition first with page_id as tiebreaker,
// so the listing is stable across identical snapshots.
func (s *Store) ListPages(ctx context.Context, f PageFilter, limit, offset int) ([]Page, int, error) {
	where, args := buildPageFilter(f)

	var total int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pages`+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("store: count pages: %w", err)
	}

	query := `SELECT ` + pageColumns + ` FROM pages` + where +
		` ORDER BY scraped_at DESC, page_id ASC LIMIT ? OFFSET ?`
	rows, err := s.DB.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("store: list pages: %w", err)
	}
	defer rows.Close()

	out := []Page{}
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("store: list pages: %w", err)
	}
	return out, total, nil
}

// buildPageFilter renders the WHERE clause. Substring matching uses
// instr(lower(col), lower(?)) rather than LIKE so user input needs no
// wildcard escaping.
func buildPageFilter(f PageFilter) (string, []any) {
	var conds []string
	var args []any

	if f.Name != "" {
		conds = append(conds, "instr(lower(page_name), lower(?)) > 0")
		args = append(args, f.Name)
	}
	if f.Industry != "" {
		conds = append(conds, "instr(lower(industry), lower(?)) > 0")
		args = append(args, f.Industry)
	}
	if f.FollowerMin != nil {
		conds = append(conds, "follower_count IS NOT NULL AND follower_count >= ?")
		args = append(args, *f.FollowerMin)
	}
	if f.FollowerMax != nil {
		conds = append(conds, "follower_count IS NOT NULL AND follower_count <= ?")
		args = append(args, *f.FollowerMax)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
