// Package store provides the SQLite data access layer for the insights
// service: page profiles, their post windows, and people samples.
//
// The store receives an already-opened *sql.DB (see dbopen) so callers
// control pragmas and lifecycle. All timestamps persist as RFC 3339 UTC
// strings.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Store wraps the service database.
type Store struct {
	DB *sql.DB
}

// NewStore creates a Store from an already-opened database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

func jsonEncode(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func jsonDecodeStrings(s string) []string {
	out := []string{}
	if s == "" {
		return out
	}
	json.Unmarshal([]byte(s), &out)
	return out
}

func jsonDecodeComments(s string) []Comment {
	out := []Comment{}
	if s == "" {
		return out
	}
	json.Unmarshal([]byte(s), &out)
	return out
}

func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func decodeTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("store: parse time %q: %w", s, err)
	}
	return t, nil
}

// nullInt converts *int64 to the driver's NULL representation and back.
func nullInt(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func intPtr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
