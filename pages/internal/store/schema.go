package store

// Schema is the SQLite schema for the insights store. Apply it with
// dbopen.WithSchema(store.Schema).
//
// Counter columns are nullable on purpose: NULL means the source never
// exposed the value. JSON columns hold ordered structured data
// (specialties, media URLs, comments).
const Schema = `
CREATE TABLE IF NOT EXISTS pages (
	page_id          TEXT PRIMARY KEY,
	page_name        TEXT NOT NULL DEFAULT '',
	page_url         TEXT NOT NULL,
	linkedin_id      TEXT NOT NULL DEFAULT '',
	profile_picture  TEXT NOT NULL DEFAULT '',
	description      TEXT NOT NULL DEFAULT '',
	website          TEXT NOT NULL DEFAULT '',
	industry         TEXT NOT NULL DEFAULT '',
	company_size     TEXT NOT NULL DEFAULT '',
	headquarters     TEXT NOT NULL DEFAULT '',
	founded          TEXT NOT NULL DEFAULT '',
	specialties_json TEXT NOT NULL DEFAULT '[]',
	follower_count   INTEGER,
	employee_count   INTEGER,
	posts_status     TEXT NOT NULL DEFAULT 'ok',
	people_status    TEXT NOT NULL DEFAULT 'ok',
	scraped_at       TEXT NOT NULL,
	updated_at       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pages_follower_count ON pages(follower_count);
CREATE INDEX IF NOT EXISTS idx_pages_industry ON pages(industry);
CREATE INDEX IF NOT EXISTS idx_pages_recency ON pages(scraped_at DESC, page_id ASC);

CREATE TABLE IF NOT EXISTS posts (
	page_id         TEXT NOT NULL REFERENCES pages(page_id) ON DELETE CASCADE,
	post_id         TEXT NOT NULL,
	seq             INTEGER NOT NULL,
	content         TEXT NOT NULL DEFAULT '',
	posted_date     TEXT NOT NULL DEFAULT '',
	likes           INTEGER,
	comments_count  INTEGER,
	shares          INTEGER,
	post_url        TEXT NOT NULL DEFAULT '',
	media_urls_json TEXT NOT NULL DEFAULT '[]',
	comments_json   TEXT NOT NULL DEFAULT '[]',
	comments_status TEXT NOT NULL DEFAULT 'ok',
	PRIMARY KEY (page_id, post_id)
);

CREATE INDEX IF NOT EXISTS idx_posts_page_seq ON posts(page_id, seq);

CREATE TABLE IF NOT EXISTS people (
	page_id         TEXT NOT NULL REFERENCES pages(page_id) ON DELETE CASCADE,
	user_id         TEXT NOT NULL,
	seq             INTEGER NOT NULL,
	name            TEXT NOT NULL DEFAULT '',
	profile_url     TEXT NOT NULL DEFAULT '',
	profile_picture TEXT NOT NULL DEFAULT '',
	title           TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (page_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_people_page_seq ON people(page_id, seq);
`
