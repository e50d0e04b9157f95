package storage

// schema is applied on every open. CREATE TABLE IF NOT EXISTS keeps it
// idempotent for existing databases.
const schema = `
CREATE TABLE IF NOT EXISTS validations (
	url         TEXT PRIMARY KEY,
	valid       INTEGER NOT NULL,
	status_code INTEGER,
	checked_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS runs (
	id            TEXT PRIMARY KEY,
	strategy      TEXT NOT NULL,
	keep_rule     TEXT NOT NULL,
	total_records INTEGER NOT NULL,
	removed_count INTEGER NOT NULL,
	group_count   INTEGER NOT NULL,
	created_at    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`
