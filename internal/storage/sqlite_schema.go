package storage

const sqliteSchemaSQL = `
CREATE TABLE IF NOT EXISTS sleep_log (
	id              TEXT PRIMARY KEY,
	user_id         INTEGER NOT NULL,
	sleep_date      TEXT NOT NULL,
	bed_time        TEXT NOT NULL,
	wake_time       TEXT NOT NULL,
	morning_feeling TEXT NOT NULL CHECK (morning_feeling IN ('GOOD', 'OK', 'BAD')),
	created_at      TEXT NOT NULL,
	UNIQUE (user_id, sleep_date),
	CHECK (wake_time > bed_time)
);

CREATE INDEX IF NOT EXISTS idx_sleep_log_user_date ON sleep_log(user_id, sleep_date);
`
