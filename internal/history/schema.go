package history

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
  id TEXT PRIMARY KEY,
  path TEXT NOT NULL,
  ts_utc TEXT NOT NULL,
  unused_var_count INTEGER NOT NULL,
  unused_import_count INTEGER NOT NULL,
  syntax_error_count INTEGER NOT NULL,
  star_import_count INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(ts_utc);
CREATE INDEX IF NOT EXISTS idx_runs_path ON runs(path);
`

func ensureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
