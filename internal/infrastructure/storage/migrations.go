package storage

// migrations are applied in order on startup. Statements must be
// idempotent; there is no down path.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS commit_runs (
		id            TEXT PRIMARY KEY,
		started_at    TEXT NOT NULL,
		finished_at   TEXT NOT NULL,
		updated       INTEGER NOT NULL DEFAULT 0,
		created       INTEGER NOT NULL DEFAULT 0,
		status        TEXT NOT NULL,
		error_message TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS created_imports (
		import_id TEXT PRIMARY KEY,
		run_id    TEXT NOT NULL,
		date      TEXT NOT NULL,
		amount    INTEGER NOT NULL,
		payee     TEXT NOT NULL DEFAULT '',
		synced_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_created_imports_run ON created_imports(run_id)`,
}

// runMigrations applies all pending migrations.
func (s *Storage) runMigrations() error {
	for _, stmt := range migrations {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
