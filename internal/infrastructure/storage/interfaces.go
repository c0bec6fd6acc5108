package storage

// Repository is the persistence seam for commit-run recording. The sync
// service treats a nil Repository as "recording disabled".
type Repository interface {
	// RecordRun inserts or replaces a commit run.
	RecordRun(run *CommitRun) error

	// ListRuns returns the most recent runs, newest first.
	ListRuns(limit int) ([]*CommitRun, error)

	// RecordCreatedImport records a transaction created in YNAB.
	RecordCreatedImport(imp *CreatedImport) error

	// HasImport reports whether an import id was already recorded.
	HasImport(importID string) (bool, error)

	// Close releases the underlying database.
	Close() error
}
