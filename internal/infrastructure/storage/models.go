package storage

import "time"

// CommitRun is one recorded commit attempt: how many writes were applied
// and whether the run stopped on an error.
type CommitRun struct {
	ID           string    `json:"id"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	Updated      int       `json:"updated"`
	Created      int       `json:"created"`
	Status       string    `json:"status"` // "success" or "failed"
	ErrorMessage string    `json:"error_message,omitempty"`
}

// CreatedImport records one transaction created in YNAB, keyed by the
// deterministic import id sent with the create payload. It lets an
// operator audit what a partial commit already wrote.
type CreatedImport struct {
	ImportID string    `json:"import_id"`
	RunID    string    `json:"run_id"`
	Date     string    `json:"date"`
	Amount   int64     `json:"amount"`
	Payee    string    `json:"payee"`
	SyncedAt time.Time `json:"synced_at"`
}
