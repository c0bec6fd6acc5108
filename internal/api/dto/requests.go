package dto

// ReconcileRequest carries the scraped card-activity rows, in page order
// (newest first), plus the tolerance flag. The scraper itself lives in the
// browser; this service only ever sees its output.
type ReconcileRequest struct {
	Entries       []RawEntryRequest `json:"entries"`
	DateTolerance bool              `json:"date_tolerance"`
}

// RawEntryRequest is one scraped row.
type RawEntryRequest struct {
	Type        string   `json:"type"`
	Date        string   `json:"date"`
	Description []string `json:"description"`
	Status      string   `json:"status"`
	Amount      string   `json:"amount"`
}

// CommitRequest carries the human-approved subset back. The request is
// self-contained so the server keeps no per-review state between the
// reconcile and commit calls.
type CommitRequest struct {
	Updates []UpdateSelection `json:"updates"`
	Creates []CreateSelection `json:"creates"`
}

// UpdateSelection is one approved memo update.
type UpdateSelection struct {
	ID   string `json:"id"`
	Memo string `json:"memo"`
}

// CreateSelection is one approved new transaction, in card convention
// (milliunits, outflows positive). Order must match the reconcile
// response's unmatched list: newest first.
type CreateSelection struct {
	Date        string `json:"date"` // YYYY-MM-DD
	Amount      int64  `json:"amount"`
	Payee       string `json:"payee"`
	Description string `json:"description"`
	Status      string `json:"status"`
}
