package dto

// ReconcileResponse is the classification result for review.
type ReconcileResponse struct {
	Updates         []UpdateResponse  `json:"transactions_to_update"`
	UnmatchedCard   []CardTxResponse  `json:"unmatched_card_transactions"`
	UnmatchedYnab   []YnabTxResponse  `json:"unmatched_ynab_transactions"`
	SkippedPayments []CardTxResponse  `json:"skipped_payments"`
	DateTolerance   bool              `json:"date_tolerance"`
}

// UpdateResponse is one proposed memo update, with both sides shown so
// the reviewer can compare old and new memo text.
type UpdateResponse struct {
	ID      string         `json:"id"`
	NewMemo string         `json:"new_memo"`
	OldMemo string         `json:"old_memo"`
	Card    CardTxResponse `json:"card_transaction"`
	Ynab    YnabTxResponse `json:"ynab_transaction"`
}

// CardTxResponse is a canonical card transaction.
type CardTxResponse struct {
	Type        string `json:"type"`
	Date        string `json:"date"`
	Payee       string `json:"payee"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Amount      int64  `json:"amount"`
}

// YnabTxResponse is a ledger transaction.
type YnabTxResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Amount    int64  `json:"amount"`
	Memo      string `json:"memo"`
	PayeeName string `json:"payee_name,omitempty"`
	Cleared   string `json:"cleared,omitempty"`
}

// CommitResponse reports how many writes a commit applied.
type CommitResponse struct {
	RunID   string `json:"run_id"`
	Updated int    `json:"updated"`
	Created int    `json:"created"`
}

// RunResponse is one historical commit run.
type RunResponse struct {
	ID           string `json:"id"`
	StartedAt    string `json:"started_at"`
	FinishedAt   string `json:"finished_at"`
	Updated      int    `json:"updated"`
	Created      int    `json:"created"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}
