package matcher

import (
	"github.com/eshaffer321/ynab-card-sync/internal/clients/ynab"
	"github.com/eshaffer321/ynab-card-sync/internal/domain/card"
)

// MemoLimit is the maximum memo length YNAB accepts.
const MemoLimit = 500

// Update pairs a matched card transaction with the ledger transaction it
// matched, plus the memo that should replace the current one.
type Update struct {
	ID      string           `json:"id"`
	NewMemo string           `json:"new_memo"`
	Card    card.Transaction `json:"card_transaction"`
	Ledger  ynab.Transaction `json:"ynab_transaction"`
}

// Result is the classification of one matching run.
//
// Every card transaction lands in exactly one disposition: skipped as a
// payment, matched to a ledger transaction (emitting an Update only when
// the memo actually changes), or unmatched. UnmatchedLedger is
// informational only and is never acted on.
type Result struct {
	Updates         []Update           `json:"transactions_to_update"`
	UnmatchedCard   []card.Transaction `json:"unmatched_card_transactions"`
	UnmatchedLedger []ynab.Transaction `json:"unmatched_ynab_transactions"`
	SkippedPayments []card.Transaction `json:"skipped_payments"`
}
