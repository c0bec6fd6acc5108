// Package matcher pairs canonical card transactions against YNAB
// transactions by amount and date and classifies every record.
//
// Matching is a pure function of its inputs: no network access, no hidden
// state, no mutation of the input slices. Toggling the date tolerance is
// handled by recomputing the whole result.
package matcher

import (
	"time"

	"github.com/eshaffer321/ynab-card-sync/internal/clients/ynab"
	"github.com/eshaffer321/ynab-card-sync/internal/domain/card"
)

// Match classifies card transactions against ledger transactions.
//
// Per card transaction, in input order: payments are skipped outright;
// otherwise the first ledger transaction (in ledger-list order) with the
// negated amount and the exact same day wins. With dateTolerance enabled a
// failed exact lookup retries one day earlier, then one day later. A
// matched pair consumes the ledger transaction so a later card transaction
// cannot claim it again. An Update is emitted only when the computed memo
// differs from the current one, so re-running after a commit produces no
// redundant writes.
//
// The unmatched-ledger list is computed by an independent exact-rule scan
// with tolerance never applied. A ledger transaction matched only via
// tolerance therefore still shows up there; the list is informational and
// never acted on, so under-reporting a match costs nothing.
func Match(cards []card.Transaction, ledger []ynab.Transaction, dateTolerance bool) Result {
	var result Result
	consumed := make(map[string]bool)

	for _, ct := range cards {
		if ct.IsPayment() {
			result.SkippedPayments = append(result.SkippedPayments, ct)
			continue
		}

		match := findExact(ledger, consumed, -ct.Amount, ct.Date)
		if match == nil && dateTolerance {
			match = findExact(ledger, consumed, -ct.Amount, ct.Date.AddDate(0, 0, -1))
			if match == nil {
				match = findExact(ledger, consumed, -ct.Amount, ct.Date.AddDate(0, 0, 1))
			}
		}

		if match == nil {
			result.UnmatchedCard = append(result.UnmatchedCard, ct)
			continue
		}

		consumed[match.ID] = true

		newMemo := TruncateMemo(ct.Description)
		if match.Memo == nil || *match.Memo != newMemo {
			result.Updates = append(result.Updates, Update{
				ID:      match.ID,
				NewMemo: newMemo,
				Card:    ct,
				Ledger:  *match,
			})
		}
	}

	for _, lt := range ledger {
		if !anyCardMatches(cards, lt) {
			result.UnmatchedLedger = append(result.UnmatchedLedger, lt)
		}
	}

	return result
}

// findExact returns the first unconsumed ledger transaction with the given
// amount on the given day. List order is the only tie-break when several
// ledger transactions share amount and date.
func findExact(ledger []ynab.Transaction, consumed map[string]bool, amount int64, day time.Time) *ynab.Transaction {
	for i := range ledger {
		lt := &ledger[i]
		if consumed[lt.ID] {
			continue
		}
		if lt.Amount == amount && lt.Date.SameDay(day) {
			return lt
		}
	}
	return nil
}

func anyCardMatches(cards []card.Transaction, lt ynab.Transaction) bool {
	for _, ct := range cards {
		if lt.Amount == -ct.Amount && lt.Date.SameDay(ct.Date) {
			return true
		}
	}
	return false
}

// TruncateMemo caps description text at the memo length YNAB accepts.
func TruncateMemo(description string) string {
	runes := []rune(description)
	if len(runes) <= MemoLimit {
		return description
	}
	return string(runes[:MemoLimit])
}
