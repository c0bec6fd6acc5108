package sync

import (
	"time"

	"github.com/eshaffer321/ynab-card-sync/internal/clients/ynab"
	"github.com/eshaffer321/ynab-card-sync/internal/domain/card"
	"github.com/eshaffer321/ynab-card-sync/internal/domain/matcher"
)

// Options controls one reconciliation run.
type Options struct {
	// DateTolerance relaxes date matching by one day in either direction
	// to absorb posting-date skew between the card site and YNAB.
	DateTolerance bool
}

// Reconciliation is the materialized output of one run: both input sides
// plus the classification. It is immutable once produced; toggling the
// tolerance flag recomputes the whole thing via Rematch.
type Reconciliation struct {
	Cards         []card.Transaction
	Ledger        []ynab.Transaction
	Result        matcher.Result
	DateTolerance bool
}

// Rematch reclassifies the already-fetched inputs under a different
// tolerance setting, without touching the network.
func (r *Reconciliation) Rematch(dateTolerance bool) {
	r.DateTolerance = dateTolerance
	r.Result = matcher.Match(r.Cards, r.Ledger, dateTolerance)
}

// Selection is the human-approved subset of a reconciliation result.
// Updates apply first in list order; Creates apply afterward in reverse
// order, so the ledger receives entries oldest first.
type Selection struct {
	Updates []matcher.Update
	Creates []card.Transaction
}

// CommitResult reports how far a commit got. When a write fails, Updated
// and Created count the calls that had already taken effect; nothing is
// rolled back.
type CommitResult struct {
	RunID      string    `json:"run_id"`
	Updated    int       `json:"updated"`
	Created    int       `json:"created"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}
