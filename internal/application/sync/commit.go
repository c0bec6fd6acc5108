package sync

import (
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eshaffer321/ynab-card-sync/internal/clients/ynab"
	"github.com/eshaffer321/ynab-card-sync/internal/domain/card"
	"github.com/eshaffer321/ynab-card-sync/internal/domain/matcher"
	"github.com/eshaffer321/ynab-card-sync/internal/infrastructure/storage"
)

// Commit applies the approved selection: memo updates first in list order,
// then creates in reverse selection order so the ledger receives new
// transactions oldest first (the scrape is newest first).
//
// Writes are sequential, one remote call per item, with no batching and no
// rollback. On the first failure the commit stops; the returned
// CommitResult counts the writes that already took effect so the operator
// can re-run safely. Creates carry a deterministic import id, so YNAB
// itself rejects a duplicate create on re-run.
func (s *Service) Commit(ctx context.Context, sel Selection) (*CommitResult, error) {
	result := &CommitResult{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}

	commitErr := s.applySelection(ctx, sel, result)

	result.FinishedAt = time.Now()
	s.recordRun(result, commitErr)

	if commitErr != nil {
		return result, fmt.Errorf("commit stopped after %d updates and %d creates: %w",
			result.Updated, result.Created, commitErr)
	}

	s.logger.Info("commit complete",
		"run_id", result.RunID,
		"updated", result.Updated,
		"created", result.Created,
	)
	return result, nil
}

func (s *Service) applySelection(ctx context.Context, sel Selection, result *CommitResult) error {
	for _, update := range sel.Updates {
		memo := update.NewMemo
		if _, err := s.ledger.UpdateTransaction(ctx, update.ID, ynab.TransactionPatch{Memo: &memo}); err != nil {
			return fmt.Errorf("update transaction %s: %w", update.ID, err)
		}
		result.Updated++
	}

	for i := len(sel.Creates) - 1; i >= 0; i-- {
		ct := sel.Creates[i]
		payload := s.createPayload(ct)

		if _, err := s.ledger.CreateTransaction(ctx, payload); err != nil {
			return fmt.Errorf("create transaction for %q on %s: %w", ct.Payee, ct.DateString(), err)
		}
		result.Created++

		if s.store != nil {
			_ = s.store.RecordCreatedImport(&storage.CreatedImport{
				ImportID: payload.ImportID,
				RunID:    result.RunID,
				Date:     ct.DateString(),
				Amount:   payload.Amount,
				Payee:    ct.Payee,
				SyncedAt: time.Now(),
			})
		}
	}

	return nil
}

// createPayload maps a card transaction to the ledger convention: the sign
// flips because the card side reports outflows as positive, and the
// cleared status mirrors whether the card row has posted.
func (s *Service) createPayload(ct card.Transaction) ynab.SaveTransaction {
	cleared := "uncleared"
	if strings.EqualFold(ct.Status, "posted") {
		cleared = "cleared"
	}

	return ynab.SaveTransaction{
		AccountID: s.accountID,
		Date:      ynab.NewDate(ct.Date),
		Amount:    -ct.Amount,
		PayeeName: ct.Payee,
		Memo:      matcher.TruncateMemo(ct.Description),
		Cleared:   cleared,
		ImportID:  ImportID(ct),
	}
}

func (s *Service) recordRun(result *CommitResult, commitErr error) {
	if s.store == nil {
		return
	}

	run := &storage.CommitRun{
		ID:         result.RunID,
		StartedAt:  result.StartedAt,
		FinishedAt: result.FinishedAt,
		Updated:    result.Updated,
		Created:    result.Created,
		Status:     "success",
	}
	if commitErr != nil {
		run.Status = "failed"
		run.ErrorMessage = commitErr.Error()
	}

	if err := s.store.RecordRun(run); err != nil {
		s.logger.Warn("failed to record commit run", "run_id", run.ID, "error", err)
	}
}

// ImportID derives a stable idempotency key from the card transaction's
// date, amount, and payee. Two scrapes of the same charge produce the same
// id, which keeps partial-commit re-runs from creating duplicates.
func ImportID(ct card.Transaction) string {
	h := fnv.New32a()
	_, _ = io.WriteString(h, ct.Payee)
	return fmt.Sprintf("CARD:%s:%d:%08x", ct.DateString(), -ct.Amount, h.Sum32())
}
