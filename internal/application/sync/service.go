// Package sync orchestrates one reconciliation run: parse scraped entries,
// fetch the ledger side, classify, and commit the human-approved subset.
package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/eshaffer321/ynab-card-sync/internal/clients/ynab"
	"github.com/eshaffer321/ynab-card-sync/internal/domain/card"
	"github.com/eshaffer321/ynab-card-sync/internal/domain/matcher"
	"github.com/eshaffer321/ynab-card-sync/internal/infrastructure/storage"
)

// LedgerClient is the remote budgeting ledger the service reconciles
// against.
type LedgerClient interface {
	ListTransactions(ctx context.Context, since time.Time) ([]ynab.Transaction, error)
	CreateTransaction(ctx context.Context, tx ynab.SaveTransaction) (*ynab.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, patch ynab.TransactionPatch) (*ynab.Transaction, error)
}

// Service runs reconciliation and commit against one YNAB account.
type Service struct {
	ledger    LedgerClient
	store     storage.Repository // nil disables run recording
	parser    *card.Parser
	accountID string
	logger    *slog.Logger
}

// NewService creates a sync service. store may be nil.
func NewService(ledger LedgerClient, store storage.Repository, accountID string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		ledger:    ledger,
		store:     store,
		parser:    card.NewParser(),
		accountID: accountID,
		logger:    logger,
	}
}

// Reconcile parses the scraped entries, fetches ledger transactions from
// the earliest card date onward, and classifies everything. A parse error
// aborts the run with no partial result; a fetch error aborts before any
// classification.
func (s *Service) Reconcile(ctx context.Context, entries []card.RawEntry, opts Options) (*Reconciliation, error) {
	cards, err := s.parser.Parse(entries)
	if err != nil {
		return nil, err
	}

	if len(cards) == 0 {
		return &Reconciliation{DateTolerance: opts.DateTolerance}, nil
	}

	// Entries are newest first, so the last one is the earliest; the
	// ledger fetch starts there.
	since := cards[len(cards)-1].Date

	s.logger.Debug("fetching ledger transactions",
		"since", since.Format("2006-01-02"),
		"card_count", len(cards),
	)

	ledger, err := s.ledger.ListTransactions(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("fetch ledger transactions: %w", err)
	}

	result := matcher.Match(cards, ledger, opts.DateTolerance)

	s.logger.Info("reconciliation complete",
		"updates", len(result.Updates),
		"unmatched_card", len(result.UnmatchedCard),
		"unmatched_ledger", len(result.UnmatchedLedger),
		"skipped_payments", len(result.SkippedPayments),
		"date_tolerance", opts.DateTolerance,
	)

	return &Reconciliation{
		Cards:         cards,
		Ledger:        ledger,
		Result:        result,
		DateTolerance: opts.DateTolerance,
	}, nil
}
