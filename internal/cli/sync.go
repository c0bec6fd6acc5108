// Package cli wires configuration, clients, and services for the command
// line entry points.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/eshaffer321/ynab-card-sync/internal/application/sync"
	"github.com/eshaffer321/ynab-card-sync/internal/clients/ynab"
	"github.com/eshaffer321/ynab-card-sync/internal/domain/card"
	"github.com/eshaffer321/ynab-card-sync/internal/infrastructure/config"
	"github.com/eshaffer321/ynab-card-sync/internal/infrastructure/logging"
	"github.com/eshaffer321/ynab-card-sync/internal/infrastructure/storage"
)

// RunSync runs one reconciliation from a scraped-entries file and prints
// the classification. With -yes it commits everything; otherwise it is a
// dry run and nothing is written to the ledger.
func RunSync(cfg *config.Config, flags *SyncFlags) error {
	loggingCfg := cfg.Observability.Logging
	if flags.Verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewLoggerWithSystem(loggingCfg, "sync")

	if err := cfg.Validate(); err != nil {
		return err
	}
	if flags.Input == "" {
		return errors.New("an entries file is required (-input)")
	}

	entries, err := readEntries(flags.Input)
	if err != nil {
		return err
	}

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	client := ynab.NewClient(cfg.Ynab.Token, cfg.Ynab.BudgetID, cfg.Ynab.AccountID)
	service := sync.NewService(client, store, cfg.Ynab.AccountID, logger)

	ctx := context.Background()
	recon, err := service.Reconcile(ctx, entries, sync.Options{DateTolerance: flags.DateTolerance})
	if err != nil {
		return err
	}

	printResult(recon)

	if !flags.Commit {
		fmt.Println("\nDry run: nothing written. Re-run with -yes to commit.")
		return nil
	}

	sel := sync.Selection{
		Updates: recon.Result.Updates,
		Creates: recon.Result.UnmatchedCard,
	}
	result, err := service.Commit(ctx, sel)
	if err != nil {
		fmt.Printf("\nCommit failed after %d updates and %d creates.\n", result.Updated, result.Created)
		return err
	}

	fmt.Printf("\nCommitted %d updates and %d creates (run %s).\n", result.Updated, result.Created, result.RunID)
	return nil
}

func readEntries(path string) ([]card.RawEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read entries file: %w", err)
	}

	var entries []card.RawEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse entries file: %w", err)
	}
	return entries, nil
}

func printResult(recon *sync.Reconciliation) {
	res := recon.Result

	fmt.Printf("Transactions to update: %d\n", len(res.Updates))
	for _, u := range res.Updates {
		fmt.Printf("  %s  %s  %-20s  memo -> %q\n",
			u.Card.DateString(), formatAmount(u.Card.Amount), u.Card.Payee, u.NewMemo)
	}

	fmt.Printf("New transactions to create: %d\n", len(res.UnmatchedCard))
	for _, ct := range res.UnmatchedCard {
		fmt.Printf("  %s  %s  %-20s  [%s]\n",
			ct.DateString(), formatAmount(ct.Amount), ct.Payee, ct.Status)
	}

	fmt.Printf("YNAB transactions without matches: %d (informational)\n", len(res.UnmatchedLedger))
	fmt.Printf("Skipped payments: %d\n", len(res.SkippedPayments))
}

func formatAmount(milliunits int64) string {
	sign := ""
	if milliunits < 0 {
		sign = "-"
		milliunits = -milliunits
	}
	return fmt.Sprintf("%s$%d.%02d", sign, milliunits/1000, (milliunits%1000)/10)
}
