package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/ynab-card-sync/internal/clients/ynab"
	"github.com/eshaffer321/ynab-card-sync/internal/domain/card"
)

// fakeLedger records calls in order and can fail a specific write.
type fakeLedger struct {
	transactions []ynab.Transaction
	listSince    time.Time
	listErr      error

	calls      []string // "update:<id>" / "create:<payee>"
	failAtCall int      // 1-based; 0 disables
	created    []ynab.SaveTransaction
}

var errLedgerDown = errors.New("ledger down")

func (f *fakeLedger) ListTransactions(_ context.Context, since time.Time) ([]ynab.Transaction, error) {
	f.listSince = since
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.transactions, nil
}

func (f *fakeLedger) CreateTransaction(_ context.Context, tx ynab.SaveTransaction) (*ynab.Transaction, error) {
	f.calls = append(f.calls, "create:"+tx.PayeeName)
	if f.failAtCall == len(f.calls) {
		return nil, errLedgerDown
	}
	f.created = append(f.created, tx)
	return &ynab.Transaction{ID: "created", AccountID: tx.AccountID}, nil
}

func (f *fakeLedger) UpdateTransaction(_ context.Context, id string, _ ynab.TransactionPatch) (*ynab.Transaction, error) {
	f.calls = append(f.calls, "update:"+id)
	if f.failAtCall == len(f.calls) {
		return nil, errLedgerDown
	}
	return &ynab.Transaction{ID: id}, nil
}

func rawEntry(typ, date, status, amount string, description ...string) card.RawEntry {
	return card.RawEntry{Type: typ, Date: date, Description: description, Status: status, Amount: amount}
}

func TestReconcile_FetchesFromEarliestCardDate(t *testing.T) {
	currentYear := time.Now().Year()
	ledger := &fakeLedger{
		transactions: []ynab.Transaction{{
			ID:     "t1",
			Date:   ynab.NewDate(time.Date(currentYear, 3, 5, 0, 0, 0, 0, time.UTC)),
			Amount: -12990,
		}},
	}
	service := NewService(ledger, nil, "account-1", nil)

	// Newest first: Mar 5 then Mar 1; the fetch starts at the earliest.
	recon, err := service.Reconcile(context.Background(), []card.RawEntry{
		rawEntry("Sale", "Mar 5", "Posted", "$12.99", "ACME"),
		rawEntry("Sale", "Mar 1", "Posted", "$3.00", "OTHER"),
	}, Options{})

	require.NoError(t, err)
	assert.Equal(t, time.Date(time.Now().Year(), 3, 1, 0, 0, 0, 0, time.UTC), ledger.listSince)
	require.Len(t, recon.Result.Updates, 1)
	require.Len(t, recon.Result.UnmatchedCard, 1)
}

func TestReconcile_EmptyEntriesSkipsFetch(t *testing.T) {
	ledger := &fakeLedger{listErr: errLedgerDown}
	service := NewService(ledger, nil, "account-1", nil)

	recon, err := service.Reconcile(context.Background(), nil, Options{})

	require.NoError(t, err)
	assert.Empty(t, recon.Cards)
	assert.True(t, ledger.listSince.IsZero(), "no entries means no ledger fetch")
}

func TestReconcile_ParseErrorAbortsBeforeFetch(t *testing.T) {
	ledger := &fakeLedger{}
	service := NewService(ledger, nil, "account-1", nil)

	_, err := service.Reconcile(context.Background(), []card.RawEntry{
		rawEntry("Sale", "NotAMonth 5", "Posted", "$1.00"),
	}, Options{})

	require.Error(t, err)
	var perr *card.ParseError
	assert.ErrorAs(t, err, &perr)
	assert.True(t, ledger.listSince.IsZero())
}

func TestReconcile_FetchErrorAborts(t *testing.T) {
	ledger := &fakeLedger{listErr: errLedgerDown}
	service := NewService(ledger, nil, "account-1", nil)

	_, err := service.Reconcile(context.Background(), []card.RawEntry{
		rawEntry("Sale", "Mar 5", "Posted", "$1.00"),
	}, Options{})

	require.Error(t, err)
	assert.ErrorIs(t, err, errLedgerDown)
}

func TestRematch_RecomputesWholesale(t *testing.T) {
	currentYear := time.Now().Year()
	ledger := &fakeLedger{
		transactions: []ynab.Transaction{{
			ID:     "t1",
			Date:   ynab.NewDate(time.Date(currentYear, 3, 6, 0, 0, 0, 0, time.UTC)),
			Amount: -12990,
		}},
	}
	service := NewService(ledger, nil, "account-1", nil)

	recon, err := service.Reconcile(context.Background(), []card.RawEntry{
		rawEntry("Sale", "Mar 5", "Posted", "$12.99", "ACME"),
	}, Options{DateTolerance: false})
	require.NoError(t, err)
	assert.Len(t, recon.Result.UnmatchedCard, 1)

	recon.Rematch(true)
	assert.Empty(t, recon.Result.UnmatchedCard)
	assert.Len(t, recon.Result.Updates, 1)
	assert.True(t, recon.DateTolerance)
}
