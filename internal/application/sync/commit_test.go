package sync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/ynab-card-sync/internal/domain/card"
	"github.com/eshaffer321/ynab-card-sync/internal/domain/matcher"
	"github.com/eshaffer321/ynab-card-sync/internal/infrastructure/storage"
)

func cardTx(amount int64, date time.Time, payee, status string) card.Transaction {
	return card.Transaction{
		Type:        "Sale",
		Date:        date,
		Payee:       payee,
		Description: payee + " details",
		Status:      status,
		Amount:      amount,
	}
}

func TestCommit_UpdatesFirstThenCreatesReversed(t *testing.T) {
	ledger := &fakeLedger{}
	service := NewService(ledger, nil, "account-1", nil)

	mar5 := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	mar3 := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)

	result, err := service.Commit(context.Background(), Selection{
		Updates: []matcher.Update{
			{ID: "u1", NewMemo: "memo one"},
			{ID: "u2", NewMemo: "memo two"},
		},
		// Newest first, as scraped; creates must apply oldest first.
		Creates: []card.Transaction{
			cardTx(12990, mar5, "NEWER", "Posted"),
			cardTx(3000, mar3, "OLDER", "Pending"),
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Updated)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, []string{"update:u1", "update:u2", "create:OLDER", "create:NEWER"}, ledger.calls)
}

func TestCommit_CreatePayloadMapping(t *testing.T) {
	ledger := &fakeLedger{}
	service := NewService(ledger, nil, "account-1", nil)

	mar5 := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	_, err := service.Commit(context.Background(), Selection{
		Creates: []card.Transaction{
			cardTx(12990, mar5, "ACME", "posted"),
			cardTx(500, mar5, "PENDING CO", "Pending"),
		},
	})

	require.NoError(t, err)
	require.Len(t, ledger.created, 2)

	pending := ledger.created[0]
	assert.Equal(t, "uncleared", pending.Cleared)

	posted := ledger.created[1]
	assert.Equal(t, "account-1", posted.AccountID)
	assert.Equal(t, int64(-12990), posted.Amount, "sign flips to ledger convention")
	assert.Equal(t, "ACME", posted.PayeeName)
	assert.Equal(t, "ACME details", posted.Memo)
	assert.Equal(t, "cleared", posted.Cleared, "posted maps to cleared case-insensitively")
	assert.Equal(t, ImportID(cardTx(12990, mar5, "ACME", "posted")), posted.ImportID)
}

func TestCommit_StopsAtFirstFailure(t *testing.T) {
	ledger := &fakeLedger{failAtCall: 2}
	service := NewService(ledger, nil, "account-1", nil)

	mar5 := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	result, err := service.Commit(context.Background(), Selection{
		Updates: []matcher.Update{
			{ID: "u1", NewMemo: "a"},
			{ID: "u2", NewMemo: "b"},
		},
		Creates: []card.Transaction{cardTx(1000, mar5, "ACME", "Posted")},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, errLedgerDown)
	// The first write took effect and stays applied; nothing after the
	// failure was attempted.
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, []string{"update:u1", "update:u2"}, ledger.calls)
	assert.Contains(t, err.Error(), "after 1 updates and 0 creates")
}

func TestCommit_RecordsRunAndImports(t *testing.T) {
	ledger := &fakeLedger{}
	store := storage.NewMockRepository()
	service := NewService(ledger, store, "account-1", nil)

	mar5 := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	result, err := service.Commit(context.Background(), Selection{
		Updates: []matcher.Update{{ID: "u1", NewMemo: "a"}},
		Creates: []card.Transaction{cardTx(1000, mar5, "ACME", "Posted")},
	})

	require.NoError(t, err)
	require.Len(t, store.Runs, 1)
	assert.Equal(t, result.RunID, store.Runs[0].ID)
	assert.Equal(t, "success", store.Runs[0].Status)
	assert.Equal(t, 1, store.Runs[0].Updated)
	assert.Equal(t, 1, store.Runs[0].Created)

	require.Len(t, store.Imports, 1)
	assert.Equal(t, "2024-03-05", store.Imports[0].Date)
	assert.Equal(t, int64(-1000), store.Imports[0].Amount)
}

func TestCommit_FailedRunRecorded(t *testing.T) {
	ledger := &fakeLedger{failAtCall: 1}
	store := storage.NewMockRepository()
	service := NewService(ledger, store, "account-1", nil)

	_, err := service.Commit(context.Background(), Selection{
		Updates: []matcher.Update{{ID: "u1", NewMemo: "a"}},
	})

	require.Error(t, err)
	require.Len(t, store.Runs, 1)
	assert.Equal(t, "failed", store.Runs[0].Status)
	assert.NotEmpty(t, store.Runs[0].ErrorMessage)
}

func TestImportID_Deterministic(t *testing.T) {
	mar5 := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	a := ImportID(cardTx(12990, mar5, "ACME", "Posted"))
	b := ImportID(cardTx(12990, mar5, "ACME", "Pending"))
	c := ImportID(cardTx(12990, mar5, "OTHER", "Posted"))

	assert.Equal(t, a, b, "status does not affect identity")
	assert.NotEqual(t, a, c)
	assert.LessOrEqual(t, len(a), 36, "YNAB import_id limit")
}
