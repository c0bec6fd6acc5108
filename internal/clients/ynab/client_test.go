package ynab

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(srv *httptest.Server) *Client {
	return &Client{
		httpClient: srv.Client(),
		baseURL:    srv.URL + "/",
		token:      "secret-token",
		budgetID:   "budget-1",
		accountID:  "account-1",
	}
}

func TestListTransactions_FiltersByAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, "/budgets/budget-1/transactions", r.URL.Path)
		assert.Equal(t, "2024-03-01", r.URL.Query().Get("since_date"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"transactions": []map[string]any{
					{"id": "t1", "date": "2024-03-05", "amount": -12990, "memo": "old", "account_id": "account-1"},
					{"id": "t2", "date": "2024-03-06", "amount": -5000, "memo": nil, "account_id": "other-account"},
				},
			},
		})
	}))
	defer srv.Close()

	client := testClient(srv)
	since := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	txs, err := client.ListTransactions(context.Background(), since)

	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "t1", txs[0].ID)
	assert.Equal(t, int64(-12990), txs[0].Amount)
	require.NotNil(t, txs[0].Memo)
	assert.Equal(t, "old", *txs[0].Memo)
	assert.True(t, txs[0].Date.SameDay(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))
}

func TestCreateTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/budgets/budget-1/transactions", r.URL.Path)

		var body map[string]SaveTransaction
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		tx := body["transaction"]
		assert.Equal(t, "account-1", tx.AccountID)
		assert.Equal(t, int64(-12990), tx.Amount)
		assert.Equal(t, "cleared", tx.Cleared)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"transaction": map[string]any{
					"id": "new-id", "date": "2024-03-05", "amount": -12990, "account_id": "account-1",
				},
			},
		})
	}))
	defer srv.Close()

	client := testClient(srv)
	created, err := client.CreateTransaction(context.Background(), SaveTransaction{
		AccountID: "account-1",
		Date:      NewDate(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)),
		Amount:    -12990,
		Cleared:   "cleared",
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "new-id", created.ID)
}

func TestCreateTransaction_DuplicateImportID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"duplicate_import_ids": []string{"CARD:2024-03-05:-12990:abcd1234"}},
		})
	}))
	defer srv.Close()

	client := testClient(srv)
	_, err := client.CreateTransaction(context.Background(), SaveTransaction{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateImport)
}

func TestUpdateTransaction_SendsMemoPatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/budgets/budget-1/transactions/t1", r.URL.Path)

		var body map[string]map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "new memo", body["transaction"]["memo"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"transaction": map[string]any{
					"id": "t1", "date": "2024-03-05", "amount": -12990, "memo": "new memo", "account_id": "account-1",
				},
			},
		})
	}))
	defer srv.Close()

	client := testClient(srv)
	newMemo := "new memo"
	updated, err := client.UpdateTransaction(context.Background(), "t1", TransactionPatch{Memo: &newMemo})

	require.NoError(t, err)
	require.NotNil(t, updated)
	require.NotNil(t, updated.Memo)
	assert.Equal(t, "new memo", *updated.Memo)
}

func TestErrorBodySurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"id": "401", "name": "unauthorized", "detail": "Unauthorized"},
		})
	}))
	defer srv.Close()

	client := testClient(srv)
	_, err := client.ListTransactions(context.Background(), time.Now())

	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "unauthorized", apiErr.Name)
	assert.Contains(t, apiErr.Error(), "Unauthorized")
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(time.Date(2024, 3, 5, 17, 30, 0, 0, time.Local))

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-05"`, string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, parsed.SameDay(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))
}
