// Package ynab is a minimal client for the YNAB v1 transactions API.
//
// Calls are authenticated with a bearer token and scoped to one budget and
// one account. Failures surface the remote error body as an *APIError and
// are never retried; the caller decides whether a re-run is safe.
package ynab

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.ynab.com/v1/"

// ErrDuplicateImport is returned by CreateTransaction when YNAB rejects
// the payload's import_id as already imported.
var ErrDuplicateImport = errors.New("ynab: duplicate import id")

// Client talks to the YNAB API for a single budget and account.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	budgetID   string
	accountID  string
}

// NewClient creates a client for the given credentials. Validity of the
// token is not checked up front; the first call fails if it is wrong.
func NewClient(token, budgetID, accountID string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		token:      token,
		budgetID:   budgetID,
		accountID:  accountID,
	}
}

// ListTransactions returns the account's transactions on or after since.
// The API filters by date server-side; account filtering happens here
// because the endpoint spans the whole budget.
func (c *Client) ListTransactions(ctx context.Context, since time.Time) ([]Transaction, error) {
	query := url.Values{"since_date": {since.Format("2006-01-02")}}

	var resp transactionsResponse
	path := fmt.Sprintf("budgets/%s/transactions", c.budgetID)
	if err := c.do(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, err
	}

	transactions := make([]Transaction, 0, len(resp.Data.Transactions))
	for _, tx := range resp.Data.Transactions {
		if tx.AccountID == c.accountID {
			transactions = append(transactions, tx)
		}
	}
	return transactions, nil
}

// CreateTransaction creates one transaction in the account.
func (c *Client) CreateTransaction(ctx context.Context, tx SaveTransaction) (*Transaction, error) {
	body := map[string]SaveTransaction{"transaction": tx}

	var resp transactionResponse
	path := fmt.Sprintf("budgets/%s/transactions", c.budgetID)
	if err := c.do(ctx, http.MethodPost, path, nil, body, &resp); err != nil {
		return nil, err
	}

	if len(resp.Data.DuplicateImportIDs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateImport, resp.Data.DuplicateImportIDs[0])
	}
	return resp.Data.Transaction, nil
}

// UpdateTransaction applies a partial update to an existing transaction.
func (c *Client) UpdateTransaction(ctx context.Context, id string, patch TransactionPatch) (*Transaction, error) {
	body := map[string]TransactionPatch{"transaction": patch}

	var resp transactionResponse
	path := fmt.Sprintf("budgets/%s/transactions/%s", c.budgetID, id)
	if err := c.do(ctx, http.MethodPut, path, nil, body, &resp); err != nil {
		return nil, err
	}
	return resp.Data.Transaction, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ynab: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var remote errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&remote); err == nil {
			apiErr.ID = remote.Error.ID
			apiErr.Name = remote.Error.Name
			apiErr.Detail = remote.Error.Detail
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
