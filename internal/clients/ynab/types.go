package ynab

import (
	"fmt"
	"time"
)

// Date is a calendar day serialized as YYYY-MM-DD, the only date form the
// YNAB API speaks.
type Date struct {
	time.Time
}

// NewDate builds a Date from the day component of t.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s", s)
	}
	t, err := time.Parse("2006-01-02", s[1:len(s)-1])
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// SameDay reports whether d falls on the same calendar day as t.
func (d Date) SameDay(t time.Time) bool {
	y1, m1, d1 := d.Date()
	y2, m2, d2 := t.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Transaction is a transaction as returned by the YNAB API. Amounts are
// milliunits with outflows negative. Memo is nullable on the wire.
type Transaction struct {
	ID        string  `json:"id"`
	Date      Date    `json:"date"`
	Amount    int64   `json:"amount"`
	Memo      *string `json:"memo"`
	AccountID string  `json:"account_id"`
	PayeeName string  `json:"payee_name,omitempty"`
	Cleared   string  `json:"cleared,omitempty"`
	Approved  bool    `json:"approved,omitempty"`
}

// SaveTransaction is the create payload. ImportID lets YNAB reject
// duplicate imports of the same logical transaction.
type SaveTransaction struct {
	AccountID string `json:"account_id"`
	Date      Date   `json:"date"`
	Amount    int64  `json:"amount"`
	PayeeName string `json:"payee_name,omitempty"`
	Memo      string `json:"memo,omitempty"`
	Cleared   string `json:"cleared,omitempty"`
	ImportID  string `json:"import_id,omitempty"`
}

// TransactionPatch is a partial update payload. Only non-nil fields are
// sent.
type TransactionPatch struct {
	Memo *string `json:"memo,omitempty"`
}

type transactionsResponse struct {
	Data struct {
		Transactions []Transaction `json:"transactions"`
	} `json:"data"`
}

type transactionResponse struct {
	Data struct {
		Transaction        *Transaction `json:"transaction"`
		DuplicateImportIDs []string     `json:"duplicate_import_ids"`
	} `json:"data"`
}

type errorResponse struct {
	Error struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Detail string `json:"detail"`
	} `json:"error"`
}

// APIError carries the remote error body for a failed YNAB call.
type APIError struct {
	StatusCode int
	ID         string
	Name       string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("ynab: request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("ynab: %s (%d): %s", e.Name, e.StatusCode, e.Detail)
}
