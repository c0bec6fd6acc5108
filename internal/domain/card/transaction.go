// Package card turns raw scraped card-activity entries into canonical
// transactions.
//
// Entries arrive in page order (newest first) and carry no year on their
// dates; parsing reconstructs the year, normalizes amounts to milliunits,
// and splits the description block into payee and memo text.
package card

import (
	"strings"
	"time"
)

// RawEntry is one scraped row as the activity page presents it.
// Description holds the text fragments of the description block in
// document order.
type RawEntry struct {
	Type        string   `json:"type"`
	Date        string   `json:"date"` // month prefix + day, e.g. "Mar 5"
	Description []string `json:"description"`
	Status      string   `json:"status"`
	Amount      string   `json:"amount"` // currency string, e.g. "$12.99"
}

// Transaction is a canonical card transaction. Amount is in milliunits
// with outflows positive, matching how the card site displays charges.
type Transaction struct {
	Type        string    `json:"type"`
	Date        time.Time `json:"date"`
	Payee       string    `json:"payee"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Amount      int64     `json:"amount"`
}

// IsPayment reports whether this row is a card payment. Payments are not
// expenses and are excluded from matching.
func (t Transaction) IsPayment() bool {
	return strings.EqualFold(t.Type, "payment")
}

// DateString returns the transaction day in YYYY-MM-DD form.
func (t Transaction) DateString() string {
	return t.Date.Format("2006-01-02")
}
