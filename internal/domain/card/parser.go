package card

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// monthPrefixes is the ordered month table used to resolve the 3-letter
// (or longer) month text the activity page shows.
var monthPrefixes = [12]string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

// ParseError reports a scraped entry missing a structurally required
// sub-element. It is fatal for the whole run: partial parsing of financial
// data must not silently produce wrong amounts.
type ParseError struct {
	Index int
	Field string
	Value string
}

func (e *ParseError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("card entry %d: cannot parse %s %q", e.Index, e.Field, e.Value)
	}
	return fmt.Sprintf("card entry %d: missing %s", e.Index, e.Field)
}

// Parser converts raw scraped entries into canonical transactions.
type Parser struct {
	now func() time.Time
}

// NewParser returns a parser that anchors year inference at the current
// calendar year.
func NewParser() *Parser {
	return &Parser{now: time.Now}
}

// Parse maps entries to transactions. Entries must be in page order,
// newest first: the page never shows a year, so the first entry is assumed
// to fall in the current year and the year is decremented every time the
// month rolls upward while walking backward in time.
//
// A list that spans more than one year boundary at the same month value is
// ambiguous and left as-is; the page does not carry enough information to
// disambiguate it.
func (p *Parser) Parse(entries []RawEntry) ([]Transaction, error) {
	year := p.now().Year()
	var previousMonth time.Month

	txs := make([]Transaction, 0, len(entries))
	for i, entry := range entries {
		month, day, ok := splitDate(entry.Date)
		if !ok {
			return nil, &ParseError{Index: i, Field: "date", Value: entry.Date}
		}

		if previousMonth != 0 && month > previousMonth {
			year--
		}
		previousMonth = month

		if strings.TrimSpace(entry.Type) == "" {
			return nil, &ParseError{Index: i, Field: "type"}
		}
		if strings.TrimSpace(entry.Status) == "" {
			return nil, &ParseError{Index: i, Field: "status"}
		}

		amount, err := ParseAmount(entry.Amount)
		if err != nil {
			perr := err.(*ParseError)
			perr.Index = i
			return nil, perr
		}

		payee, description := splitDescription(entry.Description)

		txs = append(txs, Transaction{
			Type:        entry.Type,
			Date:        time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
			Payee:       payee,
			Description: description,
			Status:      entry.Status,
			Amount:      amount,
		})
	}

	return txs, nil
}

// splitDate resolves a "Mon D" label into month and day. The month is
// matched case-insensitively by prefix against the ordered month table.
func splitDate(raw string) (time.Month, int, bool) {
	fields := strings.Fields(raw)
	if len(fields) < 2 {
		return 0, 0, false
	}

	lower := strings.ToLower(fields[0])
	month := time.Month(0)
	for i, prefix := range monthPrefixes {
		if strings.HasPrefix(lower, prefix) {
			month = time.Month(i + 1)
			break
		}
	}
	if month == 0 {
		return 0, 0, false
	}

	day, err := strconv.Atoi(fields[1])
	if err != nil || day < 1 || day > 31 {
		return 0, 0, false
	}

	return month, day, true
}

// splitDescription treats the first non-empty fragment as the payee and
// joins the remaining non-empty fragments with newlines.
func splitDescription(fragments []string) (payee, description string) {
	cleaned := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if trimmed := strings.TrimSpace(f); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		return "", ""
	}
	return cleaned[0], strings.Join(cleaned[1:], "\n")
}
