package card

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a displayed currency string like "$12.99" into
// milliunits (thousandths of the currency unit). Integer milliunits keep
// amount comparisons exact; parsing the two sources as floats would make
// equality matching unreliable.
func ParseAmount(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, &ParseError{Field: "amount", Value: raw}
	}

	// Strip a single leading currency symbol.
	if r, size := utf8.DecodeRuneInString(s); !unicode.IsDigit(r) && r != '-' && r != '+' {
		s = strings.TrimSpace(s[size:])
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, &ParseError{Field: "amount", Value: raw}
	}

	return d.Mul(decimal.NewFromInt(1000)).Round(0).IntPart(), nil
}
