package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int64
	}{
		{"dollar amount", "$12.99", 12990},
		{"whole dollars", "$45", 45000},
		{"no symbol", "12.99", 12990},
		{"euro symbol", "€3.50", 3500},
		{"negative", "-$5.00", -5000},
		{"sub-cent rounds to nearest", "$0.0005", 1},
		{"leading whitespace", "  $7.25", 7250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, raw := range []string{"", "$", "$abc", "twelve"} {
		_, err := ParseAmount(raw)
		require.Error(t, err, "raw=%q", raw)

		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "amount", perr.Field)
	}
}
