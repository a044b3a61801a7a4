package core

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
		err  error
	}{
		{"1000", "1000", nil},
		{"1.23", "1.23", nil},
		{"1,23", "1.23", nil},
		{" -200 ", "-200", nil},
		{"+5", "5", nil},
		{"0", "0", nil},
		{"", "", ErrEmptyAmount},
		{"   ", "", ErrEmptyAmount},
		{"abc", "", ErrInvalidAmount},
		{"1.2.3", "", ErrInvalidAmount},
		{"1e3", "", ErrInvalidAmount},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.err != nil {
			assert.ErrorIs(t, err, tc.err, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "input %q: got %s", tc.in, got)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1000.00", FormatAmount(decimal.NewFromInt(1000)))
	assert.Equal(t, "-200.00", FormatAmount(decimal.NewFromInt(-200)))
	assert.Equal(t, "0.10", FormatAmount(decimal.RequireFromString("0.1")))
}
