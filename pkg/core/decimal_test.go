package core

import (
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecimal(t *testing.T, s string) *apd.Decimal {
	t.Helper()
	d, _, err := apd.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestFiatValue(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		amount   string
		expected string
	}{
		{"btc at round price", "20000", "0.5", "10000.00"},
		{"fractional cents round half up", "1", "1.005", "1.01"},
		{"rounds down below half cent", "1", "1.0049", "1.00"},
		{"zero price", "0", "123.456789", "0.00"},
		{"zero amount", "50000", "0", "0.00"},
		{"dust position", "0.0000123", "1000000", "12.30"},
		{"exchange precision survives", "26543.12", "0.03811021", "1011.56"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := FiatValue(mustDecimal(t, tt.price), mustDecimal(t, tt.amount))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v.String())
		})
	}
}

func TestQuantizeFiat(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"93.793252504", "93.79"},
		{"93.795", "93.80"},
		{"0", "0.00"},
		{"1200", "1200.00"},
		{"0.005", "0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := QuantizeFiat(mustDecimal(t, tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v.String())
		})
	}
}

func TestSumFiat_Exact(t *testing.T) {
	// 0.10 + 0.20 must be exactly 0.30, never a float artifact.
	balances := []NormalizedBalance{
		{FiatValue: *mustDecimal(t, "0.10")},
		{FiatValue: *mustDecimal(t, "0.20")},
	}

	total, err := SumFiat(balances)
	require.NoError(t, err)
	assert.Equal(t, "0.30", total.String())
}

func TestSumFiat_Empty(t *testing.T) {
	total, err := SumFiat(nil)
	require.NoError(t, err)
	assert.Equal(t, "0.00", total.String())
}

func TestSumFiat_MatchesRoundedParts(t *testing.T) {
	balances := []NormalizedBalance{
		{FiatValue: *mustDecimal(t, "10000.00")},
		{FiatValue: *mustDecimal(t, "93.79")},
		{FiatValue: *mustDecimal(t, "0.00")},
	}

	total, err := SumFiat(balances)
	require.NoError(t, err)
	assert.Equal(t, "10093.79", total.String())
}

func TestParseDecimal(t *testing.T) {
	var d apd.Decimal
	require.NoError(t, ParseDecimal(&d, "42.125"))
	assert.Equal(t, "42.125", d.String())

	require.NoError(t, ParseDecimal(&d, ""))
	assert.True(t, d.IsZero())

	assert.Error(t, ParseDecimal(&d, "not-a-number"))
}
