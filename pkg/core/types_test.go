package core

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceBook_Lookup(t *testing.T) {
	quotes := []PriceQuote{
		{Symbol: "BTCUSD", Price: *mustDecimal(t, "20000")},
		{Symbol: "ETHUSD", Price: *mustDecimal(t, "1500.25")},
	}
	book := NewPriceBook(quotes)

	assert.Equal(t, 2, book.Len())
	assert.Equal(t, "20000", book.Lookup("BTCUSD").String())
	assert.Equal(t, "1500.25", book.Lookup("ETHUSD").String())
}

func TestPriceBook_Lookup_MissingSymbolIsZero(t *testing.T) {
	book := NewPriceBook(nil)

	price := book.Lookup("DOGEUSD")
	require.NotNil(t, price)
	assert.True(t, price.IsZero())
}

func TestNormalizedBalance_WireShape(t *testing.T) {
	b := NormalizedBalance{
		CoinSymbol: "BTC",
		CoinAmount: *mustDecimal(t, "0.5"),
		FiatValue:  *mustDecimal(t, "10000.00"),
		FiatSymbol: FiatUSD,
	}

	data, err := sonic.Marshal(&b)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"coinSymbol": "BTC",
		"coinAmount": "0.5",
		"fiatValue": "10000.00",
		"fiatSymbol": "USD",
		"raw": null
	}`, string(data))
}
