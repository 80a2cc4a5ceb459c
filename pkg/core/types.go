package core

import (
	"github.com/cockroachdb/apd/v3"
)

// FiatUSD is the only fiat currency snapshots are denominated in.
const FiatUSD = "USD"

// NormalizedBalance is the uniform balance record every exchange adapter
// produces. Amounts serialize as decimal strings; FiatValue always carries
// exactly two fractional digits.
type NormalizedBalance struct {
	// CoinSymbol is the asset code as reported by the exchange (e.g. "BTC").
	CoinSymbol string `json:"coinSymbol"`
	// CoinAmount is the held amount of the asset.
	CoinAmount apd.Decimal `json:"coinAmount"`
	// FiatValue is the USD notional of CoinAmount, quantized to cents.
	FiatValue apd.Decimal `json:"fiatValue"`
	// FiatSymbol is always FiatUSD.
	FiatSymbol string `json:"fiatSymbol"`
	// Raw is the untouched exchange-specific balance row.
	Raw any `json:"raw"`
}

// AccountSnapshot is the normalized result of one balance query: every kept
// position plus the exact decimal sum of their already-rounded fiat values.
type AccountSnapshot struct {
	Balances []NormalizedBalance `json:"balances"`
	Total    apd.Decimal         `json:"totalBalance"`
}

// PriceQuote is one entry of a public last-price ticker snapshot.
type PriceQuote struct {
	Symbol string      `json:"symbol"`
	Price  apd.Decimal `json:"price"`
}

// PriceBook is a last-price lookup table keyed by pair symbol.
type PriceBook struct {
	prices map[string]*apd.Decimal
}

// NewPriceBook builds a PriceBook from a ticker snapshot.
func NewPriceBook(quotes []PriceQuote) *PriceBook {
	prices := make(map[string]*apd.Decimal, len(quotes))
	for i := range quotes {
		prices[quotes[i].Symbol] = &quotes[i].Price
	}
	return &PriceBook{prices: prices}
}

// Lookup returns the last price for the given pair symbol, or a zero decimal
// when the symbol is not quoted. A missing quote is not an error: the caller
// values the position at zero.
func (b *PriceBook) Lookup(symbol string) *apd.Decimal {
	if p, ok := b.prices[symbol]; ok {
		return p
	}
	return new(apd.Decimal)
}

// Len returns the number of quoted symbols.
func (b *PriceBook) Len() int {
	return len(b.prices)
}
