package binanceus

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"github.com/crypto-terminal/crypto-quicktake-lambda/pkg/core"
)

// binanceBalance is a single asset balance row from the Binance.US account
// endpoint. It is carried verbatim into NormalizedBalance.Raw.
type binanceBalance struct {
	Asset  string      `json:"asset"`
	Free   apd.Decimal `json:"free"`
	Locked apd.Decimal `json:"locked"`
}

// binanceAccount is the account information response from Binance.US.
type binanceAccount struct {
	MakerCommission  int64            `json:"makerCommission"`
	TakerCommission  int64            `json:"takerCommission"`
	BuyerCommission  int64            `json:"buyerCommission"`
	SellerCommission int64            `json:"sellerCommission"`
	CanTrade         bool             `json:"canTrade"`
	CanWithdraw      bool             `json:"canWithdraw"`
	CanDeposit       bool             `json:"canDeposit"`
	Balances         []binanceBalance `json:"balances"`
}

// Normalizer converts Binance.US account and ticker data into the canonical
// snapshot shape.
type Normalizer struct{}

// NewNormalizer creates a new Normalizer instance.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// NormalizeSnapshot keeps balances with a positive free amount, values each
// against the <ASSET>USD quote (zero when unquoted), and totals the rounded
// fiat values. The fiat multiply is decimal, never floating point, so cent
// values cannot drift.
func (n *Normalizer) NormalizeSnapshot(account *binanceAccount, book *core.PriceBook) (*core.AccountSnapshot, error) {
	funded := filterFunded(account.Balances)

	balances := make([]core.NormalizedBalance, 0, len(funded))
	for _, b := range funded {
		b := b
		price := book.Lookup(b.Asset + core.FiatUSD)

		fiat, err := core.FiatValue(price, &b.Free)
		if err != nil {
			return nil, fmt.Errorf("value %s balance: %w", b.Asset, err)
		}

		balances = append(balances, core.NormalizedBalance{
			CoinSymbol: b.Asset,
			CoinAmount: b.Free,
			FiatValue:  fiat,
			FiatSymbol: core.FiatUSD,
			Raw:        &b,
		})
	}

	total, err := core.SumFiat(balances)
	if err != nil {
		return nil, fmt.Errorf("total balance: %w", err)
	}

	return &core.AccountSnapshot{Balances: balances, Total: total}, nil
}

// filterFunded keeps balances whose free amount is strictly positive. Locked
// amounts do not count; a fully locked position is not spendable and the
// account endpoint reports it separately.
func filterFunded(balances []binanceBalance) []binanceBalance {
	funded := make([]binanceBalance, 0, len(balances))
	for _, b := range balances {
		if b.Free.Sign() > 0 {
			funded = append(funded, b)
		}
	}
	return funded
}
