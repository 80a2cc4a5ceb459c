package gemini

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"github.com/crypto-terminal/crypto-quicktake-lambda/pkg/core"
)

// geminiNotionalBalance is one row of the notional-balances response. The
// exchange reports the USD notional alongside each amount, so no local price
// lookup is needed. The row is carried verbatim into NormalizedBalance.Raw.
type geminiNotionalBalance struct {
	Currency                       string      `json:"currency"`
	Amount                         apd.Decimal `json:"amount"`
	AmountNotional                 apd.Decimal `json:"amountNotional"`
	Available                      apd.Decimal `json:"available"`
	AvailableNotional              apd.Decimal `json:"availableNotional"`
	AvailableForWithdrawal         apd.Decimal `json:"availableForWithdrawal"`
	AvailableForWithdrawalNotional apd.Decimal `json:"availableForWithdrawalNotional"`
}

// Normalizer converts Gemini notional-balance rows into the canonical
// snapshot shape.
type Normalizer struct{}

// NewNormalizer creates a new Normalizer instance.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// NormalizeSnapshot maps every returned row; the endpoint already omits
// zero-notional dust, so no local filter applies. The exchange-provided
// notional is quantized to cents and the rounded values are totaled exactly.
func (n *Normalizer) NormalizeSnapshot(rows []geminiNotionalBalance) (*core.AccountSnapshot, error) {
	balances := make([]core.NormalizedBalance, 0, len(rows))
	for _, row := range rows {
		row := row
		fiat, err := core.QuantizeFiat(&row.AmountNotional)
		if err != nil {
			return nil, fmt.Errorf("value %s balance: %w", row.Currency, err)
		}

		balances = append(balances, core.NormalizedBalance{
			CoinSymbol: row.Currency,
			CoinAmount: row.Amount,
			FiatValue:  fiat,
			FiatSymbol: core.FiatUSD,
			Raw:        &row,
		})
	}

	total, err := core.SumFiat(balances)
	if err != nil {
		return nil, fmt.Errorf("total balance: %w", err)
	}

	return &core.AccountSnapshot{Balances: balances, Total: total}, nil
}
