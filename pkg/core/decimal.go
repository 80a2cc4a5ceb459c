package core

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// fiatCtx is the decimal context for all fiat math. 25 digits of precision
// covers any exchange-reported amount times any quoted price without loss;
// the zero Rounding value is half-up, which matches cent rounding.
var fiatCtx = apd.BaseContext.WithPrecision(25)

// centExponent quantizes to two fractional digits.
const centExponent = -2

// FiatValue computes price × amount rounded to cents.
func FiatValue(price, amount *apd.Decimal) (apd.Decimal, error) {
	var v apd.Decimal
	if _, err := fiatCtx.Mul(&v, price, amount); err != nil {
		return apd.Decimal{}, fmt.Errorf("multiply fiat value: %w", err)
	}
	return QuantizeFiat(&v)
}

// QuantizeFiat rounds a decimal to cents.
func QuantizeFiat(d *apd.Decimal) (apd.Decimal, error) {
	var v apd.Decimal
	if _, err := fiatCtx.Quantize(&v, d, centExponent); err != nil {
		return apd.Decimal{}, fmt.Errorf("quantize fiat value: %w", err)
	}
	return v, nil
}

// SumFiat returns the exact sum of already-rounded fiat values. The result
// keeps the cent exponent, so a zero sum still renders as "0.00".
func SumFiat(balances []NormalizedBalance) (apd.Decimal, error) {
	var total apd.Decimal
	for i := range balances {
		if _, err := fiatCtx.Add(&total, &total, &balances[i].FiatValue); err != nil {
			return apd.Decimal{}, fmt.Errorf("sum fiat values: %w", err)
		}
	}
	return QuantizeFiat(&total)
}

// ParseDecimal sets dest from a decimal string. The empty string yields zero,
// matching exchanges that omit optional numeric fields.
func ParseDecimal(dest *apd.Decimal, s string) error {
	if s == "" {
		*dest = apd.Decimal{}
		return nil
	}
	if _, _, err := apd.BaseContext.SetString(dest, s); err != nil {
		return fmt.Errorf("set decimal from string: %w", err)
	}
	return nil
}
