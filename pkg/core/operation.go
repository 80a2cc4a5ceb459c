package core

// Operation represents a type of read performed against an exchange.
type Operation int

// Operation constants define the supported exchange reads.
const (
	// OpGetAccount retrieves authenticated account balances.
	OpGetAccount Operation = iota
	// OpGetPrices retrieves the public last-price ticker for all symbols.
	OpGetPrices
	// OpGetNotionalBalances retrieves balances with USD notional values.
	OpGetNotionalBalances
)

// String returns the string representation of the operation.
func (o Operation) String() string {
	return [...]string{
		"GET_ACCOUNT",
		"GET_PRICES",
		"GET_NOTIONAL_BALANCES",
	}[o]
}
