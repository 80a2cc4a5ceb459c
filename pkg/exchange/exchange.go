// Package exchange defines the adapter interface every supported exchange
// implements, plus a registry for wiring adapters into the HTTP surface.
package exchange

import (
	"context"

	"github.com/crypto-terminal/crypto-quicktake-lambda/pkg/core"
)

// Exchange is the unified interface for retrieving a fiat-valued balance
// snapshot from a cryptocurrency exchange. Credentials arrive per call and
// are never retained by the implementation.
type Exchange interface {
	// Name returns the exchange identifier.
	Name() string

	// Snapshot fetches the account balances, joins them against current USD
	// prices, and returns the normalized snapshot. Any upstream failure
	// aborts the whole operation; there is no partial result.
	Snapshot(ctx context.Context, creds core.Credentials) (*core.AccountSnapshot, error)

	// Close releases resources held by the adapter.
	Close() error
}
