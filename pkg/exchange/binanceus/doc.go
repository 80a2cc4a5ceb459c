// Package binanceus implements the Binance.US balance snapshot adapter.
//
// The adapter issues two reads per snapshot: the authenticated account
// endpoint and the public all-symbols price ticker. Both run concurrently and
// both must succeed. Balances with a positive free amount are valued against
// the <ASSET>USD quote, defaulting to zero when no quote exists.
package binanceus
