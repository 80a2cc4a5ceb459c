// Package gemini implements the Gemini balance snapshot adapter.
//
// Gemini's notional-balances endpoint returns USD values alongside each
// balance, so a single authenticated POST suffices and no separate price
// lookup happens. Authentication is a base64 JSON payload of the request path
// and a nonce, signed with HMAC-SHA384.
package gemini
