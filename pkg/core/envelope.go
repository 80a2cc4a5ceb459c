package core

import "github.com/cockroachdb/apd/v3"

// Fixed envelope messages. Callers depend on the exact strings, so they are
// constants rather than formatted text.
const (
	MsgOK               = "OK"
	MsgMethodNotAllowed = "Method Not supported"
	MsgFieldMissing     = "Field missing!"
	MsgError            = "error"
)

// Envelope is the fixed response wrapper every endpoint returns regardless of
// HTTP status. Data is null on every failure path.
type Envelope struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    *SnapshotData `json:"data"`
}

// SnapshotData is the success payload of a balance snapshot request.
type SnapshotData struct {
	AccountInfo  AccountInfo `json:"accountInfo"`
	TotalBalance apd.Decimal `json:"totalBalance"`
}

// AccountInfo wraps the normalized balance list.
type AccountInfo struct {
	Balances []NormalizedBalance `json:"balances"`
}

// OKEnvelope wraps a snapshot into the success envelope.
func OKEnvelope(snap *AccountSnapshot) Envelope {
	return Envelope{
		Success: true,
		Message: MsgOK,
		Data: &SnapshotData{
			AccountInfo:  AccountInfo{Balances: snap.Balances},
			TotalBalance: snap.Total,
		},
	}
}

// FailEnvelope builds a failure envelope with a null data field.
func FailEnvelope(message string) Envelope {
	return Envelope{
		Success: false,
		Message: message,
		Data:    nil,
	}
}
