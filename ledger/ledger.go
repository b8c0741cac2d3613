// Package ledger defines the gateway's contract with the connected ledger:
// credential validation, quote resolution, and transfer submission.
//
// The gateway never interprets ILP packets or amounts itself; both sides of
// this contract treat the packet as opaque bytes and amounts as decimal
// strings.
package ledger

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCredentialRejected = errors.New("ledger: credentials rejected")
	ErrQuoteUnavailable   = errors.New("ledger: no quote available for packet")
	ErrSubmitFailed       = errors.New("ledger: transfer submission failed")
)

// Quote is a resolved price and route for forwarding a packet.
type Quote struct {
	SourceAmount     string
	ConnectorAccount string
	ExpiresAt        time.Time
}

// Transfer is a fully-specified transfer instruction.
//
// ID is the deterministic idempotency key derived from the payment envelope;
// the ledger recognizes a duplicate submission by an identical ID.
type Transfer struct {
	ID                 string
	Packet             []byte
	ExecutionCondition []byte
	Amount             string
	To                 string
	ExpiresAt          time.Time
}

// Connection is an authenticated session bound to one ledger account.
//
// Contract:
// - QuoteByPacket MUST return ErrQuoteUnavailable when no route or price can
//   be resolved. It may block on network I/O and must not mutate shared state.
// - SendTransfer returns once the submission is accepted for sending; it does
//   not wait for fulfillment, rejection, or expiry.
// - A Connection is scoped to a single request and is not shared.
type Connection interface {
	QuoteByPacket(ctx context.Context, packet []byte) (Quote, error)
	SendTransfer(ctx context.Context, t Transfer) error
	Close() error
}

// Dialer validates credentials against the ledger and yields a Connection
// bound to them.
type Dialer interface {
	Connect(ctx context.Context, account, password string) (Connection, error)
}

// Ledger is the server-side contract implemented by a real or simulated
// ledger behind the gRPC service in grpcledger.
type Ledger interface {
	Authenticate(ctx context.Context, account, password string) error
	QuoteByPacket(ctx context.Context, account string, packet []byte) (Quote, error)
	SendTransfer(ctx context.Context, account string, t Transfer) error
}
