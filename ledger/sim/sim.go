// Package sim provides an in-process ledger simulator.
//
// It implements ledger.Ledger for the development daemon (piprs-ledgerd) and
// for tests that need a live Ledger gRPC service without a real ledger.
// Quotes are deterministic functions of the packet so tests can assert exact
// values.
package sim

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/piprs/piprs/ledger"
)

// DefaultQuoteTTL bounds how long a simulated quote remains valid.
const DefaultQuoteTTL = 10 * time.Second

// Ledger is a simulated ledger holding a fixed set of accounts.
type Ledger struct {
	// Connector is the account quoted as the forwarding connector.
	Connector string

	// QuoteTTL overrides DefaultQuoteTTL when non-zero.
	QuoteTTL time.Duration

	mu        sync.Mutex
	accounts  map[string]string
	transfers map[string]ledger.Transfer
}

func New() *Ledger {
	return &Ledger{
		Connector: "ledger.connector",
		accounts:  make(map[string]string),
		transfers: make(map[string]ledger.Transfer),
	}
}

// AddAccount registers an account/password pair the simulator will accept.
func (l *Ledger) AddAccount(account, password string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.accounts[account] = password
}

func (l *Ledger) Authenticate(ctx context.Context, account, password string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	want, ok := l.accounts[account]
	if !ok || want != password {
		return ledger.ErrCredentialRejected
	}
	return nil
}

// QuoteByPacket prices a packet at one source unit per packet byte.
// Empty packets have no route.
func (l *Ledger) QuoteByPacket(ctx context.Context, account string, packet []byte) (ledger.Quote, error) {
	if len(packet) == 0 {
		return ledger.Quote{}, ledger.ErrQuoteUnavailable
	}
	ttl := l.QuoteTTL
	if ttl <= 0 {
		ttl = DefaultQuoteTTL
	}
	return ledger.Quote{
		SourceAmount:     strconv.Itoa(len(packet)),
		ConnectorAccount: l.Connector,
		ExpiresAt:        time.Now().Add(ttl).UTC(),
	}, nil
}

// SendTransfer accepts a transfer for sending.
//
// A resubmission bearing an id the simulator has already seen is accepted
// without effect: duplicate arbitration by id is the ledger's job, and the
// gateway relies on it.
func (l *Ledger) SendTransfer(ctx context.Context, account string, t ledger.Transfer) error {
	if t.ID == "" || t.Amount == "" || t.To == "" {
		return ledger.ErrSubmitFailed
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, seen := l.transfers[t.ID]; seen {
		return nil
	}
	l.transfers[t.ID] = t
	return nil
}

// Transfers returns a snapshot of accepted transfers keyed by id.
func (l *Ledger) Transfers() map[string]ledger.Transfer {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]ledger.Transfer, len(l.transfers))
	for id, t := range l.transfers {
		out[id] = t
	}
	return out
}
