package sim

import (
	"context"

	"github.com/piprs/piprs/ledger"
)

// Dialer implements ledger.Dialer directly over a simulated Ledger, with no
// transport in between. The gateway can run against it when no real ledger
// daemon is configured.
type Dialer struct {
	Ledger *Ledger
}

func (d Dialer) Connect(ctx context.Context, account, password string) (ledger.Connection, error) {
	if err := d.Ledger.Authenticate(ctx, account, password); err != nil {
		return nil, err
	}
	return conn{ledger: d.Ledger, account: account}, nil
}

type conn struct {
	ledger  *Ledger
	account string
}

func (c conn) QuoteByPacket(ctx context.Context, packet []byte) (ledger.Quote, error) {
	return c.ledger.QuoteByPacket(ctx, c.account, packet)
}

func (c conn) SendTransfer(ctx context.Context, t ledger.Transfer) error {
	return c.ledger.SendTransfer(ctx, c.account, t)
}

func (c conn) Close() error { return nil }
