package grpcledger

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/piprs/piprs/ledger"
)

// Dialer implements ledger.Dialer over a Ledger gRPC service.
//
// One Dialer holds one underlying gRPC channel; each Connect validates a set
// of credentials and yields a Connection that attaches them to every RPC.
type Dialer struct {
	cc     *grpc.ClientConn
	client LedgerClient

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

type DialOptions struct {
	// Timeout applies to the initial dial when non-zero, and becomes the
	// per-RPC timeout of the returned Dialer.
	Timeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero.
	MaxMsgBytes int
}

func Dial(target string, opts DialOptions) (*Dialer, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
			),
		)
	}

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cc, err := grpc.DialContext(ctx, target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return &Dialer{cc: cc, client: NewLedgerClient(cc), Timeout: opts.Timeout}, nil
}

func (d *Dialer) Close() error {
	if d == nil || d.cc == nil {
		return nil
	}
	return d.cc.Close()
}

// Connect validates account/password against the ledger and returns a
// Connection bound to them. ledger.ErrCredentialRejected is returned when the
// ledger refuses the credentials.
func (d *Dialer) Connect(ctx context.Context, account, password string) (ledger.Connection, error) {
	if d == nil || d.client == nil {
		return nil, ledger.ErrCredentialRejected
	}
	conn := &Connection{dialer: d, account: account, password: password}

	ctx, cancel := conn.ctx(ctx)
	defer cancel()

	reply, err := d.client.Auth(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, mapRPC(err)
	}
	if !reply.GetValue() {
		return nil, ledger.ErrCredentialRejected
	}
	return conn, nil
}

// Connection implements ledger.Connection for one authenticated account.
type Connection struct {
	dialer   *Dialer
	account  string
	password string
}

func (c *Connection) QuoteByPacket(ctx context.Context, packet []byte) (ledger.Quote, error) {
	ctx, cancel := c.ctx(ctx)
	defer cancel()

	reply, err := c.dialer.client.Quote(ctx, wrapperspb.Bytes(packet))
	if err != nil {
		return ledger.Quote{}, mapRPC(err)
	}
	q, err := quoteFromStruct(reply)
	if err != nil {
		return ledger.Quote{}, err
	}
	return q, nil
}

func (c *Connection) SendTransfer(ctx context.Context, t ledger.Transfer) error {
	in, err := transferToStruct(t)
	if err != nil {
		return err
	}

	ctx, cancel := c.ctx(ctx)
	defer cancel()

	reply, err := c.dialer.client.Transfer(ctx, in)
	if err != nil {
		return mapRPC(err)
	}
	if !reply.GetValue() {
		return ledger.ErrSubmitFailed
	}
	return nil
}

// Close releases nothing today: the underlying channel belongs to the Dialer
// and is reused across connections.
func (c *Connection) Close() error { return nil }

func (c *Connection) ctx(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = withCredentials(ctx, c.account, c.password)
	if c.dialer.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.dialer.Timeout)
}
