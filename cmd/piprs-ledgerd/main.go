// piprs-ledgerd serves the Ledger gRPC API over the in-process simulator.
// It exists for development and testing: a piprs gateway pointed at it can
// register users and submit payments without a real ledger.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"strings"

	"google.golang.org/grpc"

	"github.com/piprs/piprs/ledger/grpcledger"
	"github.com/piprs/piprs/ledger/sim"
)

func main() {
	fs := flag.NewFlagSet("piprs-ledgerd", flag.ExitOnError)
	listen := fs.String("listen", "127.0.0.1:7777", "listen address")
	connector := fs.String("connector", "ledger.connector", "connector account quoted for every packet")
	quoteTTL := fs.Duration("quote-ttl", sim.DefaultQuoteTTL, "validity window of issued quotes")

	backend := sim.New()
	accounts := 0
	fs.Func("account", "account:password pair to accept (repeatable)", func(v string) error {
		account, password, ok := strings.Cut(v, ":")
		if !ok || account == "" {
			return fmt.Errorf("expected account:password, got %q", v)
		}
		backend.AddAccount(account, password)
		accounts++
		return nil
	})

	_ = fs.Parse(os.Args[1:])
	if accounts == 0 {
		fmt.Fprintln(os.Stderr, "at least one -account account:password is required")
		os.Exit(2)
	}
	backend.Connector = *connector
	backend.QuoteTTL = *quoteTTL

	lis, err := net.Listen("tcp", *listen)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer lis.Close()

	s := grpc.NewServer()
	grpcledger.RegisterLedgerServer(s, &grpcledger.Server{Ledger: backend})

	fmt.Fprintf(os.Stderr, "piprs-ledgerd listening on %s (accounts=%d, quote-ttl=%s)\n",
		lis.Addr().String(), accounts, *quoteTTL)
	if err := s.Serve(lis); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
