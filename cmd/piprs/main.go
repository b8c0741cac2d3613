package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/piprs/piprs/config"
	"github.com/piprs/piprs/deadletter"
	"github.com/piprs/piprs/gateway"
	"github.com/piprs/piprs/ledger/grpcledger"
	"github.com/piprs/piprs/registry/sqlite"
	"github.com/piprs/piprs/web"
)

func main() {
	fs := flag.NewFlagSet("piprs", flag.ExitOnError)
	configPath := fs.String("config", "", "JSON config file")
	listen := fs.String("listen", "", "HTTP listen address (overrides config)")
	store := fs.String("store", "", "SQLite registry path (overrides config)")
	ledgerTarget := fs.String("ledger", "", "ledger gRPC target (overrides config)")
	deadLetterDir := fs.String("deadletter", "", "dead-letter directory (overrides config)")
	logLevel := fs.String("log-level", "", "log level (overrides config)")

	_ = fs.Parse(os.Args[1:])

	cfg := config.Default()
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	cfg, err = config.FromEnv(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *store != "" {
		cfg.Store = *store
	}
	if *ledgerTarget != "" {
		cfg.Ledger = *ledgerTarget
	}
	if *deadLetterDir != "" {
		cfg.DeadLetterDir = *deadLetterDir
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(cfg.Level())

	reg, err := sqlite.Open(cfg.Store)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer reg.Close()

	dialer, err := grpcledger.Dial(cfg.Ledger, grpcledger.DialOptions{
		Timeout: time.Duration(cfg.LedgerTimeoutMS) * time.Millisecond,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer dialer.Close()

	var archive deadletter.Archive
	if cfg.DeadLetterDir != "" {
		archive, err = deadletter.NewFS(cfg.DeadLetterDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	} else {
		archive = deadletter.NewMemory()
	}

	svc := gateway.New(reg, dialer, archive, logger)
	server := web.NewServer(svc, logger)

	logger.Info().
		Str("listen", cfg.Listen).
		Str("store", cfg.Store).
		Str("ledger", cfg.Ledger).
		Msg("piprs listening")
	if err := server.Run(cfg.Listen); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
