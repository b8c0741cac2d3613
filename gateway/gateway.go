// Package gateway implements the payment-request processing pipeline and
// sender registration.
//
// A payment runs decode → verify → registry lookup → connect → quote →
// derive-id → submit, strictly in that order; no stage runs before its
// predecessor succeeds, so a rejected request never causes a ledger call
// beyond those already made. Transfer submission is asynchronous: the caller
// is answered once the quote resolves, and submission failures flow to the
// dead-letter archive and the log instead of the (already answered) caller.
package gateway

import (
	"context"
	"encoding/base64"

	"github.com/rs/zerolog"

	"github.com/piprs/piprs/auth"
	"github.com/piprs/piprs/deadletter"
	"github.com/piprs/piprs/ipr"
	"github.com/piprs/piprs/ledger"
	"github.com/piprs/piprs/registry"
)

// PayRequest is a payment submission, all fields in their wire-text form.
type PayRequest struct {
	Key       string // base64 verifying key
	Signature string // base64 detached signature over the envelope
	IPR       string // base64 envelope
}

// RegisterRequest is a sender registration.
type RegisterRequest struct {
	Key      string // base64 verifying key
	Account  string // ledger account identifier
	Password string // ledger secret
}

// Service wires the pipeline to its collaborators.
type Service struct {
	Registry registry.Store
	Ledger   ledger.Dialer
	Runner   Runner
	Archive  deadletter.Archive
	Log      zerolog.Logger
}

// New returns a Service with asynchronous submission.
func New(store registry.Store, dialer ledger.Dialer, archive deadletter.Archive, log zerolog.Logger) *Service {
	return &Service{
		Registry: store,
		Ledger:   dialer,
		Runner:   Async{},
		Archive:  archive,
		Log:      log,
	}
}

// Pay processes one signed payment request and returns the derived transfer
// id once the submission has been accepted for sending.
//
// A nil error means "submitted", not "settled": the transfer outcome on the
// ledger is deliberately not awaited.
func (s *Service) Pay(ctx context.Context, req PayRequest) (string, error) {
	if req.Key == "" || req.Signature == "" || req.IPR == "" {
		return "", newError(KindInput, "PIPRS-INPUT-001",
			"all of signature, key, and ipr must be specified")
	}

	envelope, err := base64.StdEncoding.DecodeString(req.IPR)
	if err != nil {
		return "", wrapError(KindInput, "PIPRS-INPUT-002", "ipr is not valid base64", err)
	}

	env, err := ipr.Parse(envelope)
	if err != nil {
		switch err {
		case ipr.ErrTruncated:
			return "", wrapError(KindDecode, "PIPRS-IPR-001", "ipr envelope is truncated", err)
		case ipr.ErrInvalidVersion:
			return "", wrapError(KindDecode, "PIPRS-IPR-002", "ipr envelope version is not supported", err)
		default:
			return "", wrapError(KindDecode, "PIPRS-IPR-003", "ipr envelope is malformed", err)
		}
	}

	pub, err := auth.DecodeKey(req.Key)
	if err != nil {
		return "", wrapError(KindAuth, "PIPRS-AUTH-001", "key is malformed", err)
	}
	sig, err := auth.DecodeSignature(req.Signature)
	if err != nil {
		return "", wrapError(KindAuth, "PIPRS-AUTH-002", "signature is malformed", err)
	}
	// Verification runs over env.Raw, the exact bytes received: any decoded
	// or re-encoded form would void the signature's meaning.
	if err := auth.Verify(env.Raw, sig, pub); err != nil {
		if err == auth.ErrMalformed {
			return "", wrapError(KindAuth, "PIPRS-AUTH-003", "key and signature scheme mismatch", err)
		}
		return "", wrapError(KindAuth, "PIPRS-AUTH-004", "signature does not pass verification", err)
	}

	user, err := s.Registry.Get(ctx, req.Key)
	if err != nil {
		if registry.IsNotFound(err) {
			return "", wrapError(KindUnknownSender, "PIPRS-AUTH-101", "no user with given key exists", err)
		}
		return "", wrapError(KindInternal, "PIPRS-REG-001", "registry lookup failed", err)
	}

	conn, err := s.Ledger.Connect(ctx, user.Account, user.Password)
	if err != nil {
		return "", wrapError(KindQuote, "PIPRS-QUOTE-001", "ledger connection failed", err)
	}

	quote, err := conn.QuoteByPacket(ctx, env.Packet)
	if err != nil {
		_ = conn.Close()
		return "", wrapError(KindQuote, "PIPRS-QUOTE-002", "no quote available for packet", err)
	}

	id := ipr.TransferID(env.Raw)
	transfer := ledger.Transfer{
		ID:                 id,
		Packet:             env.Packet,
		ExecutionCondition: env.Condition,
		Amount:             quote.SourceAmount,
		To:                 quote.ConnectorAccount,
		ExpiresAt:          quote.ExpiresAt,
	}

	s.Runner.Do(func() {
		s.submit(conn, envelope, transfer)
	})
	return id, nil
}

// submit performs the fire-and-forget send. It runs detached from the
// request: the caller has been answered, so failures go to the dead-letter
// archive and the log.
func (s *Service) submit(conn ledger.Connection, envelope []byte, t ledger.Transfer) {
	defer conn.Close()

	if err := conn.SendTransfer(context.Background(), t); err != nil {
		serr := wrapError(KindSubmit, "PIPRS-SUBMIT-001", "transfer submission failed", err)
		logErr := s.Log.Error().
			Str("transfer_id", t.ID).
			Str("rule_id", RuleID(serr)).
			Err(err)
		if s.Archive != nil {
			if cid, aerr := s.Archive.Put(envelope); aerr != nil {
				logErr = logErr.AnErr("deadletter_error", aerr)
			} else {
				logErr = logErr.Str("deadletter_cid", cid.String())
			}
		}
		logErr.Msg("transfer submission failed after accept")
		return
	}
	s.Log.Debug().Str("transfer_id", t.ID).Msg("transfer submitted")
}

// Register validates a sender's ledger credentials and records the
// key → credentials mapping.
func (s *Service) Register(ctx context.Context, req RegisterRequest) error {
	if req.Key == "" || req.Account == "" || req.Password == "" {
		return newError(KindInput, "PIPRS-INPUT-003",
			"all of key, account, and password must be specified")
	}

	// Connecting proves the credentials are live; the connection itself is
	// not kept.
	conn, err := s.Ledger.Connect(ctx, req.Account, req.Password)
	if err != nil {
		return wrapError(KindCredential, "PIPRS-CRED-001", "ledger rejected credentials", err)
	}
	_ = conn.Close()

	err = s.Registry.Insert(ctx, registry.User{
		Key:      req.Key,
		Account:  req.Account,
		Password: req.Password,
	})
	if err != nil {
		if registry.IsDuplicate(err) {
			return wrapError(KindDuplicate, "PIPRS-REG-002", "key is already registered", err)
		}
		return wrapError(KindInternal, "PIPRS-REG-003", "registry insert failed", err)
	}
	return nil
}
