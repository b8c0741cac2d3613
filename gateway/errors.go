package gateway

import "errors"

// Kind is a stable category for programmatic error handling.
//
// These categories are intended to remain stable across versions.
// Callers should branch on Kind/RuleID rather than matching error strings.
//
// NOTE: Error() strings are intentionally kept human-readable and may evolve.
// Use errors.As to extract *Error for structured handling.
type Kind string

const (
	// KindInput: a required request field is missing or not decodable.
	KindInput Kind = "Input"
	// KindDecode: the envelope bytes violate the IPR wire format.
	KindDecode Kind = "Decode"
	// KindAuth: the signature or key is malformed or does not verify.
	KindAuth Kind = "Auth"
	// KindUnknownSender: no registry entry for the presented key.
	KindUnknownSender Kind = "UnknownSender"
	// KindQuote: the ledger could not resolve a route or price, or was
	// unreachable during payment processing.
	KindQuote Kind = "Quote"
	// KindCredential: the ledger rejected credentials at registration.
	KindCredential Kind = "Credential"
	// KindDuplicate: the verifying key is already registered.
	KindDuplicate Kind = "Duplicate"
	// KindSubmit: an asynchronous transfer submission failed after the
	// caller was answered. Never surfaced in a response.
	KindSubmit Kind = "Submit"
	// KindInternal: registry or wiring faults.
	KindInternal Kind = "Internal"
)

// Error is the gateway's structured error type.
//
// RuleID is a stable identifier (e.g. PIPRS-IPR-001, PIPRS-AUTH-002) that
// names the violated contract. Message is intended for humans and for the
// HTTP error body; do not match on it.
type Error struct {
	Kind    Kind
	RuleID  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(kind Kind, ruleID, msg string) error {
	return &Error{Kind: kind, RuleID: ruleID, Message: msg}
}

func wrapError(kind Kind, ruleID, msg string, cause error) error {
	if cause == nil {
		return newError(kind, ruleID, msg)
	}
	return &Error{Kind: kind, RuleID: ruleID, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// RuleID returns the stable RuleID for a structured error, or "" if unknown.
func RuleID(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.RuleID
}

// ErrKind returns the Kind for a structured error, or KindInternal if err is
// not a *Error.
func ErrKind(err error) Kind {
	var e *Error
	if !errors.As(err, &e) {
		return KindInternal
	}
	return e.Kind
}
