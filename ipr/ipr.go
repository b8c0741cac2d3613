// Package ipr implements decoding of the Interledger Payment Request
// envelope and derivation of the deterministic transfer identifier.
//
// An IPR envelope is a fixed-prefix binary structure:
//
//	offset 0, 1 byte:   version, must be 0x02
//	offset 1, 32 bytes: execution condition (hash-lock)
//	offset 33:          opaque ILP packet, interpreted only by the ledger layer
//
// The envelope is never re-encoded: signatures, transfer ids, and quotes are
// all computed over the exact byte string received on the wire.
package ipr

import "errors"

// Version is the only envelope version this gateway accepts.
const Version = 0x02

// HeaderLen is the minimum envelope length: version byte plus condition.
const HeaderLen = 1 + ConditionLen

// ConditionLen is the fixed length of the execution condition.
const ConditionLen = 32

var (
	ErrInvalidVersion = errors.New("ipr: unsupported envelope version")
	ErrTruncated      = errors.New("ipr: envelope shorter than header")
)

// Envelope is a decoded payment request.
//
// Condition and Packet are subslices of Raw, not copies. Callers must not
// mutate any of the three: the raw bytes remain the input to signature
// verification and transfer-id derivation.
type Envelope struct {
	Raw       []byte
	Condition []byte
	Packet    []byte
}

// Parse decodes raw envelope bytes.
//
// It returns ErrTruncated when the input is shorter than the fixed header and
// ErrInvalidVersion when the version byte is not 0x02. On success the returned
// Envelope borrows the input buffer. Parse has no side effects.
func Parse(raw []byte) (Envelope, error) {
	if len(raw) < HeaderLen {
		return Envelope{}, ErrTruncated
	}
	if raw[0] != Version {
		return Envelope{}, ErrInvalidVersion
	}
	return Envelope{
		Raw:       raw,
		Condition: raw[1:HeaderLen],
		Packet:    raw[HeaderLen:],
	}, nil
}
