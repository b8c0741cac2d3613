// Package auth verifies the detached signature a sender presents over a
// payment envelope.
//
// Verification always runs over the unparsed envelope bytes exactly as
// received. Decoding the envelope before verifying, or verifying a
// re-serialized form, would open the door to canonicalization attacks, so the
// package only ever sees the raw byte string.
//
// Two signature schemes are supported, selected by the decoded public key
// length: ed25519 (the protocol default) and dilithium3.
package auth

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"

	"github.com/cloudflare/circl/sign/dilithium/mode3"
)

var (
	// ErrMalformed reports a key or signature that does not decode to a
	// length valid for any supported scheme.
	ErrMalformed = errors.New("auth: malformed key or signature")

	// ErrSignatureInvalid reports a well-formed signature that does not
	// verify over the envelope under the given key.
	ErrSignatureInvalid = errors.New("auth: signature does not pass verification")
)

// DecodeKey decodes a base64 verifying key from its wire form.
// Both padded and raw standard encodings are accepted.
func DecodeKey(s string) ([]byte, error) {
	b, err := decodeBase64(s)
	if err != nil {
		return nil, ErrMalformed
	}
	switch len(b) {
	case ed25519.PublicKeySize, mode3.PublicKeySize:
		return b, nil
	}
	return nil, ErrMalformed
}

// DecodeSignature decodes a base64 detached signature from its wire form.
func DecodeSignature(s string) ([]byte, error) {
	b, err := decodeBase64(s)
	if err != nil {
		return nil, ErrMalformed
	}
	switch len(b) {
	case ed25519.SignatureSize, mode3.SignatureSize:
		return b, nil
	}
	return nil, ErrMalformed
}

// Verify checks sig as a detached signature over the full envelope bytes
// under pub.
//
// The scheme is selected by key length; the signature length must match the
// same scheme or ErrMalformed is returned. Verify is pure: no I/O, no
// mutation, deterministic for identical inputs.
func Verify(envelope, sig, pub []byte) error {
	switch len(pub) {
	case ed25519.PublicKeySize:
		if len(sig) != ed25519.SignatureSize {
			return ErrMalformed
		}
		if !ed25519.Verify(ed25519.PublicKey(pub), envelope, sig) {
			return ErrSignatureInvalid
		}
		return nil
	case mode3.PublicKeySize:
		if len(sig) != mode3.SignatureSize {
			return ErrMalformed
		}
		var pk mode3.PublicKey
		if err := pk.UnmarshalBinary(pub); err != nil {
			return ErrMalformed
		}
		if !mode3.Verify(&pk, envelope, sig) {
			return ErrSignatureInvalid
		}
		return nil
	default:
		return ErrMalformed
	}
}

func decodeBase64(s string) ([]byte, error) {
	// Prefer standard padded encoding, but accept raw encoding too.
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}
