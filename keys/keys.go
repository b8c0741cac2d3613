// Package keys provides sender-side helpers: keypair generation, envelope
// construction, and detached envelope signing.
//
// The gateway itself never signs anything; these helpers exist for the
// piprs-keygen tool and for tests that need well-formed signed requests.
package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"

	"github.com/cloudflare/circl/sign/dilithium/mode3"

	"github.com/piprs/piprs/ipr"
)

// GenerateEd25519 returns a new ed25519 keypair.
// A nil reader uses crypto/rand.
func GenerateEd25519(r io.Reader) (ed25519.PublicKey, ed25519.PrivateKey, error) {
	if r == nil {
		r = rand.Reader
	}
	return ed25519.GenerateKey(r)
}

// GenerateDilithium3 returns a new dilithium3 keypair.
// A nil reader uses crypto/rand.
func GenerateDilithium3(r io.Reader) (*mode3.PublicKey, *mode3.PrivateKey, error) {
	return mode3.GenerateKey(r)
}

// BuildEnvelope assembles a version-0x02 payment envelope from a 32-byte
// execution condition and an opaque ILP packet.
func BuildEnvelope(condition, packet []byte) ([]byte, error) {
	if len(condition) != ipr.ConditionLen {
		return nil, errors.New("keys: condition must be exactly 32 bytes")
	}
	env := make([]byte, 0, ipr.HeaderLen+len(packet))
	env = append(env, ipr.Version)
	env = append(env, condition...)
	env = append(env, packet...)
	return env, nil
}

// SignEnvelope produces a detached ed25519 signature over the raw envelope
// bytes, the form auth.Verify expects.
func SignEnvelope(envelope []byte, priv ed25519.PrivateKey) []byte {
	return ed25519.Sign(priv, envelope)
}

// SignEnvelopeDilithium3 produces a detached dilithium3 signature over the
// raw envelope bytes.
func SignEnvelopeDilithium3(envelope []byte, priv *mode3.PrivateKey) []byte {
	sig := make([]byte, mode3.SignatureSize)
	mode3.SignTo(priv, envelope, sig)
	return sig
}

// Encode renders key or signature bytes in their base64 wire form.
func Encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
