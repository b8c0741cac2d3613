package auth

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/cloudflare/circl/sign/dilithium/mode3"
)

func mustKeypair(t *testing.T, seedByte byte) (ed25519.PublicKey, ed25519.PrivateKey) {
	t.Helper()
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = seedByte
	}
	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)
	return pub, priv
}

func TestVerify_Ed25519RoundTrip(t *testing.T) {
	pub, priv := mustKeypair(t, 0xA1)
	envelope := []byte{0x02, 0x00, 0x01, 0x02, 0x03}

	sig := ed25519.Sign(priv, envelope)
	if err := Verify(envelope, sig, pub); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestVerify_BitFlips(t *testing.T) {
	pub, priv := mustKeypair(t, 0xB2)
	envelope := make([]byte, 48)
	envelope[0] = 0x02
	for i := 1; i < len(envelope); i++ {
		envelope[i] = byte(i * 3)
	}
	sig := ed25519.Sign(priv, envelope)

	flip := func(b []byte, i int) []byte {
		out := append([]byte(nil), b...)
		out[i] ^= 0x01
		return out
	}

	for i := range envelope {
		if err := Verify(flip(envelope, i), sig, pub); !errors.Is(err, ErrSignatureInvalid) {
			t.Fatalf("envelope bit %d: got %v want ErrSignatureInvalid", i, err)
		}
	}
	for i := range sig {
		if err := Verify(envelope, flip(sig, i), pub); !errors.Is(err, ErrSignatureInvalid) {
			t.Fatalf("signature bit %d: got %v want ErrSignatureInvalid", i, err)
		}
	}
	for i := range pub {
		if err := Verify(envelope, sig, flip(pub, i)); !errors.Is(err, ErrSignatureInvalid) {
			t.Fatalf("key bit %d: got %v want ErrSignatureInvalid", i, err)
		}
	}
}

func TestVerify_WrongKey(t *testing.T) {
	pubA, privA := mustKeypair(t, 0x01)
	pubB, _ := mustKeypair(t, 0x02)
	_ = pubA

	envelope := []byte("signed by A")
	sig := ed25519.Sign(privA, envelope)
	if err := Verify(envelope, sig, pubB); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("got %v want ErrSignatureInvalid", err)
	}
}

func TestVerify_MalformedLengths(t *testing.T) {
	pub, priv := mustKeypair(t, 0xC3)
	envelope := []byte("envelope")
	sig := ed25519.Sign(priv, envelope)

	cases := []struct {
		name string
		sig  []byte
		pub  []byte
	}{
		{"short key", sig, pub[:16]},
		{"long key", sig, append(append([]byte(nil), pub...), 0x00)},
		{"empty key", sig, nil},
		{"short sig", sig[:32], pub},
		{"empty sig", nil, pub},
		{"dilithium sig with ed25519 key", make([]byte, mode3.SignatureSize), pub},
	}
	for _, tc := range cases {
		if err := Verify(envelope, tc.sig, tc.pub); !errors.Is(err, ErrMalformed) {
			t.Fatalf("%s: got %v want ErrMalformed", tc.name, err)
		}
	}
}

func TestVerify_Dilithium3RoundTrip(t *testing.T) {
	pk, sk, err := mode3.GenerateKey(nil)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	pub, err := pk.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}

	envelope := []byte{0x02, 0xAA, 0xBB}
	sig := make([]byte, mode3.SignatureSize)
	mode3.SignTo(sk, envelope, sig)

	if err := Verify(envelope, sig, pub); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	envelope[1] ^= 0x01
	if err := Verify(envelope, sig, pub); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("got %v want ErrSignatureInvalid", err)
	}
}

func TestDecodeKey(t *testing.T) {
	pub, _ := mustKeypair(t, 0xD4)

	padded := base64.StdEncoding.EncodeToString(pub)
	raw := base64.RawStdEncoding.EncodeToString(pub)
	for _, enc := range []string{padded, raw} {
		got, err := DecodeKey(enc)
		if err != nil {
			t.Fatalf("DecodeKey(%q): %v", enc, err)
		}
		if string(got) != string(pub) {
			t.Fatalf("decoded key mismatch")
		}
	}

	for _, bad := range []string{"", "!!!not-base64!!!", base64.StdEncoding.EncodeToString([]byte("short"))} {
		if _, err := DecodeKey(bad); !errors.Is(err, ErrMalformed) {
			t.Fatalf("DecodeKey(%q): got %v want ErrMalformed", bad, err)
		}
	}
}

func TestDecodeSignature(t *testing.T) {
	sig := make([]byte, ed25519.SignatureSize)
	enc := base64.StdEncoding.EncodeToString(sig)
	if _, err := DecodeSignature(enc); err != nil {
		t.Fatalf("DecodeSignature: %v", err)
	}
	if _, err := DecodeSignature("%%%"); !errors.Is(err, ErrMalformed) {
		t.Fatalf("got %v want ErrMalformed", err)
	}
	if _, err := DecodeSignature(base64.StdEncoding.EncodeToString(make([]byte, 63))); !errors.Is(err, ErrMalformed) {
		t.Fatalf("got %v want ErrMalformed for 63-byte signature", err)
	}
}
