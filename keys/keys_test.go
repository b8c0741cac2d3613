package keys

import (
	"bytes"
	"testing"

	"github.com/piprs/piprs/auth"
	"github.com/piprs/piprs/ipr"
)

func TestBuildEnvelope_RoundTripsThroughParse(t *testing.T) {
	condition := bytes.Repeat([]byte{0xC0}, ipr.ConditionLen)
	packet := []byte("opaque ilp packet")

	env, err := BuildEnvelope(condition, packet)
	if err != nil {
		t.Fatalf("BuildEnvelope: %v", err)
	}
	parsed, err := ipr.Parse(env)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !bytes.Equal(parsed.Condition, condition) {
		t.Fatalf("condition mismatch")
	}
	if !bytes.Equal(parsed.Packet, packet) {
		t.Fatalf("packet mismatch")
	}
}

func TestBuildEnvelope_RejectsBadCondition(t *testing.T) {
	for _, n := range []int{0, 31, 33} {
		if _, err := BuildEnvelope(make([]byte, n), nil); err == nil {
			t.Fatalf("condition length %d should be rejected", n)
		}
	}
}

func TestSignEnvelope_VerifiesUnderAuth(t *testing.T) {
	pub, priv, err := GenerateEd25519(nil)
	if err != nil {
		t.Fatalf("GenerateEd25519: %v", err)
	}
	env, err := BuildEnvelope(make([]byte, ipr.ConditionLen), []byte("packet"))
	if err != nil {
		t.Fatalf("BuildEnvelope: %v", err)
	}
	sig := SignEnvelope(env, priv)
	if err := auth.Verify(env, sig, pub); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestSignEnvelopeDilithium3_VerifiesUnderAuth(t *testing.T) {
	pk, sk, err := GenerateDilithium3(nil)
	if err != nil {
		t.Fatalf("GenerateDilithium3: %v", err)
	}
	pub, err := pk.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	env, err := BuildEnvelope(make([]byte, ipr.ConditionLen), []byte("pq packet"))
	if err != nil {
		t.Fatalf("BuildEnvelope: %v", err)
	}
	sig := SignEnvelopeDilithium3(env, sk)
	if err := auth.Verify(env, sig, pub); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestEncode_MatchesAuthDecoding(t *testing.T) {
	pub, _, err := GenerateEd25519(nil)
	if err != nil {
		t.Fatalf("GenerateEd25519: %v", err)
	}
	decoded, err := auth.DecodeKey(Encode(pub))
	if err != nil {
		t.Fatalf("DecodeKey: %v", err)
	}
	if !bytes.Equal(decoded, pub) {
		t.Fatalf("key did not survive encode/decode")
	}
}
