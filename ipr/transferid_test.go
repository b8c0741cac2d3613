package ipr

import (
	"crypto/sha256"
	"fmt"
	"regexp"
	"testing"
)

// 4-2-2-8 byte groups: 8, 4, 4, and 16 hex characters.
var transferIDShape = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{16}$`)

func TestTransferID_Format(t *testing.T) {
	id := TransferID(validEnvelope(12))
	if !transferIDShape.MatchString(id) {
		t.Fatalf("id %q does not match the 4-2-2-8 byte grouping", id)
	}
}

func TestTransferID_KnownValue(t *testing.T) {
	env := []byte("payment envelope bytes")
	sum := sha256.Sum256(env)
	want := fmt.Sprintf("%x-%x-%x-%x", sum[0:4], sum[4:6], sum[6:8], sum[8:16])
	if got := TransferID(env); got != want {
		t.Fatalf("TransferID = %q, want %q", got, want)
	}
}

func TestTransferID_Deterministic(t *testing.T) {
	env := validEnvelope(32)
	first := TransferID(env)
	for i := 0; i < 100; i++ {
		if got := TransferID(env); got != first {
			t.Fatalf("iteration %d: id %q != %q", i, got, first)
		}
	}
}

func TestTransferID_DistinctEnvelopes(t *testing.T) {
	seen := make(map[string][]byte)
	for i := 0; i < 256; i++ {
		env := validEnvelope(8)
		env[HeaderLen] = byte(i)
		id := TransferID(env)
		if prev, ok := seen[id]; ok {
			t.Fatalf("id collision between %x and %x", prev, env)
		}
		seen[id] = append([]byte(nil), env...)
	}
}

func TestTransferID_SingleBitChangesID(t *testing.T) {
	env := validEnvelope(16)
	base := TransferID(env)
	for i := range env {
		flipped := append([]byte(nil), env...)
		flipped[i] ^= 0x01
		if TransferID(flipped) == base {
			t.Fatalf("bit flip at byte %d did not change the id", i)
		}
	}
}
