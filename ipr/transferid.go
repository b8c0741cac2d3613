package ipr

import (
	"crypto/sha256"
	"fmt"
)

// TransferID derives the ledger transfer identifier for an envelope.
//
// The id is the first 16 bytes of sha256(envelope), rendered as lowercase hex
// in dash-separated groups of 4-2-2-8 bytes. The grouping is NOT the canonical
// UUID 4-2-2-2-6 shape; the ledger layer's duplicate detection keys on this
// exact string, so the format is load-bearing and must not be "fixed".
//
// Deriving the id from the envelope alone is the sole idempotency mechanism:
// resubmitting identical bytes always yields the identical id, and the ledger
// arbitrates the collision. An HMAC under a receiver-held key would resist
// id squatting by third parties who learn an envelope; plain sha256 is kept
// for compatibility with ids already issued.
func TransferID(envelope []byte) string {
	sum := sha256.Sum256(envelope)
	return fmt.Sprintf("%x-%x-%x-%x", sum[0:4], sum[4:6], sum[6:8], sum[8:16])
}
