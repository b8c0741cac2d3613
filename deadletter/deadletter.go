// Package deadletter archives payment envelopes whose asynchronous transfer
// submission failed.
//
// The HTTP caller has already been answered by the time a submission fails,
// so the failure cannot be reported in-band. Instead the exact envelope bytes
// are written to a content-addressed archive (CID v1, raw codec, sha2-256)
// and the CID is logged alongside the transfer id; an operator can later
// replay or inspect the envelope by CID.
package deadletter

import (
	"errors"
	"sync"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

var (
	ErrNotFound   = errors.New("deadletter: not found")
	ErrInvalidCID = errors.New("deadletter: invalid cid")
)

// Archive stores failed-submission envelopes immutably, keyed by CID.
//
// Contract:
// - Put MUST be idempotent: archiving the same envelope twice yields the same
//   CID and one stored object.
// - Get MUST return ErrNotFound when the CID is absent.
type Archive interface {
	Put(envelope []byte) (cid.Cid, error)
	Get(id cid.Cid) ([]byte, error)
	Has(id cid.Cid) bool
}

// CID returns the CIDv1 (raw + sha2-256) an envelope archives under.
func CID(envelope []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(envelope, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// Memory is an in-memory Archive for tests and for running without a
// configured dead-letter directory.
type Memory struct {
	mu      sync.Mutex
	objects map[cid.Cid][]byte
}

func NewMemory() *Memory {
	return &Memory{objects: make(map[cid.Cid][]byte)}
}

func (m *Memory) Put(envelope []byte) (cid.Cid, error) {
	id, err := CID(envelope)
	if err != nil {
		return cid.Undef, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[id]; !ok {
		m.objects[id] = append([]byte(nil), envelope...)
	}
	return id, nil
}

func (m *Memory) Get(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, ErrInvalidCID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objects[id]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (m *Memory) Has(id cid.Cid) bool {
	if !id.Defined() {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[id]
	return ok
}

// Len reports the number of archived envelopes.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
