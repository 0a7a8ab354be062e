package ident

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Generator produces identifiers for orders and order items.
// Implemented by UUIDGenerator (production) and FixedGenerator (tests).
type Generator interface {
	NewID() string
}

// UUIDGenerator generates random RFC 4122 version 4 identifiers.
//
// Collision probability is acceptable at this scale (single venue, a handful
// of devices), which is why random UUIDs replace a central sequence.
//
// Uses github.com/google/uuid for RFC 4122 compliant UUIDs.
//
// Thread-safety: UUIDGenerator is stateless and safe for concurrent use.
type UUIDGenerator struct{}

// NewID creates a new UUIDv4 and returns it as a hyphenated string.
//
// Format: "550e8400-e29b-41d4-a716-446655440000" (36 characters)
//
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDGenerator) NewID() string {
	return uuid.Must(uuid.NewRandom()).String()
}

// ShortID derives the human-readable display code from a full identifier:
// the second hyphen-delimited group ("e29b" in the example above).
//
// The short code is printed on physical receipts for legibility. It is NOT
// unique and must never be used as a storage key.
func ShortID(id string) string {
	parts := strings.Split(id, "-")
	if len(parts) < 2 {
		return id
	}
	return parts[1]
}

// FixedGenerator returns predetermined identifiers for testing.
//
// This enables deterministic test execution and golden receipt comparison.
// Tests can provide a known sequence of ids and verify exact output.
//
// Thread-safety: FixedGenerator is safe for concurrent use via internal mutex.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator that returns ids in order.
//
// Example:
//
//	gen := NewFixedGenerator("id-1", "id-2")
//	gen.NewID() // "id-1"
//	gen.NewID() // "id-2"
//	gen.NewID() // panic: all ids exhausted
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// NewID returns the next predetermined id.
// Thread-safe: uses mutex to protect index access.
//
// Panics if all ids have been consumed. This is a fail-fast approach to
// catch test misconfiguration (test created more entities than expected).
func (g *FixedGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("FixedGenerator: all ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
