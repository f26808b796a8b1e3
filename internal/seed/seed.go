// internal/seed/seed.go
// Package seed derives deterministic random streams from message content.
// Every stochastic choice in the generator draws from a stream created
// here; nothing touches the process-global rand state, so identical
// inputs produce identical output and concurrent calls never interfere.
package seed

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
)

// Derive returns a stable seed for a message and its generation context
// (key, scale, style, and so on). Fields are NUL-separated before hashing
// so ("ab", "c") and ("a", "bc") derive different seeds. The result is
// platform- and run-independent.
func Derive(message string, context ...string) int64 {
	h := sha256.New()
	h.Write([]byte(message))
	for _, field := range context {
		h.Write([]byte{0})
		h.Write([]byte(field))
	}
	sum := h.Sum(nil)
	return int64(binary.BigEndian.Uint64(sum[:8]))
}

// Sub derives a labelled sub-seed, so independent concerns (melody,
// bass, humanization) consume independent streams and toggling one
// feature does not re-voice the others.
func Sub(s int64, label string) int64 {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(s))
	h := sha256.New()
	h.Write(buf[:])
	h.Write([]byte(label))
	sum := h.Sum(nil)
	return int64(binary.BigEndian.Uint64(sum[:8]))
}

// Stream returns a generator owned by a single encode call.
func Stream(s int64) *rand.Rand {
	return rand.New(rand.NewSource(s))
}
