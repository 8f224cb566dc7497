package sim

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Rand is the simulation's only randomness source. It is injected into the
// driver so that a fixed seed reproduces a whole campaign; nothing in this
// package reads the global math/rand state.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a deterministic source for the given seed.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

// NewSeed generates a random campaign seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// bernoulli draws a single trial that succeeds with probability p.
// p <= 0 never succeeds and p >= 1 always does, without consuming a draw.
func bernoulli(r Rand, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.Float64() < p
}
