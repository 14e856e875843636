// Package prng holds the process-wide random generator used by the
// `random` procedure and the noise~ node. It is lazily seeded from the wall
// clock on first use, as spec.md §4.5 requires, with a deterministic
// override for tests.
package prng

import (
	"math/rand"
	"sync"
	"time"
)

var (
	mu   sync.Mutex
	rng  *rand.Rand
	once sync.Once
)

func ensure() {
	once.Do(func() {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	})
}

// Seed overrides the process-wide generator deterministically; intended for
// tests that need reproducible random() / noise~ output.
func Seed(seed int64) {
	mu.Lock()
	defer mu.Unlock()
	once.Do(func() {}) // a seeded generator must not be replaced by the lazy wall-clock one
	rng = rand.New(rand.NewSource(seed))
}

// Float64 returns a uniform sample in [0, 1).
func Float64() float64 {
	mu.Lock()
	defer mu.Unlock()
	ensure()
	return rng.Float64()
}

// Uniform returns a uniform sample in [lo, hi).
func Uniform(lo, hi float64) float64 {
	return lo + Float64()*(hi-lo)
}
