// Package synthetic produces clearly labeled placeholder analytics. Nothing in
// here is derived from real data beyond the match results passed in; every
// payload carries Synthetic=true so clients can flag it.
package synthetic

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Generator is a seeded, concurrency-safe source of synthetic values.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a generator seeded with seed, or with the current time when seed is 0.
func New(seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// intN returns a value in [0, n).
func (g *Generator) intN(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.IntN(n)
}

// float returns a value in [0.0, 1.0).
func (g *Generator) float() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Float64()
}
