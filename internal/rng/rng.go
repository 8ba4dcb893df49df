// Package rng provides the seeded linear-congruential generator every
// randomized procedure in the engine draws from. Results must be
// bit-for-bit reproducible given the same seed; that guarantee is
// load-bearing for the statistical claims built on top.
package rng

import "math"

const (
	lcgMultiplier = 1103515245
	lcgIncrement  = 12345
	lcgModulus    = 1 << 31
)

// LCG is a deterministic linear congruential generator.
type LCG struct {
	state uint64
}

// New creates a generator seeded with the given value.
func New(seed int64) *LCG {
	return &LCG{state: uint64(seed) % lcgModulus}
}

// next advances the state and returns it in [0, 2^31).
func (g *LCG) next() uint64 {
	g.state = (g.state*lcgMultiplier + lcgIncrement) % lcgModulus
	return g.state
}

// Float64 returns a draw in [0, 1).
func (g *LCG) Float64() float64 {
	return float64(g.next()) / float64(lcgModulus)
}

// Intn returns a draw in [0, n). Panics if n <= 0.
func (g *LCG) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	return int(g.next() % uint64(n))
}

// Norm returns a standard normal draw via the Box-Muller transform.
func (g *LCG) Norm() float64 {
	u1 := g.Float64()
	u2 := g.Float64()
	if u1 < 1e-12 {
		u1 = 1e-12
	}
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// Shuffle permutes xs in place with a Fisher-Yates walk.
func (g *LCG) Shuffle(xs []float64) {
	for i := len(xs) - 1; i > 0; i-- {
		j := g.Intn(i + 1)
		xs[i], xs[j] = xs[j], xs[i]
	}
}

// Split derives an independent child generator. Used to hand each
// replication its own stream without sharing state across workers.
func (g *LCG) Split() *LCG {
	return New(int64(g.next()))
}
