package crowd

import (
	"math/rand"
	"sync"
)

// Bounds of the noise factor applied to every estimate.
const (
	JitterMin    = 0.92
	JitterMax    = 1.08
	jitterSpread = JitterMax - JitterMin
)

// Jitter supplies the multiplicative noise factor in [JitterMin, JitterMax].
// Implementations must be safe for concurrent use.
type Jitter interface {
	Factor() float64
}

type fixedJitter float64

func (f fixedJitter) Factor() float64 { return float64(f) }

// NoJitter always returns 1.0.
var NoJitter Jitter = fixedJitter(1.0)

// FixedJitter returns f, clamped into the jitter bounds.
func FixedJitter(f float64) Jitter {
	if f < JitterMin {
		f = JitterMin
	}
	if f > JitterMax {
		f = JitterMax
	}
	return fixedJitter(f)
}

type processJitter struct{}

func (processJitter) Factor() float64 {
	return JitterMin + rand.Float64()*jitterSpread
}

// DefaultJitter draws from the process-wide random source.
var DefaultJitter Jitter = processJitter{}

// UniformJitter is a seeded, reproducible uniform source.
type UniformJitter struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewUniformJitter creates a UniformJitter seeded with seed.
func NewUniformJitter(seed int64) *UniformJitter {
	return &UniformJitter{rng: rand.New(rand.NewSource(seed))}
}

func (u *UniformJitter) Factor() float64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return JitterMin + u.rng.Float64()*jitterSpread
}
