package shaderbg

import (
	"math/rand/v2"
	"time"
)

// Clock is a monotonic time source.
type Clock interface {
	Now() time.Duration
}

// SystemClock measures time from its creation using the runtime's
// monotonic clock.
type SystemClock struct {
	origin time.Time
}

// NewSystemClock returns a clock starting at zero.
func NewSystemClock() *SystemClock {
	return &SystemClock{origin: time.Now()}
}

func (c *SystemClock) Now() time.Duration {
	return time.Since(c.origin)
}

// Offset range of the per-session time offset, in seconds.
const (
	offsetMin  = -2500.0
	offsetSpan = 5000.0
)

// SessionOffset draws the per-session time offset from [-2500, 2500).
func SessionOffset(r *rand.Rand) float64 {
	return r.Float64()*offsetSpan + offsetMin
}

// newRand returns a seeded source, or a randomly seeded one when seed is 0.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}
