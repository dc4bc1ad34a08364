package measure

import (
	"time"

	"github.com/philipparndt/gomeasure/pkg/pick"
)

// Tunable defaults for a measurement session
const (
	DefaultPointCapacity = 128
	DefaultClickDebounce = 500 * time.Millisecond
)

// Config carries the interaction tunables of a session
type Config struct {
	// PointCapacity bounds the number of committed points. The point
	// and line buffers are preallocated to this size.
	PointCapacity int

	// ClickDebounce ignores clicks that follow a committed click too
	// quickly. Negative disables the debounce entirely.
	ClickDebounce time.Duration

	// MaxHitDistance is the camera-to-hit cutoff applied while the
	// session is open
	MaxHitDistance float64

	// Now supplies the session clock, for tests. Nil means time.Now.
	Now func() time.Time
}

// DefaultConfig returns the standard interaction tunables
func DefaultConfig() Config {
	return Config{
		PointCapacity:  DefaultPointCapacity,
		ClickDebounce:  DefaultClickDebounce,
		MaxHitDistance: pick.DefaultMaxDistance,
		Now:            time.Now,
	}
}

// withDefaults fills unset fields so a zero Config behaves like
// DefaultConfig
func (c Config) withDefaults() Config {
	if c.PointCapacity <= 0 {
		c.PointCapacity = DefaultPointCapacity
	}
	if c.ClickDebounce == 0 {
		c.ClickDebounce = DefaultClickDebounce
	} else if c.ClickDebounce < 0 {
		c.ClickDebounce = 0
	}
	if c.MaxHitDistance == 0 {
		c.MaxHitDistance = pick.DefaultMaxDistance
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}
