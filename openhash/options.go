package openhash

import (
	"github.com/gostonefire/collections/internal/conf"
	"go.uber.org/zap"
)

// DefaultExpectedElements - Number of elements to size a container for when no better estimate is known
const DefaultExpectedElements = conf.DefaultExpectedElements

// DefaultLoadFactor - Load factor giving a good balance between memory use and probe lengths
const DefaultLoadFactor = conf.DefaultLoadFactor

// Option - Configures optional behaviour of a Set or Map
type Option func(*options)

type options struct {
	logger  *zap.Logger
	seed    uint64
	hasSeed bool
}

// WithLogger - Sets the logger used to report buffer growth. Without it nothing is logged.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSeed - Fixes the perturbation seed mixed into every hash. By default each container, including clones,
// draws a random seed. A fixed seed makes the slot layout reproducible, which is mostly useful in tests.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.hasSeed = true
	}
}

func newOptions(options []Option) (o options) {
	for _, opt := range options {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return
}
