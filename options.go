package neargo

import (
	"log/slog"

	"github.com/hupe1980/neargo/index"
)

type options struct {
	distanceType     index.DistanceType
	metricsCollector MetricsCollector
	logger           *Logger
	seed             int64
}

// Option configures the neargo facade.
type Option func(*options)

// WithDistanceType configures the distance function used for ranking.
// The default is squared L2.
func WithDistanceType(dt index.DistanceType) Option {
	return func(o *options) {
		o.distanceType = dt
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithSeed configures the PRNG seed used when building hash indexes, so
// approximate results are reproducible across runs.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		distanceType:     index.DistanceTypeSquaredL2,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		seed:             1,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
