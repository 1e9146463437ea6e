package shapebuilder

import (
	"runtime"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/trshaper/cluster"
	"github.com/katalvlaran/trshaper/cost"
	"github.com/katalvlaran/trshaper/router"
)

// Config configures a Build run.
type Config struct {
	Workers          int
	DropShapes       bool
	Modes            []int
	ShuffleSeed      int64
	RouterOptions    router.Options
	CostOptions      cost.RoutingOptions
	Evaluate         bool
	EmitTransitGraph bool
	ForceInterpolate bool
	Logger           zerolog.Logger
}

// Option is a functional option for Config.
type Option func(*Config)

// WithWorkers sets the worker pool size. Values <= 0 fall back to
// runtime.NumCPU().
func WithWorkers(n int) Option { return func(c *Config) { c.Workers = n } }

// WithDropShapes allows trips with a pre-existing shape to be reclustered
// and re-routed instead of being left untouched.
func WithDropShapes() Option { return func(c *Config) { c.DropShapes = true } }

// WithModes restricts building to the given GTFS mode codes.
func WithModes(modes ...int) Option { return func(c *Config) { c.Modes = modes } }

// WithShuffleSeed fixes the cluster shuffle order for deterministic replay.
func WithShuffleSeed(seed int64) Option { return func(c *Config) { c.ShuffleSeed = seed } }

// WithRouterOptions sets the router.Options used for every cluster route.
func WithRouterOptions(o router.Options) Option { return func(c *Config) { c.RouterOptions = o } }

// WithCostOptions sets the cost.RoutingOptions folded into RouterOptions.
func WithCostOptions(o cost.RoutingOptions) Option {
	return func(c *Config) { c.CostOptions = o }
}

// WithEvaluate turns on the optional per-trip DTW evaluation report.
func WithEvaluate() Option { return func(c *Config) { c.Evaluate = true } }

// WithTransitGraph turns on the optional edge->trip-set transit graph
// emission.
func WithTransitGraph() Option { return func(c *Config) { c.EmitTransitGraph = true } }

// WithForceInterpolate recomputes every intermediate stop-time's
// arrival/departure by proportional distribution even when explicit times
// are already present; the first and last stop-times keep their times.
func WithForceInterpolate() Option { return func(c *Config) { c.ForceInterpolate = true } }

// WithLogger overrides the default no-op logger.
func WithLogger(l zerolog.Logger) Option { return func(c *Config) { c.Logger = l } }

func defaultConfig() Config {
	return Config{
		Workers:       runtime.NumCPU(),
		RouterOptions: router.DefaultOptions(),
		CostOptions:   cost.DefaultRoutingOptions(),
		Logger:        zerolog.Nop(),
	}
}

func (c Config) clusterOptions() []cluster.Option {
	var opts []cluster.Option
	if c.DropShapes {
		opts = append(opts, cluster.WithDropShapes())
	}
	if len(c.Modes) > 0 {
		opts = append(opts, cluster.WithModes(c.Modes...))
	}

	return opts
}
