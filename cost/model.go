// Package cost implements the pure cost-model function: mapping per-edge
// measurements and routing options to a scalar cost. RoutingOptions
// follows the functional-options shape used
// by github.com/katalvlaran/trshaper/internal/kernel/dijkstra.Options /
// Option, generalized from "tune a shortest-path search" to "tune a
// transit routing cost model."
package cost

import "github.com/katalvlaran/trshaper/trgraph"

// RoutingOptions configures the scalar cost assigned to traversing an
// edge.
type RoutingOptions struct {
	LevelPunish                [trgraph.MaxLevel + 1]float64
	OneWayPunishFactor         float64
	OneWayEdgePunish           float64
	LineUnmatchedPunishFactor  float64
	NoLinesPunishFactor        float64
	FullTurnPunishFactor       float64
	FullTurnAngleDeg           float64
	PassThruStationsPunish     float64
	NoSelfHops                 bool
	PopReachEdge               bool
}

// Option is a functional option for RoutingOptions.
type Option func(*RoutingOptions)

// WithLevelPunish sets the per-level punishment factor for level.
func WithLevelPunish(level int, factor float64) Option {
	return func(o *RoutingOptions) {
		if level >= 0 && level <= trgraph.MaxLevel {
			o.LevelPunish[level] = factor
		}
	}
}

// WithOneWayPunishFactor sets the per-meter punishment for traveling
// against a one-way edge's direction.
func WithOneWayPunishFactor(factor float64) Option {
	return func(o *RoutingOptions) { o.OneWayPunishFactor = factor }
}

// WithOneWayEdgePunish sets the flat per-edge punishment for traveling
// against a one-way edge's direction.
func WithOneWayEdgePunish(punish float64) Option {
	return func(o *RoutingOptions) { o.OneWayEdgePunish = punish }
}

// WithLineUnmatchedPunishFactor sets the per-meter punishment for
// traversing an edge whose line set does not include the trip's line.
func WithLineUnmatchedPunishFactor(factor float64) Option {
	return func(o *RoutingOptions) { o.LineUnmatchedPunishFactor = factor }
}

// WithNoLinesPunishFactor sets the per-meter punishment for traversing an
// edge that carries no line information at all.
func WithNoLinesPunishFactor(factor float64) Option {
	return func(o *RoutingOptions) { o.NoLinesPunishFactor = factor }
}

// WithFullTurnPunishFactor sets the flat punishment applied once per
// sharp turn (angle below WithFullTurnAngle's threshold).
func WithFullTurnPunishFactor(factor float64) Option {
	return func(o *RoutingOptions) { o.FullTurnPunishFactor = factor }
}

// WithFullTurnAngle sets the angle, in degrees, below which a turn is
// considered a full turn and punished.
func WithFullTurnAngle(deg float64) Option {
	return func(o *RoutingOptions) { o.FullTurnAngleDeg = deg }
}

// WithPassThroughStationsPunish sets the per-station punishment for
// routing straight through an intermediate station node.
func WithPassThroughStationsPunish(punish float64) Option {
	return func(o *RoutingOptions) { o.PassThruStationsPunish = punish }
}

// WithNoSelfHops rejects successor edges that hop back to the same edge.
func WithNoSelfHops() Option {
	return func(o *RoutingOptions) { o.NoSelfHops = true }
}

// WithPopReachEdge terminates a hop on first pop of a goal-candidate edge
// rather than continuing to relax past it.
func WithPopReachEdge() Option {
	return func(o *RoutingOptions) { o.PopReachEdge = true }
}

// DefaultRoutingOptions returns a RoutingOptions with every level weighted
// at 1 (i.e. the weighted branch reduces to plain edge_meters +
// reach_penalty, same as the O == nil case, rather than collapsing to
// reach_penalty alone) and FullTurnAngleDeg at a sane default of 35
// degrees. All other punishment factors start at zero; callers opt into
// line-matching and turn punishment explicitly via the With* options.
func DefaultRoutingOptions() RoutingOptions {
	o := RoutingOptions{FullTurnAngleDeg: 35}
	for l := 0; l <= trgraph.MaxLevel; l++ {
		o.LevelPunish[l] = 1
	}

	return o
}

// Measurement carries the per-edge quantities the cost formula sums over.
type Measurement struct {
	MetersAtLevel       [trgraph.MaxLevel + 1]float64
	OneWayMeters        float64
	OneWayEdgeCount     int
	LineUnmatchedMeters float64
	NoLinesMeters       float64
	FullTurnCount       int
	PassThroughStations int
	ReachPenalty        float64
}

// Edge computes the cost of traversing a single edge, given the optional
// routing options O. When O is nil, cost reduces to edge_meters +
// reach_penalty.
func Edge(m Measurement, o *RoutingOptions) float64 {
	var total float64
	for l := 0; l <= trgraph.MaxLevel; l++ {
		total += m.MetersAtLevel[l]
	}
	total += m.ReachPenalty

	if o == nil {
		return total
	}

	var weighted float64
	for l := 0; l <= trgraph.MaxLevel; l++ {
		weighted += m.MetersAtLevel[l] * o.LevelPunish[l]
	}
	weighted += m.OneWayMeters * o.OneWayPunishFactor
	weighted += float64(m.OneWayEdgeCount) * o.OneWayEdgePunish
	weighted += m.LineUnmatchedMeters * o.LineUnmatchedPunishFactor
	weighted += m.NoLinesMeters * o.NoLinesPunishFactor
	weighted += float64(m.FullTurnCount) * o.FullTurnPunishFactor
	weighted += float64(m.PassThroughStations) * o.PassThruStationsPunish
	weighted += m.ReachPenalty

	return weighted
}

// MeasurementFor derives a Measurement from a single traversed edge e and
// the trip's line, for line matching. An edge that is one-way but not
// marked Forward is being traversed against its legal direction — the
// graph still carries such edges (lightly) so the router can take them as
// a last resort under heavy cost punishment rather than declaring the hop
// unreachable outright.
func MeasurementFor(e *trgraph.Edge, line string) Measurement {
	var m Measurement
	m.MetersAtLevel[e.Level] = e.Length

	if e.OneWay && !e.Forward {
		m.OneWayMeters = e.Length
		m.OneWayEdgeCount = 1
	}

	if len(e.Lines) == 0 {
		m.NoLinesMeters = e.Length
	} else if line != "" && !e.HasLine(line) {
		m.LineUnmatchedMeters = e.Length
	}

	return m
}
