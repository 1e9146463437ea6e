package cost_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trshaper/cost"
)

func TestEdge_NilOptionsReducesToMetersPlusReach(t *testing.T) {
	var m cost.Measurement
	m.MetersAtLevel[2] = 100
	m.ReachPenalty = 5

	got := cost.Edge(m, nil)
	require.InDelta(t, 105, got, 1e-9)
}

func TestEdge_AppliesLevelAndOneWayPunishment(t *testing.T) {
	opts := cost.DefaultRoutingOptions()
	cost.WithLevelPunish(2, 2.0)(&opts)
	cost.WithOneWayPunishFactor(10)(&opts)
	cost.WithOneWayEdgePunish(50)(&opts)

	var m cost.Measurement
	m.MetersAtLevel[2] = 100
	m.OneWayMeters = 100
	m.OneWayEdgeCount = 1

	got := cost.Edge(m, &opts)
	require.InDelta(t, 100*2.0+100*10+50, got, 1e-9)
}

func TestEdge_AdditiveAcrossContributions(t *testing.T) {
	opts := cost.DefaultRoutingOptions()
	cost.WithFullTurnPunishFactor(30)(&opts)
	cost.WithPassThroughStationsPunish(5)(&opts)

	var m cost.Measurement
	m.FullTurnCount = 2
	m.PassThroughStations = 3
	m.ReachPenalty = 1

	got := cost.Edge(m, &opts)
	require.InDelta(t, 2*30+3*5+1, got, 1e-9)
}
