package shapebuilder

import (
	"github.com/katalvlaran/trshaper/feedmodel"
	"github.com/katalvlaran/trshaper/router"
)

const intermediateDwellSeconds = 10

// stopTimeAssignment computes the distTraveled/arrival/departure slices
// handed to feedmodel.FeedReader.SetTripShape for one trip:
// ShapeDistTraveled from the hop segment lengths, and — when a stop-time
// lacks explicit times or forceInterpolate is set — arrival/departure
// recomputed by distributing the trip's existing first/last span
// proportionally to per-hop costs, with a fixed dwell at every
// intermediate stop. The first and last stop's own times come from the
// input and are never touched.
func stopTimeAssignment(stopTimes []*feedmodel.StopTime, hops []router.Hop, segments []hopSegment, forceInterpolate bool) (dist []float64, arrival, departure []int) {
	dist = make([]float64, len(stopTimes))
	var cumulative float64
	for i := range stopTimes {
		dist[i] = cumulative
		if i < len(segments) {
			cumulative += segments[i].length
		}
	}

	needsInterp := forceInterpolate
	if !needsInterp {
		for _, st := range stopTimes {
			if !st.HasExplicitTimes {
				needsInterp = true
				break
			}
		}
	}
	if !needsInterp || len(stopTimes) < 2 {
		return dist, nil, nil
	}

	first, last := stopTimes[0], stopTimes[len(stopTimes)-1]
	if first.ArrivalTime < 0 || last.DepartureTime < 0 {
		return dist, nil, nil // no anchor span to distribute; leave times as given
	}

	arrival = make([]int, len(stopTimes))
	departure = make([]int, len(stopTimes))
	arrival[0] = first.ArrivalTime
	departure[0] = first.DepartureTime
	arrival[len(stopTimes)-1] = last.ArrivalTime
	departure[len(stopTimes)-1] = last.DepartureTime

	totalSpan := float64(last.DepartureTime - first.ArrivalTime)
	intermediate := len(stopTimes) - 2
	dwellTotal := float64(intermediate * intermediateDwellSeconds)
	travelBudget := totalSpan - dwellTotal
	if travelBudget < 0 {
		travelBudget = 0
	}

	var totalCost float64
	for _, h := range hops {
		totalCost += h.Cost
	}

	t := float64(first.ArrivalTime)
	for i := 1; i < len(stopTimes)-1; i++ {
		share := 0.0
		if totalCost > 0 && i-1 < len(hops) {
			share = travelBudget * hops[i-1].Cost / totalCost
		} else if len(hops) > 0 {
			share = travelBudget / float64(len(hops))
		}

		arr := t + share
		dep := arr + intermediateDwellSeconds

		arrival[i] = int(arr)
		departure[i] = int(dep)

		t = dep
	}

	return dist, arrival, departure
}
