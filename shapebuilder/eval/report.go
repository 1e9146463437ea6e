// Package eval implements the optional shape evaluation report. It scores
// each produced shape against a reference shape for the same trip using
// Dynamic Time Warping, so differently sampled polylines are compared on
// path shape rather than point count.
package eval

import (
	"fmt"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"

	"github.com/katalvlaran/trshaper/feedmodel"
	"github.com/katalvlaran/trshaper/internal/kernel/dtw"
)

// TripScore is one trip's comparison against its reference shape.
type TripScore struct {
	TripID       string
	ShapeID      string
	DTWDistance  float64
	ProducedLen  int
	ReferenceLen int
}

// Report accumulates TripScore entries across a concurrent shape-build
// run. Appends are guarded by their own mutex, independent of the
// shape-id registry's.
type Report struct {
	mu     sync.Mutex
	scores []TripScore
}

// NewReport returns an empty Report.
func NewReport() *Report { return &Report{} }

// Score compares produced against reference and appends the result.
// Reference shapes with fewer than 2 points cannot be scored and are
// skipped (no basis for DTW alignment).
func (r *Report) Score(tripID, shapeID string, produced, reference *feedmodel.Shape) error {
	if reference == nil || len(reference.Points) < 2 {
		return nil
	}
	if produced == nil || len(produced.Points) < 2 {
		return fmt.Errorf("eval: trip %s produced a degenerate shape", tripID)
	}

	px, py := project1D(produced)
	rx, ry := project1D(reference)

	opts := dtw.DefaultOptions()
	dx, _, err := dtw.DTW(px, rx, &opts)
	if err != nil {
		return fmt.Errorf("eval: trip %s x-axis DTW: %w", tripID, err)
	}
	dy, _, err := dtw.DTW(py, ry, &opts)
	if err != nil {
		return fmt.Errorf("eval: trip %s y-axis DTW: %w", tripID, err)
	}

	score := TripScore{
		TripID:       tripID,
		ShapeID:      shapeID,
		DTWDistance:  dx + dy,
		ProducedLen:  len(produced.Points),
		ReferenceLen: len(reference.Points),
	}

	r.mu.Lock()
	r.scores = append(r.scores, score)
	r.mu.Unlock()

	return nil
}

// Scores returns a snapshot of every recorded TripScore.
func (r *Report) Scores() []TripScore {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]TripScore, len(r.scores))
	copy(out, r.scores)

	return out
}

// project1D splits a shape's points into independent web-Mercator X and Y
// coordinate sequences, letting two 1-D DTW runs stand in for a 2-D
// alignment: DTW's cost function operates on scalar sequences, so a
// polyline is compared axis-by-axis rather than by a single 2-D distance.
func project1D(s *feedmodel.Shape) (xs, ys []float64) {
	xs = make([]float64, len(s.Points))
	ys = make([]float64, len(s.Points))
	for i, p := range s.Points {
		merc := project.WGS84.ToMercator(orb.Point{p.Lon, p.Lat})
		xs[i] = merc[0]
		ys[i] = merc[1]
	}

	return xs, ys
}
