package dtw_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trshaper/internal/kernel/dtw"
)

func TestDTW_IdenticalSequencesHaveZeroDistance(t *testing.T) {
	a := []float64{0, 1, 2, 3, 4}
	opts := dtw.DefaultOptions()

	dist, path, err := dtw.DTW(a, a, &opts)
	require.NoError(t, err)
	require.InDelta(t, 0, dist, 1e-9)
	require.Nil(t, path)
}

func TestDTW_ResampledSequenceCostsOnlyOffGridSamples(t *testing.T) {
	produced := []float64{0, 2, 4, 6, 8, 10}
	reference := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	opts := dtw.DefaultOptions()

	dist, _, err := dtw.DTW(produced, reference, &opts)
	require.NoError(t, err)
	// Each even reference sample aligns with an equal produced sample; each
	// of the five odd ones (1, 3, 5, 7, 9) lies 1 from its nearest produced
	// sample, so the optimal alignment costs exactly 5.
	require.InDelta(t, 5, dist, 1e-9)
}

func TestDTW_ReturnPathRequiresFullMatrix(t *testing.T) {
	opts := dtw.DefaultOptions()
	opts.ReturnPath = true

	_, _, err := dtw.DTW([]float64{0, 1}, []float64{0, 1}, &opts)
	require.ErrorIs(t, err, dtw.ErrPathNeedsMatrix)
}
