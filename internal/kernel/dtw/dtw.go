// Package dtw provides the Dynamic Time Warping distance used by
// shapebuilder's eval report to score a produced shape against a
// reference shape.
//
// Two shape polylines rarely carry the same number of points or the same
// point spacing, so a plain index-aligned comparison would penalize
// resampling differences that have nothing to do with path accuracy. DTW
// finds the minimal cumulative cost to align two coordinate sequences by
// stretching/compressing their "time" axis, subject to an optional
// Sakoe-Chiba window constraint and configurable insertion/deletion
// penalties — exactly the property needed to score two differently
// sampled polylines against each other.
package dtw

import "math"

// Coord is one point (i,j) in the optimal warping path: i indexes
// sequence a, j indexes sequence b.
type Coord struct {
	I, J int
}

// DTW computes the DTW distance between a and b, and optionally the
// alignment path if opts.ReturnPath is set.
//
// Time:   O(N*M) where N=len(a), M=len(b)
// Memory: O(M) for NoMemory and TwoRows (both keep two DP rows of length
// M+1), O(N*M) for FullMatrix (required for path backtracking).
func DTW(a, b []float64, opts *Options) (dist float64, path []Coord, err error) {
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return 0, nil, ErrEmptyInput
	}
	if err = opts.Validate(); err != nil {
		return 0, nil, err
	}

	penalty := opts.SlopePenalty
	window := opts.Window
	mode := opts.MemoryMode
	needPath := opts.ReturnPath
	infinity := math.Inf(1)
	prevRow := make([]float64, m+1)
	currRow := make([]float64, m+1)

	var dpMatrix [][]float64
	if mode == FullMatrix {
		dpMatrix = make([][]float64, n+1)
		dpMatrix[0] = make([]float64, m+1)
		copy(dpMatrix[0], prevRow)
	}

	// Row 0: aligning a zero-length prefix of a with any non-empty prefix
	// of b is always infinitely costly.
	for j := 1; j <= m; j++ {
		prevRow[j] = infinity
	}

	for i := 1; i <= n; i++ {
		currRow[0] = infinity

		for j := 1; j <= m; j++ {
			if window >= 0 && abs(i-j) > window {
				currRow[j] = infinity
				continue
			}

			localCost := math.Abs(a[i-1] - b[j-1])
			matchCost := prevRow[j-1]
			insertCost := prevRow[j] + penalty
			deleteCost := currRow[j-1] + penalty

			currRow[j] = localCost + min3(matchCost, insertCost, deleteCost)
		}

		if mode == FullMatrix {
			rowCopy := make([]float64, m+1)
			copy(rowCopy, currRow)
			dpMatrix[i] = rowCopy
		}

		prevRow, currRow = currRow, prevRow
	}

	dist = prevRow[m]

	if needPath {
		path, err = backtrack(dpMatrix, a, b, opts)
	}

	return dist, path, err
}

// backtrack walks dpMatrix backward from (N,M) to (0,0) along minimal-cost
// moves, reconstructing the alignment path.
func backtrack(dp [][]float64, a, b []float64, opts *Options) ([]Coord, error) {
	i, j := len(a), len(b)
	path := make([]Coord, 0, i+j)

	for i > 0 || j > 0 {
		var x, y int
		switch {
		case i > 0 && j > 0:
			x, y = i-1, j-1
		case i > 0:
			x, y = i-1, 0
		default:
			x, y = 0, j-1
		}
		path = append(path, Coord{I: x, J: y})

		var localCost float64
		if i > 0 && j > 0 {
			localCost = math.Abs(a[i-1] - b[j-1])
		}
		curr := dp[i][j] - localCost

		moved := false
		if i > 0 && j > 0 && almostEqual(curr, dp[i-1][j-1]) {
			i, j = i-1, j-1
			moved = true
		}
		if !moved && i > 0 && almostEqual(curr, dp[i-1][j]+opts.SlopePenalty) {
			i--
			moved = true
		}
		if !moved && j > 0 && almostEqual(curr, dp[i][j-1]+opts.SlopePenalty) {
			j--
			moved = true
		}

		if !moved {
			return nil, ErrIncompletePath
		}
	}

	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}

	return path, nil
}

func min3(a, b, c float64) float64 {
	if a < b {
		if a < c {
			return a
		}

		return c
	}
	if b < c {
		return b
	}

	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}

// almostEqual reports whether two floats are equal within a small
// epsilon, absorbing floating-point rounding in the backtrack comparison.
func almostEqual(a, b float64) bool {
	const eps = 1e-9
	return math.Abs(a-b) <= eps
}
