package dtw

import "errors"

// MemoryMode controls how much of the DP matrix DTW retains.
type MemoryMode int

const (
	// NoMemory computes the distance only, keeping the same two DP rows as
	// TwoRows.
	NoMemory MemoryMode = iota
	// TwoRows keeps two DP rows of length len(b)+1, distance only.
	TwoRows
	// FullMatrix is O(N*M) memory, and enables path backtracking.
	FullMatrix
)

// Sentinel errors for DTW input validation and path requirements.
var (
	ErrEmptyInput      = errors.New("dtw: input sequences must be non-empty")
	ErrPathNeedsMatrix = errors.New("dtw: ReturnPath requires MemoryMode=FullMatrix")
	ErrIncompletePath  = errors.New("dtw: path computation incomplete")
	ErrBadInput        = errors.New("dtw: invalid options combination")
)

// Options configures the Dynamic Time Warping algorithm.
type Options struct {
	Window       int     // Sakoe-Chiba band radius; <0 disables the constraint.
	SlopePenalty float64 // insertion/deletion cost; must be non-negative.
	ReturnPath   bool    // requires MemoryMode == FullMatrix.
	MemoryMode   MemoryMode
}

// DefaultOptions returns Options with no window constraint, zero slope
// penalty, no path reconstruction, and TwoRows memory.
func DefaultOptions() Options {
	return Options{
		Window:       -1,
		SlopePenalty: 0,
		ReturnPath:   false,
		MemoryMode:   TwoRows,
	}
}

// Validate reports ErrBadInput for an invalid Window/SlopePenalty, or
// ErrPathNeedsMatrix if ReturnPath is set without FullMatrix.
func (o *Options) Validate() error {
	if o.Window < -1 {
		return ErrBadInput
	}
	if o.SlopePenalty < 0 {
		return ErrBadInput
	}
	if o.ReturnPath && o.MemoryMode != FullMatrix {
		return ErrPathNeedsMatrix
	}

	return nil
}
