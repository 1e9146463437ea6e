package dijkstra

import "errors"

// Sentinel errors returned by Dijkstra.
var (
	ErrEmptySource     = errors.New("dijkstra: source vertex ID is empty")
	ErrNilGraph        = errors.New("dijkstra: graph is nil")
	ErrUnweightedGraph = errors.New("dijkstra: graph must be weighted")
	ErrVertexNotFound  = errors.New("dijkstra: source vertex not found in graph")
	ErrNegativeWeight  = errors.New("dijkstra: negative edge weight encountered")
)

// Options configures a single Dijkstra run.
type Options struct {
	Source     string
	ReturnPath bool
}

// Option is a functional option for Options.
type Option func(*Options)

// Source sets the starting vertex ID. Required.
func Source(id string) Option {
	return func(o *Options) { o.Source = id }
}

// WithReturnPath enables the predecessor map in Dijkstra's result, so a
// caller can walk dist/prev back into a concrete path. Omitted, prev is
// nil.
func WithReturnPath() Option {
	return func(o *Options) { o.ReturnPath = true }
}

// DefaultOptions returns Options for source with ReturnPath disabled.
func DefaultOptions(source string) Options {
	return Options{Source: source}
}
