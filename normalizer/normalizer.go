// Package normalizer implements the station/platform name normalizer: an
// ordered list of regex rewrite rules applied in sequence, with
// per-instance memoization so repeated lookups of the same raw string
// skip the regex pipeline.
package normalizer

import (
	"regexp"
	"strings"
	"sync"
)

// Rule is one ordered (pattern, replacement) step in the pipeline.
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// Normalizer applies an ordered Rule list to raw names and memoizes
// results behind a mutex, a single guarded map for this single-purpose
// type.
type Normalizer struct {
	rules []Rule

	mu    sync.Mutex
	cache map[string]string
}

// New builds a Normalizer from an ordered rule list. Rules are applied in
// the order given, each operating on the previous rule's output.
func New(rules []Rule) *Normalizer {
	return &Normalizer{rules: rules, cache: make(map[string]string)}
}

// DefaultRules returns the rule set this module ships with, in this order:
// collapse whitespace runs to one space, trim leading and trailing
// whitespace, drop trailing punctuation, then strip the platform-noise
// tokens Gleis, Platform and Bahnsteig. Lowercasing is not one of the
// rules; Normalize lowercases and trims the result after all rules ran.
func DefaultRules() []Rule {
	return []Rule{
		{Pattern: regexp.MustCompile(`\s+`), Replacement: " "},
		{Pattern: regexp.MustCompile(`^\s+|\s+$`), Replacement: ""},
		{Pattern: regexp.MustCompile(`[.,;:]+$`), Replacement: ""},
		{Pattern: regexp.MustCompile(`\b(Gleis|Platform|Bahnsteig)\s*`), Replacement: ""},
	}
}

// Normalize applies every rule in order to s, using the memoized result
// when s has been seen before.
func (n *Normalizer) Normalize(s string) string {
	n.mu.Lock()
	if cached, ok := n.cache[s]; ok {
		n.mu.Unlock()

		return cached
	}
	n.mu.Unlock()

	out := s
	for _, r := range n.rules {
		out = r.Pattern.ReplaceAllString(out, r.Replacement)
	}
	out = strings.ToLower(strings.TrimSpace(out))

	n.mu.Lock()
	n.cache[s] = out
	n.mu.Unlock()

	return out
}
