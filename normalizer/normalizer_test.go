package normalizer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trshaper/normalizer"
)

func TestNormalize_CollapsesWhitespaceAndCase(t *testing.T) {
	n := normalizer.New(normalizer.DefaultRules())
	require.Equal(t, "main station", n.Normalize("  Main    Station  "))
}

func TestNormalize_StripsPlatformNoiseTokens(t *testing.T) {
	n := normalizer.New(normalizer.DefaultRules())
	require.Equal(t, "3", n.Normalize("Gleis 3"))
}

func TestNormalize_MemoizesRepeatedInput(t *testing.T) {
	n := normalizer.New(normalizer.DefaultRules())
	first := n.Normalize("Bahnsteig 2")
	second := n.Normalize("Bahnsteig 2")
	require.Equal(t, first, second)
}

func TestNormalize_TrailingPunctuationDropped(t *testing.T) {
	n := normalizer.New(normalizer.DefaultRules())
	require.Equal(t, "central", n.Normalize("Central;"))
}
