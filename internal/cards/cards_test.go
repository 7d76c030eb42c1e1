package cards

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCard_RankSuitString(t *testing.T) {
	require.Equal(t, uint8(2), Card(0).Rank())
	require.Equal(t, uint8(0), Card(0).Suit())
	require.Equal(t, "2c", Card(0).String())

	require.Equal(t, uint8(14), Card(12).Rank())
	require.Equal(t, "Ac", Card(12).String())

	require.Equal(t, uint8(2), Card(13).Rank())
	require.Equal(t, uint8(1), Card(13).Suit())
	require.Equal(t, "2d", Card(13).String())

	require.Equal(t, uint8(14), Card(51).Rank())
	require.Equal(t, uint8(3), Card(51).Suit())
	require.Equal(t, "As", Card(51).String())
}

func TestDeterministicDeck_IsAPermutation(t *testing.T) {
	deck := DeterministicDeck([]byte("seed"))
	require.Len(t, deck, 52)

	var seen [52]bool
	for _, c := range deck {
		require.Less(t, int(c), 52)
		require.False(t, seen[c], "card %d dealt twice", c)
		seen[c] = true
	}
}

func TestDeterministicDeck_SeedStability(t *testing.T) {
	a := DeterministicDeck([]byte("seed"))
	b := DeterministicDeck([]byte("seed"))
	require.Equal(t, a, b)

	c := DeterministicDeck([]byte("other"))
	require.NotEqual(t, a, c)
}
