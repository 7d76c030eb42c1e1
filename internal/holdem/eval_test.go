package holdem

import (
	"testing"

	"github.com/stretchr/testify/require"

	"onchainpoker-chain/internal/cards"
)

// card builds a Card from rank (2..14, ace high) and suit (0..3).
func card(rank uint8, suit uint8) cards.Card {
	return cards.Card(uint8(suit)*13 + (rank - 2))
}

func TestEvaluate7_CategoryRecognition(t *testing.T) {
	tc := []struct {
		name  string
		seven []cards.Card
		want  HandCategory
	}{
		{
			name: "high card",
			seven: []cards.Card{
				card(2, 0), card(5, 1), card(7, 2), card(9, 3),
				card(11, 0), card(13, 1), card(14, 2),
			},
			want: HighCard,
		},
		{
			name: "one pair",
			seven: []cards.Card{
				card(9, 0), card(9, 1), card(2, 2), card(5, 3),
				card(7, 0), card(11, 1), card(14, 2),
			},
			want: OnePair,
		},
		{
			name: "two pair",
			seven: []cards.Card{
				card(9, 0), card(9, 1), card(5, 2), card(5, 3),
				card(7, 0), card(11, 1), card(14, 2),
			},
			want: TwoPair,
		},
		{
			name: "trips",
			seven: []cards.Card{
				card(9, 0), card(9, 1), card(9, 2), card(5, 3),
				card(7, 0), card(11, 1), card(14, 2),
			},
			want: Trips,
		},
		{
			name: "straight",
			seven: []cards.Card{
				card(5, 0), card(6, 1), card(7, 2), card(8, 3),
				card(9, 0), card(11, 1), card(14, 2),
			},
			want: Straight,
		},
		{
			name: "flush",
			seven: []cards.Card{
				card(2, 1), card(5, 1), card(7, 1), card(9, 1),
				card(13, 1), card(3, 0), card(14, 2),
			},
			want: Flush,
		},
		{
			name: "full house",
			seven: []cards.Card{
				card(9, 0), card(9, 1), card(9, 2), card(5, 3),
				card(5, 0), card(11, 1), card(14, 2),
			},
			want: FullHouse,
		},
		{
			name: "quads",
			seven: []cards.Card{
				card(9, 0), card(9, 1), card(9, 2), card(9, 3),
				card(5, 0), card(11, 1), card(14, 2),
			},
			want: Quads,
		},
		{
			name: "straight flush",
			seven: []cards.Card{
				card(5, 2), card(6, 2), card(7, 2), card(8, 2),
				card(9, 2), card(11, 1), card(14, 0),
			},
			want: StraightFlush,
		},
	}

	for _, c := range tc {
		t.Run(c.name, func(t *testing.T) {
			got := Evaluate7(c.seven)
			require.Equal(t, c.want, got.Category)
		})
	}
}

func TestEvaluate7_WheelRanksAsFiveHigh(t *testing.T) {
	wheel := Evaluate7([]cards.Card{
		card(14, 0), card(2, 1), card(3, 2), card(4, 3),
		card(5, 0), card(9, 1), card(11, 2),
	})
	require.Equal(t, Straight, wheel.Category)
	require.Equal(t, []uint8{5}, wheel.Tiebreakers)

	sixHigh := Evaluate7([]cards.Card{
		card(2, 0), card(3, 1), card(4, 2), card(5, 3),
		card(6, 0), card(9, 1), card(11, 2),
	})
	require.Equal(t, Straight, sixHigh.Category)
	require.Equal(t, 1, CompareHandRank(sixHigh, wheel), "6-high straight beats the wheel")
}

func TestEvaluate7_PicksBestFiveOfSeven(t *testing.T) {
	// Both a straight (5..9) and a heart flush are available; the flush must win.
	r := Evaluate7([]cards.Card{
		card(5, 2), card(6, 2), card(7, 2), card(8, 3),
		card(9, 2), card(11, 2), card(14, 0),
	})
	require.Equal(t, Flush, r.Category)
	require.Equal(t, []uint8{11, 9, 7, 6, 5}, r.Tiebreakers)
}

func TestCompareHandRank_KickerOrdering(t *testing.T) {
	// Same pair of nines, ace kicker vs king kicker.
	aceKicker := Evaluate7([]cards.Card{
		card(9, 0), card(9, 1), card(14, 2), card(7, 3),
		card(5, 0), card(3, 1), card(2, 2),
	})
	kingKicker := Evaluate7([]cards.Card{
		card(9, 2), card(9, 3), card(13, 0), card(7, 1),
		card(5, 2), card(3, 3), card(2, 0),
	})
	require.Equal(t, OnePair, aceKicker.Category)
	require.Equal(t, 1, CompareHandRank(aceKicker, kingKicker))
	require.Equal(t, -1, CompareHandRank(kingKicker, aceKicker))
	require.Equal(t, 0, CompareHandRank(aceKicker, aceKicker))
}

func TestWinners_UniqueAndSplit(t *testing.T) {
	board := []cards.Card{card(2, 0), card(7, 1), card(9, 2), card(11, 3), card(13, 0)}

	// Seat 1 pairs kings; seats 0 and 2 both play ace-high with identical
	// kickers and split.
	w, err := Winners(board, map[int][2]cards.Card{
		0: {card(14, 0), card(4, 1)},
		1: {card(13, 1), card(3, 2)},
		2: {card(14, 1), card(4, 2)},
	})
	require.NoError(t, err)
	require.Equal(t, []int{1}, w)

	w, err = Winners(board, map[int][2]cards.Card{
		0: {card(14, 0), card(4, 1)},
		2: {card(14, 1), card(4, 2)},
	})
	require.NoError(t, err)
	require.Equal(t, []int{0, 2}, w)
}

func TestWinners_RejectsCorruptHands(t *testing.T) {
	board := []cards.Card{card(2, 0), card(7, 1), card(9, 2), card(11, 3), card(13, 0)}

	// Hole card duplicates a board card.
	_, err := Winners(board, map[int][2]cards.Card{
		0: {card(2, 0), card(4, 1)},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate")

	// Card id out of range.
	_, err = Winners(board, map[int][2]cards.Card{
		0: {cards.Card(52), card(4, 1)},
	})
	require.Error(t, err)

	// Short board.
	_, err = Winners(board[:4], map[int][2]cards.Card{
		0: {card(14, 0), card(4, 1)},
	})
	require.Error(t, err)

	// No eligible seats.
	_, err = Winners(board, map[int][2]cards.Card{})
	require.Error(t, err)
}
