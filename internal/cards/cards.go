package cards

import (
	"crypto/sha256"
	"encoding/binary"
)

// Card is a 0..51 identifier encoding rank and suit as:
//
//	rank = (id % 13) + 2  (2..14, Ace high)
//	suit = (id / 13)      (0..3: clubs, diamonds, hearts, spades)
type Card uint8

const ranksPerSuit = 13

var rankGlyphs = [...]byte{'2', '3', '4', '5', '6', '7', '8', '9', 'T', 'J', 'Q', 'K', 'A'}
var suitGlyphs = [...]byte{'c', 'd', 'h', 's'}

// Rank returns the card's rank in 2..14 (Ace high).
func (c Card) Rank() uint8 {
	return uint8(c%ranksPerSuit) + 2
}

// Suit returns the card's suit in 0..3.
func (c Card) Suit() uint8 {
	return uint8(c / ranksPerSuit)
}

func (c Card) String() string {
	rankIdx := c % ranksPerSuit
	suitIdx := c.Suit()
	rch := byte('?')
	if int(rankIdx) < len(rankGlyphs) {
		rch = rankGlyphs[rankIdx]
	}
	sch := byte('?')
	if int(suitIdx) < len(suitGlyphs) {
		sch = suitGlyphs[suitIdx]
	}
	return string([]byte{rch, sch})
}

// DeterministicDeck returns a 52-card deck shuffled by a seed-derived
// Fisher-Yates walk. This is a dev/testing helper; production dealing goes
// through the verifiable shuffle in x/dealer.
func DeterministicDeck(seed []byte) []Card {
	deck := make([]Card, 52)
	for i := range deck {
		deck[i] = Card(i)
	}

	var counter uint64
	nextDrawIndex := func(bound int) int {
		buf := make([]byte, len(seed)+8)
		copy(buf, seed)
		binary.LittleEndian.PutUint64(buf[len(seed):], counter)
		counter++
		h := sha256.Sum256(buf)
		return int(binary.LittleEndian.Uint64(h[:8]) % uint64(bound))
	}

	for i := len(deck) - 1; i > 0; i-- {
		j := nextDrawIndex(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
	return deck
}
