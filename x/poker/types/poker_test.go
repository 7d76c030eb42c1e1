package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleTable() *Table {
	h := &Hand{
		HandId:         3,
		Phase:          HandPhase_HAND_PHASE_BETTING,
		Street:         Street_STREET_FLOP,
		ButtonSeat:     2,
		SmallBlindSeat: 4,
		BigBlindSeat:   6,
		ActionOn:       7,
		BetTo:          40,
		MinRaiseSize:   20,
		IntervalId:     2,

		InHand:            []bool{false, false, true, false, true, false, true, true, false},
		Folded:            []bool{false, false, false, false, true, false, false, false, false},
		AllIn:             []bool{false, false, true, false, false, false, false, false, false},
		StreetCommit:      []uint64{0, 0, 40, 0, 0, 0, 20, 40, 0},
		TotalCommit:       []uint64{0, 0, 90, 0, 10, 0, 70, 90, 0},
		LastIntervalActed: []int32{-1, -1, 2, -1, 1, -1, 1, 2, -1},

		Board:          []uint32{3, 17, 44},
		ActionDeadline: 1_700_000_123,

		Dealer: &DealerMeta{
			EpochId:        9,
			DeckSize:       52,
			DeckFinalized:  true,
			HolePos:        []uint32{255, 255, 255, 255, 4, 5, 255, 255, 8, 9, 255, 255, 12, 13, 14, 15, 255, 255},
			Cursor:         18,
			RevealPos:      21,
			RevealDeadline: 1_700_000_456,
		},
	}

	t := &Table{
		Id:      7,
		Creator: "ocp1creator",
		Label:   "round-trip",
		Params: TableParams{
			MaxPlayers:        9,
			SmallBlind:        5,
			BigBlind:          10,
			MinBuyIn:          200,
			MaxBuyIn:          2000,
			ActionTimeoutSecs: 30,
			DealerTimeoutSecs: 120,
			PlayerBond:        25,
			RakeBps:           0,
			PasswordHash:      []byte{1, 2, 3, 4},
		},
		Seats:      make([]*Seat, 9),
		NextHandId: 4,
		ButtonSeat: 2,
		Hand:       h,
	}
	for i := range t.Seats {
		t.Seats[i] = &Seat{Hole: []uint32{255, 255}}
	}
	t.Seats[2] = &Seat{Player: "ocp1p2", Pk: []byte{0xaa, 0xbb}, Stack: 500, Bond: 25, Hole: []uint32{12, 40}}
	t.Seats[6] = &Seat{Player: "ocp1p6", Pk: []byte{0xcc}, Stack: 130, Bond: 25, Hole: []uint32{255, 255}}
	return t
}

func TestTable_MarshalUnmarshalRoundTrip(t *testing.T) {
	want := sampleTable()

	bz, err := want.Marshal()
	require.NoError(t, err)

	var got Table
	require.NoError(t, got.Unmarshal(bz))
	require.Equal(t, *want, got)

	// A second encode of the decoded value is byte-identical.
	bz2, err := got.Marshal()
	require.NoError(t, err)
	require.Equal(t, bz, bz2)
}

func TestTable_RoundTripWithoutHand(t *testing.T) {
	want := sampleTable()
	want.Hand = nil

	bz, err := want.Marshal()
	require.NoError(t, err)

	var got Table
	require.NoError(t, got.Unmarshal(bz))
	require.Nil(t, got.Hand)
	require.Equal(t, *want, got)
}

func TestHand_RoundTripPreservesDealerMeta(t *testing.T) {
	want := sampleTable().Hand

	bz, err := want.Marshal()
	require.NoError(t, err)

	var got Hand
	require.NoError(t, got.Unmarshal(bz))
	require.NotNil(t, got.Dealer)
	require.Equal(t, *want.Dealer, *got.Dealer)
	require.Equal(t, *want, got)
}

func TestMsgSit_RoundTripCarriesPassword(t *testing.T) {
	want := MsgSit{
		TableId:  4,
		Player:   "ocp1player",
		BuyIn:    750,
		PkPlayer: []byte{9, 8, 7},
		Password: "hunter2",
	}

	bz, err := want.Marshal()
	require.NoError(t, err)

	var got MsgSit
	require.NoError(t, got.Unmarshal(bz))
	require.Equal(t, want, got)
}

func TestMsgCreateTable_RoundTrip(t *testing.T) {
	want := MsgCreateTable{
		Creator:           "ocp1creator",
		Label:             "friday night",
		MaxPlayers:        9,
		SmallBlind:        1,
		BigBlind:          2,
		MinBuyIn:          40,
		MaxBuyIn:          400,
		ActionTimeoutSecs: 15,
		DealerTimeoutSecs: 60,
		PlayerBond:        5,
		RakeBps:           0,
		Password:          "secret",
	}

	bz, err := want.Marshal()
	require.NoError(t, err)

	var got MsgCreateTable
	require.NoError(t, got.Unmarshal(bz))
	require.Equal(t, want, got)
}

func TestTable_UnmarshalRejectsTruncatedInput(t *testing.T) {
	bz, err := sampleTable().Marshal()
	require.NoError(t, err)

	var got Table
	require.Error(t, got.Unmarshal(bz[:len(bz)/2]))
}
