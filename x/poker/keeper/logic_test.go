package keeper

import (
	"testing"

	"github.com/stretchr/testify/require"

	"onchainpoker-chain/x/poker/types"
)

func newBettingTestTable(bigBlind uint64) *types.Table {
	t := &types.Table{
		Id: 1,
		Params: types.TableParams{
			MaxPlayers: 9,
			SmallBlind: bigBlind / 2,
			BigBlind:   bigBlind,
		},
		Seats: make([]*types.Seat, 9),
		Hand: &types.Hand{
			HandId:       1,
			Phase:        types.HandPhase_HAND_PHASE_BETTING,
			Street:       types.Street_STREET_PREFLOP,
			MinRaiseSize: bigBlind,
			InHand:       make([]bool, 9),
			Folded:       make([]bool, 9),
			AllIn:        make([]bool, 9),
			StreetCommit: make([]uint64, 9),
			TotalCommit:  make([]uint64, 9),
			LastIntervalActed: []int32{
				-1, -1, -1, -1, -1, -1, -1, -1, -1,
			},
		},
	}
	return t
}

func seatWithStack(tbl *types.Table, idx int, stack uint64) {
	tbl.Seats[idx] = &types.Seat{Player: "p", Stack: stack, Hole: []uint32{255, 255}}
	tbl.Hand.InHand[idx] = true
}

// ---------------------------------------------------------------------------
// Side-pot tiers
// ---------------------------------------------------------------------------

func TestBuildPotTiers_ThreeLevels(t *testing.T) {
	totalCommit := make([]uint64, 9)
	eligible := make([]bool, 9)
	totalCommit[0], totalCommit[1], totalCommit[2] = 10, 20, 30
	eligible[0], eligible[1], eligible[2] = true, true, true

	tiers, err := buildPotTiers(totalCommit, eligible)
	require.NoError(t, err)
	require.Len(t, tiers, 3)

	// Bottom tier: 10 from each of the three seats.
	require.Equal(t, uint64(30), tiers[0].Amount)
	require.Equal(t, []int{0, 1, 2}, tiers[0].EligibleSeats)

	// Middle tier: the next 10 from seats 1 and 2.
	require.Equal(t, uint64(20), tiers[1].Amount)
	require.Equal(t, []int{1, 2}, tiers[1].EligibleSeats)

	// Top tier: seat 2's last 10, contested by nobody else.
	require.Equal(t, uint64(10), tiers[2].Amount)
	require.Equal(t, []int{2}, tiers[2].EligibleSeats)
}

func TestBuildPotTiers_FoldedSeatContributesButCannotWin(t *testing.T) {
	totalCommit := make([]uint64, 9)
	eligible := make([]bool, 9)
	totalCommit[0], totalCommit[1], totalCommit[2] = 20, 20, 20
	eligible[0], eligible[2] = true, true // seat 1 folded after committing

	tiers, err := buildPotTiers(totalCommit, eligible)
	require.NoError(t, err)
	require.Len(t, tiers, 1)
	require.Equal(t, uint64(60), tiers[0].Amount)
	require.Equal(t, []int{0, 2}, tiers[0].EligibleSeats)
}

func TestBuildPotTiers_MergesEqualEligibilitySets(t *testing.T) {
	// Seat 1 folds having committed less than the live seats; the sweep
	// produces two levels whose eligible sets are both {0, 2}, which must
	// collapse into a single pot.
	totalCommit := make([]uint64, 9)
	eligible := make([]bool, 9)
	totalCommit[0], totalCommit[1], totalCommit[2] = 30, 10, 30
	eligible[0], eligible[2] = true, true

	tiers, err := buildPotTiers(totalCommit, eligible)
	require.NoError(t, err)
	require.Len(t, tiers, 1)
	require.Equal(t, uint64(70), tiers[0].Amount)
	require.Equal(t, []int{0, 2}, tiers[0].EligibleSeats)
}

func TestBuildPotTiers_AllZeroCommits(t *testing.T) {
	tiers, err := buildPotTiers(make([]uint64, 9), make([]bool, 9))
	require.NoError(t, err)
	require.Empty(t, tiers)
}

// ---------------------------------------------------------------------------
// Uncalled-excess return
// ---------------------------------------------------------------------------

func TestRefundUncalledExcess_SoleTopBetRefunded(t *testing.T) {
	tbl := newBettingTestTable(2)
	seatWithStack(tbl, 0, 94)
	seatWithStack(tbl, 1, 98)
	tbl.Hand.StreetCommit[0], tbl.Hand.TotalCommit[0] = 6, 6
	tbl.Hand.StreetCommit[1], tbl.Hand.TotalCommit[1] = 2, 2

	require.NoError(t, refundUncalledExcess(tbl))

	require.Equal(t, uint64(98), tbl.Seats[0].Stack)
	require.Equal(t, uint64(2), tbl.Hand.StreetCommit[0])
	require.Equal(t, uint64(2), tbl.Hand.TotalCommit[0])
	require.Equal(t, uint64(2), tbl.Hand.StreetCommit[1])
}

func TestRefundUncalledExcess_MatchedTopIsNoOp(t *testing.T) {
	tbl := newBettingTestTable(2)
	seatWithStack(tbl, 0, 90)
	seatWithStack(tbl, 1, 90)
	tbl.Hand.StreetCommit[0], tbl.Hand.TotalCommit[0] = 10, 10
	tbl.Hand.StreetCommit[1], tbl.Hand.TotalCommit[1] = 10, 10

	require.NoError(t, refundUncalledExcess(tbl))

	require.Equal(t, uint64(90), tbl.Seats[0].Stack)
	require.Equal(t, uint64(10), tbl.Hand.StreetCommit[0])
	require.Equal(t, uint64(10), tbl.Hand.StreetCommit[1])
}

func TestRefundUncalledExcess_ReopensAllInSeat(t *testing.T) {
	// Seat 0 shoved all-in over a smaller call; once the unmatched part
	// comes back it has chips behind again and is no longer all-in.
	tbl := newBettingTestTable(2)
	seatWithStack(tbl, 0, 0)
	seatWithStack(tbl, 1, 50)
	tbl.Hand.AllIn[0] = true
	tbl.Hand.StreetCommit[0], tbl.Hand.TotalCommit[0] = 40, 40
	tbl.Hand.StreetCommit[1], tbl.Hand.TotalCommit[1] = 25, 25

	require.NoError(t, refundUncalledExcess(tbl))

	require.Equal(t, uint64(15), tbl.Seats[0].Stack)
	require.False(t, tbl.Hand.AllIn[0])
	require.Equal(t, uint64(25), tbl.Hand.StreetCommit[0])
}

// ---------------------------------------------------------------------------
// Betting intervals: opens, full raises, under-raise all-ins
// ---------------------------------------------------------------------------

func TestCommitBetOrRaise_OpeningBetSetsIntervalAndMinRaise(t *testing.T) {
	tbl := newBettingTestTable(2)
	seatWithStack(tbl, 0, 100)
	seatWithStack(tbl, 1, 100)
	h := tbl.Hand

	require.NoError(t, commitBetOrRaise(tbl, 0, 6))

	require.Equal(t, uint64(6), h.BetTo)
	require.Equal(t, uint64(6), h.MinRaiseSize)
	require.Equal(t, uint64(1), h.IntervalId)
	require.Equal(t, int32(1), h.LastIntervalActed[0])
	require.Equal(t, uint64(94), tbl.Seats[0].Stack)
}

func TestCommitBetOrRaise_OpeningBetBelowBigBlindOnlyAllIn(t *testing.T) {
	tbl := newBettingTestTable(10)
	seatWithStack(tbl, 0, 100)
	seatWithStack(tbl, 1, 4)
	tbl.Hand.MinRaiseSize = 10

	// A funded seat cannot open below the big blind.
	err := commitBetOrRaise(tbl, 0, 4)
	require.ErrorContains(t, err, "below big blind")

	// A 4-chip stack may open for its whole stack.
	require.NoError(t, commitBetOrRaise(tbl, 1, 4))
	require.True(t, tbl.Hand.AllIn[1])
	require.Equal(t, uint64(4), tbl.Hand.BetTo)
	// The opening min-raise bar never drops below the big blind.
	require.Equal(t, uint64(10), tbl.Hand.MinRaiseSize)
}

func TestCommitBetOrRaise_FullRaiseOpensNewInterval(t *testing.T) {
	tbl := newBettingTestTable(2)
	seatWithStack(tbl, 0, 100)
	seatWithStack(tbl, 1, 100)
	h := tbl.Hand

	require.NoError(t, commitBetOrRaise(tbl, 0, 6))  // open to 6
	require.NoError(t, commitBetOrRaise(tbl, 1, 12)) // full raise of 6

	require.Equal(t, uint64(12), h.BetTo)
	require.Equal(t, uint64(6), h.MinRaiseSize)
	require.Equal(t, uint64(2), h.IntervalId)
	// Seat 0 last acted in interval 1, so it owes action again.
	require.True(t, seatOwesAction(h, 0))
}

func TestCommitBetOrRaise_ShortAllInDoesNotReopenBetting(t *testing.T) {
	tbl := newBettingTestTable(2)
	seatWithStack(tbl, 0, 100)
	seatWithStack(tbl, 1, 9)
	seatWithStack(tbl, 2, 100)
	h := tbl.Hand

	// Seat 0 opens to 6. Min raise becomes 6, so a full re-raise is to 12.
	require.NoError(t, commitBetOrRaise(tbl, 0, 6))
	require.Equal(t, uint64(1), h.IntervalId)

	// Seat 1 shoves 9 total: an under-raise (raise size 3 < 6). Interval and
	// min-raise stay put.
	require.NoError(t, commitBetOrRaise(tbl, 1, 9))
	require.True(t, h.AllIn[1])
	require.Equal(t, uint64(9), h.BetTo)
	require.Equal(t, uint64(6), h.MinRaiseSize)
	require.Equal(t, uint64(1), h.IntervalId)

	// Seat 2 may still raise fully (it never acted this interval).
	require.NoError(t, commitBetOrRaise(tbl, 2, 15))
	require.Equal(t, uint64(2), h.IntervalId)

	// Seat 0 already acted in interval 1... but seat 2's full raise opened
	// interval 2, so seat 0 may raise again.
	require.NoError(t, commitBetOrRaise(tbl, 0, 100))
	require.Equal(t, uint64(3), h.IntervalId)
}

func TestCommitBetOrRaise_UnderRaiseLocksOutPriorActors(t *testing.T) {
	tbl := newBettingTestTable(2)
	seatWithStack(tbl, 0, 100)
	seatWithStack(tbl, 1, 9)
	h := tbl.Hand

	require.NoError(t, commitBetOrRaise(tbl, 0, 6))
	require.NoError(t, commitBetOrRaise(tbl, 1, 9)) // short all-in, same interval

	// Seat 0 acted at the previous level and the short shove did not reopen
	// betting: raising again is illegal, it can only call the extra 3.
	err := commitBetOrRaise(tbl, 0, 15)
	require.ErrorContains(t, err, "already acted")

	require.NoError(t, commitCall(tbl, 0))
	require.Equal(t, uint64(9), h.StreetCommit[0])
	require.True(t, isBettingStreetDone(h))
}

func TestCommitCall_ShortStackCallIsAllIn(t *testing.T) {
	tbl := newBettingTestTable(2)
	seatWithStack(tbl, 0, 100)
	seatWithStack(tbl, 1, 3)
	h := tbl.Hand

	require.NoError(t, commitBetOrRaise(tbl, 0, 10))
	require.NoError(t, commitCall(tbl, 1))

	require.True(t, h.AllIn[1])
	require.Equal(t, uint64(3), h.StreetCommit[1])
	require.Equal(t, uint64(0), tbl.Seats[1].Stack)
	// The short call does not change the bet level.
	require.Equal(t, uint64(10), h.BetTo)
}

func TestBlindSeats_HeadsUpButtonPostsSmall(t *testing.T) {
	tbl := newBettingTestTable(2)
	seatWithStack(tbl, 3, 100)
	seatWithStack(tbl, 7, 100)
	tbl.ButtonSeat = 3

	sb, bb := resolveBlindSeats(tbl)
	require.Equal(t, 3, sb, "heads-up: button posts the small blind")
	require.Equal(t, 7, bb)
}

func TestBlindSeats_ThreeHanded(t *testing.T) {
	tbl := newBettingTestTable(2)
	seatWithStack(tbl, 0, 100)
	seatWithStack(tbl, 3, 100)
	seatWithStack(tbl, 7, 100)
	tbl.ButtonSeat = 0

	sb, bb := resolveBlindSeats(tbl)
	require.Equal(t, 3, sb)
	require.Equal(t, 7, bb)
}

func TestCommitBlind_ShortBlindIsAllIn(t *testing.T) {
	tbl := newBettingTestTable(10)
	seatWithStack(tbl, 0, 4)
	seatWithStack(tbl, 1, 100)

	require.NoError(t, commitBlind(tbl, 0, 10))
	require.True(t, tbl.Hand.AllIn[0])
	require.Equal(t, uint64(4), tbl.Hand.StreetCommit[0])
	require.Equal(t, uint64(0), tbl.Seats[0].Stack)
}
