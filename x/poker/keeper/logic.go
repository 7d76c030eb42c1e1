package keeper

import (
	"fmt"
	"sort"
	"strings"

	"onchainpoker-chain/internal/cards"
	"onchainpoker-chain/internal/holdem"
	"onchainpoker-chain/x/poker/types"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Fallback clock budgets used when a table's Params leave the corresponding
// timeout at zero (e.g. tables created before a params migration).
const (
	fallbackDealerTimeoutSecs uint64 = 120
	fallbackActionTimeoutSecs uint64 = 30
)

const numSeats = 9

// ---------------------------------------------------------------------------
// Seat lookup and rotation
// ---------------------------------------------------------------------------

// pickAutoSeat chooses where a joining player lands. On a table that has
// never dealt a hand it takes the first empty seat; otherwise it walks
// clockwise from the current (or prospective) big blind so the new player is
// queued up to post the next big blind rather than jumping into the action.
func pickAutoSeat(t *types.Table) (int, error) {
	capacity := int(t.Params.MaxPlayers)
	if capacity == 0 {
		capacity = numSeats
	}

	if t.ButtonSeat < 0 && t.Hand == nil {
		for i := 0; i < capacity; i++ {
			if seatIsEmpty(t, i) {
				return i, nil
			}
		}
		return -1, fmt.Errorf("table full")
	}

	anchor := int(t.ButtonSeat)
	if t.Hand != nil {
		anchor = int(t.Hand.BigBlindSeat)
	} else if _, bb := resolveBlindSeats(t); bb >= 0 {
		anchor = bb
	}

	for step := 1; step <= capacity; step++ {
		i := (anchor + step) % capacity
		if seatIsEmpty(t, i) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("table full")
}

func seatIsEmpty(t *types.Table, i int) bool {
	return i >= len(t.Seats) || t.Seats[i] == nil || t.Seats[i].Player == ""
}

// fundedSeatIndices returns, in ascending order, every seat holding a player
// with a positive stack.
func fundedSeatIndices(t *types.Table) []int {
	out := make([]int, 0, numSeats)
	for i := 0; i < numSeats; i++ {
		if i >= len(t.Seats) || t.Seats[i] == nil || t.Seats[i].Stack == 0 {
			continue
		}
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func findSeatByPlayer(t *types.Table, player string) int {
	if t == nil || player == "" {
		return -1
	}
	for i := 0; i < numSeats && i < len(t.Seats); i++ {
		if t.Seats[i] != nil && t.Seats[i].Player == player {
			return i
		}
	}
	return -1
}

// nextFundedSeat walks clockwise from `from` and returns the next seat that
// still carries chips. If none qualifies it falls back to `from` itself.
func nextFundedSeat(t *types.Table, from int) int {
	for step := 1; step <= numSeats; step++ {
		i := (from + step) % numSeats
		if i < len(t.Seats) && t.Seats[i] != nil && t.Seats[i].Stack > 0 {
			return i
		}
	}
	return from
}

// resolveBlindSeats derives small/big blind seats from the button position.
// Heads-up play is special-cased: the button itself posts the small blind.
func resolveBlindSeats(t *types.Table) (sb int, bb int) {
	funded := fundedSeatIndices(t)
	if len(funded) < 2 {
		return -1, -1
	}
	if len(funded) == 2 {
		sb = int(t.ButtonSeat)
		bb = nextFundedSeat(t, sb)
		return sb, bb
	}
	sb = nextFundedSeat(t, int(t.ButtonSeat))
	bb = nextFundedSeat(t, sb)
	return sb, bb
}

// ---------------------------------------------------------------------------
// Commitment mutators: blinds, bets/raises, calls, checks, folds
// ---------------------------------------------------------------------------

func commitBlind(t *types.Table, seatIdx int, amount uint64) error {
	h := t.Hand
	s := t.Seats[seatIdx]
	if h == nil || s == nil {
		return fmt.Errorf("invalid blind seat")
	}
	if !h.InHand[seatIdx] {
		return fmt.Errorf("seat not in hand")
	}
	if s.Stack == 0 {
		return fmt.Errorf("no chips")
	}

	put := amount
	if put > s.Stack {
		put = s.Stack
	}
	return commitChips(h, s, seatIdx, put)
}

// commitChips moves `put` chips from the seat's stack into both its street
// and total commitments, marking the seat all-in if its stack hits zero.
func commitChips(h *types.Hand, s *types.Seat, seatIdx int, put uint64) error {
	nextStreet, err := addUint64Checked(h.StreetCommit[seatIdx], put, "street commit")
	if err != nil {
		return err
	}
	nextTotal, err := addUint64Checked(h.TotalCommit[seatIdx], put, "total commit")
	if err != nil {
		return err
	}
	s.Stack -= put
	h.StreetCommit[seatIdx] = nextStreet
	h.TotalCommit[seatIdx] = nextTotal
	if s.Stack == 0 {
		h.AllIn[seatIdx] = true
	}
	return nil
}

func ensureRaiseAllowed(hand *types.Hand, seat int) error {
	if hand.LastIntervalActed[seat] == int32(hand.IntervalId) {
		return fmt.Errorf("raise not allowed: already acted since last full raise")
	}
	return nil
}

// commitBetOrRaise moves seat `seat`'s street commitment up to
// `desiredCommit`, handling the three legal shapes: an opening bet, a full
// raise that resets the minimum raise size, and an under-sized all-in raise
// that does neither.
func commitBetOrRaise(t *types.Table, seat int, desiredCommit uint64) error {
	h := t.Hand
	if h == nil {
		return fmt.Errorf("no active hand")
	}
	s := t.Seats[seat]
	if s == nil {
		return fmt.Errorf("seat empty")
	}

	currentCommit := h.StreetCommit[seat]
	if desiredCommit <= currentCommit {
		return fmt.Errorf("BetTo must exceed current street commitment")
	}
	maxCommit, err := addUint64Checked(currentCommit, s.Stack, "max commit")
	if err != nil {
		return err
	}
	if desiredCommit > maxCommit {
		return fmt.Errorf("BetTo exceeds available chips")
	}
	if desiredCommit <= h.BetTo {
		return fmt.Errorf("BetTo must exceed current betTo (use call/check when not raising)")
	}

	isAllIn := desiredCommit == maxCommit
	if err := ensureRaiseAllowed(h, seat); err != nil {
		return err
	}

	if h.BetTo == 0 {
		if err := openBettingInterval(t, h, seat, desiredCommit, isAllIn); err != nil {
			return err
		}
	} else if err := raiseOverBet(h, seat, desiredCommit, isAllIn); err != nil {
		return err
	}

	return commitChips(h, s, seat, desiredCommit-currentCommit)
}

func openBettingInterval(t *types.Table, h *types.Hand, seat int, desiredCommit uint64, isAllIn bool) error {
	minBet := t.Params.BigBlind
	if desiredCommit < minBet && !isAllIn {
		return fmt.Errorf("bet size below big blind; only allowed if all-in")
	}
	h.IntervalId += 1
	h.LastIntervalActed[seat] = int32(h.IntervalId)
	if desiredCommit >= minBet {
		h.MinRaiseSize = desiredCommit
	} else {
		h.MinRaiseSize = minBet
	}
	h.BetTo = desiredCommit
	return nil
}

func raiseOverBet(h *types.Hand, seat int, desiredCommit uint64, isAllIn bool) error {
	raiseSize := desiredCommit - h.BetTo
	if raiseSize < h.MinRaiseSize {
		if !isAllIn {
			return fmt.Errorf("raise size below minimum; only allowed if all-in")
		}
		// Short all-in raise: stays within the current interval and does not
		// move the minimum raise bar.
		h.LastIntervalActed[seat] = int32(h.IntervalId)
		h.BetTo = desiredCommit
		return nil
	}
	h.IntervalId += 1
	h.MinRaiseSize = raiseSize
	h.BetTo = desiredCommit
	h.LastIntervalActed[seat] = int32(h.IntervalId)
	return nil
}

func commitCall(t *types.Table, seat int) error {
	h := t.Hand
	if h == nil {
		return fmt.Errorf("no active hand")
	}
	s := t.Seats[seat]
	if s == nil {
		return fmt.Errorf("seat empty")
	}
	owed := amountOwedToCall(h, seat)
	if owed == 0 {
		return fmt.Errorf("call is not legal when facing 0")
	}
	pay := owed
	if pay > s.Stack {
		pay = s.Stack
	}
	if err := commitChips(h, s, seat, pay); err != nil {
		return err
	}
	h.LastIntervalActed[seat] = int32(h.IntervalId)
	return nil
}

func commitCheck(hand *types.Hand, seat int) error {
	if amountOwedToCall(hand, seat) != 0 {
		return fmt.Errorf("check is not legal when facing a bet")
	}
	hand.LastIntervalActed[seat] = int32(hand.IntervalId)
	return nil
}

func markFolded(hand *types.Hand, seat int) {
	hand.Folded[seat] = true
	hand.LastIntervalActed[seat] = int32(hand.IntervalId)
}

// ---------------------------------------------------------------------------
// Interval / street bookkeeping
// ---------------------------------------------------------------------------

func seatOwesAction(hand *types.Hand, seat int) bool {
	if !hand.InHand[seat] || hand.Folded[seat] || hand.AllIn[seat] {
		return false
	}
	return hand.LastIntervalActed[seat] != int32(hand.IntervalId) || hand.StreetCommit[seat] != hand.BetTo
}

func findNextToAct(hand *types.Hand, fromSeat int) int {
	for step := 1; step <= numSeats; step++ {
		i := (fromSeat + step) % numSeats
		if seatOwesAction(hand, i) {
			return i
		}
	}
	return -1
}

func amountOwedToCall(hand *types.Hand, seat int) uint64 {
	if hand.BetTo <= hand.StreetCommit[seat] {
		return 0
	}
	return hand.BetTo - hand.StreetCommit[seat]
}

func liveSeatCount(hand *types.Hand) int {
	n := 0
	for i := 0; i < numSeats; i++ {
		if hand.InHand[i] && !hand.Folded[i] {
			n++
		}
	}
	return n
}

// seatsWithChipsCount counts live, non-folded seats that still have chips
// behind them (i.e. are not already all-in) — used to decide whether a
// street still needs a betting round at all.
func seatsWithChipsCount(t *types.Table, hand *types.Hand) int {
	n := 0
	for i := 0; i < numSeats; i++ {
		if !hand.InHand[i] || hand.Folded[i] {
			continue
		}
		if s := t.Seats[i]; s != nil && s.Stack > 0 {
			n++
		}
	}
	return n
}

func isBettingStreetDone(hand *types.Hand) bool {
	interval := int32(hand.IntervalId)
	for i := 0; i < numSeats; i++ {
		if !hand.InHand[i] || hand.Folded[i] || hand.AllIn[i] {
			continue
		}
		if hand.StreetCommit[i] != hand.BetTo || hand.LastIntervalActed[i] != interval {
			return false
		}
	}
	return true
}

func highestStreetCommit(hand *types.Hand) uint64 {
	var m uint64
	for i := 0; i < numSeats; i++ {
		if hand.StreetCommit[i] > m {
			m = hand.StreetCommit[i]
		}
	}
	return m
}

// runnerUpStreetCommit returns the largest street commitment strictly below
// `max`, used to size an uncalled-bet refund.
func runnerUpStreetCommit(hand *types.Hand, max uint64) uint64 {
	var runnerUp uint64
	for i := 0; i < numSeats; i++ {
		if v := hand.StreetCommit[i]; v != max && v > runnerUp {
			runnerUp = v
		}
	}
	return runnerUp
}

// refundUncalledExcess hands back the portion of the street's lone top bet
// that no other seat matched. A no-op if two or more seats share the top
// commitment (there's nothing uncalled) or the street is empty.
func refundUncalledExcess(t *types.Table) error {
	h := t.Hand
	if h == nil {
		return nil
	}

	top := highestStreetCommit(h)
	if top == 0 {
		return nil
	}
	runnerUp := runnerUpStreetCommit(h, top)
	if runnerUp == top {
		return nil
	}

	topSeat := -1
	for i := 0; i < numSeats; i++ {
		if h.StreetCommit[i] != top {
			continue
		}
		if topSeat != -1 {
			return nil // more than one seat at the top: nothing uncalled
		}
		topSeat = i
	}
	if topSeat == -1 {
		return nil
	}

	excess := top - runnerUp
	if excess == 0 {
		return nil
	}
	seat := t.Seats[topSeat]
	if seat == nil {
		return nil
	}
	if h.StreetCommit[topSeat] < excess || h.TotalCommit[topSeat] < excess {
		return fmt.Errorf("street commit underflow on uncalled excess return")
	}
	nextStack, err := addUint64Checked(seat.Stack, excess, "seat stack")
	if err != nil {
		return err
	}
	seat.Stack = nextStack
	h.StreetCommit[topSeat] -= excess
	h.TotalCommit[topSeat] -= excess
	if seat.Stack > 0 {
		h.AllIn[topSeat] = false
	}
	return nil
}

// ---------------------------------------------------------------------------
// Hand completion without a showdown (everyone else folded)
// ---------------------------------------------------------------------------

func settleHandByFold(t *types.Table, events *[]sdk.Event) error {
	h := t.Hand
	if h == nil {
		return nil
	}

	winnerSeat := -1
	for i := 0; i < numSeats; i++ {
		if h.InHand[i] && !h.Folded[i] {
			winnerSeat = i
			break
		}
	}
	if winnerSeat == -1 {
		t.Hand = nil
		return nil
	}

	if err := refundUncalledExcess(t); err != nil {
		return err
	}

	var pot uint64
	for i := 0; i < numSeats; i++ {
		next, err := addUint64Checked(pot, h.TotalCommit[i], "pot total")
		if err != nil {
			return err
		}
		pot = next
	}
	if winner := t.Seats[winnerSeat]; winner != nil {
		next, err := addUint64Checked(winner.Stack, pot, "winner stack")
		if err != nil {
			return err
		}
		winner.Stack = next
	}

	handId := h.HandId
	clearAllHoleCards(t)
	t.Hand = nil

	*events = append(*events, sdk.NewEvent(
		types.EventTypeHandCompleted,
		sdk.NewAttribute("tableId", fmt.Sprintf("%d", t.Id)),
		sdk.NewAttribute("handId", fmt.Sprintf("%d", handId)),
		sdk.NewAttribute("reason", "all-folded"),
		sdk.NewAttribute("winnerSeat", fmt.Sprintf("%d", winnerSeat)),
		sdk.NewAttribute("pot", fmt.Sprintf("%d", pot)),
	))
	return nil
}

func clearAllHoleCards(t *types.Table) {
	for i := 0; i < numSeats; i++ {
		if t.Seats[i] != nil {
			t.Seats[i].Hole = []uint32{255, 255}
		}
	}
}

// ---------------------------------------------------------------------------
// Street advancement
// ---------------------------------------------------------------------------

// advanceHandIfReady is called after every action is applied. It either
// hands the seat to the next actor, settles a fold-out, or — once a street's
// betting is fully settled — moves the hand into the matching AWAIT_* phase
// so x/dealer can append the next public card(s).
func advanceHandIfReady(t *types.Table, events *[]sdk.Event) error {
	h := t.Hand
	if h == nil {
		return nil
	}

	if liveSeatCount(h) <= 1 {
		return settleHandByFold(t, events)
	}

	if !isBettingStreetDone(h) {
		h.ActionOn = int32(findNextToAct(h, int(h.ActionOn)))
		return nil
	}

	if err := refundUncalledExcess(t); err != nil {
		return err
	}

	if h.Dealer == nil {
		return nil
	}

	// Dealt cards never live in plaintext on chain: park the hand in the
	// relevant AWAIT_* phase until x/dealer delivers the next reveal.
	h.ActionOn = -1
	h.Phase = nextAwaitPhase(h.Street)
	return nil
}

func nextAwaitPhase(street types.Street) types.HandPhase {
	switch street {
	case types.Street_STREET_PREFLOP:
		return types.HandPhase_HAND_PHASE_AWAIT_FLOP
	case types.Street_STREET_FLOP:
		return types.HandPhase_HAND_PHASE_AWAIT_TURN
	case types.Street_STREET_TURN:
		return types.HandPhase_HAND_PHASE_AWAIT_RIVER
	default:
		return types.HandPhase_HAND_PHASE_AWAIT_SHOWDOWN
	}
}

func emitStreetRevealedEvent(t *types.Table, street string, revealed []cards.Card, events *[]sdk.Event) {
	h := t.Hand
	if h == nil {
		return
	}
	strs := make([]string, 0, len(revealed))
	for _, c := range revealed {
		strs = append(strs, c.String())
	}
	*events = append(*events, sdk.NewEvent(
		types.EventTypeStreetRevealed,
		sdk.NewAttribute("tableId", fmt.Sprintf("%d", t.Id)),
		sdk.NewAttribute("handId", fmt.Sprintf("%d", h.HandId)),
		sdk.NewAttribute("street", street),
		sdk.NewAttribute("cards", strings.Join(strs, ",")),
	))
}

// startPostflopBettingRound resets per-street betting state and hands the
// first action to the seat left of the button: preflop action starts left
// of the big blind, but every later street starts left of the button.
func startPostflopBettingRound(t *types.Table) {
	h := t.Hand
	if h == nil {
		return
	}
	h.BetTo = 0
	h.MinRaiseSize = t.Params.BigBlind
	h.IntervalId = 0
	for i := 0; i < numSeats; i++ {
		h.StreetCommit[i] = 0
		h.LastIntervalActed[i] = -1
	}
	h.ActionOn = int32(findNextToAct(h, int(h.ButtonSeat)))
}

// ---------------------------------------------------------------------------
// Dealer-driven reveals (board cards and showdown hole cards)
// ---------------------------------------------------------------------------

// sortedShowdownHolePositions lists, in ascending deck-position order, the
// hole-card positions that must eventually be revealed for showdown: both
// cards of every seat still live (in the hand, not folded).
func sortedShowdownHolePositions(t *types.Table) ([]uint32, error) {
	if t == nil || t.Hand == nil || t.Hand.Dealer == nil {
		return nil, fmt.Errorf("missing dealer meta")
	}
	h, dh := t.Hand, t.Hand.Dealer
	if len(dh.HolePos) != numSeats*2 {
		return nil, fmt.Errorf("holePos not initialized")
	}

	positions := make([]uint32, 0, numSeats*2)
	for seat := 0; seat < numSeats; seat++ {
		if !h.InHand[seat] || h.Folded[seat] {
			continue
		}
		for c := 0; c < 2; c++ {
			p := dh.HolePos[seat*2+c]
			if p == 255 {
				return nil, fmt.Errorf("holePos unset for seat %d", seat)
			}
			positions = append(positions, p)
		}
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i] < positions[j] })
	return positions, nil
}

// nextUnrevealedHolePos finds the lowest-position showdown hole card that
// hasn't yet been filled in on its seat, scanning in deck order so reveals
// happen in the canonical sequence.
func nextUnrevealedHolePos(t *types.Table) (uint32, bool, error) {
	positions, err := sortedShowdownHolePositions(t)
	if err != nil {
		return 0, false, err
	}
	holePos := t.Hand.Dealer.HolePos
	for _, p := range positions {
		seat, holeIdx, ok := seatHoleAtPos(holePos, p)
		if !ok || seat < 0 || seat >= len(t.Seats) || t.Seats[seat] == nil {
			continue
		}
		if holeIdx < 0 || holeIdx > 1 || len(t.Seats[seat].Hole) != 2 {
			continue
		}
		if t.Seats[seat].Hole[holeIdx] == 255 {
			return p, true, nil
		}
	}
	return 0, false, nil
}

func seatHoleAtPos(holePos []uint32, pos uint32) (seat int, holeIdx int, ok bool) {
	if len(holePos) != numSeats*2 {
		return -1, -1, false
	}
	for s := 0; s < numSeats; s++ {
		for c := 0; c < 2; c++ {
			if holePos[s*2+c] == pos {
				return s, c, true
			}
		}
	}
	return -1, -1, false
}

// expectedRevealPosition returns the deck position x/dealer must reveal next
// given the hand's current AWAIT_* phase, or ok=false if nothing is pending.
func expectedRevealPosition(t *types.Table) (uint32, bool, error) {
	if t == nil || t.Hand == nil || t.Hand.Dealer == nil {
		return 0, false, nil
	}
	h, dh := t.Hand, t.Hand.Dealer
	if !dh.DeckFinalized {
		return 0, false, fmt.Errorf("deck not finalized")
	}
	if dh.DeckSize == 0 {
		return 0, false, fmt.Errorf("empty dealer deck")
	}

	switch h.Phase {
	case types.HandPhase_HAND_PHASE_AWAIT_FLOP:
		if len(h.Board) > 2 {
			return 0, false, fmt.Errorf("awaitFlop but board has %d cards", len(h.Board))
		}
		return boardCursorPosition(dh, h.Board)
	case types.HandPhase_HAND_PHASE_AWAIT_TURN:
		if len(h.Board) != 3 {
			return 0, false, fmt.Errorf("awaitTurn but board has %d cards", len(h.Board))
		}
		return boardCursorPosition(dh, h.Board)
	case types.HandPhase_HAND_PHASE_AWAIT_RIVER:
		if len(h.Board) != 4 {
			return 0, false, fmt.Errorf("awaitRiver but board has %d cards", len(h.Board))
		}
		return boardCursorPosition(dh, h.Board)
	}

	if h.Phase == types.HandPhase_HAND_PHASE_AWAIT_SHOWDOWN {
		if len(h.Board) != 5 {
			return 0, false, fmt.Errorf("awaitShowdown but board has %d cards", len(h.Board))
		}
		pos, pending, err := nextUnrevealedHolePos(t)
		if err != nil || !pending {
			return 0, false, err
		}
		return pos, true, nil
	}
	return 0, false, nil
}

func boardCursorPosition(dh *types.DealerMeta, board []uint32) (uint32, bool, error) {
	pos := dh.Cursor + uint32(len(board))
	if pos >= dh.DeckSize {
		return 0, false, fmt.Errorf("board pos out of bounds")
	}
	return pos, true, nil
}

// applyDealerReveal folds one freshly-revealed card (board or hole) into
// poker state. Persistence and event emission are the caller's
// responsibility; this only returns the events to append.
func applyDealerReveal(t *types.Table, pos uint32, cardID uint32, nowUnix int64) ([]sdk.Event, error) {
	if t == nil || t.Hand == nil || t.Hand.Dealer == nil {
		return nil, nil
	}
	h, dh := t.Hand, t.Hand.Dealer
	_ = nowUnix // deadlines are refreshed separately by the caller

	switch h.Phase {
	case types.HandPhase_HAND_PHASE_AWAIT_FLOP, types.HandPhase_HAND_PHASE_AWAIT_TURN, types.HandPhase_HAND_PHASE_AWAIT_RIVER:
		return applyBoardReveal(t, h, dh, pos, cardID)
	case types.HandPhase_HAND_PHASE_AWAIT_SHOWDOWN:
		return applyShowdownHoleReveal(t, h, dh, pos, cardID)
	default:
		return nil, fmt.Errorf("hand not in an await phase")
	}
}

func applyBoardReveal(t *types.Table, h *types.Hand, dh *types.DealerMeta, pos uint32, cardID uint32) ([]sdk.Event, error) {
	if !dh.DeckFinalized {
		return nil, fmt.Errorf("deck not finalized")
	}
	expectPos := dh.Cursor + uint32(len(h.Board))
	if pos != expectPos {
		return nil, fmt.Errorf("unexpected reveal pos: expected %d got %d", expectPos, pos)
	}
	h.Board = append(h.Board, cardID)

	events := []sdk.Event{}
	switch h.Phase {
	case types.HandPhase_HAND_PHASE_AWAIT_FLOP:
		if len(h.Board) == 3 {
			emitStreetRevealedEvent(t, "flop", cardsAt(h.Board, 0, 1, 2), &events)
			h.Street = types.Street_STREET_FLOP
			openNextStreet(t, h, types.HandPhase_HAND_PHASE_AWAIT_TURN)
		}
	case types.HandPhase_HAND_PHASE_AWAIT_TURN:
		if len(h.Board) == 4 {
			emitStreetRevealedEvent(t, "turn", cardsAt(h.Board, 3), &events)
			h.Street = types.Street_STREET_TURN
			openNextStreet(t, h, types.HandPhase_HAND_PHASE_AWAIT_RIVER)
		}
	case types.HandPhase_HAND_PHASE_AWAIT_RIVER:
		if len(h.Board) == 5 {
			emitStreetRevealedEvent(t, "river", cardsAt(h.Board, 4), &events)
			h.Street = types.Street_STREET_RIVER
			openNextStreet(t, h, types.HandPhase_HAND_PHASE_AWAIT_SHOWDOWN)
		}
	}
	return events, nil
}

func cardsAt(board []uint32, idx ...int) []cards.Card {
	out := make([]cards.Card, 0, len(idx))
	for _, i := range idx {
		out = append(out, cards.Card(board[i]))
	}
	return out
}

// openNextStreet either starts a new betting round, or — if fewer than two
// seats still have chips behind them — skips straight to the next await
// phase since there's nothing left to bet on.
func openNextStreet(t *types.Table, h *types.Hand, skipToPhase types.HandPhase) {
	if seatsWithChipsCount(t, h) < 2 {
		h.Phase = skipToPhase
		h.ActionOn = -1
		return
	}
	h.Phase = types.HandPhase_HAND_PHASE_BETTING
	startPostflopBettingRound(t)
}

func applyShowdownHoleReveal(t *types.Table, h *types.Hand, dh *types.DealerMeta, pos uint32, cardID uint32) ([]sdk.Event, error) {
	seat, holeIdx, ok := seatHoleAtPos(dh.HolePos, pos)
	if !ok || seat < 0 || seat >= numSeats || holeIdx < 0 || holeIdx > 1 || t.Seats[seat] == nil {
		return nil, fmt.Errorf("pos %d is not a revealable hole card", pos)
	}
	if !h.InHand[seat] || h.Folded[seat] {
		return nil, fmt.Errorf("seat %d not eligible for showdown reveal", seat)
	}

	if len(t.Seats[seat].Hole) != 2 {
		t.Seats[seat].Hole = []uint32{255, 255}
	}
	t.Seats[seat].Hole[holeIdx] = cardID

	events := []sdk.Event{sdk.NewEvent(
		types.EventTypeHoleCardRevealed,
		sdk.NewAttribute("tableId", fmt.Sprintf("%d", t.Id)),
		sdk.NewAttribute("handId", fmt.Sprintf("%d", h.HandId)),
		sdk.NewAttribute("seat", fmt.Sprintf("%d", seat)),
		sdk.NewAttribute("player", t.Seats[seat].Player),
		sdk.NewAttribute("card", cards.Card(cardID).String()),
	)}

	_, pending, err := nextUnrevealedHolePos(t)
	if err != nil {
		return nil, err
	}
	if !pending {
		showdownEvents, err := resolveShowdown(t)
		if err != nil {
			return nil, err
		}
		events = append(events, showdownEvents...)
	}
	return events, nil
}

// ---------------------------------------------------------------------------
// Side pots and showdown settlement
// ---------------------------------------------------------------------------

// potTier is one layer of the side-pot stack: a chip amount contested among
// exactly EligibleSeats.
type potTier struct {
	Amount        uint64
	EligibleSeats []int
}

func sameEligibility(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// buildPotTiers sweeps the total-commit array from the smallest commitment up,
// peeling off one tier per distinct commitment level, then merges adjacent
// tiers that ended up with identical eligible-seat sets.
func buildPotTiers(totalCommit []uint64, eligibleForWin []bool) ([]potTier, error) {
	type contributor struct {
		seat     int
		amount   uint64
		eligible bool
	}
	live := make([]contributor, 0, numSeats)
	for i := 0; i < numSeats; i++ {
		if totalCommit[i] == 0 {
			continue
		}
		live = append(live, contributor{seat: i, amount: totalCommit[i], eligible: eligibleForWin[i]})
	}

	var tiers []potTier
	for len(live) > 0 {
		floor := live[0].amount
		for _, c := range live[1:] {
			if c.amount < floor {
				floor = c.amount
			}
		}

		amount, err := mulUint64Checked(floor, uint64(len(live)), "pot amount")
		if err != nil {
			return nil, err
		}
		eligible := make([]int, 0, len(live))
		for _, c := range live {
			if c.eligible {
				eligible = append(eligible, c.seat)
			}
		}
		tiers = append(tiers, potTier{Amount: amount, EligibleSeats: eligible})

		next := live[:0]
		for _, c := range live {
			c.amount -= floor
			if c.amount > 0 {
				next = append(next, c)
			}
		}
		live = next
	}

	return mergeAdjacentTiers(tiers), nil
}

func mergeAdjacentTiers(tiers []potTier) []potTier {
	merged := make([]potTier, 0, len(tiers))
	for _, tier := range tiers {
		if n := len(merged); n > 0 && sameEligibility(merged[n-1].EligibleSeats, tier.EligibleSeats) {
			merged[n-1].Amount += tier.Amount
			continue
		}
		merged = append(merged, potTier{
			Amount:        tier.Amount,
			EligibleSeats: append([]int(nil), tier.EligibleSeats...),
		})
	}
	return merged
}

func seatListString(seats []int) string {
	if len(seats) == 0 {
		return ""
	}
	parts := make([]string, 0, len(seats))
	for _, s := range seats {
		parts = append(parts, fmt.Sprintf("%d", s))
	}
	return strings.Join(parts, ",")
}

// resolveShowdown evaluates every remaining pot tier against the revealed
// board and hole cards, splits winnings (odd chips to the earliest-indexed
// winner), and clears the hand. If the board is incomplete it aborts the
// hand instead of guessing; if the evaluator itself errors (duplicate or
// malformed cards) it refunds every commitment and aborts.
func resolveShowdown(t *types.Table) ([]sdk.Event, error) {
	h := t.Hand
	if h == nil {
		return nil, nil
	}

	h.Phase = types.HandPhase_HAND_PHASE_SHOWDOWN
	h.ActionOn = -1

	if len(h.Board) < 5 {
		return abortHand(t, "missing board cards"), nil
	}

	eligible := make([]bool, numSeats)
	for i := 0; i < numSeats; i++ {
		eligible[i] = h.InHand[i] && !h.Folded[i]
	}

	pots, err := buildPotTiers(h.TotalCommit, eligible)
	if err != nil {
		return nil, err
	}

	events := []sdk.Event{sdk.NewEvent(
		types.EventTypeShowdownReached,
		sdk.NewAttribute("tableId", fmt.Sprintf("%d", t.Id)),
		sdk.NewAttribute("handId", fmt.Sprintf("%d", h.HandId)),
		sdk.NewAttribute("pots", fmt.Sprintf("%d", len(pots))),
	)}

	board := h.Board
	if len(board) > 5 {
		board = board[:5]
	}

	winnersByPot, abortEvents, err := evaluatePotWinners(t, h, board, pots)
	if err != nil {
		return nil, err
	}
	if abortEvents != nil {
		return append(events, abortEvents...), nil
	}

	for potIdx, pot := range pots {
		awardEvents, err := awardPot(t, h, potIdx, pot, winnersByPot[potIdx])
		if err != nil {
			return nil, err
		}
		events = append(events, awardEvents...)
	}

	handId := h.HandId
	clearAllHoleCards(t)
	t.Hand = nil
	events = append(events, sdk.NewEvent(
		types.EventTypeHandCompleted,
		sdk.NewAttribute("tableId", fmt.Sprintf("%d", t.Id)),
		sdk.NewAttribute("handId", fmt.Sprintf("%d", handId)),
		sdk.NewAttribute("reason", "showdown"),
	))
	return events, nil
}

// evaluatePotWinners returns, per pot index, the winning seats. If the hand
// evaluator itself fails (duplicate/invalid cards), it returns non-nil
// abortEvents from a full-refund abort instead of winners.
func evaluatePotWinners(t *types.Table, h *types.Hand, board []uint32, pots []potTier) (winners [][]int, abortEvents []sdk.Event, err error) {
	winners = make([][]int, len(pots))
	for potIdx, pot := range pots {
		if pot.Amount == 0 || len(pot.EligibleSeats) == 0 {
			continue
		}
		if len(pot.EligibleSeats) == 1 {
			winners[potIdx] = []int{pot.EligibleSeats[0]}
			continue
		}

		holeBySeat := make(map[int][2]cards.Card, len(pot.EligibleSeats))
		for _, seat := range pot.EligibleSeats {
			if seat < 0 || seat >= numSeats {
				continue
			}
			s := t.Seats[seat]
			if s == nil || len(s.Hole) != 2 || s.Hole[0] == 255 || s.Hole[1] == 255 {
				continue
			}
			holeBySeat[seat] = [2]cards.Card{cards.Card(s.Hole[0]), cards.Card(s.Hole[1])}
		}

		w, evalErr := holdem.Winners(
			[]cards.Card{cards.Card(board[0]), cards.Card(board[1]), cards.Card(board[2]), cards.Card(board[3]), cards.Card(board[4])},
			holeBySeat,
		)
		if evalErr != nil {
			refundErr := refundAllCommitsAndAbort(t, h, "showdown-eval-error: "+evalErr.Error())
			if refundErr.abortErr != nil {
				return nil, nil, refundErr.abortErr
			}
			return nil, refundErr.events, nil
		}
		winners[potIdx] = w
	}
	return winners, nil, nil
}

type refundOutcome struct {
	events   []sdk.Event
	abortErr error
}

func refundAllCommitsAndAbort(t *types.Table, h *types.Hand, reason string) refundOutcome {
	for i := 0; i < numSeats; i++ {
		if t.Seats[i] == nil {
			continue
		}
		next, err := addUint64Checked(t.Seats[i].Stack, h.TotalCommit[i], "seat stack refund")
		if err != nil {
			return refundOutcome{abortErr: err}
		}
		t.Seats[i].Stack = next
	}
	return refundOutcome{events: abortHand(t, reason)}
}

func abortHand(t *types.Table, reason string) []sdk.Event {
	h := t.Hand
	handId := h.HandId
	clearAllHoleCards(t)
	t.Hand = nil
	return []sdk.Event{sdk.NewEvent(
		types.EventTypeHandAborted,
		sdk.NewAttribute("tableId", fmt.Sprintf("%d", t.Id)),
		sdk.NewAttribute("handId", fmt.Sprintf("%d", handId)),
		sdk.NewAttribute("reason", reason),
	)}
}

func awardPot(t *types.Table, h *types.Hand, potIdx int, pot potTier, winners []int) ([]sdk.Event, error) {
	if pot.Amount == 0 || len(pot.EligibleSeats) == 0 || len(winners) == 0 {
		return nil, nil
	}
	share := pot.Amount / uint64(len(winners))
	remainder := pot.Amount % uint64(len(winners))
	for i, seat := range winners {
		s := t.Seats[seat]
		if s == nil {
			continue
		}
		next, err := addUint64Checked(s.Stack, share, "seat stack award")
		if err != nil {
			return nil, err
		}
		s.Stack = next
		if i == 0 {
			next, err := addUint64Checked(s.Stack, remainder, "seat stack remainder award")
			if err != nil {
				return nil, err
			}
			s.Stack = next
		}
	}
	return []sdk.Event{sdk.NewEvent(
		types.EventTypePotAwarded,
		sdk.NewAttribute("tableId", fmt.Sprintf("%d", t.Id)),
		sdk.NewAttribute("handId", fmt.Sprintf("%d", h.HandId)),
		sdk.NewAttribute("potIndex", fmt.Sprintf("%d", potIdx)),
		sdk.NewAttribute("amount", fmt.Sprintf("%d", pot.Amount)),
		sdk.NewAttribute("eligibleSeats", seatListString(pot.EligibleSeats)),
		sdk.NewAttribute("winners", seatListString(winners)),
	)}, nil
}

// ---------------------------------------------------------------------------
// Deadlines
// ---------------------------------------------------------------------------

func dealerTimeoutFor(t *types.Table) uint64 {
	if t == nil || t.Params.DealerTimeoutSecs == 0 {
		return fallbackDealerTimeoutSecs
	}
	return t.Params.DealerTimeoutSecs
}

func actionTimeoutFor(t *types.Table) uint64 {
	if t == nil || t.Params.ActionTimeoutSecs == 0 {
		return fallbackActionTimeoutSecs
	}
	return t.Params.ActionTimeoutSecs
}

func refreshRevealDeadline(t *types.Table, nowUnix int64) error {
	if t == nil || t.Hand == nil || t.Hand.Dealer == nil {
		return nil
	}
	dh := t.Hand.Dealer

	pos, awaiting, err := expectedRevealPosition(t)
	if err != nil {
		return err
	}
	if !awaiting {
		dh.RevealPos = 255
		dh.RevealDeadline = 0
		return nil
	}

	timeout := dealerTimeoutFor(t)
	if timeout == 0 {
		return fmt.Errorf("invalid dealerTimeoutSecs")
	}
	deadline, err := addInt64AndU64Checked(nowUnix, timeout, "reveal deadline")
	if err != nil {
		return err
	}
	dh.RevealPos = pos
	dh.RevealDeadline = deadline
	return nil
}

func refreshActionDeadline(t *types.Table, nowUnix int64) error {
	if t == nil || t.Hand == nil {
		return nil
	}
	h := t.Hand
	if h.Phase != types.HandPhase_HAND_PHASE_BETTING || h.ActionOn < 0 || h.ActionOn >= numSeats {
		h.ActionDeadline = 0
		return nil
	}

	timeout := actionTimeoutFor(t)
	if timeout == 0 {
		return fmt.Errorf("invalid actionTimeoutSecs")
	}
	deadline, err := addInt64AndU64Checked(nowUnix, timeout, "action deadline")
	if err != nil {
		return err
	}
	h.ActionDeadline = deadline
	return nil
}

// ---------------------------------------------------------------------------
// Top-level action dispatch
// ---------------------------------------------------------------------------

// applyPlayerAction validates and applies a single player action (fold,
// check, call, bet, raise) against the table's current hand, then advances
// hand state and refreshes deadlines. Returns any events produced.
func applyPlayerAction(t *types.Table, action string, amount uint64, nowUnix int64) ([]sdk.Event, error) {
	h := t.Hand
	if h == nil {
		return nil, fmt.Errorf("no active hand")
	}
	if h.Phase != types.HandPhase_HAND_PHASE_BETTING {
		return nil, fmt.Errorf("hand not in betting phase")
	}

	actor := int(h.ActionOn)
	if actor < 0 || actor >= numSeats || t.Seats[actor] == nil {
		return nil, fmt.Errorf("invalid actionOn seat")
	}
	if !h.InHand[actor] || h.Folded[actor] || h.AllIn[actor] {
		return nil, fmt.Errorf("actor not eligible to act")
	}

	if err := dispatchAction(t, h, actor, action, amount); err != nil {
		return nil, err
	}

	events := []sdk.Event{}
	if err := advanceHandIfReady(t, &events); err != nil {
		return nil, err
	}
	if err := refreshRevealDeadline(t, nowUnix); err != nil {
		return nil, err
	}
	if err := refreshActionDeadline(t, nowUnix); err != nil {
		return nil, err
	}
	return events, nil
}

func dispatchAction(t *types.Table, h *types.Hand, actor int, action string, amount uint64) error {
	switch action {
	case "fold":
		markFolded(h, actor)
		return nil
	case "check":
		return commitCheck(h, actor)
	case "call":
		return commitCall(t, actor)
	case "bet":
		if h.BetTo != 0 {
			return fmt.Errorf("cannot bet; use raise")
		}
		if amount == 0 {
			return fmt.Errorf("bet amount must be > 0")
		}
		return commitBetOrRaise(t, actor, amount)
	case "raise":
		if h.BetTo == 0 {
			return fmt.Errorf("cannot raise; use bet")
		}
		if amount == 0 {
			return fmt.Errorf("raise amount must be > 0")
		}
		return commitBetOrRaise(t, actor, amount)
	default:
		return fmt.Errorf("unknown action")
	}
}
