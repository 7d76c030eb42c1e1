package keeper

import (
	"context"
	"fmt"
	"sort"
	"time"

	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"onchainpoker-chain/internal/ocpcrypto"
	dealertypes "onchainpoker-chain/x/dealer/types"
	pokertypes "onchainpoker-chain/x/poker/types"
)

// slashPenalty bundles together the parameters needed for a single
// slash-and-jail call so the hand-timeout paths below don't have to
// thread five separate arguments through every branch.
type slashPenalty struct {
	fraction sdkmath.LegacyDec
	jail     time.Duration
}

func (m msgServer) dkgPenalty(params *dealertypes.Params) slashPenalty {
	return slashPenalty{
		fraction: bpsToFraction(params.SlashBpsDkg),
		jail:     time.Duration(params.JailSecondsDkg) * time.Second,
	}
}

func (m msgServer) handPenalty(params *dealertypes.Params) slashPenalty {
	return slashPenalty{
		fraction: bpsToFraction(params.SlashBpsHandDealer),
		jail:     time.Duration(params.JailSecondsHandDealer) * time.Second,
	}
}

// slashDkgDealer marks valoper as slashed inside dkg (idempotent) and, the
// first time, applies the on-chain penalty and builds the slash event.
// Returns a nil event if the validator was already slashed.
func (m msgServer) slashDkgDealer(ctx context.Context, dkg *dealertypes.DealerDKG, valoper, reason string, pen slashPenalty) (*sdk.Event, error) {
	if !dkgRecordSlash(dkg, valoper) {
		return nil, nil
	}
	power := int64(0)
	if mem := dkgMemberByValidator(dkg, valoper); mem != nil {
		power = mem.Power
	}
	if err := m.applyPenalty(ctx, valoper, dkg.StartHeight, power, pen.fraction, pen.jail); err != nil {
		return nil, err
	}
	ev := sdk.NewEvent(
		dealertypes.EventTypeValidatorSlashed,
		sdk.NewAttribute("epochId", fmt.Sprintf("%d", dkg.EpochId)),
		sdk.NewAttribute("validator", valoper),
		sdk.NewAttribute("reason", reason),
		sdk.NewAttribute("slashFraction", pen.fraction.String()),
		sdk.NewAttribute("distributionHeight", fmt.Sprintf("%d", dkg.StartHeight)),
		sdk.NewAttribute("power", fmt.Sprintf("%d", power)),
	)
	return &ev, nil
}

// slashEpochMember is slashDkgDealer's counterpart for the per-hand timeout
// paths, which slash against the live epoch roster rather than an
// in-progress DKG and tag events with the table/hand under dispute.
func (m msgServer) slashEpochMember(ctx context.Context, epoch *dealertypes.DealerEpoch, tableID, handID uint64, valoper, reason string, pen slashPenalty, extra ...sdk.Attribute) (*sdk.Event, error) {
	if !epochRecordSlash(epoch, valoper) {
		return nil, nil
	}
	power := int64(0)
	if mem := epochMemberByValidator(epoch, valoper); mem != nil {
		power = mem.Power
	}
	distH := epoch.StartHeight
	if distH == 0 {
		distH = sdk.UnwrapSDKContext(ctx).BlockHeight()
	}
	if err := m.applyPenalty(ctx, valoper, distH, power, pen.fraction, pen.jail); err != nil {
		return nil, err
	}
	attrs := []sdk.Attribute{
		sdk.NewAttribute("tableId", fmt.Sprintf("%d", tableID)),
		sdk.NewAttribute("handId", fmt.Sprintf("%d", handID)),
		sdk.NewAttribute("epochId", fmt.Sprintf("%d", epoch.EpochId)),
		sdk.NewAttribute("validator", valoper),
		sdk.NewAttribute("reason", reason),
		sdk.NewAttribute("slashFraction", pen.fraction.String()),
		sdk.NewAttribute("distributionHeight", fmt.Sprintf("%d", distH)),
		sdk.NewAttribute("power", fmt.Sprintf("%d", power)),
	}
	attrs = append(attrs, extra...)
	ev := sdk.NewEvent(dealertypes.EventTypeValidatorSlashed, attrs...)
	return &ev, nil
}

// dkgFaultSlashes walks every recorded DKG fault (a missing commit, or a
// complaint that was never answered or answered with an invalid share) and
// slashes the responsible dealer exactly once, returning the events raised.
func (m msgServer) dkgFaultSlashes(ctx context.Context, dkg *dealertypes.DealerDKG, pen slashPenalty) ([]sdk.Event, error) {
	var events []sdk.Event

	for _, mem := range dkg.Members {
		if dkgCommitByDealer(dkg, mem.Validator) != nil {
			continue
		}
		ev, err := m.slashDkgDealer(ctx, dkg, mem.Validator, "dkg-missing-commit", pen)
		if err != nil {
			return nil, err
		}
		if ev != nil {
			events = append(events, *ev)
		}
	}

	for _, c := range dkg.Complaints {
		if dkgHasSlashed(dkg, c.Dealer) {
			continue
		}

		commit := dkgCommitByDealer(dkg, c.Dealer)
		if commit == nil {
			ev, err := m.slashDkgDealer(ctx, dkg, c.Dealer, "dkg-missing-commit", pen)
			if err != nil {
				return nil, err
			}
			if ev != nil {
				events = append(events, *ev)
			}
			continue
		}

		reveal := dkgRevealFor(dkg, c.Dealer, c.Complainer)
		if reveal == nil {
			ev, err := m.slashDkgDealer(ctx, dkg, c.Dealer, "dkg-complaint-unresolved", pen)
			if err != nil {
				return nil, err
			}
			if ev != nil {
				events = append(events, *ev)
			}
			continue
		}

		toMem := dkgMemberByValidator(dkg, c.Complainer)
		if toMem == nil {
			ev, err := m.slashDkgDealer(ctx, dkg, c.Dealer, "dkg-complaint-unresolved", pen)
			if err != nil {
				return nil, err
			}
			if ev != nil {
				events = append(events, *ev)
			}
			continue
		}

		valid, err := verifyFeldmanShare(commit.Commitments, toMem.Index, reveal.Share)
		if err != nil || !valid {
			ev, err := m.slashDkgDealer(ctx, dkg, c.Dealer, "dkg-invalid-share", pen)
			if err != nil {
				return nil, err
			}
			if ev != nil {
				events = append(events, *ev)
			}
		}
	}

	return events, nil
}

// dkgSurvivors returns the DKG members not marked as slashed.
func dkgSurvivors(dkg *dealertypes.DealerDKG) []dealertypes.DealerMember {
	out := make([]dealertypes.DealerMember, 0, len(dkg.Members))
	for _, mem := range dkg.Members {
		if dkgHasSlashed(dkg, mem.Validator) {
			continue
		}
		out = append(out, mem)
	}
	return out
}

// derivedEpochKey computes PK_E (the combined epoch public key) and, for
// every original member, its public share Y_j — both recovered from the
// Feldman commitments of the dealers that survived dkgFaultSlashes.
func derivedEpochKey(dkg *dealertypes.DealerDKG, survivors []dealertypes.DealerMember) (ocpcrypto.Point, []dealertypes.DealerMember, error) {
	pk := ocpcrypto.PointZero()
	for _, mem := range survivors {
		commit := dkgCommitByDealer(dkg, mem.Validator)
		if commit == nil || len(commit.Commitments) == 0 {
			continue
		}
		c0, err := ocpcrypto.PointFromBytesCanonical(commit.Commitments[0])
		if err != nil {
			return ocpcrypto.Point{}, nil, err
		}
		pk = ocpcrypto.PointAdd(pk, c0)
	}

	membersOut := make([]dealertypes.DealerMember, 0, len(dkg.Members))
	for _, mem := range dkg.Members {
		y := ocpcrypto.PointZero()
		for _, dealer := range survivors {
			commit := dkgCommitByDealer(dkg, dealer.Validator)
			if commit == nil {
				continue
			}
			pt, err := evalFeldmanCommitment(commit.Commitments, mem.Index)
			if err != nil {
				return ocpcrypto.Point{}, nil, err
			}
			y = ocpcrypto.PointAdd(y, pt)
		}
		mem.PubShare = y.Bytes()
		membersOut = append(membersOut, mem)
	}

	sort.Slice(membersOut, func(i, j int) bool {
		if membersOut[i].Validator != membersOut[j].Validator {
			return membersOut[i].Validator < membersOut[j].Validator
		}
		return membersOut[i].Index < membersOut[j].Index
	})

	return pk, membersOut, nil
}

// concludeDKG consumes an in-progress DKG round and either finalizes a new
// active epoch (recording faulted dealers, deriving the epoch key and every
// member's public share) or, if too many dealers faulted to meet threshold,
// aborts the round and leaves the previous epoch untouched.
func (m msgServer) concludeDKG(ctx context.Context, dkg *dealertypes.DealerDKG) ([]sdk.Event, error) {
	if dkg == nil {
		return nil, dealertypes.ErrNoDkgInFlight.Wrap("no dkg in progress")
	}

	params, err := m.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	pen := m.dkgPenalty(&params)

	events, err := m.dkgFaultSlashes(ctx, dkg, pen)
	if err != nil {
		return nil, err
	}

	survivors := dkgSurvivors(dkg)
	if len(survivors) < int(dkg.Threshold) {
		if err := m.SetDKG(ctx, nil); err != nil {
			return nil, err
		}
		events = append(events, sdk.NewEvent(
			dealertypes.EventTypeDealerEpochAborted,
			sdk.NewAttribute("epochId", fmt.Sprintf("%d", dkg.EpochId)),
			sdk.NewAttribute("threshold", fmt.Sprintf("%d", dkg.Threshold)),
			sdk.NewAttribute("qual", fmt.Sprintf("%d", len(survivors))),
		))
		return events, nil
	}

	root, err := computeTranscriptRoot(dkg)
	if err != nil {
		return nil, err
	}

	pk, membersOut, err := derivedEpochKey(dkg, survivors)
	if err != nil {
		return nil, err
	}

	epoch := &dealertypes.DealerEpoch{
		EpochId:        dkg.EpochId,
		Threshold:      dkg.Threshold,
		PkEpoch:        pk.Bytes(),
		TranscriptRoot: root,
		StartHeight:    dkg.StartHeight,
		Slashed:        append([]string(nil), dkg.Slashed...),
		Members:        membersOut,
	}

	if err := m.SetEpoch(ctx, epoch); err != nil {
		return nil, err
	}
	if err := m.SetDKG(ctx, nil); err != nil {
		return nil, err
	}

	events = append(events, sdk.NewEvent(
		dealertypes.EventTypeDealerEpochFinal,
		sdk.NewAttribute("epochId", fmt.Sprintf("%d", epoch.EpochId)),
		sdk.NewAttribute("threshold", fmt.Sprintf("%d", epoch.Threshold)),
		sdk.NewAttribute("committeeSize", fmt.Sprintf("%d", len(epoch.Members))),
		sdk.NewAttribute("transcriptRoot", fmt.Sprintf("%x", root)),
		sdk.NewAttribute("slashed", fmt.Sprintf("%d", len(epoch.Slashed))),
	))

	return events, nil
}

// finalizeShuffledDeck closes out the shuffle phase once every qualified
// committee member has applied their re-encryption round, assigning each
// in-hand seat its two deterministic hole-card positions.
func (m msgServer) finalizeShuffledDeck(ctx context.Context, tableID, handID uint64) ([]sdk.Event, error) {
	t, err := m.pokerKeeper.GetTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if t == nil || t.Hand == nil || t.Hand.Dealer == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("dealer hand not initialized")
	}
	h := t.Hand
	if h.HandId != handID {
		return nil, dealertypes.ErrInvalidRequest.Wrap("hand_id mismatch")
	}
	if h.Phase != pokertypes.HandPhase_HAND_PHASE_SHUFFLE {
		return nil, dealertypes.ErrInvalidRequest.Wrap("hand not in shuffle phase")
	}

	dh, err := m.GetHand(ctx, tableID, handID)
	if err != nil {
		return nil, err
	}
	if dh == nil {
		return nil, dealertypes.ErrHandNotFound.Wrap("dealer hand not initialized")
	}
	if dh.Finalized {
		return nil, dealertypes.ErrInvalidRequest.Wrap("deck already finalized")
	}

	epoch, err := m.GetEpoch(ctx)
	if err != nil {
		return nil, err
	}
	if epoch == nil || epoch.EpochId != dh.EpochId {
		return nil, dealertypes.ErrInvalidRequest.Wrap("epoch not available")
	}
	qual := epochQualifiedMembers(epoch)
	if len(qual) < int(epoch.Threshold) {
		return nil, dealertypes.ErrInvalidRequest.Wrapf("insufficient qualified members: have %d need %d", len(qual), epoch.Threshold)
	}
	if int(dh.ShuffleStep) != len(qual) {
		return nil, dealertypes.ErrInvalidRequest.Wrapf("deck must be shuffled by all qualified members before finalization: have %d need %d", dh.ShuffleStep, len(qual))
	}

	nowUnix := sdk.UnwrapSDKContext(ctx).BlockTime().Unix()
	revealWindow := dealerRevealTimeoutSecs(t)

	holeDeadline, err := addInt64AndU64Checked(nowUnix, revealWindow, "dealer hole-shares deadline")
	if err != nil {
		return nil, err
	}
	dh.Finalized = true
	dh.ShuffleDeadline = 0
	dh.HoleSharesDeadline = holeDeadline

	holePos, cursor := assignHolePositions(t, len(dh.Deck))

	meta := h.Dealer
	meta.DeckFinalized = true
	meta.HolePos = holePos
	meta.Cursor = cursor
	meta.RevealPos = 255
	meta.RevealDeadline = 0

	if err := m.pokerKeeper.SetTable(ctx, t); err != nil {
		return nil, err
	}
	if err := m.SetHand(ctx, tableID, handID, dh); err != nil {
		return nil, err
	}

	return []sdk.Event{
		sdk.NewEvent(
			dealertypes.EventTypeDeckFinalized,
			sdk.NewAttribute("tableId", fmt.Sprintf("%d", tableID)),
			sdk.NewAttribute("handId", fmt.Sprintf("%d", handID)),
		),
	}, nil
}

// assignHolePositions walks the small-blind-first deal order twice (once
// per hole card) and hands out the next unused deck slot to each seat still
// in the hand, returning a flat seat*2+card -> pos table sized for 9 seats
// plus the deck cursor left just past the last assigned position.
func assignHolePositions(t *pokertypes.Table, deckLen int) ([]uint32, uint32) {
	holePos := make([]uint32, 18)
	for i := range holePos {
		holePos[i] = 255
	}
	order := holeCardDealOrder(t)
	pos := uint32(0)
loop:
	for c := 0; c < 2; c++ {
		for _, seatIdx := range order {
			if int(pos) >= deckLen {
				break loop
			}
			holePos[seatIdx*2+c] = pos
			pos++
		}
	}
	return holePos, pos
}

// thresholdShares collects the submitted public shares for pos, sorted by
// committee index, and trims to exactly the epoch's threshold count.
func thresholdShares(dh *dealertypes.DealerHand, pos uint32, threshold int) ([]uint32, []ocpcrypto.Point, error) {
	type shareRec struct {
		validator string
		index     uint32
		share     ocpcrypto.Point
	}
	var shares []shareRec
	for _, ps := range dh.PubShares {
		if ps.Pos != pos {
			continue
		}
		p, err := ocpcrypto.PointFromBytesCanonical(ps.Share)
		if err != nil {
			return nil, nil, fmt.Errorf("stored share invalid: %w", err)
		}
		shares = append(shares, shareRec{validator: ps.Validator, index: ps.Index, share: p})
	}
	if len(shares) < threshold {
		return nil, nil, dealertypes.ErrInvalidRequest.Wrapf("insufficient shares: have %d need %d", len(shares), threshold)
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].index != shares[j].index {
			return shares[i].index < shares[j].index
		}
		return shares[i].validator < shares[j].validator
	})
	shares = shares[:threshold]

	idxs := make([]uint32, threshold)
	pts := make([]ocpcrypto.Point, threshold)
	for i, s := range shares {
		idxs[i] = s.index
		pts[i] = s.share
	}
	return idxs, pts, nil
}

// settleCardReveal recovers the plaintext card at pos from a threshold set
// of public shares via Lagrange interpolation, records the reveal, and
// pushes the result through to the poker keeper.
func (m msgServer) settleCardReveal(ctx context.Context, tableID, handID uint64, pos uint32) ([]sdk.Event, error) {
	t, err := m.pokerKeeper.GetTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if t == nil || t.Hand == nil || t.Hand.Dealer == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("dealer hand not initialized")
	}
	h := t.Hand
	if h.HandId != handID {
		return nil, dealertypes.ErrInvalidRequest.Wrap("hand_id mismatch")
	}
	meta := h.Dealer
	if meta.RevealPos == 255 || meta.RevealDeadline == 0 {
		return nil, dealertypes.ErrInvalidRequest.Wrap("hand not awaiting a reveal")
	}
	if pos != meta.RevealPos {
		return nil, dealertypes.ErrInvalidRequest.Wrap("pos not currently revealable")
	}

	dh, err := m.GetHand(ctx, tableID, handID)
	if err != nil {
		return nil, err
	}
	if dh == nil {
		return nil, dealertypes.ErrHandNotFound.Wrap("dealer hand not initialized")
	}
	if int(pos) >= len(dh.Deck) {
		return nil, dealertypes.ErrInvalidRequest.Wrap("pos out of bounds")
	}

	epoch, err := m.GetEpoch(ctx)
	if err != nil {
		return nil, err
	}
	if epoch == nil || epoch.EpochId != dh.EpochId {
		return nil, dealertypes.ErrInvalidRequest.Wrap("epoch not available")
	}

	nowUnix := sdk.UnwrapSDKContext(ctx).BlockTime().Unix()
	if nowUnix >= meta.RevealDeadline {
		if len(missingPubShareValidators(epoch, dh, pos)) != 0 {
			return nil, dealertypes.ErrInvalidRequest.Wrap("reveal deadline passed; call dealer/timeout")
		}
	}

	for _, r := range dh.Reveals {
		if r.Pos == pos {
			return nil, dealertypes.ErrInvalidRequest.Wrap("pos already revealed")
		}
	}

	idxs, pts, err := thresholdShares(dh, pos, int(epoch.Threshold))
	if err != nil {
		return nil, err
	}
	lambdas, err := ocpcrypto.LagrangeAtZero(idxs)
	if err != nil {
		return nil, err
	}
	combined := ocpcrypto.PointZero()
	for i := range pts {
		combined = ocpcrypto.PointAdd(combined, ocpcrypto.MulPoint(pts[i], lambdas[i]))
	}

	c2, err := ocpcrypto.PointFromBytesCanonical(dh.Deck[pos].C2)
	if err != nil {
		return nil, fmt.Errorf("ciphertext c2 invalid: %w", err)
	}
	plaintext := ocpcrypto.PointSub(c2, combined)
	cardID, err := cardIDForPoint(plaintext, int(dh.DeckSize))
	if err != nil {
		return nil, err
	}

	dh.Reveals = append(dh.Reveals, dealertypes.DealerReveal{Pos: pos, CardId: cardID})
	sort.Slice(dh.Reveals, func(i, j int) bool { return dh.Reveals[i].Pos < dh.Reveals[j].Pos })

	if err := m.SetHand(ctx, tableID, handID, dh); err != nil {
		return nil, err
	}

	pokerEvents, err := m.pokerKeeper.ApplyDealerReveal(ctx, tableID, handID, pos, cardID, nowUnix)
	if err != nil {
		return nil, err
	}

	events := append([]sdk.Event{
		sdk.NewEvent(
			dealertypes.EventTypeRevealFinalized,
			sdk.NewAttribute("tableId", fmt.Sprintf("%d", tableID)),
			sdk.NewAttribute("handId", fmt.Sprintf("%d", handID)),
			sdk.NewAttribute("pos", fmt.Sprintf("%d", pos)),
			sdk.NewAttribute("cardId", fmt.Sprintf("%d", cardID)),
		),
	}, pokerEvents...)

	t2, err := m.pokerKeeper.GetTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if t2 == nil || t2.Hand == nil {
		if err := m.SetHand(ctx, tableID, handID, nil); err != nil {
			return nil, err
		}
	}

	return events, nil
}

// abortDealerHand unwinds poker state (refunding every committed chip) and
// drops the dealer-side hand record, used whenever liveness cannot be
// recovered from a committee fault.
func (m msgServer) abortDealerHand(ctx context.Context, tableID, handID uint64, reason string) ([]sdk.Event, error) {
	events, err := m.pokerKeeper.AbortHandRefundAllCommits(ctx, tableID, handID, reason)
	if err != nil {
		return nil, err
	}
	if err := m.SetHand(ctx, tableID, handID, nil); err != nil {
		return nil, err
	}
	return events, nil
}

// processTimeout handles an expired dealer deadline, dispatching to the
// shuffle, hole-enc-share, or reveal stage depending on where the hand is
// currently stalled.
func (m msgServer) processTimeout(ctx context.Context, tableID, handID uint64) ([]sdk.Event, error) {
	t, err := m.pokerKeeper.GetTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if t == nil || t.Hand == nil || t.Hand.Dealer == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("no active dealer hand")
	}
	h := t.Hand
	if h.HandId != handID {
		return nil, dealertypes.ErrInvalidRequest.Wrap("hand_id mismatch")
	}

	dh, err := m.GetHand(ctx, tableID, handID)
	if err != nil {
		return nil, err
	}
	if dh == nil {
		return nil, dealertypes.ErrHandNotFound.Wrap("dealer hand not initialized")
	}

	epoch, err := m.GetEpoch(ctx)
	if err != nil {
		return nil, err
	}
	if epoch == nil || epoch.EpochId != dh.EpochId {
		return nil, dealertypes.ErrInvalidRequest.Wrap("epoch not available")
	}

	revealWindow := dealerRevealTimeoutSecs(t)
	if revealWindow == 0 {
		return nil, dealertypes.ErrInvalidRequest.Wrap("dealerTimeoutSecs must be > 0")
	}
	threshold := int(epoch.Threshold)
	if threshold <= 0 {
		return nil, dealertypes.ErrInvalidRequest.Wrap("invalid epoch threshold")
	}

	params, err := m.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	pen := m.handPenalty(&params)
	nowUnix := sdk.UnwrapSDKContext(ctx).BlockTime().Unix()

	events := []sdk.Event{
		sdk.NewEvent(
			dealertypes.EventTypeDealerTimeoutDone,
			sdk.NewAttribute("tableId", fmt.Sprintf("%d", tableID)),
			sdk.NewAttribute("handId", fmt.Sprintf("%d", handID)),
			sdk.NewAttribute("phase", h.Phase.String()),
		),
	}

	switch {
	case h.Phase == pokertypes.HandPhase_HAND_PHASE_SHUFFLE && !dh.Finalized:
		return m.timeoutShuffle(ctx, t, tableID, handID, dh, epoch, threshold, pen, nowUnix, revealWindow, events)
	case h.Phase == pokertypes.HandPhase_HAND_PHASE_SHUFFLE && dh.Finalized:
		return m.timeoutHoleShares(ctx, t, tableID, handID, dh, epoch, threshold, pen, nowUnix, events)
	default:
		return m.timeoutReveal(ctx, tableID, handID, h, dh, epoch, threshold, pen, nowUnix, events)
	}
}

func (m msgServer) timeoutShuffle(ctx context.Context, t *pokertypes.Table, tableID, handID uint64, dh *dealertypes.DealerHand, epoch *dealertypes.DealerEpoch, threshold int, pen slashPenalty, nowUnix int64, revealWindow uint64, events []sdk.Event) ([]sdk.Event, error) {
	if dh.ShuffleDeadline == 0 {
		return nil, dealertypes.ErrInvalidRequest.Wrap("shuffle deadline not initialized")
	}
	if nowUnix < dh.ShuffleDeadline {
		return nil, dealertypes.ErrInvalidRequest.Wrap("shuffle not timed out")
	}

	qual := epochQualifiedMembers(epoch)
	if len(qual) == 0 {
		abortEvents, err := m.abortDealerHand(ctx, tableID, handID, "dealer: no qualified committee members")
		if err != nil {
			return nil, err
		}
		return append(events, abortEvents...), nil
	}

	// If all qualified members already shuffled, allow anyone to finalize deterministically.
	if int(dh.ShuffleStep) == len(qual) {
		deckEvents, err := m.finalizeShuffledDeck(ctx, tableID, handID)
		if err != nil {
			return nil, err
		}
		return append(events, deckEvents...), nil
	}
	if int(dh.ShuffleStep) > len(qual) {
		return nil, dealertypes.ErrInvalidRequest.Wrapf("shuffle_step out of range: step=%d qual=%d", dh.ShuffleStep, len(qual))
	}

	// Slash the dealer expected to have shuffled next (shuffle_step starts at 0).
	expected := qual[dh.ShuffleStep].Validator
	ev, err := m.slashEpochMember(ctx, epoch, tableID, handID, expected, "shuffle-timeout", pen)
	if err != nil {
		return nil, err
	}
	if ev != nil {
		events = append(events, *ev)
	}

	if err := m.SetEpoch(ctx, epoch); err != nil {
		return nil, err
	}

	qual = epochQualifiedMembers(epoch)
	if len(qual) < threshold {
		abortEvents, err := m.abortDealerHand(ctx, tableID, handID, "dealer: committee below threshold after shuffle timeout")
		if err != nil {
			return nil, err
		}
		return append(events, abortEvents...), nil
	}

	// If slashing reduced QUAL enough that all remaining members already shuffled, finalize now.
	if int(dh.ShuffleStep) == len(qual) {
		deckEvents, err := m.finalizeShuffledDeck(ctx, tableID, handID)
		if err != nil {
			return nil, err
		}
		return append(events, deckEvents...), nil
	}

	nextShuffleDeadline, err := addInt64AndU64Checked(nowUnix, revealWindow, "dealer shuffle deadline")
	if err != nil {
		return nil, err
	}
	dh.ShuffleDeadline = nextShuffleDeadline
	if err := m.SetHand(ctx, tableID, handID, dh); err != nil {
		return nil, err
	}
	return events, nil
}

func (m msgServer) timeoutHoleShares(ctx context.Context, t *pokertypes.Table, tableID, handID uint64, dh *dealertypes.DealerHand, epoch *dealertypes.DealerEpoch, threshold int, pen slashPenalty, nowUnix int64, events []sdk.Event) ([]sdk.Event, error) {
	if dh.HoleSharesDeadline == 0 {
		return nil, dealertypes.ErrInvalidRequest.Wrap("hole shares deadline not initialized")
	}
	if nowUnix < dh.HoleSharesDeadline {
		return nil, dealertypes.ErrInvalidRequest.Wrap("hole shares not timed out")
	}

	missing, err := missingHoleEncShareValidators(epoch, t, dh)
	if err != nil {
		return nil, err
	}
	for _, id := range missing {
		ev, err := m.slashEpochMember(ctx, epoch, tableID, handID, id, "hole-enc-shares-timeout", pen)
		if err != nil {
			return nil, err
		}
		if ev != nil {
			events = append(events, *ev)
		}
	}

	if err := m.SetEpoch(ctx, epoch); err != nil {
		return nil, err
	}

	if len(epochQualifiedMembers(epoch)) < threshold {
		abortEvents, err := m.abortDealerHand(ctx, tableID, handID, "dealer: committee below threshold after hole enc shares timeout")
		if err != nil {
			return nil, err
		}
		return append(events, abortEvents...), nil
	}

	ready, err := holeEncSharesComplete(epoch, t, dh)
	if err != nil {
		return nil, err
	}
	if !ready {
		abortEvents, err := m.abortDealerHand(ctx, tableID, handID, "dealer: insufficient hole shares by deadline")
		if err != nil {
			return nil, err
		}
		return append(events, abortEvents...), nil
	}

	// Advance out of shuffle now that shares are ready.
	dh.HoleSharesDeadline = 0
	if err := m.SetHand(ctx, tableID, handID, dh); err != nil {
		return nil, err
	}
	if err := m.pokerKeeper.AdvanceAfterHoleSharesReady(ctx, tableID, handID, nowUnix); err != nil {
		return nil, err
	}

	t2, err := m.pokerKeeper.GetTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	phase := ""
	if t2 != nil && t2.Hand != nil {
		phase = t2.Hand.Phase.String()
	}
	events = append(events, sdk.NewEvent(
		dealertypes.EventTypeHoleCardsReady,
		sdk.NewAttribute("tableId", fmt.Sprintf("%d", tableID)),
		sdk.NewAttribute("handId", fmt.Sprintf("%d", handID)),
		sdk.NewAttribute("phase", phase),
	))
	return events, nil
}

func (m msgServer) timeoutReveal(ctx context.Context, tableID, handID uint64, h *pokertypes.Hand, dh *dealertypes.DealerHand, epoch *dealertypes.DealerEpoch, threshold int, pen slashPenalty, nowUnix int64, events []sdk.Event) ([]sdk.Event, error) {
	meta := h.Dealer
	if meta.RevealPos == 255 || meta.RevealDeadline == 0 {
		return nil, dealertypes.ErrInvalidRequest.Wrap("no dealer timeout applicable")
	}
	if nowUnix < meta.RevealDeadline {
		return nil, dealertypes.ErrInvalidRequest.Wrap("reveal not timed out")
	}

	pos := meta.RevealPos
	for _, id := range missingPubShareValidators(epoch, dh, pos) {
		ev, err := m.slashEpochMember(ctx, epoch, tableID, handID, id, "reveal-timeout", pen, sdk.NewAttribute("pos", fmt.Sprintf("%d", pos)))
		if err != nil {
			return nil, err
		}
		if ev != nil {
			events = append(events, *ev)
		}
	}

	if err := m.SetEpoch(ctx, epoch); err != nil {
		return nil, err
	}

	if len(epochQualifiedMembers(epoch)) < threshold {
		abortEvents, err := m.abortDealerHand(ctx, tableID, handID, "dealer: committee below threshold after reveal timeout")
		if err != nil {
			return nil, err
		}
		return append(events, abortEvents...), nil
	}

	revealEvents, err := m.settleCardReveal(ctx, tableID, handID, pos)
	if err != nil {
		return nil, err
	}
	return append(events, revealEvents...), nil
}
