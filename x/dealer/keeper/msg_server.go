package keeper

import (
	"bytes"
	"context"
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"onchainpoker-chain/internal/ocpcrypto"
	dealertypes "onchainpoker-chain/x/dealer/types"
	pokertypes "onchainpoker-chain/x/poker/types"
)

type msgServer struct {
	Keeper
}

var _ dealertypes.MsgServer = msgServer{}

func NewMsgServerImpl(k Keeper) dealertypes.MsgServer {
	return &msgServer{Keeper: k}
}

// requireCaller / requireValoper validate the signer fields shared by every
// handler: present and bech32-decodable as an account / validator operator.
func requireCaller(addr string) error {
	if addr == "" {
		return dealertypes.ErrInvalidRequest.Wrap("missing caller")
	}
	if _, err := sdk.AccAddressFromBech32(addr); err != nil {
		return dealertypes.ErrInvalidRequest.Wrap("invalid caller address")
	}
	return nil
}

func requireValoper(addr, field string) error {
	if addr == "" {
		return dealertypes.ErrInvalidRequest.Wrapf("missing %s", field)
	}
	if _, err := sdk.ValAddressFromBech32(addr); err != nil {
		return dealertypes.ErrInvalidRequest.Wrapf("invalid %s address", field)
	}
	return nil
}

// loadDKGForEpoch fetches the in-flight DKG round and pins it to the epoch
// the message claims to target.
func (m msgServer) loadDKGForEpoch(ctx context.Context, epochID uint64) (*dealertypes.DealerDKG, error) {
	dkg, err := m.GetDKG(ctx)
	if err != nil {
		return nil, err
	}
	if dkg == nil {
		return nil, dealertypes.ErrNoDkgInFlight.Wrap("no dkg in progress")
	}
	if epochID != dkg.EpochId {
		return nil, dealertypes.ErrInvalidRequest.Wrap("epoch_id mismatch")
	}
	return dkg, nil
}

// loadDealtHand fetches the poker table plus its dealer-side hand record for
// the artifact-submission paths, checking the ids line up.
func (m msgServer) loadDealtHand(ctx context.Context, tableID, handID uint64) (*pokertypes.Table, *dealertypes.DealerHand, error) {
	t, err := m.pokerKeeper.GetTable(ctx, tableID)
	if err != nil {
		return nil, nil, err
	}
	if t == nil || t.Hand == nil || t.Hand.Dealer == nil {
		return nil, nil, dealertypes.ErrInvalidRequest.Wrap("dealer hand not initialized")
	}
	if t.Hand.HandId != handID {
		return nil, nil, dealertypes.ErrInvalidRequest.Wrap("hand_id mismatch")
	}
	dh, err := m.GetHand(ctx, tableID, handID)
	if err != nil {
		return nil, nil, err
	}
	if dh == nil {
		return nil, nil, dealertypes.ErrHandNotFound.Wrap("dealer hand not initialized")
	}
	return t, dh, nil
}

func (m msgServer) BeginEpoch(ctx context.Context, req *dealertypes.MsgBeginEpoch) (*dealertypes.MsgBeginEpochResponse, error) {
	if req == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("nil request")
	}
	if err := requireCaller(req.Caller); err != nil {
		return nil, err
	}
	if req.CommitteeSize == 0 {
		return nil, dealertypes.ErrInvalidRequest.Wrap("committee_size must be > 0")
	}
	if req.Threshold == 0 {
		return nil, dealertypes.ErrInvalidRequest.Wrap("threshold must be > 0")
	}
	if req.Threshold > req.CommitteeSize {
		return nil, dealertypes.ErrInvalidRequest.Wrap("threshold exceeds committee_size")
	}

	if cur, err := m.GetDKG(ctx); err != nil {
		return nil, err
	} else if cur != nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("dkg already in progress")
	}

	next, err := m.GetNextEpochID(ctx)
	if err != nil {
		return nil, err
	}
	epochID := req.EpochId
	if epochID == 0 {
		epochID = next
	}
	if epochID == 0 {
		return nil, dealertypes.ErrInvalidRequest.Wrap("epoch_id must be > 0")
	}
	if epochID != next {
		return nil, dealertypes.ErrInvalidRequest.Wrapf("unexpected epoch_id: expected %d got %d", next, epochID)
	}

	members, randEpoch, err := sampleCommitteeMembers(ctx, m.committeeStakingKeeper, epochID, req.RandEpoch, int(req.CommitteeSize))
	if err != nil {
		return nil, err
	}

	commitBlocks := req.CommitBlocks
	if commitBlocks == 0 {
		commitBlocks = dkgCommitBlocksDefault
	}
	complaintBlocks := req.ComplaintBlocks
	if complaintBlocks == 0 {
		complaintBlocks = dkgComplaintBlocksDefault
	}
	revealBlocks := req.RevealBlocks
	if revealBlocks == 0 {
		revealBlocks = dkgRevealBlocksDefault
	}
	finalizeBlocks := req.FinalizeBlocks
	if finalizeBlocks == 0 {
		finalizeBlocks = dkgFinalizeBlocksDefault
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	startH := sdkCtx.BlockHeight()
	commitDL, err := addInt64AndU64Checked(startH, commitBlocks, "dkg commit deadline")
	if err != nil {
		return nil, err
	}
	complaintDL, err := addInt64AndU64Checked(commitDL, complaintBlocks, "dkg complaint deadline")
	if err != nil {
		return nil, err
	}
	revealDL, err := addInt64AndU64Checked(complaintDL, revealBlocks, "dkg reveal deadline")
	if err != nil {
		return nil, err
	}
	finalizeDL, err := addInt64AndU64Checked(revealDL, finalizeBlocks, "dkg finalize deadline")
	if err != nil {
		return nil, err
	}

	dkg := &dealertypes.DealerDKG{
		EpochId:           epochID,
		Threshold:         req.Threshold,
		Members:           members,
		StartHeight:       startH,
		CommitDeadline:    commitDL,
		ComplaintDeadline: complaintDL,
		RevealDeadline:    revealDL,
		FinalizeDeadline:  finalizeDL,
		RandEpoch:         append([]byte(nil), randEpoch[:]...),
		Commits:           []dealertypes.DealerDKGCommit{},
		Complaints:        []dealertypes.DealerDKGComplaint{},
		Reveals:           []dealertypes.DealerDKGShareReveal{},
		Slashed:           []string{},
	}

	if err := m.SetDKG(ctx, dkg); err != nil {
		return nil, err
	}
	if err := m.SetNextEpochID(ctx, epochID+1); err != nil {
		return nil, err
	}

	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		dealertypes.EventTypeDealerEpochBegun,
		sdk.NewAttribute("epochId", fmt.Sprintf("%d", epochID)),
		sdk.NewAttribute("threshold", fmt.Sprintf("%d", req.Threshold)),
		sdk.NewAttribute("committeeSize", fmt.Sprintf("%d", len(members))),
		sdk.NewAttribute("startHeight", fmt.Sprintf("%d", startH)),
		sdk.NewAttribute("commitDeadline", fmt.Sprintf("%d", commitDL)),
		sdk.NewAttribute("complaintDeadline", fmt.Sprintf("%d", complaintDL)),
		sdk.NewAttribute("revealDeadline", fmt.Sprintf("%d", revealDL)),
		sdk.NewAttribute("finalizeDeadline", fmt.Sprintf("%d", finalizeDL)),
	))

	return &dealertypes.MsgBeginEpochResponse{}, nil
}

func (m msgServer) DkgCommit(ctx context.Context, req *dealertypes.MsgDkgCommit) (*dealertypes.MsgDkgCommitResponse, error) {
	if req == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("nil request")
	}
	if err := requireValoper(req.Dealer, "dealer"); err != nil {
		return nil, err
	}

	dkg, err := m.loadDKGForEpoch(ctx, req.EpochId)
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if sdkCtx.BlockHeight() > dkg.CommitDeadline {
		return nil, dealertypes.ErrInvalidRequest.Wrap("commit deadline passed")
	}

	if dkgMemberByValidator(dkg, req.Dealer) == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("dealer not in committee")
	}
	if dkgCommitByDealer(dkg, req.Dealer) != nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("commit already submitted")
	}
	if len(req.Commitments) != int(dkg.Threshold) {
		return nil, dealertypes.ErrInvalidRequest.Wrapf("commitments length mismatch: expected %d got %d", dkg.Threshold, len(req.Commitments))
	}

	commitments := make([][]byte, 0, len(req.Commitments))
	for i, c := range req.Commitments {
		if len(c) != ocpcrypto.PointBytes {
			return nil, dealertypes.ErrInvalidRequest.Wrapf("commitment[%d] must be 32 bytes", i)
		}
		if _, err := ocpcrypto.PointFromBytesCanonical(c); err != nil {
			return nil, dealertypes.ErrInvalidRequest.Wrapf("commitment[%d] invalid: %v", i, err)
		}
		commitments = append(commitments, append([]byte(nil), c...))
	}

	dkg.Commits = append(dkg.Commits, dealertypes.DealerDKGCommit{
		Dealer:      req.Dealer,
		Commitments: commitments,
	})
	// Deterministic ordering.
	sortDKGCommits(dkg)

	if err := m.SetDKG(ctx, dkg); err != nil {
		return nil, err
	}

	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		dealertypes.EventTypeDKGCommitAccepted,
		sdk.NewAttribute("epochId", fmt.Sprintf("%d", dkg.EpochId)),
		sdk.NewAttribute("dealer", req.Dealer),
	))
	return &dealertypes.MsgDkgCommitResponse{}, nil
}

func (m msgServer) DkgComplaintMissing(ctx context.Context, req *dealertypes.MsgDkgComplaintMissing) (*dealertypes.MsgDkgComplaintMissingResponse, error) {
	if req == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("nil request")
	}
	if req.Complainer == "" || req.Dealer == "" {
		return nil, dealertypes.ErrInvalidRequest.Wrap("missing complainer/dealer")
	}
	if req.Complainer == req.Dealer {
		return nil, dealertypes.ErrInvalidRequest.Wrap("complainer and dealer must differ")
	}
	if _, err := sdk.ValAddressFromBech32(req.Complainer); err != nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("invalid complainer address")
	}
	if _, err := sdk.ValAddressFromBech32(req.Dealer); err != nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("invalid dealer address")
	}

	dkg, err := m.loadDKGForEpoch(ctx, req.EpochId)
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	h := sdkCtx.BlockHeight()
	if h < dkg.CommitDeadline {
		return nil, dealertypes.ErrInvalidRequest.Wrap("complaints not yet allowed")
	}
	if h > dkg.ComplaintDeadline {
		return nil, dealertypes.ErrInvalidRequest.Wrap("complaint deadline passed")
	}

	if dkgMemberByValidator(dkg, req.Complainer) == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("complainer not in committee")
	}
	if dkgMemberByValidator(dkg, req.Dealer) == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("dealer not in committee")
	}
	if dkgComplaintFor(dkg, req.Complainer, req.Dealer) != nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("complaint already filed")
	}

	dkg.Complaints = append(dkg.Complaints, dealertypes.DealerDKGComplaint{
		EpochId:    dkg.EpochId,
		Complainer: req.Complainer,
		Dealer:     req.Dealer,
		Kind:       "missing",
		ShareMsg:   nil,
	})
	sortDKGComplaints(dkg)

	if err := m.SetDKG(ctx, dkg); err != nil {
		return nil, err
	}

	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		dealertypes.EventTypeDKGComplaintAccepted,
		sdk.NewAttribute("epochId", fmt.Sprintf("%d", dkg.EpochId)),
		sdk.NewAttribute("dealer", req.Dealer),
		sdk.NewAttribute("complainer", req.Complainer),
		sdk.NewAttribute("kind", "missing"),
	))
	return &dealertypes.MsgDkgComplaintMissingResponse{}, nil
}

func (m msgServer) DkgComplaintInvalid(ctx context.Context, req *dealertypes.MsgDkgComplaintInvalid) (*dealertypes.MsgDkgComplaintInvalidResponse, error) {
	if req == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("nil request")
	}
	if req.Complainer == "" || req.Dealer == "" {
		return nil, dealertypes.ErrInvalidRequest.Wrap("missing complainer/dealer")
	}
	if req.Complainer == req.Dealer {
		return nil, dealertypes.ErrInvalidRequest.Wrap("complainer and dealer must differ")
	}
	if len(req.ShareMsg) == 0 {
		return nil, dealertypes.ErrInvalidRequest.Wrap("missing share_msg")
	}
	if _, err := sdk.ValAddressFromBech32(req.Complainer); err != nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("invalid complainer address")
	}
	if _, err := sdk.ValAddressFromBech32(req.Dealer); err != nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("invalid dealer address")
	}

	dkg, err := m.loadDKGForEpoch(ctx, req.EpochId)
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	h := sdkCtx.BlockHeight()
	if h < dkg.CommitDeadline {
		return nil, dealertypes.ErrInvalidRequest.Wrap("complaints not yet allowed")
	}
	if h > dkg.ComplaintDeadline {
		return nil, dealertypes.ErrInvalidRequest.Wrap("complaint deadline passed")
	}

	if dkgMemberByValidator(dkg, req.Complainer) == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("complainer not in committee")
	}
	dealerMem := dkgMemberByValidator(dkg, req.Dealer)
	if dealerMem == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("dealer not in committee")
	}
	if dkgComplaintFor(dkg, req.Complainer, req.Dealer) != nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("complaint already filed")
	}

	shareMsg, err := decodeShareEnvelope(req.ShareMsg)
	if err != nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap(err.Error())
	}
	if shareMsg.EpochID != dkg.EpochId {
		return nil, dealertypes.ErrInvalidRequest.Wrap("share_msg epoch_id mismatch")
	}
	if shareMsg.Dealer != req.Dealer {
		return nil, dealertypes.ErrInvalidRequest.Wrap("share_msg dealer mismatch")
	}
	if shareMsg.To != req.Complainer {
		return nil, dealertypes.ErrInvalidRequest.Wrap("share_msg to mismatch")
	}
	if !verifyShareEnvelopeSig(dealerMem.ConsPubkey, shareMsg) {
		return nil, dealertypes.ErrInvalidRequest.Wrap("invalid share_msg signature")
	}

	// Verify share evidence. If it is objectively invalid, slash immediately.
	commit := dkgCommitByDealer(dkg, req.Dealer)
	toMem := dkgMemberByValidator(dkg, req.Complainer)
	if toMem == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("complainer not in committee")
	}

	if commit != nil {
		ok, err := verifyFeldmanShare(commit.Commitments, toMem.Index, shareMsg.Share)
		if err != nil {
			return nil, err
		}
		if ok {
			return nil, dealertypes.ErrInvalidRequest.Wrap("share matches commitments")
		}
	}

	// The signed share either predates any commit or contradicts it: an
	// objective fault, slashed on the spot using the DKG start-height
	// snapshot.
	params, err := m.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	slashEv, err := m.slashDkgDealer(ctx, dkg, req.Dealer, "dkg-invalid-share", m.dkgPenalty(&params))
	if err != nil {
		return nil, err
	}
	if slashEv != nil {
		sdkCtx.EventManager().EmitEvent(*slashEv)
	}

	dkg.Complaints = append(dkg.Complaints, dealertypes.DealerDKGComplaint{
		EpochId:    dkg.EpochId,
		Complainer: req.Complainer,
		Dealer:     req.Dealer,
		Kind:       "invalid",
		ShareMsg:   append([]byte(nil), req.ShareMsg...),
	})
	sortDKGComplaints(dkg)

	if err := m.SetDKG(ctx, dkg); err != nil {
		return nil, err
	}

	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		dealertypes.EventTypeDKGComplaintAccepted,
		sdk.NewAttribute("epochId", fmt.Sprintf("%d", dkg.EpochId)),
		sdk.NewAttribute("dealer", req.Dealer),
		sdk.NewAttribute("complainer", req.Complainer),
		sdk.NewAttribute("kind", "invalid"),
	))
	return &dealertypes.MsgDkgComplaintInvalidResponse{}, nil
}

func (m msgServer) DkgShareReveal(ctx context.Context, req *dealertypes.MsgDkgShareReveal) (*dealertypes.MsgDkgShareRevealResponse, error) {
	if req == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("nil request")
	}
	if req.Dealer == "" || req.To == "" {
		return nil, dealertypes.ErrInvalidRequest.Wrap("missing dealer/to")
	}
	if req.Dealer == req.To {
		return nil, dealertypes.ErrInvalidRequest.Wrap("dealer and to must differ")
	}
	if _, err := sdk.ValAddressFromBech32(req.Dealer); err != nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("invalid dealer address")
	}
	if _, err := sdk.ValAddressFromBech32(req.To); err != nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("invalid to address")
	}

	dkg, err := m.loadDKGForEpoch(ctx, req.EpochId)
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if sdkCtx.BlockHeight() > dkg.RevealDeadline {
		return nil, dealertypes.ErrInvalidRequest.Wrap("reveal deadline passed")
	}

	if dkgMemberByValidator(dkg, req.Dealer) == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("dealer not in committee")
	}
	toMem := dkgMemberByValidator(dkg, req.To)
	if toMem == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("to not in committee")
	}
	if dkgComplaintFor(dkg, req.To, req.Dealer) == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("no complaint for this dealer/to")
	}
	if dkgRevealFor(dkg, req.Dealer, req.To) != nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("reveal already submitted")
	}

	commit := dkgCommitByDealer(dkg, req.Dealer)
	if commit == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("dealer has not committed")
	}
	ok, err := verifyFeldmanShare(commit.Commitments, toMem.Index, req.Share)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, dealertypes.ErrInvalidRequest.Wrap("share does not match commitments")
	}

	dkg.Reveals = append(dkg.Reveals, dealertypes.DealerDKGShareReveal{
		EpochId: dkg.EpochId,
		Dealer:  req.Dealer,
		To:      req.To,
		Share:   append([]byte(nil), req.Share...),
	})
	sortDKGReveals(dkg)

	if err := m.SetDKG(ctx, dkg); err != nil {
		return nil, err
	}

	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		dealertypes.EventTypeDKGShareRevealed,
		sdk.NewAttribute("epochId", fmt.Sprintf("%d", dkg.EpochId)),
		sdk.NewAttribute("dealer", req.Dealer),
		sdk.NewAttribute("to", req.To),
	))
	return &dealertypes.MsgDkgShareRevealResponse{}, nil
}

func (m msgServer) FinalizeEpoch(ctx context.Context, req *dealertypes.MsgFinalizeEpoch) (*dealertypes.MsgFinalizeEpochResponse, error) {
	if req == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("nil request")
	}
	if err := requireCaller(req.Caller); err != nil {
		return nil, err
	}

	dkg, err := m.loadDKGForEpoch(ctx, req.EpochId)
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if sdkCtx.BlockHeight() <= dkg.RevealDeadline {
		return nil, dealertypes.ErrInvalidRequest.Wrapf("too early to finalize: height=%d revealDeadline=%d", sdkCtx.BlockHeight(), dkg.RevealDeadline)
	}

	events, err := m.concludeDKG(ctx, dkg)
	if err != nil {
		return nil, err
	}
	for _, ev := range events {
		sdkCtx.EventManager().EmitEvent(ev)
	}
	return &dealertypes.MsgFinalizeEpochResponse{}, nil
}

func (m msgServer) DkgTimeout(ctx context.Context, req *dealertypes.MsgDkgTimeout) (*dealertypes.MsgDkgTimeoutResponse, error) {
	if req == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("nil request")
	}
	if err := requireCaller(req.Caller); err != nil {
		return nil, err
	}

	dkg, err := m.loadDKGForEpoch(ctx, req.EpochId)
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if sdkCtx.BlockHeight() <= dkg.CommitDeadline {
		return nil, dealertypes.ErrInvalidRequest.Wrapf("too early for dkg timeout: height=%d commitDeadline=%d", sdkCtx.BlockHeight(), dkg.CommitDeadline)
	}

	events := []sdk.Event{
		sdk.NewEvent(
			dealertypes.EventTypeDKGTimeoutApplied,
			sdk.NewAttribute("epochId", fmt.Sprintf("%d", dkg.EpochId)),
			sdk.NewAttribute("height", fmt.Sprintf("%d", sdkCtx.BlockHeight())),
		),
	}

	// Slash missing commits once the commit deadline passes.
	params, err := m.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	pen := m.dkgPenalty(&params)
	for _, mem := range dkg.Members {
		if dkgCommitByDealer(dkg, mem.Validator) != nil {
			continue
		}
		ev, err := m.slashDkgDealer(ctx, dkg, mem.Validator, "dkg-commit-timeout", pen)
		if err != nil {
			return nil, err
		}
		if ev != nil {
			events = append(events, *ev)
		}
	}

	qual := 0
	for _, mem := range dkg.Members {
		if !dkgHasSlashed(dkg, mem.Validator) {
			qual++
		}
	}
	if qual < int(dkg.Threshold) {
		// Abort early if below threshold (liveness).
		if err := m.SetDKG(ctx, nil); err != nil {
			return nil, err
		}
		events = append(events, sdk.NewEvent(
			dealertypes.EventTypeDealerEpochAborted,
			sdk.NewAttribute("epochId", fmt.Sprintf("%d", dkg.EpochId)),
			sdk.NewAttribute("threshold", fmt.Sprintf("%d", dkg.Threshold)),
			sdk.NewAttribute("qual", fmt.Sprintf("%d", qual)),
			sdk.NewAttribute("reason", "dkg-below-threshold"),
		))
		for _, ev := range events {
			sdkCtx.EventManager().EmitEvent(ev)
		}
		return &dealertypes.MsgDkgTimeoutResponse{}, nil
	}

	// Persist any slashing state changes.
	if err := m.SetDKG(ctx, dkg); err != nil {
		return nil, err
	}

	// If the reveal deadline passed, finalize deterministically.
	if sdkCtx.BlockHeight() > dkg.RevealDeadline {
		finalEvents, err := m.concludeDKG(ctx, dkg)
		if err != nil {
			return nil, err
		}
		events = append(events, finalEvents...)
	}

	for _, ev := range events {
		sdkCtx.EventManager().EmitEvent(ev)
	}
	return &dealertypes.MsgDkgTimeoutResponse{}, nil
}

func (m msgServer) InitHand(ctx context.Context, req *dealertypes.MsgInitHand) (*dealertypes.MsgInitHandResponse, error) {
	if req == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("nil request")
	}
	if err := requireCaller(req.Caller); err != nil {
		return nil, err
	}
	if req.TableId == 0 || req.HandId == 0 {
		return nil, dealertypes.ErrInvalidRequest.Wrap("table_id and hand_id must be > 0")
	}

	t, err := m.pokerKeeper.GetTable(ctx, req.TableId)
	if err != nil {
		return nil, err
	}
	if t == nil || t.Hand == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("no active hand")
	}
	h := t.Hand
	if h.HandId != req.HandId {
		return nil, dealertypes.ErrInvalidRequest.Wrap("hand_id mismatch")
	}
	if h.Phase != pokertypes.HandPhase_HAND_PHASE_SHUFFLE {
		return nil, dealertypes.ErrInvalidRequest.Wrap("hand not in shuffle phase")
	}
	if h.Dealer == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("hand missing dealer meta")
	}

	if existing, err := m.GetHand(ctx, req.TableId, req.HandId); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("dealer hand already initialized")
	}

	epoch, err := m.GetEpoch(ctx)
	if err != nil {
		return nil, err
	}
	if epoch == nil {
		return nil, dealertypes.ErrNoActiveEpoch.Wrap("no active dealer epoch")
	}
	if epoch.EpochId != req.EpochId {
		return nil, dealertypes.ErrInvalidRequest.Wrapf("epoch_id mismatch: expected %d got %d", epoch.EpochId, req.EpochId)
	}

	deckSize := req.DeckSize
	if deckSize == 0 {
		deckSize = 52
	}
	if deckSize < 2 || deckSize > 52 {
		return nil, dealertypes.ErrInvalidRequest.Wrapf("invalid deck_size %d", deckSize)
	}

	k, err := scalarForHand(epoch.EpochId, t.Id, h.HandId)
	if err != nil {
		return nil, err
	}

	pkEpoch, err := ocpcrypto.PointFromBytesCanonical(epoch.PkEpoch)
	if err != nil {
		return nil, dealertypes.ErrInvalidRequest.Wrapf("pk_epoch invalid: %v", err)
	}
	pkHand := ocpcrypto.MulPoint(pkEpoch, k)

	kBytes := k.Bytes()
	deck := make([]dealertypes.DealerCiphertext, 0, deckSize)
	for i := 0; i < int(deckSize); i++ {
		mpt := pointForCard(i)
		r, err := nonZeroScalarFromHash(deckInitDomain, kBytes, encodeU16LE(uint16(i)))
		if err != nil {
			return nil, err
		}
		ct, err := ocpcrypto.ElGamalEncrypt(pkHand, mpt, r)
		if err != nil {
			return nil, err
		}
		deck = append(deck, dealertypes.DealerCiphertext{
			C1: append([]byte(nil), ct.C1.Bytes()...),
			C2: append([]byte(nil), ct.C2.Bytes()...),
		})
	}

	nowUnix := sdk.UnwrapSDKContext(ctx).BlockTime().Unix()
	shuffleDeadline, err := addInt64AndU64Checked(nowUnix, dealerRevealTimeoutSecs(t), "dealer shuffle deadline")
	if err != nil {
		return nil, err
	}

	dh := &dealertypes.DealerHand{
		EpochId:            epoch.EpochId,
		PkHand:             append([]byte(nil), pkHand.Bytes()...),
		DeckSize:           deckSize,
		Deck:               deck,
		ShuffleStep:        0,
		Finalized:          false,
		ShuffleDeadline:    shuffleDeadline,
		HoleSharesDeadline: 0,
		PubShares:          []dealertypes.DealerPubShare{},
		EncShares:          []dealertypes.DealerEncShare{},
		Reveals:            []dealertypes.DealerReveal{},
	}

	// Update poker meta.
	meta := h.Dealer
	meta.EpochId = epoch.EpochId
	meta.DeckSize = deckSize
	meta.DeckFinalized = false
	meta.Cursor = 0
	meta.RevealPos = 255
	meta.RevealDeadline = 0
	meta.HolePos = make([]uint32, 18)
	for i := range meta.HolePos {
		meta.HolePos[i] = 255
	}

	if err := m.pokerKeeper.SetTable(ctx, t); err != nil {
		return nil, err
	}
	if err := m.SetHand(ctx, req.TableId, req.HandId, dh); err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		dealertypes.EventTypeDealerHandInitialized,
		sdk.NewAttribute("tableId", fmt.Sprintf("%d", req.TableId)),
		sdk.NewAttribute("handId", fmt.Sprintf("%d", req.HandId)),
		sdk.NewAttribute("epochId", fmt.Sprintf("%d", epoch.EpochId)),
		sdk.NewAttribute("deckSize", fmt.Sprintf("%d", deckSize)),
	))
	return &dealertypes.MsgInitHandResponse{}, nil
}

func (m msgServer) SubmitShuffle(ctx context.Context, req *dealertypes.MsgSubmitShuffle) (*dealertypes.MsgSubmitShuffleResponse, error) {
	if req == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("nil request")
	}
	if err := requireValoper(req.Shuffler, "shuffler"); err != nil {
		return nil, err
	}
	if req.TableId == 0 || req.HandId == 0 {
		return nil, dealertypes.ErrInvalidRequest.Wrap("table_id and hand_id must be > 0")
	}
	if len(req.ProofShuffle) == 0 {
		return nil, dealertypes.ErrInvalidRequest.Wrap("missing proof_shuffle")
	}

	t, dh, err := m.loadDealtHand(ctx, req.TableId, req.HandId)
	if err != nil {
		return nil, err
	}
	h := t.Hand
	if h.Phase != pokertypes.HandPhase_HAND_PHASE_SHUFFLE {
		return nil, dealertypes.ErrInvalidRequest.Wrap("hand not in shuffle phase")
	}

	nowUnix := sdk.UnwrapSDKContext(ctx).BlockTime().Unix()
	if dh.ShuffleDeadline != 0 && nowUnix >= dh.ShuffleDeadline {
		return nil, dealertypes.ErrInvalidRequest.Wrap("shuffle deadline passed; call dealer/timeout")
	}
	if dh.Finalized {
		return nil, dealertypes.ErrInvalidRequest.Wrap("deck already finalized")
	}
	if req.Round != dh.ShuffleStep+1 {
		return nil, dealertypes.ErrInvalidRequest.Wrapf("round mismatch: expected %d got %d", dh.ShuffleStep+1, req.Round)
	}

	epoch, err := m.GetEpoch(ctx)
	if err != nil {
		return nil, err
	}
	if epoch == nil || epoch.EpochId != dh.EpochId {
		return nil, dealertypes.ErrInvalidRequest.Wrap("epoch not available")
	}
	if epochMemberByValidator(epoch, req.Shuffler) == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("shuffler not in committee")
	}
	if epochHasSlashed(epoch, req.Shuffler) {
		return nil, dealertypes.ErrInvalidRequest.Wrap("shuffler is slashed")
	}

	qual := epochQualifiedMembers(epoch)
	if int(dh.ShuffleStep) >= len(qual) {
		return nil, dealertypes.ErrInvalidRequest.Wrap("no qualified shuffler available")
	}
	expectID := qual[dh.ShuffleStep].Validator
	if req.Shuffler != expectID {
		return nil, dealertypes.ErrInvalidRequest.Wrapf("unexpected shuffler: expected %s got %s", expectID, req.Shuffler)
	}

	deckOut, proofHash, err := verifyShuffleProof(dh.PkHand, dh.Deck, req.ProofShuffle)
	if err != nil {
		return nil, err
	}

	nextDeadline, err := addInt64AndU64Checked(nowUnix, dealerRevealTimeoutSecs(t), "dealer shuffle deadline")
	if err != nil {
		return nil, err
	}
	dh.Deck = deckOut
	dh.ShuffleStep = req.Round
	dh.ShuffleDeadline = nextDeadline

	if err := m.SetHand(ctx, req.TableId, req.HandId, dh); err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		dealertypes.EventTypeShuffleAccepted,
		sdk.NewAttribute("tableId", fmt.Sprintf("%d", req.TableId)),
		sdk.NewAttribute("handId", fmt.Sprintf("%d", req.HandId)),
		sdk.NewAttribute("round", fmt.Sprintf("%d", req.Round)),
		sdk.NewAttribute("shuffler", req.Shuffler),
		sdk.NewAttribute("proofHash", proofHash),
	))
	return &dealertypes.MsgSubmitShuffleResponse{}, nil
}

func (m msgServer) FinalizeDeck(ctx context.Context, req *dealertypes.MsgFinalizeDeck) (*dealertypes.MsgFinalizeDeckResponse, error) {
	if req == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("nil request")
	}
	if err := requireCaller(req.Caller); err != nil {
		return nil, err
	}
	if req.TableId == 0 || req.HandId == 0 {
		return nil, dealertypes.ErrInvalidRequest.Wrap("table_id and hand_id must be > 0")
	}

	events, err := m.finalizeShuffledDeck(ctx, req.TableId, req.HandId)
	if err != nil {
		return nil, err
	}
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	for _, ev := range events {
		sdkCtx.EventManager().EmitEvent(ev)
	}
	return &dealertypes.MsgFinalizeDeckResponse{}, nil
}

func (m msgServer) SubmitEncShare(ctx context.Context, req *dealertypes.MsgSubmitEncShare) (*dealertypes.MsgSubmitEncShareResponse, error) {
	if req == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("nil request")
	}
	if err := requireValoper(req.Validator, "validator"); err != nil {
		return nil, err
	}
	if req.TableId == 0 || req.HandId == 0 {
		return nil, dealertypes.ErrInvalidRequest.Wrap("table_id and hand_id must be > 0")
	}
	if len(req.PkPlayer) != ocpcrypto.PointBytes {
		return nil, dealertypes.ErrInvalidRequest.Wrap("pk_player must be 32 bytes")
	}
	if len(req.EncShare) != 64 {
		return nil, dealertypes.ErrInvalidRequest.Wrap("enc_share must be 64 bytes")
	}
	if len(req.ProofEncShare) != 160 {
		return nil, dealertypes.ErrInvalidRequest.Wrap("proof_enc_share must be 160 bytes")
	}

	t, dh, err := m.loadDealtHand(ctx, req.TableId, req.HandId)
	if err != nil {
		return nil, err
	}
	h := t.Hand
	if h.Phase != pokertypes.HandPhase_HAND_PHASE_SHUFFLE {
		return nil, dealertypes.ErrInvalidRequest.Wrap("hand not in shuffle phase")
	}
	meta := h.Dealer
	if !meta.DeckFinalized || len(meta.HolePos) != 18 {
		return nil, dealertypes.ErrInvalidRequest.Wrap("deck not finalized")
	}
	if !dh.Finalized {
		return nil, dealertypes.ErrInvalidRequest.Wrap("deck not finalized")
	}
	if int(req.Pos) >= len(dh.Deck) {
		return nil, dealertypes.ErrInvalidRequest.Wrap("pos out of bounds")
	}

	nowUnix := sdk.UnwrapSDKContext(ctx).BlockTime().Unix()
	if dh.HoleSharesDeadline == 0 {
		return nil, dealertypes.ErrInvalidRequest.Wrap("hole shares deadline not initialized")
	}
	if nowUnix >= dh.HoleSharesDeadline {
		return nil, dealertypes.ErrInvalidRequest.Wrap("hole shares deadline passed; call dealer/timeout")
	}

	epoch, err := m.GetEpoch(ctx)
	if err != nil {
		return nil, err
	}
	if epoch == nil || epoch.EpochId != dh.EpochId {
		return nil, dealertypes.ErrInvalidRequest.Wrap("epoch not available")
	}
	mem := epochMemberByValidator(epoch, req.Validator)
	if mem == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("validator not in committee")
	}
	if epochHasSlashed(epoch, req.Validator) {
		return nil, dealertypes.ErrInvalidRequest.Wrap("validator is slashed")
	}

	// Gate: only allow encrypted shares for in-hand hole positions, and require pk match.
	holeSeat, ok := seatForHolePos(meta, h, req.Pos)
	if !ok {
		return nil, dealertypes.ErrInvalidRequest.Wrap("pos is not a hole card position")
	}
	if holeSeat < 0 || holeSeat >= 9 || t.Seats[holeSeat] == nil || len(t.Seats[holeSeat].Pk) != ocpcrypto.PointBytes {
		return nil, dealertypes.ErrInvalidRequest.Wrap("seat missing pk")
	}
	if !bytes.Equal(t.Seats[holeSeat].Pk, req.PkPlayer) {
		return nil, dealertypes.ErrInvalidRequest.Wrapf("pk_player mismatch for seat %d", holeSeat)
	}

	// Prevent duplicates.
	for _, es := range dh.EncShares {
		if es.Pos == req.Pos && es.Validator == req.Validator {
			return nil, dealertypes.ErrInvalidRequest.Wrap("duplicate enc share")
		}
	}

	k, err := scalarForHand(dh.EpochId, t.Id, h.HandId)
	if err != nil {
		return nil, err
	}
	Yepoch, err := ocpcrypto.PointFromBytesCanonical(mem.PubShare)
	if err != nil {
		return nil, dealertypes.ErrInvalidRequest.Wrapf("pub_share invalid: %v", err)
	}
	Yhand := ocpcrypto.MulPoint(Yepoch, k)

	c1Cipher, err := ocpcrypto.PointFromBytesCanonical(dh.Deck[req.Pos].C1)
	if err != nil {
		return nil, dealertypes.ErrInvalidRequest.Wrapf("ciphertext c1 invalid: %v", err)
	}
	pkPlayer, err := ocpcrypto.PointFromBytesCanonical(req.PkPlayer)
	if err != nil {
		return nil, dealertypes.ErrInvalidRequest.Wrapf("pk_player invalid: %v", err)
	}
	U, err := ocpcrypto.PointFromBytesCanonical(req.EncShare[:32])
	if err != nil {
		return nil, dealertypes.ErrInvalidRequest.Wrapf("enc_share.u invalid: %v", err)
	}
	V, err := ocpcrypto.PointFromBytesCanonical(req.EncShare[32:])
	if err != nil {
		return nil, dealertypes.ErrInvalidRequest.Wrapf("enc_share.v invalid: %v", err)
	}
	proof, err := ocpcrypto.DecodeEncShareProof(req.ProofEncShare)
	if err != nil {
		return nil, dealertypes.ErrInvalidRequest.Wrapf("proof_enc_share invalid: %v", err)
	}
	okProof, err := ocpcrypto.EncShareVerify(Yhand, c1Cipher, pkPlayer, U, V, proof)
	if err != nil {
		return nil, err
	}
	if !okProof {
		return nil, dealertypes.ErrInvalidRequest.Wrap("invalid enc share proof")
	}

	dh.EncShares = append(dh.EncShares, dealertypes.DealerEncShare{
		Pos:       req.Pos,
		Validator: req.Validator,
		Index:     mem.Index,
		PkPlayer:  append([]byte(nil), req.PkPlayer...),
		EncShare:  append([]byte(nil), req.EncShare...),
		Proof:     append([]byte(nil), req.ProofEncShare...),
	})
	sortEncShares(dh)

	// If we have enough encrypted shares for all in-hand hole cards, open betting.
	if ready, err := holeEncSharesComplete(epoch, t, dh); err != nil {
		return nil, err
	} else if ready && h.Phase == pokertypes.HandPhase_HAND_PHASE_SHUFFLE {
		dh.HoleSharesDeadline = 0
		if err := m.SetHand(ctx, req.TableId, req.HandId, dh); err != nil {
			return nil, err
		}
		if err := m.pokerKeeper.AdvanceAfterHoleSharesReady(ctx, req.TableId, req.HandId, nowUnix); err != nil {
			return nil, err
		}

		// Re-load for event attributes.
		t2, err := m.pokerKeeper.GetTable(ctx, req.TableId)
		if err != nil {
			return nil, err
		}
		phase := ""
		if t2 != nil && t2.Hand != nil {
			phase = t2.Hand.Phase.String()
		}
		sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
			dealertypes.EventTypeHoleCardsReady,
			sdk.NewAttribute("tableId", fmt.Sprintf("%d", req.TableId)),
			sdk.NewAttribute("handId", fmt.Sprintf("%d", req.HandId)),
			sdk.NewAttribute("phase", phase),
		))
	}

	if err := m.SetHand(ctx, req.TableId, req.HandId, dh); err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		dealertypes.EventTypeEncShareAccepted,
		sdk.NewAttribute("tableId", fmt.Sprintf("%d", req.TableId)),
		sdk.NewAttribute("handId", fmt.Sprintf("%d", req.HandId)),
		sdk.NewAttribute("pos", fmt.Sprintf("%d", req.Pos)),
		sdk.NewAttribute("validator", req.Validator),
	))
	return &dealertypes.MsgSubmitEncShareResponse{}, nil
}

func (m msgServer) SubmitPubShare(ctx context.Context, req *dealertypes.MsgSubmitPubShare) (*dealertypes.MsgSubmitPubShareResponse, error) {
	if req == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("nil request")
	}
	if err := requireValoper(req.Validator, "validator"); err != nil {
		return nil, err
	}
	if req.TableId == 0 || req.HandId == 0 {
		return nil, dealertypes.ErrInvalidRequest.Wrap("table_id and hand_id must be > 0")
	}
	if len(req.PubShare) == 0 || len(req.ProofShare) == 0 {
		return nil, dealertypes.ErrInvalidRequest.Wrap("missing pub_share/proof_share")
	}

	t, err := m.pokerKeeper.GetTable(ctx, req.TableId)
	if err != nil {
		return nil, err
	}
	if t == nil || t.Hand == nil || t.Hand.Dealer == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("dealer hand not initialized")
	}
	h := t.Hand
	if h.HandId != req.HandId {
		return nil, dealertypes.ErrInvalidRequest.Wrap("hand_id mismatch")
	}
	meta := h.Dealer
	if meta.RevealPos == 255 || meta.RevealDeadline == 0 {
		return nil, dealertypes.ErrInvalidRequest.Wrap("hand not awaiting a reveal")
	}
	if req.Pos != meta.RevealPos {
		return nil, dealertypes.ErrInvalidRequest.Wrap("pos not currently revealable")
	}

	nowUnix := sdk.UnwrapSDKContext(ctx).BlockTime().Unix()
	if nowUnix >= meta.RevealDeadline {
		return nil, dealertypes.ErrInvalidRequest.Wrap("reveal deadline passed; call dealer/timeout")
	}

	dh, err := m.GetHand(ctx, req.TableId, req.HandId)
	if err != nil {
		return nil, err
	}
	if dh == nil {
		return nil, dealertypes.ErrHandNotFound.Wrap("dealer hand not initialized")
	}
	if int(req.Pos) >= len(dh.Deck) {
		return nil, dealertypes.ErrInvalidRequest.Wrap("pos out of bounds")
	}

	epoch, err := m.GetEpoch(ctx)
	if err != nil {
		return nil, err
	}
	if epoch == nil || epoch.EpochId != dh.EpochId {
		return nil, dealertypes.ErrInvalidRequest.Wrap("epoch not available")
	}
	mem := epochMemberByValidator(epoch, req.Validator)
	if mem == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("validator not in committee")
	}
	if epochHasSlashed(epoch, req.Validator) {
		return nil, dealertypes.ErrInvalidRequest.Wrap("validator is slashed")
	}

	// Prevent duplicates.
	for _, ps := range dh.PubShares {
		if ps.Pos == req.Pos && ps.Validator == req.Validator {
			return nil, dealertypes.ErrInvalidRequest.Wrap("duplicate pub share")
		}
	}

	k, err := scalarForHand(dh.EpochId, t.Id, h.HandId)
	if err != nil {
		return nil, err
	}
	Yepoch, err := ocpcrypto.PointFromBytesCanonical(mem.PubShare)
	if err != nil {
		return nil, dealertypes.ErrInvalidRequest.Wrapf("pub_share invalid: %v", err)
	}
	Yhand := ocpcrypto.MulPoint(Yepoch, k)

	c1, err := ocpcrypto.PointFromBytesCanonical(dh.Deck[req.Pos].C1)
	if err != nil {
		return nil, dealertypes.ErrInvalidRequest.Wrapf("ciphertext c1 invalid: %v", err)
	}
	share, err := ocpcrypto.PointFromBytesCanonical(req.PubShare)
	if err != nil {
		return nil, dealertypes.ErrInvalidRequest.Wrapf("pub_share invalid: %v", err)
	}
	proof, err := ocpcrypto.DecodeChaumPedersenProof(req.ProofShare)
	if err != nil {
		return nil, dealertypes.ErrInvalidRequest.Wrapf("proof_share invalid: %v", err)
	}
	okProof, err := ocpcrypto.ChaumPedersenVerify(Yhand, c1, share, proof)
	if err != nil {
		return nil, err
	}
	if !okProof {
		return nil, dealertypes.ErrInvalidRequest.Wrap("invalid pub share proof")
	}

	dh.PubShares = append(dh.PubShares, dealertypes.DealerPubShare{
		Pos:       req.Pos,
		Validator: req.Validator,
		Index:     mem.Index,
		Share:     append([]byte(nil), req.PubShare...),
		Proof:     append([]byte(nil), req.ProofShare...),
	})
	sortPubShares(dh)

	if err := m.SetHand(ctx, req.TableId, req.HandId, dh); err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		dealertypes.EventTypePubShareAccepted,
		sdk.NewAttribute("tableId", fmt.Sprintf("%d", req.TableId)),
		sdk.NewAttribute("handId", fmt.Sprintf("%d", req.HandId)),
		sdk.NewAttribute("pos", fmt.Sprintf("%d", req.Pos)),
		sdk.NewAttribute("validator", req.Validator),
	))
	return &dealertypes.MsgSubmitPubShareResponse{}, nil
}

func (m msgServer) FinalizeReveal(ctx context.Context, req *dealertypes.MsgFinalizeReveal) (*dealertypes.MsgFinalizeRevealResponse, error) {
	if req == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("nil request")
	}
	if err := requireCaller(req.Caller); err != nil {
		return nil, err
	}
	if req.TableId == 0 || req.HandId == 0 {
		return nil, dealertypes.ErrInvalidRequest.Wrap("table_id and hand_id must be > 0")
	}

	events, err := m.settleCardReveal(ctx, req.TableId, req.HandId, req.Pos)
	if err != nil {
		return nil, err
	}
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	for _, ev := range events {
		sdkCtx.EventManager().EmitEvent(ev)
	}
	return &dealertypes.MsgFinalizeRevealResponse{}, nil
}

func (m msgServer) Timeout(ctx context.Context, req *dealertypes.MsgTimeout) (*dealertypes.MsgTimeoutResponse, error) {
	if req == nil {
		return nil, dealertypes.ErrInvalidRequest.Wrap("nil request")
	}
	if err := requireCaller(req.Caller); err != nil {
		return nil, err
	}
	if req.TableId == 0 || req.HandId == 0 {
		return nil, dealertypes.ErrInvalidRequest.Wrap("table_id and hand_id must be > 0")
	}

	events, err := m.processTimeout(ctx, req.TableId, req.HandId)
	if err != nil {
		return nil, err
	}
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	for _, ev := range events {
		sdkCtx.EventManager().EmitEvent(ev)
	}
	return &dealertypes.MsgTimeoutResponse{}, nil
}

// applyPenalty is a thin wrapper around the shared slashing helper.
func (m msgServer) applyPenalty(
	ctx context.Context,
	valoper string,
	distributionHeight int64,
	powerAtDistributionHeight int64,
	slashFraction sdkmath.LegacyDec,
	jailDuration time.Duration,
) error {
	valAddr, err := sdk.ValAddressFromBech32(valoper)
	if err != nil {
		return err
	}
	return SlashAndJailValidator(
		ctx,
		m.stakingKeeper,
		m.slashingKeeper,
		valAddr,
		distributionHeight,
		powerAtDistributionHeight,
		slashFraction,
		jailDuration,
	)
}
