package keeper

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"math"

	sdkmath "cosmossdk.io/math"

	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"onchainpoker-chain/internal/ocpcrypto"
	"onchainpoker-chain/x/poker/types"
)

type msgServer struct {
	Keeper
	cdc codec.BinaryCodec
}

var _ types.MsgServer = msgServer{}

func NewMsgServerImpl(k Keeper, cdc codec.BinaryCodec) types.MsgServer {
	return &msgServer{Keeper: k, cdc: cdc}
}

// u64attr renders an unsigned event attribute; i64attr a signed one. Every
// handler below emits through these so attribute formatting stays uniform.
func u64attr(key string, v uint64) sdk.Attribute {
	return sdk.NewAttribute(key, fmt.Sprintf("%d", v))
}

func i64attr(key string, v int64) sdk.Attribute {
	return sdk.NewAttribute(key, fmt.Sprintf("%d", v))
}

// loadTable fetches a table or returns the module's not-found error.
func (m msgServer) loadTable(ctx context.Context, tableID uint64) (*types.Table, error) {
	t, err := m.GetTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, types.ErrTableNotFound.Wrapf("table %d not found", tableID)
	}
	return t, nil
}

// escrowCoins moves buy-in plus bond from a player account into the module
// escrow; payoutCoins is the reverse direction on Leave/ejection.
func (m msgServer) escrowCoins(ctx context.Context, from sdk.AccAddress, amount uint64) error {
	if amount == 0 {
		return nil
	}
	coins := sdk.NewCoins(sdk.NewCoin(sdk.DefaultBondDenom, sdkmath.NewIntFromUint64(amount)))
	return m.bankKeeper.SendCoinsFromAccountToModule(ctx, from, types.ModuleName, coins)
}

func (m msgServer) payoutCoins(ctx context.Context, to sdk.AccAddress, amount uint64) error {
	if amount == 0 {
		return nil
	}
	coins := sdk.NewCoins(sdk.NewCoin(sdk.DefaultBondDenom, sdkmath.NewIntFromUint64(amount)))
	return m.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, to, coins)
}

// forfeitToFeeCollector moves slashed bond chips out of escrow.
func (m msgServer) forfeitToFeeCollector(ctx context.Context, amount uint64) error {
	if amount == 0 {
		return nil
	}
	coins := sdk.NewCoins(sdk.NewCoin(sdk.DefaultBondDenom, sdkmath.NewIntFromUint64(amount)))
	return m.bankKeeper.SendCoinsFromModuleToModule(ctx, types.ModuleName, authtypes.FeeCollectorName, coins)
}

// ---------------------------------------------------------------------------
// CreateTable
// ---------------------------------------------------------------------------

func validateTableConfig(req *types.MsgCreateTable) (maxPlayers uint32, err error) {
	maxPlayers = req.MaxPlayers
	if maxPlayers == 0 {
		maxPlayers = numSeats
	}
	if maxPlayers != numSeats {
		return 0, types.ErrInvalidTableCfg.Wrap("only max_players=9 is supported")
	}
	if req.SmallBlind == 0 || req.BigBlind == 0 || req.BigBlind < req.SmallBlind {
		return 0, types.ErrInvalidTableCfg.Wrap("invalid blinds")
	}
	if req.MinBuyIn == 0 || req.MaxBuyIn == 0 || req.MaxBuyIn < req.MinBuyIn {
		return 0, types.ErrInvalidTableCfg.Wrap("invalid buy-in range")
	}
	if req.RakeBps != 0 {
		return 0, types.ErrInvalidTableCfg.Wrap("rake_bps must be 0")
	}
	if req.ActionTimeoutSecs > uint64(math.MaxInt64) {
		return 0, types.ErrInvalidTableCfg.Wrap("action_timeout_secs exceeds int64 max")
	}
	if req.DealerTimeoutSecs > uint64(math.MaxInt64) {
		return 0, types.ErrInvalidTableCfg.Wrap("dealer_timeout_secs exceeds int64 max")
	}
	return maxPlayers, nil
}

func (m msgServer) CreateTable(ctx context.Context, req *types.MsgCreateTable) (*types.MsgCreateTableResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidRequest.Wrap("nil request")
	}
	if req.Creator == "" {
		return nil, types.ErrInvalidRequest.Wrap("missing creator")
	}
	maxPlayers, err := validateTableConfig(req)
	if err != nil {
		return nil, err
	}

	var pwHash []byte
	if req.Password != "" {
		sum := sha256.Sum256([]byte(req.Password))
		pwHash = sum[:]
	}

	id, err := m.GetNextTableID(ctx)
	if err != nil {
		return nil, err
	}
	if id == ^uint64(0) {
		return nil, types.ErrInvalidRequest.Wrap("next table id overflows uint64")
	}
	if err := m.SetNextTableID(ctx, id+1); err != nil {
		return nil, err
	}

	t := &types.Table{
		Id:      id,
		Creator: req.Creator,
		Label:   req.Label,
		Params: types.TableParams{
			MaxPlayers:        maxPlayers,
			SmallBlind:        req.SmallBlind,
			BigBlind:          req.BigBlind,
			MinBuyIn:          req.MinBuyIn,
			MaxBuyIn:          req.MaxBuyIn,
			ActionTimeoutSecs: req.ActionTimeoutSecs,
			DealerTimeoutSecs: req.DealerTimeoutSecs,
			PlayerBond:        req.PlayerBond,
			RakeBps:           req.RakeBps,
			PasswordHash:      pwHash,
		},
		Seats:      make([]*types.Seat, numSeats),
		NextHandId: 1,
		ButtonSeat: -1,
		Hand:       nil,
	}
	if err := m.SetTable(ctx, t); err != nil {
		return nil, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeTableCreated,
		u64attr("tableId", id),
	))
	return &types.MsgCreateTableResponse{TableId: id}, nil
}

// ---------------------------------------------------------------------------
// Sit
// ---------------------------------------------------------------------------

func checkTablePassword(t *types.Table, password string) error {
	if len(t.Params.PasswordHash) == 0 {
		return nil
	}
	if password == "" {
		return types.ErrInvalidRequest.Wrap("password required")
	}
	sum := sha256.Sum256([]byte(password))
	if !bytes.Equal(sum[:], t.Params.PasswordHash) {
		return types.ErrInvalidRequest.Wrap("wrong password")
	}
	return nil
}

func (m msgServer) Sit(ctx context.Context, req *types.MsgSit) (*types.MsgSitResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidRequest.Wrap("nil request")
	}
	if req.Player == "" {
		return nil, types.ErrInvalidRequest.Wrap("missing player")
	}
	playerAddr, err := sdk.AccAddressFromBech32(req.Player)
	if err != nil {
		return nil, types.ErrInvalidRequest.Wrap("invalid player address")
	}

	t, err := m.loadTable(ctx, req.TableId)
	if err != nil {
		return nil, err
	}
	if err := checkTablePassword(t, req.Password); err != nil {
		return nil, err
	}
	if findSeatByPlayer(t, req.Player) >= 0 {
		return nil, types.ErrInvalidRequest.Wrap("already seated")
	}
	if req.BuyIn < t.Params.MinBuyIn || req.BuyIn > t.Params.MaxBuyIn {
		return nil, types.ErrInvalidRequest.Wrap("buy-in out of range")
	}

	// Dealer mode requires pk_player.
	if len(req.PkPlayer) != ocpcrypto.PointBytes {
		return nil, types.ErrInvalidRequest.Wrap("pk_player must be 32 bytes")
	}
	if _, err := ocpcrypto.PointFromBytesCanonical(req.PkPlayer); err != nil {
		return nil, types.ErrInvalidRequest.Wrap("pk_player invalid ristretto point")
	}

	seat, err := pickAutoSeat(t)
	if err != nil {
		return nil, types.ErrInvalidRequest.Wrap(err.Error())
	}

	bond := t.Params.PlayerBond
	total, err := addUint64Checked(req.BuyIn, bond, "buy_in + bond")
	if err != nil {
		return nil, types.ErrInvalidRequest.Wrap(err.Error())
	}
	if err := m.escrowCoins(ctx, playerAddr, total); err != nil {
		return nil, err
	}

	t.Seats[seat] = &types.Seat{
		Player: req.Player,
		Pk:     append([]byte(nil), req.PkPlayer...),
		Stack:  req.BuyIn,
		Bond:   bond,
		Hole:   []uint32{255, 255},
	}
	if err := m.SetTable(ctx, t); err != nil {
		return nil, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypePlayerSat,
		u64attr("tableId", req.TableId),
		i64attr("seat", int64(seat)),
		sdk.NewAttribute("player", req.Player),
		u64attr("buyIn", req.BuyIn),
		u64attr("bond", bond),
	))
	return &types.MsgSitResponse{Seat: uint32(seat)}, nil
}

// ---------------------------------------------------------------------------
// StartHand
// ---------------------------------------------------------------------------

func (m msgServer) StartHand(ctx context.Context, req *types.MsgStartHand) (*types.MsgStartHandResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidRequest.Wrap("nil request")
	}
	if req.Caller == "" {
		return nil, types.ErrInvalidRequest.Wrap("missing caller")
	}

	t, err := m.loadTable(ctx, req.TableId)
	if err != nil {
		return nil, err
	}
	if findSeatByPlayer(t, req.Caller) < 0 {
		return nil, types.ErrNotSeated.Wrap("caller not seated at table")
	}
	if t.Hand != nil {
		return nil, types.ErrHandInProgress.Wrap("hand already in progress")
	}

	funded := fundedSeatIndices(t)
	if len(funded) < 2 {
		return nil, types.ErrInvalidRequest.Wrap("need at least 2 players with chips")
	}
	if t.NextHandId == ^uint64(0) {
		return nil, types.ErrInvalidRequest.Wrap("next hand id overflows uint64")
	}

	// Advance button to the next funded seat (first funded seat on a fresh
	// table) and wipe stale hole cards from the previous hand.
	if t.ButtonSeat < 0 {
		t.ButtonSeat = int32(funded[0])
	} else {
		t.ButtonSeat = int32(nextFundedSeat(t, int(t.ButtonSeat)))
	}
	clearAllHoleCards(t)

	sbSeat, bbSeat := resolveBlindSeats(t)
	if sbSeat < 0 || bbSeat < 0 {
		return nil, types.ErrInvalidRequest.Wrap("cannot determine blinds")
	}

	handID := t.NextHandId
	t.NextHandId++
	t.Hand = newHandState(t, handID)
	h := t.Hand
	h.SmallBlindSeat = int32(sbSeat)
	h.BigBlindSeat = int32(bbSeat)

	// Blinds go in before anyone acts; a short blind puts that seat all-in.
	if err := commitBlind(t, sbSeat, t.Params.SmallBlind); err != nil {
		return nil, types.ErrInvalidRequest.Wrap("small blind: " + err.Error())
	}
	if err := commitBlind(t, bbSeat, t.Params.BigBlind); err != nil {
		return nil, types.ErrInvalidRequest.Wrap("big blind: " + err.Error())
	}
	h.BetTo = h.StreetCommit[bbSeat]
	h.MinRaiseSize = t.Params.BigBlind
	h.ActionOn = int32(findNextToAct(h, bbSeat))

	if err := m.SetTable(ctx, t); err != nil {
		return nil, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeHandStarted,
		u64attr("tableId", req.TableId),
		u64attr("handId", handID),
		i64attr("buttonSeat", int64(t.ButtonSeat)),
		i64attr("smallBlindSeat", int64(sbSeat)),
		i64attr("bigBlindSeat", int64(bbSeat)),
		i64attr("actionOn", int64(h.ActionOn)),
	))
	return &types.MsgStartHandResponse{}, nil
}

// newHandState builds a Hand in SHUFFLE phase with every per-seat array
// sized and the dealer metadata zeroed out, ready for blind posting.
func newHandState(t *types.Table, handID uint64) *types.Hand {
	inHand := make([]bool, numSeats)
	for i := 0; i < numSeats; i++ {
		if t.Seats[i] != nil && t.Seats[i].Stack > 0 {
			inHand[i] = true
		}
	}
	lastActed := make([]int32, numSeats)
	for i := range lastActed {
		lastActed[i] = -1
	}
	holePos := make([]uint32, 2*numSeats)
	for i := range holePos {
		holePos[i] = 255
	}
	return &types.Hand{
		HandId:         handID,
		Phase:          types.HandPhase_HAND_PHASE_SHUFFLE,
		Street:         types.Street_STREET_PREFLOP,
		ButtonSeat:     t.ButtonSeat,
		SmallBlindSeat: -1,
		BigBlindSeat:   -1,
		ActionOn:       -1,
		BetTo:          0,
		MinRaiseSize:   t.Params.BigBlind,
		IntervalId:     0,

		InHand:            inHand,
		Folded:            make([]bool, numSeats),
		AllIn:             make([]bool, numSeats),
		StreetCommit:      make([]uint64, numSeats),
		TotalCommit:       make([]uint64, numSeats),
		LastIntervalActed: lastActed,

		Board:          nil,
		ActionDeadline: 0,

		Dealer: &types.DealerMeta{
			EpochId:        0,
			DeckSize:       0,
			DeckFinalized:  false,
			HolePos:        holePos,
			Cursor:         0,
			RevealPos:      255,
			RevealDeadline: 0,
		},
	}
}

// ---------------------------------------------------------------------------
// Act
// ---------------------------------------------------------------------------

// requireBettingActor checks the hand is mid-betting with a live actor seat
// and returns it.
func requireBettingActor(t *types.Table) (int, error) {
	if t.Hand == nil {
		return -1, types.ErrNoActiveHand.Wrap("no active hand")
	}
	h := t.Hand
	if h.Phase != types.HandPhase_HAND_PHASE_BETTING {
		return -1, types.ErrInvalidRequest.Wrap("hand not in betting phase")
	}
	if h.ActionOn < 0 || h.ActionOn >= numSeats || t.Seats[h.ActionOn] == nil {
		return -1, types.ErrInvalidRequest.Wrap("invalid actionOn seat")
	}
	return int(h.ActionOn), nil
}

func (m msgServer) Act(ctx context.Context, req *types.MsgAct) (*types.MsgActResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidRequest.Wrap("nil request")
	}
	if req.Player == "" {
		return nil, types.ErrInvalidRequest.Wrap("missing player")
	}
	if _, err := sdk.AccAddressFromBech32(req.Player); err != nil {
		return nil, types.ErrInvalidRequest.Wrap("invalid player address")
	}

	t, err := m.loadTable(ctx, req.TableId)
	if err != nil {
		return nil, err
	}
	actor, err := requireBettingActor(t)
	if err != nil {
		return nil, err
	}
	if t.Seats[actor].Player != req.Player {
		return nil, types.ErrNotYourTurn.Wrap("not your turn")
	}
	h := t.Hand

	nowUnix := sdk.UnwrapSDKContext(ctx).BlockTime().Unix()
	extraEvents, err := applyPlayerAction(t, req.Action, req.Amount, nowUnix)
	if err != nil {
		return nil, types.ErrInvalidAction.Wrap(err.Error())
	}
	if err := m.SetTable(ctx, t); err != nil {
		return nil, err
	}

	em := sdk.UnwrapSDKContext(ctx).EventManager()
	em.EmitEvent(sdk.NewEvent(
		types.EventTypeActionApplied,
		u64attr("tableId", req.TableId),
		u64attr("handId", h.HandId),
		sdk.NewAttribute("player", req.Player),
		sdk.NewAttribute("action", req.Action),
		u64attr("amount", req.Amount),
		sdk.NewAttribute("phase", h.Phase.String()),
		sdk.NewAttribute("street", h.Street.String()),
		i64attr("actionOn", int64(h.ActionOn)),
	))
	em.EmitEvents(extraEvents)

	if err := m.sweepBondlessSeats(ctx, t); err != nil {
		return nil, err
	}
	return &types.MsgActResponse{}, nil
}

// ---------------------------------------------------------------------------
// Tick
// ---------------------------------------------------------------------------

func (m msgServer) Tick(ctx context.Context, req *types.MsgTick) (*types.MsgTickResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidRequest.Wrap("nil request")
	}
	t, err := m.loadTable(ctx, req.TableId)
	if err != nil {
		return nil, err
	}
	actorSeat, err := requireBettingActor(t)
	if err != nil {
		return nil, err
	}
	h := t.Hand

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	nowUnix := sdkCtx.BlockTime().Unix()

	// Older saved states may carry a zero deadline; arm one instead of
	// defaulting the player instantly.
	if h.ActionDeadline == 0 {
		if err := refreshActionDeadline(t, nowUnix); err != nil {
			return nil, err
		}
		if err := m.SetTable(ctx, t); err != nil {
			return nil, err
		}
		return &types.MsgTickResponse{}, nil
	}
	if nowUnix < h.ActionDeadline {
		return nil, types.ErrInvalidRequest.Wrap("action not timed out")
	}

	handID := h.HandId
	seat := t.Seats[actorSeat]
	player := seat.Player

	// Deterministic default: check when free, fold when facing a bet.
	action := "fold"
	if amountOwedToCall(h, actorSeat) == 0 {
		action = "check"
	}

	slashAmt := uint64(0)
	if seat.Bond != 0 {
		unit := t.Params.BigBlind
		if unit == 0 {
			unit = 1
		}
		slashAmt = unit
		if slashAmt > seat.Bond {
			slashAmt = seat.Bond
		}
		seat.Bond -= slashAmt
		if err := m.forfeitToFeeCollector(ctx, slashAmt); err != nil {
			return nil, err
		}
	}

	extraEvents, err := applyPlayerAction(t, action, 0, nowUnix)
	if err != nil {
		return nil, types.ErrInvalidAction.Wrap(err.Error())
	}
	if err := m.SetTable(ctx, t); err != nil {
		return nil, err
	}

	em := sdkCtx.EventManager()
	em.EmitEvent(sdk.NewEvent(
		types.EventTypeTimeoutApplied,
		u64attr("tableId", req.TableId),
		u64attr("handId", handID),
		i64attr("seat", int64(actorSeat)),
		sdk.NewAttribute("player", player),
		sdk.NewAttribute("action", action),
	))
	if slashAmt != 0 {
		em.EmitEvent(sdk.NewEvent(
			types.EventTypePlayerSlashed,
			u64attr("tableId", req.TableId),
			u64attr("handId", handID),
			i64attr("seat", int64(actorSeat)),
			sdk.NewAttribute("player", player),
			sdk.NewAttribute("reason", "action-timeout"),
			u64attr("amount", slashAmt),
			u64attr("bondRemaining", seat.Bond),
		))
	}
	em.EmitEvents(extraEvents)

	if err := m.sweepBondlessSeats(ctx, t); err != nil {
		return nil, err
	}
	return &types.MsgTickResponse{}, nil
}

// ---------------------------------------------------------------------------
// Leave
// ---------------------------------------------------------------------------

func (m msgServer) Leave(ctx context.Context, req *types.MsgLeave) (*types.MsgLeaveResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidRequest.Wrap("nil request")
	}
	if req.Player == "" {
		return nil, types.ErrInvalidRequest.Wrap("missing player")
	}
	playerAddr, err := sdk.AccAddressFromBech32(req.Player)
	if err != nil {
		return nil, types.ErrInvalidRequest.Wrap("invalid player address")
	}

	t, err := m.loadTable(ctx, req.TableId)
	if err != nil {
		return nil, err
	}
	seat := findSeatByPlayer(t, req.Player)
	if seat < 0 {
		return nil, types.ErrNotSeated.Wrap("player not seated at table")
	}
	if t.Hand != nil && len(t.Hand.InHand) == numSeats && t.Hand.InHand[seat] {
		return nil, types.ErrInvalidRequest.Wrap("cannot leave during active hand")
	}

	s := t.Seats[seat]
	amount, err := addUint64Checked(s.Stack, s.Bond, "stack + bond")
	if err != nil {
		return nil, types.ErrInvalidRequest.Wrap(err.Error())
	}
	if err := m.payoutCoins(ctx, playerAddr, amount); err != nil {
		return nil, err
	}

	t.Seats[seat] = &types.Seat{}
	if err := m.SetTable(ctx, t); err != nil {
		return nil, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypePlayerLeft,
		u64attr("tableId", req.TableId),
		i64attr("seat", int64(seat)),
		sdk.NewAttribute("player", req.Player),
		u64attr("stack", s.Stack),
		u64attr("bond", s.Bond),
		u64attr("amount", amount),
	))
	return &types.MsgLeaveResponse{}, nil
}

// sweepBondlessSeats ejects, between hands, any seated player whose bond has
// been fully slashed, returning their remaining stack. No-op while a hand is
// active or when the table carries no bond requirement.
func (m msgServer) sweepBondlessSeats(ctx context.Context, t *types.Table) error {
	if t == nil || t.Hand != nil || t.Params.PlayerBond == 0 {
		return nil
	}

	dirty := false
	for i := 0; i < numSeats; i++ {
		s := t.Seats[i]
		if s == nil || s.Player == "" || s.Bond != 0 {
			continue
		}
		addr, err := sdk.AccAddressFromBech32(s.Player)
		if err != nil {
			return err
		}
		if err := m.payoutCoins(ctx, addr, s.Stack); err != nil {
			return err
		}

		sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
			types.EventTypePlayerEjected,
			u64attr("tableId", t.Id),
			i64attr("seat", int64(i)),
			sdk.NewAttribute("player", s.Player),
			sdk.NewAttribute("reason", "bond depleted"),
			u64attr("stackReturned", s.Stack),
		))
		t.Seats[i] = &types.Seat{}
		dirty = true
	}
	if !dirty {
		return nil
	}
	return m.SetTable(ctx, t)
}
