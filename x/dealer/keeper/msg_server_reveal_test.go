package keeper

import (
	"bytes"
	"testing"
	"time"

	storetypes "cosmossdk.io/store/types"

	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/testutil"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"onchainpoker-chain/internal/ocpcrypto"
	dealertypes "onchainpoker-chain/x/dealer/types"
	pokertypes "onchainpoker-chain/x/poker/types"
)

// newDealerRevealHarness builds a keeper whose staking fake resolves every
// validator lookup (so slash paths run through) and whose poker keeper is
// the in-memory table fake shared with the overflow tests.
func newDealerRevealHarness(t *testing.T, blockTime time.Time) (sdk.Context, Keeper, dealertypes.MsgServer, *fakeDealerPokerKeeper, *fakeSlashingKeeper) {
	t.Helper()

	key := storetypes.NewKVStoreKey(dealertypes.StoreKey)
	storeService := runtime.NewKVStoreService(key)
	testCtx := testutil.DefaultContextWithDB(t, key, storetypes.NewTransientStoreKey("transient_test"))
	sdkCtx := testCtx.Ctx.WithEventManager(sdk.NewEventManager()).WithBlockTime(blockTime).WithBlockHeight(10)

	ir := codectypes.NewInterfaceRegistry()
	cdc := codec.NewProtoCodec(ir)

	staking := fakeStakingKeeper{
		val: fakeValidator{consAddr: sdk.ConsAddress(bytes.Repeat([]byte{0x05}, 20))},
	}
	slashing := &fakeSlashingKeeper{}
	pokerKeeper := &fakeDealerPokerKeeper{tables: map[uint64]*pokertypes.Table{}}

	k := NewKeeper(
		cdc,
		storeService,
		sdk.AccAddress(bytes.Repeat([]byte{0x7b}, 20)).String(),
		staking,
		staking,
		slashing,
		pokerKeeper,
	)

	return sdkCtx, k, NewMsgServerImpl(k), pokerKeeper, slashing
}

// revealFixture is a single-validator (threshold 1) hand with one known
// encrypted card at deck position 0, awaiting its reveal.
type revealFixture struct {
	valoper string
	skHand  ocpcrypto.Scalar
	c1      ocpcrypto.Point
	cardID  uint32
}

func setupAwaitingReveal(t *testing.T, ctx sdk.Context, k Keeper, pokerKeeper *fakeDealerPokerKeeper) revealFixture {
	t.Helper()

	const (
		epochID = uint64(9)
		tableID = uint64(1)
		handID  = uint64(1)
		cardID  = uint32(13)
	)
	valoper := sdk.ValAddress(bytes.Repeat([]byte{0x41}, 20)).String()

	sk := ocpcrypto.ScalarFromUint64(7)
	handScalar, err := scalarForHand(epochID, tableID, handID)
	require.NoError(t, err)
	skHand := ocpcrypto.ScalarMul(sk, handScalar)
	pkHand := ocpcrypto.MulBase(skHand)

	r := ocpcrypto.ScalarFromUint64(5)
	ct, err := ocpcrypto.ElGamalEncrypt(pkHand, pointForCard(int(cardID)), r)
	require.NoError(t, err)

	wctx := sdk.WrapSDKContext(ctx)
	require.NoError(t, k.SetEpoch(wctx, &dealertypes.DealerEpoch{
		EpochId:   epochID,
		Threshold: 1,
		Members: []dealertypes.DealerMember{
			{Validator: valoper, Index: 1, PubShare: ocpcrypto.MulBase(sk).Bytes()},
		},
		StartHeight: 1,
	}))

	require.NoError(t, k.SetHand(wctx, tableID, handID, &dealertypes.DealerHand{
		EpochId:  epochID,
		PkHand:   pkHand.Bytes(),
		DeckSize: 52,
		Deck: []dealertypes.DealerCiphertext{
			{C1: ct.C1.Bytes(), C2: ct.C2.Bytes()},
		},
		Finalized: true,
	}))

	require.NoError(t, pokerKeeper.SetTable(wctx, &pokertypes.Table{
		Id: tableID,
		Hand: &pokertypes.Hand{
			HandId: handID,
			Phase:  pokertypes.HandPhase_HAND_PHASE_AWAIT_FLOP,
			Dealer: &pokertypes.DealerMeta{
				EpochId:        epochID,
				DeckSize:       52,
				DeckFinalized:  true,
				RevealPos:      0,
				RevealDeadline: ctx.BlockTime().Unix() + 100,
			},
		},
	}))

	return revealFixture{valoper: valoper, skHand: skHand, c1: ct.C1, cardID: cardID}
}

func TestSubmitPubShareAndFinalizeReveal_RecoversCard(t *testing.T) {
	sdkCtx, k, ms, pokerKeeper, _ := newDealerRevealHarness(t, time.Unix(200, 0).UTC())
	ctx := sdk.WrapSDKContext(sdkCtx)

	fx := setupAwaitingReveal(t, sdkCtx, k, pokerKeeper)

	// The lone committee member publishes its decryption share with a
	// Chaum-Pedersen equality proof against its per-hand public share.
	share := ocpcrypto.MulPoint(fx.c1, fx.skHand)
	yHand := ocpcrypto.MulBase(fx.skHand)
	proof, err := ocpcrypto.ChaumPedersenProve(yHand, fx.c1, share, fx.skHand, ocpcrypto.ScalarFromUint64(3))
	require.NoError(t, err)

	_, err = ms.SubmitPubShare(ctx, &dealertypes.MsgSubmitPubShare{
		Validator:  fx.valoper,
		TableId:    1,
		HandId:     1,
		Pos:        0,
		PubShare:   share.Bytes(),
		ProofShare: ocpcrypto.EncodeChaumPedersenProof(proof),
	})
	require.NoError(t, err)

	caller := sdk.AccAddress(bytes.Repeat([]byte{0x42}, 20)).String()
	_, err = ms.FinalizeReveal(ctx, &dealertypes.MsgFinalizeReveal{
		Caller:  caller,
		TableId: 1,
		HandId:  1,
		Pos:     0,
	})
	require.NoError(t, err)

	dh, err := k.GetHand(ctx, 1, 1)
	require.NoError(t, err)
	require.NotNil(t, dh)
	require.Len(t, dh.Reveals, 1)
	require.Equal(t, uint32(0), dh.Reveals[0].Pos)
	require.Equal(t, fx.cardID, dh.Reveals[0].CardId, "Lagrange recovery must yield the encrypted card")
}

func TestSubmitPubShare_RejectsForgedShare(t *testing.T) {
	sdkCtx, k, ms, pokerKeeper, _ := newDealerRevealHarness(t, time.Unix(200, 0).UTC())
	ctx := sdk.WrapSDKContext(sdkCtx)

	fx := setupAwaitingReveal(t, sdkCtx, k, pokerKeeper)

	// Share computed with the wrong secret; the proof cannot bind it to the
	// committed public share.
	wrongSecret := ocpcrypto.ScalarFromUint64(8)
	forged := ocpcrypto.MulPoint(fx.c1, wrongSecret)
	yForged := ocpcrypto.MulBase(wrongSecret)
	proof, err := ocpcrypto.ChaumPedersenProve(yForged, fx.c1, forged, wrongSecret, ocpcrypto.ScalarFromUint64(3))
	require.NoError(t, err)

	_, err = ms.SubmitPubShare(ctx, &dealertypes.MsgSubmitPubShare{
		Validator:  fx.valoper,
		TableId:    1,
		HandId:     1,
		Pos:        0,
		PubShare:   forged.Bytes(),
		ProofShare: ocpcrypto.EncodeChaumPedersenProof(proof),
	})
	require.Error(t, err)
	require.ErrorContains(t, err, "invalid pub share proof")
}

func TestTimeout_MissingRevealSharesSlashAndAbort(t *testing.T) {
	sdkCtx, k, ms, pokerKeeper, slashing := newDealerRevealHarness(t, time.Unix(500, 0).UTC())
	ctx := sdk.WrapSDKContext(sdkCtx)

	val1 := sdk.ValAddress(bytes.Repeat([]byte{0x51}, 20)).String()
	val2 := sdk.ValAddress(bytes.Repeat([]byte{0x52}, 20)).String()
	val3 := sdk.ValAddress(bytes.Repeat([]byte{0x53}, 20)).String()

	require.NoError(t, k.SetEpoch(ctx, &dealertypes.DealerEpoch{
		EpochId:   9,
		Threshold: 2,
		Members: []dealertypes.DealerMember{
			{Validator: val1, Index: 1, Power: 10},
			{Validator: val2, Index: 2, Power: 10},
			{Validator: val3, Index: 3, Power: 10},
		},
		StartHeight: 1,
	}))

	deck := make([]dealertypes.DealerCiphertext, 19)
	for i := range deck {
		deck[i] = dealertypes.DealerCiphertext{
			C1: ocpcrypto.PointZero().Bytes(),
			C2: pointForCard(i).Bytes(),
		}
	}
	require.NoError(t, k.SetHand(ctx, 1, 1, &dealertypes.DealerHand{
		EpochId:   9,
		DeckSize:  52,
		Deck:      deck,
		Finalized: true,
		// Only val1 delivered its flop share before the deadline.
		PubShares: []dealertypes.DealerPubShare{
			{Pos: 18, Validator: val1, Index: 1, Share: ocpcrypto.PointZero().Bytes(), Proof: []byte{1}},
		},
	}))

	require.NoError(t, pokerKeeper.SetTable(ctx, &pokertypes.Table{
		Id: 1,
		Hand: &pokertypes.Hand{
			HandId: 1,
			Phase:  pokertypes.HandPhase_HAND_PHASE_AWAIT_FLOP,
			Dealer: &pokertypes.DealerMeta{
				EpochId:        9,
				DeckFinalized:  true,
				RevealPos:      18,
				RevealDeadline: 400, // already passed at block time 500
			},
		},
	}))

	caller := sdk.AccAddress(bytes.Repeat([]byte{0x54}, 20)).String()
	_, err := ms.Timeout(ctx, &dealertypes.MsgTimeout{Caller: caller, TableId: 1, HandId: 1})
	require.NoError(t, err)

	// The two absent validators were slashed...
	epoch, err := k.GetEpoch(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{val2, val3}, epoch.Slashed)
	require.Equal(t, 2, slashing.slashCalls)

	// ...and with only one qualified member left (< threshold 2) the hand
	// cannot recover: the dealer-side record is dropped and poker refunds.
	dh, err := k.GetHand(ctx, 1, 1)
	require.NoError(t, err)
	require.Nil(t, dh, "dealer hand record must be deleted on abort")
}
