package dealer

import (
	"encoding/json"
	"fmt"

	gwruntime "github.com/grpc-ecosystem/grpc-gateway/runtime"

	"cosmossdk.io/core/appmodule"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/module"

	"onchainpoker-chain/x/dealer/keeper"
	"onchainpoker-chain/x/dealer/types"
)

// ConsensusVersion defines the current x/dealer module consensus version.
const ConsensusVersion = 1

var (
	_ module.AppModuleBasic = AppModule{}
	_ module.HasServices    = AppModule{}
	_ module.HasGenesis     = AppModule{}

	_ appmodule.AppModule = AppModule{}
)

// AppModuleBasic defines the basic application module used by x/dealer.
type AppModuleBasic struct{}

func (AppModuleBasic) Name() string { return types.ModuleName }

func (AppModuleBasic) RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	types.RegisterLegacyAminoCodec(cdc)
}

func (AppModuleBasic) RegisterInterfaces(registry codectypes.InterfaceRegistry) {
	types.RegisterInterfaces(registry)
}

// RegisterGRPCGatewayRoutes registers the gRPC Gateway routes for the dealer
// module. Dealer artifacts move over gRPC/autocli directly, so no REST
// routes are exposed.
func (AppModuleBasic) RegisterGRPCGatewayRoutes(_ client.Context, _ *gwruntime.ServeMux) {}

func (AppModuleBasic) DefaultGenesis(cdc codec.JSONCodec) json.RawMessage {
	return cdc.MustMarshalJSON(types.DefaultGenesisState())
}

func (AppModuleBasic) ValidateGenesis(cdc codec.JSONCodec, _ client.TxEncodingConfig, bz json.RawMessage) error {
	var gs types.GenesisState
	if err := cdc.UnmarshalJSON(bz, &gs); err != nil {
		return err
	}
	return types.ValidateGenesis(&gs)
}

// AppModule implements an application module for x/dealer.
type AppModule struct {
	AppModuleBasic

	cdc    codec.Codec
	keeper keeper.Keeper
}

func NewAppModule(cdc codec.Codec, k keeper.Keeper) AppModule {
	return AppModule{AppModuleBasic: AppModuleBasic{}, cdc: cdc, keeper: k}
}

func (AppModule) IsOnePerModuleType() {}
func (AppModule) IsAppModule()        {}

func (am AppModule) RegisterServices(cfg module.Configurator) {
	types.RegisterMsgServer(cfg.MsgServer(), keeper.NewMsgServerImpl(am.keeper))
	types.RegisterQueryServer(cfg.QueryServer(), keeper.NewQueryServerImpl(am.keeper))
}

func (am AppModule) InitGenesis(ctx sdk.Context, cdc codec.JSONCodec, data json.RawMessage) {
	gctx := sdk.WrapSDKContext(ctx)

	var gs types.GenesisState
	if len(data) == 0 {
		gs = *types.DefaultGenesisState()
	} else {
		cdc.MustUnmarshalJSON(data, &gs)
	}

	if err := types.ValidateGenesis(&gs); err != nil {
		panic(fmt.Errorf("x/dealer invalid genesis: %w", err))
	}

	if err := am.keeper.SetParams(gctx, gs.Params); err != nil {
		panic(err)
	}
	if err := am.keeper.SetNextEpochID(gctx, gs.NextEpochId); err != nil {
		panic(err)
	}
	if err := am.keeper.SetEpoch(gctx, gs.Epoch); err != nil {
		panic(err)
	}
	if err := am.keeper.SetDKG(gctx, gs.Dkg); err != nil {
		panic(err)
	}
}

func (am AppModule) ExportGenesis(ctx sdk.Context, cdc codec.JSONCodec) json.RawMessage {
	gctx := sdk.WrapSDKContext(ctx)

	next, err := am.keeper.GetNextEpochID(gctx)
	if err != nil {
		panic(err)
	}
	epoch, err := am.keeper.GetEpoch(gctx)
	if err != nil {
		panic(err)
	}
	dkg, err := am.keeper.GetDKG(gctx)
	if err != nil {
		panic(err)
	}
	params, err := am.keeper.GetParams(gctx)
	if err != nil {
		panic(err)
	}

	gs := types.GenesisState{
		NextEpochId: next,
		Epoch:       epoch,
		Dkg:         dkg,
		Params:      params,
	}
	return cdc.MustMarshalJSON(&gs)
}

func (AppModule) ConsensusVersion() uint64 { return ConsensusVersion }

// ---- App Wiring Setup ----
//
// x/dealer depends on x/poker's keeper (the PokerStateSink capability
// interface from types.PokerKeeper), so it is constructed by hand in
// app.go after the poker keeper exists, and registered the way the IBC
// modules are (NewKeeper + NewAppModule + RegisterModules) rather than
// through depinject's appmodule.Register: this build does not run
// protoc, so there is no generated module/v1 config proto for a
// first-party depinject-managed module.
