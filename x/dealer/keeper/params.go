package keeper

import (
	"context"

	"onchainpoker-chain/x/dealer/types"
)

// Authority is the account allowed to replace module params (governance).
func (k Keeper) Authority() string {
	return k.authority
}

func (k Keeper) GetParams(ctx context.Context) (types.Params, error) {
	store := k.storeService.OpenKVStore(ctx)
	bz, err := store.Get(types.ParamsKey)
	if err != nil {
		return types.Params{}, err
	}
	if bz == nil {
		return types.DefaultParams(), nil
	}
	var p types.Params
	if err := k.cdc.Unmarshal(bz, &p); err != nil {
		return types.Params{}, err
	}
	return p, nil
}

func (k Keeper) SetParams(ctx context.Context, p types.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	store := k.storeService.OpenKVStore(ctx)
	bz, err := k.cdc.Marshal(&p)
	if err != nil {
		return err
	}
	return store.Set(types.ParamsKey, bz)
}

func (m msgServer) UpdateParams(ctx context.Context, req *types.MsgUpdateParams) (*types.MsgUpdateParamsResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidRequest.Wrap("nil request")
	}
	if req.Authority != m.authority {
		return nil, types.ErrUnauthorized.Wrapf("expected %s, got %s", m.authority, req.Authority)
	}
	if err := m.SetParams(ctx, req.Params); err != nil {
		return nil, types.ErrInvalidRequest.Wrap(err.Error())
	}
	return &types.MsgUpdateParamsResponse{}, nil
}
