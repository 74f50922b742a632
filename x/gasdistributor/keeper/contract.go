package keeper

import (
	"context"
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	contracttypes "github.com/baron-chain/gasdistd/x/contract/types"
	"github.com/baron-chain/gasdistd/x/gasdistributor/types"
)

// Instantiate initializes a fresh contract instance.
func (k Keeper) Instantiate(_ context.Context, env contracttypes.Env, info contracttypes.MessageInfo, msg types.InstantiateMsg) (*contracttypes.Response, error) {
	if _, err := k.GetContractVersion(); err == nil {
		return nil, errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "contract already instantiated")
	}

	owner := info.Sender
	if msg.Owner != nil {
		owner = *msg.Owner
	}
	if err := k.validator.Validate(owner); err != nil {
		return nil, err
	}
	params := types.DefaultParams()
	if msg.Denom != "" {
		params.Denom = msg.Denom
	}
	if msg.Mode != "" {
		params.Mode = msg.Mode
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := types.ValidatePolicies(msg.InitialPolicies, k.validator); err != nil {
		return nil, err
	}

	if err := k.setContractVersion(); err != nil {
		return nil, err
	}
	if _, err := k.ownable.Initialize(owner); err != nil {
		return nil, err
	}
	if err := k.SetParams(params); err != nil {
		return nil, err
	}
	if err := k.writePolicies(nil, msg.InitialPolicies); err != nil {
		return nil, err
	}

	attrs := []sdk.Attribute{
		sdk.NewAttribute("owner", owner),
		sdk.NewAttribute("denom", params.Denom),
		sdk.NewAttribute("mode", string(params.Mode)),
	}
	for _, p := range msg.InitialPolicies {
		attrs = append(attrs, sdk.NewAttribute(attributeAddPolicy, p.Recipient))
	}
	k.Logger().Info("instantiated", "contract", env.Contract.Address, "owner", owner, "policies", len(msg.InitialPolicies))
	return contracttypes.NewResponse(types.ContractName, "instantiate", attrs...), nil
}

// Execute dispatches msg to its handler.
func (k Keeper) Execute(ctx context.Context, env contracttypes.Env, info contracttypes.MessageInfo, msg types.ExecuteMsg) (*contracttypes.Response, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	switch {
	case msg.Distribute != nil:
		resp, _, err := k.Distribute(ctx, env)
		return resp, err
	case msg.SetPolicies != nil:
		attrs, err := k.SetPolicies(info.Sender, *msg.SetPolicies)
		if err != nil {
			return nil, err
		}
		return contracttypes.NewResponse(types.ContractName, "execute-set-policies", attrs...), nil
	case msg.WithdrawPool != nil:
		return k.WithdrawPool(ctx, env, info, *msg.WithdrawPool)
	case msg.UpdateOwnership != nil:
		if _, err := k.ownable.UpdateOwnership(env.Block, info.Sender, *msg.UpdateOwnership); err != nil {
			return nil, err
		}
		return contracttypes.NewResponse(types.ContractName, "execute-update-ownership"), nil
	default:
		return nil, errorsmod.Wrap(sdkerrors.ErrUnknownRequest, "unknown execute variant")
	}
}

// Query answers msg with a JSON document.
func (k Keeper) Query(_ context.Context, _ contracttypes.Env, msg types.QueryMsg) ([]byte, error) {
	var (
		res interface{}
		err error
	)
	switch {
	case msg.Policies != nil:
		res, err = k.GetPolicies()
	case msg.Policy != nil:
		res, err = k.GetPolicy(msg.Policy.Recipient)
	case msg.Owner != nil:
		ownership, qerr := k.ownable.GetOwnership()
		res, err = ownership.OwnerString(), qerr
	case msg.Ownership != nil:
		res, err = k.ownable.GetOwnership()
	case msg.Params != nil:
		res, err = k.GetParams()
	case msg.ContractVersion != nil:
		res, err = k.GetContractVersion()
	default:
		return nil, errorsmod.Wrap(sdkerrors.ErrUnknownRequest, "unknown query variant")
	}
	if err != nil {
		return nil, err
	}
	bz, err := json.Marshal(res)
	if err != nil {
		return nil, errorsmod.Wrap(sdkerrors.ErrJSONMarshal, err.Error())
	}
	return bz, nil
}
