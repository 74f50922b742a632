package keeper

import (
	"context"
	"errors"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"cosmossdk.io/math"

	contracttypes "github.com/baron-chain/gasdistd/x/contract/types"
	"github.com/baron-chain/gasdistd/x/gasdistributor/types"
)

// Distribute runs one round against the current policy table and pool
// balance. The returned response carries one bank send per transfer; the
// host executes them as one batch.
func (k Keeper) Distribute(ctx context.Context, env contracttypes.Env) (*contracttypes.Response, types.Round, error) {
	params, err := k.GetParams()
	if err != nil {
		return nil, types.Round{}, err
	}
	policies, err := k.GetPolicies()
	if err != nil {
		return nil, types.Round{}, err
	}
	pool, err := k.oracle.Balance(ctx, env.Contract.Address, params.Denom)
	if err != nil {
		k.metrics.observeFailure(roundResultError)
		return nil, types.Round{}, err
	}

	balanceOf := func(recipient string) (math.Uint, error) {
		return k.oracle.Balance(ctx, recipient, params.Denom)
	}
	round, err := ComputeRound(policies, balanceOf, pool, params.Mode)
	if err != nil {
		if errors.Is(err, types.ErrInsufficientFunds) {
			k.metrics.observeFailure(roundResultInsufficientFunds)
		} else {
			k.metrics.observeFailure(roundResultError)
		}
		k.Logger().Error("distribution round failed", "pool", pool, "err", err)
		return nil, types.Round{}, err
	}

	attrs := make([]sdk.Attribute, 0, len(round.Transfers))
	msgs := make([]contracttypes.CosmosMsg, 0, len(round.Transfers))
	for _, t := range round.Transfers {
		msgs = append(msgs, contracttypes.NewSendMsg(env.Contract.Address, t.Recipient, params.Denom, t.Amount))
		attrs = append(attrs, sdk.NewAttribute(t.Recipient, t.Amount.String()))
	}
	for _, o := range round.Observations {
		k.Logger().Info("top-up", "recipient", o.Recipient, "current", o.Current, "amount", o.Amount)
	}
	for _, s := range round.Skipped {
		k.Logger().Info("skipped", "recipient", s.Recipient, "amount", s.Amount, "reason", "pool exhausted")
	}
	k.metrics.observeRound(len(round.Transfers), round.Total)
	k.Logger().Debug("distribution round", "height", env.Block.Height, "transfers", len(round.Transfers), "total", round.Total, "pool", pool)

	resp := contracttypes.NewResponse(types.ContractName, "execute-distribute", attrs...).AddMessages(msgs...)
	return resp, round, nil
}
