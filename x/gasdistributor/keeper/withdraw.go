package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	contracttypes "github.com/baron-chain/gasdistd/x/contract/types"
	"github.com/baron-chain/gasdistd/x/gasdistributor/types"
)

// WithdrawPool sends pool funds to the owner or a recipient of their choice.
func (k Keeper) WithdrawPool(ctx context.Context, env contracttypes.Env, info contracttypes.MessageInfo, msg types.WithdrawPoolMsg) (*contracttypes.Response, error) {
	if err := k.ownable.AssertOwner(info.Sender); err != nil {
		return nil, err
	}
	params, err := k.GetParams()
	if err != nil {
		return nil, err
	}
	pool, err := k.oracle.Balance(ctx, env.Contract.Address, params.Denom)
	if err != nil {
		return nil, err
	}

	amount := pool
	if msg.Amount != nil {
		amount = *msg.Amount
	}
	if amount.GT(pool) {
		return nil, errorsmod.Wrapf(types.ErrInsufficientFunds, "requested %s, pool holds %s", amount, pool)
	}
	if amount.IsZero() {
		return nil, errorsmod.Wrap(types.ErrInsufficientFunds, "nothing to withdraw")
	}

	recipient := info.Sender
	if msg.Recipient != nil {
		recipient = *msg.Recipient
		if err := k.validator.Validate(recipient); err != nil {
			return nil, err
		}
	}

	k.Logger().Info("pool withdrawn", "recipient", recipient, "amount", amount)
	return contracttypes.NewResponse(types.ContractName, "execute-withdraw-pool",
		sdk.NewAttribute("recipient", recipient),
		sdk.NewAttribute("amount", amount.String()),
	).AddMessages(contracttypes.NewSendMsg(env.Contract.Address, recipient, params.Denom, amount)), nil
}
