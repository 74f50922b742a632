package types

import (
	errorsmod "cosmossdk.io/errors"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

var (
	ErrInsufficientFunds = errorsmod.Register(ModuleName, 2, "contract doesn't have enough funds")
	ErrUnknownTarget     = errorsmod.Register(ModuleName, 3, "target balance doesn't exist")
	ErrInvalidPolicy     = errorsmod.Register(ModuleName, 4, "invalid target balance policy")

	// ErrUnauthorized is returned by every owner gated operation.
	ErrUnauthorized = sdkerrors.ErrUnauthorized
)
