package types

import (
	errorsmod "cosmossdk.io/errors"
)

// ModuleName is the codespace and store prefix of the host ledger.
const ModuleName = "ledger"

var (
	ErrInsufficientFunds = errorsmod.Register(ModuleName, 2, "insufficient funds")
	ErrInvalidMsg        = errorsmod.Register(ModuleName, 3, "invalid host message")
)
