package types

import (
	errorsmod "cosmossdk.io/errors"
)

// ModuleName is the codespace of ownership errors.
const ModuleName = "ownable"

var (
	ErrTransferNotFound = errorsmod.Register(ModuleName, 2, "no pending ownership transfer")
	ErrTransferExpired  = errorsmod.Register(ModuleName, 3, "pending ownership transfer has expired")
	ErrInvalidExpiry    = errorsmod.Register(ModuleName, 4, "invalid expiration")
)
