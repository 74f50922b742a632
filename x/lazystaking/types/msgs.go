package types

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	ownabletypes "github.com/baron-chain/gasdistd/x/ownable/types"
)

// InstantiateMsg creates the contract and its factory denom.
type InstantiateMsg struct {
	Owner    *string `json:"owner,omitempty"`
	Subdenom string  `json:"subdenom"`
}

type ExecuteMsg struct {
	UpdateOwnership *ownabletypes.Action `json:"update_ownership,omitempty"`
	Mint            *MintMsg             `json:"mint,omitempty"`
}

// MintMsg mints Amount of the contract denom to Recipient, defaulting to the
// sender.
type MintMsg struct {
	Amount    math.Uint `json:"amount"`
	Recipient *string   `json:"recipient,omitempty"`
}

func (m ExecuteMsg) ValidateBasic() error {
	switch {
	case m.UpdateOwnership != nil && m.Mint == nil:
		return nil
	case m.Mint != nil && m.UpdateOwnership == nil:
		if m.Mint.Amount.IsNil() || m.Mint.Amount.IsZero() {
			return errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "mint amount must be positive")
		}
		return nil
	default:
		return errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "expected exactly one execute variant")
	}
}

type QueryMsg struct {
	Ownership *struct{} `json:"ownership,omitempty"`
	Owner     *struct{} `json:"owner,omitempty"`
	Denom     *struct{} `json:"denom,omitempty"`
}
