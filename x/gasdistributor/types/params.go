package types

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	contracttypes "github.com/baron-chain/gasdistd/x/contract/types"
)

// DistributionMode selects how a round behaves when the pool cannot fund
// every recipient below its threshold.
type DistributionMode string

const (
	// ModeAllOrNothing fails the whole round when the sum of all top-ups
	// exceeds the pool.
	ModeAllOrNothing DistributionMode = "all_or_nothing"
	// ModeBestEffort funds recipients in table order and skips those the
	// remaining pool cannot cover.
	ModeBestEffort DistributionMode = "best_effort"

	DefaultDenom = "untrn"
)

// Params are fixed at instantiation.
type Params struct {
	Denom string           `json:"denom"`
	Mode  DistributionMode `json:"mode"`
}

func DefaultParams() Params {
	return Params{Denom: DefaultDenom, Mode: ModeAllOrNothing}
}

func (p Params) Validate() error {
	if err := sdk.ValidateDenom(p.Denom); err != nil {
		return errorsmod.Wrap(sdkerrors.ErrInvalidRequest, err.Error())
	}
	return p.Mode.Validate()
}

func (m DistributionMode) Validate() error {
	switch m {
	case ModeAllOrNothing, ModeBestEffort:
		return nil
	default:
		return errorsmod.Wrapf(sdkerrors.ErrInvalidRequest, "unknown distribution mode %q", string(m))
	}
}

// ParseDistributionMode parses a mode name, accepting the empty string as
// the default mode.
func ParseDistributionMode(s string) (DistributionMode, error) {
	if s == "" {
		return ModeAllOrNothing, nil
	}
	m := DistributionMode(s)
	if err := m.Validate(); err != nil {
		return "", fmt.Errorf("parse distribution mode: %w", err)
	}
	return m, nil
}

type ContractVersionInfo = contracttypes.ContractVersion
