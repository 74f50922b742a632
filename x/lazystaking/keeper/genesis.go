package keeper

import (
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	contracttypes "github.com/baron-chain/gasdistd/x/contract/types"
	"github.com/baron-chain/gasdistd/x/lazystaking/types"
	ledgertypes "github.com/baron-chain/gasdistd/x/ledger/types"
)

// InitGenesis loads gs for the contract at address.
func (k Keeper) InitGenesis(address string, gs types.GenesisState) error {
	if err := sdk.ValidateDenom(gs.Denom); err != nil {
		return errorsmod.Wrap(sdkerrors.ErrInvalidRequest, err.Error())
	}
	if !ledgertypes.IsFactoryDenomOf(gs.Denom, address) {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidRequest, "denom %s is not owned by %s", gs.Denom, address)
	}
	if err := k.ownable.Import(gs.Ownership); err != nil {
		return err
	}
	if err := k.setContractVersion(); err != nil {
		return err
	}
	return k.store.Set(types.DenomKey, []byte(gs.Denom))
}

func (k Keeper) ExportGenesis() (types.GenesisState, error) {
	ownership, err := k.ownable.GetOwnership()
	if err != nil {
		return types.GenesisState{}, err
	}
	denom, err := k.Denom()
	if err != nil {
		return types.GenesisState{}, err
	}
	return types.GenesisState{Ownership: ownership, Denom: denom}, nil
}

// GetContractVersion returns the recorded version or ErrNotFound.
func (k Keeper) GetContractVersion() (contracttypes.ContractVersion, error) {
	var info contracttypes.ContractVersion
	bz, err := k.store.Get(types.ContractVersionKey)
	if err != nil {
		return info, err
	}
	if bz == nil {
		return info, errorsmod.Wrap(sdkerrors.ErrNotFound, "contract version not set")
	}
	if err := json.Unmarshal(bz, &info); err != nil {
		return info, errorsmod.Wrap(sdkerrors.ErrJSONUnmarshal, err.Error())
	}
	return info, nil
}
