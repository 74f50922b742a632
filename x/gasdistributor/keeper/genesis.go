package keeper

import (
	"github.com/baron-chain/gasdistd/x/gasdistributor/types"
)

// InitGenesis loads gs into an empty store.
func (k Keeper) InitGenesis(gs types.GenesisState) error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	if err := types.ValidatePolicies(gs.Policies, k.validator); err != nil {
		return err
	}
	if err := k.ownable.Import(gs.Ownership); err != nil {
		return err
	}
	if err := k.setContractVersion(); err != nil {
		return err
	}
	if err := k.SetParams(gs.Params); err != nil {
		return err
	}
	return k.writePolicies(nil, gs.Policies)
}

func (k Keeper) ExportGenesis() (types.GenesisState, error) {
	ownership, err := k.ownable.GetOwnership()
	if err != nil {
		return types.GenesisState{}, err
	}
	params, err := k.GetParams()
	if err != nil {
		return types.GenesisState{}, err
	}
	policies, err := k.GetPolicies()
	if err != nil {
		return types.GenesisState{}, err
	}
	return types.GenesisState{Ownership: ownership, Params: params, Policies: policies}, nil
}
