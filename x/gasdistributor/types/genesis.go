package types

import (
	ownabletypes "github.com/baron-chain/gasdistd/x/ownable/types"
)

// GenesisState is the exported state of a gas distributor instance.
type GenesisState struct {
	Ownership ownabletypes.Ownership `json:"ownership"`
	Params    Params                 `json:"params"`
	Policies  []Policy               `json:"policies"`
}

// DefaultGenesisState returns an empty table owned by owner.
func DefaultGenesisState(owner string) GenesisState {
	return GenesisState{
		Ownership: ownabletypes.Ownership{Owner: &owner},
		Params:    DefaultParams(),
		Policies:  []Policy{},
	}
}
