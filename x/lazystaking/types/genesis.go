package types

import (
	ownabletypes "github.com/baron-chain/gasdistd/x/ownable/types"
)

type GenesisState struct {
	Ownership ownabletypes.Ownership `json:"ownership"`
	Denom     string                 `json:"denom"`
}
