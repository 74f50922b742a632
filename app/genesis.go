package app

import (
	"time"

	gasdisttypes "github.com/baron-chain/gasdistd/x/gasdistributor/types"
	lazystakingtypes "github.com/baron-chain/gasdistd/x/lazystaking/types"
	ledgertypes "github.com/baron-chain/gasdistd/x/ledger/types"
)

// GenesisState is the initial state of the app, one section per module.
type GenesisState struct {
	GenesisTime    time.Time                      `json:"genesis_time"`
	InitialHeight  uint64                         `json:"initial_height"`
	Ledger         ledgertypes.GenesisState       `json:"ledger"`
	GasDistributor gasdisttypes.GenesisState      `json:"gas_distributor"`
	LazyStaking    *lazystakingtypes.GenesisState `json:"lazy_staking,omitempty"`
}

// NewDefaultGenesisState returns an empty ledger and an empty policy table
// owned by owner.
func NewDefaultGenesisState(owner string) GenesisState {
	return GenesisState{
		GenesisTime:    time.Now().UTC().Truncate(time.Second),
		Ledger:         ledgertypes.DefaultGenesisState(),
		GasDistributor: gasdisttypes.DefaultGenesisState(owner),
	}
}

func (g GenesisState) Validate() error {
	if err := g.Ledger.Validate(); err != nil {
		return err
	}
	if err := g.GasDistributor.Params.Validate(); err != nil {
		return err
	}
	return nil
}
