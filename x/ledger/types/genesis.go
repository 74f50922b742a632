package types

import (
	"sort"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// Balance is the holding of one address.
type Balance struct {
	Address string    `json:"address"`
	Coins   sdk.Coins `json:"coins"`
}

// GenesisState is the exported state of the ledger.
type GenesisState struct {
	Balances []Balance `json:"balances"`
}

func DefaultGenesisState() GenesisState {
	return GenesisState{Balances: []Balance{}}
}

// Validate checks coins and rejects duplicate addresses.
func (g GenesisState) Validate() error {
	seen := make(map[string]struct{}, len(g.Balances))
	for _, b := range g.Balances {
		if _, ok := seen[b.Address]; ok {
			return errorsmod.Wrapf(sdkerrors.ErrInvalidRequest, "duplicate balance for %s", b.Address)
		}
		seen[b.Address] = struct{}{}
		if err := b.Coins.Validate(); err != nil {
			return errorsmod.Wrapf(sdkerrors.ErrInvalidCoins, "%s: %s", b.Address, err)
		}
	}
	return nil
}

// SortBalances orders balances by address.
func SortBalances(balances []Balance) {
	sort.Slice(balances, func(i, j int) bool { return balances[i].Address < balances[j].Address })
}
