package app

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Balance returns the ledger balance of address in denom.
func (app *GasDistApp) Balance(ctx context.Context, address, denom string) (math.Uint, error) {
	app.mtx.Lock()
	defer app.mtx.Unlock()
	return app.LedgerKeeper.Balance(ctx, address, denom)
}

// AllBalances returns every coin held by address.
func (app *GasDistApp) AllBalances(address string) (sdk.Coins, error) {
	app.mtx.Lock()
	defer app.mtx.Unlock()
	return app.LedgerKeeper.AllBalances(address)
}

// Fund credits coins to address outside of any contract call. It backs
// faucets in tests and local networks.
func (app *GasDistApp) Fund(address string, coins sdk.Coins) error {
	app.mtx.Lock()
	defer app.mtx.Unlock()
	return app.LedgerKeeper.Fund(address, coins)
}
