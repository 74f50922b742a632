package app

import (
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	lazystakingtypes "github.com/baron-chain/gasdistd/x/lazystaking/types"
)

// ExportedApp is the state of the app at Height, ready to seed a new chain.
type ExportedApp struct {
	AppState json.RawMessage `json:"app_state"`
	Height   uint64          `json:"height"`
	ChainID  string          `json:"chain_id"`
}

// ExportAppState dumps every module. The export can be fed back into
// InitChain of a fresh database.
func (app *GasDistApp) ExportAppState() (ExportedApp, error) {
	app.mtx.Lock()
	defer app.mtx.Unlock()

	genState, err := app.exportGenesis()
	if err != nil {
		return ExportedApp{}, err
	}
	appState, err := json.MarshalIndent(genState, "", "  ")
	if err != nil {
		return ExportedApp{}, errorsmod.Wrap(sdkerrors.ErrJSONMarshal, err.Error())
	}
	return ExportedApp{
		AppState: appState,
		Height:   app.block.Height,
		ChainID:  app.block.ChainID,
	}, nil
}

func (app *GasDistApp) exportGenesis() (GenesisState, error) {
	var (
		gs  GenesisState
		err error
	)
	gs.GenesisTime = app.block.Time
	gs.InitialHeight = app.block.Height
	if gs.Ledger, err = app.LedgerKeeper.ExportGenesis(); err != nil {
		return gs, errorsmod.Wrap(err, "ledger")
	}
	if gs.GasDistributor, err = app.GasDistributorKeeper.ExportGenesis(); err != nil {
		return gs, errorsmod.Wrap(err, "gas distributor")
	}
	if _, verr := app.LazyStakingKeeper.GetContractVersion(); verr == nil {
		var ls lazystakingtypes.GenesisState
		if ls, err = app.LazyStakingKeeper.ExportGenesis(); err != nil {
			return gs, errorsmod.Wrap(err, "lazy staking")
		}
		gs.LazyStaking = &ls
	}
	return gs, nil
}
