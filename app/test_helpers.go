package app

import (
	"bytes"
	"testing"
	"time"

	dbm "github.com/cometbft/cometbft-db"
	"github.com/cometbft/cometbft/libs/log"
	servertypes "github.com/cosmos/cosmos-sdk/server/types"
	simtestutil "github.com/cosmos/cosmos-sdk/testutil/sims"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	contracttypes "github.com/baron-chain/gasdistd/x/contract/types"
	gasdisttypes "github.com/baron-chain/gasdistd/x/gasdistributor/types"
)

// SetupOptions configures a test app.
type SetupOptions struct {
	Logger  log.Logger
	DB      dbm.DB
	AppOpts servertypes.AppOptions
	ChainID string
	// GenesisModifier edits the default genesis before InitChain.
	GenesisModifier func(GenesisState) GenesisState
}

// TestAddr returns a deterministic account address.
func TestAddr(i byte) string {
	return contracttypes.MustBech32(Bech32Prefix, bytes.Repeat([]byte{i}, 20))
}

// TestOwner owns the gas distributor of Setup.
var TestOwner = TestAddr(0xee)

// Setup returns an initialized app at height 1 with a default genesis owned
// by TestOwner.
func Setup(t testing.TB) *GasDistApp {
	t.Helper()
	return SetupWithOptions(t, SetupOptions{})
}

func SetupWithOptions(t testing.TB, options SetupOptions) *GasDistApp {
	t.Helper()
	if options.Logger == nil {
		options.Logger = log.NewNopLogger()
	}
	if options.DB == nil {
		options.DB = dbm.NewMemDB()
	}
	if options.AppOpts == nil {
		options.AppOpts = simtestutil.AppOptionsMap{}
	}
	if options.ChainID == "" {
		options.ChainID = "testing"
	}

	app, err := NewGasDistApp(options.Logger, options.DB, options.AppOpts)
	require.NoError(t, err)

	genesis := NewDefaultGenesisState(TestOwner)
	if options.GenesisModifier != nil {
		genesis = options.GenesisModifier(genesis)
	}
	require.NoError(t, app.InitChain(options.ChainID, genesis))
	app.BeginBlock(time.Now())
	return app
}

// WithPolicies adds policies to the gas distributor genesis.
func WithPolicies(policies ...gasdisttypes.Policy) func(GenesisState) GenesisState {
	return func(g GenesisState) GenesisState {
		g.GasDistributor.Policies = append(g.GasDistributor.Policies, policies...)
		return g
	}
}

// FundPool credits the gas distributor contract.
func FundPool(t testing.TB, app *GasDistApp, amount int64) {
	t.Helper()
	require.NoError(t, app.Fund(GasDistributorAddress(), sdk.NewCoins(sdk.NewInt64Coin(gasdisttypes.DefaultDenom, amount))))
}
