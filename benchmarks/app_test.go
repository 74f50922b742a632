package benchmarks

import (
	"os"
	"testing"

	"cosmossdk.io/math"
	dbm "github.com/cometbft/cometbft-db"
	"github.com/cometbft/cometbft/libs/log"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	simtestutil "github.com/cosmos/cosmos-sdk/testutil/sims"

	"github.com/baron-chain/gasdistd/app"
	contracttypes "github.com/baron-chain/gasdistd/x/contract/types"
	gasdisttypes "github.com/baron-chain/gasdistd/x/gasdistributor/types"
)

const (
	defaultPoolBalance   = 1_000_000_000_000_000
	defaultTargetBalance = 1_000_000
	defaultThreshold     = 500_000
)

// AppInfo is an initialized app with one policy per recipient.
type AppInfo struct {
	App        *app.GasDistApp
	Recipients []string
	Denom      string
}

func newRecipient() string {
	return contracttypes.MustBech32(app.Bech32Prefix, secp256k1.GenPrivKey().PubKey().Address())
}

func buildPolicies(recipients []string) []gasdisttypes.Policy {
	policies := make([]gasdisttypes.Policy, len(recipients))
	for i, r := range recipients {
		policies[i] = gasdisttypes.NewPolicy(r, math.NewUint(defaultTargetBalance)).
			WithThreshold(math.NewUint(defaultThreshold))
	}
	return policies
}

// InitializeGasDistApp returns an app whose recipients all sit at their
// target balance, so rounds only top up what the benchmark drains.
func InitializeGasDistApp(b testing.TB, db dbm.DB, numPolicies int) AppInfo {
	recipients := make([]string, numPolicies)
	for i := range recipients {
		recipients[i] = newRecipient()
	}

	gapp := app.SetupWithOptions(b, app.SetupOptions{
		Logger:          log.NewTMLogger(log.NewSyncWriter(os.Stdout)).With("module", "bench"),
		DB:              db,
		AppOpts:         simtestutil.EmptyAppOptions{},
		GenesisModifier: app.WithPolicies(buildPolicies(recipients)...),
	})
	app.FundPool(b, gapp, defaultPoolBalance)
	for _, r := range recipients {
		if err := gapp.LedgerKeeper.SetBalance(r, gasdisttypes.DefaultDenom, math.NewUint(defaultTargetBalance)); err != nil {
			b.Fatal(err)
		}
	}

	return AppInfo{
		App:        gapp,
		Recipients: recipients,
		Denom:      gasdisttypes.DefaultDenom,
	}
}
