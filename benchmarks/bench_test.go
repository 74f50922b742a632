package benchmarks

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"cosmossdk.io/math"
	dbm "github.com/cometbft/cometbft-db"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/baron-chain/gasdistd/app"
	gasdistkeeper "github.com/baron-chain/gasdistd/x/gasdistributor/keeper"
	gasdisttypes "github.com/baron-chain/gasdistd/x/gasdistributor/types"
)

type benchmarkTestCase struct {
	db          func(*testing.B) dbm.DB
	drained     int
	numPolicies int
}

const (
	defaultDrained     = 20
	hugeDrained        = 1000
	defaultNumPolicies = 50
	largeNumPolicies   = 8000
)

var benchmarkTestCases = map[string]benchmarkTestCase{
	"distribute - memdb": {
		db:          buildMemDB,
		drained:     defaultDrained,
		numPolicies: defaultNumPolicies,
	},
	"distribute - leveldb": {
		db:          buildLevelDB,
		drained:     defaultDrained,
		numPolicies: defaultNumPolicies,
	},
	"distribute - leveldb - 8k policies": {
		db:          buildLevelDB,
		drained:     defaultDrained,
		numPolicies: largeNumPolicies,
	},
	"distribute - leveldb - 8k policies - huge rounds": {
		db:          buildLevelDB,
		drained:     hugeDrained,
		numPolicies: largeNumPolicies,
	},
}

func BenchmarkDistribute(b *testing.B) {
	for name, tc := range benchmarkTestCases {
		b.Run(name, func(b *testing.B) {
			runBenchmarkTest(b, tc)
		})
	}
}

func runBenchmarkTest(b *testing.B, tc benchmarkTestCase) {
	db := tc.db(b)
	defer db.Close()

	appInfo := InitializeGasDistApp(b, db, tc.numPolicies)
	msg, err := json.Marshal(gasdisttypes.NewDistribute())
	require.NoError(b, err)

	expTransfers := tc.drained
	if expTransfers > tc.numPolicies {
		expTransfers = tc.numPolicies
	}

	next := 0
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		next = drain(b, &appInfo, next, tc.drained)
		b.StartTimer()

		appInfo.App.BeginBlock(time.Now())
		resp, err := appInfo.App.ExecuteContract(context.Background(), app.GasDistributorAddress(), app.TestOwner, msg)
		require.NoError(b, err)
		require.Len(b, resp.Messages, expTransfers)
	}
}

// drain empties n recipients starting at next, wrapping around, and returns
// where the following drain starts.
func drain(b *testing.B, info *AppInfo, next, n int) int {
	if n > len(info.Recipients) {
		n = len(info.Recipients)
	}
	for i := 0; i < n; i++ {
		r := info.Recipients[(next+i)%len(info.Recipients)]
		require.NoError(b, info.App.LedgerKeeper.SetBalance(r, info.Denom, math.ZeroUint()))
	}
	return (next + n) % len(info.Recipients)
}

func BenchmarkComputeRound(b *testing.B) {
	for _, n := range []int{defaultNumPolicies, largeNumPolicies} {
		recipients := make([]string, n)
		balances := make(map[string]math.Uint, n)
		for i := range recipients {
			recipients[i] = newRecipient()
			balances[recipients[i]] = math.NewUint(uint64(i % defaultTargetBalance))
		}
		policies := buildPolicies(recipients)
		balanceOf := func(r string) (math.Uint, error) { return balances[r], nil }
		pool := math.NewUint(defaultPoolBalance)

		b.Run(fmt.Sprintf("%s/%d", gasdisttypes.ModeAllOrNothing, n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, err := gasdistkeeper.ComputeRound(policies, balanceOf, pool, gasdisttypes.ModeAllOrNothing)
				require.NoError(b, err)
			}
		})
	}
}

func buildMemDB(_ *testing.B) dbm.DB {
	return dbm.NewMemDB()
}

func buildLevelDB(b *testing.B) dbm.DB {
	levelDB, err := dbm.NewGoLevelDBWithOpts(
		"testing",
		b.TempDir(),
		&opt.Options{BlockCacher: opt.NoCacher},
	)
	require.NoError(b, err)
	return levelDB
}
