package keeper

import (
	"errors"
	"math/big"
	"testing"

	"cosmossdk.io/math"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baron-chain/gasdistd/x/gasdistributor/types"
)

func balances(m map[string]uint64) BalanceFunc {
	return func(recipient string) (math.Uint, error) {
		return math.NewUint(m[recipient]), nil
	}
}

func TestComputeRound(t *testing.T) {
	addrs := sortedAddrs(3)
	a, b, c := addrs[0], addrs[1], addrs[2]
	standard := []types.Policy{
		types.NewPolicy(a, math.NewUint(100)).WithThreshold(math.NewUint(10)),
		types.NewPolicy(b, math.NewUint(100)).WithThreshold(math.NewUint(10)),
	}

	specs := map[string]struct {
		policies []types.Policy
		current  map[string]uint64
		pool     uint64
		mode     types.DistributionMode
		expTx    []types.Transfer
		expTotal uint64
		expErr   error
	}{
		"one below threshold": {
			policies: standard,
			current:  map[string]uint64{a: 9, b: 13},
			pool:     1000,
			expTx:    []types.Transfer{{Recipient: a, Amount: math.NewUint(91)}},
			expTotal: 91,
		},
		"pool too small for the round": {
			policies: standard,
			current:  map[string]uint64{a: 9, b: 0},
			pool:     10,
			expErr:   types.ErrInsufficientFunds,
		},
		"exact pool is enough": {
			policies: standard,
			current:  map[string]uint64{a: 9, b: 0},
			pool:     191,
			expTx: []types.Transfer{
				{Recipient: a, Amount: math.NewUint(91)},
				{Recipient: b, Amount: math.NewUint(100)},
			},
			expTotal: 191,
		},
		"at threshold is skipped": {
			policies: standard,
			current:  map[string]uint64{a: 10, b: 10},
			pool:     1000,
			expTotal: 0,
		},
		"default threshold equals target": {
			policies: []types.Policy{types.NewPolicy(a, math.NewUint(100))},
			current:  map[string]uint64{a: 99},
			pool:     1000,
			expTx:    []types.Transfer{{Recipient: a, Amount: math.NewUint(1)}},
			expTotal: 1,
		},
		"overshoot from empty": {
			policies: []types.Policy{types.NewPolicy(a, math.NewUint(100)).WithOvershoot(math.NewUint(10))},
			current:  map[string]uint64{a: 0},
			pool:     1000,
			expTx:    []types.Transfer{{Recipient: a, Amount: math.NewUint(110)}},
			expTotal: 110,
		},
		"overshoot with balance": {
			policies: []types.Policy{types.NewPolicy(a, math.NewUint(100)).WithOvershoot(math.NewUint(10))},
			current:  map[string]uint64{a: 13},
			pool:     1000,
			expTx:    []types.Transfer{{Recipient: a, Amount: math.NewUint(97)}},
			expTotal: 97,
		},
		"zero target never pays": {
			policies: []types.Policy{types.NewPolicy(a, math.ZeroUint())},
			current:  map[string]uint64{},
			pool:     1000,
			expTotal: 0,
		},
		"unsorted input is visited in recipient order": {
			policies: []types.Policy{
				types.NewPolicy(c, math.NewUint(5)),
				types.NewPolicy(a, math.NewUint(5)),
			},
			current: map[string]uint64{},
			pool:    10,
			expTx: []types.Transfer{
				{Recipient: a, Amount: math.NewUint(5)},
				{Recipient: c, Amount: math.NewUint(5)},
			},
			expTotal: 10,
		},
		"best effort skips what does not fit": {
			policies: []types.Policy{
				types.NewPolicy(a, math.NewUint(50)),
				types.NewPolicy(b, math.NewUint(100)),
				types.NewPolicy(c, math.NewUint(30)),
			},
			current:  map[string]uint64{},
			pool:     90,
			mode:     types.ModeBestEffort,
			expTx:    []types.Transfer{{Recipient: a, Amount: math.NewUint(50)}, {Recipient: c, Amount: math.NewUint(30)}},
			expTotal: 80,
		},
		"empty table": {
			current:  map[string]uint64{},
			pool:     0,
			expTotal: 0,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			round, err := ComputeRound(spec.policies, balances(spec.current), math.NewUint(spec.pool), spec.mode)
			if spec.expErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, spec.expErr), err)
				assert.Empty(t, round.Transfers)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, spec.expTx, round.Transfers)
			assert.Equal(t, math.NewUint(spec.expTotal), round.Total)
			require.Len(t, round.Observations, len(round.Transfers))
			for i, o := range round.Observations {
				assert.Equal(t, round.Transfers[i].Recipient, o.Recipient)
				assert.Equal(t, round.Transfers[i].Amount, o.Amount)
				assert.Equal(t, math.NewUint(spec.current[o.Recipient]), o.Current)
			}
		})
	}
}

func TestComputeRoundBestEffortRecordsSkipped(t *testing.T) {
	addrs := sortedAddrs(2)
	policies := []types.Policy{
		types.NewPolicy(addrs[0], math.NewUint(100)),
		types.NewPolicy(addrs[1], math.NewUint(10)),
	}
	round, err := ComputeRound(policies, balances(nil), math.NewUint(20), types.ModeBestEffort)
	require.NoError(t, err)
	assert.Equal(t, []types.Transfer{{Recipient: addrs[0], Amount: math.NewUint(100)}}, round.Skipped)
	assert.Equal(t, []types.Transfer{{Recipient: addrs[1], Amount: math.NewUint(10)}}, round.Transfers)
}

func TestComputeRoundOracleError(t *testing.T) {
	myErr := errors.New("ledger unavailable")
	policies := []types.Policy{types.NewPolicy(testAddr(1), math.NewUint(100))}
	_, err := ComputeRound(policies, func(string) (math.Uint, error) { return math.Uint{}, myErr }, math.NewUint(1000), types.ModeAllOrNothing)
	require.Error(t, err)
	assert.True(t, errors.Is(err, myErr))
}

func TestComputeRoundDoesNotReorderInput(t *testing.T) {
	addrs := sortedAddrs(2)
	policies := []types.Policy{types.NewPolicy(addrs[1], math.NewUint(1)), types.NewPolicy(addrs[0], math.NewUint(1))}
	_, err := ComputeRound(policies, balances(nil), math.NewUint(10), types.ModeAllOrNothing)
	require.NoError(t, err)
	assert.Equal(t, addrs[1], policies[0].Recipient)
}

type fuzzPolicy struct {
	Target    uint32
	Threshold uint32
	Overshoot uint16
	Current   uint32
}

func TestComputeRoundProperties(t *testing.T) {
	f := fuzz.New().NilChance(0).NumElements(0, 20)
	addrs := sortedAddrs(20)
	for i := 0; i < 200; i++ {
		var raw []fuzzPolicy
		var pool uint32
		f.Fuzz(&raw)
		f.Fuzz(&pool)

		policies := make([]types.Policy, len(raw))
		current := make(map[string]uint64, len(raw))
		for j, r := range raw {
			threshold := r.Threshold
			if threshold > r.Target {
				threshold = r.Target
			}
			policies[j] = types.NewPolicy(addrs[j], math.NewUint(uint64(r.Target))).
				WithThreshold(math.NewUint(uint64(threshold))).
				WithOvershoot(math.NewUint(uint64(r.Overshoot)))
			current[addrs[j]] = uint64(r.Current)
		}

		for _, mode := range []types.DistributionMode{types.ModeAllOrNothing, types.ModeBestEffort} {
			round, err := ComputeRound(policies, balances(current), math.NewUint(uint64(pool)), mode)
			if err != nil {
				require.True(t, errors.Is(err, types.ErrInsufficientFunds))
				require.Equal(t, types.ModeAllOrNothing, mode)
				continue
			}
			require.True(t, round.Total.LTE(math.NewUint(uint64(pool))))
			sum := math.ZeroUint()
			for j, tx := range round.Transfers {
				require.False(t, tx.Amount.IsZero())
				if j > 0 {
					require.Less(t, round.Transfers[j-1].Recipient, tx.Recipient)
				}
				sum = sum.Add(tx.Amount)
			}
			require.Equal(t, sum, round.Total)
			if mode == types.ModeAllOrNothing {
				require.Empty(t, round.Skipped)
			}
		}
	}
}

func TestComputeRoundOverflow(t *testing.T) {
	addrs := sortedAddrs(2)
	a, b := addrs[0], addrs[1]
	maxAmount := math.NewUintFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), math.MaxBitLen), big.NewInt(1)))
	half := math.NewUintFromBigInt(new(big.Int).Lsh(big.NewInt(1), math.MaxBitLen-1))

	specs := map[string]struct {
		policies []types.Policy
		mode     types.DistributionMode
		expErr   error
	}{
		"top-up overflows": {
			policies: []types.Policy{types.NewPolicy(a, maxAmount).WithOvershoot(math.OneUint())},
			expErr:   types.ErrInvalidPolicy,
		},
		"round total overflows": {
			policies: []types.Policy{types.NewPolicy(a, half), types.NewPolicy(b, half)},
			expErr:   types.ErrInsufficientFunds,
		},
		"best effort top-up overflows": {
			policies: []types.Policy{types.NewPolicy(a, maxAmount).WithOvershoot(math.OneUint())},
			mode:     types.ModeBestEffort,
			expErr:   types.ErrInvalidPolicy,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			var (
				round types.Round
				err   error
			)
			require.NotPanics(t, func() {
				round, err = ComputeRound(spec.policies, balances(nil), math.NewUint(10), spec.mode)
			})
			require.Error(t, err)
			assert.True(t, errors.Is(err, spec.expErr), err)
			assert.Empty(t, round.Transfers)
		})
	}
}
