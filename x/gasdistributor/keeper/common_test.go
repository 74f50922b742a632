package keeper

import (
	"bytes"
	"context"
	"sort"
	"testing"
	"time"

	"cosmossdk.io/math"
	dbm "github.com/cometbft/cometbft-db"
	"github.com/cometbft/cometbft/libs/log"
	"github.com/stretchr/testify/require"

	contracttypes "github.com/baron-chain/gasdistd/x/contract/types"
	"github.com/baron-chain/gasdistd/x/gasdistributor/types"
)

const testPrefix = "neutron"

var testValidator = contracttypes.Bech32Validator{Prefix: testPrefix}

func testAddr(i byte) string {
	return contracttypes.MustBech32(testPrefix, bytes.Repeat([]byte{i}, 20))
}

// sortedAddrs returns n distinct addresses in ascending string order.
func sortedAddrs(n int) []string {
	addrs := make([]string, n)
	for i := range addrs {
		addrs[i] = testAddr(byte(i + 1))
	}
	sort.Strings(addrs)
	return addrs
}

// mockOracle serves balances of a single denom from a map.
type mockOracle struct {
	balances map[string]math.Uint
	err      error
}

func newMockOracle() *mockOracle {
	return &mockOracle{balances: map[string]math.Uint{}}
}

func (m *mockOracle) Balance(_ context.Context, address, _ string) (math.Uint, error) {
	if m.err != nil {
		return math.Uint{}, m.err
	}
	if b, ok := m.balances[address]; ok {
		return b, nil
	}
	return math.ZeroUint(), nil
}

func (m *mockOracle) set(address string, amount uint64) {
	m.balances[address] = math.NewUint(amount)
}

type testFixture struct {
	keeper Keeper
	oracle *mockOracle
	env    contracttypes.Env
	owner  string
}

func setupKeeper(t *testing.T, policies ...types.Policy) testFixture {
	t.Helper()
	f := testFixture{
		oracle: newMockOracle(),
		owner:  testAddr(0xee),
		env: contracttypes.Env{
			Block: contracttypes.BlockInfo{
				Height:  100,
				Time:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				ChainID: "testing",
			},
			Contract: contracttypes.ContractInfo{Address: contracttypes.ModuleAddress(types.ModuleName, testPrefix)},
		},
	}
	f.keeper = NewKeeper(dbm.NewMemDB(), f.oracle, testValidator, log.NewNopLogger())
	if policies == nil {
		policies = []types.Policy{}
	}
	_, err := f.keeper.Instantiate(context.Background(), f.env, f.info(f.owner), types.InstantiateMsg{InitialPolicies: policies})
	require.NoError(t, err)
	return f
}

func (f testFixture) info(sender string) contracttypes.MessageInfo {
	return contracttypes.MessageInfo{Sender: sender}
}

func (f testFixture) execute(sender string, msg types.ExecuteMsg) (*contracttypes.Response, error) {
	return f.keeper.Execute(context.Background(), f.env, f.info(sender), msg)
}
