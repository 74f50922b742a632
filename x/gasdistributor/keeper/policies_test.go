package keeper

import (
	"errors"
	"testing"

	"cosmossdk.io/math"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baron-chain/gasdistd/x/gasdistributor/types"
)

func TestSetPolicies(t *testing.T) {
	addrs := sortedAddrs(4)
	p := func(i int, target uint64) types.Policy {
		return types.NewPolicy(addrs[i], math.NewUint(target))
	}
	initial := []types.Policy{p(0, 100), p(1, 200)}

	specs := map[string]struct {
		sender     string
		msg        types.SetPoliciesMsg
		expErr     error
		expTable   []types.Policy
		expAttrKey []string
	}{
		"add new": {
			msg:        types.SetPoliciesMsg{Add: []types.Policy{p(2, 300)}},
			expTable:   []types.Policy{p(0, 100), p(1, 200), p(2, 300)},
			expAttrKey: []string{"add-policy"},
		},
		"add overwrites": {
			msg:        types.SetPoliciesMsg{Add: []types.Policy{p(0, 50)}},
			expTable:   []types.Policy{p(0, 50), p(1, 200)},
			expAttrKey: []string{"add-policy"},
		},
		"remove existing": {
			msg:        types.SetPoliciesMsg{Remove: []string{addrs[1]}},
			expTable:   []types.Policy{p(0, 100)},
			expAttrKey: []string{"remove-policy"},
		},
		"remove then add same recipient": {
			msg:        types.SetPoliciesMsg{Remove: []string{addrs[0]}, Add: []types.Policy{p(0, 7)}},
			expTable:   []types.Policy{p(0, 7), p(1, 200)},
			expAttrKey: []string{"remove-policy", "add-policy"},
		},
		"remove unknown aborts whole batch": {
			msg:    types.SetPoliciesMsg{Remove: []string{addrs[0], addrs[3]}},
			expErr: types.ErrUnknownTarget,
		},
		"remove unknown aborts additions": {
			msg:    types.SetPoliciesMsg{Remove: []string{addrs[3]}, Add: []types.Policy{p(2, 1)}},
			expErr: types.ErrUnknownTarget,
		},
		"replace": {
			msg:        types.SetPoliciesMsg{Replace: &[]types.Policy{p(3, 1), p(2, 2)}},
			expTable:   []types.Policy{p(2, 2), p(3, 1)},
			expAttrKey: []string{"replace-policy", "replace-policy"},
		},
		"replace with empty clears": {
			msg:      types.SetPoliciesMsg{Replace: &[]types.Policy{}},
			expTable: []types.Policy{},
		},
		"replace combined with add": {
			msg:    types.SetPoliciesMsg{Replace: &[]types.Policy{}, Add: []types.Policy{p(2, 1)}},
			expErr: sdkerrors.ErrInvalidRequest,
		},
		"threshold above target": {
			msg:    types.SetPoliciesMsg{Add: []types.Policy{p(2, 10).WithThreshold(math.NewUint(11))}},
			expErr: types.ErrInvalidPolicy,
		},
		"invalid address": {
			msg:    types.SetPoliciesMsg{Add: []types.Policy{types.NewPolicy("cosmos1invalid", math.NewUint(1))}},
			expErr: types.ErrInvalidPolicy,
		},
		"duplicate recipients": {
			msg:    types.SetPoliciesMsg{Add: []types.Policy{p(2, 1), p(2, 2)}},
			expErr: types.ErrInvalidPolicy,
		},
		"not owner": {
			sender: addrs[0],
			msg:    types.SetPoliciesMsg{Add: []types.Policy{p(2, 1)}},
			expErr: types.ErrUnauthorized,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			f := setupKeeper(t, initial...)
			sender := spec.sender
			if sender == "" {
				sender = f.owner
			}
			attrs, err := f.keeper.SetPolicies(sender, spec.msg)
			got, qerr := f.keeper.GetPolicies()
			require.NoError(t, qerr)
			if spec.expErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, spec.expErr), err)
				assert.Equal(t, initial, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, spec.expTable, got)
			keys := make([]string, 0, len(attrs))
			for _, a := range attrs {
				keys = append(keys, a.Key)
			}
			if len(spec.expAttrKey) == 0 {
				assert.Empty(t, keys)
			} else {
				assert.Equal(t, spec.expAttrKey, keys)
			}
		})
	}
}

func TestGetPolicy(t *testing.T) {
	addrs := sortedAddrs(2)
	policy := types.NewPolicy(addrs[0], math.NewUint(100)).WithThreshold(math.NewUint(10)).WithOvershoot(math.NewUint(5))
	f := setupKeeper(t, policy)

	got, err := f.keeper.GetPolicy(addrs[0])
	require.NoError(t, err)
	assert.Equal(t, policy, got)

	_, err = f.keeper.GetPolicy(addrs[1])
	assert.True(t, errors.Is(err, types.ErrUnknownTarget))
}

func TestIteratePoliciesStops(t *testing.T) {
	addrs := sortedAddrs(3)
	f := setupKeeper(t,
		types.NewPolicy(addrs[2], math.NewUint(1)),
		types.NewPolicy(addrs[0], math.NewUint(1)),
		types.NewPolicy(addrs[1], math.NewUint(1)),
	)
	var seen []string
	require.NoError(t, f.keeper.IteratePolicies(func(p types.Policy) bool {
		seen = append(seen, p.Recipient)
		return len(seen) == 2
	}))
	assert.Equal(t, addrs[:2], seen)
}

func TestPolicyStoreKeys(t *testing.T) {
	addrs := sortedAddrs(3)
	f := setupKeeper(t,
		types.NewPolicy(addrs[0], math.NewUint(1)),
		types.NewPolicy(addrs[1], math.NewUint(2)),
	)

	for _, r := range addrs[:2] {
		found, err := f.keeper.store.Has(types.PolicyKey(r))
		require.NoError(t, err)
		assert.True(t, found, r)
	}
	recipients, err := f.keeper.policyRecipients()
	require.NoError(t, err)
	assert.Equal(t, addrs[:2], recipients)

	_, err = f.keeper.SetPolicies(f.owner, types.SetPoliciesMsg{Replace: &[]types.Policy{types.NewPolicy(addrs[2], math.NewUint(3))}})
	require.NoError(t, err)
	for i, r := range addrs {
		found, err := f.keeper.store.Has(types.PolicyKey(r))
		require.NoError(t, err)
		assert.Equal(t, i == 2, found, r)
	}
}
