package keeper

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"testing"

	"cosmossdk.io/math"
	dbm "github.com/cometbft/cometbft-db"
	"github.com/cometbft/cometbft/libs/log"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contracttypes "github.com/baron-chain/gasdistd/x/contract/types"
	"github.com/baron-chain/gasdistd/x/ledger/types"
)

func addr(i byte) string {
	return contracttypes.MustBech32("neutron", bytes.Repeat([]byte{i}, 20))
}

func newKeeper(t *testing.T) Keeper {
	t.Helper()
	return NewKeeper(dbm.NewMemDB(), contracttypes.Bech32Validator{Prefix: "neutron"}, log.NewNopLogger())
}

func balanceOf(t *testing.T, k Keeper, address, denom string) uint64 {
	t.Helper()
	b, err := k.Balance(context.Background(), address, denom)
	require.NoError(t, err)
	return b.Uint64()
}

func TestDispatch(t *testing.T) {
	contract, alice, bob := addr(1), addr(2), addr(3)
	factory := types.FactoryDenom(contract, "lazy")

	specs := map[string]struct {
		signer  string
		msgs    []contracttypes.CosmosMsg
		expErr  error
		expBals map[string]uint64
	}{
		"sends in order": {
			signer: contract,
			msgs: []contracttypes.CosmosMsg{
				contracttypes.NewSendMsg(contract, alice, "untrn", math.NewUint(60)),
				contracttypes.NewSendMsg(contract, bob, "untrn", math.NewUint(40)),
			},
			expBals: map[string]uint64{contract: 0, alice: 60, bob: 40},
		},
		"second send overdraws": {
			signer: contract,
			msgs: []contracttypes.CosmosMsg{
				contracttypes.NewSendMsg(contract, alice, "untrn", math.NewUint(60)),
				contracttypes.NewSendMsg(contract, bob, "untrn", math.NewUint(41)),
			},
			expErr:  types.ErrInsufficientFunds,
			expBals: map[string]uint64{contract: 100, alice: 0, bob: 0},
		},
		"send from another account": {
			signer:  contract,
			msgs:    []contracttypes.CosmosMsg{contracttypes.NewSendMsg(alice, bob, "untrn", math.NewUint(1))},
			expErr:  types.ErrInvalidMsg,
			expBals: map[string]uint64{contract: 100},
		},
		"invalid recipient": {
			signer:  contract,
			msgs:    []contracttypes.CosmosMsg{contracttypes.NewSendMsg(contract, "bob", "untrn", math.NewUint(1))},
			expErr:  sdkerrors.ErrInvalidAddress,
			expBals: map[string]uint64{contract: 100},
		},
		"mint own factory denom": {
			signer:  contract,
			msgs:    []contracttypes.CosmosMsg{contracttypes.NewMintMsg(contract, alice, factory, math.NewUint(5))},
			expBals: map[string]uint64{contract: 100},
		},
		"mint foreign denom": {
			signer:  contract,
			msgs:    []contracttypes.CosmosMsg{contracttypes.NewMintMsg(contract, alice, "untrn", math.NewUint(5))},
			expErr:  types.ErrInvalidMsg,
			expBals: map[string]uint64{alice: 0},
		},
		"empty message": {
			signer: contract,
			msgs:   []contracttypes.CosmosMsg{{}},
			expErr: types.ErrInvalidMsg,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			k := newKeeper(t)
			require.NoError(t, k.SetBalance(contract, "untrn", math.NewUint(100)))

			err := k.Dispatch(context.Background(), spec.signer, spec.msgs)
			if spec.expErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, spec.expErr), err)
			} else {
				require.NoError(t, err)
			}
			for address, exp := range spec.expBals {
				assert.Equal(t, exp, balanceOf(t, k, address, "untrn"), address)
			}
		})
	}
}

func TestDispatchMint(t *testing.T) {
	k := newKeeper(t)
	contract, alice := addr(1), addr(2)
	denom := types.FactoryDenom(contract, "lazy")
	msgs := []contracttypes.CosmosMsg{
		contracttypes.NewMintMsg(contract, alice, denom, math.NewUint(5)),
		contracttypes.NewMintMsg(contract, alice, denom, math.NewUint(7)),
	}
	require.NoError(t, k.Dispatch(context.Background(), contract, msgs))
	assert.Equal(t, uint64(12), balanceOf(t, k, alice, denom))
}

func TestDispatchRejectsOverflow(t *testing.T) {
	contract, alice := addr(1), addr(2)
	factory := types.FactoryDenom(contract, "lazy")
	maxAmount := math.NewUintFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), math.MaxBitLen), big.NewInt(1)))

	specs := map[string]struct {
		denom string
		msgs  []contracttypes.CosmosMsg
	}{
		"send credit": {
			denom: "untrn",
			msgs:  []contracttypes.CosmosMsg{contracttypes.NewSendMsg(contract, alice, "untrn", math.NewUint(1))},
		},
		"mint credit": {
			denom: factory,
			msgs:  []contracttypes.CosmosMsg{contracttypes.NewMintMsg(contract, alice, factory, math.NewUint(1))},
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			k := newKeeper(t)
			require.NoError(t, k.SetBalance(contract, "untrn", math.NewUint(100)))
			require.NoError(t, k.SetBalance(alice, spec.denom, maxAmount))

			var err error
			require.NotPanics(t, func() { err = k.Dispatch(context.Background(), contract, spec.msgs) })
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrInvalidMsg), err)

			got, err := k.Balance(context.Background(), alice, spec.denom)
			require.NoError(t, err)
			assert.Equal(t, maxAmount.String(), got.String())
			assert.Equal(t, uint64(100), balanceOf(t, k, contract, "untrn"))
		})
	}
}

func TestGenesisRoundTrip(t *testing.T) {
	k := newKeeper(t)
	gs := types.GenesisState{Balances: []types.Balance{
		{Address: addr(2), Coins: sdk.NewCoins(sdk.NewInt64Coin("untrn", 5), sdk.NewInt64Coin("uatom", 1))},
		{Address: addr(1), Coins: sdk.NewCoins(sdk.NewInt64Coin("untrn", 10))},
	}}
	require.NoError(t, k.InitGenesis(gs))

	exported, err := k.ExportGenesis()
	require.NoError(t, err)
	require.Len(t, exported.Balances, 2)
	assert.Equal(t, addr(1), exported.Balances[0].Address)
	assert.Equal(t, "10untrn", exported.Balances[0].Coins.String())
	assert.Equal(t, "1uatom,5untrn", exported.Balances[1].Coins.String())

	coins, err := k.AllBalances(addr(2))
	require.NoError(t, err)
	assert.Equal(t, "1uatom,5untrn", coins.String())
}

func TestGenesisValidate(t *testing.T) {
	dup := types.GenesisState{Balances: []types.Balance{{Address: addr(1)}, {Address: addr(1)}}}
	assert.Error(t, dup.Validate())
	assert.NoError(t, types.DefaultGenesisState().Validate())
}

func TestSetBalanceZeroDeletes(t *testing.T) {
	k := newKeeper(t)
	require.NoError(t, k.SetBalance(addr(1), "untrn", math.NewUint(3)))
	require.NoError(t, k.SetBalance(addr(1), "untrn", math.ZeroUint()))
	gs, err := k.ExportGenesis()
	require.NoError(t, err)
	assert.Empty(t, gs.Balances)
}

func TestFactoryDenom(t *testing.T) {
	denom := types.FactoryDenom(addr(1), "lazy")
	assert.True(t, types.IsFactoryDenomOf(denom, addr(1)))
	assert.False(t, types.IsFactoryDenomOf(denom, addr(2)))
	assert.False(t, types.IsFactoryDenomOf("factory/"+addr(1)+"/", addr(1)))
}
