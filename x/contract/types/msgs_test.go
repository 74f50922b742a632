package types

import (
	"math/big"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSendMsg(t *testing.T) {
	msg := NewSendMsg("from", "to", "untrn", math.NewUint(42))
	require.NotNil(t, msg.Send)
	assert.Nil(t, msg.Mint)
	assert.Equal(t, sdk.NewCoins(sdk.NewInt64Coin("untrn", 42)), msg.Send.Amount)
	assert.Equal(t, math.NewUint(42), CoinAmount(msg.Send.Amount, "untrn"))
	assert.True(t, CoinAmount(msg.Send.Amount, "uatom").IsZero())
}

func TestNewResponse(t *testing.T) {
	resp := NewResponse("drop-gas-distributor", "execute-distribute", sdk.NewAttribute("a", "1")).
		AddMessages(NewMintMsg("m", "r", "factory/m/x", math.NewUint(1)))
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "drop-gas-distributor-execute-distribute", resp.Events[0].Type)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, "factory/m/x", resp.Messages[0].Mint.Amount.Denom)
}

func maxUint() math.Uint {
	return math.NewUintFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), math.MaxBitLen), big.NewInt(1)))
}

func TestSafeAddUint(t *testing.T) {
	specs := map[string]struct {
		a, b   math.Uint
		exp    math.Uint
		expErr bool
	}{
		"small":         {a: math.NewUint(2), b: math.NewUint(3), exp: math.NewUint(5)},
		"max plus zero": {a: maxUint(), b: math.ZeroUint(), exp: maxUint()},
		"max plus one":  {a: maxUint(), b: math.OneUint(), expErr: true},
		"max plus max":  {a: maxUint(), b: maxUint(), expErr: true},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			var (
				got math.Uint
				err error
			)
			require.NotPanics(t, func() { got, err = SafeAddUint(spec.a, spec.b) })
			if spec.expErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, spec.exp.String(), got.String())
		})
	}
}
