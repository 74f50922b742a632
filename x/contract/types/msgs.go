package types

import (
	"math/big"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
)

// CosmosMsg is a host message returned by a contract. Exactly one field is set.
type CosmosMsg struct {
	Send *banktypes.MsgSend `json:"send,omitempty"`
	Mint *MintMsg           `json:"mint,omitempty"`
}

// MintMsg asks the host to create new tokens of a contract owned denom.
type MintMsg struct {
	Minter    string   `json:"minter"`
	Recipient string   `json:"recipient"`
	Amount    sdk.Coin `json:"amount"`
}

// NewSendMsg builds a bank send of a single coin.
func NewSendMsg(from, to, denom string, amount math.Uint) CosmosMsg {
	return CosmosMsg{
		Send: &banktypes.MsgSend{
			FromAddress: from,
			ToAddress:   to,
			Amount:      sdk.NewCoins(NewCoin(denom, amount)),
		},
	}
}

// NewMintMsg builds a mint of amount denom to recipient.
func NewMintMsg(minter, recipient, denom string, amount math.Uint) CosmosMsg {
	return CosmosMsg{
		Mint: &MintMsg{
			Minter:    minter,
			Recipient: recipient,
			Amount:    NewCoin(denom, amount),
		},
	}
}

// NewCoin converts an unsigned amount into an sdk.Coin.
func NewCoin(denom string, amount math.Uint) sdk.Coin {
	return sdk.NewCoin(denom, math.NewIntFromBigInt(amount.BigInt()))
}

// CoinAmount returns the unsigned amount of denom held in coins.
func CoinAmount(coins sdk.Coins, denom string) math.Uint {
	amt := coins.AmountOf(denom)
	if amt.IsNegative() {
		return math.ZeroUint()
	}
	return math.NewUintFromBigInt(amt.BigInt())
}

// SafeAddUint returns a + b, or an error when the sum does not fit in a
// math.Uint.
func SafeAddUint(a, b math.Uint) (math.Uint, error) {
	sum := new(big.Int).Add(a.BigInt(), b.BigInt())
	if err := math.UintOverflow(sum); err != nil {
		return math.Uint{}, err
	}
	return math.NewUintFromBigInt(sum), nil
}
