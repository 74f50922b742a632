package keeper

import (
	"context"
	"sort"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	contracttypes "github.com/baron-chain/gasdistd/x/contract/types"
	"github.com/baron-chain/gasdistd/x/ledger/types"
)

// Dispatch executes msgs returned by the contract at signer. Every message is
// checked against the running balances first; the resulting writes are then
// committed in a single batch, so either all messages take effect or none.
func (k Keeper) Dispatch(ctx context.Context, signer string, msgs []contracttypes.CosmosMsg) error {
	if len(msgs) == 0 {
		return nil
	}
	pending := map[string]math.Uint{}
	get := func(address, denom string) (math.Uint, error) {
		key := string(types.BalanceKey(address, denom))
		if v, ok := pending[key]; ok {
			return v, nil
		}
		return k.Balance(ctx, address, denom)
	}
	put := func(address, denom string, amount math.Uint) {
		pending[string(types.BalanceKey(address, denom))] = amount
	}

	for i, msg := range msgs {
		switch {
		case msg.Send != nil:
			send := msg.Send
			if send.FromAddress != signer {
				return errorsmod.Wrapf(types.ErrInvalidMsg, "message %d: send from %s signed by %s", i, send.FromAddress, signer)
			}
			if err := k.validator.Validate(send.ToAddress); err != nil {
				return errorsmod.Wrapf(err, "message %d", i)
			}
			if !send.Amount.IsValid() {
				return errorsmod.Wrapf(types.ErrInvalidMsg, "message %d: invalid coins %s", i, send.Amount)
			}
			for _, coin := range send.Amount {
				amount := contracttypes.CoinAmount(send.Amount, coin.Denom)
				from, err := get(send.FromAddress, coin.Denom)
				if err != nil {
					return err
				}
				if amount.GT(from) {
					return errorsmod.Wrapf(types.ErrInsufficientFunds, "message %d: %s has %s%s, needs %s", i, send.FromAddress, from, coin.Denom, coin)
				}
				put(send.FromAddress, coin.Denom, from.Sub(amount))
				to, err := get(send.ToAddress, coin.Denom)
				if err != nil {
					return err
				}
				credited, err := contracttypes.SafeAddUint(to, amount)
				if err != nil {
					return errorsmod.Wrapf(types.ErrInvalidMsg, "message %d: credit %s: %s", i, send.ToAddress, err)
				}
				put(send.ToAddress, coin.Denom, credited)
			}
		case msg.Mint != nil:
			mint := msg.Mint
			if mint.Minter != signer || !types.IsFactoryDenomOf(mint.Amount.Denom, mint.Minter) {
				return errorsmod.Wrapf(types.ErrInvalidMsg, "message %d: %s cannot mint %s", i, signer, mint.Amount.Denom)
			}
			if err := k.validator.Validate(mint.Recipient); err != nil {
				return errorsmod.Wrapf(err, "message %d", i)
			}
			if !mint.Amount.IsValid() || mint.Amount.IsZero() {
				return errorsmod.Wrapf(types.ErrInvalidMsg, "message %d: invalid mint amount %s", i, mint.Amount)
			}
			to, err := get(mint.Recipient, mint.Amount.Denom)
			if err != nil {
				return err
			}
			minted, err := contracttypes.SafeAddUint(to, math.NewUintFromBigInt(mint.Amount.Amount.BigInt()))
			if err != nil {
				return errorsmod.Wrapf(types.ErrInvalidMsg, "message %d: mint to %s: %s", i, mint.Recipient, err)
			}
			put(mint.Recipient, mint.Amount.Denom, minted)
		default:
			return errorsmod.Wrapf(types.ErrInvalidMsg, "message %d: empty", i)
		}
	}

	return k.commit(pending)
}

func (k Keeper) commit(pending map[string]math.Uint) error {
	keys := make([]string, 0, len(pending))
	for key := range pending {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	batch := k.balanceStore().NewBatch()
	defer batch.Close()
	for _, key := range keys {
		amount := pending[key]
		var err error
		if amount.IsZero() {
			err = batch.Delete([]byte(key))
		} else {
			err = batch.Set([]byte(key), []byte(amount.String()))
		}
		if err != nil {
			return err
		}
	}
	if err := batch.Write(); err != nil {
		return err
	}
	k.Logger().Debug("dispatched host messages", "writes", len(keys))
	return nil
}
