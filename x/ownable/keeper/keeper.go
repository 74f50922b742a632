package keeper

import (
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	dbm "github.com/cometbft/cometbft-db"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	contracttypes "github.com/baron-chain/gasdistd/x/contract/types"
	"github.com/baron-chain/gasdistd/x/ownable/types"
)

var ownershipKey = []byte("ownership")

// Keeper stores the ownership of a single contract instance.
type Keeper struct {
	store     dbm.DB
	validator contracttypes.AddressValidator
}

// NewKeeper returns a keeper writing into store, which is expected to be a
// prefix store owned by the contract.
func NewKeeper(store dbm.DB, validator contracttypes.AddressValidator) Keeper {
	return Keeper{store: store, validator: validator}
}

// Initialize sets owner as the current owner, clearing any pending transfer.
func (k Keeper) Initialize(owner string) (types.Ownership, error) {
	if err := k.validator.Validate(owner); err != nil {
		return types.Ownership{}, err
	}
	ownership := types.Ownership{Owner: &owner}
	return ownership, k.save(ownership)
}

// Import stores ownership as is, e.g. from genesis.
func (k Keeper) Import(ownership types.Ownership) error {
	for _, addr := range []*string{ownership.Owner, ownership.PendingOwner} {
		if addr == nil {
			continue
		}
		if err := k.validator.Validate(*addr); err != nil {
			return err
		}
	}
	if ownership.PendingExpiry != nil {
		if ownership.PendingOwner == nil {
			return errorsmod.Wrap(types.ErrInvalidExpiry, "expiry without pending owner")
		}
		if err := ownership.PendingExpiry.ValidateBasic(); err != nil {
			return err
		}
	}
	return k.save(ownership)
}

// GetOwnership loads the ownership; an uninitialized contract is ownerless.
func (k Keeper) GetOwnership() (types.Ownership, error) {
	bz, err := k.store.Get(ownershipKey)
	if err != nil {
		return types.Ownership{}, err
	}
	var ownership types.Ownership
	if bz == nil {
		return ownership, nil
	}
	if err := json.Unmarshal(bz, &ownership); err != nil {
		return types.Ownership{}, errorsmod.Wrap(sdkerrors.ErrJSONUnmarshal, err.Error())
	}
	return ownership, nil
}

// AssertOwner fails with ErrUnauthorized unless sender is the current owner.
func (k Keeper) AssertOwner(sender string) error {
	ownership, err := k.GetOwnership()
	if err != nil {
		return err
	}
	return assertOwner(ownership, sender)
}

// UpdateOwnership applies action on behalf of sender at block.
func (k Keeper) UpdateOwnership(block contracttypes.BlockInfo, sender string, action types.Action) (types.Ownership, error) {
	ownership, err := k.GetOwnership()
	if err != nil {
		return types.Ownership{}, err
	}

	switch {
	case action.TransferOwnership != nil:
		ownership, err = k.transfer(ownership, block, sender, *action.TransferOwnership)
	case action.AcceptOwnership != nil:
		ownership, err = accept(ownership, block, sender)
	case action.RenounceOwnership != nil:
		ownership, err = renounce(ownership, sender)
	default:
		err = errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "empty ownership action")
	}
	if err != nil {
		return types.Ownership{}, err
	}
	return ownership, k.save(ownership)
}

func (k Keeper) transfer(ownership types.Ownership, block contracttypes.BlockInfo, sender string, msg types.TransferOwnership) (types.Ownership, error) {
	if err := assertOwner(ownership, sender); err != nil {
		return ownership, err
	}
	if err := k.validator.Validate(msg.NewOwner); err != nil {
		return ownership, err
	}
	if msg.Expiry != nil {
		if err := msg.Expiry.ValidateBasic(); err != nil {
			return ownership, err
		}
		if msg.Expiry.IsExpired(block) {
			return ownership, errorsmod.Wrap(types.ErrInvalidExpiry, "expiry has already passed")
		}
	}
	newOwner := msg.NewOwner
	ownership.PendingOwner = &newOwner
	ownership.PendingExpiry = msg.Expiry
	return ownership, nil
}

func accept(ownership types.Ownership, block contracttypes.BlockInfo, sender string) (types.Ownership, error) {
	if ownership.PendingOwner == nil {
		return ownership, types.ErrTransferNotFound
	}
	if *ownership.PendingOwner != sender {
		return ownership, errorsmod.Wrap(sdkerrors.ErrUnauthorized, "caller is not the pending owner")
	}
	if ownership.PendingExpiry != nil && ownership.PendingExpiry.IsExpired(block) {
		return ownership, types.ErrTransferExpired
	}
	return types.Ownership{Owner: ownership.PendingOwner}, nil
}

func renounce(ownership types.Ownership, sender string) (types.Ownership, error) {
	if err := assertOwner(ownership, sender); err != nil {
		return ownership, err
	}
	return types.Ownership{}, nil
}

func assertOwner(ownership types.Ownership, sender string) error {
	if ownership.Owner == nil {
		return errorsmod.Wrap(sdkerrors.ErrUnauthorized, "contract has no owner")
	}
	if *ownership.Owner != sender {
		return errorsmod.Wrap(sdkerrors.ErrUnauthorized, "caller is not the contract's current owner")
	}
	return nil
}

func (k Keeper) save(ownership types.Ownership) error {
	bz, err := json.Marshal(ownership)
	if err != nil {
		return errorsmod.Wrap(sdkerrors.ErrJSONMarshal, err.Error())
	}
	return k.store.Set(ownershipKey, bz)
}
