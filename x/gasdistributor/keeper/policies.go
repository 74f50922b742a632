package keeper

import (
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	dbm "github.com/cometbft/cometbft-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/baron-chain/gasdistd/x/gasdistributor/types"
)

const (
	attributeAddPolicy     = "add-policy"
	attributeRemovePolicy  = "remove-policy"
	attributeReplacePolicy = "replace-policy"
)

// GetPolicy returns the policy of recipient or ErrUnknownTarget.
func (k Keeper) GetPolicy(recipient string) (types.Policy, error) {
	bz, err := k.store.Get(types.PolicyKey(recipient))
	if err != nil {
		return types.Policy{}, err
	}
	if bz == nil {
		return types.Policy{}, errorsmod.Wrap(types.ErrUnknownTarget, recipient)
	}
	return unmarshalPolicy(bz)
}

// GetPolicies returns the whole table in ascending recipient order.
func (k Keeper) GetPolicies() ([]types.Policy, error) {
	policies := []types.Policy{}
	err := k.IteratePolicies(func(p types.Policy) bool {
		policies = append(policies, p)
		return false
	})
	return policies, err
}

// IteratePolicies calls cb for every policy in ascending recipient order
// until cb returns true.
func (k Keeper) IteratePolicies(cb func(types.Policy) (stop bool)) error {
	iter, err := dbm.IteratePrefix(k.store, types.PolicyPrefix)
	if err != nil {
		return err
	}
	defer iter.Close()

	for ; iter.Valid(); iter.Next() {
		p, err := unmarshalPolicy(iter.Value())
		if err != nil {
			return err
		}
		if cb(p) {
			break
		}
	}
	return iter.Error()
}

// policyRecipients lists the recipients of the table from the store keys.
func (k Keeper) policyRecipients() ([]string, error) {
	iter, err := dbm.IteratePrefix(k.store, types.PolicyPrefix)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var recipients []string
	for ; iter.Valid(); iter.Next() {
		recipients = append(recipients, types.RecipientFromPolicyKey(iter.Key()))
	}
	return recipients, iter.Error()
}

// SetPolicies applies msg to the table on behalf of sender. Either every
// change of the batch is written or none is.
func (k Keeper) SetPolicies(sender string, msg types.SetPoliciesMsg) ([]sdk.Attribute, error) {
	if err := k.ownable.AssertOwner(sender); err != nil {
		return nil, err
	}
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	if msg.Replace != nil {
		return k.replacePolicies(*msg.Replace)
	}

	var attrs []sdk.Attribute
	deletes := make([]string, 0, len(msg.Remove))
	for _, recipient := range msg.Remove {
		found, err := k.store.Has(types.PolicyKey(recipient))
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, errorsmod.Wrap(types.ErrUnknownTarget, recipient)
		}
		deletes = append(deletes, recipient)
		attrs = append(attrs, sdk.NewAttribute(attributeRemovePolicy, recipient))
	}

	if err := types.ValidatePolicies(msg.Add, k.validator); err != nil {
		return nil, err
	}
	for _, p := range msg.Add {
		attrs = append(attrs, sdk.NewAttribute(attributeAddPolicy, p.Recipient))
	}

	if err := k.writePolicies(deletes, msg.Add); err != nil {
		return nil, err
	}
	k.Logger().Info("policy table updated", "added", len(msg.Add), "removed", len(deletes))
	return attrs, nil
}

func (k Keeper) replacePolicies(policies []types.Policy) ([]sdk.Attribute, error) {
	if err := types.ValidatePolicies(policies, k.validator); err != nil {
		return nil, err
	}

	deletes, err := k.policyRecipients()
	if err != nil {
		return nil, err
	}

	attrs := make([]sdk.Attribute, 0, len(policies))
	for _, p := range policies {
		attrs = append(attrs, sdk.NewAttribute(attributeReplacePolicy, p.Recipient))
	}
	if err := k.writePolicies(deletes, policies); err != nil {
		return nil, err
	}
	k.Logger().Info("policy table replaced", "previous", len(deletes), "current", len(policies))
	return attrs, nil
}

// writePolicies deletes and then sets policies in one batch.
func (k Keeper) writePolicies(deletes []string, sets []types.Policy) error {
	batch := k.store.NewBatch()
	defer batch.Close()

	for _, recipient := range deletes {
		if err := batch.Delete(types.PolicyKey(recipient)); err != nil {
			return err
		}
	}
	for _, p := range sets {
		bz, err := json.Marshal(p)
		if err != nil {
			return errorsmod.Wrap(sdkerrors.ErrJSONMarshal, err.Error())
		}
		if err := batch.Set(types.PolicyKey(p.Recipient), bz); err != nil {
			return err
		}
	}
	return batch.Write()
}

func unmarshalPolicy(bz []byte) (types.Policy, error) {
	var p types.Policy
	if err := json.Unmarshal(bz, &p); err != nil {
		return types.Policy{}, errorsmod.Wrap(sdkerrors.ErrJSONUnmarshal, err.Error())
	}
	return p, nil
}
