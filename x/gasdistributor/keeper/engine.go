package keeper

import (
	"sort"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	contracttypes "github.com/baron-chain/gasdistd/x/contract/types"
	"github.com/baron-chain/gasdistd/x/gasdistributor/types"
)

// BalanceFunc returns the current balance of recipient in the distributed
// denom.
type BalanceFunc func(recipient string) (math.Uint, error)

// TopUpAmount returns the amount policy requires for a recipient holding
// current, or zero when no top-up is due. A top-up that does not fit in a
// math.Uint is ErrInvalidPolicy.
func TopUpAmount(policy types.Policy, current math.Uint) (math.Uint, error) {
	if current.GTE(policy.Threshold()) {
		return math.ZeroUint(), nil
	}
	deficit := math.ZeroUint()
	if policy.TargetBalance.GT(current) {
		deficit = policy.TargetBalance.Sub(current)
	}
	amount, err := contracttypes.SafeAddUint(deficit, policy.Overshoot())
	if err != nil {
		return math.Uint{}, errorsmod.Wrapf(types.ErrInvalidPolicy, "%s: top-up: %s", policy.Recipient, err)
	}
	return amount, nil
}

// ComputeRound decides the transfers of one distribution round. Policies are
// visited in ascending recipient order. It performs no writes; the only side
// effects are the balance reads.
func ComputeRound(policies []types.Policy, balanceOf BalanceFunc, pool math.Uint, mode types.DistributionMode) (types.Round, error) {
	sorted := make([]types.Policy, len(policies))
	copy(sorted, policies)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Recipient < sorted[j].Recipient })

	round := types.Round{Total: math.ZeroUint()}
	remaining := pool
	for _, policy := range sorted {
		current, err := balanceOf(policy.Recipient)
		if err != nil {
			return types.Round{}, errorsmod.Wrapf(err, "balance of %s", policy.Recipient)
		}
		amount, err := TopUpAmount(policy, current)
		if err != nil {
			return types.Round{}, err
		}
		if amount.IsZero() {
			continue
		}
		if mode == types.ModeBestEffort {
			if amount.GT(remaining) {
				round.Skipped = append(round.Skipped, types.Transfer{Recipient: policy.Recipient, Amount: amount})
				continue
			}
			remaining = remaining.Sub(amount)
		}
		round.Transfers = append(round.Transfers, types.Transfer{Recipient: policy.Recipient, Amount: amount})
		round.Observations = append(round.Observations, types.Observation{
			Recipient: policy.Recipient,
			Current:   current,
			Amount:    amount,
		})
		total, err := contracttypes.SafeAddUint(round.Total, amount)
		if err != nil {
			// no pool can hold more than a math.Uint
			return types.Round{}, errorsmod.Wrapf(types.ErrInsufficientFunds, "round total: %s", err)
		}
		round.Total = total
	}

	if round.Total.GT(pool) {
		return types.Round{}, errorsmod.Wrapf(types.ErrInsufficientFunds,
			"round needs %s, pool holds %s", round.Total, pool)
	}
	return round, nil
}
