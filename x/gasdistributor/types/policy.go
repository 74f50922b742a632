package types

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	contracttypes "github.com/baron-chain/gasdistd/x/contract/types"
)

// Policy is the target balance policy of one recipient.
//
// A recipient whose balance falls below ThresholdBalance is topped up to
// TargetBalance plus TopUpOvershoot. ThresholdBalance defaults to
// TargetBalance and TopUpOvershoot to zero.
type Policy struct {
	Recipient        string     `json:"recipient"`
	TargetBalance    math.Uint  `json:"target_balance"`
	ThresholdBalance *math.Uint `json:"threshold_balance,omitempty"`
	TopUpOvershoot   *math.Uint `json:"top_up_overshoot,omitempty"`
}

// NewPolicy returns a policy with the threshold equal to the target and no
// overshoot.
func NewPolicy(recipient string, target math.Uint) Policy {
	return Policy{Recipient: recipient, TargetBalance: target}
}

// WithThreshold returns a copy of p with the threshold set.
func (p Policy) WithThreshold(threshold math.Uint) Policy {
	p.ThresholdBalance = &threshold
	return p
}

// WithOvershoot returns a copy of p with the overshoot set.
func (p Policy) WithOvershoot(overshoot math.Uint) Policy {
	p.TopUpOvershoot = &overshoot
	return p
}

// Threshold returns the effective threshold balance.
func (p Policy) Threshold() math.Uint {
	if p.ThresholdBalance == nil {
		return p.TargetBalance
	}
	return *p.ThresholdBalance
}

// Overshoot returns the effective top-up overshoot.
func (p Policy) Overshoot() math.Uint {
	if p.TopUpOvershoot == nil {
		return math.ZeroUint()
	}
	return *p.TopUpOvershoot
}

// Validate checks the recipient against the host address rules, the
// threshold <= target invariant and that target + overshoot fits in a
// math.Uint.
func (p Policy) Validate(validator contracttypes.AddressValidator) error {
	if err := validator.Validate(p.Recipient); err != nil {
		return errorsmod.Wrap(ErrInvalidPolicy, err.Error())
	}
	if p.TargetBalance.IsNil() {
		return errorsmod.Wrapf(ErrInvalidPolicy, "%s: missing target balance", p.Recipient)
	}
	if p.ThresholdBalance != nil && p.ThresholdBalance.IsNil() {
		return errorsmod.Wrapf(ErrInvalidPolicy, "%s: malformed threshold balance", p.Recipient)
	}
	if p.TopUpOvershoot != nil && p.TopUpOvershoot.IsNil() {
		return errorsmod.Wrapf(ErrInvalidPolicy, "%s: malformed top-up overshoot", p.Recipient)
	}
	if p.Threshold().GT(p.TargetBalance) {
		return errorsmod.Wrapf(ErrInvalidPolicy, "%s: threshold balance %s exceeds target balance %s",
			p.Recipient, p.Threshold(), p.TargetBalance)
	}
	if _, err := contracttypes.SafeAddUint(p.TargetBalance, p.Overshoot()); err != nil {
		return errorsmod.Wrapf(ErrInvalidPolicy, "%s: target balance plus overshoot: %s", p.Recipient, err)
	}
	return nil
}

// ValidatePolicies validates every policy and rejects duplicate recipients.
func ValidatePolicies(policies []Policy, validator contracttypes.AddressValidator) error {
	seen := make(map[string]struct{}, len(policies))
	for _, p := range policies {
		if err := p.Validate(validator); err != nil {
			return err
		}
		if _, ok := seen[p.Recipient]; ok {
			return errorsmod.Wrapf(ErrInvalidPolicy, "duplicate recipient %s", p.Recipient)
		}
		seen[p.Recipient] = struct{}{}
	}
	return nil
}
