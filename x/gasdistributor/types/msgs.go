package types

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	ownabletypes "github.com/baron-chain/gasdistd/x/ownable/types"
)

// InstantiateMsg creates a gas distributor. Owner defaults to the sender,
// Denom and Mode to DefaultParams.
type InstantiateMsg struct {
	Owner           *string          `json:"owner,omitempty"`
	InitialPolicies []Policy         `json:"initial_policies"`
	Denom           string           `json:"denom,omitempty"`
	Mode            DistributionMode `json:"mode,omitempty"`
}

// ExecuteMsg is the set of state changing calls. Exactly one field is set.
type ExecuteMsg struct {
	Distribute      *DistributeMsg       `json:"distribute,omitempty"`
	SetPolicies     *SetPoliciesMsg      `json:"set_policies,omitempty"`
	WithdrawPool    *WithdrawPoolMsg     `json:"withdraw_pool,omitempty"`
	UpdateOwnership *ownabletypes.Action `json:"update_ownership,omitempty"`
}

type DistributeMsg struct{}

// SetPoliciesMsg edits the policy table. Replace swaps the whole table and
// cannot be combined with Add or Remove. With both Add and Remove set,
// removals are applied first.
type SetPoliciesMsg struct {
	Add     []Policy  `json:"add,omitempty"`
	Remove  []string  `json:"remove,omitempty"`
	Replace *[]Policy `json:"replace,omitempty"`
}

// WithdrawPoolMsg sends pool funds to Recipient, defaulting to the sender,
// and Amount, defaulting to the whole pool.
type WithdrawPoolMsg struct {
	Recipient *string    `json:"recipient,omitempty"`
	Amount    *math.Uint `json:"amount,omitempty"`
}

// ValidateBasic performs stateless checks.
func (m ExecuteMsg) ValidateBasic() error {
	n := 0
	if m.Distribute != nil {
		n++
	}
	if m.SetPolicies != nil {
		n++
		if err := m.SetPolicies.ValidateBasic(); err != nil {
			return err
		}
	}
	if m.WithdrawPool != nil {
		n++
		if a := m.WithdrawPool.Amount; a != nil && a.IsNil() {
			return errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "malformed withdraw amount")
		}
	}
	if m.UpdateOwnership != nil {
		n++
	}
	if n != 1 {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidRequest, "expected exactly one execute variant, got %d", n)
	}
	return nil
}

func (m SetPoliciesMsg) ValidateBasic() error {
	if m.Replace != nil && (len(m.Add) > 0 || len(m.Remove) > 0) {
		return errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "replace cannot be combined with add or remove")
	}
	return nil
}

// NewAddPolicies is a convenience constructor.
func NewAddPolicies(policies ...Policy) ExecuteMsg {
	return ExecuteMsg{SetPolicies: &SetPoliciesMsg{Add: policies}}
}

func NewRemovePolicies(recipients ...string) ExecuteMsg {
	return ExecuteMsg{SetPolicies: &SetPoliciesMsg{Remove: recipients}}
}

func NewReplacePolicies(policies ...Policy) ExecuteMsg {
	if policies == nil {
		policies = []Policy{}
	}
	return ExecuteMsg{SetPolicies: &SetPoliciesMsg{Replace: &policies}}
}

func NewDistribute() ExecuteMsg {
	return ExecuteMsg{Distribute: &DistributeMsg{}}
}

// QueryMsg is the set of read only calls. Exactly one field is set.
type QueryMsg struct {
	Policies        *struct{}    `json:"policies,omitempty"`
	Policy          *PolicyQuery `json:"policy,omitempty"`
	Owner           *struct{}    `json:"owner,omitempty"`
	Ownership       *struct{}    `json:"ownership,omitempty"`
	Params          *struct{}    `json:"params,omitempty"`
	ContractVersion *struct{}    `json:"contract_version,omitempty"`
}

type PolicyQuery struct {
	Recipient string `json:"recipient"`
}
