package types

import (
	"time"

	errorsmod "cosmossdk.io/errors"

	contracttypes "github.com/baron-chain/gasdistd/x/contract/types"
)

// Ownership is the ownership state of a contract. Owner is nil once the
// ownership has been renounced.
type Ownership struct {
	Owner         *string     `json:"owner"`
	PendingOwner  *string     `json:"pending_owner"`
	PendingExpiry *Expiration `json:"pending_expiry"`
}

// OwnerString returns the owner or an empty string for an ownerless contract.
func (o Ownership) OwnerString() string {
	if o.Owner == nil {
		return ""
	}
	return *o.Owner
}

// Expiration is the deadline of a pending ownership transfer.
// Exactly one field is set.
type Expiration struct {
	AtHeight *uint64    `json:"at_height,omitempty"`
	AtTime   *time.Time `json:"at_time,omitempty"`
	Never    *struct{}  `json:"never,omitempty"`
}

func ExpiresAtHeight(h uint64) *Expiration { return &Expiration{AtHeight: &h} }

func ExpiresAtTime(t time.Time) *Expiration { return &Expiration{AtTime: &t} }

func NeverExpires() *Expiration { return &Expiration{Never: &struct{}{}} }

// ValidateBasic checks that exactly one variant is set.
func (e Expiration) ValidateBasic() error {
	n := 0
	if e.AtHeight != nil {
		n++
	}
	if e.AtTime != nil {
		n++
	}
	if e.Never != nil {
		n++
	}
	if n != 1 {
		return errorsmod.Wrapf(ErrInvalidExpiry, "expected exactly one of at_height, at_time, never; got %d", n)
	}
	return nil
}

// IsExpired reports whether the deadline has been reached at block.
func (e Expiration) IsExpired(block contracttypes.BlockInfo) bool {
	switch {
	case e.AtHeight != nil:
		return block.Height >= *e.AtHeight
	case e.AtTime != nil:
		return !block.Time.Before(*e.AtTime)
	default:
		return false
	}
}

// Action is an ownership update. Exactly one field is set.
type Action struct {
	TransferOwnership *TransferOwnership `json:"transfer_ownership,omitempty"`
	AcceptOwnership   *struct{}          `json:"accept_ownership,omitempty"`
	RenounceOwnership *struct{}          `json:"renounce_ownership,omitempty"`
}

// TransferOwnership proposes NewOwner as the next owner.
type TransferOwnership struct {
	NewOwner string      `json:"new_owner"`
	Expiry   *Expiration `json:"expiry,omitempty"`
}

func NewTransferAction(newOwner string, expiry *Expiration) Action {
	return Action{TransferOwnership: &TransferOwnership{NewOwner: newOwner, Expiry: expiry}}
}

func NewAcceptAction() Action { return Action{AcceptOwnership: &struct{}{}} }

func NewRenounceAction() Action { return Action{RenounceOwnership: &struct{}{}} }
