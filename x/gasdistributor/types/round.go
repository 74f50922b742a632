package types

import (
	"context"

	"cosmossdk.io/math"
)

// BalanceOracle reads the current balance of an address on the host ledger.
type BalanceOracle interface {
	Balance(ctx context.Context, address, denom string) (math.Uint, error)
}

// Transfer is a single top-up instruction produced by a round.
type Transfer struct {
	Recipient string    `json:"recipient"`
	Amount    math.Uint `json:"amount"`
}

// Observation records what the engine saw and sent for one recipient.
type Observation struct {
	Recipient string    `json:"recipient"`
	Current   math.Uint `json:"current"`
	Amount    math.Uint `json:"amount"`
}

// Round is the outcome of one distribution round. Observations[i] describes
// Transfers[i]. Skipped holds the top-ups a best effort round could not
// fund.
type Round struct {
	Transfers    []Transfer    `json:"transfers"`
	Observations []Observation `json:"observations"`
	Skipped      []Transfer    `json:"skipped,omitempty"`
	Total        math.Uint     `json:"total"`
}
