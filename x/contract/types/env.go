package types

import "time"

// Env describes the execution environment handed to a contract entry point.
type Env struct {
	Block    BlockInfo    `json:"block"`
	Contract ContractInfo `json:"contract"`
}

// BlockInfo represents information about the block the call is executed in.
type BlockInfo struct {
	Height  uint64    `json:"height"`
	Time    time.Time `json:"time"`
	ChainID string    `json:"chain_id"`
}

// ContractInfo holds the bech32 address of the executing contract.
type ContractInfo struct {
	Address string `json:"address"`
}

// MessageInfo carries the caller of an execute or instantiate call.
type MessageInfo struct {
	Sender string `json:"sender"`
}
