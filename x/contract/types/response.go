package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Response is the result of a successful execute or instantiate call.
type Response struct {
	Messages []CosmosMsg `json:"messages"`
	Events   sdk.Events  `json:"events"`
	Data     []byte      `json:"data,omitempty"`
}

// EventType returns the event type emitted by contract for action, e.g.
// "gas-distributor-execute-distribute".
func EventType(contract, action string) string {
	return fmt.Sprintf("%s-%s", contract, action)
}

// NewResponse returns a response carrying a single event for the action.
func NewResponse(contract, action string, attrs ...sdk.Attribute) *Response {
	return &Response{
		Events: sdk.Events{sdk.NewEvent(EventType(contract, action), attrs...)},
	}
}

// AddMessages appends host messages to the response.
func (r *Response) AddMessages(msgs ...CosmosMsg) *Response {
	r.Messages = append(r.Messages, msgs...)
	return r
}
