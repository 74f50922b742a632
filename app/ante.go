package app

import (
	"context"
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	contracttypes "github.com/baron-chain/gasdistd/x/contract/types"
)

// ExecuteTx is a single contract call submitted to the app.
type ExecuteTx struct {
	Contract string
	Sender   string
	Msg      json.RawMessage
}

// AnteHandler checks a call before it reaches the contract.
type AnteHandler func(ctx context.Context, tx ExecuteTx) error

// AnteDecorator wraps the next handler of the chain.
type AnteDecorator interface {
	AnteHandle(ctx context.Context, tx ExecuteTx, next AnteHandler) error
}

// ChainAnteDecorators links decorators so that each one calls the next.
func ChainAnteDecorators(chain ...AnteDecorator) AnteHandler {
	if len(chain) == 0 {
		return func(context.Context, ExecuteTx) error { return nil }
	}
	return func(ctx context.Context, tx ExecuteTx) error {
		return chain[0].AnteHandle(ctx, tx, ChainAnteDecorators(chain[1:]...))
	}
}

// HandlerOptions are the dependencies of the ante chain.
type HandlerOptions struct {
	Validator       contracttypes.AddressValidator
	ContractExists  func(address string) bool
	MaxMsgSizeBytes int
}

// NewAnteHandler returns the ante chain of the app.
func NewAnteHandler(options HandlerOptions) (AnteHandler, error) {
	if options.Validator == nil {
		return nil, errorsmod.Wrap(sdkerrors.ErrLogic, "address validator is required for AnteHandler")
	}
	if options.ContractExists == nil {
		return nil, errorsmod.Wrap(sdkerrors.ErrLogic, "contract lookup is required for AnteHandler")
	}
	if options.MaxMsgSizeBytes <= 0 {
		return nil, errorsmod.Wrap(sdkerrors.ErrLogic, "max msg size must be positive")
	}

	anteDecorators := []AnteDecorator{
		NewContextDecorator(),
		NewMsgSizeDecorator(options.MaxMsgSizeBytes),
		NewValidateSenderDecorator(options.Validator),
		NewContractExistsDecorator(options.ContractExists),
		NewValidateJSONDecorator(),
	}
	return ChainAnteDecorators(anteDecorators...), nil
}

// ContextDecorator rejects calls whose context is already done.
type ContextDecorator struct{}

func NewContextDecorator() ContextDecorator { return ContextDecorator{} }

func (ContextDecorator) AnteHandle(ctx context.Context, tx ExecuteTx, next AnteHandler) error {
	if err := ctx.Err(); err != nil {
		return errorsmod.Wrap(sdkerrors.ErrInvalidRequest, err.Error())
	}
	return next(ctx, tx)
}

type MsgSizeDecorator struct {
	max int
}

func NewMsgSizeDecorator(max int) MsgSizeDecorator { return MsgSizeDecorator{max: max} }

func (d MsgSizeDecorator) AnteHandle(ctx context.Context, tx ExecuteTx, next AnteHandler) error {
	if len(tx.Msg) > d.max {
		return errorsmod.Wrapf(sdkerrors.ErrTxTooLarge, "msg is %d bytes, limit %d", len(tx.Msg), d.max)
	}
	return next(ctx, tx)
}

// ValidateSenderDecorator requires a valid sender address.
type ValidateSenderDecorator struct {
	validator contracttypes.AddressValidator
}

func NewValidateSenderDecorator(v contracttypes.AddressValidator) ValidateSenderDecorator {
	return ValidateSenderDecorator{validator: v}
}

func (d ValidateSenderDecorator) AnteHandle(ctx context.Context, tx ExecuteTx, next AnteHandler) error {
	if err := d.validator.Validate(tx.Sender); err != nil {
		return errorsmod.Wrap(err, "sender")
	}
	return next(ctx, tx)
}

type ContractExistsDecorator struct {
	exists func(string) bool
}

func NewContractExistsDecorator(exists func(string) bool) ContractExistsDecorator {
	return ContractExistsDecorator{exists: exists}
}

func (d ContractExistsDecorator) AnteHandle(ctx context.Context, tx ExecuteTx, next AnteHandler) error {
	if !d.exists(tx.Contract) {
		return errorsmod.Wrapf(sdkerrors.ErrNotFound, "no contract at %s", tx.Contract)
	}
	return next(ctx, tx)
}

// ValidateJSONDecorator requires the message to be a JSON object.
type ValidateJSONDecorator struct{}

func NewValidateJSONDecorator() ValidateJSONDecorator { return ValidateJSONDecorator{} }

func (ValidateJSONDecorator) AnteHandle(ctx context.Context, tx ExecuteTx, next AnteHandler) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(tx.Msg, &obj); err != nil {
		return errorsmod.Wrap(sdkerrors.ErrJSONUnmarshal, err.Error())
	}
	return next(ctx, tx)
}
