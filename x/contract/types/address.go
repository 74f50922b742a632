package types

import (
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/bech32"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
)

// AddressValidator checks that an identity is a valid address on the host.
type AddressValidator interface {
	Validate(addr string) error
}

// Bech32Validator accepts canonical bech32 account addresses with Prefix.
type Bech32Validator struct {
	Prefix string
}

var _ AddressValidator = Bech32Validator{}

func (v Bech32Validator) Validate(addr string) error {
	if addr == "" {
		return errorsmod.Wrap(sdkerrors.ErrInvalidAddress, "empty address")
	}
	hrp, bz, err := bech32.DecodeAndConvert(addr)
	if err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "%s: %s", addr, err)
	}
	if hrp != v.Prefix {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "%s: expected prefix %q, got %q", addr, v.Prefix, hrp)
	}
	if err := sdk.VerifyAddressFormat(bz); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "%s: %s", addr, err)
	}
	// reject upper case and other non canonical spellings of the same bytes
	canonical, err := bech32.ConvertAndEncode(hrp, bz)
	if err != nil || canonical != addr {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "%s: address is not in canonical form", addr)
	}
	return nil
}

// ModuleAddress derives the bech32 address of a named contract instance.
func ModuleAddress(name, prefix string) string {
	addr, err := bech32.ConvertAndEncode(prefix, authtypes.NewModuleAddress(name))
	if err != nil {
		panic(err)
	}
	return addr
}

// MustBech32 encodes raw address bytes with prefix, panicking on error.
func MustBech32(prefix string, bz []byte) string {
	addr, err := bech32.ConvertAndEncode(prefix, bz)
	if err != nil {
		panic(err)
	}
	return addr
}
