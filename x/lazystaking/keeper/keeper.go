package keeper

import (
	"context"
	"encoding/json"
	"regexp"

	errorsmod "cosmossdk.io/errors"
	dbm "github.com/cometbft/cometbft-db"
	"github.com/cometbft/cometbft/libs/log"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	contracttypes "github.com/baron-chain/gasdistd/x/contract/types"
	"github.com/baron-chain/gasdistd/x/lazystaking/types"
	ledgertypes "github.com/baron-chain/gasdistd/x/ledger/types"
	ownablekeeper "github.com/baron-chain/gasdistd/x/ownable/keeper"
)

var subdenomRegex = regexp.MustCompile(`^[a-zA-Z0-9.]{1,44}$`)

// Keeper holds the state of the lazy staking contract: its version, owner
// and factory denom.
type Keeper struct {
	store   dbm.DB
	ownable ownablekeeper.Keeper
	valid   contracttypes.AddressValidator
	logger  log.Logger
}

func NewKeeper(store dbm.DB, validator contracttypes.AddressValidator, logger log.Logger) Keeper {
	return Keeper{
		store:   store,
		ownable: ownablekeeper.NewKeeper(dbm.NewPrefixDB(store, types.OwnablePrefix), validator),
		valid:   validator,
		logger:  logger,
	}
}

func (k Keeper) Logger() log.Logger {
	return k.logger.With("module", "x/"+types.ModuleName)
}

func (k Keeper) Ownable() ownablekeeper.Keeper {
	return k.ownable
}

// Denom returns the factory denom of the contract, empty before
// instantiation.
func (k Keeper) Denom() (string, error) {
	bz, err := k.store.Get(types.DenomKey)
	return string(bz), err
}

func (k Keeper) Instantiate(_ context.Context, env contracttypes.Env, info contracttypes.MessageInfo, msg types.InstantiateMsg) (*contracttypes.Response, error) {
	if has, err := k.store.Has(types.ContractVersionKey); err != nil {
		return nil, err
	} else if has {
		return nil, errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "contract already instantiated")
	}
	if !subdenomRegex.MatchString(msg.Subdenom) {
		return nil, errorsmod.Wrapf(sdkerrors.ErrInvalidRequest, "invalid subdenom %q", msg.Subdenom)
	}
	owner := info.Sender
	if msg.Owner != nil {
		owner = *msg.Owner
	}
	if err := k.valid.Validate(owner); err != nil {
		return nil, err
	}
	denom := ledgertypes.FactoryDenom(env.Contract.Address, msg.Subdenom)
	if err := sdk.ValidateDenom(denom); err != nil {
		return nil, errorsmod.Wrap(sdkerrors.ErrInvalidRequest, err.Error())
	}

	if err := k.setContractVersion(); err != nil {
		return nil, err
	}
	if err := k.store.Set(types.DenomKey, []byte(denom)); err != nil {
		return nil, err
	}
	if _, err := k.ownable.Initialize(owner); err != nil {
		return nil, err
	}
	k.Logger().Info("instantiated", "contract", env.Contract.Address, "owner", owner, "denom", denom)
	return contracttypes.NewResponse(types.ContractName, "instantiate",
		sdk.NewAttribute("owner", owner),
		sdk.NewAttribute("denom", denom),
	), nil
}

func (k Keeper) setContractVersion() error {
	bz, err := json.Marshal(contracttypes.ContractVersion{Contract: types.ContractName, Version: types.ContractVersion})
	if err != nil {
		return errorsmod.Wrap(sdkerrors.ErrJSONMarshal, err.Error())
	}
	return k.store.Set(types.ContractVersionKey, bz)
}

func (k Keeper) Execute(_ context.Context, env contracttypes.Env, info contracttypes.MessageInfo, msg types.ExecuteMsg) (*contracttypes.Response, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if msg.UpdateOwnership != nil {
		if _, err := k.ownable.UpdateOwnership(env.Block, info.Sender, *msg.UpdateOwnership); err != nil {
			return nil, err
		}
		return contracttypes.NewResponse(types.ContractName, "execute-update-ownership"), nil
	}

	if err := k.ownable.AssertOwner(info.Sender); err != nil {
		return nil, err
	}
	recipient := info.Sender
	if msg.Mint.Recipient != nil {
		recipient = *msg.Mint.Recipient
		if err := k.valid.Validate(recipient); err != nil {
			return nil, err
		}
	}
	denom, err := k.Denom()
	if err != nil {
		return nil, err
	}
	if denom == "" {
		return nil, errorsmod.Wrap(sdkerrors.ErrLogic, "contract not instantiated")
	}
	return contracttypes.NewResponse(types.ContractName, "execute-mint",
		sdk.NewAttribute("recipient", recipient),
		sdk.NewAttribute("amount", msg.Mint.Amount.String()),
	).AddMessages(contracttypes.NewMintMsg(env.Contract.Address, recipient, denom, msg.Mint.Amount)), nil
}

func (k Keeper) Query(_ context.Context, _ contracttypes.Env, msg types.QueryMsg) ([]byte, error) {
	var res interface{}
	switch {
	case msg.Ownership != nil, msg.Owner != nil:
		ownership, err := k.ownable.GetOwnership()
		if err != nil {
			return nil, err
		}
		res = ownership
		if msg.Owner != nil {
			res = ownership.OwnerString()
		}
	case msg.Denom != nil:
		denom, err := k.Denom()
		if err != nil {
			return nil, err
		}
		res = denom
	default:
		return nil, errorsmod.Wrap(sdkerrors.ErrUnknownRequest, "unknown query variant")
	}
	bz, err := json.Marshal(res)
	if err != nil {
		return nil, errorsmod.Wrap(sdkerrors.ErrJSONMarshal, err.Error())
	}
	return bz, nil
}
