package keeper

import (
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	dbm "github.com/cometbft/cometbft-db"
	"github.com/cometbft/cometbft/libs/log"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/prometheus/client_golang/prometheus"

	contracttypes "github.com/baron-chain/gasdistd/x/contract/types"
	"github.com/baron-chain/gasdistd/x/gasdistributor/types"
	ownablekeeper "github.com/baron-chain/gasdistd/x/ownable/keeper"
)

// Keeper holds the state of one gas distributor instance.
type Keeper struct {
	store     dbm.DB
	oracle    types.BalanceOracle
	validator contracttypes.AddressValidator
	ownable   ownablekeeper.Keeper
	logger    log.Logger
	metrics   *Metrics
}

// Option configures optional keeper features.
type Option func(*Keeper)

// WithMetrics registers distribution metrics with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(k *Keeper) {
		k.metrics = NewMetrics(reg)
	}
}

// NewKeeper creates a keeper over store, a database or prefix database
// owned by this contract.
func NewKeeper(
	store dbm.DB,
	oracle types.BalanceOracle,
	validator contracttypes.AddressValidator,
	logger log.Logger,
	opts ...Option,
) Keeper {
	k := Keeper{
		store:     store,
		oracle:    oracle,
		validator: validator,
		ownable:   ownablekeeper.NewKeeper(dbm.NewPrefixDB(store, types.OwnablePrefix), validator),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(&k)
	}
	return k
}

// Logger returns a module-specific logger.
func (k Keeper) Logger() log.Logger {
	return k.logger.With("module", "x/"+types.ModuleName)
}

// Ownable returns the ownership keeper of this instance.
func (k Keeper) Ownable() ownablekeeper.Keeper {
	return k.ownable
}

func (k Keeper) GetParams() (types.Params, error) {
	var params types.Params
	found, err := k.getJSON(types.ParamsKey, &params)
	if err != nil {
		return params, err
	}
	if !found {
		return types.DefaultParams(), nil
	}
	return params, nil
}

func (k Keeper) SetParams(params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	return k.setJSON(types.ParamsKey, params)
}

func (k Keeper) GetContractVersion() (types.ContractVersionInfo, error) {
	var info types.ContractVersionInfo
	found, err := k.getJSON(types.ContractVersionKey, &info)
	if err != nil {
		return info, err
	}
	if !found {
		return info, errorsmod.Wrap(sdkerrors.ErrNotFound, "contract version not set")
	}
	return info, nil
}

func (k Keeper) setContractVersion() error {
	return k.setJSON(types.ContractVersionKey, types.ContractVersionInfo{
		Contract: types.ContractName,
		Version:  types.ContractVersion,
	})
}

func (k Keeper) getJSON(key []byte, v interface{}) (bool, error) {
	bz, err := k.store.Get(key)
	if err != nil {
		return false, err
	}
	if bz == nil {
		return false, nil
	}
	if err := json.Unmarshal(bz, v); err != nil {
		return false, errorsmod.Wrap(sdkerrors.ErrJSONUnmarshal, err.Error())
	}
	return true, nil
}

func (k Keeper) setJSON(key []byte, v interface{}) error {
	bz, err := json.Marshal(v)
	if err != nil {
		return errorsmod.Wrap(sdkerrors.ErrJSONMarshal, err.Error())
	}
	return k.store.Set(key, bz)
}
