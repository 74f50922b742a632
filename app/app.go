package app

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	errorsmod "cosmossdk.io/errors"
	dbm "github.com/cometbft/cometbft-db"
	"github.com/cometbft/cometbft/libs/log"
	servertypes "github.com/cosmos/cosmos-sdk/server/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cast"

	"github.com/baron-chain/gasdistd/app/params"
	contracttypes "github.com/baron-chain/gasdistd/x/contract/types"
	gasdistkeeper "github.com/baron-chain/gasdistd/x/gasdistributor/keeper"
	gasdisttypes "github.com/baron-chain/gasdistd/x/gasdistributor/types"
	lazystakingkeeper "github.com/baron-chain/gasdistd/x/lazystaking/keeper"
	lazystakingtypes "github.com/baron-chain/gasdistd/x/lazystaking/types"
	ledgerkeeper "github.com/baron-chain/gasdistd/x/ledger/keeper"
)

const appName = "GasDistApp"

var (
	NodeDir      = ".gasdistd"
	Bech32Prefix = "neutron"

	DefaultNodeHome = os.ExpandEnv("$HOME/") + NodeDir

	// store prefixes of the application database
	ledgerPrefix         = []byte{0x01}
	gasDistributorPrefix = []byte{0x02}
	lazyStakingPrefix    = []byte{0x03}
	appStatePrefix       = []byte{0x04}

	lastBlockKey = []byte("last_block")
	chainIDKey   = []byte("chain_id")
)

// GasDistApp hosts the gas distributor and lazy staking contracts on top of
// a local ledger. Every entry point is serialized.
type GasDistApp struct {
	mtx sync.Mutex

	logger log.Logger
	db     dbm.DB
	config params.Config

	LedgerKeeper         ledgerkeeper.Keeper
	GasDistributorKeeper gasdistkeeper.Keeper
	LazyStakingKeeper    lazystakingkeeper.Keeper

	anteHandler AnteHandler
	block       contracttypes.BlockInfo
}

// Option configures optional app features.
type Option func(*appOptions)

type appOptions struct {
	registerer prometheus.Registerer
}

// WithMetricsRegisterer enables distribution metrics on reg.
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return func(o *appOptions) {
		o.registerer = reg
	}
}

// NewGasDistApp wires the keepers over db. Metrics are enabled by
// telemetry.enabled or WithMetricsRegisterer.
func NewGasDistApp(logger log.Logger, db dbm.DB, appOpts servertypes.AppOptions, opts ...Option) (*GasDistApp, error) {
	cfg, err := params.ConfigFromAppOptions(appOpts)
	if err != nil {
		return nil, err
	}
	o := appOptions{}
	if cast.ToBool(appOpts.Get(params.FlagTelemetryEnabled)) {
		o.registerer = prometheus.DefaultRegisterer
	}
	for _, opt := range opts {
		opt(&o)
	}

	validator := contracttypes.Bech32Validator{Prefix: Bech32Prefix}
	app := &GasDistApp{
		logger: logger,
		db:     db,
		config: cfg,
	}
	app.LedgerKeeper = ledgerkeeper.NewKeeper(dbm.NewPrefixDB(db, ledgerPrefix), validator, logger)

	var keeperOpts []gasdistkeeper.Option
	if o.registerer != nil {
		keeperOpts = append(keeperOpts, gasdistkeeper.WithMetrics(o.registerer))
	}
	app.GasDistributorKeeper = gasdistkeeper.NewKeeper(
		dbm.NewPrefixDB(db, gasDistributorPrefix),
		app.LedgerKeeper,
		validator,
		logger,
		keeperOpts...,
	)
	app.LazyStakingKeeper = lazystakingkeeper.NewKeeper(dbm.NewPrefixDB(db, lazyStakingPrefix), validator, logger)

	anteHandler, err := NewAnteHandler(HandlerOptions{
		Validator:       validator,
		ContractExists:  app.contractExists,
		MaxMsgSizeBytes: cfg.MaxMsgSizeBytes,
	})
	if err != nil {
		return nil, err
	}
	app.anteHandler = anteHandler

	if err := app.loadLastBlock(); err != nil {
		return nil, err
	}
	return app, nil
}

func (app *GasDistApp) Logger() log.Logger {
	return app.logger.With("module", "app")
}

func (app *GasDistApp) Config() params.Config {
	return app.config
}

// GasDistributorAddress is the contract address of the gas distributor.
func GasDistributorAddress() string {
	return contracttypes.ModuleAddress(gasdisttypes.ModuleName, Bech32Prefix)
}

// LazyStakingAddress is the contract address of the lazy staking contract.
func LazyStakingAddress() string {
	return contracttypes.ModuleAddress(lazystakingtypes.ModuleName, Bech32Prefix)
}

func (app *GasDistApp) contractExists(address string) bool {
	switch address {
	case GasDistributorAddress():
		_, err := app.GasDistributorKeeper.GetContractVersion()
		return err == nil
	case LazyStakingAddress():
		_, err := app.LazyStakingKeeper.GetContractVersion()
		return err == nil
	default:
		return false
	}
}

func (app *GasDistApp) appStore() dbm.DB {
	return dbm.NewPrefixDB(app.db, appStatePrefix)
}

// Initialized reports whether InitChain has run on the database.
func (app *GasDistApp) Initialized() (bool, error) {
	app.mtx.Lock()
	defer app.mtx.Unlock()
	return app.appStore().Has(chainIDKey)
}

// InitChain loads genesis into an empty database.
func (app *GasDistApp) InitChain(chainID string, genesis GenesisState) error {
	app.mtx.Lock()
	defer app.mtx.Unlock()

	if initialized, err := app.appStore().Has(chainIDKey); err != nil {
		return err
	} else if initialized {
		return errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "chain already initialized")
	}
	if err := genesis.Validate(); err != nil {
		return err
	}
	if err := app.LedgerKeeper.InitGenesis(genesis.Ledger); err != nil {
		return errorsmod.Wrap(err, "ledger genesis")
	}
	if err := app.GasDistributorKeeper.InitGenesis(genesis.GasDistributor); err != nil {
		return errorsmod.Wrap(err, "gas distributor genesis")
	}
	if genesis.LazyStaking != nil {
		if err := app.LazyStakingKeeper.InitGenesis(LazyStakingAddress(), *genesis.LazyStaking); err != nil {
			return errorsmod.Wrap(err, "lazy staking genesis")
		}
	}
	app.block = contracttypes.BlockInfo{Height: genesis.InitialHeight, Time: genesis.GenesisTime, ChainID: chainID}
	if err := app.appStore().Set(chainIDKey, []byte(chainID)); err != nil {
		return err
	}
	app.Logger().Info("chain initialized", "chain_id", chainID, "policies", len(genesis.GasDistributor.Policies))
	return app.saveLastBlock()
}

// BeginBlock advances the block every following call observes.
func (app *GasDistApp) BeginBlock(blockTime time.Time) contracttypes.BlockInfo {
	app.mtx.Lock()
	defer app.mtx.Unlock()

	app.block.Height++
	app.block.Time = blockTime.UTC()
	if err := app.saveLastBlock(); err != nil {
		app.Logger().Error("failed to persist block", "height", app.block.Height, "err", err)
	}
	return app.block
}

// LastBlock returns the current block.
func (app *GasDistApp) LastBlock() contracttypes.BlockInfo {
	app.mtx.Lock()
	defer app.mtx.Unlock()
	return app.block
}

func (app *GasDistApp) env(contract string) contracttypes.Env {
	return contracttypes.Env{Block: app.block, Contract: contracttypes.ContractInfo{Address: contract}}
}

// ExecuteContract runs msg against contract on behalf of sender and executes
// the returned host messages. Nothing is applied when any step fails.
func (app *GasDistApp) ExecuteContract(ctx context.Context, contract, sender string, msg json.RawMessage) (*contracttypes.Response, error) {
	app.mtx.Lock()
	defer app.mtx.Unlock()

	tx := ExecuteTx{Contract: contract, Sender: sender, Msg: msg}
	if err := app.anteHandler(ctx, tx); err != nil {
		return nil, err
	}

	env := app.env(contract)
	info := contracttypes.MessageInfo{Sender: sender}
	var (
		resp *contracttypes.Response
		err  error
	)
	switch contract {
	case GasDistributorAddress():
		var m gasdisttypes.ExecuteMsg
		if err := unmarshalMsg(msg, &m); err != nil {
			return nil, err
		}
		resp, err = app.GasDistributorKeeper.Execute(ctx, env, info, m)
	case LazyStakingAddress():
		var m lazystakingtypes.ExecuteMsg
		if err := unmarshalMsg(msg, &m); err != nil {
			return nil, err
		}
		resp, err = app.LazyStakingKeeper.Execute(ctx, env, info, m)
	default:
		return nil, errorsmod.Wrapf(sdkerrors.ErrNotFound, "no contract at %s", contract)
	}
	if err != nil {
		return nil, err
	}
	if err := app.LedgerKeeper.Dispatch(ctx, contract, resp.Messages); err != nil {
		return nil, errorsmod.Wrap(err, "dispatch host messages")
	}
	return resp, nil
}

// InstantiateLazyStaking creates the lazy staking contract when genesis did
// not.
func (app *GasDistApp) InstantiateLazyStaking(ctx context.Context, sender string, msg lazystakingtypes.InstantiateMsg) (*contracttypes.Response, error) {
	app.mtx.Lock()
	defer app.mtx.Unlock()
	return app.LazyStakingKeeper.Instantiate(ctx, app.env(LazyStakingAddress()), contracttypes.MessageInfo{Sender: sender}, msg)
}

// QueryContract answers a read only query of contract.
func (app *GasDistApp) QueryContract(ctx context.Context, contract string, msg json.RawMessage) ([]byte, error) {
	app.mtx.Lock()
	defer app.mtx.Unlock()

	env := app.env(contract)
	switch contract {
	case GasDistributorAddress():
		var m gasdisttypes.QueryMsg
		if err := unmarshalMsg(msg, &m); err != nil {
			return nil, err
		}
		return app.GasDistributorKeeper.Query(ctx, env, m)
	case LazyStakingAddress():
		var m lazystakingtypes.QueryMsg
		if err := unmarshalMsg(msg, &m); err != nil {
			return nil, err
		}
		return app.LazyStakingKeeper.Query(ctx, env, m)
	default:
		return nil, errorsmod.Wrapf(sdkerrors.ErrNotFound, "no contract at %s", contract)
	}
}

func unmarshalMsg(bz []byte, v interface{}) error {
	if err := json.Unmarshal(bz, v); err != nil {
		return errorsmod.Wrap(sdkerrors.ErrJSONUnmarshal, err.Error())
	}
	return nil
}

func (app *GasDistApp) saveLastBlock() error {
	bz, err := json.Marshal(app.block)
	if err != nil {
		return errorsmod.Wrap(sdkerrors.ErrJSONMarshal, err.Error())
	}
	return app.appStore().Set(lastBlockKey, bz)
}

func (app *GasDistApp) loadLastBlock() error {
	bz, err := app.appStore().Get(lastBlockKey)
	if err != nil || bz == nil {
		return err
	}
	if err := json.Unmarshal(bz, &app.block); err != nil {
		return errorsmod.Wrap(sdkerrors.ErrJSONUnmarshal, err.Error())
	}
	return nil
}
