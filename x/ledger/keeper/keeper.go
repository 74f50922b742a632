package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	dbm "github.com/cometbft/cometbft-db"
	"github.com/cometbft/cometbft/libs/log"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	contracttypes "github.com/baron-chain/gasdistd/x/contract/types"
	"github.com/baron-chain/gasdistd/x/ledger/types"
)

// Keeper is the host ledger. It serves balances to contracts and executes
// the host messages they return.
type Keeper struct {
	store     dbm.DB
	validator contracttypes.AddressValidator
	logger    log.Logger
}

func NewKeeper(store dbm.DB, validator contracttypes.AddressValidator, logger log.Logger) Keeper {
	return Keeper{store: store, validator: validator, logger: logger}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger() log.Logger {
	return k.logger.With("module", "x/"+types.ModuleName)
}

func (k Keeper) balanceStore() dbm.DB {
	return dbm.NewPrefixDB(k.store, types.BalancePrefix)
}

// Balance returns the balance of address in denom. Unknown addresses hold
// nothing.
func (k Keeper) Balance(_ context.Context, address, denom string) (math.Uint, error) {
	return k.balance(types.BalanceKey(address, denom))
}

func (k Keeper) balance(key []byte) (math.Uint, error) {
	bz, err := k.balanceStore().Get(key)
	if err != nil {
		return math.Uint{}, err
	}
	if bz == nil {
		return math.ZeroUint(), nil
	}
	return parseAmount(bz)
}

// AllBalances returns every coin held by address.
func (k Keeper) AllBalances(address string) (sdk.Coins, error) {
	iter, err := dbm.IteratePrefix(k.balanceStore(), types.AddressBalancesPrefix(address))
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	coins := sdk.NewCoins()
	for ; iter.Valid(); iter.Next() {
		_, denom := types.SplitBalanceKey(iter.Key())
		amount, err := parseAmount(iter.Value())
		if err != nil {
			return nil, err
		}
		coins = coins.Add(contracttypes.NewCoin(denom, amount))
	}
	return coins, iter.Error()
}

// SetBalance overwrites the balance of address in denom.
func (k Keeper) SetBalance(address, denom string, amount math.Uint) error {
	if err := k.validator.Validate(address); err != nil {
		return err
	}
	if err := sdk.ValidateDenom(denom); err != nil {
		return errorsmod.Wrap(sdkerrors.ErrInvalidCoins, err.Error())
	}
	key := types.BalanceKey(address, denom)
	if amount.IsZero() {
		return k.balanceStore().Delete(key)
	}
	return k.balanceStore().Set(key, []byte(amount.String()))
}

// Fund adds coins to the balance of address.
func (k Keeper) Fund(address string, coins sdk.Coins) error {
	for _, c := range coins {
		current, err := k.Balance(context.Background(), address, c.Denom)
		if err != nil {
			return err
		}
		if err := k.SetBalance(address, c.Denom, current.Add(math.NewUintFromBigInt(c.Amount.BigInt()))); err != nil {
			return err
		}
	}
	return nil
}

// InitGenesis loads gs into an empty ledger.
func (k Keeper) InitGenesis(gs types.GenesisState) error {
	if err := gs.Validate(); err != nil {
		return err
	}
	for _, b := range gs.Balances {
		if err := k.Fund(b.Address, b.Coins); err != nil {
			return err
		}
	}
	return nil
}

// ExportGenesis dumps every balance ordered by address.
func (k Keeper) ExportGenesis() (types.GenesisState, error) {
	iter, err := k.balanceStore().Iterator(nil, nil)
	if err != nil {
		return types.GenesisState{}, err
	}
	defer iter.Close()

	byAddress := map[string]sdk.Coins{}
	for ; iter.Valid(); iter.Next() {
		address, denom := types.SplitBalanceKey(iter.Key())
		amount, err := parseAmount(iter.Value())
		if err != nil {
			return types.GenesisState{}, err
		}
		byAddress[address] = byAddress[address].Add(contracttypes.NewCoin(denom, amount))
	}
	if err := iter.Error(); err != nil {
		return types.GenesisState{}, err
	}

	gs := types.DefaultGenesisState()
	for address, coins := range byAddress {
		gs.Balances = append(gs.Balances, types.Balance{Address: address, Coins: coins})
	}
	types.SortBalances(gs.Balances)
	return gs, nil
}

func parseAmount(bz []byte) (math.Uint, error) {
	amount, err := math.ParseUint(string(bz))
	if err != nil {
		return math.Uint{}, errorsmod.Wrapf(sdkerrors.ErrLogic, "corrupt balance %q: %s", bz, err)
	}
	return amount, nil
}
