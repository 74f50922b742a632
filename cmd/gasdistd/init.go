package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tmos "github.com/cometbft/cometbft/libs/os"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/baron-chain/gasdistd/app"
	"github.com/baron-chain/gasdistd/app/params"
	gasdisttypes "github.com/baron-chain/gasdistd/x/gasdistributor/types"
	ledgertypes "github.com/baron-chain/gasdistd/x/ledger/types"
)

const (
	flagChainID   = "chain-id"
	flagOwner     = "owner"
	flagDenom     = "denom"
	flagMode      = "mode"
	flagPolicies  = "policies"
	flagOverwrite = "overwrite"
	flagPoolFunds = "pool-funds"
)

const appTomlTemplate = `[gasdist]
max-msg-size = %d
distribute-interval = "%s"

[api]
address = "%s"

[telemetry]
enabled = false
`

// InitCmd writes genesis.json and app.toml into the home directory.
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize config and genesis of a node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := getCmdContext(cmd)
			owner, _ := cmd.Flags().GetString(flagOwner)
			if owner == "" {
				return fmt.Errorf("--%s is required", flagOwner)
			}
			overwrite, _ := cmd.Flags().GetBool(flagOverwrite)
			if _, err := os.Stat(c.genesisFile()); err == nil && !overwrite {
				return fmt.Errorf("%s already exists, use --%s", c.genesisFile(), flagOverwrite)
			}

			genesis := app.NewDefaultGenesisState(owner)
			if denom, _ := cmd.Flags().GetString(flagDenom); denom != "" {
				genesis.GasDistributor.Params.Denom = denom
			}
			mode, _ := cmd.Flags().GetString(flagMode)
			m, err := gasdisttypes.ParseDistributionMode(mode)
			if err != nil {
				return err
			}
			genesis.GasDistributor.Params.Mode = m
			if path, _ := cmd.Flags().GetString(flagPolicies); path != "" {
				policies, err := readPolicyFile(path)
				if err != nil {
					return err
				}
				genesis.GasDistributor.Policies = policies
			}
			if pool, _ := cmd.Flags().GetString(flagPoolFunds); pool != "" {
				balance, err := parsePoolFunds(pool)
				if err != nil {
					return err
				}
				genesis.Ledger.Balances = append(genesis.Ledger.Balances, balance)
			}
			if err := genesis.Validate(); err != nil {
				return err
			}

			chainID, _ := cmd.Flags().GetString(flagChainID)
			if err := tmos.EnsureDir(c.configDir(), 0o755); err != nil {
				return err
			}
			bz, err := json.MarshalIndent(GenesisDoc{ChainID: chainID, AppState: genesis}, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(c.genesisFile(), bz, 0o644); err != nil {
				return err
			}
			appToml := filepath.Join(c.configDir(), "app.toml")
			if _, err := os.Stat(appToml); os.IsNotExist(err) {
				cfg := params.DefaultConfig()
				content := fmt.Sprintf(appTomlTemplate, cfg.MaxMsgSizeBytes, cfg.DistributeInterval, cfg.APIAddress)
				if err := os.WriteFile(appToml, []byte(content), 0o644); err != nil {
					return err
				}
			}
			c.logger.Info("initialized node", "home", c.home, "chain_id", chainID, "owner", owner)
			return nil
		},
	}
	cmd.Flags().String(flagChainID, "gasdist-1", "chain id")
	cmd.Flags().String(flagOwner, "", "owner of the gas distributor")
	cmd.Flags().String(flagDenom, gasdisttypes.DefaultDenom, "distributed denom")
	cmd.Flags().String(flagMode, string(gasdisttypes.ModeAllOrNothing), "distribution mode: all_or_nothing|best_effort")
	cmd.Flags().String(flagPolicies, "", "YAML file with the initial policies")
	cmd.Flags().String(flagPoolFunds, "", "initial pool balance, e.g. 1000000untrn")
	cmd.Flags().Bool(flagOverwrite, false, "overwrite an existing genesis")
	return cmd
}

func parsePoolFunds(s string) (ledgertypes.Balance, error) {
	coins, err := sdk.ParseCoinsNormalized(strings.TrimSpace(s))
	if err != nil {
		return ledgertypes.Balance{}, err
	}
	return ledgertypes.Balance{Address: app.GasDistributorAddress(), Coins: coins}, nil
}
