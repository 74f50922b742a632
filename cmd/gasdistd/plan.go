package main

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	gasdistkeeper "github.com/baron-chain/gasdistd/x/gasdistributor/keeper"
	gasdisttypes "github.com/baron-chain/gasdistd/x/gasdistributor/types"
	ledgerkeeper "github.com/baron-chain/gasdistd/x/ledger/keeper"
)

const (
	flagGRPC        = "grpc"
	flagPoolAddress = "pool-address"
)

// PlanCmd computes a distribution round against the balances of a live
// chain without executing anything.
func PlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Dry-run a distribution round against a chain's gRPC endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := getCmdContext(cmd)
			target, _ := cmd.Flags().GetString(flagGRPC)
			policyPath, _ := cmd.Flags().GetString(flagPolicies)
			poolAddress, _ := cmd.Flags().GetString(flagPoolAddress)
			denom, _ := cmd.Flags().GetString(flagDenom)
			modeFlag, _ := cmd.Flags().GetString(flagMode)
			if policyPath == "" || poolAddress == "" {
				return fmt.Errorf("--%s and --%s are required", flagPolicies, flagPoolAddress)
			}
			mode, err := gasdisttypes.ParseDistributionMode(modeFlag)
			if err != nil {
				return err
			}
			policies, err := readPolicyFile(policyPath)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			oracle, err := ledgerkeeper.DialGRPCOracle(ctx, target)
			if err != nil {
				return err
			}
			defer oracle.Close()

			pool, err := oracle.Balance(ctx, poolAddress, denom)
			if err != nil {
				return fmt.Errorf("query pool balance: %w", err)
			}
			balanceOf := func(recipient string) (math.Uint, error) {
				return oracle.Balance(ctx, recipient, denom)
			}
			round, err := gasdistkeeper.ComputeRound(policies, balanceOf, pool, mode)
			if err != nil {
				return err
			}
			c.logger.Info("planned round", "pool", pool, "transfers", len(round.Transfers), "total", round.Total)
			return printJSON(cmd, round)
		},
	}
	cmd.Flags().String(flagGRPC, "localhost:9090", "gRPC endpoint of the chain")
	cmd.Flags().String(flagPolicies, "", "YAML file with the policies")
	cmd.Flags().String(flagPoolAddress, "", "address holding the pool")
	cmd.Flags().String(flagDenom, gasdisttypes.DefaultDenom, "distributed denom")
	cmd.Flags().String(flagMode, string(gasdisttypes.ModeAllOrNothing), "distribution mode: all_or_nothing|best_effort")
	return cmd
}
