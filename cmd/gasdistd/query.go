package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baron-chain/gasdistd/app"
	contracttypes "github.com/baron-chain/gasdistd/x/contract/types"
	gasdisttypes "github.com/baron-chain/gasdistd/x/gasdistributor/types"
)

func buildQueryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "query",
		Aliases: []string{"q"},
		Short:   "Query the local node state",
	}
	empty := &struct{}{}
	cmd.AddCommand(
		contractQueryCmd("policies", "List all distribution policies", gasdisttypes.QueryMsg{Policies: empty}),
		contractQueryCmd("owner", "Show the current owner", gasdisttypes.QueryMsg{Owner: empty}),
		contractQueryCmd("ownership", "Show the ownership state", gasdisttypes.QueryMsg{Ownership: empty}),
		contractQueryCmd("params", "Show the distribution params", gasdisttypes.QueryMsg{Params: empty}),
		contractQueryCmd("contract-version", "Show the contract version", gasdisttypes.QueryMsg{ContractVersion: empty}),
		&cobra.Command{
			Use:   "policy [recipient]",
			Short: "Show the policy of one recipient",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runContractQuery(cmd, gasdisttypes.QueryMsg{Policy: &gasdisttypes.PolicyQuery{Recipient: args[0]}})
			},
		},
		balanceCmd(),
	)
	return cmd
}

func contractQueryCmd(use, short string, msg gasdisttypes.QueryMsg) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runContractQuery(cmd, msg)
		},
	}
}

func runContractQuery(cmd *cobra.Command, msg gasdisttypes.QueryMsg) error {
	c := getCmdContext(cmd)
	bz, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	gapp, db, err := c.openApp()
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := gapp.QueryContract(cmd.Context(), app.GasDistributorAddress(), bz)
	if err != nil {
		return err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, res, "", "  "); err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out.String())
	return err
}

func balanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance [address]",
		Short: "Show the ledger balances of an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := getCmdContext(cmd)
			gapp, db, err := c.openApp()
			if err != nil {
				return err
			}
			defer db.Close()

			if denom, _ := cmd.Flags().GetString(flagDenom); denom != "" {
				amount, err := gapp.Balance(cmd.Context(), args[0], denom)
				if err != nil {
					return err
				}
				return printJSON(cmd, contracttypes.NewCoin(denom, amount))
			}
			coins, err := gapp.AllBalances(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, coins)
		},
	}
	cmd.Flags().String(flagDenom, "", "only show this denom")
	return cmd
}
