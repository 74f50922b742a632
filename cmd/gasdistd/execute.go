package main

import (
	"encoding/json"
	"fmt"
	"time"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/baron-chain/gasdistd/app"
	gasdisttypes "github.com/baron-chain/gasdistd/x/gasdistributor/types"
	lazystakingtypes "github.com/baron-chain/gasdistd/x/lazystaking/types"
	ownabletypes "github.com/baron-chain/gasdistd/x/ownable/types"
)

const (
	flagAddFile      = "add-file"
	flagRemove       = "remove"
	flagReplaceFile  = "replace-file"
	flagAmount       = "amount"
	flagRecipient    = "recipient"
	flagExpiryHeight = "expiry-height"
	flagExpiryTime   = "expiry-time"
	flagContract     = "contract"
)

func buildExecuteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "execute",
		Aliases: []string{"tx"},
		Short:   "Execute a contract call in a new block",
	}
	cmd.PersistentFlags().String(flagFrom, "", "sender address")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "distribute",
			Short: "Top up every recipient below its threshold",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runExecute(cmd, app.GasDistributorAddress(), gasdisttypes.NewDistribute())
			},
		},
		setPoliciesCmd(),
		withdrawCmd(),
		ownershipCmd(),
		mintCmd(),
		instantiateLazyStakingCmd(),
	)
	return cmd
}

func setPoliciesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-policies",
		Short: "Add, remove or replace distribution policies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var msg gasdisttypes.SetPoliciesMsg
			if path, _ := cmd.Flags().GetString(flagAddFile); path != "" {
				policies, err := readPolicyFile(path)
				if err != nil {
					return err
				}
				msg.Add = policies
			}
			msg.Remove, _ = cmd.Flags().GetStringSlice(flagRemove)
			if path, _ := cmd.Flags().GetString(flagReplaceFile); path != "" {
				policies, err := readPolicyFile(path)
				if err != nil {
					return err
				}
				msg.Replace = &policies
			}
			return runExecute(cmd, app.GasDistributorAddress(), gasdisttypes.ExecuteMsg{SetPolicies: &msg})
		},
	}
	cmd.Flags().String(flagAddFile, "", "YAML file with policies to add or overwrite")
	cmd.Flags().StringSlice(flagRemove, nil, "recipients to remove")
	cmd.Flags().String(flagReplaceFile, "", "YAML file with the new policy table")
	return cmd
}

func withdrawCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw funds from the pool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var msg gasdisttypes.WithdrawPoolMsg
			if s, _ := cmd.Flags().GetString(flagAmount); s != "" {
				amount, err := math.ParseUint(s)
				if err != nil {
					return fmt.Errorf("--%s: %w", flagAmount, err)
				}
				msg.Amount = &amount
			}
			if s, _ := cmd.Flags().GetString(flagRecipient); s != "" {
				msg.Recipient = &s
			}
			return runExecute(cmd, app.GasDistributorAddress(), gasdisttypes.ExecuteMsg{WithdrawPool: &msg})
		},
	}
	cmd.Flags().String(flagAmount, "", "amount to withdraw, defaults to the whole pool")
	cmd.Flags().String(flagRecipient, "", "recipient, defaults to the sender")
	return cmd
}

func ownershipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ownership",
		Short: "Two step ownership transfer",
	}
	cmd.PersistentFlags().String(flagContract, "", "contract address, defaults to the gas distributor")

	transfer := &cobra.Command{
		Use:   "transfer [new-owner]",
		Short: "Propose a new owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expiry, err := expiryFromFlags(cmd)
			if err != nil {
				return err
			}
			return runUpdateOwnership(cmd, ownabletypes.NewTransferAction(args[0], expiry))
		},
	}
	transfer.Flags().Uint64(flagExpiryHeight, 0, "block height at which the proposal expires")
	transfer.Flags().String(flagExpiryTime, "", "RFC3339 time at which the proposal expires")

	cmd.AddCommand(
		transfer,
		&cobra.Command{
			Use:   "accept",
			Short: "Accept a pending ownership transfer",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runUpdateOwnership(cmd, ownabletypes.NewAcceptAction())
			},
		},
		&cobra.Command{
			Use:   "renounce",
			Short: "Give up ownership permanently",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runUpdateOwnership(cmd, ownabletypes.NewRenounceAction())
			},
		},
	)
	return cmd
}

func expiryFromFlags(cmd *cobra.Command) (*ownabletypes.Expiration, error) {
	height, _ := cmd.Flags().GetUint64(flagExpiryHeight)
	at, _ := cmd.Flags().GetString(flagExpiryTime)
	switch {
	case height > 0 && at != "":
		return nil, fmt.Errorf("--%s and --%s are exclusive", flagExpiryHeight, flagExpiryTime)
	case height > 0:
		return ownabletypes.ExpiresAtHeight(height), nil
	case at != "":
		t, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", flagExpiryTime, err)
		}
		return ownabletypes.ExpiresAtTime(t), nil
	default:
		return nil, nil
	}
}

func runUpdateOwnership(cmd *cobra.Command, action ownabletypes.Action) error {
	contract, _ := cmd.Flags().GetString(flagContract)
	if contract == "" || contract == app.GasDistributorAddress() {
		return runExecute(cmd, app.GasDistributorAddress(), gasdisttypes.ExecuteMsg{UpdateOwnership: &action})
	}
	return runExecute(cmd, contract, lazystakingtypes.ExecuteMsg{UpdateOwnership: &action})
}

func mintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mint [amount]",
		Short: "Mint the lazy staking denom",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := math.ParseUint(args[0])
			if err != nil {
				return err
			}
			msg := lazystakingtypes.MintMsg{Amount: amount}
			if s, _ := cmd.Flags().GetString(flagRecipient); s != "" {
				msg.Recipient = &s
			}
			return runExecute(cmd, app.LazyStakingAddress(), lazystakingtypes.ExecuteMsg{Mint: &msg})
		},
	}
	cmd.Flags().String(flagRecipient, "", "recipient, defaults to the sender")
	return cmd
}

func instantiateLazyStakingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instantiate-lazy-staking [subdenom]",
		Short: "Create the lazy staking contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := getCmdContext(cmd)
			sender, err := senderFlag(cmd)
			if err != nil {
				return err
			}
			msg := lazystakingtypes.InstantiateMsg{Subdenom: args[0]}
			if owner, _ := cmd.Flags().GetString(flagOwner); owner != "" {
				msg.Owner = &owner
			}
			gapp, db, err := c.openApp()
			if err != nil {
				return err
			}
			defer db.Close()
			gapp.BeginBlock(time.Now().UTC())
			resp, err := gapp.InstantiateLazyStaking(cmd.Context(), sender, msg)
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
	cmd.Flags().String(flagOwner, "", "owner, defaults to the sender")
	return cmd
}

func senderFlag(cmd *cobra.Command) (string, error) {
	sender, _ := cmd.Flags().GetString(flagFrom)
	if sender == "" {
		return "", fmt.Errorf("--%s is required", flagFrom)
	}
	return sender, nil
}

// runExecute submits msg to contract in a fresh block and prints the
// response.
func runExecute(cmd *cobra.Command, contract string, msg interface{}) error {
	c := getCmdContext(cmd)
	sender, err := senderFlag(cmd)
	if err != nil {
		return err
	}
	bz, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	gapp, db, err := c.openApp()
	if err != nil {
		return err
	}
	defer db.Close()

	block := gapp.BeginBlock(time.Now().UTC())
	resp, err := gapp.ExecuteContract(cmd.Context(), contract, sender, bz)
	if err != nil {
		return err
	}
	c.logger.Info("executed", "contract", contract, "height", block.Height, "messages", len(resp.Messages))
	return printJSON(cmd, resp)
}
