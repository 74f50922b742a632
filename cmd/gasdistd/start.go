package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cometbft/cometbft/libs/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/baron-chain/gasdistd/app"
	"github.com/baron-chain/gasdistd/app/params"
	"github.com/baron-chain/gasdistd/server"
	gasdisttypes "github.com/baron-chain/gasdistd/x/gasdistributor/types"
)

// StartCmd serves the REST API and, when an interval is configured,
// submits a distribute call on every tick.
func StartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := getCmdContext(cmd)
			cfg, err := c.config()
			if err != nil {
				return err
			}
			gapp, db, err := c.openApp()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cfg.DistributeInterval > 0 {
				sender, _ := cmd.Flags().GetString(flagFrom)
				if sender == "" {
					sender = app.GasDistributorAddress()
				}
				go runDistributeLoop(ctx, gapp, sender, cfg.DistributeInterval, c.logger.With("module", "scheduler"))
			}

			var gatherer prometheus.Gatherer
			if cfg.TelemetryEnabled {
				gatherer = prometheus.DefaultGatherer
			}
			srv := server.New(gapp, app.GasDistributorAddress(), gatherer, c.logger)
			c.logger.Info("starting API server", "address", cfg.APIAddress, "telemetry", cfg.TelemetryEnabled)
			if err := srv.ListenAndServe(ctx, cfg.APIAddress); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			c.logger.Info("shutting down", "height", gapp.LastBlock().Height)
			return nil
		},
	}
	cmd.Flags().String(params.FlagAPIAddress, params.DefaultAPIAddress, "REST listen address, keep on loopback: execute does not authenticate senders")
	cmd.Flags().Duration(params.FlagDistributeInterval, 0, "submit distribute on this interval, 0 disables")
	cmd.Flags().Bool(params.FlagTelemetryEnabled, false, "expose distribution metrics on /metrics")
	cmd.Flags().Int(params.FlagMaxMsgSize, params.DefaultMaxMsgSizeBytes, "maximum execute message size in bytes")
	cmd.Flags().String(flagFrom, "", "sender of scheduled distribute calls, defaults to the contract")
	return cmd
}

func runDistributeLoop(ctx context.Context, gapp *app.GasDistApp, sender string, interval time.Duration, logger log.Logger) {
	msg, err := json.Marshal(gasdisttypes.NewDistribute())
	if err != nil {
		logger.Error("encode distribute", "err", err)
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			block := gapp.BeginBlock(now)
			resp, err := gapp.ExecuteContract(ctx, app.GasDistributorAddress(), sender, msg)
			if err != nil {
				logger.Error("scheduled distribute failed", "height", block.Height, "err", err)
				continue
			}
			logger.Info("scheduled distribute", "height", block.Height, "transfers", len(resp.Messages))
		}
	}
}
