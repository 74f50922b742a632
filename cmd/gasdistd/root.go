package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	dbm "github.com/cometbft/cometbft-db"
	"github.com/cometbft/cometbft/libs/log"
	tmos "github.com/cometbft/cometbft/libs/os"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/baron-chain/gasdistd/app"
	"github.com/baron-chain/gasdistd/app/params"
)

const (
	appEnvPrefix = "GASDISTD"

	flagLogLevel  = "log_level"
	flagLogFormat = "log_format"
	flagFrom      = "from"

	logFormatJSON = "json"

	dbName = "gasdist"
)

type ctxKey struct{}

// cmdContext is shared by all commands of one invocation.
type cmdContext struct {
	viper  *viper.Viper
	logger log.Logger
	home   string
}

// NewRootCmd creates the gasdistd root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               version.AppName,
		Short:             "Gas distributor host",
		SilenceUsage:      true,
		PersistentPreRunE: createPreRunE(),
	}
	if rootCmd.Use == "" {
		rootCmd.Use = "gasdistd"
	}

	rootCmd.PersistentFlags().String(flags.FlagHome, app.DefaultNodeHome, "directory for config and data")
	rootCmd.PersistentFlags().String(flagLogLevel, "info", "log level: debug|info|error|none")
	rootCmd.PersistentFlags().String(flagLogFormat, "plain", "log format: plain|json")

	rootCmd.AddCommand(
		InitCmd(),
		buildExecuteCommand(),
		buildQueryCommand(),
		ExportCmd(),
		StartCmd(),
		PlanCmd(),
	)
	return rootCmd
}

func createPreRunE() func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		v, err := initViper(cmd.Flags())
		if err != nil {
			return err
		}
		logger, err := newLogger(v)
		if err != nil {
			return err
		}
		cmd.SetContext(contextWith(cmd, &cmdContext{viper: v, logger: logger, home: v.GetString(flags.FlagHome)}))
		return nil
	}
}

// initViper binds flags, environment and <home>/config/app.toml, in that
// order of precedence.
func initViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(appEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	configFile := filepath.Join(v.GetString(flags.FlagHome), "config", "app.toml")
	if _, err := os.Stat(configFile); err == nil {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read %s: %w", configFile, err)
		}
	}
	return v, nil
}

func newLogger(v *viper.Viper) (log.Logger, error) {
	var logger log.Logger
	if v.GetString(flagLogFormat) == logFormatJSON {
		logger = log.NewTMJSONLogger(log.NewSyncWriter(os.Stderr))
	} else {
		logger = log.NewTMLogger(log.NewSyncWriter(os.Stderr))
	}
	level := v.GetString(flagLogLevel)
	if level == "" {
		return logger, nil
	}
	option, err := log.AllowLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewFilter(logger, option), nil
}

func contextWith(cmd *cobra.Command, c *cmdContext) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, c)
}

func getCmdContext(cmd *cobra.Command) *cmdContext {
	if ctx := cmd.Context(); ctx != nil {
		if c, ok := ctx.Value(ctxKey{}).(*cmdContext); ok {
			return c
		}
	}
	v := viper.New()
	return &cmdContext{viper: v, logger: log.NewNopLogger(), home: app.DefaultNodeHome}
}

func (c *cmdContext) configDir() string { return filepath.Join(c.home, "config") }
func (c *cmdContext) dataDir() string   { return filepath.Join(c.home, "data") }

func (c *cmdContext) genesisFile() string { return filepath.Join(c.configDir(), "genesis.json") }

// openApp opens the node database and initializes it from the genesis file
// on first use.
func (c *cmdContext) openApp(opts ...app.Option) (*app.GasDistApp, dbm.DB, error) {
	if err := tmos.EnsureDir(c.dataDir(), 0o755); err != nil {
		return nil, nil, err
	}
	db, err := dbm.NewGoLevelDBWithOpts(dbName, c.dataDir(), &opt.Options{
		BlockCacheCapacity: 8 * opt.MiB,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	gapp, err := app.NewGasDistApp(c.logger, db, c.viper, opts...)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	initialized, err := gapp.Initialized()
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	if !initialized {
		if err := c.initFromGenesis(gapp); err != nil {
			db.Close()
			return nil, nil, err
		}
	}
	return gapp, db, nil
}

func (c *cmdContext) initFromGenesis(gapp *app.GasDistApp) error {
	bz, err := os.ReadFile(c.genesisFile())
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s not found, run init first", c.genesisFile())
	}
	if err != nil {
		return err
	}
	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return fmt.Errorf("parse %s: %w", c.genesisFile(), err)
	}
	return gapp.InitChain(doc.ChainID, doc.AppState)
}

// GenesisDoc is the content of genesis.json.
type GenesisDoc struct {
	ChainID  string           `json:"chain_id"`
	AppState app.GenesisState `json:"app_state"`
}

func (c *cmdContext) config() (params.Config, error) {
	return params.ConfigFromAppOptions(c.viper)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return err
}
