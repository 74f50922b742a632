package params

import (
	"fmt"
	"time"

	servertypes "github.com/cosmos/cosmos-sdk/server/types"
	"github.com/spf13/cast"
)

const (
	FlagMaxMsgSize         = "gasdist.max-msg-size"
	FlagDistributeInterval = "gasdist.distribute-interval"
	FlagAPIAddress         = "api.address"
	FlagTelemetryEnabled   = "telemetry.enabled"

	DefaultMaxMsgSizeBytes = 64 * 1024

	// DefaultAPIAddress is loopback only. The execute route does not
	// authenticate senders.
	DefaultAPIAddress = "tcp://127.0.0.1:1317"
)

// Config is the node configuration.
type Config struct {
	MaxMsgSizeBytes    int
	DistributeInterval time.Duration
	APIAddress         string
	TelemetryEnabled   bool
}

func DefaultConfig() Config {
	return Config{
		MaxMsgSizeBytes: DefaultMaxMsgSizeBytes,
		APIAddress:      DefaultAPIAddress,
	}
}

// ConfigFromAppOptions overlays the set options on DefaultConfig.
func ConfigFromAppOptions(appOpts servertypes.AppOptions) (Config, error) {
	cfg := DefaultConfig()
	if appOpts == nil {
		return cfg, nil
	}
	if v := appOpts.Get(FlagMaxMsgSize); v != nil {
		n, err := cast.ToIntE(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", FlagMaxMsgSize, err)
		}
		cfg.MaxMsgSizeBytes = n
	}
	if v := appOpts.Get(FlagDistributeInterval); v != nil {
		d, err := cast.ToDurationE(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", FlagDistributeInterval, err)
		}
		cfg.DistributeInterval = d
	}
	if v := cast.ToString(appOpts.Get(FlagAPIAddress)); v != "" {
		cfg.APIAddress = v
	}
	cfg.TelemetryEnabled = cast.ToBool(appOpts.Get(FlagTelemetryEnabled))
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.MaxMsgSizeBytes <= 0 {
		return fmt.Errorf("%s must be positive, got %d", FlagMaxMsgSize, c.MaxMsgSizeBytes)
	}
	if c.DistributeInterval < 0 {
		return fmt.Errorf("%s must not be negative", FlagDistributeInterval)
	}
	return nil
}
