package config

import (
	"fmt"

	"nft-market/internal/types"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *types.Config) error {
	if cfg.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be >= 0, got %d", cfg.MaxRetries)
	}
	if cfg.SettleWait < 0 {
		return fmt.Errorf("settle_wait must be >= 0")
	}
	if cfg.ImplicitWait < 0 {
		return fmt.Errorf("implicit_wait must be >= 0")
	}
	if cfg.RetryDelay < 0 {
		return fmt.Errorf("retry_delay must be >= 0")
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0")
	}
	if cfg.RequestDelay <= 0 {
		return fmt.Errorf("request_delay must be > 0")
	}

	switch cfg.Driver {
	case types.DriverChromedp, types.DriverRod, types.DriverHTTP:
	default:
		return fmt.Errorf("driver must be %q, %q or %q, got %q",
			types.DriverChromedp, types.DriverRod, types.DriverHTTP, cfg.Driver)
	}
	if cfg.Stealth && cfg.Driver != types.DriverRod {
		return fmt.Errorf("stealth is only supported by the %q driver", types.DriverRod)
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Log.Level] {
		return fmt.Errorf("log.level must be debug/info/warn/error, got %q", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return fmt.Errorf("log.format must be 'text' or 'json', got %q", cfg.Log.Format)
	}
	if cfg.Log.File != "" && cfg.Log.MaxSizeMB <= 0 {
		return fmt.Errorf("log.max_size_mb must be > 0 when log.file is set")
	}

	return nil
}
