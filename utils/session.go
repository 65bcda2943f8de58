package utils

import (
	"fmt"

	"nft-market/internal/types"
)

// NewPageOpener returns the page opener selected by config.Driver
func NewPageOpener(config *types.Config, logger types.Logger) (types.PageOpener, error) {
	switch config.Driver {
	case types.DriverChromedp, "":
		return NewChromeOpener(config, logger), nil
	case types.DriverRod:
		return NewRodOpener(config, logger), nil
	case types.DriverHTTP:
		return NewStaticOpener(config, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownPageDriver, config.Driver)
	}
}
