package model

import (
	"errors"
	"fmt"
)

// Error taxonomy for the allocation engine. Callers match with errors.Is.
var (
	// ErrInsufficientData: the window is shorter than an indicator's minimum
	// requirement. Recoverable once more history accrues.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrMissingData: a required asset or auxiliary series is absent from the
	// tick's input. The engine answers with a flat allocation for that tick.
	ErrMissingData = errors.New("missing data")

	// ErrInvalidConfig: out-of-range construction parameters. Fatal, prevents
	// engine instantiation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrOutOfOrderTick: a tick's latest timestamp precedes the previous
	// tick's. The engine's cross-tick state is only meaningful under
	// non-decreasing timestamps.
	ErrOutOfOrderTick = errors.New("out-of-order tick")
)

func missingAsset(asset string) error {
	return fmt.Errorf("%w: asset %s absent from window", ErrMissingData, asset)
}
