package analysis

import "errors"

var (
	// ErrInsufficientData means a snapshot is present but lacks usable points
	// on one or both sides of spot, so strikes cannot be placed.
	ErrInsufficientData = errors.New("insufficient gamma data around spot")

	// ErrInvalidConfig means the condor configuration or the strikes it
	// produces are untradable (non-positive wing, range below the minimum).
	ErrInvalidConfig = errors.New("invalid condor configuration")
)
