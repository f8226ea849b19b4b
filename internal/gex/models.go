package gex

import "time"

// ExposurePoint is the per-strike dealer exposure reported by the fetcher.
// Gex and Dex are signed magnitudes (net gamma and net delta exposure).
type ExposurePoint struct {
	Strike float64 `json:"strike"`
	Gex    float64 `json:"gex"`
	Dex    float64 `json:"dex"`
}

// Snapshot is one read-only view of an underlying's exposure profile.
// Strikes are unique within a snapshot; ordering is not guaranteed.
type Snapshot struct {
	Symbol    string          `json:"symbol"`
	Spot      float64         `json:"spot"`
	Points    []ExposurePoint `json:"points"`
	Timestamp time.Time       `json:"timestamp"`
}

// WallSide categorizes a gamma wall relative to spot.
type WallSide string

const (
	SideResistance WallSide = "resistance"
	SideSupport    WallSide = "support"
)

// GammaWall is an ExposurePoint ranked as a support or resistance level.
// Anomalous marks a point violating the sign convention (negative gex above
// spot or positive gex below it); such a wall must not anchor a short strike.
type GammaWall struct {
	ExposurePoint
	Side             WallSide `json:"side"`
	DistanceFromSpot float64  `json:"distance_from_spot"`
	Anomalous        bool     `json:"anomalous,omitempty"`
}
