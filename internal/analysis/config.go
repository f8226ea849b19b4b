package analysis

import "fmt"

// SignMode controls handling of points that violate the resistance/support
// sign convention (negative gex above spot, positive gex below).
type SignMode string

const (
	// SignModeFlag keeps violating points in the ranking, marked Anomalous.
	// The selector never anchors a short strike on an anomalous wall.
	SignModeFlag SignMode = "flag"

	// SignModeStrict drops violating points before ranking.
	SignModeStrict SignMode = "strict"
)

// ParseSignMode converts a config/CLI string into a SignMode.
func ParseSignMode(s string) (SignMode, error) {
	switch SignMode(s) {
	case SignModeFlag, SignModeStrict:
		return SignMode(s), nil
	case "":
		return SignModeFlag, nil
	default:
		return "", fmt.Errorf("%w: unknown sign mode %q (want flag or strict)", ErrInvalidConfig, s)
	}
}

// Config parameterizes condor strike selection.
type Config struct {
	RiskProfile RiskProfile

	// WingWidth is the distance in points between a short strike and its
	// protective long strike.
	WingWidth int

	// StrikeIncrement is the underlying's native strike spacing. Strikes are
	// rounded onto this grid so they are tradable.
	StrikeIncrement float64

	// MinRangePoints is the smallest tradable short-call to short-put
	// distance. Tighter results fail with ErrInvalidConfig.
	MinRangePoints float64

	// StrongWallGex is the |gex| at which a wall is treated as firm enough
	// to tighten that side's buffer to the 5-point floor. Zero disables.
	StrongWallGex float64

	SignMode SignMode
}

const (
	DefaultWingWidth       = 15
	DefaultStrikeIncrement = 5.0
	DefaultMinRangePoints  = 30.0
	DefaultStrongWallGex   = 50e6
)

// DefaultConfig returns the standard SPX 0DTE configuration for a profile.
func DefaultConfig(profile RiskProfile) Config {
	return Config{
		RiskProfile:     profile,
		WingWidth:       DefaultWingWidth,
		StrikeIncrement: DefaultStrikeIncrement,
		MinRangePoints:  DefaultMinRangePoints,
		StrongWallGex:   DefaultStrongWallGex,
		SignMode:        SignModeFlag,
	}
}

func (c *Config) validate() error {
	if c.WingWidth <= 0 {
		return fmt.Errorf("%w: wing width must be positive, got %d", ErrInvalidConfig, c.WingWidth)
	}
	if c.StrikeIncrement <= 0 {
		return fmt.Errorf("%w: strike increment must be positive, got %v", ErrInvalidConfig, c.StrikeIncrement)
	}
	switch c.RiskProfile {
	case Conservative, Moderate, Aggressive:
	default:
		return fmt.Errorf("%w: unknown risk profile %q", ErrInvalidConfig, c.RiskProfile)
	}
	return nil
}
