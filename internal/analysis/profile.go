package analysis

import "fmt"

// RiskProfile selects how far short strikes sit inside the gamma walls.
type RiskProfile string

const (
	Conservative RiskProfile = "conservative"
	Moderate     RiskProfile = "moderate"
	Aggressive   RiskProfile = "aggressive"
)

// minBuffer is the tightest distance, in points, a short strike is placed
// from its wall. It is the Aggressive buffer and the floor that strong-wall
// tightening shrinks to.
const minBuffer = 5.0

// ParseRiskProfile converts a config/CLI string into a RiskProfile.
func ParseRiskProfile(s string) (RiskProfile, error) {
	switch RiskProfile(s) {
	case Conservative, Moderate, Aggressive:
		return RiskProfile(s), nil
	default:
		return "", fmt.Errorf("%w: unknown risk profile %q (want conservative, moderate or aggressive)", ErrInvalidConfig, s)
	}
}

// Buffer returns the distance in points between a wall and its short strike.
func (p RiskProfile) Buffer() float64 {
	switch p {
	case Moderate:
		return 10
	case Aggressive:
		return minBuffer
	default:
		return 20
	}
}

// ProbabilityOfProfit returns the fixed POP band for the profile, percent.
// Not recomputed from live volatility.
func (p RiskProfile) ProbabilityOfProfit() float64 {
	switch p {
	case Moderate:
		return 65
	case Aggressive:
		return 60
	default:
		return 70
	}
}
