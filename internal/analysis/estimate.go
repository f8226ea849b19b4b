package analysis

// Range is a (low, high) estimate band in index points.
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Metrics are the heuristic financial estimates attached to a recommendation.
// These are approximations derived from the wing width and risk profile, not
// the output of a pricing model.
type Metrics struct {
	// Credit is the estimated total credit for the condor (both spreads).
	Credit Range `json:"credit"`

	// MaxLossPerSide is the estimated worst case for one spread:
	// roughly wing width minus that side's share of the credit.
	MaxLossPerSide Range `json:"max_loss_per_side"`

	// ProbabilityOfProfit is the profile's fixed POP band, percent.
	ProbabilityOfProfit float64 `json:"probability_of_profit"`
}

// Estimator produces heuristic metrics for a condor. It is an interface so a
// volatility-aware model can replace the fixed bands without touching strike
// selection.
type Estimator interface {
	Estimate(profile RiskProfile, wingWidth int) Metrics
}

// BandEstimator estimates credit as a fixed per-profile fraction band of the
// condor's total width (2 x wing). Tighter profiles sit closer to the walls
// and collect more premium, so the factors grow as the buffer shrinks.
type BandEstimator struct{}

func (BandEstimator) factors(profile RiskProfile) (low, high float64) {
	switch profile {
	case Moderate:
		return 0.18, 0.25
	case Aggressive:
		return 0.21, 0.28
	default:
		return 0.15, 0.22
	}
}

func (e BandEstimator) Estimate(profile RiskProfile, wingWidth int) Metrics {
	low, high := e.factors(profile)
	totalWidth := 2 * float64(wingWidth)

	credit := Range{Low: totalWidth * low, High: totalWidth * high}
	return Metrics{
		Credit: credit,
		MaxLossPerSide: Range{
			Low:  float64(wingWidth) - credit.High/2,
			High: float64(wingWidth) - credit.Low/2,
		},
		ProbabilityOfProfit: profile.ProbabilityOfProfit(),
	}
}
