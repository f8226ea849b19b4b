// Package analysis turns a gamma exposure snapshot into an iron condor
// recommendation: rank the gamma walls around spot, place four strikes off
// the dominant walls per the risk profile, and attach heuristic estimates.
package analysis

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/dgnsrekt/gex-condor/internal/gex"
	"github.com/dgnsrekt/gex-condor/internal/market"
)

// topLevels is how many ranked walls per side a recommendation carries.
const topLevels = 3

// Recommendation is the derived trade suggestion. It is immutable once
// returned and recomputed fresh on every Select call.
type Recommendation struct {
	Symbol      string    `json:"symbol"`
	Spot        float64   `json:"spot"`
	GeneratedAt time.Time `json:"generated_at"`

	RiskProfile RiskProfile `json:"risk_profile"`
	WingWidth   int         `json:"wing_width"`

	ShortCall float64 `json:"short_call"`
	LongCall  float64 `json:"long_call"`
	ShortPut  float64 `json:"short_put"`
	LongPut   float64 `json:"long_put"`

	ResistanceWall gex.GammaWall   `json:"resistance_wall"`
	SupportWall    gex.GammaWall   `json:"support_wall"`
	TopResistance  []gex.GammaWall `json:"top_resistance"`
	TopSupport     []gex.GammaWall `json:"top_support"`

	Metrics    Metrics `json:"metrics"`
	Breakevens Range   `json:"breakevens"`

	RangePoints float64 `json:"range_points"`
	RangePct    float64 `json:"range_pct"`

	// LowConfidence marks a degraded result, e.g. a short strike clamped
	// because the buffer pushed it past spot.
	LowConfidence bool     `json:"low_confidence,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`

	Timing market.Timing `json:"timing"`
}

// Selector computes recommendations. It holds no per-call state: Select is a
// pure function of its arguments and is safe for concurrent use.
type Selector struct {
	estimator Estimator
	session   *market.Session
	logger    *zap.Logger
}

// NewSelector creates a Selector. A nil estimator falls back to the fixed
// band estimator and a nil session to the NYSE default.
func NewSelector(estimator Estimator, session *market.Session, logger *zap.Logger) *Selector {
	if estimator == nil {
		estimator = BandEstimator{}
	}
	if session == nil {
		session = market.NewSession("America/New_York")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Selector{estimator: estimator, session: session, logger: logger}
}

// Select derives an iron condor recommendation from a snapshot. The analysis
// time is an explicit input so results are deterministic: identical snapshot,
// config and now yield an identical Recommendation.
func (s *Selector) Select(snap *gex.Snapshot, cfg Config, now time.Time) (*Recommendation, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	resistance, support, err := FindWalls(snap, cfg.SignMode)
	if err != nil {
		return nil, err
	}

	rWall, err := anchorWall(resistance)
	if err != nil {
		return nil, err
	}
	sWall, err := anchorWall(support)
	if err != nil {
		return nil, err
	}

	callBuffer := effectiveBuffer(cfg, rWall)
	putBuffer := effectiveBuffer(cfg, sWall)

	shortCall := roundToStrike(rWall.Strike-callBuffer, cfg.StrikeIncrement, snap.Spot)
	shortPut := roundToStrike(sWall.Strike+putBuffer, cfg.StrikeIncrement, snap.Spot)

	var warnings []string
	if shortCall <= snap.Spot {
		shortCall = firstStrikeAbove(snap.Spot, cfg.StrikeIncrement)
		warnings = append(warnings, fmt.Sprintf(
			"call buffer pushed the short call through spot; clamped to %v", shortCall))
	}
	if shortPut >= snap.Spot {
		shortPut = firstStrikeBelow(snap.Spot, cfg.StrikeIncrement)
		warnings = append(warnings, fmt.Sprintf(
			"put buffer pushed the short put through spot; clamped to %v", shortPut))
	}

	rangePoints := shortCall - shortPut
	if rangePoints < cfg.MinRangePoints {
		return nil, fmt.Errorf("%w: short strikes %v/%v are %v points apart, minimum is %v",
			ErrInvalidConfig, shortPut, shortCall, rangePoints, cfg.MinRangePoints)
	}

	metrics := s.estimator.Estimate(cfg.RiskProfile, cfg.WingWidth)

	rec := &Recommendation{
		Symbol:         snap.Symbol,
		Spot:           snap.Spot,
		GeneratedAt:    now,
		RiskProfile:    cfg.RiskProfile,
		WingWidth:      cfg.WingWidth,
		ShortCall:      shortCall,
		LongCall:       shortCall + float64(cfg.WingWidth),
		ShortPut:       shortPut,
		LongPut:        shortPut - float64(cfg.WingWidth),
		ResistanceWall: rWall,
		SupportWall:    sWall,
		TopResistance:  truncate(resistance, topLevels),
		TopSupport:     truncate(support, topLevels),
		Metrics:        metrics,
		// The low end of the credit estimate keeps the breakevens conservative.
		Breakevens: Range{
			Low:  shortPut - metrics.Credit.Low,
			High: shortCall + metrics.Credit.Low,
		},
		RangePoints:   rangePoints,
		RangePct:      rangePoints / snap.Spot * 100,
		LowConfidence: len(warnings) > 0,
		Warnings:      warnings,
		Timing:        s.session.TimingFor(now),
	}

	s.logger.Debug("selected condor",
		zap.String("symbol", rec.Symbol),
		zap.Float64("short_call", rec.ShortCall),
		zap.Float64("short_put", rec.ShortPut),
		zap.Bool("low_confidence", rec.LowConfidence))

	return rec, nil
}

// anchorWall returns the strongest wall that conforms to the sign
// convention. Anomalous walls stay in the ranking for display but never
// anchor a short strike.
func anchorWall(walls []gex.GammaWall) (gex.GammaWall, error) {
	for _, w := range walls {
		if !w.Anomalous {
			return w, nil
		}
	}
	return gex.GammaWall{}, fmt.Errorf("%w: no %s wall with conforming gex sign",
		ErrInsufficientData, walls[0].Side)
}

// effectiveBuffer is the profile buffer, tightened to the 5-point floor when
// the wall holds at least StrongWallGex of gamma. Price rarely trades through
// a dominant wall, so less room is ceded to it.
func effectiveBuffer(cfg Config, wall gex.GammaWall) float64 {
	buffer := cfg.RiskProfile.Buffer()
	if cfg.StrongWallGex > 0 && math.Abs(wall.Gex) >= cfg.StrongWallGex {
		return minBuffer
	}
	return buffer
}

// roundToStrike rounds price onto the strike grid. An exact half-increment
// tie resolves toward spot, keeping the condor tighter rather than
// accidentally wider.
func roundToStrike(price, increment, spot float64) float64 {
	lower := math.Floor(price/increment) * increment
	upper := lower + increment

	down, up := price-lower, upper-price
	switch {
	case down < up-tieEpsilon:
		return lower
	case up < down-tieEpsilon:
		return upper
	}
	if math.Abs(lower-spot) <= math.Abs(upper-spot) {
		return lower
	}
	return upper
}

const tieEpsilon = 1e-9

func firstStrikeAbove(spot, increment float64) float64 {
	return math.Floor(spot/increment)*increment + increment
}

func firstStrikeBelow(spot, increment float64) float64 {
	return math.Ceil(spot/increment)*increment - increment
}

func truncate(walls []gex.GammaWall, n int) []gex.GammaWall {
	if len(walls) <= n {
		n = len(walls)
	}
	out := make([]gex.GammaWall, n)
	copy(out, walls[:n])
	return out
}
