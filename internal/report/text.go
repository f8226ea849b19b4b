// Package report renders a Recommendation for humans or machines. It only
// formats the value it is given; all decision logic lives in analysis.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/dgnsrekt/gex-condor/internal/analysis"
	"github.com/dgnsrekt/gex-condor/internal/gex"
)

const rule = "======================================================================"

// Text renders the condor recommendation as a terminal report.
func Text(rec *analysis.Recommendation) string {
	var sb strings.Builder

	sb.WriteString(rule + "\n")
	sb.WriteString("GEX-BASED IRON CONDOR RECOMMENDATION\n")
	sb.WriteString(rule + "\n\n")

	fmt.Fprintf(&sb, "Market:\n")
	fmt.Fprintf(&sb, "  %s Price:     $%.2f\n", rec.Symbol, rec.Spot)
	fmt.Fprintf(&sb, "  Risk Profile:  %s\n", strings.ToUpper(string(rec.RiskProfile)))
	fmt.Fprintf(&sb, "  Analysis Time: %s\n", rec.GeneratedAt.Format("2006-01-02 03:04:05 PM MST"))

	fmt.Fprintf(&sb, "\nCall Side (Resistance):\n")
	fmt.Fprintf(&sb, "  Short Call:  %s (%+.0f pts, %+.2f%%)\n",
		strike(rec.ShortCall), rec.ShortCall-rec.Spot, (rec.ShortCall-rec.Spot)/rec.Spot*100)
	fmt.Fprintf(&sb, "  Long Call:   %s (+%d wide)\n", strike(rec.LongCall), rec.WingWidth)
	fmt.Fprintf(&sb, "  Gamma Wall:  %s (GEX: %s)\n",
		strike(rec.ResistanceWall.Strike), magnitude(rec.ResistanceWall.Gex))

	fmt.Fprintf(&sb, "\nPut Side (Support):\n")
	fmt.Fprintf(&sb, "  Short Put:   %s (%.0f pts, %.2f%%)\n",
		strike(rec.ShortPut), rec.Spot-rec.ShortPut, (rec.Spot-rec.ShortPut)/rec.Spot*100)
	fmt.Fprintf(&sb, "  Long Put:    %s (-%d wide)\n", strike(rec.LongPut), rec.WingWidth)
	fmt.Fprintf(&sb, "  Gamma Wall:  %s (GEX: %s)\n",
		strike(rec.SupportWall.Strike), magnitude(rec.SupportWall.Gex))

	fmt.Fprintf(&sb, "\nRange Analysis:\n")
	fmt.Fprintf(&sb, "  Total Range: %.0f points (%.2f%%)\n", rec.RangePoints, rec.RangePct)
	fmt.Fprintf(&sb, "  Breakevens:  %.2f to %.2f\n", rec.Breakevens.Low, rec.Breakevens.High)

	writeLevels(&sb, "Top Resistance Levels (Call Side):", rec.TopResistance)
	writeLevels(&sb, "Top Support Levels (Put Side):", rec.TopSupport)

	fmt.Fprintf(&sb, "\nEstimated Metrics:\n")
	fmt.Fprintf(&sb, "  Expected Credit: $%.2f - $%.2f\n", rec.Metrics.Credit.Low, rec.Metrics.Credit.High)
	fmt.Fprintf(&sb, "  Max Loss/Side:   $%.2f - $%.2f\n", rec.Metrics.MaxLossPerSide.Low, rec.Metrics.MaxLossPerSide.High)
	fmt.Fprintf(&sb, "  Prob of Profit:  ~%.0f%%\n", rec.Metrics.ProbabilityOfProfit)

	fmt.Fprintf(&sb, "\nTiming:\n")
	fmt.Fprintf(&sb, "  Entry Window:  %s - %s\n",
		rec.Timing.EntryStart.Format("Mon Jan 2 3:04 PM MST"),
		rec.Timing.EntryEnd.Format("3:04 PM MST"))
	fmt.Fprintf(&sb, "  Profit Target: %.0f-%.0f%% of credit received\n",
		rec.Timing.ProfitTargetPct.Low, rec.Timing.ProfitTargetPct.High)
	fmt.Fprintf(&sb, "  Stop Loss:     %.0fx credit received\n", rec.Timing.StopLossCreditMultiple)
	fmt.Fprintf(&sb, "  Exit Before:   %s\n", rec.Timing.ExitBy.Format("3:04 PM MST"))

	if len(rec.Warnings) > 0 {
		fmt.Fprintf(&sb, "\nWarnings (low confidence):\n")
		for _, w := range rec.Warnings {
			fmt.Fprintf(&sb, "  - %s\n", w)
		}
	}

	sb.WriteString("\n" + rule + "\n")
	return sb.String()
}

func writeLevels(sb *strings.Builder, title string, walls []gex.GammaWall) {
	fmt.Fprintf(sb, "\n%s\n", title)
	for i, w := range walls {
		fmt.Fprintf(sb, "  %d. %s -> GEX: %8s, DEX: %8s", i+1, strike(w.Strike), magnitude(w.Gex), magnitude(w.Dex))
		if w.Anomalous {
			sb.WriteString("  [anomalous sign]")
		}
		sb.WriteString("\n")
	}
}

func strike(v float64) string {
	return fmt.Sprintf("%.0f", v)
}

// magnitude formats a gex value in millions or billions.
func magnitude(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e9:
		return fmt.Sprintf("%.2fB", v/1e9)
	default:
		return fmt.Sprintf("%.2fM", v/1e6)
	}
}
