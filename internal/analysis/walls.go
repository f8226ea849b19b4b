package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/dgnsrekt/gex-condor/internal/gex"
)

// FindWalls partitions a snapshot's exposure points into ranked resistance
// (above spot) and support (below spot) levels. Both sequences are sorted by
// |gex| descending; exact ties rank the strike closer to spot first. A point
// sitting exactly at spot belongs to neither side.
//
// The full ranking is returned; callers truncate to the top-N they need.
func FindWalls(snap *gex.Snapshot, mode SignMode) (resistance, support []gex.GammaWall, err error) {
	if snap == nil || len(snap.Points) == 0 {
		return nil, nil, fmt.Errorf("%w: empty snapshot", gex.ErrMissingData)
	}
	if snap.Spot <= 0 {
		return nil, nil, fmt.Errorf("%w: non-positive spot %v", gex.ErrMissingData, snap.Spot)
	}

	usable := 0
	for _, p := range snap.Points {
		if p.Strike == snap.Spot {
			continue
		}
		usable++

		side := gex.SideResistance
		if p.Strike < snap.Spot {
			side = gex.SideSupport
		}

		anomalous := (side == gex.SideResistance && p.Gex < 0) ||
			(side == gex.SideSupport && p.Gex > 0)
		if anomalous && mode == SignModeStrict {
			continue
		}

		wall := gex.GammaWall{
			ExposurePoint:    p,
			Side:             side,
			DistanceFromSpot: math.Abs(p.Strike - snap.Spot),
			Anomalous:        anomalous,
		}
		if side == gex.SideResistance {
			resistance = append(resistance, wall)
		} else {
			support = append(support, wall)
		}
	}

	if usable < 2 {
		return nil, nil, fmt.Errorf("%w: %d usable points", ErrInsufficientData, usable)
	}
	if len(resistance) == 0 {
		return nil, nil, fmt.Errorf("%w: no points above spot %v", ErrInsufficientData, snap.Spot)
	}
	if len(support) == 0 {
		return nil, nil, fmt.Errorf("%w: no points below spot %v", ErrInsufficientData, snap.Spot)
	}

	rankWalls(resistance)
	rankWalls(support)
	return resistance, support, nil
}

func rankWalls(walls []gex.GammaWall) {
	sort.SliceStable(walls, func(i, j int) bool {
		gi, gj := math.Abs(walls[i].Gex), math.Abs(walls[j].Gex)
		if gi != gj {
			return gi > gj
		}
		return walls[i].DistanceFromSpot < walls[j].DistanceFromSpot
	})
}
