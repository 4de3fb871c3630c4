package calculator

import (
	"sort"
	"strings"

	"CryptoPulse/internal/model"
)

// Breadth returns the percentage of assets with a positive 24h change.
// Returns 0 for an empty snapshot.
func Breadth(assets []model.AssetSnapshot) float64 {
	if len(assets) == 0 {
		return 0
	}
	pos := 0
	for _, a := range assets {
		if a.ChangePct24h > 0 {
			pos++
		}
	}
	return 100.0 * float64(pos) / float64(len(assets))
}

// AdvanceDecline counts advancing (change > 0) and declining
// (change <= 0) assets.
func AdvanceDecline(assets []model.AssetSnapshot) (adv, dec int) {
	for _, a := range assets {
		if a.ChangePct24h > 0 {
			adv++
		} else {
			dec++
		}
	}
	return adv, dec
}

// AverageChange returns the mean 24h change; 0 for an empty snapshot.
func AverageChange(assets []model.AssetSnapshot) float64 {
	if len(assets) == 0 {
		return 0
	}
	var sum float64
	for _, a := range assets {
		sum += a.ChangePct24h
	}
	return sum / float64(len(assets))
}

// MedianChange returns the median 24h change, averaging the two middle
// elements for even counts; 0 for an empty snapshot.
func MedianChange(assets []model.AssetSnapshot) float64 {
	if len(assets) == 0 {
		return 0
	}
	changes := make([]float64, len(assets))
	for i, a := range assets {
		changes[i] = a.ChangePct24h
	}
	sort.Float64s(changes)
	mid := len(changes) / 2
	if len(changes)%2 == 1 {
		return changes[mid]
	}
	return (changes[mid-1] + changes[mid]) / 2
}

// ThresholdCounts counts assets whose 24h change is >= +t or <= -t.
func ThresholdCounts(assets []model.AssetSnapshot, t float64) (up, down int) {
	for _, a := range assets {
		if a.ChangePct24h >= t {
			up++
		}
		if a.ChangePct24h <= -t {
			down++
		}
	}
	return up, down
}

// TopMovers returns the top gainer and top loser by 24h change, or nils
// for an empty snapshot.
func TopMovers(assets []model.AssetSnapshot) (gainer, loser *model.Mover) {
	if len(assets) == 0 {
		return nil, nil
	}
	gi, li := 0, 0
	for i, a := range assets {
		if a.ChangePct24h > assets[gi].ChangePct24h {
			gi = i
		}
		if a.ChangePct24h < assets[li].ChangePct24h {
			li = i
		}
	}
	g := model.Mover{Symbol: assets[gi].Symbol, Name: assets[gi].Name, ChangePct: assets[gi].ChangePct24h}
	l := model.Mover{Symbol: assets[li].Symbol, Name: assets[li].Name, ChangePct: assets[li].ChangePct24h}
	return &g, &l
}

// VolumeSum sums 24h volume over the snapshot.
func VolumeSum(assets []model.AssetSnapshot) float64 {
	var sum float64
	for _, a := range assets {
		sum += a.VolumeUSD24h
	}
	return sum
}

// WatchlistAlerts counts watched symbols whose absolute 24h change
// meets or exceeds their configured threshold.
func WatchlistAlerts(assets []model.AssetSnapshot, watchlist map[string]float64) int {
	if len(watchlist) == 0 {
		return 0
	}
	bySym := make(map[string]model.AssetSnapshot, len(assets))
	for _, a := range assets {
		bySym[strings.ToUpper(a.Symbol)] = a
	}
	alerts := 0
	for sym, threshold := range watchlist {
		a, ok := bySym[strings.ToUpper(sym)]
		if !ok {
			continue
		}
		ch := a.ChangePct24h
		if ch < 0 {
			ch = -ch
		}
		if ch >= threshold {
			alerts++
		}
	}
	return alerts
}
