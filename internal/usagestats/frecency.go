package usagestats

import (
	"sort"
	"time"
)

// Score computes a frecency score for one environment: the activation count
// weighted by a recency bucket multiplier. Recently used environments rank
// far above frequently-but-long-ago used ones.
func Score(stats Stats, now time.Time) float64 {
	age := now.Sub(stats.LastActivated)
	if age < 0 {
		age = 0
	}

	var multiplier float64
	switch {
	case age < time.Hour:
		multiplier = 4.0
	case age < 24*time.Hour:
		multiplier = 2.0
	case age < 7*24*time.Hour:
		multiplier = 0.5
	default:
		multiplier = 0.25
	}
	return float64(stats.ActivationCount) * multiplier
}

// SortByFrecency orders stats by descending score, breaking ties by name.
func SortByFrecency(stats []Stats, now time.Time) {
	sort.SliceStable(stats, func(i, j int) bool {
		si, sj := Score(stats[i], now), Score(stats[j], now)
		if si != sj {
			return si > sj
		}
		return stats[i].Name < stats[j].Name
	})
}
