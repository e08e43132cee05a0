package usagestats

import (
	"math"
	"testing"
	"time"
)

func TestScoreRecencyBuckets(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name string
		age  time.Duration
		want float64
	}{
		{"just used", 0, 40},
		{"under an hour", 59 * time.Minute, 40},
		{"exactly an hour", time.Hour, 20},
		{"under a day", 23 * time.Hour, 20},
		{"under a week", 6 * 24 * time.Hour, 5},
		{"over a week", 8 * 24 * time.Hour, 2.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stats := Stats{ActivationCount: 10, LastActivated: now.Add(-tc.age)}
			if got := Score(stats, now); math.Abs(got-tc.want) > 0.01 {
				t.Errorf("Score = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestScoreClampsFutureTimestamps(t *testing.T) {
	now := time.Now()
	stats := Stats{ActivationCount: 1, LastActivated: now.Add(time.Hour)}
	if got := Score(stats, now); math.Abs(got-4.0) > 0.01 {
		t.Errorf("Score = %v, want 4.0 for future timestamp", got)
	}
}

func TestSortByFrecency(t *testing.T) {
	now := time.Now()
	stats := []Stats{
		{Name: "stale", ActivationCount: 100, LastActivated: now.Add(-30 * 24 * time.Hour)},
		{Name: "hot", ActivationCount: 10, LastActivated: now.Add(-time.Minute)},
		{Name: "warm", ActivationCount: 10, LastActivated: now.Add(-2 * time.Hour)},
	}
	SortByFrecency(stats, now)

	got := []string{stats[0].Name, stats[1].Name, stats[2].Name}
	want := []string{"hot", "stale", "warm"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestSortByFrecencyTieBreaksByName(t *testing.T) {
	now := time.Now()
	stats := []Stats{
		{Name: "zeta", ActivationCount: 5, LastActivated: now},
		{Name: "alpha", ActivationCount: 5, LastActivated: now},
	}
	SortByFrecency(stats, now)
	if stats[0].Name != "alpha" {
		t.Errorf("tie should break alphabetically, got %q first", stats[0].Name)
	}
}
