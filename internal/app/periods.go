package app

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"
)

// Leaderboard bucket retention windows. Weekly and monthly buckets outlive
// their period by a little so late submissions still land.
const (
	WeeklyRetention  = 8 * 24 * time.Hour
	MonthlyRetention = 32 * 24 * time.Hour
	DailyRetention   = 2 * 24 * time.Hour
)

// DateKey formats a calendar-day bucket key (YYYY-MM-DD, UTC).
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WeekKey formats a week bucket key (YYYY-Wnn). The week number counts
// 7-day blocks from January 1 offset by that day's weekday, which is close
// to but not exactly ISO week numbering.
func WeekKey(t time.Time) string {
	t = t.UTC()
	startOfYear := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	days := t.Sub(startOfYear).Hours() / 24
	week := int((days + float64(startOfYear.Weekday()) + 1 + 6) / 7)
	if week < 1 {
		week = 1
	}
	return fmt.Sprintf("%d-W%02d", t.Year(), week)
}

// MonthKey formats a month bucket key (YYYY-MM).
func MonthKey(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%d-%02d", t.Year(), int(t.Month()))
}

// newDayRand seeds a generator from the date key so every instance builds
// the same daily challenge for the same day.
func newDayRand(date string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(date))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}
