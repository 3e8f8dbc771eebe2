package services

import (
	"math"
	"time"
)

// BaseCoins define per-platform base coin values
var BaseCoins = map[string]int64{
	"yeumoney": 145,
	"link4m":   140,
	"bbmkts":   140,
}

// PlatformDailyQuota is the single authoritative per-user daily award
// limit per platform. Nothing else hardcodes these numbers.
var PlatformDailyQuota = map[string]int{
	"yeumoney": 2,
	"link4m":   1,
	"bbmkts":   1,
}

// HourlyMultiplier maps hour-of-day (0–23) to the price scaling factor.
// Early hours pay more; the table decays through the day.
var HourlyMultiplier = [24]float64{
	1.120, 1.110, 1.100, 1.090,
	1.080, 1.070, 1.060, 1.050,
	1.040, 1.030, 1.020, 1.010,
	1.000, 0.995, 0.990, 0.985,
	0.980, 0.975, 0.970, 0.965,
	0.960, 0.955, 0.950, 0.945,
}

// KnownPlatform reports whether the platform has a configured base price.
func KnownPlatform(platform string) bool {
	_, ok := BaseCoins[platform]
	return ok
}

// MultiplierAt returns the multiplier for the wall-clock hour of t.
func MultiplierAt(t time.Time) float64 {
	return HourlyMultiplier[t.Hour()]
}

// CoinQuote is a priced reward: base * multiplier, floored.
type CoinQuote struct {
	Base       int64   `json:"base"`
	Multiplier float64 `json:"multiplier"`
	Total      int64   `json:"total"`
}

// ComputeCoins prices a platform's reward at time t. Pure and
// deterministic; callers on the award path must evaluate it at award
// time, not at link-issuance time. Issuance values are estimates only.
func ComputeCoins(platform string, t time.Time) CoinQuote {
	base := BaseCoins[platform] // 0 for unknown platforms
	m := MultiplierAt(t)
	return CoinQuote{
		Base:       base,
		Multiplier: m,
		Total:      int64(math.Floor(float64(base) * m)),
	}
}

// DateOf formats t as the calendar-day key used across claims and links.
func DateOf(t time.Time) string {
	return t.Format("2006-01-02")
}

// WeekRange returns the Monday-through-Sunday date span containing t.
func WeekRange(t time.Time) (string, string) {
	offset := -((int(t.Weekday()) + 6) % 7)
	start := t.AddDate(0, 0, offset)
	return DateOf(start), DateOf(start.AddDate(0, 0, 6))
}

// MonthRange returns the first and last dates of t's calendar month.
func MonthRange(t time.Time) (string, string) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return DateOf(start), DateOf(start.AddDate(0, 1, -1))
}
