package services

import (
	"math"
	"testing"
	"time"
)

func at(hour int) time.Time {
	return time.Date(2025, 5, 14, hour, 30, 0, 0, time.UTC)
}

func TestHourlyMultiplierCoversEveryHour(t *testing.T) {
	if len(HourlyMultiplier) != 24 {
		t.Fatalf("expected 24 multiplier entries, got %d", len(HourlyMultiplier))
	}
	for hour, m := range HourlyMultiplier {
		if m <= 0 {
			t.Errorf("hour %d has non-positive multiplier %f", hour, m)
		}
		if got := MultiplierAt(at(hour)); got != m {
			t.Errorf("MultiplierAt(hour %d) = %f, want %f", hour, got, m)
		}
	}
}

func TestMultiplierDecaysThroughTheDay(t *testing.T) {
	if HourlyMultiplier[0] != 1.120 {
		t.Errorf("midnight multiplier = %f, want 1.120", HourlyMultiplier[0])
	}
	if HourlyMultiplier[12] != 1.000 {
		t.Errorf("noon multiplier = %f, want 1.000", HourlyMultiplier[12])
	}
	if HourlyMultiplier[23] != 0.945 {
		t.Errorf("23h multiplier = %f, want 0.945", HourlyMultiplier[23])
	}
}

func TestComputeCoinsFloorsBaseTimesMultiplier(t *testing.T) {
	for platform, base := range BaseCoins {
		for hour := 0; hour < 24; hour++ {
			quote := ComputeCoins(platform, at(hour))
			want := int64(math.Floor(float64(base) * HourlyMultiplier[hour]))
			if quote.Total != want {
				t.Errorf("%s at hour %d: total = %d, want %d", platform, hour, quote.Total, want)
			}
			if quote.Base != base {
				t.Errorf("%s: base = %d, want %d", platform, quote.Base, base)
			}
		}
	}
}

func TestComputeCoinsNoonYeumoney(t *testing.T) {
	quote := ComputeCoins("yeumoney", at(12))
	if quote.Total != 145 {
		t.Fatalf("yeumoney at noon = %d coins, want 145", quote.Total)
	}
}

func TestComputeCoinsUnknownPlatformIsZero(t *testing.T) {
	quote := ComputeCoins("nosuch", at(8))
	if quote.Base != 0 || quote.Total != 0 {
		t.Fatalf("unknown platform priced at base=%d total=%d, want zero", quote.Base, quote.Total)
	}
	if KnownPlatform("nosuch") {
		t.Fatal("KnownPlatform accepted an unknown platform")
	}
}

func TestEveryPlatformHasAQuota(t *testing.T) {
	for platform := range BaseCoins {
		if _, ok := PlatformDailyQuota[platform]; !ok {
			t.Errorf("platform %s has a base price but no daily quota", platform)
		}
	}
	for platform := range PlatformDailyQuota {
		if _, ok := BaseCoins[platform]; !ok {
			t.Errorf("platform %s has a quota but no base price", platform)
		}
	}
}

func TestWeekRangeStartsMonday(t *testing.T) {
	// Wednesday 2025-05-14 sits in the week 2025-05-12 .. 2025-05-18.
	from, to := WeekRange(time.Date(2025, 5, 14, 10, 0, 0, 0, time.UTC))
	if from != "2025-05-12" || to != "2025-05-18" {
		t.Fatalf("WeekRange = %s..%s, want 2025-05-12..2025-05-18", from, to)
	}

	// Sunday belongs to the week that began the previous Monday.
	from, to = WeekRange(time.Date(2025, 5, 18, 23, 0, 0, 0, time.UTC))
	if from != "2025-05-12" || to != "2025-05-18" {
		t.Fatalf("WeekRange on Sunday = %s..%s, want 2025-05-12..2025-05-18", from, to)
	}

	// Monday is its own start.
	from, _ = WeekRange(time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC))
	if from != "2025-05-12" {
		t.Fatalf("WeekRange on Monday starts %s, want 2025-05-12", from)
	}
}

func TestMonthRange(t *testing.T) {
	from, to := MonthRange(time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC))
	if from != "2025-02-01" || to != "2025-02-28" {
		t.Fatalf("MonthRange = %s..%s, want 2025-02-01..2025-02-28", from, to)
	}
}
