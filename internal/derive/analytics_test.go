package derive

import (
	"math"
	"testing"
	"time"

	"saveit/internal/core"
)

func TestMonthCursorShift(t *testing.T) {
	tests := []struct {
		name      string
		start     MonthCursor
		step      int
		wantYear  int
		wantMonth time.Month
	}{
		{"forward within year", MonthCursor{2025, time.March}, 1, 2025, time.April},
		{"backward within year", MonthCursor{2025, time.March}, -1, 2025, time.February},
		{"december wraps forward", MonthCursor{2025, time.December}, 1, 2026, time.January},
		{"january wraps backward", MonthCursor{2025, time.January}, -1, 2024, time.December},
		{"multi-month jump", MonthCursor{2025, time.November}, 3, 2026, time.February},
		{"zero step", MonthCursor{2025, time.June}, 0, 2025, time.June},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.start.Shift(tt.step)
			if got.Year != tt.wantYear || got.Month != tt.wantMonth {
				t.Errorf("Shift(%d) = %d-%s, want %d-%s", tt.step, got.Year, got.Month, tt.wantYear, tt.wantMonth)
			}
		})
	}
}

func TestMonthCursorRange(t *testing.T) {
	start, end := MonthCursor{2025, time.February}.Range()

	wantStart := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}

	// Non-leap February: last instant is Feb 28 23:59:59.999.
	wantEnd := time.Date(2025, 2, 28, 23, 59, 59, 999000000, time.UTC)
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", end, wantEnd)
	}
}

func TestBuildMonthAnalytics(t *testing.T) {
	cursor := MonthCursor{2025, time.March}
	byCategory := []core.CategorySpend{
		{Category: "Food", Total: core.Money{Cents: 6000}},
		{Category: "Travel", Total: core.Money{Cents: 4000}},
	}

	got := BuildMonthAnalytics(cursor, 10000, byCategory, "$")

	if got.Label != "MARCH 2025" {
		t.Errorf("Label = %q, want %q", got.Label, "MARCH 2025")
	}
	if got.Total != "$100.00" {
		t.Errorf("Total = %q, want %q", got.Total, "$100.00")
	}
	if len(got.Categories) != 2 {
		t.Fatalf("len(Categories) = %d, want 2", len(got.Categories))
	}
	if got.Categories[0].Name != "Food" {
		t.Errorf("Categories[0].Name = %q, want Food (sorted by share desc)", got.Categories[0].Name)
	}
	if math.Abs(got.Categories[0].Percentage-0.6) > 1e-9 {
		t.Errorf("Food percentage = %v, want 0.6", got.Categories[0].Percentage)
	}
	if math.Abs(got.Categories[1].Percentage-0.4) > 1e-9 {
		t.Errorf("Travel percentage = %v, want 0.4", got.Categories[1].Percentage)
	}

	wantStart := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	if got.StartMillis != wantStart {
		t.Errorf("StartMillis = %d, want %d", got.StartMillis, wantStart)
	}
	wantEnd := time.Date(2025, 3, 31, 23, 59, 59, 999000000, time.UTC).UnixMilli()
	if got.EndMillis != wantEnd {
		t.Errorf("EndMillis = %d, want %d", got.EndMillis, wantEnd)
	}
}

func TestBuildMonthAnalyticsZeroTotal(t *testing.T) {
	byCategory := []core.CategorySpend{
		{Category: "Food", Total: core.Money{Cents: 0}},
	}
	got := BuildMonthAnalytics(MonthCursor{2025, time.January}, 0, byCategory, "$")

	if got.Total != "$0.00" {
		t.Errorf("Total = %q, want %q", got.Total, "$0.00")
	}
	for _, c := range got.Categories {
		if c.Percentage != 0 {
			t.Errorf("%s percentage = %v, want 0 when total is 0", c.Name, c.Percentage)
		}
	}
}
