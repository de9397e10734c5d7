package derive

import (
	"sort"
	"strings"
	"time"

	"saveit/internal/core"
)

// MonthCursor selects the month the analytics view aggregates over.
type MonthCursor struct {
	Year  int
	Month time.Month
}

// CurrentMonth returns the cursor for the calendar month containing now.
func CurrentMonth(now time.Time) MonthCursor {
	return MonthCursor{Year: now.Year(), Month: now.Month()}
}

// Shift moves the cursor by step months, wrapping year boundaries through
// normal calendar arithmetic (December +1 becomes January of the next year).
func (c MonthCursor) Shift(step int) MonthCursor {
	t := time.Date(c.Year, c.Month+time.Month(step), 1, 0, 0, 0, 0, time.UTC)
	return MonthCursor{Year: t.Year(), Month: t.Month()}
}

// Range returns the inclusive bounds [first instant of the month, last
// instant of the month] at millisecond resolution.
func (c MonthCursor) Range() (start, end time.Time) {
	start = time.Date(c.Year, c.Month, 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end
}

// CategoryShare is one slice of the month's donut chart.
type CategoryShare struct {
	Name        string  `json:"name"`
	Amount      string  `json:"amount"`
	AmountCents int64   `json:"amount_cents"`
	Percentage  float64 `json:"percentage"`
	Color       string  `json:"color"`
	Icon        string  `json:"icon"`
}

// MonthAnalytics is the aggregated spending breakdown for one month.
type MonthAnalytics struct {
	Label       string          `json:"label"`
	Total       string          `json:"total"`
	TotalCents  int64           `json:"total_cents"`
	StartMillis int64           `json:"start_ms"`
	EndMillis   int64           `json:"end_ms"`
	Categories  []CategoryShare `json:"categories"`
}

// BuildMonthAnalytics converts the range-scoped total and per-category sums
// into percentage shares, sorted descending. A zero total yields zero
// percentages across the board so an empty month renders an empty chart
// without a division error.
func BuildMonthAnalytics(cursor MonthCursor, totalCents int64, byCategory []core.CategorySpend, symbol string) MonthAnalytics {
	start, end := cursor.Range()

	shares := make([]CategoryShare, 0, len(byCategory))
	for _, cs := range byCategory {
		var pct float64
		if totalCents > 0 {
			pct = float64(cs.Total.Cents) / float64(totalCents)
		}
		config := core.CategoryByName(cs.Category)
		shares = append(shares, CategoryShare{
			Name:        cs.Category,
			Amount:      core.FormatAmount(cs.Total.Cents, symbol),
			AmountCents: cs.Total.Cents,
			Percentage:  pct,
			Color:       config.Color,
			Icon:        config.Icon,
		})
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Percentage > shares[j].Percentage
	})

	return MonthAnalytics{
		Label:       strings.ToUpper(start.Format("January 2006")),
		Total:       core.FormatAmount(totalCents, symbol),
		TotalCents:  totalCents,
		StartMillis: start.UnixMilli(),
		EndMillis:   end.UnixMilli(),
		Categories:  shares,
	}
}
