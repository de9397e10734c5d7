package derive

import (
	"sort"

	"saveit/internal/core"
)

// Status banding thresholds: utilization at or above 100% is over budget,
// at or above 80% is a warning.
const (
	StatusNormal  BudgetStatus = "normal"
	StatusWarning BudgetStatus = "warning"
	StatusOver    BudgetStatus = "over_budget"
)

type BudgetStatus string

// BudgetUtilization is one budget joined against its category spending.
type BudgetUtilization struct {
	ID         int64        `json:"id"`
	Category   string       `json:"category"`
	Icon       string       `json:"icon"`
	Color      string       `json:"color"`
	Background string       `json:"background"`
	Limit      string       `json:"limit"`
	LimitCents int64        `json:"limit_cents"`
	Spent      string       `json:"spent"`
	SpentCents int64        `json:"spent_cents"`
	Left       string       `json:"left"`
	LeftCents  int64        `json:"left_cents"`
	Percentage float64      `json:"percentage"`
	Progress   float64      `json:"progress"`
	Status     BudgetStatus `json:"status"`
}

// BuildBudgetOverview joins each budget against the category spending table
// and returns utilizations sorted by percentage, highest first. A category
// with no recorded spending counts as zero spent; a zero limit yields zero
// percentage rather than a division error.
func BuildBudgetOverview(budgets []core.Budget, spending []core.CategorySpend, symbol string) []BudgetUtilization {
	spent := make(map[string]int64, len(spending))
	for _, s := range spending {
		spent[s.Category] = s.Total.Cents
	}

	out := make([]BudgetUtilization, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, utilization(b, spent[b.Category], symbol))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Percentage > out[j].Percentage
	})
	return out
}

// BuildBudgetUtilization computes the utilization of a single budget, used
// by the budget detail view.
func BuildBudgetUtilization(b core.Budget, spending []core.CategorySpend, symbol string) BudgetUtilization {
	var spent int64
	for _, s := range spending {
		if s.Category == b.Category {
			spent = s.Total.Cents
			break
		}
	}
	return utilization(b, spent, symbol)
}

func utilization(b core.Budget, spentCents int64, symbol string) BudgetUtilization {
	var percentage float64
	if b.Limit.Cents > 0 {
		percentage = float64(spentCents) / float64(b.Limit.Cents)
	}
	left := b.Limit.Cents - spentCents

	// The numeric label stays unclamped; only the progress bar is bounded.
	progress := percentage
	if progress > 1 {
		progress = 1
	}
	if progress < 0 {
		progress = 0
	}

	status := StatusNormal
	switch {
	case percentage >= 1.0:
		status = StatusOver
	case percentage >= 0.8:
		status = StatusWarning
	}

	config := core.CategoryByName(b.Category)
	return BudgetUtilization{
		ID:         b.ID,
		Category:   b.Category,
		Icon:       config.Icon,
		Color:      config.Color,
		Background: config.Background,
		Limit:      core.FormatAmount(b.Limit.Cents, symbol),
		LimitCents: b.Limit.Cents,
		Spent:      core.FormatAmount(spentCents, symbol),
		SpentCents: spentCents,
		Left:       core.FormatAmount(left, symbol),
		LeftCents:  left,
		Percentage: percentage,
		Progress:   progress,
		Status:     status,
	}
}
