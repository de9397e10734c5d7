package core

import "testing"

func TestCategoryByName(t *testing.T) {
	tests := []struct {
		name     string
		wantIcon string
	}{
		{"Food", "fastfood"},
		{"Salary", "attach_money"},
		{"Other", "more_horiz"}, // expense list wins for shared names
		{"Unknown", "apps"},     // fallback
		{"", "apps"},
	}

	for _, tt := range tests {
		got := CategoryByName(tt.name)
		if got.Icon != tt.wantIcon {
			t.Errorf("CategoryByName(%q).Icon = %q, want %q", tt.name, got.Icon, tt.wantIcon)
		}
	}
}

func TestCategoryListsAreDisjointFromFallback(t *testing.T) {
	for _, c := range append(append([]CategoryConfig{}, ExpenseCategories...), IncomeCategories...) {
		if c.Name == "" || c.Icon == "" || c.Color == "" || c.Background == "" {
			t.Errorf("category %+v has an empty field", c)
		}
	}
}
