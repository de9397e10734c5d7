package core

// CategoryConfig is a static lookup entry for rendering a category: an icon
// name plus accent and background colors. Categories are not persisted and
// have no referential integrity with stored transactions; unknown names
// resolve to a generic fallback instead of failing.
type CategoryConfig struct {
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	Color      string `json:"color"`
	Background string `json:"background"`
}

// ExpenseCategories and IncomeCategories are the two disjoint lists the app
// offers. The lists are fixed; user categories are out of scope.
var ExpenseCategories = []CategoryConfig{
	{Name: "Food", Icon: "fastfood", Color: "#2D5BFF", Background: "#E8EDFF"},
	{Name: "Travel", Icon: "directions_car", Color: "#2196F3", Background: "#E3F2FD"},
	{Name: "Shop", Icon: "shopping_bag", Color: "#9C27B0", Background: "#F3E5F5"},
	{Name: "Bills", Icon: "bolt", Color: "#009688", Background: "#E0F2F1"},
	{Name: "Health", Icon: "medical_services", Color: "#F44336", Background: "#FFEBEE"},
	{Name: "Fun", Icon: "movie", Color: "#FF9800", Background: "#FFF3E0"},
	{Name: "Edu", Icon: "school", Color: "#444444", Background: "#EEEEEE"},
	{Name: "Other", Icon: "more_horiz", Color: "#607D8B", Background: "#ECEFF1"},
}

var IncomeCategories = []CategoryConfig{
	{Name: "Salary", Icon: "attach_money", Color: "#4CAF50", Background: "#E8F5E9"},
	{Name: "Freelance", Icon: "computer", Color: "#4CAF50", Background: "#E8F5E9"},
	{Name: "Gift", Icon: "card_giftcard", Color: "#4CAF50", Background: "#E8F5E9"},
	{Name: "Invest", Icon: "trending_up", Color: "#4CAF50", Background: "#E8F5E9"},
	{Name: "Other", Icon: "more_horiz", Color: "#607D8B", Background: "#ECEFF1"},
}

var fallbackCategory = CategoryConfig{Name: "Other", Icon: "apps", Color: "#9E9E9E", Background: "#D3D3D3"}

// CategoryByName resolves a category by exact name match, expense list
// first, falling back to a generic "Other" entry for unknown names.
func CategoryByName(name string) CategoryConfig {
	for _, c := range ExpenseCategories {
		if c.Name == name {
			return c
		}
	}
	for _, c := range IncomeCategories {
		if c.Name == name {
			return c
		}
	}
	return fallbackCategory
}
