package core

// Category is static reference data: the fixed set of user-facing categories
// with their icon and chart color. The ledger does not enforce referential
// integrity, so a transaction may carry a category name outside these lists;
// aggregation treats such names as their own bucket and lookups report
// not-found instead of failing.
type Category struct {
	Name  string
	Icon  string
	Color string
	Kind  Kind
}

var expenseCategories = []Category{
	{Name: "Food", Icon: "restaurant", Color: "#FF6B6B", Kind: Expense},
	{Name: "Groceries", Icon: "cart", Color: "#F4A261", Kind: Expense},
	{Name: "Transport", Icon: "bus", Color: "#4ECDC4", Kind: Expense},
	{Name: "Shopping", Icon: "bag", Color: "#FFD166", Kind: Expense},
	{Name: "Entertainment", Icon: "film", Color: "#C084FC", Kind: Expense},
	{Name: "Health", Icon: "medkit", Color: "#06D6A0", Kind: Expense},
	{Name: "Education", Icon: "school", Color: "#118AB2", Kind: Expense},
	{Name: "Bills", Icon: "receipt", Color: "#EF476F", Kind: Expense},
	{Name: "Rent", Icon: "home", Color: "#8D99AE", Kind: Expense},
	{Name: "Travel", Icon: "airplane", Color: "#73D2DE", Kind: Expense},
	{Name: "Other", Icon: "ellipsis", Color: "#A8A8A8", Kind: Expense},
}

var incomeCategories = []Category{
	{Name: "Salary", Icon: "wallet", Color: "#06D6A0", Kind: Income},
	{Name: "Business", Icon: "briefcase", Color: "#118AB2", Kind: Income},
	{Name: "Investments", Icon: "trending-up", Color: "#FFD166", Kind: Income},
	{Name: "Gifts", Icon: "gift", Color: "#C084FC", Kind: Income},
	{Name: "Other", Icon: "ellipsis", Color: "#A8A8A8", Kind: Income},
}

// ExpenseCategories returns the fixed expense category list.
func ExpenseCategories() []Category {
	return expenseCategories
}

// IncomeCategories returns the fixed income category list.
func IncomeCategories() []Category {
	return incomeCategories
}

// CategoriesFor returns the reference list for the given kind.
func CategoriesFor(k Kind) []Category {
	if k == Income {
		return incomeCategories
	}
	return expenseCategories
}

// FindCategory looks a category up by name across both lists. The expense
// list wins when a name appears in both (only "Other" does).
func FindCategory(name string) (Category, bool) {
	for _, c := range expenseCategories {
		if c.Name == name {
			return c, true
		}
	}
	for _, c := range incomeCategories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// ColorMap returns category name -> chart color for the given kind, the
// mapping the share computation restricts itself to.
func ColorMap(k Kind) map[string]string {
	cats := CategoriesFor(k)
	m := make(map[string]string, len(cats))
	for _, c := range cats {
		m[c.Name] = c.Color
	}
	return m
}
