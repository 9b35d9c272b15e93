// Package summary derives chart data from the expense list. Both views
// are pure functions of their input; callers recompute them on demand.
package summary

import (
	"sort"
	"strings"

	"kharcha/internal/core"
)

const (
	// OtherCategory buckets records whose category is empty.
	OtherCategory = "Other"

	// UnnamedTitle stands in for records whose title is empty.
	UnnamedTitle = "Unnamed"

	// DefaultTopN is the serving default for TopExpenses.
	DefaultTopN = 5
)

// CategoryTotal is the summed amount for one category.
type CategoryTotal struct {
	Category string
	Total    core.Money
}

// TopExpense is one entry of the top-spending view.
type TopExpense struct {
	Title  string
	Amount core.Money
}

// CategoryTotals groups records by category and sums their amounts.
// Output order is first-seen-category order, so repeated calls over the
// same list render identically.
func CategoryTotals(records []core.ExpenseRecord) []CategoryTotal {
	index := make(map[string]int, len(records))
	totals := make([]CategoryTotal, 0, len(records))
	for _, r := range records {
		cat := strings.TrimSpace(r.Category)
		if cat == "" {
			cat = OtherCategory
		}
		i, seen := index[cat]
		if !seen {
			index[cat] = len(totals)
			totals = append(totals, CategoryTotal{Category: cat})
			i = len(totals) - 1
		}
		totals[i].Total.Cents += r.Amount.Cents
	}
	return totals
}

// TopExpenses returns the n largest records by amount, descending. Ties
// keep their original relative order. n larger than the list is fine.
func TopExpenses(records []core.ExpenseRecord, n int) []TopExpense {
	if n <= 0 {
		return nil
	}
	sorted := make([]core.ExpenseRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount.Cents > sorted[j].Amount.Cents
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	top := make([]TopExpense, n)
	for i, r := range sorted[:n] {
		title := strings.TrimSpace(r.Title)
		if title == "" {
			title = UnnamedTitle
		}
		top[i] = TopExpense{Title: title, Amount: r.Amount}
	}
	return top
}
