package core

import "sort"

// CategoryAmount is one category's share of a spending window.
type CategoryAmount struct {
	Category ExpenseCategory `json:"category"`
	Amount   Money           `json:"amount"`
}

// DayGroup collects the expenses of one calendar day for chronological
// display.
type DayGroup struct {
	Date    Date      `json:"date"`
	Entries []Expense `json:"entries"`
}

// CategoryTotals sums expenses per category over the window (filtered by the
// date component of each timestamp) and returns the grand total alongside.
// Categories with no matching entries are omitted rather than emitted as
// zero. The grand total equals the sum of the per-category totals exactly:
// every entry is counted once, in one category.
func CategoryTotals(entries []Expense, window DateRange) (map[ExpenseCategory]Money, Money) {
	totals := make(map[ExpenseCategory]Money)
	var grand Money
	for _, e := range entries {
		if !window.Contains(DateOf(e.OccurredAt)) {
			continue
		}
		totals[e.Category] = totals[e.Category].Add(e.Amount)
		grand = grand.Add(e.Amount)
	}
	return totals, grand
}

// SortedCategoryTotals flattens CategoryTotals into a slice ordered by
// descending amount (ties by category name) for stable display.
func SortedCategoryTotals(entries []Expense, window DateRange) ([]CategoryAmount, Money) {
	totals, grand := CategoryTotals(entries, window)
	out := make([]CategoryAmount, 0, len(totals))
	for cat, amt := range totals {
		out = append(out, CategoryAmount{Category: cat, Amount: amt})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Cents != out[j].Amount.Cents {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		return out[i].Category < out[j].Category
	})
	return out, grand
}

// GroupByDay buckets expenses by calendar date (ignoring time of day),
// most recent date first and most recent timestamp first within a date.
// The input is not modified.
func GroupByDay(entries []Expense) []DayGroup {
	byDay := make(map[Date][]Expense)
	for _, e := range entries {
		d := DateOf(e.OccurredAt)
		byDay[d] = append(byDay[d], e)
	}
	groups := make([]DayGroup, 0, len(byDay))
	for d, es := range byDay {
		sort.SliceStable(es, func(i, j int) bool {
			return es[i].OccurredAt.After(es[j].OccurredAt)
		})
		groups = append(groups, DayGroup{Date: d, Entries: es})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Date.After(groups[j].Date.Time)
	})
	return groups
}
