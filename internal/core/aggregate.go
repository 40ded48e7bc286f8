// Package core holds the domain records and the aggregation engine. The
// engine is pure: it consumes transaction slices and produces numeric
// aggregates, so it is testable without a store or a renderer.
package core

import (
	"sort"
	"time"
)

const (
	// RecentLimit bounds the recent-activity merge, per side and overall.
	RecentLimit = 5
	// DailyBucketWindow is how many day buckets the daily series keeps,
	// counted from the newest bucket key backwards.
	DailyBucketWindow = 7

	monthKeyLayout = "2006-01"
	dayKeyLayout   = "2006-01-02"

	// UnspecifiedSource labels income entries with an empty description in
	// the source breakdown.
	UnspecifiedSource = "Unspecified"

	ActivityExpense = "expense"
	ActivityIncome  = "income"

	// IncomeCategory is the pseudo-category tagged onto income entries in
	// the recent-activity merge.
	IncomeCategory = "Income"
)

type (
	Totals struct {
		TotalIncome   float64
		TotalExpenses float64
		Balance       float64
	}

	// NamedAmount is one row of a category or source breakdown, in
	// first-seen order.
	NamedAmount struct {
		Name   string
		Amount float64
	}

	// Bucket is a calendar group keyed by "YYYY-MM" or "YYYY-MM-DD".
	Bucket struct {
		Key    string
		Amount float64
	}

	// MonthComparison carries both sides of a month, zero-filled when one
	// side has no entries.
	MonthComparison struct {
		Month   string
		Income  float64
		Expense float64
	}

	// Activity is one row of the recent-transactions merge.
	Activity struct {
		Kind        string    `json:"type"`
		Amount      float64   `json:"amount"`
		Description string    `json:"description"`
		Category    string    `json:"category"`
		Date        time.Time `json:"date"`
	}

	datedAmount struct {
		date   time.Time
		amount float64
	}
)

// ComputeTotals sums both transaction kinds; balance is income minus
// expenses.
func ComputeTotals(expenses []Expense, incomes []Income) Totals {
	var t Totals
	for _, e := range expenses {
		t.TotalExpenses += e.Amount
	}
	for _, i := range incomes {
		t.TotalIncome += i.Amount
	}
	t.Balance = t.TotalIncome - t.TotalExpenses
	return t
}

// CategoryBreakdown sums expense amounts per category, categories ordered by
// first appearance.
func CategoryBreakdown(expenses []Expense) []NamedAmount {
	return breakdown(len(expenses), func(i int) (string, float64) {
		return expenses[i].Category, expenses[i].Amount
	})
}

// SourceBreakdown sums income amounts per description. Empty descriptions
// collapse into the UnspecifiedSource row.
func SourceBreakdown(incomes []Income) []NamedAmount {
	return breakdown(len(incomes), func(i int) (string, float64) {
		name := incomes[i].Description
		if name == "" {
			name = UnspecifiedSource
		}
		return name, incomes[i].Amount
	})
}

func breakdown(n int, at func(int) (string, float64)) []NamedAmount {
	index := make(map[string]int, n)
	var rows []NamedAmount
	for i := 0; i < n; i++ {
		name, amount := at(i)
		if j, ok := index[name]; ok {
			rows[j].Amount += amount
			continue
		}
		index[name] = len(rows)
		rows = append(rows, NamedAmount{Name: name, Amount: amount})
	}
	return rows
}

// MonthlyExpenseBuckets groups expense amounts by calendar month, keys
// sorted ascending.
func MonthlyExpenseBuckets(expenses []Expense) []Bucket {
	return bucketize(expenseSeries(expenses), monthKeyLayout, 0)
}

// MonthlyIncomeBuckets groups income amounts by calendar month, keys sorted
// ascending.
func MonthlyIncomeBuckets(incomes []Income) []Bucket {
	return bucketize(incomeSeries(incomes), monthKeyLayout, 0)
}

// DailyExpenseBuckets groups expense amounts by calendar day and keeps the
// last DailyBucketWindow buckets by key. The window is over bucket keys, not
// wall-clock days: gaps do not produce empty buckets.
func DailyExpenseBuckets(expenses []Expense) []Bucket {
	return bucketize(expenseSeries(expenses), dayKeyLayout, DailyBucketWindow)
}

func expenseSeries(expenses []Expense) []datedAmount {
	s := make([]datedAmount, len(expenses))
	for i, e := range expenses {
		s[i] = datedAmount{date: e.Date, amount: e.Amount}
	}
	return s
}

func incomeSeries(incomes []Income) []datedAmount {
	s := make([]datedAmount, len(incomes))
	for i, in := range incomes {
		s[i] = datedAmount{date: in.Date, amount: in.Amount}
	}
	return s
}

// bucketize builds key → sum, then emits buckets sorted by key ascending.
// Lexicographic order equals chronological order for these key layouts. A
// non-zero tail keeps only the newest tail buckets.
func bucketize(entries []datedAmount, layout string, tail int) []Bucket {
	sums := make(map[string]float64, len(entries))
	for _, e := range entries {
		sums[e.date.Format(layout)] += e.amount
	}
	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if tail > 0 && len(keys) > tail {
		keys = keys[len(keys)-tail:]
	}
	buckets := make([]Bucket, len(keys))
	for i, k := range keys {
		buckets[i] = Bucket{Key: k, Amount: sums[k]}
	}
	return buckets
}

// MonthlySeries merges the monthly income and expense buckets into one
// sorted series. A month present on only one side carries zero on the other.
func MonthlySeries(expenses []Expense, incomes []Income) []MonthComparison {
	byMonth := make(map[string]*MonthComparison)
	for _, b := range MonthlyIncomeBuckets(incomes) {
		byMonth[b.Key] = &MonthComparison{Month: b.Key, Income: b.Amount}
	}
	for _, b := range MonthlyExpenseBuckets(expenses) {
		if m, ok := byMonth[b.Key]; ok {
			m.Expense = b.Amount
			continue
		}
		byMonth[b.Key] = &MonthComparison{Month: b.Key, Expense: b.Amount}
	}
	months := make([]string, 0, len(byMonth))
	for k := range byMonth {
		months = append(months, k)
	}
	sort.Strings(months)
	series := make([]MonthComparison, len(months))
	for i, m := range months {
		series[i] = *byMonth[m]
	}
	return series
}

// RecentActivity merges the most recent expenses and incomes — each side
// already limited to RecentLimit by the store — tags each row with its kind,
// re-sorts by date descending and truncates to RecentLimit overall. The
// shallow merge can under-represent one kind when the other has many newer
// entries; that behavior is intentional.
func RecentActivity(expenses []Expense, incomes []Income) []Activity {
	merged := make([]Activity, 0, len(expenses)+len(incomes))
	for _, e := range expenses {
		merged = append(merged, Activity{
			Kind:        ActivityExpense,
			Amount:      e.Amount,
			Description: e.Description,
			Category:    e.Category,
			Date:        e.Date,
		})
	}
	for _, in := range incomes {
		merged = append(merged, Activity{
			Kind:        ActivityIncome,
			Amount:      in.Amount,
			Description: in.Description,
			Category:    IncomeCategory,
			Date:        in.Date,
		})
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.After(merged[j].Date)
	})
	if len(merged) > RecentLimit {
		merged = merged[:RecentLimit]
	}
	return merged
}
