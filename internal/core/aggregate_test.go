package core

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestComputeTotals(t *testing.T) {
	expenses := []Expense{
		{Amount: 50, Date: day(2024, 1, 10)},
		{Amount: 30.5, Date: day(2024, 2, 1)},
	}
	incomes := []Income{
		{Amount: 200, Date: day(2024, 1, 5)},
	}

	totals := ComputeTotals(expenses, incomes)
	assert.Equal(t, 80.5, totals.TotalExpenses)
	assert.Equal(t, 200.0, totals.TotalIncome)
	assert.Equal(t, 119.5, totals.Balance)
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals := ComputeTotals(nil, nil)
	assert.Zero(t, totals.TotalExpenses)
	assert.Zero(t, totals.TotalIncome)
	assert.Zero(t, totals.Balance)
}

func TestCategoryBreakdown(t *testing.T) {
	expenses := []Expense{
		{Amount: 10, Category: "Food"},
		{Amount: 5, Category: "Transport"},
		{Amount: 2.5, Category: "Food"},
	}

	rows := CategoryBreakdown(expenses)
	require.Len(t, rows, 2)
	// First-seen order.
	assert.Equal(t, NamedAmount{Name: "Food", Amount: 12.5}, rows[0])
	assert.Equal(t, NamedAmount{Name: "Transport", Amount: 5}, rows[1])

	// Breakdown total equals the flat sum.
	var sum float64
	for _, r := range rows {
		sum += r.Amount
	}
	assert.Equal(t, ComputeTotals(expenses, nil).TotalExpenses, sum)
}

func TestSourceBreakdownUnspecified(t *testing.T) {
	incomes := []Income{
		{Amount: 100, Description: "Salary"},
		{Amount: 20, Description: ""},
		{Amount: 5, Description: ""},
	}

	rows := SourceBreakdown(incomes)
	require.Len(t, rows, 2)
	assert.Equal(t, "Salary", rows[0].Name)
	assert.Equal(t, NamedAmount{Name: UnspecifiedSource, Amount: 25}, rows[1])
}

func TestMonthlyBucketsSortedAndSummed(t *testing.T) {
	expenses := []Expense{
		{Amount: 10, Date: day(2024, 3, 1)},
		{Amount: 7, Date: day(2024, 1, 15)},
		{Amount: 3, Date: day(2024, 1, 20)},
		{Amount: 1, Date: day(2023, 12, 31)},
	}

	buckets := MonthlyExpenseBuckets(expenses)
	require.Len(t, buckets, 3)

	keys := make([]string, len(buckets))
	var sum float64
	for i, b := range buckets {
		keys[i] = b.Key
		sum += b.Amount
	}
	assert.True(t, sort.StringsAreSorted(keys))
	assert.Equal(t, []string{"2023-12", "2024-01", "2024-03"}, keys)
	assert.Equal(t, 21.0, sum)
	assert.Equal(t, Bucket{Key: "2024-01", Amount: 10}, buckets[1])
}

func TestDailyBucketsKeepLastSeven(t *testing.T) {
	var expenses []Expense
	for d := 1; d <= 10; d++ {
		expenses = append(expenses, Expense{Amount: float64(d), Date: day(2024, 5, d)})
	}

	buckets := DailyExpenseBuckets(expenses)
	require.Len(t, buckets, DailyBucketWindow)
	assert.Equal(t, "2024-05-04", buckets[0].Key)
	assert.Equal(t, "2024-05-10", buckets[len(buckets)-1].Key)
}

func TestDailyBucketsWindowIsOverKeysNotWallClock(t *testing.T) {
	// Three distinct days spread over months: all survive the window.
	expenses := []Expense{
		{Amount: 1, Date: day(2024, 1, 1)},
		{Amount: 2, Date: day(2024, 2, 1)},
		{Amount: 3, Date: day(2024, 3, 1)},
	}
	buckets := DailyExpenseBuckets(expenses)
	require.Len(t, buckets, 3)
}

func TestMonthlySeriesZeroFills(t *testing.T) {
	expenses := []Expense{
		{Amount: 40, Date: day(2024, 2, 10)},
	}
	incomes := []Income{
		{Amount: 100, Date: day(2024, 1, 5)},
		{Amount: 60, Date: day(2024, 2, 5)},
	}

	series := MonthlySeries(expenses, incomes)
	require.Len(t, series, 2)
	assert.Equal(t, MonthComparison{Month: "2024-01", Income: 100, Expense: 0}, series[0])
	assert.Equal(t, MonthComparison{Month: "2024-02", Income: 60, Expense: 40}, series[1])
}

func TestMonthlySeriesExpenseOnlyMonth(t *testing.T) {
	series := MonthlySeries([]Expense{{Amount: 9, Date: day(2024, 6, 1)}}, nil)
	require.Len(t, series, 1)
	assert.Equal(t, MonthComparison{Month: "2024-06", Expense: 9}, series[0])
}

func TestRecentActivityMergeAndTruncate(t *testing.T) {
	var expenses []Expense
	for d := 1; d <= 5; d++ {
		expenses = append(expenses, Expense{
			Amount:      float64(d),
			Description: "e",
			Category:    "Food",
			Date:        day(2024, 4, d),
		})
	}
	incomes := []Income{
		{Amount: 100, Description: "Salary", Date: day(2024, 4, 30)},
		{Amount: 50, Description: "Bonus", Date: day(2024, 4, 2)},
	}

	recent := RecentActivity(expenses, incomes)
	require.Len(t, recent, RecentLimit)

	// Sorted by date descending.
	for i := 1; i < len(recent); i++ {
		assert.False(t, recent[i].Date.After(recent[i-1].Date))
	}

	// Newest entry is the income, tagged with the pseudo-category.
	assert.Equal(t, ActivityIncome, recent[0].Kind)
	assert.Equal(t, IncomeCategory, recent[0].Category)
	assert.Equal(t, "Salary", recent[0].Description)

	// Expense rows carry their own category.
	assert.Equal(t, ActivityExpense, recent[1].Kind)
	assert.Equal(t, "Food", recent[1].Category)
}

func TestRecentActivityFewerThanLimit(t *testing.T) {
	recent := RecentActivity(
		[]Expense{{Amount: 1, Category: "Misc", Date: day(2024, 1, 1)}},
		nil,
	)
	require.Len(t, recent, 1)
	assert.Equal(t, ActivityExpense, recent[0].Kind)
}
