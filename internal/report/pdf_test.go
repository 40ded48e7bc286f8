package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/core"
)

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestRenderProducesPDF(t *testing.T) {
	data := Data{
		GeneratedAt: time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
		Totals:      core.Totals{TotalIncome: 2000, TotalExpenses: 1340.75, Balance: 659.25},
		Expenses: []core.Expense{
			{ID: 1, Amount: 840.75, Description: "rent", Category: "Housing", Date: day("2024-04-01")},
			{ID: 2, Amount: 500, Description: "groceries", Category: "Food", Date: day("2024-04-12")},
		},
		Incomes: []core.Income{
			{ID: 1, Amount: 2000, Description: "salary", Date: day("2024-04-01")},
		},
	}

	out, err := PDFRenderer{}.Render(data)
	require.NoError(t, err)
	require.Greater(t, len(out), 4)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderWithoutRecords(t *testing.T) {
	out, err := PDFRenderer{}.Render(Data{GeneratedAt: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}
