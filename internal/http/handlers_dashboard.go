package http

import (
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"

	"fintrack/internal/charts"
	"fintrack/internal/core"
)

type dashboardResponse struct {
	Balance            float64            `json:"balance"`
	TotalIncome        float64            `json:"totalIncome"`
	TotalExpenses      float64            `json:"totalExpenses"`
	CategoryTotals     map[string]float64 `json:"categoryTotals"`
	RecentTransactions []core.Activity    `json:"recentTransactions"`
}

type chartResponse struct {
	Image *string `json:"image"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := identityFromRequest(r)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	expenses, err := s.store.ListExpenses(ctx, userID)
	if err != nil {
		respondStoreError(ctx, w, err, "list expenses")
		return
	}
	incomes, err := s.store.ListIncomes(ctx, userID)
	if err != nil {
		respondStoreError(ctx, w, err, "list incomes")
		return
	}
	recentExpenses, err := s.store.RecentExpenses(ctx, userID, core.RecentLimit)
	if err != nil {
		respondStoreError(ctx, w, err, "recent expenses")
		return
	}
	recentIncomes, err := s.store.RecentIncomes(ctx, userID, core.RecentLimit)
	if err != nil {
		respondStoreError(ctx, w, err, "recent incomes")
		return
	}

	totals := core.ComputeTotals(expenses, incomes)
	categoryTotals := make(map[string]float64)
	for _, row := range core.CategoryBreakdown(expenses) {
		categoryTotals[row.Name] = row.Amount
	}
	recent := core.RecentActivity(recentExpenses, recentIncomes)
	if recent == nil {
		recent = []core.Activity{}
	}

	respondJSON(ctx, w, http.StatusOK, dashboardResponse{
		Balance:            totals.Balance,
		TotalIncome:        totals.TotalIncome,
		TotalExpenses:      totals.TotalExpenses,
		CategoryTotals:     categoryTotals,
		RecentTransactions: recent,
	})
}

// handleChart renders one chart kind per request. Missing identity and empty
// data both yield {"image": null} rather than an error; rendering is
// regenerated from scratch on every call.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	kind := r.PathValue("kind")

	userID, ok := identityFromRequest(r)
	if !ok {
		respondJSON(ctx, w, http.StatusOK, chartResponse{})
		return
	}

	png, err := s.renderChart(r, kind, userID)
	switch {
	case errors.Is(err, charts.ErrNoData):
		respondJSON(ctx, w, http.StatusOK, chartResponse{})
	case errors.Is(err, errUnknownChart):
		respondError(ctx, w, http.StatusNotFound, "Unknown chart")
	case err != nil:
		slog.ErrorContext(ctx, "Chart render error", "error", err, "kind", kind)
		respondError(ctx, w, http.StatusInternalServerError, "Internal server error")
	default:
		img := base64.StdEncoding.EncodeToString(png)
		respondJSON(ctx, w, http.StatusOK, chartResponse{Image: &img})
	}
}

var errUnknownChart = errors.New("unknown chart kind")

func (s *Server) renderChart(r *http.Request, kind string, userID int64) ([]byte, error) {
	ctx := r.Context()
	switch kind {
	case "expense-categories":
		expenses, err := s.store.ListExpenses(ctx, userID)
		if err != nil {
			return nil, err
		}
		return charts.CategoryPie(core.CategoryBreakdown(expenses))
	case "income-sources":
		incomes, err := s.store.ListIncomes(ctx, userID)
		if err != nil {
			return nil, err
		}
		return charts.SourcePie(core.SourceBreakdown(incomes))
	case "income-by-month":
		incomes, err := s.store.ListIncomes(ctx, userID)
		if err != nil {
			return nil, err
		}
		return charts.MonthlyIncomeBar(core.MonthlyIncomeBuckets(incomes))
	case "expense-trends":
		expenses, err := s.store.ListExpenses(ctx, userID)
		if err != nil {
			return nil, err
		}
		return charts.ExpenseTrend(core.MonthlyExpenseBuckets(expenses))
	case "daily-expenses":
		expenses, err := s.store.ListExpenses(ctx, userID)
		if err != nil {
			return nil, err
		}
		return charts.DailyExpenseBar(core.DailyExpenseBuckets(expenses))
	case "income-vs-expenses":
		expenses, err := s.store.ListExpenses(ctx, userID)
		if err != nil {
			return nil, err
		}
		incomes, err := s.store.ListIncomes(ctx, userID)
		if err != nil {
			return nil, err
		}
		return charts.IncomeVsExpense(core.MonthlySeries(expenses, incomes))
	default:
		return nil, errUnknownChart
	}
}
