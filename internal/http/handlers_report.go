package http

import (
	"net/http"
	"strconv"
	"time"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
	"fintrack/internal/report"
)

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := applog.FromContext(ctx).WithComponent("report")

	if s.reporter == nil {
		respondError(ctx, w, http.StatusNotImplemented, "PDF generation not available")
		return
	}

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

	data := report.Data{
		GeneratedAt: time.Now(),
		Totals:      core.ComputeTotals(expenses, incomes),
		Expenses:    expenses,
		Incomes:     incomes,
	}
	pdf, err := s.reporter.Render(data)
	if err != nil {
		logger.ErrorContext(ctx, "Report render error", "error", err, "user_id", userID)
		respondError(ctx, w, http.StatusInternalServerError, "Internal server error")
		return
	}

	logger.InfoContext(ctx, "Report generated",
		"user_id", userID,
		"expenses", len(expenses),
		"incomes", len(incomes),
		"bytes", len(pdf))

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="expense_report.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
