package http

import (
	"net/http"
	"time"

	"fintrack/internal/core"
)

// expensePayload is the create/update body. Pointers distinguish an absent
// field from a zero value, so updates patch only what the client sent.
type expensePayload struct {
	Amount      *float64 `json:"amount"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Date        *string  `json:"date"`
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
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
	if expenses == nil {
		expenses = []core.Expense{}
	}
	respondJSON(ctx, w, http.StatusOK, expenses)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var p expensePayload
	if err := decodeJSON(r, &p); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	// Field presence is checked before identity, matching the endpoint
	// contract: a malformed create is a 400 even without an identity.
	if p.Amount == nil || p.Description == nil || p.Category == nil {
		respondError(ctx, w, http.StatusBadRequest, "Missing required fields")
		return
	}

	userID, ok := identityFromRequest(r)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	expense := core.Expense{
		UserID:      userID,
		Amount:      *p.Amount,
		Description: *p.Description,
		Category:    *p.Category,
		Date:        core.BestEffortTimestamp(ctx, stringOrEmpty(p.Date), time.Now().UTC()),
	}
	created, err := s.store.CreateExpense(ctx, expense)
	if err != nil {
		respondStoreError(ctx, w, err, "create expense")
		return
	}
	respondJSON(ctx, w, http.StatusCreated, created)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := identityFromRequest(r)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(ctx, w, http.StatusNotFound, "Record not found")
		return
	}
	expense, err := s.store.GetExpense(ctx, userID, id)
	if err != nil {
		respondStoreError(ctx, w, err, "get expense")
		return
	}

	var p expensePayload
	if err := decodeJSON(r, &p); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if p.Amount != nil {
		expense.Amount = *p.Amount
	}
	if p.Description != nil {
		expense.Description = *p.Description
	}
	if p.Category != nil {
		expense.Category = *p.Category
	}
	if p.Date != nil {
		// Parse failures keep the stored date.
		expense.Date = core.BestEffortTimestamp(ctx, *p.Date, expense.Date)
	}

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		respondStoreError(ctx, w, err, "update expense")
		return
	}
	respondJSON(ctx, w, http.StatusOK, expense)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := identityFromRequest(r)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(ctx, w, http.StatusNotFound, "Record not found")
		return
	}
	if err := s.store.DeleteExpense(ctx, userID, id); err != nil {
		respondStoreError(ctx, w, err, "delete expense")
		return
	}
	respondMessage(ctx, w, http.StatusOK, "Expense deleted successfully")
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
