package http

import (
	"net/http"
	"time"

	"fintrack/internal/core"
)

// incomePayload mirrors expensePayload without a category.
type incomePayload struct {
	Amount      *float64 `json:"amount"`
	Description *string  `json:"description"`
	Date        *string  `json:"date"`
}

func (s *Server) handleListIncomes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := identityFromRequest(r)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	incomes, err := s.store.ListIncomes(ctx, userID)
	if err != nil {
		respondStoreError(ctx, w, err, "list incomes")
		return
	}
	if incomes == nil {
		incomes = []core.Income{}
	}
	respondJSON(ctx, w, http.StatusOK, incomes)
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var p incomePayload
	if err := decodeJSON(r, &p); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if p.Amount == nil || p.Description == nil {
		respondError(ctx, w, http.StatusBadRequest, "Missing required fields")
		return
	}

	userID, ok := identityFromRequest(r)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	income := core.Income{
		UserID:      userID,
		Amount:      *p.Amount,
		Description: *p.Description,
		Date:        core.BestEffortTimestamp(ctx, stringOrEmpty(p.Date), time.Now().UTC()),
	}
	created, err := s.store.CreateIncome(ctx, income)
	if err != nil {
		respondStoreError(ctx, w, err, "create income")
		return
	}
	respondJSON(ctx, w, http.StatusCreated, created)
}

func (s *Server) handleUpdateIncome(w http.ResponseWriter, r *http.Request) {
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
	income, err := s.store.GetIncome(ctx, userID, id)
	if err != nil {
		respondStoreError(ctx, w, err, "get income")
		return
	}

	var p incomePayload
	if err := decodeJSON(r, &p); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if p.Amount != nil {
		income.Amount = *p.Amount
	}
	if p.Description != nil {
		income.Description = *p.Description
	}
	if p.Date != nil {
		income.Date = core.BestEffortTimestamp(ctx, *p.Date, income.Date)
	}

	if err := s.store.UpdateIncome(ctx, income); err != nil {
		respondStoreError(ctx, w, err, "update income")
		return
	}
	respondJSON(ctx, w, http.StatusOK, income)
}

func (s *Server) handleDeleteIncome(w http.ResponseWriter, r *http.Request) {
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
	if err := s.store.DeleteIncome(ctx, userID, id); err != nil {
		respondStoreError(ctx, w, err, "delete income")
		return
	}
	respondMessage(ctx, w, http.StatusOK, "Income deleted successfully")
}
