package http

import (
	"net/http"

	"fintrack/internal/core"
)

type listExpensesResponse struct {
	Expenses []core.Expense  `json:"expenses"`
	Days     []core.DayGroup `json:"days"`
	Total    core.Money      `json:"total"`
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	year, month := parseYearMonth(r)
	window := core.MonthRange(year, month)

	expenses, err := s.expenses.List(r.Context(), userID(r), window)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	_, total := core.CategoryTotals(expenses, window)
	respondJSON(w, http.StatusOK, listExpensesResponse{
		Expenses: expenses,
		Days:     core.GroupByDay(expenses),
		Total:    total,
	})
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var e core.Expense
	if err := decodeJSON(r, &e); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	e.ID = ""

	created, err := s.expenses.Create(r.Context(), userID(r), e)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	s.invalidateStats(userID(r), created.OccurredAt.Year(), int(created.OccurredAt.Month()))
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var e core.Expense
	if err := decodeJSON(r, &e); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	e.ID = r.PathValue("id")

	// Fetch first so a date change also drops the source month's cache.
	prev, err := s.expenses.Get(r.Context(), userID(r), e.ID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	updated, err := s.expenses.Update(r.Context(), userID(r), e)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	s.invalidateStats(userID(r), prev.OccurredAt.Year(), int(prev.OccurredAt.Month()))
	s.invalidateStats(userID(r), updated.OccurredAt.Year(), int(updated.OccurredAt.Month()))
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	// Fetch first so the cache for the right month gets dropped.
	e, err := s.expenses.Get(r.Context(), userID(r), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if err := s.expenses.Delete(r.Context(), userID(r), id); err != nil {
		respondServiceError(w, r, err)
		return
	}

	s.invalidateStats(userID(r), e.OccurredAt.Year(), int(e.OccurredAt.Month()))
	respondJSON(w, http.StatusNoContent, nil)
}
