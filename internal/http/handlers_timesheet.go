package http

import (
	"net/http"

	"fintrack/internal/core"
)

type listTimesheetsResponse struct {
	Entries []core.WorkEntry     `json:"entries"`
	Summary core.EarningsSummary `json:"summary"`
}

func (s *Server) handleListTimesheets(w http.ResponseWriter, r *http.Request) {
	year, month := parseYearMonth(r)
	window := core.MonthRange(year, month)

	entries, err := s.timesheets.List(r.Context(), userID(r), window)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, listTimesheetsResponse{
		Entries: entries,
		Summary: core.AggregateEarnings(entries, window),
	})
}

func (s *Server) handleCreateTimesheet(w http.ResponseWriter, r *http.Request) {
	var e core.WorkEntry
	if err := decodeJSON(r, &e); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	e.ID = ""

	created, err := s.timesheets.Create(r.Context(), userID(r), e)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	s.invalidateStats(userID(r), created.WorkDate.Year(), int(created.WorkDate.Month()))
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateTimesheet(w http.ResponseWriter, r *http.Request) {
	var e core.WorkEntry
	if err := decodeJSON(r, &e); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	e.ID = r.PathValue("id")

	// Fetch first so a date change also drops the source month's cache.
	prev, err := s.timesheets.Get(r.Context(), userID(r), e.ID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	updated, err := s.timesheets.Update(r.Context(), userID(r), e)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	s.invalidateStats(userID(r), prev.WorkDate.Year(), int(prev.WorkDate.Month()))
	s.invalidateStats(userID(r), updated.WorkDate.Year(), int(updated.WorkDate.Month()))
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTimesheet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	e, err := s.timesheets.Get(r.Context(), userID(r), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if err := s.timesheets.Delete(r.Context(), userID(r), id); err != nil {
		respondServiceError(w, r, err)
		return
	}

	s.invalidateStats(userID(r), e.WorkDate.Year(), int(e.WorkDate.Month()))
	respondJSON(w, http.StatusNoContent, nil)
}

type setPaidRequest struct {
	Paid bool `json:"paid"`
}

func (s *Server) handleSetPaid(w http.ResponseWriter, r *http.Request) {
	var req setPaidRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := s.timesheets.SetPaid(r.Context(), userID(r), r.PathValue("id"), req.Paid)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	s.invalidateStats(userID(r), updated.WorkDate.Year(), int(updated.WorkDate.Month()))
	respondJSON(w, http.StatusOK, updated)
}

type markDayPaidRequest struct {
	Date core.Date `json:"date"`
	Paid bool      `json:"paid"`
}

type markDayPaidResponse struct {
	Updated int `json:"updated"`
}

func (s *Server) handleMarkDayPaid(w http.ResponseWriter, r *http.Request) {
	var req markDayPaidRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Date.IsZero() {
		respondError(w, http.StatusUnprocessableEntity, "date is required")
		return
	}

	n, err := s.timesheets.MarkDayPaid(r.Context(), userID(r), req.Date, req.Paid)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	s.invalidateStats(userID(r), req.Date.Year(), int(req.Date.Month()))
	respondJSON(w, http.StatusOK, markDayPaidResponse{Updated: n})
}
