package http

import (
	"log/slog"
	"net/http"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	year, month := parseYearMonth(r)
	uid := userID(r)
	key := s.statsCacheKey(uid, year, month)

	if d, ok := s.dashboardCache.Get(key); ok {
		slog.DebugContext(r.Context(), "Dashboard cache hit", "year", year, "month", month)
		respondJSON(w, http.StatusOK, d)
		return
	}

	d, err := s.stats.Dashboard(r.Context(), uid, year, month)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	s.dashboardCache.Set(key, d)
	respondJSON(w, http.StatusOK, d)
}

func (s *Server) handleMonthlyStats(w http.ResponseWriter, r *http.Request) {
	year, month := parseYearMonth(r)
	uid := userID(r)
	key := s.statsCacheKey(uid, year, month)

	if m, ok := s.statsCache.Get(key); ok {
		slog.DebugContext(r.Context(), "Stats cache hit", "year", year, "month", month)
		respondJSON(w, http.StatusOK, m)
		return
	}

	m, err := s.stats.Monthly(r.Context(), uid, year, month)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	s.statsCache.Set(key, m)
	respondJSON(w, http.StatusOK, m)
}
