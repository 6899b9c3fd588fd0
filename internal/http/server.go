// Package http exposes the JSON API over a stdlib ServeMux. Every /api route
// except login runs behind bearer-token auth; aggregate reads are served from
// short-lived LRU caches invalidated on mutation.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/cache"
	applog "fintrack/internal/log"
	"fintrack/internal/middleware/ratelimit"
	"fintrack/internal/middleware/security"
	"fintrack/internal/middleware/trace"
	"fintrack/internal/services"
)

type Server struct {
	http.Server

	auth       *auth.Manager
	timesheets *services.TimesheetService
	expenses   *services.ExpenseService
	accounts   *services.AccountService
	stats      *services.StatsService

	limiter  *ratelimit.Limiter
	detector *security.Detector
	tracer   *trace.Middleware
	logger   *applog.Logger

	dashboardCache *cache.LRUCache[services.Dashboard]
	statsCache     *cache.LRUCache[services.MonthlyStats]
	cacheManager   *cache.Manager

	started      time.Time
	shutdownOnce sync.Once
}

// NewServer wires routes, middleware, and caches into a ready-to-run server.
func NewServer(addr string, am *auth.Manager, ts *services.TimesheetService, es *services.ExpenseService, as *services.AccountService, st *services.StatsService) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		auth:       am,
		timesheets: ts,
		expenses:   es,
		accounts:   as,
		stats:      st,

		limiter:  ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		detector: security.NewDetector(),
		logger:   applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentHTTP),

		dashboardCache: cache.NewLRUCache[services.Dashboard](100, 5*time.Minute),
		statsCache:     cache.NewLRUCache[services.MonthlyStats](200, 5*time.Minute),
		cacheManager:   cache.NewManager(),

		started: time.Now(),
	}

	s.tracer = trace.NewMiddleware(s.detector.ExtractClientIP)

	s.cacheManager.Register(s.dashboardCache)
	s.cacheManager.Register(s.statsCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/logout", s.withAuth(s.handleLogout))

	mux.HandleFunc("GET /api/expenses", s.withAuth(s.handleListExpenses))
	mux.HandleFunc("POST /api/expenses", s.withAuth(s.handleCreateExpense))
	mux.HandleFunc("PUT /api/expenses/{id}", s.withAuth(s.handleUpdateExpense))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.withAuth(s.handleDeleteExpense))

	mux.HandleFunc("GET /api/timesheets", s.withAuth(s.handleListTimesheets))
	mux.HandleFunc("POST /api/timesheets", s.withAuth(s.handleCreateTimesheet))
	mux.HandleFunc("PUT /api/timesheets/{id}", s.withAuth(s.handleUpdateTimesheet))
	mux.HandleFunc("DELETE /api/timesheets/{id}", s.withAuth(s.handleDeleteTimesheet))
	mux.HandleFunc("POST /api/timesheets/{id}/paid", s.withAuth(s.handleSetPaid))
	mux.HandleFunc("POST /api/timesheets/day/paid", s.withAuth(s.handleMarkDayPaid))

	mux.HandleFunc("GET /api/accounts", s.withAuth(s.handleListAccounts))
	mux.HandleFunc("POST /api/accounts", s.withAuth(s.handleCreateAccount))
	mux.HandleFunc("PUT /api/accounts/{id}", s.withAuth(s.handleUpdateAccount))
	mux.HandleFunc("DELETE /api/accounts/{id}", s.withAuth(s.handleDeleteAccount))

	mux.HandleFunc("GET /api/cash", s.withAuth(s.handleGetCash))
	mux.HandleFunc("PUT /api/cash", s.withAuth(s.handleSetCash))

	mux.HandleFunc("GET /api/debts", s.withAuth(s.handleListDebts))
	mux.HandleFunc("POST /api/debts", s.withAuth(s.handleCreateDebt))
	mux.HandleFunc("DELETE /api/debts/{id}", s.withAuth(s.handleDeleteDebt))
	mux.HandleFunc("POST /api/debts/{id}/adjust", s.withAuth(s.handleAdjustDebt))

	mux.HandleFunc("GET /api/profile", s.withAuth(s.handleGetProfile))
	mux.HandleFunc("PUT /api/profile", s.withAuth(s.handleUpdateProfile))

	mux.HandleFunc("GET /api/dashboard", s.withAuth(s.handleDashboard))
	mux.HandleFunc("GET /api/stats", s.withAuth(s.handleMonthlyStats))

	mux.HandleFunc("GET /api/metrics", s.withAuth(s.handleMetrics))

	s.Server.Handler = s.middleware(mux)
	return s
}

// middleware is the outer chain: tracing, suspicious-request detection,
// security headers, and write-path rate limiting applied to everything under
// the mux.
func (s *Server) middleware(next http.Handler) http.Handler {
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	limited := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.detector.DetectSuspiciousRequest(r) {
			slog.WarnContext(r.Context(), "Suspicious request detected",
				"client_ip", s.detector.ExtractClientIP(r),
				"method", r.Method, "path", r.URL.Path,
				"user_agent", r.Header.Get("User-Agent"))
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			clientIP := s.detector.ExtractClientIP(r)
			if !s.limiter.Allow(clientIP) {
				slog.WarnContext(r.Context(), "Rate limit exceeded",
					"client_ip", clientIP, "method", r.Method, "path", r.URL.Path)
				w.Header().Set("Retry-After", "60")
				respondError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
		}
		next.ServeHTTP(w, r)
	})

	return s.tracer.Middleware(applog.Middleware(s.logger)(headers.Middleware(limited)))
}

// AddTrustedProxy registers a proxy network whose forwarding headers are
// honored during client IP extraction.
func (s *Server) AddTrustedProxy(cidr string) error {
	return s.detector.AddTrustedProxy(cidr)
}

// Shutdown stops the background cleanup loops and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) statsCacheKey(userID string, year, month int) string {
	return userID + ":" + strconv.Itoa(year) + "-" + strconv.Itoa(month)
}

// invalidateStats drops cached aggregates for the month a mutation touched.
func (s *Server) invalidateStats(userID string, year, month int) {
	key := s.statsCacheKey(userID, year, month)
	s.dashboardCache.Delete(key)
	s.statsCache.Delete(key)
}

// invalidateUser drops every cached aggregate for a user. Account, cash, debt,
// and profile mutations are month-independent, so all months go.
func (s *Server) invalidateUser(userID string) {
	s.dashboardCache.DeleteByPrefix(userID + ":")
	s.statsCache.DeleteByPrefix(userID + ":")
}
