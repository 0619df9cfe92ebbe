package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/taskquest/internal/handler"
	"github.com/dukerupert/taskquest/internal/incentive"
	"github.com/dukerupert/taskquest/internal/middleware"
	"github.com/dukerupert/taskquest/internal/store"
	ws "github.com/dukerupert/taskquest/internal/websocket"
)

type Server struct {
	db          *sql.DB
	hub         *ws.Hub
	taskH       *handler.TaskHandler
	redemptionH *handler.RedemptionHandler
	memberH     *handler.MemberHandler
	memberStore *store.MemberStore
	rateLimiter *middleware.RateLimiter
	redeemLimit int
	logger      *slog.Logger
}

// New builds the HTTP surface over svc. redeemLimit caps redemption requests
// per member per minute; zero disables the limit.
func New(db *sql.DB, svc *incentive.Service, hub *ws.Hub, redeemLimit int, logger *slog.Logger) *Server {
	return &Server{
		db:          db,
		hub:         hub,
		taskH:       handler.NewTaskHandler(svc, logger.With("component", "task")),
		redemptionH: handler.NewRedemptionHandler(svc, logger.With("component", "redemption")),
		memberH:     handler.NewMemberHandler(svc, logger.With("component", "member")),
		memberStore: store.NewMemberStore(db),
		rateLimiter: middleware.NewRateLimiter(),
		redeemLimit: redeemLimit,
		logger:      logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes
	outerMux.HandleFunc("GET /health", s.healthHandler)

	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAPIKey(s.memberStore, s.logger.With("component", "auth"))
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if err := s.db.PingContext(r.Context()); err != nil {
		s.logger.Error("health check", "error", err)
		status = "unavailable"
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.Handler {
	if s.redeemLimit <= 0 {
		return h
	}
	return middleware.RateLimit(s.rateLimiter, middleware.MemberKey, s.redeemLimit, time.Minute)(h)
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	// Tasks
	mux.HandleFunc("GET /api/tasks", s.taskH.List)
	mux.HandleFunc("POST /api/tasks", s.taskH.Create)
	mux.HandleFunc("PATCH /api/tasks/{id}", s.taskH.Update)
	mux.HandleFunc("POST /api/tasks/bulk", s.taskH.Bulk)

	// Store and redemptions
	mux.HandleFunc("GET /api/store/items", s.redemptionH.ListItems)
	mux.Handle("POST /api/store/items/{id}/redeem", s.rateLimitedHandler(s.redemptionH.Redeem))
	mux.HandleFunc("GET /api/redemptions", s.redemptionH.List)
	mux.Handle("PUT /api/redemptions/{id}/review", middleware.RequireManager(http.HandlerFunc(s.redemptionH.Review)))

	// Members and badges
	mux.HandleFunc("GET /api/members", s.memberH.Leaderboard)
	mux.HandleFunc("GET /api/members/{id}/stats", s.memberH.Stats)
	mux.HandleFunc("GET /api/members/{id}/badges", s.memberH.Badges)
	mux.HandleFunc("GET /api/badges", s.memberH.Catalog)
	mux.HandleFunc("POST /api/badges/{id}/purchase", s.memberH.PurchaseBadge)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))
}
