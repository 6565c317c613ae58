package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/gpacalc/internal/roster"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	roster *roster.Roster
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured. When apiKey is
// non-empty, every request that changes the roster must carry it.
func New(r *roster.Roster, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		roster: r,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Read-only endpoints
	s.router.Get("/api/v1/grades", s.handleGrades)
	s.router.Get("/api/v1/semesters", s.handleListSemesters)
	s.router.Get("/api/v1/semesters/{semesterID}", s.handleGetSemester)
	s.router.Get("/api/v1/summary", s.handleSummary)
	s.router.Get("/api/v1/view", s.handleGetView)
	s.router.Post("/api/v1/calculate", s.handleCalculate)

	// Roster mutations
	s.router.Group(func(r chi.Router) {
		if s.apiKey != "" {
			r.Use(APIKeyAuth(s.apiKey))
		}
		r.Post("/api/v1/semesters", s.handleAddSemester)
		r.Post("/api/v1/semesters/{semesterID}/courses", s.handleAddCourse)
		r.Patch("/api/v1/semesters/{semesterID}/courses/{courseID}", s.handleUpdateCourse)
		r.Delete("/api/v1/semesters/{semesterID}/courses/{courseID}", s.handleDeleteCourse)
		r.Put("/api/v1/view", s.handleSetView)
		r.Post("/api/v1/view/toggle", s.handleToggleView)
	})
}

// SetMCP mounts a Model Context Protocol handler at /mcp.
func (s *Server) SetMCP(h http.Handler) {
	if s.apiKey != "" {
		h = APIKeyAuth(s.apiKey)(h)
	}
	s.router.Handle("/mcp", h)
}
