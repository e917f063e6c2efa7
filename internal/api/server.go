// Package api provides the HTTP API server and handlers for the MacroFactor
// access layer.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/benthecarman/macro-factor-go/internal/errors"
	"github.com/benthecarman/macro-factor-go/internal/service"
)

const dateFormat = "2006-01-02"

// Server holds dependencies for HTTP handlers.
type Server struct {
	svc    *service.Service
	router *chi.Mux
	api    huma.API
	logger *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(svc *service.Service, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	humaConfig := huma.DefaultConfig("MacroFactor Access API", "1.0.0")
	humaAPI := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		svc:    svc,
		router: router,
		api:    humaAPI,
		logger: logger,
	}

	s.registerHealthRoutes()
	s.registerProfileRoutes()
	s.registerEntryRoutes()
	s.registerFoodRoutes()
	s.registerSearchRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// parseDate parses a YYYY-MM-DD parameter.
func parseDate(name, value string) (time.Time, error) {
	d, err := time.Parse(dateFormat, value)
	if err != nil {
		return time.Time{}, errors.Validationf("%s must be a %s date, got %q", name, dateFormat, value)
	}
	return d, nil
}

// parseDateRange parses the start/end query parameters and checks ordering.
func parseDateRange(startStr, endStr string) (start, end time.Time, err error) {
	if start, err = parseDate("start", startStr); err != nil {
		return
	}
	if end, err = parseDate("end", endStr); err != nil {
		return
	}
	if end.Before(start) {
		err = errors.Validationf("end %s is before start %s", endStr, startStr)
	}
	return
}
