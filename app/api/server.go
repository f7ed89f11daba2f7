package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rbhz/dictionary-lookup/app/metrics"
	"github.com/rbhz/dictionary-lookup/app/session"
)

type ctxKey string

const ctxSessionKey ctxKey = "session"

type Server struct {
	sessions *session.Manager
	router   chi.Router
}

func (s *Server) Run(port int) error {
	return http.ListenAndServe(fmt.Sprintf(":%d", port), s.router)
}

func (s *Server) setJsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func NewServer(sessions *session.Manager, m *metrics.Metrics, sessionSecret string, sessionTTL time.Duration) *Server {
	s := &Server{sessions: sessions}
	dict := dictionaryService{sessions: sessions}
	auth := sessionAuth{secret: []byte(sessionSecret), ttl: sessionTTL}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	if m != nil {
		r.Handle("/metrics", m.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(auth.SessionCtx)
		r.Get("/", dict.Page)
		r.Get("/lookup", dict.Lookup)
		r.Post("/lookup", dict.Lookup)
		r.Post("/mode", dict.ToggleMode)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.setJsonContentType)
		r.Use(auth.SessionCtx)
		r.Get("/lookup", dict.LookupJSON)
		r.Get("/history", dict.History)
	})

	s.router = r
	return s
}
