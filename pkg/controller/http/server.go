package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/incidentdesk/pkg/domain/types"
	"github.com/secops-lab/incidentdesk/pkg/usecase"
	"github.com/secops-lab/incidentdesk/pkg/utils/errutil"
	"github.com/secops-lab/incidentdesk/pkg/utils/safe"
)

var validate = validator.New()

type Server struct {
	router      *chi.Mux
	uc          *usecase.UseCases
	typeCatalog []string
}

type Options func(*Server)

// WithTypeCatalog overrides the builtin incident type set served by the
// incident-types endpoint, typically loaded from a catalog file.
func WithTypeCatalog(typeIDs []string) Options {
	return func(s *Server) {
		s.typeCatalog = typeIDs
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.typeCatalog == nil {
		for _, t := range types.BuiltinIncidentTypes() {
			s.typeCatalog = append(s.typeCatalog, t.String())
		}
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(actorFromHeader)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/incidents", func(r chi.Router) {
			r.Get("/", s.listIncidents)
			r.Post("/", s.createIncident)
			r.Route("/{incidentID}", func(r chi.Router) {
				r.Get("/", s.getIncident)
				r.Put("/", s.updateIncident)
				r.Delete("/", s.deleteIncident)
				r.Post("/timeline", s.appendTimelineEvents)
			})
		})

		r.Route("/leaks", func(r chi.Router) {
			r.Get("/", s.listLeaks)
			r.Post("/", s.createLeak)
			r.Route("/{leakID}", func(r chi.Router) {
				r.Get("/", s.getLeak)
				r.Put("/", s.updateLeak)
				r.Delete("/", s.deleteLeak)
				r.Get("/logs", s.listLeakLogs)
			})
		})

		r.Route("/incident-types", func(r chi.Router) {
			r.Get("/", s.listIncidentTypes)
			r.Post("/", s.createIncidentType)
			r.Delete("/{typeID}", s.deleteIncidentType)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func respondJSON(w http.ResponseWriter, r *http.Request, statusCode int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	safe.Write(r.Context(), w, data)
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return goerr.Wrap(err, "failed to decode request body")
	}
	if err := validate.Struct(dst); err != nil {
		return goerr.Wrap(err, "invalid request body")
	}
	return nil
}
