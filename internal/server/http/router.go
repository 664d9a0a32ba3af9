package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vmtecnologia/usersvc/internal/logging"
	"github.com/vmtecnologia/usersvc/internal/server/auth"
)

// NewChain returns the request pipeline in the order it runs.
func NewChain(gate *auth.Gate, metrics *Metrics, logger logging.Logger) Chain {
	return Chain{
		Recover(logger),
		RequestID(),
		AccessLog(logger),
		metrics.Step(),
		ContextStep("authenticate", gate.Attach),
		Authorize(NewPathMatcher(PublicPaths...)),
	}
}

func NewRouter(h *Handler, chain Chain, metrics *Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(chain.Middlewares()...)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "no handler for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, r.Method+" is not supported on "+r.URL.Path)
	})

	r.Post("/auth/login", h.Login)
	r.Get("/health", h.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/user/api/v1", func(r chi.Router) {
		r.Post("/save", h.Save)
		r.Put("/update", h.Update)
		r.Delete("/delete", h.Delete)
		r.Get("/findAll", h.FindAll)
		r.Get("/findById", h.FindByID)
	})

	return r
}
