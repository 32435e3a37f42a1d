package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/gigtags/internal/facetservice"
	"github.com/starford/gigtags/internal/lint"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *facetservice.Service, linter *lint.Linter, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc, linter)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Facets.
	r.Get("/facets/inspect", h.InspectFacet)
	r.Post("/facets/build", h.BuildFacet)

	// Vault lint.
	r.Get("/lint", h.LintVault)
	r.Get("/lint/*", h.LintNote)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
