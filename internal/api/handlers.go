package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/gigtags/internal/apperr"
	"github.com/starford/gigtags/internal/facet"
	"github.com/starford/gigtags/internal/facetservice"
	"github.com/starford/gigtags/internal/lint"
)

// Handler holds API route handlers.
type Handler struct {
	svc    *facetservice.Service
	linter *lint.Linter
}

// NewHandler creates a new Handler.
func NewHandler(svc *facetservice.Service, linter *lint.Linter) *Handler {
	return &Handler{svc: svc, linter: linter}
}

// notePath extracts the note path from the URL (everything after /api/lint/).
// Supports encoded slashes from OpenAPI clients (e.g. topics%2Fnote.md).
func notePath(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// InspectFacet handles GET /api/facets/inspect.
//
//	@Summary		Inspect a single facet
//	@Tags			facets
//	@Produce		json
//	@Param			facet	query		string	true	"Facet to inspect (may be empty)"
//	@Success		200		{object}	Inspection
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/facets/inspect [get]
func (h *Handler) InspectFacet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("facet") {
		writeJSON(w, http.StatusBadRequest, errorBody("facet query parameter is required"))
		return
	}
	res, err := h.svc.Inspect(r.Context(), q.Get("facet"))
	if err != nil {
		slog.Error("inspect facet failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// BuildFacet handles POST /api/facets/build.
//
//	@Summary		Build a facet from a prefix and a date
//	@Tags			facets
//	@Accept			json
//	@Produce		json
//	@Param			body	body		BuildFacetRequest	true	"Prefix and YYYY-MM-DD date"
//	@Success		201		{object}	BuildFacetResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/facets/build [post]
func (h *Handler) BuildFacet(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req BuildFacetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	f, err := h.svc.Build(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrInvalidInput),
			errors.Is(err, facet.ErrInvalidFacet),
			errors.Is(err, facet.ErrInvalidDateLikeSuffix),
			errors.Is(err, facet.ErrDateOutOfRange):
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		default:
			slog.Error("build facet failed", slog.String("prefix", req.Prefix), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusCreated, BuildFacetResponse{Facet: f})
}

// LintVault handles GET /api/lint.
//
//	@Summary		Lint the facets of all notes in the vault
//	@Tags			lint
//	@Produce		json
//	@Success		200	{object}	VaultReport
//	@Security		BearerAuth
//	@Router			/lint [get]
func (h *Handler) LintVault(w http.ResponseWriter, r *http.Request) {
	report, err := h.linter.LintVault(r.Context())
	if err != nil {
		slog.Error("lint vault failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// LintNote handles GET /api/lint/*.
//
//	@Summary		Lint the facets of a single note
//	@Tags			lint
//	@Produce		json
//	@Param			path	path		string	true	"Note path"
//	@Success		200		{object}	NoteReport
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/lint/{path} [get]
func (h *Handler) LintNote(w http.ResponseWriter, r *http.Request) {
	path := notePath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	report, err := h.linter.LintNote(r.Context(), path)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("lint note failed", slog.String("path", path), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, report)
}
