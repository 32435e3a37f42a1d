package api

import (
	"github.com/starford/gigtags/internal/facetservice"
	"github.com/starford/gigtags/internal/models"
)

// Inspection is the response of GET /facets/inspect (aliased from the domain layer).
type Inspection = models.Inspection

// BuildFacetRequest is the request body for building a facet.
type BuildFacetRequest = facetservice.BuildRequest

// BuildFacetResponse is returned after a facet was built.
type BuildFacetResponse struct {
	Facet string `json:"facet" example:"meeting~20220625" validate:"required"`
}

// NoteReport is the lint result of a single note (aliased from the domain layer).
type NoteReport = models.Report

// VaultReport is the lint result of the whole vault (aliased from the domain layer).
type VaultReport = models.VaultReport
