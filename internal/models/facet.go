// Package models defines the domain types for gigtags.
package models

// Lint finding kinds.
const (
	KindInvalidFacet          = "invalid_facet"
	KindInvalidDateLikeSuffix = "invalid_date_like_suffix"
	KindInvalidDate           = "invalid_date"
)

// Tag sources.
const (
	SourceFrontmatter = "frontmatter"
	SourceInline      = "inline"
)

// Inspection holds every derived property of a single facet.
// Fields after Valid are only set for valid facets.
type Inspection struct {
	Facet                    string  `json:"facet" yaml:"facet"`
	Valid                    bool    `json:"valid" yaml:"valid"`
	Empty                    bool    `json:"empty" yaml:"empty"`
	HasDateLikeSuffix        bool    `json:"has_date_like_suffix" yaml:"has_date_like_suffix"`
	HasInvalidDateLikeSuffix bool    `json:"has_invalid_date_like_suffix" yaml:"has_invalid_date_like_suffix"`
	Prefix                   *string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Suffix                   *string `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	Date                     string  `json:"date,omitempty" yaml:"date,omitempty"` // YYYY-MM-DD
	ValidDate                bool    `json:"valid_date" yaml:"valid_date"`
}

// Finding is a single lint problem of one facet occurrence in a note.
type Finding struct {
	Facet   string `json:"facet" yaml:"facet"`
	Kind    string `json:"kind" yaml:"kind"`
	Source  string `json:"source" yaml:"source"`
	Line    int    `json:"line" yaml:"line"`
	Message string `json:"message" yaml:"message"`
}

// Report is the lint result of one note.
type Report struct {
	Path     string    `json:"path" yaml:"path"`
	Checksum string    `json:"checksum" yaml:"checksum"`
	Facets   int       `json:"facets" yaml:"facets"`
	Findings []Finding `json:"findings" yaml:"findings"`
}

// VaultReport aggregates the reports of all notes in a vault.
// Reports only lists notes with at least one finding.
type VaultReport struct {
	Notes    int      `json:"notes" yaml:"notes"`
	Facets   int      `json:"facets" yaml:"facets"`
	Findings int      `json:"findings" yaml:"findings"`
	Reports  []Report `json:"reports" yaml:"reports"`
}

// NoteMetadata is a lightweight representation returned by list operations.
type NoteMetadata struct {
	Path     string `json:"path"`
	Checksum string `json:"checksum"`
}
