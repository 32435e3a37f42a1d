// Package facetservice exposes facet inspection and construction to the
// transport layers.
package facetservice

import (
	"context"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/gigtags/internal/apperr"
	"github.com/starford/gigtags/internal/facet"
	"github.com/starford/gigtags/internal/models"
)

// DateLayout is the layout of dates accepted and returned by the service.
const DateLayout = "2006-01-02"

// Service inspects and builds facets.
type Service struct{}

// NewService creates a new facet service.
func NewService() *Service {
	return &Service{}
}

// Inspect reports every derived property of raw.
func (s *Service) Inspect(ctx context.Context, raw string) (*models.Inspection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := &models.Inspection{Facet: raw, Valid: facet.IsValid(raw)}
	if !out.Valid {
		return out, nil
	}

	f := facet.FromString(raw)
	out.Empty = f.IsEmpty()
	out.HasDateLikeSuffix = f.HasDateLikeSuffix()
	out.HasInvalidDateLikeSuffix = f.HasInvalidDateLikeSuffix()

	if prefix, suffix, ok := f.SplitDateLikeSuffix(); ok {
		out.Prefix = &prefix
		out.Suffix = &suffix
	}
	if _, date, ok := f.SplitDateSuffix(); ok && date != nil {
		out.Date = date.Format(DateLayout)
		out.ValidDate = true
	}
	return out, nil
}

// BuildRequest holds the input of Build.
type BuildRequest struct {
	Prefix string `json:"prefix"`
	Date   string `json:"date"`
}

// Validate validates the build request.
func (r BuildRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Date, validation.Required, validation.Date(DateLayout)),
	)
}

// Build appends the date suffix to the prefix. The result is rejected if it
// is not a well-formed facet, e.g. when the prefix ends with whitespace.
func (s *Service) Build(ctx context.Context, req BuildRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := req.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err)
	}
	date, err := time.Parse(DateLayout, req.Date)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err)
	}

	f, err := facet.FromPrefixWithDateSuffix(req.Prefix, date)
	if err != nil {
		return "", err
	}
	if err := facet.Rule.Validate(f); err != nil {
		return "", fmt.Errorf("build %q: %w", f.String(), err)
	}
	return f.String(), nil
}
