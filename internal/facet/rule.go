package facet

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Rule is a validation rule for strings holding a facet. It rejects invalid
// facets and facets whose date suffix is detached by whitespace. Empty
// values pass; combine with validation.Required when needed.
var Rule validation.Rule = rule{}

type rule struct{}

func (rule) Validate(value any) error {
	value, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	if f, ok := value.(Facet); ok {
		return Check(f.String())
	}
	if validation.IsEmpty(value) {
		return nil
	}
	s, err := validation.EnsureString(value)
	if err != nil {
		return err
	}
	return Check(s)
}

// Check returns ErrInvalidFacet or ErrInvalidDateLikeSuffix if s is not a
// well-formed facet.
func Check(s string) error {
	if !IsValid(s) {
		return ErrInvalidFacet
	}
	if HasInvalidDateLikeSuffix(s) {
		return ErrInvalidDateLikeSuffix
	}
	return nil
}
