package facet

import "errors"

var (
	ErrInvalidFacet          = errors.New("invalid facet")
	ErrInvalidDateLikeSuffix = errors.New("whitespace before date suffix")
	ErrDateOutOfRange        = errors.New("date out of range")
)
