package facet

import (
	"time"
	"unique"
)

// Facet is the set of operations shared by facet representations.
type Facet interface {
	String() string
	IsValid() bool
	IsEmpty() bool
	HasDateLikeSuffix() bool
	HasInvalidDateLikeSuffix() bool
	SplitDateLikeSuffix() (prefix, suffix string, ok bool)
	SplitDateSuffix() (prefix string, date *time.Time, ok bool)
}

var _ Facet = Interned{}

// Interned is a Facet backed by an interned string. Equal facets share one
// copy of their text and compare in constant time. The zero value is the
// empty facet.
type Interned struct {
	h unique.Handle[string]
}

// FromString interns s. It does not validate s.
func FromString(s string) Interned {
	if s == "" {
		return Interned{}
	}
	return Interned{h: unique.Make(s)}
}

func (f Interned) String() string {
	if f.h == (unique.Handle[string]{}) {
		return ""
	}
	return f.h.Value()
}

func (f Interned) IsValid() bool { return IsValid(f.String()) }

func (f Interned) IsEmpty() bool { return IsEmpty(f.String()) }

func (f Interned) HasDateLikeSuffix() bool { return HasDateLikeSuffix(f.String()) }

func (f Interned) HasInvalidDateLikeSuffix() bool { return HasInvalidDateLikeSuffix(f.String()) }

func (f Interned) SplitDateLikeSuffix() (prefix, suffix string, ok bool) {
	return SplitDateLikeSuffix(f.String())
}

func (f Interned) SplitDateSuffix() (prefix string, date *time.Time, ok bool) {
	return SplitDateSuffix(f.String())
}

// MarshalText implements encoding.TextMarshaler.
func (f Interned) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It does not validate.
func (f *Interned) UnmarshalText(text []byte) error {
	*f = FromString(string(text))
	return nil
}
