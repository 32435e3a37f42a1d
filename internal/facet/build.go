package facet

import (
	"fmt"
	"strings"
	"time"
)

// FormatDateSuffix renders date as ~YYYYMMDD.
//
// Years that do not fit into four digits are rejected.
func FormatDateSuffix(date time.Time) (string, error) {
	if y := date.Year(); y < 0 || y > 9999 {
		return "", fmt.Errorf("facet: format year %d: %w", y, ErrDateOutOfRange)
	}
	return date.Format(DateSuffixLayout), nil
}

// FromPrefixWithDateSuffix concatenates prefix and the date suffix.
//
// The prefix must not end with whitespace, otherwise the result has an
// invalid date-like suffix.
func FromPrefixWithDateSuffix(prefix string, date time.Time) (Interned, error) {
	suffix, err := FormatDateSuffix(date)
	if err != nil {
		return Interned{}, err
	}
	return FromString(prefix + suffix), nil
}

// FromPrefixArgsWithDateSuffix is FromPrefixWithDateSuffix with the prefix
// given as a format string and arguments. The prefix is written directly
// into the result.
func FromPrefixArgsWithDateSuffix(date time.Time, format string, args ...any) (Interned, error) {
	suffix, err := FormatDateSuffix(date)
	if err != nil {
		return Interned{}, err
	}
	var b strings.Builder
	b.Grow(len(format) + len(suffix))
	fmt.Fprintf(&b, format, args...)
	b.WriteString(suffix)
	return FromString(b.String()), nil
}
