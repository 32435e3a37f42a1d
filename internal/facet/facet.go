// Package facet validates and splits facets: tag-like labels that may end in
// a date suffix of the form ~YYYYMMDD.
//
// All functions are pure. Except for IsValid they expect a valid facet; the
// precondition is only asserted in builds tagged facetdebug.
package facet

import (
	"regexp"
	"strings"
	"time"
)

// DateSuffixLayout is the time layout of the date suffix.
const DateSuffixLayout = "~20060102"

// DateLikeSuffixLen is the byte length of a date-like suffix (~yyyyMMdd).
const DateLikeSuffixLen = 1 + 8

// spaceClass is the character class body of unicode.IsSpace.
const spaceClass = `\s\v\x{85}\p{Z}`

var (
	// The '~' separator must not be preceded by whitespace: the facet either
	// equals the suffix or the separator sticks to a non-whitespace character.
	dateLikeSuffixRe = regexp.MustCompile(`(?:^|[^` + spaceClass + `])~[0-9]{8}$`)

	invalidDateLikeSuffixRe = regexp.MustCompile(`[` + spaceClass + `]+~[0-9]{8}$`)
)

// IsValid reports whether s is a valid facet.
//
// An empty facet is valid.
func IsValid(s string) bool {
	return strings.TrimSpace(s) == s && !strings.HasPrefix(s, "/")
}

// IsEmpty reports whether the facet is empty.
func IsEmpty(s string) bool {
	assertValid(s)
	return s == ""
}

// HasDateLikeSuffix reports whether the facet ends with a date-like suffix
// that is not separated from the prefix by whitespace.
func HasDateLikeSuffix(s string) bool {
	assertValid(s)
	return dateLikeSuffixRe.MatchString(s)
}

// HasInvalidDateLikeSuffix reports whether the facet ends with a date-like
// suffix preceded by whitespace.
func HasInvalidDateLikeSuffix(s string) bool {
	assertValid(s)
	return invalidDateLikeSuffixRe.MatchString(s)
}

// SplitDateLikeSuffix splits off the trailing DateLikeSuffixLen bytes.
//
// The split is purely positional: neither the shape of the suffix nor
// whitespace in front of it is checked. It fails if s is too short or the
// suffix is not ASCII.
func SplitDateLikeSuffix(s string) (prefix, suffix string, ok bool) {
	assertValid(s)
	if len(s) < DateLikeSuffixLen {
		return "", "", false
	}
	n := len(s) - DateLikeSuffixLen
	suffix = s[n:]
	if !isASCII(suffix) {
		return "", "", false
	}
	return s[:n], suffix, true
}

// SplitDateSuffix splits the facet like SplitDateLikeSuffix and parses the
// suffix. date is nil if the suffix is not a calendar date.
func SplitDateSuffix(s string) (prefix string, date *time.Time, ok bool) {
	assertValid(s)
	prefix, suffix, ok := SplitDateLikeSuffix(s)
	if !ok {
		return "", nil, false
	}
	if !isDateLike(suffix) {
		return prefix, nil, true
	}
	if d, err := time.Parse(DateSuffixLayout, suffix); err == nil {
		date = &d
	}
	return prefix, date, true
}

// isDateLike reports whether suffix is '~' followed by 8 ASCII digits.
// time.Parse alone would accept a signed year such as "~-0010101".
func isDateLike(suffix string) bool {
	if len(suffix) != DateLikeSuffixLen || suffix[0] != '~' {
		return false
	}
	for i := 1; i < len(suffix); i++ {
		if suffix[i] < '0' || suffix[i] > '9' {
			return false
		}
	}
	return true
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
