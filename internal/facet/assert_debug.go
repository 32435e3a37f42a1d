//go:build facetdebug

package facet

import "fmt"

func assertValid(s string) {
	if !IsValid(s) {
		panic(fmt.Sprintf("facet: invalid facet %q", s))
	}
}
