//go:build !facetdebug

package facet

func assertValid(string) {}
