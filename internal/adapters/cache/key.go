package cache

import "strings"

// cacheKey collapses whitespace and case so equivalent queries share an entry.
func cacheKey(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}
