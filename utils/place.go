package utils

import "strings"

// ExcludedPlace reports whether a place name contains any of the keywords.
func ExcludedPlace(name string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(name, k) {
			return true
		}
	}
	return false
}
