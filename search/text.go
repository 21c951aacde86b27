package search

import "strings"

// containsFold reports whether text contains substr, case-insensitively.
func containsFold(text, substr string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(substr))
}
