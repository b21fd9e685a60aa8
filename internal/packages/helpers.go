package packages

import "strings"

// ParseCommaList splits comma-separated input into an ordered list.
// Entries are trimmed, empties dropped, input order preserved.
func ParseCommaList(input string) []string {
	if strings.TrimSpace(input) == "" {
		return []string{}
	}

	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// JoinCommaList is the inverse of ParseCommaList, used for edit forms.
func JoinCommaList(items []string) string {
	return strings.Join(items, ", ")
}
