package domain

import "strings"

// Entity is a case-folded token or noun phrase used as a bridge between a
// question and the chunks that mention it. Entities are shared across
// chunks and documents; deletion is not supported.
type Entity struct {
	Key         string
	DisplayName string
	Kind        string
}

// NormalizeEntityKey case-folds and trims a raw entity string into its
// canonical key. Entity keys are case-folded on write and on lookup (§3
// invariant 5).
func NormalizeEntityKey(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
