package engine

import "strings"

// MatchFunc decides whether an observed window's process name matches the
// name recorded in a fullscreen preference. Identity by pid plus name is a
// deliberately weak heuristic: the OS reuses numeric process ids, and the
// name is the only other signal available, so the predicate is pluggable and
// the default demands an exact match.
type MatchFunc func(preferred, observed string) bool

// ExactMatch matches only identical, non-empty process names.
func ExactMatch(preferred, observed string) bool {
	return preferred != "" && preferred == observed
}

// FoldMatch matches process names case-insensitively. Windows executable
// names are not case-sensitive, so this is a reasonable relaxation.
func FoldMatch(preferred, observed string) bool {
	return preferred != "" && strings.EqualFold(preferred, observed)
}
