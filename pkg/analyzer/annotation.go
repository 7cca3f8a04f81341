package analyzer

import "strings"

// AnnotationMatcher decides whether a call-like reference names a
// recognized component annotation. It works on reference text alone,
// so the underlying syntax-tree representation stays swappable.
type AnnotationMatcher struct {
	names map[string]struct{}
}

// NewAnnotationMatcher builds a matcher for the given annotation names.
func NewAnnotationMatcher(names []string) AnnotationMatcher {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return AnnotationMatcher{names: set}
}

// Matches reports whether ref is a recognized annotation reference,
// either bare ("Component") or qualified ("core.Component"). Qualified
// references match on their final member segment.
func (m AnnotationMatcher) Matches(ref string) bool {
	if _, ok := m.names[ref]; ok {
		return true
	}
	if idx := strings.LastIndexByte(ref, '.'); idx >= 0 {
		_, ok := m.names[ref[idx+1:]]
		return ok
	}
	return false
}
