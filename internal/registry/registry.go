// Package registry provides the dispatch mechanism that routes project files
// to the file-format and source-language handlers registered for them.
package registry

import (
	"path/filepath"
	"strings"
)

// Matcher is the capability predicate deciding whether a handler accepts a file.
type Matcher interface {
	Match(path string) bool
}

// NameMatcher matches exact file base names.
type NameMatcher []string

func (m NameMatcher) Match(path string) bool {
	base := filepath.Base(path)
	for _, name := range m {
		if base == name {
			return true
		}
	}
	return false
}

// ExtMatcher matches file extensions, dot included (".py").
type ExtMatcher []string

func (m ExtMatcher) Match(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range m {
		if ext == want {
			return true
		}
	}
	return false
}

// GlobMatcher matches glob patterns against the file base name.
type GlobMatcher []string

func (m GlobMatcher) Match(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range m {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// PathGlobMatcher matches glob patterns against the slash-separated relative path.
type PathGlobMatcher []string

func (m PathGlobMatcher) Match(path string) bool {
	slashed := filepath.ToSlash(path)
	for _, pattern := range m {
		if ok, _ := filepath.Match(pattern, slashed); ok {
			return true
		}
	}
	return false
}

// Any combines matchers; the file is accepted if any of them accepts it.
type Any []Matcher

func (m Any) Match(path string) bool {
	for _, matcher := range m {
		if matcher.Match(path) {
			return true
		}
	}
	return false
}

type entry[H any] struct {
	matcher Matcher
	handler H
}

// Registry maps capability predicates to handlers. Lookup returns the first
// handler whose predicate matches, in registration order: first-registered
// wins on overlapping predicates, which callers rely on to shadow broad
// patterns with more specific ones.
type Registry[H any] struct {
	entries []entry[H]
}

// New creates an empty registry for one handler family.
func New[H any]() *Registry[H] {
	return &Registry[H]{}
}

// Register binds a matcher to a handler.
func (r *Registry[H]) Register(matcher Matcher, handler H) {
	r.entries = append(r.entries, entry[H]{matcher: matcher, handler: handler})
}

// Find returns the first registered handler accepting the given path.
func (r *Registry[H]) Find(path string) (H, bool) {
	for _, e := range r.entries {
		if e.matcher.Match(path) {
			return e.handler, true
		}
	}
	var zero H
	return zero, false
}

// Handlers enumerates all registered handlers in registration order.
func (r *Registry[H]) Handlers() []H {
	handlers := make([]H, 0, len(r.entries))
	for _, e := range r.entries {
		handlers = append(handlers, e.handler)
	}
	return handlers
}

// Len returns the number of registered handlers.
func (r *Registry[H]) Len() int {
	return len(r.entries)
}
