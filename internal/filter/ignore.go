// Package filter post-processes comparison results: gitignore-style
// ignore patterns mute known-noisy paths, and an optional sandboxed Lua
// predicate decides per mismatch whether to keep it. Filtering never
// mutates the input result.
package filter

import (
	"strings"

	gitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Ignorer matches mismatch keys against gitignore-syntax patterns.
// Negated patterns (leading !) re-include previously ignored keys.
type Ignorer struct {
	matcher gitignore.Matcher
	empty   bool
}

// NewIgnorer compiles the given pattern lines. Blank lines and comments
// are skipped, as in .gitignore files.
func NewIgnorer(lines []string) *Ignorer {
	var patterns []gitignore.Pattern
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	if len(patterns) == 0 {
		return &Ignorer{empty: true}
	}
	return &Ignorer{matcher: gitignore.NewMatcher(patterns)}
}

// Ignored reports whether key matches the ignore patterns. Keys are
// slash-separated output paths.
func (ig *Ignorer) Ignored(key string) bool {
	if ig == nil || ig.empty {
		return false
	}
	comps := strings.Split(strings.TrimPrefix(key, "/"), "/")
	return ig.matcher.Match(comps, false)
}
