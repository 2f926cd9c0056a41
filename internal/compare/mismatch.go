// Package compare implements the direct, transitive, and frontier
// comparison algorithms over a frozen execution-log set. All operations
// are pure: they read the snapshot, allocate a result, and take no
// locks, so any number of queries may run concurrently.
package compare

import (
	"github.com/execdiag/execlogcmp/internal/execlog"
)

// Kind classifies what a mismatch key refers to.
type Kind string

const (
	KindEnvVar Kind = "env"
	KindInput  Kind = "input"
	KindOutput Kind = "output"
)

// Value is one log's value for a mismatch key. Absence is data, not an
// error: a log that does not resolve the key contributes a Value with
// Present=false.
type Value struct {
	Present bool
	// EnvValue is set for KindEnvVar.
	EnvValue string
	// Digest is set for KindInput and KindOutput.
	Digest execlog.Digest
}

func (v Value) equal(o Value) bool {
	if v.Present != o.Present {
		return false
	}
	if !v.Present {
		return true
	}
	return v.EnvValue == o.EnvValue && v.Digest.Equal(o.Digest)
}

// Mismatch is a key whose values differ across at least two logs,
// counting absence as a distinguishing value. PerLog is ordered as the
// LogSet.
type Mismatch struct {
	Kind   Kind
	Key    string
	PerLog []Value
}

// ComparisonResult groups the mismatches of one direct comparison,
// each slice sorted lexicographically by key.
type ComparisonResult struct {
	EnvVars []Mismatch
	Inputs  []Mismatch
	Outputs []Mismatch
}

// Empty reports whether no mismatch of any kind was found.
func (r *ComparisonResult) Empty() bool {
	return len(r.EnvVars) == 0 && len(r.Inputs) == 0 && len(r.Outputs) == 0
}

// TransitiveResult accumulates ComparisonResults across a traversal,
// deduplicated by key within each kind, plus the set of visited paths.
type TransitiveResult struct {
	ComparisonResult
	Visited map[string]struct{}
}
