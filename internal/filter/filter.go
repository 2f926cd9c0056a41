package filter

import (
	"fmt"
	"strings"

	"github.com/execdiag/execlogcmp/internal/compare"
	"github.com/execdiag/execlogcmp/internal/execlog"
)

// Rules configures mismatch filtering.
type Rules struct {
	// IgnorePatterns are gitignore-syntax lines matched against input
	// and output mismatch keys. Env-var mismatches are never filtered
	// by path patterns.
	IgnorePatterns []string
	// LuaPredicate, when non-empty, is an inline Lua chunk evaluated
	// per mismatch with globals `kind` and `key`; its result decides
	// whether the mismatch is kept. Bare expressions are wrapped in a
	// return statement.
	LuaPredicate string
	Limits       SandboxLimits
	// KeepGoing turns predicate failures into warnings that keep the
	// mismatch; otherwise the first failure aborts the query.
	KeepGoing bool
}

// Empty reports whether the rules filter nothing.
func (r Rules) Empty() bool {
	return len(r.IgnorePatterns) == 0 && r.LuaPredicate == ""
}

// predicate normalizes the inline chunk the way the config layer accepts
// it: a bare expression becomes `return (expr)`.
func (r Rules) predicate() string {
	code := strings.TrimSpace(r.LuaPredicate)
	if code == "" {
		return ""
	}
	if !strings.Contains(code, "return") {
		code = "return (" + code + ")"
	}
	return code
}

// Apply filters a direct comparison result. The input is not mutated.
func Apply(res *compare.ComparisonResult, rules Rules) (*compare.ComparisonResult, []execlog.Warning, error) {
	if rules.Empty() {
		return res, nil, nil
	}
	f := newFiltering(rules)
	out := &compare.ComparisonResult{}
	var err error
	out.EnvVars, err = f.keep(res.EnvVars, false)
	if err != nil {
		return nil, nil, err
	}
	out.Inputs, err = f.keep(res.Inputs, true)
	if err != nil {
		return nil, nil, err
	}
	out.Outputs, err = f.keep(res.Outputs, true)
	if err != nil {
		return nil, nil, err
	}
	return out, f.warnings, nil
}

// ApplyTransitive filters a transitive result, preserving the visited
// set. The input is not mutated.
func ApplyTransitive(res *compare.TransitiveResult, rules Rules) (*compare.TransitiveResult, []execlog.Warning, error) {
	if rules.Empty() {
		return res, nil, nil
	}
	flat, warnings, err := Apply(&res.ComparisonResult, rules)
	if err != nil {
		return nil, nil, err
	}
	out := &compare.TransitiveResult{ComparisonResult: *flat, Visited: res.Visited}
	return out, warnings, nil
}

type filtering struct {
	ignorer  *Ignorer
	pred     string
	limits   SandboxLimits
	keepAll  bool
	warnings []execlog.Warning
}

func newFiltering(rules Rules) *filtering {
	limits := rules.Limits
	if limits == (SandboxLimits{}) {
		limits = DefaultSandboxLimits
	}
	return &filtering{
		ignorer: NewIgnorer(rules.IgnorePatterns),
		pred:    rules.predicate(),
		limits:  limits,
		keepAll: rules.KeepGoing,
	}
}

func (f *filtering) keep(ms []compare.Mismatch, pathKeyed bool) ([]compare.Mismatch, error) {
	if len(ms) == 0 {
		return nil, nil
	}
	out := make([]compare.Mismatch, 0, len(ms))
	for _, m := range ms {
		if pathKeyed && f.ignorer.Ignored(m.Key) {
			continue
		}
		keep, err := f.evalPredicate(m)
		if err != nil {
			return nil, err
		}
		if keep {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func (f *filtering) evalPredicate(m compare.Mismatch) (bool, error) {
	if f.pred == "" {
		return true, nil
	}
	keep, violation, err := runSandboxed(f.pred, map[string]string{
		"kind": string(m.Kind),
		"key":  m.Key,
	}, f.limits)
	if violation != "" {
		err = fmt.Errorf("lua filter: %s", violation)
	} else if err != nil {
		err = fmt.Errorf("lua filter: %v", err)
	}
	if err != nil {
		if !f.keepAll {
			return false, err
		}
		// keep-going: keep the mismatch, record the failure once per key
		f.warnings = append(f.warnings, execlog.Warning{
			Stage:   "filter",
			Message: sanitizeMessage(err.Error() + " (key " + m.Key + ")"),
		})
		return true, nil
	}
	return keep, nil
}

func sanitizeMessage(msg string) string {
	s := strings.Join(strings.Fields(msg), " ")
	if s == "" {
		return "error"
	}
	return s
}
