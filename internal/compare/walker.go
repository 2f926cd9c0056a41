package compare

import (
	"github.com/execdiag/execlogcmp/internal/execlog"
)

// Transitive walks the dependency graph implied by action inputs,
// breadth-first from rootOutputPath, comparing each visited path and
// merging the results.
//
// An edge A -> B exists when some producer of A lists B among its
// inputs; only inputs that themselves mismatched are expanded, since a
// matching input cannot explain a divergence downstream of it. The
// visited set guarantees termination even on cyclic or self-referential
// graphs, and each path is processed at most once. Env-var mismatches
// are global to the traversal (environment is a property of the log,
// not of a node) and deduplicated by name; output mismatches are
// deduplicated by path with first-seen per-log values kept.
func Transitive(set *execlog.LogSet, rootOutputPath string) (*TransitiveResult, error) {
	if _, found := resolve(set, rootOutputPath); !found {
		return nil, &NotFoundError{Path: rootOutputPath}
	}

	res := &TransitiveResult{Visited: map[string]struct{}{}}
	seenEnv := map[string]struct{}{}
	seenInput := map[string]struct{}{}
	seenOutput := map[string]struct{}{}

	queue := []string{rootOutputPath}
	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]
		if _, ok := res.Visited[path]; ok {
			continue
		}
		res.Visited[path] = struct{}{}

		records, found := resolve(set, path)
		if !found {
			// The path mismatched as an input upstream but resolves
			// nowhere; its absence was already reported there and it
			// has no resolvable inputs of its own.
			continue
		}
		node := compareRecords(records)

		for _, m := range node.EnvVars {
			if _, ok := seenEnv[m.Key]; ok {
				continue
			}
			seenEnv[m.Key] = struct{}{}
			res.EnvVars = append(res.EnvVars, m)
		}
		for _, m := range node.Outputs {
			if _, ok := seenOutput[m.Key]; ok {
				continue
			}
			seenOutput[m.Key] = struct{}{}
			res.Outputs = append(res.Outputs, m)
		}
		for _, m := range node.Inputs {
			if _, ok := seenInput[m.Key]; !ok {
				seenInput[m.Key] = struct{}{}
				res.Inputs = append(res.Inputs, m)
			}
			// Expand mismatched inputs whether or not they resolve to
			// a producer; a dead end contributes no children.
			if _, ok := res.Visited[m.Key]; !ok {
				queue = append(queue, m.Key)
			}
		}
	}

	sortByKey(res.EnvVars)
	sortByKey(res.Inputs)
	sortByKey(res.Outputs)
	return res, nil
}
