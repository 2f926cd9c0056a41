package compare

import (
	"github.com/execdiag/execlogcmp/internal/execlog"
)

// Frontier narrows a transitive comparison down to the nodes whose
// divergence is not already explained by a mismatch further upstream in
// their own input set: an input mismatch is dropped when its path also
// appears among the mismatched outputs (some visited producer already
// accounts for it), and an output mismatch is dropped when its path also
// appears among the mismatched inputs. Env-var mismatches have no
// upstream input to attribute to and pass through unfiltered.
//
// This is a best-effort heuristic, not sound root-cause isolation: the
// graph may have several independent divergence sources, and a mismatch
// may stem from metadata not modeled as an input (such as environment).
// The only guarantee is that the reported set is a subset of the full
// transitive result.
func Frontier(set *execlog.LogSet, rootOutputPath string) (*TransitiveResult, error) {
	full, err := Transitive(set, rootOutputPath)
	if err != nil {
		return nil, err
	}

	inputKeys := keySet(full.Inputs)
	outputKeys := keySet(full.Outputs)

	res := &TransitiveResult{Visited: full.Visited}
	res.EnvVars = full.EnvVars
	for _, m := range full.Inputs {
		if _, ok := outputKeys[m.Key]; !ok {
			res.Inputs = append(res.Inputs, m)
		}
	}
	for _, m := range full.Outputs {
		if _, ok := inputKeys[m.Key]; !ok {
			res.Outputs = append(res.Outputs, m)
		}
	}
	return res, nil
}

func keySet(ms []Mismatch) map[string]struct{} {
	s := make(map[string]struct{}, len(ms))
	for _, m := range ms {
		s[m.Key] = struct{}{}
	}
	return s
}
