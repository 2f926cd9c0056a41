package compare

import (
	"fmt"
	"sort"

	"github.com/execdiag/execlogcmp/internal/execlog"
)

// NotFoundError reports an output path that no log's index resolves.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("output not found in any log: %s", e.Path)
}

// Compare resolves the producing action of outputPath in every log and
// computes the per-kind mismatches. A log without a producer contributes
// absent values for every field; only a path absent from every log is an
// error.
func Compare(set *execlog.LogSet, outputPath string) (*ComparisonResult, error) {
	records, found := resolve(set, outputPath)
	if !found {
		return nil, &NotFoundError{Path: outputPath}
	}
	return compareRecords(records), nil
}

// resolve returns the per-log producing record (nil where absent) in
// canonical order, and whether any log resolved the path.
func resolve(set *execlog.LogSet, outputPath string) ([]*execlog.ActionRecord, bool) {
	stores := set.Stores()
	records := make([]*execlog.ActionRecord, len(stores))
	found := false
	for i, st := range stores {
		records[i] = st.Producer(outputPath)
		if records[i] != nil {
			found = true
		}
	}
	return records, found
}

func compareRecords(records []*execlog.ActionRecord) *ComparisonResult {
	inputs := func(a *execlog.ActionRecord) map[string]execlog.Digest { return a.Inputs }
	outputs := func(a *execlog.ActionRecord) map[string]execlog.Digest { return a.ActualOutputs }
	return &ComparisonResult{
		EnvVars: scanEnv(records),
		Inputs:  scanDigests(records, KindInput, inputs),
		Outputs: scanDigests(records, KindOutput, outputs),
	}
}

// scanEnv unions variable names across all resolved records and emits a
// mismatch for every name whose per-log values are not all identical.
func scanEnv(records []*execlog.ActionRecord) []Mismatch {
	names := map[string]struct{}{}
	for _, r := range records {
		if r == nil {
			continue
		}
		for n := range r.Env {
			names[n] = struct{}{}
		}
	}
	var out []Mismatch
	for n := range names {
		perLog := make([]Value, len(records))
		for i, r := range records {
			if r == nil {
				continue
			}
			if v, ok := r.Env[n]; ok {
				perLog[i] = Value{Present: true, EnvValue: v}
			}
		}
		if !allEqual(perLog) {
			out = append(out, Mismatch{Kind: KindEnvVar, Key: n, PerLog: perLog})
		}
	}
	sortByKey(out)
	return out
}

// scanDigests applies the same union scan to a digest map selected from
// each record.
func scanDigests(records []*execlog.ActionRecord, kind Kind, sel func(*execlog.ActionRecord) map[string]execlog.Digest) []Mismatch {
	paths := map[string]struct{}{}
	for _, r := range records {
		if r == nil {
			continue
		}
		for p := range sel(r) {
			paths[p] = struct{}{}
		}
	}
	var out []Mismatch
	for p := range paths {
		perLog := make([]Value, len(records))
		for i, r := range records {
			if r == nil {
				continue
			}
			if d, ok := sel(r)[p]; ok {
				perLog[i] = Value{Present: true, Digest: d}
			}
		}
		if !allEqual(perLog) {
			out = append(out, Mismatch{Kind: kind, Key: p, PerLog: perLog})
		}
	}
	sortByKey(out)
	return out
}

func allEqual(vs []Value) bool {
	for i := 1; i < len(vs); i++ {
		if !vs[i].equal(vs[0]) {
			return false
		}
	}
	return true
}

func sortByKey(ms []Mismatch) {
	sort.Slice(ms, func(i, j int) bool { return ms[i].Key < ms[j].Key })
}
