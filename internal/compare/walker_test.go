package compare

import (
	"reflect"
	"testing"

	"github.com/execdiag/execlogcmp/internal/execlog"
)

func TestTransitiveFollowsMismatchedInput(t *testing.T) {
	// foo.out is built from foo.o; foo.o's own output digest differs
	// across logs. The walk must surface the foo.o output mismatch even
	// though it is only reachable through foo.out's input mismatch.
	set := logSet(map[string][]testAction{
		"log1": {
			{
				outputs: map[string]execlog.Digest{"foo.out": digest("1111", 50)},
				inputs:  map[string]execlog.Digest{"foo.o": digest("aaaa", 100)},
			},
			{
				outputs: map[string]execlog.Digest{"foo.o": digest("aaaa", 100)},
				inputs:  map[string]execlog.Digest{"foo.c": digest("cccc", 10)},
			},
		},
		"log2": {
			{
				outputs: map[string]execlog.Digest{"foo.out": digest("2222", 50)},
				inputs:  map[string]execlog.Digest{"foo.o": digest("bbbb", 100)},
			},
			{
				outputs: map[string]execlog.Digest{"foo.o": digest("bbbb", 100)},
				inputs:  map[string]execlog.Digest{"foo.c": digest("cccc", 10)},
			},
		},
	}, "log1", "log2")

	res, err := Transitive(set, "foo.out")
	if err != nil {
		t.Fatalf("transitive: %v", err)
	}
	if !reflect.DeepEqual(keys(res.Outputs), []string{"foo.o", "foo.out"}) {
		t.Fatalf("output mismatches: %v", keys(res.Outputs))
	}
	if !reflect.DeepEqual(keys(res.Inputs), []string{"foo.o"}) {
		t.Fatalf("input mismatches: %v", keys(res.Inputs))
	}
	if _, ok := res.Visited["foo.o"]; !ok {
		t.Fatalf("foo.o not visited: %v", res.Visited)
	}
}

func TestTransitiveVisitsEachNodeOnce(t *testing.T) {
	// diamond: root depends on left and right, both depend on base.
	mk := func(rootHash, leftHash, rightHash, baseHash string) []testAction {
		return []testAction{
			{
				outputs: map[string]execlog.Digest{"root": digest(rootHash, 1)},
				inputs: map[string]execlog.Digest{
					"left":  digest(leftHash, 1),
					"right": digest(rightHash, 1),
				},
			},
			{
				outputs: map[string]execlog.Digest{"left": digest(leftHash, 1)},
				inputs:  map[string]execlog.Digest{"base": digest(baseHash, 1)},
			},
			{
				outputs: map[string]execlog.Digest{"right": digest(rightHash, 1)},
				inputs:  map[string]execlog.Digest{"base": digest(baseHash, 1)},
			},
			{
				outputs: map[string]execlog.Digest{"base": digest(baseHash, 1)},
			},
		}
	}
	set := logSet(map[string][]testAction{
		"log1": mk("r1", "l1", "g1", "b1"),
		"log2": mk("r2", "l2", "g2", "b2"),
	}, "log1", "log2")

	res, err := Transitive(set, "root")
	if err != nil {
		t.Fatalf("transitive: %v", err)
	}
	// base reached via both left and right, reported once.
	if !reflect.DeepEqual(keys(res.Outputs), []string{"base", "left", "right", "root"}) {
		t.Fatalf("output mismatches: %v", keys(res.Outputs))
	}
	if len(res.Visited) != 4 {
		t.Fatalf("visited %d nodes: %v", len(res.Visited), res.Visited)
	}
}

func TestTransitiveTerminatesOnCycle(t *testing.T) {
	// a depends on b, b depends on a: invalid as a build graph but must
	// not hang the walk.
	mk := func(aHash, bHash string) []testAction {
		return []testAction{
			{
				outputs: map[string]execlog.Digest{"a": digest(aHash, 1)},
				inputs:  map[string]execlog.Digest{"b": digest(bHash, 1)},
			},
			{
				outputs: map[string]execlog.Digest{"b": digest(bHash, 1)},
				inputs:  map[string]execlog.Digest{"a": digest(aHash, 1)},
			},
		}
	}
	set := logSet(map[string][]testAction{
		"log1": mk("a1", "b1"),
		"log2": mk("a2", "b2"),
	}, "log1", "log2")

	res, err := Transitive(set, "a")
	if err != nil {
		t.Fatalf("transitive: %v", err)
	}
	if len(res.Visited) != 2 {
		t.Fatalf("visited %d nodes: %v", len(res.Visited), res.Visited)
	}
}

func TestTransitiveSelfReferentialAction(t *testing.T) {
	mk := func(hash string) []testAction {
		return []testAction{{
			outputs: map[string]execlog.Digest{"self": digest(hash, 1)},
			inputs:  map[string]execlog.Digest{"self": digest(hash, 1)},
		}}
	}
	set := logSet(map[string][]testAction{
		"log1": mk("s1"),
		"log2": mk("s2"),
	}, "log1", "log2")

	res, err := Transitive(set, "self")
	if err != nil {
		t.Fatalf("transitive: %v", err)
	}
	if len(res.Visited) != 1 {
		t.Fatalf("visited %d nodes", len(res.Visited))
	}
}

func TestTransitiveUnresolvableInputStillReported(t *testing.T) {
	// src.c mismatches as an input but no action produces it; it is
	// reported yet contributes no children.
	set := logSet(map[string][]testAction{
		"log1": {{
			outputs: map[string]execlog.Digest{"bin": digest("b1", 1)},
			inputs:  map[string]execlog.Digest{"src.c": digest("s1", 1)},
		}},
		"log2": {{
			outputs: map[string]execlog.Digest{"bin": digest("b2", 1)},
			inputs:  map[string]execlog.Digest{"src.c": digest("s2", 1)},
		}},
	}, "log1", "log2")

	res, err := Transitive(set, "bin")
	if err != nil {
		t.Fatalf("transitive: %v", err)
	}
	if !reflect.DeepEqual(keys(res.Inputs), []string{"src.c"}) {
		t.Fatalf("input mismatches: %v", keys(res.Inputs))
	}
	if _, ok := res.Visited["src.c"]; !ok {
		t.Fatalf("unresolvable input not visited")
	}
}

func TestTransitiveEnvDedupGlobal(t *testing.T) {
	// Both visited actions disagree on HOME; one traversal-global env
	// mismatch with first-seen values.
	set := logSet(map[string][]testAction{
		"log1": {
			{
				outputs: map[string]execlog.Digest{"top": digest("t1", 1)},
				inputs:  map[string]execlog.Digest{"mid": digest("m1", 1)},
				env:     map[string]string{"HOME": "/home/a"},
			},
			{
				outputs: map[string]execlog.Digest{"mid": digest("m1", 1)},
				env:     map[string]string{"HOME": "/home/a"},
			},
		},
		"log2": {
			{
				outputs: map[string]execlog.Digest{"top": digest("t2", 1)},
				inputs:  map[string]execlog.Digest{"mid": digest("m2", 1)},
				env:     map[string]string{"HOME": "/home/b"},
			},
			{
				outputs: map[string]execlog.Digest{"mid": digest("m2", 1)},
				env:     map[string]string{"HOME": "/home/b"},
			},
		},
	}, "log1", "log2")

	res, err := Transitive(set, "top")
	if err != nil {
		t.Fatalf("transitive: %v", err)
	}
	if !reflect.DeepEqual(keys(res.EnvVars), []string{"HOME"}) {
		t.Fatalf("env mismatches: %v", keys(res.EnvVars))
	}
}

func TestTransitiveNotFound(t *testing.T) {
	set := logSet(map[string][]testAction{
		"log1": {{outputs: map[string]execlog.Digest{"a": digest("aa", 1)}}},
	}, "log1")
	if _, err := Transitive(set, "nope"); err == nil {
		t.Fatalf("expected NotFoundError")
	}
}
