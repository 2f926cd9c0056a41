package execlog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeLog(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const validLog = `{"listedOutputs": ["a.o"], "actualOutputs": [{"path": "a.o", "digest": {"hash": "aa", "sizeBytes": 1, "hashFunctionName": "SHA-256"}}]}`

func TestLoadAllPreservesSpecOrder(t *testing.T) {
	dir := t.TempDir()
	specs := []LogSpec{
		{Name: "zz", Path: writeLog(t, dir, "zz.json", validLog)},
		{Name: "aa", Path: writeLog(t, dir, "aa.json", validLog)},
		{Name: "mm", Path: writeLog(t, dir, "mm.json", validLog)},
	}
	set, _, err := LoadAll(specs, LoadOptions{Workers: 3})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got := set.Names()
	want := []string{"zz", "aa", "mm"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order: got %v, want %v", got, want)
		}
	}
}

func TestLoadAllKeepGoingDropsBadLog(t *testing.T) {
	dir := t.TempDir()
	specs := []LogSpec{
		{Name: "good", Path: writeLog(t, dir, "good.json", validLog)},
		{Name: "bad", Path: writeLog(t, dir, "bad.json", `{"listedOutputs": nope}`)},
	}
	set, warnings, err := LoadAll(specs, LoadOptions{KeepGoing: true})
	if err != nil {
		t.Fatalf("keep-going load should not fail: %v", err)
	}
	if set.Len() != 1 || set.Names()[0] != "good" {
		t.Fatalf("set = %v", set.Names())
	}
	found := false
	for _, w := range warnings {
		if w.Stage == "load" && w.Log == "bad" {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing load warning for bad log: %v", warnings)
	}
}

func TestLoadAllFailFastSurfacesParseError(t *testing.T) {
	dir := t.TempDir()
	specs := []LogSpec{
		{Name: "bad", Path: writeLog(t, dir, "bad.json", `{"inputs": [{"path": "x", "digest": {"sizeBytes": "NaN"}}]}`)},
	}
	_, _, err := LoadAll(specs, LoadOptions{})
	if err == nil {
		t.Fatalf("expected error")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error type: %T (%v)", err, err)
	}
	if pe.Log != "bad" || pe.Record != 0 {
		t.Fatalf("context: log=%q record=%d", pe.Log, pe.Record)
	}
}

func TestLoadAllReportsAmbiguousOutputs(t *testing.T) {
	dir := t.TempDir()
	dupLog := validLog + validLog
	specs := []LogSpec{{Name: "dup", Path: writeLog(t, dir, "dup.json", dupLog)}}
	_, warnings, err := LoadAll(specs, LoadOptions{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(warnings) != 1 || warnings[0].Stage != "index" || !strings.Contains(warnings[0].Message, "a.o") {
		t.Fatalf("warnings = %v", warnings)
	}
}

func TestSortWarningsDeterministic(t *testing.T) {
	ws := []Warning{
		{Stage: "load", Log: "b", Message: "m2"},
		{Stage: "index", Log: "z", Message: "m2"},
		{Stage: "index", Log: "a", Message: "m3"},
		{Stage: "index", Log: "a", Message: "m1"},
	}
	SortWarnings(ws)
	want := []Warning{
		{Stage: "index", Log: "a", Message: "m1"},
		{Stage: "index", Log: "a", Message: "m3"},
		{Stage: "index", Log: "z", Message: "m2"},
		{Stage: "load", Log: "b", Message: "m2"},
	}
	for i := range want {
		if ws[i] != want[i] {
			t.Fatalf("index %d mismatch: got=%+v want=%+v", i, ws[i], want[i])
		}
	}
}
