package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/execdiag/execlogcmp/internal/execlog"
)

// View writes the fields of interest of one resolved action. Maps are
// rendered sorted so views are stable and diffable.
func View(w io.Writer, rec *execlog.ActionRecord, st Styles) {
	fmt.Fprint(w, ViewString(rec))
}

// ViewString renders the view as plain text; the diff command compares
// two of these line by line.
func ViewString(rec *execlog.ActionRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "mnemonic: %s\n", rec.Mnemonic)
	fmt.Fprintf(&b, "runner: %s\n", rec.Runner)
	fmt.Fprintf(&b, "status: %s\n", rec.Status)
	fmt.Fprintf(&b, "exitCode: %d\n", rec.ExitCode)
	fmt.Fprintf(&b, "remotable: %t cacheable: %t remoteCacheHit: %t\n",
		rec.Remotable, rec.Cacheable, rec.RemoteCacheHit)
	if rec.TimeoutMillis != 0 {
		fmt.Fprintf(&b, "timeoutMillis: %d\n", rec.TimeoutMillis)
	}

	b.WriteString("environmentVariables:\n")
	for _, name := range sortedKeys(rec.Env) {
		fmt.Fprintf(&b, "  %s=%s\n", name, rec.Env[name])
	}

	b.WriteString("inputs:\n")
	for _, p := range sortedDigestKeys(rec.Inputs) {
		fmt.Fprintf(&b, "  %s %s\n", p, rec.Inputs[p])
	}

	b.WriteString("listedOutputs:\n")
	listed := append([]string(nil), rec.ListedOutputs...)
	sort.Strings(listed)
	for _, p := range listed {
		fmt.Fprintf(&b, "  %s\n", p)
	}

	b.WriteString("actualOutputs:\n")
	for _, p := range sortedDigestKeys(rec.ActualOutputs) {
		fmt.Fprintf(&b, "  %s %s\n", p, rec.ActualOutputs[p])
	}
	return b.String()
}

// Equivalent reports whether two records render to the same view, which
// is how the diff command defines "equivalent executions".
func Equivalent(a, b *execlog.ActionRecord) bool {
	if a == nil || b == nil {
		return a == b
	}
	return ViewString(a) == ViewString(b)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedDigestKeys(m map[string]execlog.Digest) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
