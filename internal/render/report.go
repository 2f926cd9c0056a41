package render

import (
	"fmt"
	"io"

	"github.com/execdiag/execlogcmp/internal/compare"
	"github.com/execdiag/execlogcmp/internal/execlog"
)

const absentMarker = "<not present>"

// Report writes a mismatch report in log-set order: one section per
// kind, keys sorted, one line per log under each key.
func Report(w io.Writer, res *compare.ComparisonResult, logNames []string, st Styles) {
	mismatched := false

	if len(res.EnvVars) > 0 {
		mismatched = true
		fmt.Fprintf(w, "\n%s:\n", st.Header.Render("Environment Variable Mismatches"))
		for _, m := range res.EnvVars {
			fmt.Fprintf(w, "  $%s\n", st.Key.Render(m.Key))
			writePerLog(w, m, logNames, st)
		}
	}

	writeItemSection(w, "Input Mismatches", res.Inputs, logNames, st, &mismatched)
	writeItemSection(w, "Output Mismatches", res.Outputs, logNames, st, &mismatched)

	if !mismatched {
		fmt.Fprintf(w, "%s\n", st.Good.Render("No mismatches!"))
	}
}

func writeItemSection(w io.Writer, title string, ms []compare.Mismatch, logNames []string, st Styles, mismatched *bool) {
	if len(ms) == 0 {
		return
	}
	*mismatched = true
	fmt.Fprintf(w, "\n%s:\n", st.Header.Render(title))
	for _, m := range ms {
		fmt.Fprintf(w, "  `%s`\n", st.Key.Render(m.Key))
		writePerLog(w, m, logNames, st)
	}
}

func writePerLog(w io.Writer, m compare.Mismatch, logNames []string, st Styles) {
	for i, name := range logNames {
		fmt.Fprintf(w, "    %s: ", st.LogName.Render(padName(name)))
		var v compare.Value
		if i < len(m.PerLog) {
			v = m.PerLog[i]
		}
		switch {
		case !v.Present:
			fmt.Fprintln(w, st.Absent.Render(absentMarker))
		case m.Kind == compare.KindEnvVar:
			fmt.Fprintln(w, st.Value.Render(v.EnvValue))
		default:
			fmt.Fprintln(w, st.Value.Render(v.Digest.String()))
		}
	}
}

// padName right-aligns log names in a 20-column gutter, truncating long
// ones, so the values line up across logs.
func padName(name string) string {
	const width = 20
	if len(name) > width {
		name = name[len(name)-width:]
	}
	return fmt.Sprintf("%*s", width, name)
}

// Warnings writes load diagnostics, already sorted by the loader.
func Warnings(w io.Writer, warnings []execlog.Warning, st Styles) {
	for _, warning := range warnings {
		label := st.Warn.Render("WARNING")
		if warning.Log != "" {
			fmt.Fprintf(w, "[%s] %s: %s\n", label, st.Key.Render(warning.Log), warning.Message)
			continue
		}
		fmt.Fprintf(w, "[%s] %s\n", label, warning.Message)
	}
}
