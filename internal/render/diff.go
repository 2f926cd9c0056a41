package render

import (
	"fmt"
	"io"
	"strings"
)

// DiffLines writes a line diff of two texts: unchanged lines prefixed
// with a space, removals with -, additions with +. Uses a plain LCS so
// the output is minimal and stable.
func DiffLines(w io.Writer, a, b string, st Styles) {
	al := splitLines(a)
	bl := splitLines(b)

	lcs := lcsTable(al, bl)
	i, j := 0, 0
	for i < len(al) || j < len(bl) {
		switch {
		case i < len(al) && j < len(bl) && al[i] == bl[j]:
			fmt.Fprintf(w, " %s\n", al[i])
			i++
			j++
		case j < len(bl) && (i == len(al) || lcs[i][j+1] >= lcs[i+1][j]):
			fmt.Fprintf(w, "%s\n", st.DiffAdded.Render("+"+bl[j]))
			j++
		default:
			fmt.Fprintf(w, "%s\n", st.DiffRemove.Render("-"+al[i]))
			i++
		}
	}
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// lcsTable[i][j] is the LCS length of a[i:] and b[j:].
func lcsTable(a, b []string) [][]int {
	t := make([][]int, len(a)+1)
	for i := range t {
		t[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				t[i][j] = t[i+1][j+1] + 1
			} else if t[i+1][j] >= t[i][j+1] {
				t[i][j] = t[i+1][j]
			} else {
				t[i][j] = t[i][j+1]
			}
		}
	}
	return t
}
