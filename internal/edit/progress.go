package edit

import (
	"fmt"
	"io"
)

// RenderProgress prints one line per touched file plus the summary
// message, if any. Kept apart from the engine so the operations stay
// testable without capturing console output.
func RenderProgress(w io.Writer, res *Result) {
	for _, t := range res.Touched {
		fmt.Fprintf(w, "%s %q in %s\n", t.Action, t.Path, t.File)
	}
	if res.Message != "" {
		fmt.Fprintln(w, res.Message)
	}
	if res.Message == "" && len(res.Touched) == 0 {
		fmt.Fprintf(w, "%s: no files matched\n", res.Operation)
	}
}
