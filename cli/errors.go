package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/bulicmd/bulirename/parser"
)

// formatParseErrors prints each parse error with the pattern and a caret
// under the offending token. The caller still returns the first error, so
// the exit code reflects the failure.
func formatParseErrors(w io.Writer, pattern string, errs []parser.ParseError, useColor bool) {
	for _, e := range errs {
		fmt.Fprintln(w, colorize(pattern, colorCyan, useColor))

		col := e.Token.Position.Offset
		if col > len(pattern) {
			col = len(pattern)
		}
		fmt.Fprintf(w, "%s%s %s\n",
			strings.Repeat(" ", col),
			colorize("^", colorRed, useColor),
			e.Message)
	}
}
