package check

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var summaryPrinter = message.NewPrinter(language.English)

// printTokens writes a token-usage line with grouped digits.
func printTokens(w io.Writer, total int) {
	if total > 0 {
		summaryPrinter.Fprintf(w, "Tokens: %d\n", total)
	}
}

// WriteSummary renders the per-model pass/fail table and the overall verdict.
func WriteSummary(w io.Writer, results []Result) {
	fmt.Fprintf(w, "\n%s\nTest Summary\n%s\n", rule('=', 60), rule('=', 60))
	for _, r := range results {
		status := "PASS"
		if !r.Passed {
			status = "FAIL"
		}
		line := fmt.Sprintf("%s: %s", r.Name, status)
		if !r.Passed && r.Detail != "" {
			line += fmt.Sprintf(" (%s)", r.Detail)
		}
		fmt.Fprintln(w, line)
	}
	if ExitCode(results) == 0 {
		fmt.Fprintln(w, "\nAll tests passed")
	} else {
		fmt.Fprintln(w, "\nSome tests failed")
	}
}

func rule(ch rune, n int) string {
	return strings.Repeat(string(ch), n)
}
