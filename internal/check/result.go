package check

import "time"

// Result is the typed outcome of one model probe. Failures are values here,
// never panics: a failing probe carries its error and the run continues.
type Result struct {
	Name    string
	Model   string
	Passed  bool
	Detail  string
	Err     error
	Elapsed time.Duration
}

func pass(name, model, detail string, elapsed time.Duration) Result {
	return Result{Name: name, Model: model, Passed: true, Detail: detail, Elapsed: elapsed}
}

func fail(name, model string, err error, elapsed time.Duration) Result {
	return Result{Name: name, Model: model, Err: err, Elapsed: elapsed}
}

// ExitCode maps a result set to the process exit code: 0 iff every probe
// passed, 1 otherwise.
func ExitCode(results []Result) int {
	for _, r := range results {
		if !r.Passed {
			return 1
		}
	}
	return 0
}
