package harness

import (
	"fmt"
	"io"
)

// RunResult records the outcome of one benchmark. Immutable once added to
// a Report.
type RunResult struct {
	Bench   string
	Passed  bool
	Reason  string
	LogPath string
}

// Report accumulates RunResults for one orchestrator pass, in run order.
type Report struct {
	Results []RunResult
}

func (r *Report) add(res RunResult) {
	r.Results = append(r.Results, res)
}

// Passed returns the names of passing benchmarks, in run order.
func (r *Report) Passed() []string {
	var names []string
	for _, res := range r.Results {
		if res.Passed {
			names = append(names, res.Bench)
		}
	}
	return names
}

// Failed returns the failing results, in run order.
func (r *Report) Failed() []RunResult {
	var failed []RunResult
	for _, res := range r.Results {
		if !res.Passed {
			failed = append(failed, res)
		}
	}
	return failed
}

// HasFailures reports whether any benchmark failed.
func (r *Report) HasFailures() bool {
	return len(r.Failed()) > 0
}

// WriteSummary prints the end-of-run summary enumerating every pass and
// every (benchmark, reason) failure pair.
func (r *Report) WriteSummary(w io.Writer) {
	passed := r.Passed()
	failed := r.Failed()

	fmt.Fprintln(w, "============== Summary ==============")
	fmt.Fprintf(w, "PASSED (%d):\n", len(passed))
	for _, b := range passed {
		fmt.Fprintf(w, "  - %s\n", b)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "FAILED (%d):\n", len(failed))
	for _, res := range failed {
		fmt.Fprintf(w, "  - %s: %s\n", res.Bench, res.Reason)
	}
	fmt.Fprintln(w, "=====================================")
}
