package harness

import (
	"fmt"
	"strings"
)

// Classify derives pass/fail and a reason from a run's captured output and
// exit code. The evaluation order is load-bearing: a nonzero exit code wins
// over any marker, and ERROR wins over OK when both appear, so a benchmark
// printing both is conservatively failed. Downstream tooling parses these
// exact reason strings.
func Classify(output string, rc int) (bool, string) {
	if rc != 0 {
		return false, fmt.Sprintf("rc=%d", rc)
	}
	if strings.Contains(output, "ERROR") {
		return false, "found ERROR"
	}
	if strings.Contains(output, "OK") {
		return true, "found OK"
	}
	return false, "no OK/ERROR marker"
}
