package harness

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		output     string
		rc         int
		wantPass   bool
		wantReason string
	}{
		{"ok marker", "setup...\nOK\ndone", 0, true, "found OK"},
		{"error marker", "setup...\nERROR at step 3", 0, false, "found ERROR"},
		{"error beats ok", "OK so far...\nERROR later", 0, false, "found ERROR"},
		{"no marker", "", 0, false, "no OK/ERROR marker"},
		{"unrelated output", "nothing conclusive here", 0, false, "no OK/ERROR marker"},
		{"nonzero rc beats ok", "OK", 7, false, "rc=7"},
		{"nonzero rc beats error", "ERROR", 2, false, "rc=2"},
		{"negative rc", "OK", -1, false, "rc=-1"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			pass, reason := Classify(tc.output, tc.rc)
			require.Equal(t, tc.wantPass, pass)
			require.Equal(t, tc.wantReason, reason)
		})
	}
}
