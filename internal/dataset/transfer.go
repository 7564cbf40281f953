package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"time"
)

const userAgent = "primbench-harness/1.0"

// httpStatusError marks a completed HTTP exchange with a non-2xx status, as
// opposed to a transport-level failure. The retry controller classifies the
// two differently.
type httpStatusError struct {
	status int
	url    string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.status, e.url)
}

// Transfer fetches a remote resource to a local file using either a tuned
// HTTP client or an external curl process. Both mechanisms write to a
// temporary side-file and rename it into place only on full success, so a
// crash mid-transfer never leaves a corrupt file at the destination.
type Transfer struct {
	client   *http.Client
	curlPath string
	out      io.Writer
}

// NewTransfer builds a Transfer whose HTTP attempts are bounded by timeout.
// curl is located once at construction; progress goes to out.
func NewTransfer(timeout time.Duration, out io.Writer) *Transfer {
	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	curlPath, _ := exec.LookPath("curl")
	return &Transfer{client: client, curlPath: curlPath, out: out}
}

// HasCurl reports whether the external curl fallback is available.
func (t *Transfer) HasCurl() bool { return t.curlPath != "" }

// HTTP downloads url to dest with the library HTTP client, reporting
// progress as bytes arrive.
func (t *Transfer) HTTP(ctx context.Context, url, dest string) error {
	tmp := dest + ".tmp"
	removeIfExists(tmp)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &httpStatusError{status: resp.StatusCode, url: url}
	}

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	// ContentLength is -1 when the server does not declare a total.
	total := resp.ContentLength
	var done int64
	buf := make([]byte, 1<<20)
	for {
		n, rerr := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := f.Write(buf[:n]); werr != nil {
				f.Close()
				removeIfExists(tmp)
				return werr
			}
			done += int64(n)
			t.printProgress(done, total)
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			f.Close()
			removeIfExists(tmp)
			return rerr
		}
	}
	fmt.Fprintln(t.out)

	if err := f.Close(); err != nil {
		removeIfExists(tmp)
		return err
	}
	return os.Rename(tmp, dest)
}

// Curl downloads url to dest with the external curl tool. curl does its own
// short retry dance; this is a single logical attempt from the controller's
// point of view.
func (t *Transfer) Curl(ctx context.Context, url, dest string) error {
	if t.curlPath == "" {
		return errors.New("curl not available")
	}
	tmp := dest + ".tmp"
	removeIfExists(tmp)

	cmd := exec.CommandContext(ctx, t.curlPath,
		"-L", "--fail",
		"--retry", "8",
		"--retry-delay", "2",
		"--connect-timeout", "15",
		"-o", tmp,
		url,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		removeIfExists(tmp)
		return fmt.Errorf("curl failed (rc=%d):\n%s", exitCode(cmd), out)
	}
	return os.Rename(tmp, dest)
}

func (t *Transfer) printProgress(done, total int64) {
	if total > 0 {
		pct := float64(done) / float64(total) * 100
		fmt.Fprintf(t.out, "      download: %.1f/%.1f MB (%.1f%%)\r",
			float64(done)/1e6, float64(total)/1e6, pct)
		return
	}
	fmt.Fprintf(t.out, "      download: %.1f MB\r", float64(done)/1e6)
}

func removeIfExists(path string) {
	if _, err := os.Stat(path); err == nil {
		os.Remove(path)
	}
}

// exitCode reads a finished command's exit code, -1 if it never started.
func exitCode(cmd *exec.Cmd) int {
	if cmd.ProcessState == nil {
		return -1
	}
	return cmd.ProcessState.ExitCode()
}
