package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"time"
)

// action is the retry controller's decision after a failed attempt.
type action int

const (
	// actionRetry backs off and tries the same URL with the same mechanism.
	actionRetry action = iota
	// actionNextMechanism abandons the current mechanism for this URL.
	actionNextMechanism
)

// transientStatuses are HTTP codes worth retrying against the same URL.
var transientStatuses = map[int]bool{
	429: true,
	502: true,
	503: true,
	504: true,
}

// classifyError decides how the retry loop reacts to a failed attempt.
// Completed responses with a transient status and transport-level network
// or timeout errors are retried; everything else moves on.
func classifyError(err error) action {
	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		if transientStatuses[statusErr.status] {
			return actionRetry
		}
		return actionNextMechanism
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return actionRetry
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return actionRetry
	}

	return actionNextMechanism
}

// backoff is the delay before retry attempt n (counting from zero), capped
// at 30 seconds.
func backoff(attempt int) time.Duration {
	if attempt >= 5 {
		return 30 * time.Second
	}
	return time.Duration(1<<attempt) * time.Second
}

// Mechanisms is the pair of alternate transfer mechanisms the retry
// controller drives. *Transfer is the production implementation.
type Mechanisms interface {
	HTTP(ctx context.Context, url, dest string) error
	Curl(ctx context.Context, url, dest string) error
	HasCurl() bool
}

// Fetcher drives the transfer mechanisms through bounded retries,
// exponential backoff, and multi-URL fallback. For each URL the HTTP
// mechanism gets Retries attempts, then curl gets one shot, then the next
// URL is tried. Only when every URL and mechanism is exhausted does Fetch
// fail, surfacing the last observed error.
type Fetcher struct {
	Transfer Mechanisms
	Retries  int
	Out      io.Writer

	// sleep is swapped out by tests to observe backoff without waiting.
	sleep func(time.Duration)
}

// NewFetcher creates a Fetcher with the given per-URL attempt budget.
func NewFetcher(transfer Mechanisms, retries int, out io.Writer) *Fetcher {
	return &Fetcher{
		Transfer: transfer,
		Retries:  retries,
		Out:      out,
		sleep:    time.Sleep,
	}
}

// Fetch downloads the first reachable URL to dest.
func (f *Fetcher) Fetch(ctx context.Context, urls []string, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	var lastErr error
	for _, url := range urls {
		fmt.Fprintf(f.Out, "      trying: %s\n", url)

		for attempt := 0; attempt < f.Retries; attempt++ {
			err := f.Transfer.HTTP(ctx, url, dest)
			if err == nil {
				return nil
			}
			lastErr = err
			if classifyError(err) != actionRetry {
				break
			}
			delay := backoff(attempt)
			fmt.Fprintf(f.Out, "      transient error, retrying in %s... (%v)\n", delay, err)
			f.sleep(delay)
		}

		if f.Transfer.HasCurl() {
			fmt.Fprintln(f.Out, "      direct download failed; trying curl fallback...")
			if err := f.Transfer.Curl(ctx, url, dest); err == nil {
				return nil
			} else {
				lastErr = err
			}
		}
	}

	return fmt.Errorf("download failed for all URLs: %w", lastErr)
}
