package dataset

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTransferHTTP_DownloadsAndRenamesAtomically(t *testing.T) {
	t.Parallel()

	payload := bytes.Repeat([]byte("abc123"), 1024)
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write(payload)
	}))
	defer srv.Close()

	out := &bytes.Buffer{}
	tr := NewTransfer(10*time.Second, out)
	dest := filepath.Join(t.TempDir(), "archive.tar.zst")

	err := tr.HTTP(context.Background(), srv.URL, dest)
	require.NoError(t, err)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, payload, got)

	_, err = os.Stat(dest + ".tmp")
	require.True(t, os.IsNotExist(err), "temporary side-file must be gone after success")
	require.Contains(t, out.String(), "download:", "progress should be reported")
	require.Equal(t, userAgent, gotUA)
}

func TestTransferHTTP_Non2xxStatusIsTyped(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	tr := NewTransfer(10*time.Second, &bytes.Buffer{})
	dest := filepath.Join(t.TempDir(), "archive")

	err := tr.HTTP(context.Background(), srv.URL, dest)
	require.Error(t, err)

	var statusErr *httpStatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusServiceUnavailable, statusErr.status)
	require.Equal(t, actionRetry, classifyError(err))

	_, statErr := os.Stat(dest)
	require.True(t, os.IsNotExist(statErr), "no file may appear at the destination")
}

func TestTransferHTTP_TruncatedBodyLeavesNoDestination(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Declare more bytes than are sent, then drop the connection.
		w.Header().Set("Content-Length", "1048576")
		w.Write([]byte("partial"))
		panic(http.ErrAbortHandler)
	}))
	defer srv.Close()

	tr := NewTransfer(10*time.Second, &bytes.Buffer{})
	dest := filepath.Join(t.TempDir(), "archive")

	err := tr.HTTP(context.Background(), srv.URL, dest)
	require.Error(t, err)

	_, statErr := os.Stat(dest)
	require.True(t, os.IsNotExist(statErr), "a failed transfer must not leave a file at the destination")
	_, statErr = os.Stat(dest + ".tmp")
	require.True(t, os.IsNotExist(statErr), "the side-file is cleaned up on failure")
}

func TestTransferCurl_Unavailable(t *testing.T) {
	t.Parallel()

	tr := &Transfer{out: &bytes.Buffer{}}
	err := tr.Curl(context.Background(), "https://example.com/x", filepath.Join(t.TempDir(), "x"))
	require.Error(t, err)
	require.False(t, tr.HasCurl())
}
