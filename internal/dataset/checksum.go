package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// Digest returns the hex-encoded SHA-256 of the file at path. The file is
// read in 1 MiB chunks so memory stays bounded for multi-gigabyte archives.
func Digest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, 1<<20)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
