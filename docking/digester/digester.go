package digester

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrMismatch is returned by Verify when the file no longer
// matches its recorded digest.
var ErrMismatch = errors.New("digest mismatch")

// Sidecar returns the digest file path for path.
func Sidecar(path string) string {
	return path + ".digest"
}

// Sum computes the sha256 hex digest of the file at path.
func Sum(path string) (result string, retErr error) {
	const errCtx = "computing digest"

	fi, err := os.Open(path) //nolint:gosec // path from caller
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		if closeErr := fi.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("%s: %w", errCtx, closeErr)
		}
	}()

	ha := sha256.New()

	if _, err := io.Copy(ha, fi); err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return hex.EncodeToString(ha.Sum(nil)), nil
}

// Save computes the digest of path, writes it to the
// sidecar file and returns it.
func Save(path string) (string, error) {
	const errCtx = "saving digest"

	digest, err := Sum(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := os.WriteFile(
		Sidecar(path), []byte(digest), 0o600,
	); err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return digest, nil
}

// Verify checks path against its sidecar digest. A missing
// sidecar is an error.
func Verify(path string) error {
	const errCtx = "verifying digest"

	stored, err := os.ReadFile(Sidecar(path)) //nolint:gosec // path from caller
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	calc, err := Sum(path)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if calc != string(stored) {
		return fmt.Errorf("%s: %s: %w", errCtx, path, ErrMismatch)
	}

	return nil
}
