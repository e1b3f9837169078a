package stager

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// StagingError reports a failed copy. It wraps the
// underlying I/O error.
type StagingError struct {
	Src string
	Dst string
	Err error
}

func (er *StagingError) Error() string {
	return fmt.Sprintf(
		"staging %s into %s: %v", er.Src, er.Dst, er.Err,
	)
}

func (er *StagingError) Unwrap() error {
	return er.Err
}

// Local copies files on the local file system.
type Local struct{}

// Copy copies src into dstDir keeping its base name and
// permission bits. A file already in place is left as is.
func (Local) Copy(src string, dstDir string) error {
	dst := filepath.Join(dstDir, filepath.Base(src))

	if err := copyFile(src, dst); err != nil {
		return &StagingError{Src: src, Dst: dstDir, Err: err}
	}

	return nil
}

func copyFile(src string, dst string) (retErr error) {
	srcAbs, err := filepath.Abs(src)
	if err != nil {
		return err
	}

	dstAbs, err := filepath.Abs(dst)
	if err != nil {
		return err
	}

	if srcAbs == dstAbs {
		return nil
	}

	in, err := os.Open(src) //nolint:gosec // path from caller
	if err != nil {
		return err
	}

	defer func() {
		_ = in.Close() //nolint:errcheck // read-only file
	}()

	fi, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile( //nolint:gosec // path from caller
		dst,
		os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
		fi.Mode().Perm(),
	)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := out.Close(); closeErr != nil && retErr == nil {
			retErr = closeErr
		}
	}()

	_, err = io.Copy(out, in)

	return err
}
