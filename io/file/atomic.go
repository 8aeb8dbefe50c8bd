//go:build !windows

package file

import (
	"fmt"
	"io"
	"os"

	"github.com/google/renameio/v2"
	"github.com/pkg/errors"
)

// WriteFileAtomic replaces the file at the specified path with data. Readers
// only ever see the old or the new contents.
func WriteFileAtomic(filePath string, data []byte) error {
	if err := renameio.WriteFile(filePath, data, ReadWritePermissions); err != nil {
		return errors.Wrapf(err, "could not write %s", filePath)
	}
	return nil
}

// CopyFileAtomic copies src to dst. The copy is assembled in a pending file and
// only renamed into place once complete, so a partially copied dst is never
// visible. The destination must not already exist.
func CopyFileAtomic(src, dst string) error {
	if Exists(dst) {
		return fmt.Errorf("destination %s already exists", dst)
	}
	in, err := os.Open(src) // #nosec G304
	if err != nil {
		return err
	}
	defer func() {
		if err := in.Close(); err != nil {
			log.WithError(err).Errorf("Could not close file %s", src)
		}
	}()
	pending, err := renameio.NewPendingFile(dst, renameio.WithPermissions(ReadWritePermissions))
	if err != nil {
		return errors.Wrapf(err, "could not write %s", dst)
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			log.WithError(err).Debugf("Could not clean up pending file for %s", dst)
		}
	}()
	if _, err := io.Copy(pending, in); err != nil {
		return errors.Wrapf(err, "could not copy %s to %s", src, dst)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return errors.Wrapf(err, "could not write %s", dst)
	}
	return nil
}
