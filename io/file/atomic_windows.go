package file

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

// WriteFileAtomic writes data to a temporary file next to filePath and renames
// it over the destination.
func WriteFileAtomic(filePath string, data []byte) error {
	tmp := filePath + ".tmp"
	if err := os.WriteFile(tmp, data, ReadWritePermissions); err != nil {
		return errors.Wrapf(err, "could not write %s", filePath)
	}
	if err := os.Rename(tmp, filePath); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrapf(err, "could not write %s", filePath)
	}
	return nil
}

// CopyFileAtomic copies src to dst through a temporary file. The destination
// must not already exist.
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
	tmp := dst + ".tmp"
	out, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, ReadWritePermissions) // #nosec G304
	if err != nil {
		return errors.Wrapf(err, "could not write %s", dst)
	}
	_, err = io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmp, dst)
	}
	if err != nil {
		_ = os.Remove(tmp)
		return errors.Wrapf(err, "could not copy %s to %s", src, dst)
	}
	return nil
}
