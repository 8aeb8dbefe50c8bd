package accounts

import (
	"os"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/keystore-import/io/file"
)

// Filesystem operations used to move keystores, replaced in tests to
// exercise every failure path.
var (
	renameFile = os.Rename
	copyFile   = file.CopyFileAtomic
	removeFile = os.Remove
)

// relocateKeystore moves src to dst so that afterwards the keystore exists at
// exactly one of the two paths. A plain rename is tried first. When that is
// not possible, for example across filesystems, the keystore is copied and the
// original removed; if the removal fails while the original is still present
// the copy is deleted again and ErrRelocationRolledBack is returned.
func relocateKeystore(src, dst string) error {
	err := renameFile(src, dst)
	if err == nil {
		return nil
	}
	log.WithError(err).WithField("path", src).Debug("Could not rename keystore, copying it instead")

	if err := copyFile(src, dst); err != nil {
		return errors.Wrapf(ErrRelocationRolledBack, "could not copy %s to %s: %v", src, dst, err)
	}
	if err := removeFile(src); err != nil {
		if !file.Exists(src) {
			return errors.Wrapf(
				ErrRelocationIncomplete,
				"original keystore %s disappeared while being removed, the only copy is now %s: %v",
				src, dst, err,
			)
		}
		if rollbackErr := os.Remove(dst); rollbackErr != nil {
			return errors.Wrapf(
				ErrRelocationIncomplete,
				"could not remove original keystore %s (%v) nor the copy at %s (%v), delete one of them by hand",
				src, err, dst, rollbackErr,
			)
		}
		return errors.Wrapf(ErrRelocationRolledBack, "could not remove original keystore %s: %v", src, err)
	}
	return nil
}
