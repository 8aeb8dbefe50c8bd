package accounts

import "github.com/pkg/errors"

var (
	// ErrInvalidKeystoreSource is returned when neither or both of a keystore
	// file and a keystores directory are configured.
	ErrInvalidKeystoreSource = errors.New("exactly one of a keystore file or a keystores directory must be specified")
	// ErrPasswordVerification is returned when a keystore could not be
	// decrypted for a reason other than a wrong password.
	ErrPasswordVerification = errors.New("could not verify keystore password")
	// ErrDuplicateKey is returned when a keystore for an already imported
	// validator is encountered.
	ErrDuplicateKey = errors.New("validator key is already imported")
	// ErrRelocationRolledBack is returned when a keystore could not be moved
	// and was left at its original location only.
	ErrRelocationRolledBack = errors.New("keystore relocation failed and was rolled back")
	// ErrRelocationIncomplete is returned when a keystore move failed in a way
	// that could not be undone. The error message names the surviving paths.
	ErrRelocationIncomplete = errors.New("keystore relocation failed and could not be rolled back")
)
