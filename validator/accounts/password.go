package accounts

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/keystore-import/encoding/bytesutil"
	"github.com/prysmaticlabs/keystore-import/validator/definitions"
	"github.com/prysmaticlabs/keystore-import/validator/keymanager"
	"go.opencensus.io/trace"
)

// PasswordVerifier is the part of a keystore the password prompt needs.
type PasswordVerifier interface {
	PublicKey() string
	UUID() string
	VerifyPassword(password []byte) error
}

// resolvePassword asks the operator for the password of a single keystore. A
// nil result with a nil error means the operator chose to store no password.
// Wrong passwords are re-prompted until the operator gets it right or gives
// up with an empty line; any other decryption failure is fatal.
func (im *Importer) resolvePassword(ctx context.Context, keystorePath string, keystore PasswordVerifier) ([]byte, error) {
	ctx, span := trace.StartSpan(ctx, "accounts.resolvePassword")
	defer span.End()

	fmt.Fprintf(im.out, "Keystore found at %s:\n\n", au.BrightGreen(keystorePath))
	fmt.Fprintf(im.out, " - Public key: %s\n", au.BrightMagenta("0x"+keystore.PublicKey()))
	fmt.Fprintf(im.out, " - UUID: %s\n\n", keystore.UUID())
	fmt.Fprintf(
		im.out,
		"If you enter the password it will be stored as plain-text in %s so that it is not required each time the validator client starts.\n\n",
		au.Bold(definitions.FileName),
	)

	if im.reusePassword && len(im.previousPassword) > 0 {
		err := im.attemptPassword(ctx, keystore, im.previousPassword)
		switch {
		case err == nil:
			fmt.Fprintln(im.out, au.BrightGreen("Reusing password from previous keystore."))
			return bytesutil.SafeCopyBytes(im.previousPassword), nil
		case errors.Is(err, keymanager.ErrIncorrectPassword):
			fmt.Fprintln(im.out, au.Yellow("Password from previous keystore does not decrypt this keystore."))
		default:
			return nil, errors.Wrapf(ErrPasswordVerification, "keystore %s: %v", keystorePath, err)
		}
	}

	for {
		fmt.Fprintln(im.out, "Enter the keystore password, or press enter to omit it:")
		password, err := im.passwordReader.ReadPassword()
		if err != nil {
			return nil, errors.Wrapf(err, "could not read password for keystore %s", keystorePath)
		}
		if len(password) == 0 {
			fmt.Fprintln(im.out, au.BrightCyan("Continuing without password."))
			im.sleep()
			return nil, nil
		}
		err = im.attemptPassword(ctx, keystore, password)
		switch {
		case err == nil:
			fmt.Fprintln(im.out, au.BrightGreen("Password is correct."))
			if im.reusePassword {
				bytesutil.Zero(im.previousPassword)
				im.previousPassword = bytesutil.SafeCopyBytes(password)
			}
			im.sleep()
			return password, nil
		case errors.Is(err, keymanager.ErrIncorrectPassword):
			bytesutil.Zero(password)
			fmt.Fprintln(im.out, au.Red("Invalid password."))
		default:
			bytesutil.Zero(password)
			return nil, errors.Wrapf(ErrPasswordVerification, "keystore %s: %v", keystorePath, err)
		}
	}
}

// attemptPassword runs exactly one decryption of the keystore.
func (im *Importer) attemptPassword(ctx context.Context, keystore PasswordVerifier, password []byte) error {
	_, span := trace.StartSpan(ctx, "accounts.attemptPassword")
	defer span.End()

	if im.showSpinner {
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(im.out))
		s.Suffix = " Decrypting keystore..."
		s.Start()
		defer s.Stop()
	}
	err := keystore.VerifyPassword(password)
	switch {
	case err == nil:
		PasswordAttemptsVec.WithLabelValues(attemptResultCorrect).Inc()
	case errors.Is(err, keymanager.ErrIncorrectPassword):
		PasswordAttemptsVec.WithLabelValues(attemptResultIncorrect).Inc()
	default:
		PasswordAttemptsVec.WithLabelValues(attemptResultError).Inc()
	}
	return err
}

func (im *Importer) sleep() {
	if im.pause > 0 {
		time.Sleep(im.pause)
	}
}
