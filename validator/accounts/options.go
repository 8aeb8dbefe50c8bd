package accounts

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/keystore-import/io/prompt"
)

// Option for configuring an Importer.
type Option func(im *Importer) error

// WithValidatorDir sets the validator directory keystores are moved into and
// where the validator definitions file lives.
func WithValidatorDir(validatorDir string) Option {
	return func(im *Importer) error {
		im.validatorDir = validatorDir
		return nil
	}
}

// WithKeystorePath imports the single keystore at keystorePath.
func WithKeystorePath(keystorePath string) Option {
	return func(im *Importer) error {
		im.keystorePath = keystorePath
		return nil
	}
}

// WithKeystoresDir imports every keystore found under keystoresDir.
func WithKeystoresDir(keystoresDir string) Option {
	return func(im *Importer) error {
		im.keystoresDir = keystoresDir
		return nil
	}
}

// WithPasswordReader sets where keystore passwords are read from.
func WithPasswordReader(r prompt.PasswordReader) Option {
	return func(im *Importer) error {
		if r == nil {
			return errors.New("nil password reader")
		}
		im.passwordReader = r
		return nil
	}
}

// WithOutput sets where operator facing messages are written.
func WithOutput(w io.Writer) Option {
	return func(im *Importer) error {
		im.out = w
		return nil
	}
}

// WithPause waits d after a password has been accepted or skipped, giving
// the operator time to read the outcome.
func WithPause(d time.Duration) Option {
	return func(im *Importer) error {
		if d < 0 {
			return errors.Errorf("negative pause %s", d)
		}
		im.pause = d
		return nil
	}
}

// WithReusePassword tries the last accepted password on each following
// keystore before prompting.
func WithReusePassword() Option {
	return func(im *Importer) error {
		im.reusePassword = true
		return nil
	}
}

// WithSpinner shows a progress indicator while a keystore is decrypted.
func WithSpinner() Option {
	return func(im *Importer) error {
		im.showSpinner = true
		return nil
	}
}
