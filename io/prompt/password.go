// Package prompt reads operator secrets either from the controlling
// terminal, with echo disabled, or from a piped stream.
package prompt

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/keystore-import/encoding/bytesutil"
	"golang.org/x/term"
)

// ErrNoInput is returned when a piped source is exhausted before a
// password could be read.
var ErrNoInput = errors.New("no input received")

// PasswordReader reads a single secret from an operator controlled source.
// An empty, non-nil-error result means the operator chose to enter nothing.
type PasswordReader interface {
	ReadPassword() ([]byte, error)
}

// TerminalReader reads passwords from the terminal without echoing them.
type TerminalReader struct {
	out io.Writer
}

// NewTerminalReader returns a reader bound to the controlling terminal. The
// newline that the hidden input swallows is written to out.
func NewTerminalReader(out io.Writer) *TerminalReader {
	return &TerminalReader{out: out}
}

// ReadPassword from the tty. The terminal is opened directly so that a
// redirected stdin does not interfere with password entry.
func (r *TerminalReader) ReadPassword() ([]byte, error) {
	ttyPath := "/dev/tty"
	if runtime.GOOS == "windows" {
		ttyPath = "CON"
	}
	tty, err := os.Open(ttyPath) // #nosec G304
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s for password input", ttyPath)
	}
	defer func() {
		if err := tty.Close(); err != nil {
			log.WithError(err).Debug("Could not close terminal")
		}
	}()
	fd := int(tty.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("%s is not a terminal, use piped input instead", ttyPath)
	}
	password, err := term.ReadPassword(fd)
	if _, werr := fmt.Fprintln(r.out); werr != nil {
		log.WithError(werr).Debug("Could not write newline after password input")
	}
	if err != nil {
		return nil, errors.Wrap(err, "error reading from tty")
	}
	return password, nil
}

// LineReader reads one newline terminated password per call from a stream,
// typically piped stdin. The stream is read a byte at a time without
// buffering, so once the caller zeroes a returned password no copy of it is
// left behind and unread lines stay in the stream.
type LineReader struct {
	r io.Reader
}

// NewLineReader wraps r.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: r}
}

// ReadPassword returns the next line with any trailing \r removed. A final
// line without a newline is returned as is; reading past the end yields
// ErrNoInput.
func (l *LineReader) ReadPassword() ([]byte, error) {
	var line []byte
	b := make([]byte, 1)
	defer bytesutil.Zero(b)
	for {
		n, err := l.r.Read(b)
		if n > 0 {
			if b[0] == '\n' {
				return bytes.TrimRight(line, "\r"), nil
			}
			line = appendSecret(line, b[0])
		}
		if err == io.EOF {
			if len(line) == 0 {
				return nil, ErrNoInput
			}
			return bytes.TrimRight(line, "\r"), nil
		}
		if err != nil {
			bytesutil.Zero(line)
			return nil, errors.Wrap(err, "error reading from stdin")
		}
	}
}

// appendSecret appends c to secret, zeroing the old backing array whenever it
// has to grow.
func appendSecret(secret []byte, c byte) []byte {
	if len(secret) == cap(secret) {
		grown := make([]byte, len(secret), 2*cap(secret)+32)
		copy(grown, secret)
		bytesutil.Zero(secret)
		secret = grown
	}
	return append(secret, c)
}
