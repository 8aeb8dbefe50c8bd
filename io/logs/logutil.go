// Package logs configures the process wide logrus logger: its output format
// and an optional persistent log file mirroring everything written to the
// terminal.
package logs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	joonix "github.com/joonix/log"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/keystore-import/io/file"
	"github.com/sirupsen/logrus"
	"github.com/wercker/journalhook"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// Supported values of the log format flag.
const (
	TextFormat     = "text"
	FluentdFormat  = "fluentd"
	JSONFormat     = "json"
	JournaldFormat = "journald"
)

func addLogWriter(w io.Writer) {
	mw := io.MultiWriter(logrus.StandardLogger().Out, w)
	logrus.SetOutput(mw)
}

// ConfigureFormatter sets the formatter of the standard logger. Colours are
// only used by the text format and are disabled when logs also go to a file.
func ConfigureFormatter(format string, disableColors bool) error {
	switch format {
	case TextFormat:
		formatter := new(prefixed.TextFormatter)
		formatter.TimestampFormat = "2006-01-02 15:04:05"
		formatter.FullTimestamp = true
		formatter.DisableColors = disableColors
		logrus.SetFormatter(formatter)
	case FluentdFormat:
		logrus.SetFormatter(joonix.NewFormatter())
	case JSONFormat:
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case JournaldFormat:
		// Falls back to the current output with a warning when no journal is available.
		journalhook.Enable()
	default:
		return fmt.Errorf("unknown log format %s", format)
	}
	return nil
}

// ConfigurePersistentLogging adds a log-to-file writer. File content is identical to stdout.
func ConfigurePersistentLogging(logFileName string) error {
	logrus.WithField("logFileName", logFileName).Info("Logs will be made persistent")
	if err := os.MkdirAll(filepath.Dir(logFileName), file.ReadWriteExecutePermissions); err != nil {
		return errors.Wrapf(err, "could not create directory for log file %s", logFileName)
	}
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, file.ReadWritePermissions) // #nosec G304
	if err != nil {
		return err
	}

	addLogWriter(f)

	logrus.Info("File logging initialized")
	return nil
}

