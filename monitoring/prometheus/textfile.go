// Package prometheus exports the metrics of a short lived command. There is
// no process left to scrape once an import finishes, so metrics are written
// in the node exporter textfile format instead.
package prometheus

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prysmaticlabs/keystore-import/io/file"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "prometheus")

// WriteTextfile gathers every metric registered with gatherer and atomically
// writes them to path. Parent directories are created if needed.
func WriteTextfile(path string, gatherer prometheus.Gatherer) error {
	expanded, err := file.ExpandPath(path)
	if err != nil {
		return errors.Wrapf(err, "could not expand metrics path %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), file.ReadWriteExecutePermissions); err != nil {
		return errors.Wrapf(err, "could not create metrics directory for %s", expanded)
	}
	if err := prometheus.WriteToTextfile(expanded, gatherer); err != nil {
		return errors.Wrapf(err, "could not write metrics to %s", expanded)
	}
	log.WithField("path", expanded).Debug("Wrote metrics textfile")
	return nil
}
