package file

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "fileutil")
