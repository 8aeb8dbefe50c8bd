package definitions

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "definitions")
