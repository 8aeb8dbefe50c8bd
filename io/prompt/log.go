package prompt

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "prompt")
