package accounts

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "accounts")
