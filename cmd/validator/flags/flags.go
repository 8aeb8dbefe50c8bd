// Package flags contains the configuration flags of the validator account
// commands.
package flags

import (
	"github.com/prysmaticlabs/keystore-import/cmd"
	"github.com/urfave/cli/v2"
)

var (
	// KeystoreFlag defines the path of a single keystore to import.
	KeystoreFlag = &cli.StringFlag{
		Name:  "keystore",
		Usage: "Path to a single keystore to be imported.",
	}
	// KeystoresDirFlag defines a directory searched for keystores to import.
	KeystoresDirFlag = &cli.StringFlag{
		Name: "directory",
		Usage: "Path to a directory which contains zero or more keystores for import. This directory and " +
			"all sub-directories will be searched and any file name which contains 'keystore' and has the " +
			"'.json' extension will be attempted to be imported.",
	}
	// ValidatorDirFlag defines where validator directories and the validator
	// definitions file are kept.
	ValidatorDirFlag = &cli.StringFlag{
		Name:  "validator-dir",
		Usage: "The path where the validator directories will be created.",
		Value: cmd.DefaultValidatorDir(),
	}
	// NoTTYFlag reads passwords from stdin instead of the terminal.
	NoTTYFlag = &cli.BoolFlag{
		Name:  "no-tty",
		Usage: "If present, read passwords from stdin instead of tty. One password per line, an empty line skips storing a password.",
	}
	// ReusePasswordFlag tries the last accepted password on the following keystores.
	ReusePasswordFlag = &cli.BoolFlag{
		Name:  "reuse-password",
		Usage: "Try the password of the previously imported keystore before prompting for a new one.",
	}
	// MetricsTextfileFlag defines where import metrics are written once the command ends.
	MetricsTextfileFlag = &cli.StringFlag{
		Name:  "metrics-textfile",
		Usage: "Write import metrics to this file in the Prometheus node exporter textfile format.",
	}
)
