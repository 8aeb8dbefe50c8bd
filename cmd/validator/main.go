// Package main defines the validator keystore tooling. Its accounts import
// command moves EIP-2335 keystores generated elsewhere into the validator
// directory and registers them in the validator definitions file.
package main

import (
	"os"

	"github.com/prysmaticlabs/keystore-import/cmd"
	"github.com/prysmaticlabs/keystore-import/cmd/validator/accounts"
	"github.com/prysmaticlabs/keystore-import/io/logs"
	"github.com/prysmaticlabs/keystore-import/monitoring/prometheus"
	"github.com/prysmaticlabs/keystore-import/runtime/version"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var log = logrus.WithField("prefix", "main")

var appFlags = []cli.Flag{
	cmd.VerbosityFlag,
	cmd.LogFormat,
	cmd.LogFileName,
	cmd.ConfigFileFlag,
}

func init() {
	appFlags = cmd.WrapFlags(appFlags)
}

func main() {
	app := cli.App{}
	app.Name = "validator"
	app.Usage = "manages the keystores of an Ethereum validator client"
	app.Version = version.Version()
	app.Flags = appFlags
	app.Commands = []*cli.Command{
		accounts.Commands,
	}
	app.Before = before

	if err := app.Run(os.Args); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func before(ctx *cli.Context) error {
	// Load any flags from file, if specified.
	if err := cmd.LoadFlagsFromConfig(ctx, appFlags); err != nil {
		return err
	}

	verbosity := ctx.String(cmd.VerbosityFlag.Name)
	level, err := logrus.ParseLevel(verbosity)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)

	logFileName := ctx.String(cmd.LogFileName.Name)
	// If persistent log files are written, colours are disabled because the
	// ANSI codes show up as gibberish in the log files.
	if err := logs.ConfigureFormatter(ctx.String(cmd.LogFormat.Name), logFileName != ""); err != nil {
		return err
	}
	if logFileName != "" {
		if err := logs.ConfigurePersistentLogging(logFileName); err != nil {
			log.WithError(err).Error("Failed to configuring logging to disk.")
		}
	}
	logrus.AddHook(prometheus.NewLogrusCollector())
	return nil
}
