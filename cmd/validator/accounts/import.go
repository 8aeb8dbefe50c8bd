package accounts

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prysmaticlabs/keystore-import/cmd/validator/flags"
	"github.com/prysmaticlabs/keystore-import/io/file"
	"github.com/prysmaticlabs/keystore-import/io/prompt"
	"github.com/prysmaticlabs/keystore-import/monitoring/prometheus"
	"github.com/prysmaticlabs/keystore-import/validator/accounts"
	"github.com/urfave/cli/v2"
)

// Pause after each accepted or skipped password on a terminal.
const passwordPause = time.Second

var au = aurora.NewAurora(true)

func accountsImport(cliCtx *cli.Context) error {
	return importKeystores(cliCtx, os.Stdin, os.Stderr)
}

// importKeystores runs the import described by the command line flags,
// reading piped passwords from stdin and writing the conversation with the
// operator to out.
func importKeystores(cliCtx *cli.Context, stdin io.Reader, out io.Writer) error {
	keystorePath := cliCtx.String(flags.KeystoreFlag.Name)
	keystoresDir := cliCtx.String(flags.KeystoresDirFlag.Name)
	if (keystorePath == "") == (keystoresDir == "") {
		return errors.Wrapf(
			accounts.ErrInvalidKeystoreSource,
			"use either --%s or --%s",
			flags.KeystoreFlag.Name, flags.KeystoresDirFlag.Name,
		)
	}
	validatorDir := cliCtx.String(flags.ValidatorDirFlag.Name)
	if validatorDir == "" {
		return errors.Errorf("could not determine a default validator directory, please set --%s", flags.ValidatorDirFlag.Name)
	}
	validatorDir, err := file.ExpandPath(validatorDir)
	if err != nil {
		return errors.Wrap(err, "could not expand validator directory")
	}

	opts := []accounts.Option{
		accounts.WithValidatorDir(validatorDir),
		accounts.WithOutput(out),
	}
	if keystorePath != "" {
		expanded, err := file.ExpandPath(keystorePath)
		if err != nil {
			return errors.Wrap(err, "could not expand keystore path")
		}
		opts = append(opts, accounts.WithKeystorePath(expanded))
	} else {
		expanded, err := file.ExpandPath(keystoresDir)
		if err != nil {
			return errors.Wrap(err, "could not expand keystores directory")
		}
		keystoresDir = expanded
		opts = append(opts, accounts.WithKeystoresDir(expanded))
	}
	if cliCtx.Bool(flags.NoTTYFlag.Name) {
		opts = append(opts, accounts.WithPasswordReader(prompt.NewLineReader(stdin)))
	} else {
		opts = append(opts,
			accounts.WithPasswordReader(prompt.NewTerminalReader(out)),
			accounts.WithPause(passwordPause),
			accounts.WithSpinner(),
		)
	}
	if cliCtx.Bool(flags.ReusePasswordFlag.Name) {
		opts = append(opts, accounts.WithReusePassword())
	}

	importer, err := accounts.NewImporter(opts...)
	if err != nil {
		return err
	}
	imported, importErr := importer.Import(cliCtx.Context)

	if metricsPath := cliCtx.String(flags.MetricsTextfileFlag.Name); metricsPath != "" {
		if err := prometheus.WriteTextfile(metricsPath, prom.DefaultGatherer); err != nil {
			log.WithError(err).Error("Could not write import metrics")
		}
	}

	if importErr != nil {
		if len(imported) > 0 {
			return errors.Wrapf(importErr, "imported %d validators before failing", len(imported))
		}
		return errors.Wrap(importErr, "no validators were imported")
	}
	if len(imported) == 0 {
		fmt.Fprintf(out, "No keystores found in %s\n", keystoresDir)
		return nil
	}
	fmt.Fprintln(out, au.BrightGreen(fmt.Sprintf("Successfully imported %d validators.", len(imported))).Bold())
	return nil
}
