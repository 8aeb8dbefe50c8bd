// Package accounts defines the validator account commands.
package accounts

import (
	"github.com/prysmaticlabs/keystore-import/cmd"
	"github.com/prysmaticlabs/keystore-import/cmd/validator/flags"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var log = logrus.WithField("prefix", "accounts")

// Commands for managing validator accounts.
var Commands = &cli.Command{
	Name:     "accounts",
	Category: "accounts",
	Usage:    "defines commands for managing validator keystores",
	Subcommands: []*cli.Command{
		{
			Name:        "import",
			Usage:       "reads existing EIP-2335 keystores and imports them into the validator directory",
			Description: "Each keystore is moved into its own directory named after its public key and registered in the validator definitions file.",
			Flags: cmd.WrapFlags([]cli.Flag{
				flags.KeystoreFlag,
				flags.KeystoresDirFlag,
				flags.ValidatorDirFlag,
				flags.NoTTYFlag,
				flags.ReusePasswordFlag,
				flags.MetricsTextfileFlag,
				cmd.ConfigFileFlag,
			}),
			Before: func(cliCtx *cli.Context) error {
				return cmd.LoadFlagsFromConfig(cliCtx, cliCtx.Command.Flags)
			},
			Action: accountsImport,
		},
	},
}
