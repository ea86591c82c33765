package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ModChain/hdwallet"
	"github.com/ModChain/hdwallet/ecckd"
	"github.com/btcsuite/btclog"
	"github.com/urfave/cli"
)

const (
	defaultCurve      = "secp256k1"
	defaultDebugLevel = "off"
)

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[hdkey] %v\n", err)
	os.Exit(1)
}

func main() {
	app := cli.NewApp()
	app.Name = "hdkey"
	app.Usage = "inspect and derive BIP32 extended keys"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "curve",
			Value: defaultCurve,
			Usage: "curve of the keys handled, secp256k1 or ed25519",
		},
		cli.StringFlag{
			Name:  "debuglevel",
			Value: defaultDebugLevel,
			Usage: "logging level: trace, debug, info, warn, error, " +
				"critical or off",
		},
	}
	app.Before = setupLogging
	app.Commands = []cli.Command{
		inspectCommand,
		deriveCommand,
		pubKeysCommand,
		masterCommand,
		versionsCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func setupLogging(ctx *cli.Context) error {
	level, ok := btclog.LevelFromString(ctx.GlobalString("debuglevel"))
	if !ok {
		return fmt.Errorf("invalid debug level %q",
			ctx.GlobalString("debuglevel"))
	}
	hdwallet.UseBackend(btclog.NewBackend(os.Stderr), level)
	return nil
}

func parseCurve(ctx *cli.Context) (ecckd.Curve, error) {
	name := ctx.GlobalString("curve")
	switch strings.ToLower(name) {
	case "secp256k1":
		return ecckd.Secp256k1, nil
	case "ed25519":
		return ecckd.Ed25519, nil
	default:
		return 0, fmt.Errorf("unknown curve %q", name)
	}
}

// decodeArg decodes the extended key given as the first argument.
func decodeArg(ctx *cli.Context) (*ecckd.ExtendedKey, *ecckd.Version, error) {
	if ctx.NArg() != 1 {
		return nil, nil, fmt.Errorf("expected one extended key argument")
	}
	curve, err := parseCurve(ctx)
	if err != nil {
		return nil, nil, err
	}

	key, version, err := ecckd.DecodeCurve(ctx.Args().First(), curve)
	if err != nil {
		return nil, nil, fmt.Errorf("could not decode extended key: %w",
			err)
	}
	return key, version, nil
}
