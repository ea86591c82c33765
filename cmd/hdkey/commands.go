package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/ModChain/hdwallet"
	"github.com/ModChain/hdwallet/ecckd"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli"
)

var inspectCommand = cli.Command{
	Name:      "inspect",
	Usage:     "show the fields of an extended key",
	ArgsUsage: "xkey",
	Action:    inspect,
}

func inspect(ctx *cli.Context) error {
	key, version, err := decodeArg(ctx)
	if err != nil {
		return err
	}

	fp := key.Fingerprint()
	parentFP := key.ParentFingerprint()
	index := fmt.Sprintf("%d", key.Index())
	if key.IsHardened() {
		index += "'"
	}

	t := newTable()
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRows([]table.Row{
		{"version", fmt.Sprintf("%s (%08x)", version, version.Value())},
		{"network", network(version)},
		{"purposes", joinPurposes(version.Purposes())},
		{"coins", joinCoins(version.CoinTypes())},
		{"curve", key.Curve()},
		{"private", key.IsPrivate()},
		{"depth", key.Depth()},
		{"child index", index},
		{"fingerprint", hex.EncodeToString(fp[:])},
		{"parent fingerprint", hex.EncodeToString(parentFP[:])},
		{"chain code", hex.EncodeToString(key.ChainCode())},
		{"public key", hex.EncodeToString(key.PublicKeyBytes())},
	})
	t.Render()
	return nil
}

var deriveCommand = cli.Command{
	Name:      "derive",
	Usage:     "derive a descendant of an extended key",
	ArgsUsage: "xkey",
	Description: `
	Derive the key at --path below the given extended key and print it with
	the version of the input key, or with --version if given. Hardened steps
	are written as 44', 44h or 44H.`,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "path",
			Value: "m",
			Usage: "derivation path relative to the key, e.g. " +
				"m/84'/0'/0'/0/1",
		},
		cli.BoolFlag{
			Name:  "neuter",
			Usage: "print the public form of the derived key",
		},
		cli.StringFlag{
			Name:  "version",
			Usage: "prefix of the output version, e.g. zpub",
		},
	},
	Action: derive,
}

func derive(ctx *cli.Context) error {
	key, version, err := decodeArg(ctx)
	if err != nil {
		return err
	}

	if prefix := ctx.String("version"); prefix != "" {
		var ok bool
		version, ok = ecckd.VersionByPrefix(prefix)
		if !ok {
			return fmt.Errorf("unknown version prefix %q", prefix)
		}
	}

	derived, err := key.DerivePath(ctx.String("path"))
	if err != nil {
		return fmt.Errorf("could not derive %s: %w", ctx.String("path"),
			err)
	}
	if ctx.Bool("neuter") {
		derived = derived.Public()
		version = version.Public()
	}

	s, err := derived.Encode(version)
	if err != nil {
		return err
	}
	fmt.Println(s)
	return nil
}

var pubKeysCommand = cli.Command{
	Name:      "pubkeys",
	Usage:     "list the public keys of an account chain",
	ArgsUsage: "xkey",
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:  "change",
			Usage: "list the internal chain instead of the external one",
		},
		cli.UintFlag{
			Name:  "first",
			Usage: "index of the first key",
		},
		cli.UintFlag{
			Name:  "count",
			Value: 10,
			Usage: "number of keys to list",
		},
	},
	Action: pubKeys,
}

func pubKeys(ctx *cli.Context) error {
	key, _, err := decodeArg(ctx)
	if err != nil {
		return err
	}

	chain := hdwallet.External
	if ctx.Bool("change") {
		chain = hdwallet.Internal
	}
	first, last, err := keyRange(uint64(ctx.Uint("first")),
		uint64(ctx.Uint("count")))
	if err != nil {
		return err
	}

	watch, err := hdwallet.NewWatchAccount(key,
		hdwallet.WithCurve(key.Curve()))
	if err != nil {
		return err
	}
	keys, err := watch.PublicKeys(first, last, chain)
	if err != nil {
		return err
	}

	t := newTable()
	t.AppendHeader(table.Row{"Path", "Public key"})
	for _, k := range keys {
		t.AppendRow(table.Row{
			fmt.Sprintf("%d/%d", uint32(chain), k.Index()),
			hex.EncodeToString(k.PublicKeyBytes()),
		})
	}
	t.Render()
	return nil
}

// keyRange converts the --first and --count flags into an inclusive index
// range.  The flags are checked before narrowing so large values cannot wrap
// around to small indices.
func keyRange(first, count uint64) (uint32, uint32, error) {
	if count == 0 {
		return 0, 0, fmt.Errorf("count must be positive")
	}
	if count > ecckd.MaxSiblingBatch {
		return 0, 0, fmt.Errorf("count %d exceeds the limit of %d keys",
			count, ecckd.MaxSiblingBatch)
	}
	maxIndex := uint64(ecckd.MaxIndex)
	if first > maxIndex || first+count-1 > maxIndex {
		return 0, 0, fmt.Errorf("keys %d..%d leave the non-hardened "+
			"index space", first, first+count-1)
	}
	return uint32(first), uint32(first + count - 1), nil
}

var masterCommand = cli.Command{
	Name:  "master",
	Usage: "create a master key from a hex seed",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "seed",
			Usage: "hex encoded seed of 16 to 64 bytes",
		},
		cli.StringFlag{
			Name:  "version",
			Value: "xprv",
			Usage: "prefix of the output version",
		},
	},
	Action: master,
}

func master(ctx *cli.Context) error {
	seed, err := hex.DecodeString(ctx.String("seed"))
	if err != nil {
		return fmt.Errorf("invalid seed: %w", err)
	}
	curve, err := parseCurve(ctx)
	if err != nil {
		return err
	}
	version, ok := ecckd.VersionByPrefix(ctx.String("version"))
	if !ok {
		return fmt.Errorf("unknown version prefix %q",
			ctx.String("version"))
	}

	key, err := ecckd.FromSeed(seed, curve)
	if err != nil {
		return err
	}
	s, err := key.Encode(version)
	if err != nil {
		return err
	}
	fmt.Println(s)
	return nil
}

var versionsCommand = cli.Command{
	Name:   "versions",
	Usage:  "list the known extended key versions",
	Action: versions,
}

func versions(_ *cli.Context) error {
	t := newTable()
	t.AppendHeader(table.Row{
		"Prefix", "Value", "Kind", "Network", "Purposes", "Coins",
	})
	for _, v := range ecckd.Versions() {
		kind := "public"
		if v.IsPrivate() {
			kind = "private"
		}
		t.AppendRow(table.Row{
			v.Prefix(), fmt.Sprintf("%08x", v.Value()), kind,
			network(v), joinPurposes(v.Purposes()),
			joinCoins(v.CoinTypes()),
		})
	}
	t.Render()
	return nil
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	return t
}

func network(v *ecckd.Version) string {
	if v.IsTestNet() {
		return "testnet"
	}
	return "mainnet"
}

func joinPurposes(purposes []ecckd.Purpose) string {
	names := make([]string, 0, len(purposes))
	for _, p := range purposes {
		names = append(names, p.String())
	}
	return strings.Join(names, ", ")
}

func joinCoins(coins []ecckd.CoinType) string {
	names := make([]string, 0, len(coins))
	for _, c := range coins {
		names = append(names, c.String())
	}
	return strings.Join(names, ", ")
}
