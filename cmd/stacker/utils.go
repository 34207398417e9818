// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"encoding/hex"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/stx-tools/pox-stacker/account"
	"github.com/stx-tools/pox-stacker/config"
	"github.com/stx-tools/pox-stacker/log"
	"github.com/stx-tools/pox-stacker/stacker"
	"github.com/stx-tools/pox-stacker/stacking"
	cli "gopkg.in/urfave/cli.v1"
)

func initLogger(ctx *cli.Context) {
	fd := os.Stderr.Fd()
	log.Init(os.Stderr, log.Options{
		Verbosity: ctx.Int(verbosityFlag.Name),
		JSON:      ctx.Bool(jsonLogsFlag.Name),
		Color:     isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	})
}

// configPath returns --config, or the first argument when the flag is unset.
func configPath(ctx *cli.Context) (string, error) {
	if p := ctx.String(configFlag.Name); p != "" {
		if ctx.NArg() > 0 {
			return "", errors.New("config given both as flag and argument")
		}
		return p, nil
	}
	switch ctx.NArg() {
	case 0:
		return "", errors.New("missing configuration file, pass --config or a path")
	case 1:
		return ctx.Args().First(), nil
	default:
		return "", errors.Errorf("unexpected arguments %v", ctx.Args().Tail())
	}
}

func loadAccounts(path string) (*config.Config, []*account.Account, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	network, err := cfg.NetworkParams()
	if err != nil {
		return nil, nil, err
	}
	accounts, err := account.DeriveAll(cfg.Credentials(), network)
	if err != nil {
		return nil, nil, err
	}
	return cfg, accounts, nil
}

func printAccounts(logger log.Logger, accounts []*account.Account) {
	for _, acc := range accounts {
		logger.Info("stacker",
			"index", acc.Index,
			"stx-address", acc.StackingAddress.String(),
			"btc-address", acc.PoxAddress.String(),
			"signer-key", hex.EncodeToString(acc.SignerPublicKey),
			"slots", acc.TargetSlots,
		)
	}
}

func printReport(logger log.Logger, report *stacker.Report) {
	submitted := 0
	for _, res := range report.Results {
		if res.Submitted() || res.RawTx != "" {
			submitted++
		}
	}
	logger.Info("run finished",
		"stack", report.Count(stacking.Stack),
		"extend", report.Count(stacking.Extend),
		"skip", report.Count(stacking.Skip),
		"submitted", submitted,
		"failed", len(report.Failed()),
	)
}

func handleExitSignal() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
