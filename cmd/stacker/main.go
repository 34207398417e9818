// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/pborman/uuid"
	"github.com/pkg/errors"
	"github.com/stx-tools/pox-stacker/log"
	"github.com/stx-tools/pox-stacker/metrics"
	"github.com/stx-tools/pox-stacker/stacker"
	"github.com/stx-tools/pox-stacker/stacking"
	"github.com/stx-tools/pox-stacker/stacksclient"
	cli "gopkg.in/urfave/cli.v1"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "pox-stacker",
		Usage:     "Stack or extend the configured accounts for the next PoX cycles",
		ArgsUsage: "[config]",
		Flags: []cli.Flag{
			configFlag,
			verbosityFlag,
			jsonLogsFlag,
			dryRunFlag,
			timeoutFlag,
			requestTimeoutFlag,
			metricsFileFlag,
		},
		Action: stackAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func stackAction(ctx *cli.Context) error {
	initLogger(ctx)
	runID := uuid.New()
	logger := log.WithContext("pkg", "main", "run", runID)

	path, err := configPath(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	cfg, accounts, err := loadAccounts(path)
	if err != nil {
		return cli.NewExitError(errors.Wrap(err, "invalid configuration"), 1)
	}
	network, _ := cfg.NetworkParams()
	nodeURL, _ := cfg.NodeURL()
	logger.Info("starting", "version", fullVersion(), "network", network.String(), "node", nodeURL, "stackers", len(accounts))
	printAccounts(logger, accounts)

	if file := ctx.String(metricsFileFlag.Name); file != "" {
		metrics.InitializePrometheusMetrics()
		defer func() {
			if err := metrics.WriteTextfile(file); err != nil {
				logger.Warn("failed to write metrics", "file", file, "err", err)
			}
		}()
	}

	client := stacksclient.NewWithHTTP(nodeURL, &http.Client{Timeout: ctx.Duration(requestTimeoutFlag.Name)})
	s := stacker.New(network, client, accounts, stacker.Options{
		Params:  cfg.Params(),
		BaseFee: cfg.Pox.BaseFee,
		DryRun:  ctx.Bool(dryRunFlag.Name),
		RunID:   runID,
	})

	exitCtx, stop := handleExitSignal()
	defer stop()
	runCtx, cancel := context.WithTimeout(exitCtx, ctx.Duration(timeoutFlag.Name))
	defer cancel()

	report, err := s.Run(runCtx)
	switch {
	case errors.Is(err, stacking.ErrUnsupportedContract):
		logger.Warn("nothing submitted", "err", err)
		return nil
	case err != nil:
		return cli.NewExitError(err, 1)
	}
	printReport(logger, report)
	return nil
}
