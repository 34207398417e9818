// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"time"

	"github.com/stx-tools/pox-stacker/log"
	cli "gopkg.in/urfave/cli.v1"
)

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to the configuration file (.toml, .yaml or .yml), may also be given as first argument",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: log.LegacyLevelInfo,
		Usage: "log verbosity (0-5)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	dryRunFlag = cli.BoolFlag{
		Name:  "dry-run",
		Usage: "build and sign transactions without broadcasting them",
	}
	timeoutFlag = cli.DurationFlag{
		Name:  "timeout",
		Value: time.Minute,
		Usage: "deadline of the whole run",
	}
	requestTimeoutFlag = cli.DurationFlag{
		Name:  "request-timeout",
		Value: 10 * time.Second,
		Usage: "timeout of a single node request",
	}
	metricsFileFlag = cli.StringFlag{
		Name:  "metrics-file",
		Usage: "write prometheus metrics to this file after the run (node_exporter textfile format)",
	}
)
