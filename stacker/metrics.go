// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stacker

import "github.com/stx-tools/pox-stacker/metrics"

var (
	metricDecisions     = metrics.LazyLoadCounterVec("decisions_total", []string{"kind"})
	metricSubmissions   = metrics.LazyLoadCounterVec("submissions_total", []string{"function", "outcome"})
	metricAccountErrors = metrics.LazyLoadCounterVec("account_errors_total", []string{"phase"})
	metricBurnHeight    = metrics.LazyLoadGauge("burn_height")
	metricLastRun       = metrics.LazyLoadGauge("last_run_timestamp_seconds")
)
