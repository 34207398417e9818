// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stacker

import (
	"github.com/stx-tools/pox-stacker/account"
	"github.com/stx-tools/pox-stacker/stacking"
	"github.com/stx-tools/pox-stacker/stacksclient"
)

// Phase names the step of a run an account failed in.
type Phase string

const (
	PhaseSnapshot Phase = "snapshot"
	PhaseDecide   Phase = "decide"
	PhaseExecute  Phase = "execute"
)

// Result is what happened to one account during a run.
type Result struct {
	Account  *account.Account
	Snapshot *stacking.Snapshot
	Decision stacking.Decision

	// set once a transaction was built
	Function string
	Fee      uint64
	RawTx    string
	TxResult *stacksclient.TxResult

	Err   error
	Phase Phase
}

// Submitted reports whether a transaction was broadcast for the account.
func (r *Result) Submitted() bool {
	return r.TxResult != nil
}

func (r *Result) fail(phase Phase, err error) {
	r.Phase = phase
	r.Err = err
	metricAccountErrors().AddWithLabel(1, map[string]string{"phase": string(phase)})
}

// Report is the outcome of a run, results in configuration order.
type Report struct {
	Info    *stacking.ProtocolInfo
	Results []*Result
}

// Count returns the number of results whose decision is of kind k.
func (r *Report) Count(k stacking.Kind) int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil && res.Decision.Kind == k {
			n++
		}
	}
	return n
}

// Failed returns the results that ended with an error.
func (r *Report) Failed() []*Result {
	var failed []*Result
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}
