// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stacker runs one pass of the stacking automation over a set of accounts.
package stacker

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/stx-tools/pox-stacker/account"
	"github.com/stx-tools/pox-stacker/co"
	"github.com/stx-tools/pox-stacker/log"
	"github.com/stx-tools/pox-stacker/stacking"
	"github.com/stx-tools/pox-stacker/stacks"
	"github.com/stx-tools/pox-stacker/stacksclient"
	"github.com/stx-tools/pox-stacker/stacksclient/builtin"
)

// Client is the node API used by a run.
type Client interface {
	PoxInfo(ctx context.Context) (*stacking.ProtocolInfo, error)
	AccountStatus(ctx context.Context, addr stacks.Address) (*stacksclient.AccountStatus, error)
	builtin.Broadcaster
}

// Options tune a run.
type Options struct {
	Params  stacking.Params
	BaseFee uint64
	// DryRun builds and signs transactions without broadcasting them.
	DryRun bool
	// Rand is the source of auth ids, crypto/rand when nil.
	Rand  io.Reader
	RunID string
}

// Stacker decides and submits pox-4 actions for its accounts.
type Stacker struct {
	network  *stacks.Network
	client   Client
	accounts []*account.Account
	opts     Options
	logger   log.Logger
}

// New creates a Stacker. Loggers are bound here, so call it after log.Init.
func New(network *stacks.Network, client Client, accounts []*account.Account, opts Options) *Stacker {
	if opts.BaseFee == 0 {
		opts.BaseFee = DefaultBaseFee
	}
	ctx := []any{"pkg", "stacker"}
	if opts.RunID != "" {
		ctx = append(ctx, "run", opts.RunID)
	}
	return &Stacker{
		network:  network,
		client:   client,
		accounts: accounts,
		opts:     opts,
		logger:   log.WithContext(ctx...),
	}
}

// Run performs a single pass. The error is non-nil only for failures that
// stop the whole run: the pox info could not be loaded, or the node runs an
// unsupported contract (matching stacking.ErrUnsupportedContract). Per-account
// failures are reported in the Report.
func (s *Stacker) Run(ctx context.Context) (*Report, error) {
	defer func() { metricLastRun().Set(time.Now().Unix()) }()

	info, err := s.client.PoxInfo(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load pox info")
	}
	metricBurnHeight().Set(int64(info.CurrentBurnHeight))

	s.logger.Info("pox info",
		"contract", info.ContractID,
		"burn-height", info.CurrentBurnHeight,
		"reward-cycle", info.RewardCycleID,
		"min-threshold", info.NextCycleMinThreshold.Dec(),
	)
	if info.RewardCycleLength != s.opts.Params.RewardCycleLength {
		s.logger.Warn("reward cycle length differs from node",
			"configured", s.opts.Params.RewardCycleLength,
			"node", info.RewardCycleLength,
		)
	}

	report := &Report{Info: info, Results: make([]*Result, len(s.accounts))}

	contract, err := info.Contract()
	if err != nil {
		if errors.Is(err, stacking.ErrUnsupportedContract) {
			s.logger.Warn("skipping run", "contract", info.ContractID, "err", err)
		}
		return report, err
	}
	pox := builtin.NewPox4(contract, s.network, s.client)
	fees := NewFeeSequencer(s.opts.BaseFee)

	co.ForEach(len(s.accounts), func(i int) {
		report.Results[i] = s.snapshot(ctx, s.accounts[i])
	})

	for _, res := range report.Results {
		if res.Err == nil {
			s.decide(info, res)
		}
	}

	co.ForEach(len(report.Results), func(i int) {
		res := report.Results[i]
		if res.Err != nil || res.Decision.Kind == stacking.Skip {
			return
		}
		s.execute(ctx, info, pox, fees, res)
	})

	return report, nil
}

func (s *Stacker) accountLogger(acc *account.Account) log.Logger {
	return s.logger.With("stacker", acc.Index, "address", acc.StackingAddress.String())
}

func (s *Stacker) snapshot(ctx context.Context, acc *account.Account) *Result {
	res := &Result{Account: acc}
	status, err := s.client.AccountStatus(ctx, acc.StackingAddress)
	if err != nil {
		res.fail(PhaseSnapshot, err)
		s.accountLogger(acc).Error("failed to load account status", "err", err)
		return res
	}
	res.Snapshot = &stacking.Snapshot{
		Account:          acc,
		Balance:          status.Balance,
		Locked:           status.Locked,
		UnlockBurnHeight: status.UnlockHeight,
		Nonce:            status.Nonce,
	}
	return res
}

func (s *Stacker) decide(info *stacking.ProtocolInfo, res *Result) {
	snap := res.Snapshot
	logger := s.accountLogger(res.Account).With(
		"burn-height", info.CurrentBurnHeight,
		"cycle", s.opts.Params.CycleOf(info.CurrentBurnHeight),
		"unlock-height", snap.UnlockBurnHeight,
		"balance", snap.Balance.Dec(),
		"locked", snap.Locked.Dec(),
	)

	d, err := stacking.Decide(s.opts.Params, info, snap)
	if err != nil {
		res.fail(PhaseDecide, err)
		logger.Error("cannot stack", "err", err)
		return
	}
	res.Decision = d
	metricDecisions().AddWithLabel(1, map[string]string{"kind": d.Kind.String()})

	ctx := []any{"action", d.Kind.String(), "reason", d.Reason}
	if d.Kind == stacking.Stack {
		ctx = append(ctx, "amount", d.Amount.Dec())
	} else {
		ctx = append(ctx, "unlock-cycle", d.UnlockCycle)
	}
	if d.Anomalous {
		logger.Warn("unexpected lock state", ctx...)
		return
	}
	logger.Info("decided", ctx...)
}
