// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stacker

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/stx-tools/pox-stacker/clarity"
	"github.com/stx-tools/pox-stacker/stacking"
	"github.com/stx-tools/pox-stacker/stacksclient/builtin"
)

// execute turns a Stack or Extend decision into a signed pox-4 call and
// submits it. Results are recorded on res.
func (s *Stacker) execute(ctx context.Context, info *stacking.ProtocolInfo, pox *builtin.Pox4, fees *FeeSequencer, res *Result) {
	logger := s.accountLogger(res.Account).With("action", res.Decision.Kind.String())

	call, err := s.prepare(info, pox, res)
	if err != nil {
		res.fail(PhaseExecute, err)
		logger.Error("failed to prepare call", "err", err)
		return
	}
	res.Function = call.Function()
	res.Fee = fees.Next()

	trx, err := call.Build(res.Account.Sender, res.Snapshot.Nonce, res.Fee)
	if err != nil {
		res.fail(PhaseExecute, errors.Wrap(err, "sign transaction"))
		logger.Error("failed to sign transaction", "err", err)
		return
	}
	logger = logger.With("function", res.Function, "nonce", res.Snapshot.Nonce, "fee", res.Fee)
	logger.Info("contract call", "args", formatArgs(call.Args()))

	if s.opts.DryRun {
		raw, err := trx.Hex()
		if err != nil {
			res.fail(PhaseExecute, err)
			logger.Error("failed to encode transaction", "err", err)
			return
		}
		res.RawTx = raw
		id, _ := trx.ID()
		metricSubmissions().AddWithLabel(1, map[string]string{"function": res.Function, "outcome": "dry-run"})
		logger.Info("dry run, not broadcasting", "txid", id.String(), "raw", raw)
		return
	}

	result, err := call.Send(ctx, trx)
	if err != nil {
		res.fail(PhaseExecute, err)
		metricSubmissions().AddWithLabel(1, map[string]string{"function": res.Function, "outcome": "error"})
		logger.Error("broadcast failed", "err", err)
		return
	}
	res.TxResult = result
	if !result.Accepted() {
		metricSubmissions().AddWithLabel(1, map[string]string{"function": res.Function, "outcome": "rejected"})
		logger.Warn("transaction rejected", "error", result.Error, "reason", result.Reason, "txid", result.TxID)
		return
	}
	metricSubmissions().AddWithLabel(1, map[string]string{"function": res.Function, "outcome": "accepted"})
	logger.Info("transaction broadcast", "txid", result.TxID)
}

// prepare signs the signer authorization and assembles the call arguments.
func (s *Stacker) prepare(info *stacking.ProtocolInfo, pox *builtin.Pox4, res *Result) (*builtin.Call, error) {
	acc := res.Account
	req, err := stacking.NewAuthRequest(res.Decision, s.opts.Params, info, res.Snapshot, s.opts.Rand)
	if err != nil {
		return nil, err
	}
	sig, err := pox.SignerSignature(req)
	if err != nil {
		return nil, err
	}

	switch res.Decision.Kind {
	case stacking.Stack:
		return pox.StackStx(builtin.StackStxArgs{
			Amount:          res.Decision.Amount,
			PoxAddress:      acc.PoxAddress,
			StartBurnHeight: info.CurrentBurnHeight,
			LockPeriod:      s.opts.Params.StackingCycles,
			SignerSignature: sig,
			SignerKey:       acc.SignerPublicKey,
			MaxAmount:       req.MaxAmount,
			AuthID:          req.AuthID,
		})
	case stacking.Extend:
		return pox.StackExtend(builtin.StackExtendArgs{
			ExtendCount:     s.opts.Params.StackingCycles,
			PoxAddress:      acc.PoxAddress,
			SignerSignature: sig,
			SignerKey:       acc.SignerPublicKey,
			MaxAmount:       req.MaxAmount,
			AuthID:          req.AuthID,
		})
	default:
		return nil, errors.Errorf("nothing to execute for %v", res.Decision.Kind)
	}
}

func formatArgs(args []clarity.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ")
}
