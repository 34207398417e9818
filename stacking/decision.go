// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stacking

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Kind of action decided for an account.
type Kind int

const (
	Skip Kind = iota
	Stack
	Extend
)

func (k Kind) String() string {
	switch k {
	case Stack:
		return "stack"
	case Extend:
		return "extend"
	default:
		return "skip"
	}
}

// Decision is the outcome of Decide for one account.
type Decision struct {
	Kind Kind
	// Amount to lock, set for Stack only.
	Amount      *uint256.Int
	NowCycle    uint64
	UnlockCycle uint64
	Reason      string
	// Anomalous marks a Skip caused by lock state the protocol should never produce.
	Anomalous bool
}

// ErrInsufficientBalance is matched by every *InsufficientBalanceError.
var ErrInsufficientBalance = errors.New("insufficient balance")

// InsufficientBalanceError reports a planned stack amount the account cannot cover.
type InsufficientBalanceError struct {
	Amount  *uint256.Int
	Balance *uint256.Int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: need %v, have %v", e.Amount.Dec(), e.Balance.Dec())
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// PlannedAmount is floor(threshold * 1.5) * slots.
func PlannedAmount(threshold *uint256.Int, slots uint64) *uint256.Int {
	amount := new(uint256.Int).Mul(threshold, uint256.NewInt(3))
	amount.Rsh(amount, 1)
	return amount.Mul(amount, uint256.NewInt(slots))
}

// Decide maps protocol state and an account snapshot to an action.
// The contract version is checked once per run by the caller, see ProtocolInfo.Contract.
func Decide(params Params, info *ProtocolInfo, snap *Snapshot) (Decision, error) {
	nowCycle := params.CycleOf(info.CurrentBurnHeight)

	if snap.Locked.IsZero() {
		amount := PlannedAmount(info.NextCycleMinThreshold, snap.Account.TargetSlots)
		if amount.Gt(snap.Balance) {
			return Decision{}, &InsufficientBalanceError{Amount: amount, Balance: snap.Balance.Clone()}
		}
		return Decision{
			Kind:     Stack,
			Amount:   amount,
			NowCycle: nowCycle,
			Reason:   "no active lock",
		}, nil
	}

	d := Decision{
		Kind:        Skip,
		NowCycle:    nowCycle,
		UnlockCycle: params.CycleOf(snap.UnlockBurnHeight),
	}
	switch {
	case d.UnlockCycle == nowCycle+1:
		d.Kind = Extend
		d.Reason = "lock expires after the current cycle"
	case d.UnlockCycle > nowCycle+1:
		d.Reason = "locked for next cycle"
	default:
		d.Reason = "locked funds with unlock cycle not after the current cycle"
		d.Anomalous = true
	}
	return d, nil
}
