// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stacking decides, per account, whether to lock, extend or leave alone.
package stacking

import "github.com/pkg/errors"

// Params are the cycle constants a run is evaluated with.
type Params struct {
	// RewardCycleLength is the number of burn blocks per reward cycle.
	RewardCycleLength uint64
	// PreparePhaseLength is informational and not used by CycleOf.
	PreparePhaseLength uint64
	// StackingCycles is the lock period of stack-stx and the extension of stack-extend.
	StackingCycles uint64
}

// DefaultParams match a testnet with 20 block cycles.
var DefaultParams = Params{
	RewardCycleLength:  20,
	PreparePhaseLength: 5,
	StackingCycles:     10,
}

// maxLockPeriod is the largest lock period pox-4 accepts.
const maxLockPeriod = 12

// Validate rejects parameters CycleOf or the contract cannot work with.
func (p Params) Validate() error {
	if p.RewardCycleLength == 0 {
		return errors.New("reward cycle length must be positive")
	}
	if p.PreparePhaseLength >= p.RewardCycleLength {
		return errors.New("prepare phase must be shorter than the reward cycle")
	}
	if p.StackingCycles == 0 || p.StackingCycles > maxLockPeriod {
		return errors.Errorf("stacking cycles must be within [1, %d]", maxLockPeriod)
	}
	return nil
}

// CycleOf maps a burn height to its 1-based reward cycle: h/L + 1.
func (p Params) CycleOf(burnHeight uint64) uint64 {
	return burnHeight/p.RewardCycleLength + 1
}
