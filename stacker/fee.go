// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stacker

import "sync/atomic"

// DefaultBaseFee is the first fee of a run, in micro-STX.
const DefaultBaseFee = 1000

// FeeSequencer hands out strictly increasing fees. Safe for concurrent use.
type FeeSequencer struct {
	next atomic.Uint64
}

func NewFeeSequencer(base uint64) *FeeSequencer {
	s := &FeeSequencer{}
	s.next.Store(base)
	return s
}

// Next returns the current fee and advances the sequence.
func (s *FeeSequencer) Next() uint64 {
	return s.next.Add(1) - 1
}
