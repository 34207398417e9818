// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stacking

import (
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/stx-tools/pox-stacker/account"
	"github.com/stx-tools/pox-stacker/stacks"
)

// SupportedContract is the PoX contract version decisions are made for.
const SupportedContract = "pox-4"

// ErrUnsupportedContract is returned when the node runs another PoX version.
var ErrUnsupportedContract = errors.New("unsupported pox contract")

// ProtocolInfo is the PoX state read once at the start of a run.
type ProtocolInfo struct {
	ContractID            string
	CurrentBurnHeight     uint64
	RewardCycleID         uint64
	RewardCycleLength     uint64
	PreparePhaseLength    uint64
	FirstBurnHeight       uint64
	NextCycleMinThreshold *uint256.Int
}

// ContractVersion is the contract name, the part after the last '.'.
func (i *ProtocolInfo) ContractVersion() string {
	return i.ContractID[strings.LastIndexByte(i.ContractID, '.')+1:]
}

// Contract parses ContractID after checking it is the supported version.
func (i *ProtocolInfo) Contract() (stacks.ContractID, error) {
	if v := i.ContractVersion(); v != SupportedContract {
		return stacks.ContractID{}, errors.Wrapf(ErrUnsupportedContract, "%q", v)
	}
	id, err := stacks.ParseContractID(i.ContractID)
	if err != nil {
		return stacks.ContractID{}, errors.Wrap(err, "pox contract id")
	}
	return id, nil
}

// Snapshot is an account with its on-chain lock state, read fresh every run.
type Snapshot struct {
	Account          *account.Account
	Balance          *uint256.Int
	Locked           *uint256.Int
	UnlockBurnHeight uint64
	Nonce            uint64
}
