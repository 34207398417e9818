// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpclient

import "encoding/json"

// PoxCycle describes the current or next reward cycle in a /v2/pox response.
type PoxCycle struct {
	ID               uint64 `json:"id"`
	MinThresholdUstx uint64 `json:"min_threshold_ustx"`
	StackedUstx      uint64 `json:"stacked_ustx"`
	IsPoxActive      bool   `json:"is_pox_active,omitempty"`
}

// PoxInfo is the body of GET /v2/pox. Only the fields in use are decoded.
type PoxInfo struct {
	ContractID                  string   `json:"contract_id"`
	FirstBurnchainBlockHeight   uint64   `json:"first_burnchain_block_height"`
	CurrentBurnchainBlockHeight uint64   `json:"current_burnchain_block_height"`
	PreparePhaseBlockLength     uint64   `json:"prepare_phase_block_length"`
	RewardPhaseBlockLength      uint64   `json:"reward_phase_block_length"`
	RewardSlots                 uint64   `json:"reward_slots"`
	RewardCycleID               uint64   `json:"reward_cycle_id"`
	RewardCycleLength           uint64   `json:"reward_cycle_length"`
	CurrentCycle                PoxCycle `json:"current_cycle"`
	NextCycle                   PoxCycle `json:"next_cycle"`
}

// Account is the body of GET /v2/accounts/{principal}. Balance and Locked are
// zero padded hex encoded 128 bit integers.
type Account struct {
	Balance      string `json:"balance"`
	Locked       string `json:"locked"`
	UnlockHeight uint64 `json:"unlock_height"`
	Nonce        uint64 `json:"nonce"`
}

// BroadcastRejection is the body of a 400 response to POST /v2/transactions.
type BroadcastRejection struct {
	Error      string          `json:"error"`
	Reason     string          `json:"reason"`
	ReasonData json.RawMessage `json:"reason_data,omitempty"`
	TxID       string          `json:"txid"`
}
