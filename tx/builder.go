// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/stx-tools/pox-stacker/clarity"
	"github.com/stx-tools/pox-stacker/stacks"
)

// Builder to make it easy to build transaction.
type Builder struct {
	body body
}

// NewBuilder creates a builder for the given network. Anchor mode defaults to
// any and post condition mode to deny.
func NewBuilder(network *stacks.Network) *Builder {
	return &Builder{body: body{
		Version:           network.TxVersion,
		ChainID:           network.ChainID,
		AnchorMode:        AnchorAny,
		PostConditionMode: PostConditionDeny,
		Auth:              spendingCondition{KeyEncoding: keyEncodingCompress},
	}}
}

// Nonce set nonce.
func (b *Builder) Nonce(nonce uint64) *Builder {
	b.body.Auth.Nonce = nonce
	return b
}

// Fee set fee in micro-STX.
func (b *Builder) Fee(fee uint64) *Builder {
	b.body.Auth.Fee = fee
	return b
}

// AnchorMode set anchor mode.
func (b *Builder) AnchorMode(mode AnchorMode) *Builder {
	b.body.AnchorMode = mode
	return b
}

// PostConditionMode set post condition mode.
func (b *Builder) PostConditionMode(mode PostConditionMode) *Builder {
	b.body.PostConditionMode = mode
	return b
}

// ContractCall set the contract-call payload.
func (b *Builder) ContractCall(contract stacks.ContractID, function string, args ...clarity.Value) *Builder {
	b.body.Payload = ContractCall{
		Contract: contract,
		Function: function,
		Args:     append([]clarity.Value(nil), args...),
	}
	return b
}

// Build build tx object.
func (b *Builder) Build() *Transaction {
	tx := Transaction{body: b.body}
	return &tx
}
