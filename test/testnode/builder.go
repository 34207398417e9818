// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package testnode

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/stx-tools/pox-stacker/stacks"
	"github.com/stx-tools/pox-stacker/stacksclient/httpclient"
)

// NodeBuilder implements the builder pattern for creating a test node instance
type NodeBuilder struct {
	pox      httpclient.PoxInfo
	accounts map[string]httpclient.Account
	network  *stacks.Network
}

// NewNodeBuilder creates a new NodeBuilder with a pox-4 testnet at burn height 199.
func NewNodeBuilder() *NodeBuilder {
	return &NodeBuilder{
		pox: httpclient.PoxInfo{
			ContractID:                  "ST000000000000000000002AMW42H.pox-4",
			CurrentBurnchainBlockHeight: 199,
			PreparePhaseBlockLength:     5,
			RewardPhaseBlockLength:      15,
			RewardCycleID:               9,
			RewardCycleLength:           20,
			NextCycle:                   httpclient.PoxCycle{ID: 10, MinThresholdUstx: 1_000_000},
		},
		accounts: make(map[string]httpclient.Account),
		network:  stacks.Testnet,
	}
}

// WithPoxInfo replaces the /v2/pox response.
func (b *NodeBuilder) WithPoxInfo(info httpclient.PoxInfo) *NodeBuilder {
	b.pox = info
	return b
}

// WithBurnHeight sets the current burn height and the matching reward cycle id.
func (b *NodeBuilder) WithBurnHeight(height uint64) *NodeBuilder {
	b.pox.CurrentBurnchainBlockHeight = height
	if b.pox.RewardCycleLength > 0 {
		b.pox.RewardCycleID = height / b.pox.RewardCycleLength
		b.pox.NextCycle.ID = b.pox.RewardCycleID + 1
	}
	return b
}

// WithThreshold sets the next cycle minimum threshold.
func (b *NodeBuilder) WithThreshold(ustx uint64) *NodeBuilder {
	b.pox.NextCycle.MinThresholdUstx = ustx
	return b
}

// WithContract sets the reported PoX contract id.
func (b *NodeBuilder) WithContract(id string) *NodeBuilder {
	b.pox.ContractID = id
	return b
}

// WithAccount registers the state of a principal.
func (b *NodeBuilder) WithAccount(addr stacks.Address, balance, locked, unlockHeight, nonce uint64) *NodeBuilder {
	b.accounts[addr.String()] = httpclient.Account{
		Balance:      hex128(balance),
		Locked:       hex128(locked),
		UnlockHeight: unlockHeight,
		Nonce:        nonce,
	}
	return b
}

// WithNetwork sets the network transactions must be encoded for.
func (b *NodeBuilder) WithNetwork(network *stacks.Network) *NodeBuilder {
	b.network = network
	return b
}

// Build creates a new Node with the current configuration.
func (b *NodeBuilder) Build() (Node, error) {
	if b.network == nil {
		return nil, fmt.Errorf("network is not set")
	}
	accounts := make(map[string]httpclient.Account, len(b.accounts))
	for k, v := range b.accounts {
		accounts[k] = v
	}
	return &node{
		pox:      b.pox,
		accounts: accounts,
		network:  b.network,
	}, nil
}

// NewDefaultNode creates a new node with default configuration
func NewDefaultNode() (Node, error) {
	return NewNodeBuilder().Build()
}

// hex128 renders v the way the accounts endpoint does: 0x and 32 hex digits.
func hex128(v uint64) string {
	b := uint256.NewInt(v).Bytes32()
	return fmt.Sprintf("0x%x", b[16:])
}
