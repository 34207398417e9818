// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stacks

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
)

// Address versions of single-sig and multi-sig accounts.
const (
	MainnetSingleSigVersion byte = 22 // 'P'
	MainnetMultiSigVersion  byte = 20 // 'M'
	TestnetSingleSigVersion byte = 26 // 'T'
	TestnetMultiSigVersion  byte = 21 // 'N'
)

// Network holds the chain parameters needed to address, sign and broadcast.
type Network struct {
	Name             string
	TxVersion        byte
	ChainID          uint32
	SingleSigVersion byte
	MultiSigVersion  byte
	// BTCParams is the bitcoin network the reward addresses live on.
	BTCParams *chaincfg.Params
}

var (
	Mainnet = &Network{
		Name:             "mainnet",
		TxVersion:        0x00,
		ChainID:          0x00000001,
		SingleSigVersion: MainnetSingleSigVersion,
		MultiSigVersion:  MainnetMultiSigVersion,
		BTCParams:        &chaincfg.MainNetParams,
	}
	Testnet = &Network{
		Name:             "testnet",
		TxVersion:        0x80,
		ChainID:          0x80000000,
		SingleSigVersion: TestnetSingleSigVersion,
		MultiSigVersion:  TestnetMultiSigVersion,
		BTCParams:        &chaincfg.TestNet3Params,
	}
)

// NetworkByName returns the network registered under name. An empty name selects testnet.
func NetworkByName(name string) (*Network, error) {
	switch strings.ToLower(name) {
	case "", Testnet.Name:
		return Testnet, nil
	case Mainnet.Name:
		return Mainnet, nil
	default:
		return nil, fmt.Errorf("unknown network %q", name)
	}
}

// IsTestnet reports whether the network uses testnet transaction encoding.
func (n *Network) IsTestnet() bool {
	return n.TxVersion&0x80 != 0
}

func (n *Network) String() string {
	return n.Name
}
