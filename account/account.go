// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package account derives the keys and addresses a stacker acts with.
package account

import (
	"github.com/pkg/errors"
	"github.com/stx-tools/pox-stacker/cry"
	"github.com/stx-tools/pox-stacker/stacks"
)

// Credentials is the configured material of one stacker. Only SecretKey is required.
type Credentials struct {
	SecretKey string
	// STXAddress, if set, must equal the address derived from SecretKey.
	STXAddress string
	// BTCAddress, if set, replaces the reward address derived from SecretKey.
	BTCAddress string
	// SignerKey, if set, is used instead of SecretKey to sign authorizations.
	SignerKey string
}

// Account is a stacker ready to act on a network.
type Account struct {
	// Index is the 0-based position in configuration.
	Index           int
	Sender          *cry.PrivateKey
	StackingAddress stacks.Address
	PoxAddress      stacks.PoxAddress
	SignerKey       *cry.PrivateKey
	// SignerPublicKey is the 33 byte compressed signer key.
	SignerPublicKey []byte
	// TargetSlots scales the stacking amount. Always at least 1.
	TargetSlots uint64
}

// Derive builds the account at index from its credentials.
func Derive(index int, creds Credentials, network *stacks.Network) (*Account, error) {
	if index < 0 {
		return nil, errors.Errorf("invalid account index %d", index)
	}
	sender, err := cry.ParsePrivateKey(creds.SecretKey)
	if err != nil {
		return nil, errors.Wrap(err, "secret key")
	}

	pub := sender.PublicKeyBytes()
	addr, err := stacks.NewAddress(network.SingleSigVersion, hash160(pub))
	if err != nil {
		return nil, err
	}
	if creds.STXAddress != "" {
		expected, err := stacks.ParseAddress(creds.STXAddress)
		if err != nil {
			return nil, errors.Wrap(err, "stx address")
		}
		if expected != addr {
			return nil, errors.Errorf("stx address %v does not match secret key (derived %v)", expected, addr)
		}
	}

	var poxAddr stacks.PoxAddress
	if creds.BTCAddress != "" {
		poxAddr, err = stacks.ParsePoxAddress(creds.BTCAddress, network.BTCParams)
	} else {
		poxAddr, err = stacks.PoxAddressFromPubKey(pub, network.BTCParams)
	}
	if err != nil {
		return nil, errors.Wrap(err, "btc address")
	}

	signer := sender
	if creds.SignerKey != "" {
		if signer, err = cry.ParsePrivateKey(creds.SignerKey); err != nil {
			return nil, errors.Wrap(err, "signer key")
		}
	}

	return &Account{
		Index:           index,
		Sender:          sender,
		StackingAddress: addr,
		PoxAddress:      poxAddr,
		SignerKey:       signer,
		SignerPublicKey: signer.CompressedPublicKey(),
		TargetSlots:     uint64(index) + 1,
	}, nil
}

// DeriveAll derives every account in configuration order.
func DeriveAll(creds []Credentials, network *stacks.Network) ([]*Account, error) {
	accounts := make([]*Account, 0, len(creds))
	for i, c := range creds {
		acc, err := Derive(i, c, network)
		if err != nil {
			return nil, errors.Wrapf(err, "stacker #%d", i+1)
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

func hash160(b []byte) []byte {
	h := cry.Hash160(b)
	return h[:]
}
