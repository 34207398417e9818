// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stacks

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// PoxAddressVersion is the hash mode of a bitcoin reward address as understood by the PoX contract.
type PoxAddressVersion byte

const (
	PoxP2PKH      PoxAddressVersion = 0x00
	PoxP2SH       PoxAddressVersion = 0x01
	PoxP2SHP2WPKH PoxAddressVersion = 0x02
	PoxP2SHP2WSH  PoxAddressVersion = 0x03
	PoxP2WPKH     PoxAddressVersion = 0x04
	PoxP2WSH      PoxAddressVersion = 0x05
	PoxP2TR       PoxAddressVersion = 0x06
)

// PoxAddress is a bitcoin address that receives stacking rewards.
type PoxAddress struct {
	Version   PoxAddressVersion
	HashBytes []byte
	encoded   string
}

// NewPoxAddress maps a decoded bitcoin address onto its PoX representation.
func NewPoxAddress(addr btcutil.Address) (PoxAddress, error) {
	var version PoxAddressVersion
	switch addr.(type) {
	case *btcutil.AddressPubKeyHash:
		version = PoxP2PKH
	case *btcutil.AddressScriptHash:
		version = PoxP2SH
	case *btcutil.AddressWitnessPubKeyHash:
		version = PoxP2WPKH
	case *btcutil.AddressWitnessScriptHash:
		version = PoxP2WSH
	case *btcutil.AddressTaproot:
		version = PoxP2TR
	default:
		return PoxAddress{}, fmt.Errorf("unsupported reward address type %T", addr)
	}
	return PoxAddress{
		Version:   version,
		HashBytes: addr.ScriptAddress(),
		encoded:   addr.EncodeAddress(),
	}, nil
}

// ParsePoxAddress decodes a bitcoin address and checks that it belongs to params.
func ParsePoxAddress(s string, params *chaincfg.Params) (PoxAddress, error) {
	addr, err := btcutil.DecodeAddress(s, params)
	if err != nil {
		return PoxAddress{}, fmt.Errorf("invalid reward address %q: %w", s, err)
	}
	if !addr.IsForNet(params) {
		return PoxAddress{}, fmt.Errorf("reward address %q is not for %s", s, params.Name)
	}
	return NewPoxAddress(addr)
}

// PoxAddressFromPubKey derives the P2PKH reward address of a serialized public key.
func PoxAddressFromPubKey(pubKey []byte, params *chaincfg.Params) (PoxAddress, error) {
	addr, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(pubKey), params)
	if err != nil {
		return PoxAddress{}, err
	}
	return NewPoxAddress(addr)
}

// String returns the bitcoin encoding of the address.
func (p PoxAddress) String() string {
	return p.encoded
}
