// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stacks

import (
	"errors"
	"fmt"
	"strings"
)

// AddressHashLength length of the hash160 carried by an address.
const AddressHashLength = 20

// Address is a standard principal: a version byte and the hash160 of the owning key.
type Address struct {
	Version byte
	Hash    [AddressHashLength]byte
}

// NewAddress builds an address from a version and a 20 byte hash.
func NewAddress(version byte, hash []byte) (Address, error) {
	if version >= 32 {
		return Address{}, fmt.Errorf("invalid address version %d", version)
	}
	if len(hash) != AddressHashLength {
		return Address{}, fmt.Errorf("invalid address hash length %d", len(hash))
	}
	addr := Address{Version: version}
	copy(addr.Hash[:], hash)
	return addr, nil
}

// String implements the stringer interface, returning the c32check form.
func (a Address) String() string {
	return "S" + c32CheckEncode(a.Version, a.Hash[:])
}

// ParseAddress converts a c32check encoded address into Address type.
func ParseAddress(s string) (Address, error) {
	if len(s) < 5 || (s[0] != 'S' && s[0] != 's') {
		return Address{}, errors.New("invalid address prefix")
	}
	version, hash, err := c32CheckDecode(s[1:])
	if err != nil {
		return Address{}, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return NewAddress(version, hash)
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

const maxContractNameLength = 128

// ContractID identifies a deployed contract, e.g. ST000000000000000000002AMW42H.pox-4.
type ContractID struct {
	Address Address
	Name    string
}

// ParseContractID splits a fully qualified contract identifier.
func ParseContractID(s string) (ContractID, error) {
	addr, name, ok := strings.Cut(s, ".")
	if !ok {
		return ContractID{}, fmt.Errorf("invalid contract id %q", s)
	}
	if len(name) == 0 || len(name) > maxContractNameLength {
		return ContractID{}, fmt.Errorf("invalid contract name %q", name)
	}
	address, err := ParseAddress(addr)
	if err != nil {
		return ContractID{}, err
	}
	return ContractID{Address: address, Name: name}, nil
}

func (c ContractID) String() string {
	return c.Address.String() + "." + c.Name
}
