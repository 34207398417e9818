// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package clarity implements the subset of Clarity values that contract calls
// and structured data signing need, with their consensus serialization.
package clarity

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/holiman/uint256"
	"github.com/stx-tools/pox-stacker/stacks"
)

// Type is the one byte type prefix of a serialized value.
type Type byte

const (
	TypeInt               Type = 0x00
	TypeUInt              Type = 0x01
	TypeBuffer            Type = 0x02
	TypeTrue              Type = 0x03
	TypeFalse             Type = 0x04
	TypeStandardPrincipal Type = 0x05
	TypeContractPrincipal Type = 0x06
	TypeResponseOk        Type = 0x07
	TypeResponseErr       Type = 0x08
	TypeNone              Type = 0x09
	TypeSome              Type = 0x0a
	TypeList              Type = 0x0b
	TypeTuple             Type = 0x0c
	TypeStringASCII       Type = 0x0d
	TypeStringUTF8        Type = 0x0e
)

// Value is a Clarity value.
type Value interface {
	Type() Type
	String() string
}

type (
	// UInt is a 128 bit unsigned integer.
	UInt struct{ v uint256.Int }
	// Buffer is a byte buffer.
	Buffer []byte
	// Bool is true or false.
	Bool bool
	// StandardPrincipal is an account principal.
	StandardPrincipal stacks.Address
	// ContractPrincipal is a contract principal.
	ContractPrincipal stacks.ContractID
	// Optional is none or (some value). A nil Value is none.
	Optional struct{ Value Value }
	// List is a homogeneous sequence.
	List []Value
	// Tuple maps names to values; entries are serialized in sorted name order.
	Tuple map[string]Value
	// StringASCII is an ascii string.
	StringASCII string
)

// maxUInt128 is 2^128-1.
var maxUInt128 = func() *uint256.Int {
	v := new(uint256.Int).Lsh(uint256.NewInt(1), 128)
	return v.SubUint64(v, 1)
}()

// MaxUInt128 returns a copy of 2^128-1.
func MaxUInt128() *uint256.Int { return maxUInt128.Clone() }

// NewUInt creates a uint from a 256 bit integer. It fails when v exceeds 128 bits.
func NewUInt(v *uint256.Int) (UInt, error) {
	if v.Gt(maxUInt128) {
		return UInt{}, fmt.Errorf("uint out of range: %v", v)
	}
	return UInt{v: *v}, nil
}

// UInt64 creates a uint from an uint64.
func UInt64(v uint64) UInt {
	return UInt{v: *uint256.NewInt(v)}
}

// None returns the empty optional.
func None() Optional { return Optional{} }

// Some wraps v in an optional.
func Some(v Value) Optional { return Optional{Value: v} }

// Int returns a copy of the integer value.
func (u UInt) Int() *uint256.Int { return u.v.Clone() }

func (UInt) Type() Type              { return TypeUInt }
func (Buffer) Type() Type            { return TypeBuffer }
func (StandardPrincipal) Type() Type { return TypeStandardPrincipal }
func (ContractPrincipal) Type() Type { return TypeContractPrincipal }
func (List) Type() Type              { return TypeList }
func (Tuple) Type() Type             { return TypeTuple }
func (StringASCII) Type() Type       { return TypeStringASCII }

func (b Bool) Type() Type {
	if b {
		return TypeTrue
	}
	return TypeFalse
}

func (o Optional) Type() Type {
	if o.Value == nil {
		return TypeNone
	}
	return TypeSome
}

func (u UInt) String() string { return "u" + u.v.Dec() }
func (b Buffer) String() string {
	return "0x" + hex.EncodeToString(b)
}
func (b Bool) String() string { return fmt.Sprint(bool(b)) }
func (p StandardPrincipal) String() string {
	return "'" + stacks.Address(p).String()
}
func (p ContractPrincipal) String() string {
	return "'" + stacks.ContractID(p).String()
}
func (s StringASCII) String() string { return fmt.Sprintf("%q", string(s)) }

func (o Optional) String() string {
	if o.Value == nil {
		return "none"
	}
	return "(some " + o.Value.String() + ")"
}

func (l List) String() string {
	items := make([]string, 0, len(l))
	for _, v := range l {
		items = append(items, v.String())
	}
	return "(list " + strings.Join(items, " ") + ")"
}

func (t Tuple) String() string {
	var b strings.Builder
	b.WriteString("(tuple")
	for _, k := range t.keys() {
		fmt.Fprintf(&b, " (%s %s)", k, t[k])
	}
	b.WriteString(")")
	return b.String()
}

func (t Tuple) keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
