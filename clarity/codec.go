// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clarity

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/holiman/uint256"
	"github.com/stx-tools/pox-stacker/stacks"
)

const (
	maxNameLength = 128
	// maxDecodeDepth bounds nesting when decoding untrusted input.
	maxDecodeDepth = 32
)

var errUnexpectedEOF = errors.New("unexpected end of clarity value")

// Encode serializes v in consensus format.
func Encode(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeTo(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MustEncode is Encode that panics on error. Only for values known to be valid.
func MustEncode(v Value) []byte {
	b, err := Encode(v)
	if err != nil {
		panic(err)
	}
	return b
}

// EncodeTo writes the serialization of v into buf.
func EncodeTo(buf *bytes.Buffer, v Value) error {
	if v == nil {
		return errors.New("nil clarity value")
	}
	buf.WriteByte(byte(v.Type()))

	switch v := v.(type) {
	case UInt:
		b := v.v.Bytes32()
		buf.Write(b[16:])
	case Buffer:
		writeLen(buf, len(v))
		buf.Write(v)
	case Bool:
	case StandardPrincipal:
		writePrincipal(buf, stacks.Address(v))
	case ContractPrincipal:
		writePrincipal(buf, v.Address)
		if err := writeName(buf, v.Name); err != nil {
			return err
		}
	case Optional:
		if v.Value != nil {
			return EncodeTo(buf, v.Value)
		}
	case List:
		writeLen(buf, len(v))
		for _, item := range v {
			if err := EncodeTo(buf, item); err != nil {
				return err
			}
		}
	case Tuple:
		writeLen(buf, len(v))
		for _, k := range v.keys() {
			if err := writeName(buf, k); err != nil {
				return err
			}
			if err := EncodeTo(buf, v[k]); err != nil {
				return fmt.Errorf("tuple entry %q: %w", k, err)
			}
		}
	case StringASCII:
		for i := 0; i < len(v); i++ {
			if v[i] > 0x7e || (v[i] < 0x20 && v[i] != '\t' && v[i] != '\n' && v[i] != '\r') {
				return fmt.Errorf("non ascii character at %d", i)
			}
		}
		writeLen(buf, len(v))
		buf.WriteString(string(v))
	default:
		return fmt.Errorf("unsupported clarity value %T", v)
	}
	return nil
}

func writeLen(buf *bytes.Buffer, n int) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(n))
	buf.Write(b[:])
}

func writePrincipal(buf *bytes.Buffer, addr stacks.Address) {
	buf.WriteByte(addr.Version)
	buf.Write(addr.Hash[:])
}

func writeName(buf *bytes.Buffer, name string) error {
	if len(name) == 0 || len(name) > maxNameLength {
		return fmt.Errorf("invalid clarity name %q", name)
	}
	buf.WriteByte(byte(len(name)))
	buf.WriteString(name)
	return nil
}

// Decode parses a single serialized value. Trailing bytes are an error.
func Decode(data []byte) (Value, error) {
	r := bytes.NewReader(data)
	v, err := DecodeFrom(r)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%d trailing bytes after clarity value", r.Len())
	}
	return v, nil
}

// DecodeFrom reads one serialized value from r.
func DecodeFrom(r *bytes.Reader) (Value, error) {
	return decode(r, 0)
}

func decode(r *bytes.Reader, depth int) (Value, error) {
	if depth > maxDecodeDepth {
		return nil, errors.New("clarity value nested too deeply")
	}
	prefix, err := r.ReadByte()
	if err != nil {
		return nil, errUnexpectedEOF
	}

	switch Type(prefix) {
	case TypeUInt:
		b, err := readN(r, 16)
		if err != nil {
			return nil, err
		}
		return UInt{v: *new(uint256.Int).SetBytes(b)}, nil
	case TypeBuffer:
		b, err := readPrefixed(r)
		if err != nil {
			return nil, err
		}
		return Buffer(b), nil
	case TypeTrue:
		return Bool(true), nil
	case TypeFalse:
		return Bool(false), nil
	case TypeStandardPrincipal:
		addr, err := readPrincipal(r)
		if err != nil {
			return nil, err
		}
		return StandardPrincipal(addr), nil
	case TypeContractPrincipal:
		addr, err := readPrincipal(r)
		if err != nil {
			return nil, err
		}
		name, err := readName(r)
		if err != nil {
			return nil, err
		}
		return ContractPrincipal{Address: addr, Name: name}, nil
	case TypeNone:
		return None(), nil
	case TypeSome:
		v, err := decode(r, depth+1)
		if err != nil {
			return nil, err
		}
		return Some(v), nil
	case TypeList:
		n, err := readLen(r)
		if err != nil {
			return nil, err
		}
		list := make(List, 0, min(n, r.Len()))
		for k := 0; k < n; k++ {
			v, err := decode(r, depth+1)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case TypeTuple:
		n, err := readLen(r)
		if err != nil {
			return nil, err
		}
		tuple := make(Tuple, min(n, r.Len()))
		for k := 0; k < n; k++ {
			name, err := readName(r)
			if err != nil {
				return nil, err
			}
			v, err := decode(r, depth+1)
			if err != nil {
				return nil, err
			}
			tuple[name] = v
		}
		return tuple, nil
	case TypeStringASCII:
		b, err := readPrefixed(r)
		if err != nil {
			return nil, err
		}
		return StringASCII(b), nil
	default:
		return nil, fmt.Errorf("unsupported clarity type prefix 0x%02x", prefix)
	}
}

func readN(r *bytes.Reader, n int) ([]byte, error) {
	if n > r.Len() {
		return nil, errUnexpectedEOF
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, errUnexpectedEOF
	}
	return b, nil
}

func readLen(r *bytes.Reader) (int, error) {
	b, err := readN(r, 4)
	if err != nil {
		return 0, err
	}
	return int(binary.BigEndian.Uint32(b)), nil
}

func readPrefixed(r *bytes.Reader) ([]byte, error) {
	n, err := readLen(r)
	if err != nil {
		return nil, err
	}
	return readN(r, n)
}

func readPrincipal(r *bytes.Reader) (stacks.Address, error) {
	b, err := readN(r, 1+stacks.AddressHashLength)
	if err != nil {
		return stacks.Address{}, err
	}
	return stacks.NewAddress(b[0], b[1:])
}

func readName(r *bytes.Reader) (string, error) {
	n, err := r.ReadByte()
	if err != nil {
		return "", errUnexpectedEOF
	}
	b, err := readN(r, int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
