// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stacks

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"math/big"
	"strings"
)

const c32Alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

var (
	errInvalidC32Char = errors.New("invalid c32 character")
	errBadChecksum    = errors.New("c32check checksum mismatch")
)

// c32Encode encodes data as a big-endian base-32 number. Every leading zero byte
// is kept as a single '0' character.
func c32Encode(data []byte) string {
	zeros := 0
	for zeros < len(data) && data[zeros] == 0 {
		zeros++
	}

	n := new(big.Int).SetBytes(data)
	digit := new(big.Int)
	mask := big.NewInt(31)

	var out []byte
	for n.Sign() > 0 {
		digit.And(n, mask)
		out = append(out, c32Alphabet[digit.Int64()])
		n.Rsh(n, 5)
	}
	for k := 0; k < zeros; k++ {
		out = append(out, '0')
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

func c32Normalize(s string) string {
	s = strings.ToUpper(s)
	s = strings.ReplaceAll(s, "O", "0")
	s = strings.ReplaceAll(s, "L", "1")
	return strings.ReplaceAll(s, "I", "1")
}

// c32Decode reverses c32Encode.
func c32Decode(s string) ([]byte, error) {
	s = c32Normalize(s)

	zeros := 0
	for zeros < len(s) && s[zeros] == '0' {
		zeros++
	}

	n := new(big.Int)
	for i := 0; i < len(s); i++ {
		idx := strings.IndexByte(c32Alphabet, s[i])
		if idx < 0 {
			return nil, errInvalidC32Char
		}
		n.Lsh(n, 5)
		n.Or(n, big.NewInt(int64(idx)))
	}
	return append(make([]byte, zeros), n.Bytes()...), nil
}

func c32Checksum(version byte, data []byte) []byte {
	first := sha256.Sum256(append([]byte{version}, data...))
	second := sha256.Sum256(first[:])
	return second[:4]
}

// c32CheckEncode renders version and data with a 4 byte double-sha256 checksum.
func c32CheckEncode(version byte, data []byte) string {
	payload := append(append([]byte{}, data...), c32Checksum(version, data)...)
	return string(c32Alphabet[version&31]) + c32Encode(payload)
}

func c32CheckDecode(s string) (byte, []byte, error) {
	if len(s) < 2 {
		return 0, nil, errors.New("c32check string too short")
	}
	s = c32Normalize(s)
	version := strings.IndexByte(c32Alphabet, s[0])
	if version < 0 {
		return 0, nil, errInvalidC32Char
	}
	payload, err := c32Decode(s[1:])
	if err != nil {
		return 0, nil, err
	}
	if len(payload) < 4 {
		return 0, nil, errors.New("c32check payload too short")
	}
	data, checksum := payload[:len(payload)-4], payload[len(payload)-4:]
	if !bytes.Equal(checksum, c32Checksum(byte(version), data)) {
		return 0, nil, errBadChecksum
	}
	return byte(version), data, nil
}
