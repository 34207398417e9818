// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cry

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
)

// HashLength length of hash in bytes
const HashLength = 32

// Hash main hash type
type Hash [HashLength]byte

// String implements stringer
func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

// Bytes returns the hash as a byte slice.
func (h Hash) Bytes() []byte {
	return h[:]
}

// ParseHash convert string presented hash into Hash type
func ParseHash(s string) (Hash, error) {
	if len(s) == HashLength*2+2 {
		if strings.ToLower(s[:2]) != "0x" {
			return Hash{}, errors.New("invalid prefix")
		}
		s = s[2:]
	} else if len(s) != HashLength*2 {
		return Hash{}, errors.New("invalid length")
	}

	var h Hash
	if _, err := hex.Decode(h[:], []byte(s)); err != nil {
		return Hash{}, err
	}
	return h, nil
}

// Sha512_256 computes SHA-512/256 over the concatenation of data.
// It is the hash used for transaction ids and sighashes.
func Sha512_256(data ...[]byte) Hash {
	h := sha512.New512_256()
	for _, b := range data {
		h.Write(b)
	}
	var hash Hash
	h.Sum(hash[:0])
	return hash
}

// Sha256 computes SHA-256 over the concatenation of data.
func Sha256(data ...[]byte) Hash {
	h := sha256.New()
	for _, b := range data {
		h.Write(b)
	}
	var hash Hash
	h.Sum(hash[:0])
	return hash
}

// Hash160 computes RIPEMD160(SHA256(b)).
func Hash160(b []byte) [20]byte {
	var out [20]byte
	copy(out[:], btcutil.Hash160(b))
	return out
}
