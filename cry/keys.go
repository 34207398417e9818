// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cry

import (
	"crypto/ecdsa"
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// PrivateKey is a secp256k1 key together with the encoding of its public key.
type PrivateKey struct {
	*ecdsa.PrivateKey
	Compressed bool
}

// ParsePrivateKey decodes a hex secret key. 64 characters denote a key whose
// public key is serialized uncompressed; 66 characters ending in "01" denote
// a compressed one.
func ParsePrivateKey(s string) (*PrivateKey, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")

	compressed := false
	switch len(s) {
	case 64:
	case 66:
		if !strings.HasSuffix(s, "01") {
			return nil, errors.New("66 character secret key must end with 01")
		}
		compressed = true
		s = s[:64]
	default:
		return nil, errors.Errorf("invalid secret key length %d", len(s))
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "decode secret key")
	}
	key, err := crypto.ToECDSA(b)
	if err != nil {
		return nil, errors.Wrap(err, "invalid secret key")
	}
	return &PrivateKey{PrivateKey: key, Compressed: compressed}, nil
}

// PublicKeyBytes serializes the public key in the key's own encoding.
func (k *PrivateKey) PublicKeyBytes() []byte {
	if k.Compressed {
		return crypto.CompressPubkey(&k.PublicKey)
	}
	return crypto.FromECDSAPub(&k.PublicKey)
}

// CompressedPublicKey always returns the 33 byte form.
func (k *PrivateKey) CompressedPublicKey() []byte {
	return crypto.CompressPubkey(&k.PublicKey)
}

// Hex returns the secret key in the same textual form ParsePrivateKey accepts.
func (k *PrivateKey) Hex() string {
	s := hex.EncodeToString(crypto.FromECDSA(k.PrivateKey))
	if k.Compressed {
		s += "01"
	}
	return s
}
