// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cry

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	decredecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
)

// SignatureLength is the length of a recoverable signature.
const SignatureLength = 65

// compactHeader is the offset SignCompact adds to the recovery id for compressed keys.
const compactHeader = 27 + 4

// SignRSV signs a 32 byte hash, returning [R || S || V] where V is the recovery id.
// This is the layout structured data signatures use.
func SignRSV(hash []byte, key *ecdsa.PrivateKey) ([]byte, error) {
	sig, err := crypto.Sign(hash, key)
	if err != nil {
		return nil, fmt.Errorf("unable to sign hash: %w", err)
	}
	return sig, nil
}

// SignVRS signs a 32 byte hash, returning [V || R || S] where V is the recovery id.
// This is the layout transaction spending conditions use.
func SignVRS(hash []byte, key *ecdsa.PrivateKey) ([]byte, error) {
	if len(hash) != 32 {
		return nil, fmt.Errorf("hash is required to be exactly 32 bytes (%d)", len(hash))
	}
	priv := secp256k1.PrivKeyFromBytes(math.PaddedBigBytes(key.D, 32))
	defer priv.Zero()

	sig := decredecdsa.SignCompact(priv, hash, true)
	sig[0] -= compactHeader
	return sig, nil
}

// RecoverVRS returns the compressed public key that produced a VRS signature.
func RecoverVRS(hash, sig []byte) ([]byte, error) {
	if len(sig) != SignatureLength {
		return nil, fmt.Errorf("invalid signature length %d", len(sig))
	}
	if sig[0] > 3 {
		return nil, fmt.Errorf("invalid recovery id %d", sig[0])
	}
	compact := make([]byte, SignatureLength)
	copy(compact, sig)
	compact[0] += compactHeader

	pub, _, err := decredecdsa.RecoverCompact(compact, hash)
	if err != nil {
		return nil, err
	}
	return pub.SerializeCompressed(), nil
}

// RecoverRSV returns the compressed public key that produced an RSV signature.
func RecoverRSV(hash, sig []byte) ([]byte, error) {
	pub, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return nil, err
	}
	return crypto.CompressPubkey(pub), nil
}
