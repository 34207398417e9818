// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/stx-tools/pox-stacker/cry"
)

// MustSign signs a transaction using the provided private key.
// It panics if the signing process fails, returning a signed transaction upon success.
func MustSign(tx *Transaction, pk *cry.PrivateKey) *Transaction {
	trx, err := Sign(tx, pk)
	if err != nil {
		panic(err)
	}
	return trx
}

// Sign sets the key's owner as origin and signs the presign hash of the transaction.
// It returns the signed transaction or an error if the signing process fails.
func Sign(tx *Transaction, pk *cry.PrivateKey) (*Transaction, error) {
	unsigned := tx.withOrigin(pk.PublicKeyBytes(), pk.Compressed)

	sighash, err := unsigned.SigningHash()
	if err != nil {
		return nil, fmt.Errorf("unable to compute signing hash: %w", err)
	}
	presign := unsigned.PresignHash(sighash)

	sig, err := cry.SignVRS(presign[:], pk.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("unable to sign transaction: %w", err)
	}
	return unsigned.WithSignature(sig), nil
}

// Verify checks that the origin signature was made by the key named in the spending condition.
func Verify(tx *Transaction) error {
	sighash, err := tx.SigningHash()
	if err != nil {
		return err
	}
	presign := tx.PresignHash(sighash)

	pub, err := cry.RecoverVRS(presign[:], tx.body.Auth.Signature[:])
	if err != nil {
		return errors.Wrap(err, "recover signer")
	}
	if tx.body.Auth.KeyEncoding == keyEncodingUncomp {
		key, err := crypto.DecompressPubkey(pub)
		if err != nil {
			return errors.Wrap(err, "decompress signer")
		}
		pub = crypto.FromECDSAPub(key)
	}
	signer := cry.Hash160(pub)
	if !bytes.Equal(signer[:], tx.body.Auth.Signer[:]) {
		return errors.New("signature does not match origin")
	}
	return nil
}
