// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package tx builds, signs and serializes single-sig contract-call transactions.
package tx

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/stx-tools/pox-stacker/clarity"
	"github.com/stx-tools/pox-stacker/cry"
	"github.com/stx-tools/pox-stacker/stacks"
)

// AnchorMode tells miners which kind of block may include the transaction.
type AnchorMode byte

const (
	AnchorOnChainOnly  AnchorMode = 0x01
	AnchorOffChainOnly AnchorMode = 0x02
	AnchorAny          AnchorMode = 0x03
)

// PostConditionMode decides whether transfers not covered by post conditions are allowed.
type PostConditionMode byte

const (
	PostConditionAllow PostConditionMode = 0x01
	PostConditionDeny  PostConditionMode = 0x02
)

const (
	authTypeStandard    byte = 0x04
	hashModeP2PKH       byte = 0x00
	keyEncodingCompress byte = 0x00
	keyEncodingUncomp   byte = 0x01
	payloadContractCall byte = 0x02
)

// ContractCall is the payload of a transaction that invokes a public function.
type ContractCall struct {
	Contract stacks.ContractID
	Function string
	Args     []clarity.Value
}

// spendingCondition is the single-sig p2pkh authorization of the origin account.
type spendingCondition struct {
	Signer      [stacks.AddressHashLength]byte
	Nonce       uint64
	Fee         uint64
	KeyEncoding byte
	Signature   [cry.SignatureLength]byte
}

// Transaction is an immutable tx type.
type Transaction struct {
	body body

	cache struct {
		id *cry.Hash
	}
}

type body struct {
	Version           byte
	ChainID           uint32
	Auth              spendingCondition
	AnchorMode        AnchorMode
	PostConditionMode PostConditionMode
	Payload           ContractCall
}

// Version returns the transaction version byte (testnet or mainnet).
func (t *Transaction) Version() byte { return t.body.Version }

// ChainID returns the chain id the transaction is bound to.
func (t *Transaction) ChainID() uint32 { return t.body.ChainID }

// Nonce returns the origin account nonce.
func (t *Transaction) Nonce() uint64 { return t.body.Auth.Nonce }

// Fee returns the fee in micro-STX.
func (t *Transaction) Fee() uint64 { return t.body.Auth.Fee }

// AnchorMode returns the anchor mode.
func (t *Transaction) AnchorMode() AnchorMode { return t.body.AnchorMode }

// PostConditionMode returns the post condition mode.
func (t *Transaction) PostConditionMode() PostConditionMode { return t.body.PostConditionMode }

// Payload returns a copy of the contract call.
func (t *Transaction) Payload() ContractCall {
	p := t.body.Payload
	p.Args = append([]clarity.Value(nil), p.Args...)
	return p
}

// Signature returns the VRS signature of the origin, all zero if unsigned.
func (t *Transaction) Signature() []byte {
	return append([]byte(nil), t.body.Auth.Signature[:]...)
}

// Origin returns the address of the origin account using the given address version.
func (t *Transaction) Origin(version byte) stacks.Address {
	return stacks.Address{Version: version, Hash: t.body.Auth.Signer}
}

// ID returns the transaction id: sha512/256 of the serialized transaction.
func (t *Transaction) ID() (cry.Hash, error) {
	if cached := t.cache.id; cached != nil {
		return *cached, nil
	}
	b, err := t.Encode()
	if err != nil {
		return cry.Hash{}, err
	}
	id := cry.Sha512_256(b)
	t.cache.id = &id
	return id, nil
}

// SigningHash returns the initial sighash: the id of the transaction with its
// nonce, fee and signature cleared.
func (t *Transaction) SigningHash() (cry.Hash, error) {
	cleared := Transaction{body: t.body}
	cleared.body.Auth.Nonce = 0
	cleared.body.Auth.Fee = 0
	cleared.body.Auth.Signature = [cry.SignatureLength]byte{}
	return cleared.ID()
}

// PresignHash mixes the fee and nonce into a sighash before the origin signs it.
func (t *Transaction) PresignHash(sighash cry.Hash) cry.Hash {
	var buf [1 + 8 + 8]byte
	buf[0] = authTypeStandard
	binary.BigEndian.PutUint64(buf[1:], t.body.Auth.Fee)
	binary.BigEndian.PutUint64(buf[9:], t.body.Auth.Nonce)
	return cry.Sha512_256(sighash[:], buf[:])
}

// withOrigin returns a copy whose spending condition names the key's owner.
func (t *Transaction) withOrigin(pubKey []byte, compressed bool) *Transaction {
	newTx := Transaction{body: t.body}
	newTx.body.Auth.Signer = cry.Hash160(pubKey)
	newTx.body.Auth.KeyEncoding = keyEncodingUncomp
	if compressed {
		newTx.body.Auth.KeyEncoding = keyEncodingCompress
	}
	newTx.body.Auth.Signature = [cry.SignatureLength]byte{}
	return &newTx
}

// WithSignature create a new tx with signature set.
func (t *Transaction) WithSignature(sig []byte) *Transaction {
	newTx := Transaction{body: t.body}
	copy(newTx.body.Auth.Signature[:], sig)
	return &newTx
}

// Encode serializes the transaction in wire format.
func (t *Transaction) Encode() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte(t.body.Version)
	writeUint32(&buf, t.body.ChainID)

	auth := &t.body.Auth
	buf.WriteByte(authTypeStandard)
	buf.WriteByte(hashModeP2PKH)
	buf.Write(auth.Signer[:])
	writeUint64(&buf, auth.Nonce)
	writeUint64(&buf, auth.Fee)
	buf.WriteByte(auth.KeyEncoding)
	buf.Write(auth.Signature[:])

	buf.WriteByte(byte(t.body.AnchorMode))
	buf.WriteByte(byte(t.body.PostConditionMode))
	// no post conditions
	writeUint32(&buf, 0)

	p := &t.body.Payload
	buf.WriteByte(payloadContractCall)
	buf.WriteByte(p.Contract.Address.Version)
	buf.Write(p.Contract.Address.Hash[:])
	if err := writeName(&buf, p.Contract.Name); err != nil {
		return nil, err
	}
	if err := writeName(&buf, p.Function); err != nil {
		return nil, err
	}
	writeUint32(&buf, uint32(len(p.Args)))
	for i, arg := range p.Args {
		if err := clarity.EncodeTo(&buf, arg); err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
	}
	return buf.Bytes(), nil
}

// Hex returns the serialized transaction as hex, for logging or manual broadcast.
func (t *Transaction) Hex() (string, error) {
	b, err := t.Encode()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func writeName(buf *bytes.Buffer, name string) error {
	if len(name) == 0 || len(name) > 128 {
		return fmt.Errorf("invalid name %q", name)
	}
	buf.WriteByte(byte(len(name)))
	buf.WriteString(name)
	return nil
}
