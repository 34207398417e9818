// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
	"github.com/stx-tools/pox-stacker/clarity"
	"github.com/stx-tools/pox-stacker/stacks"
)

var errShortTx = errors.New("transaction too short")

// Decode parses a serialized transaction. Only the forms this package builds are accepted.
func Decode(data []byte) (*Transaction, error) {
	r := bytes.NewReader(data)
	var b body

	head, err := readN(r, 1+4+1+1)
	if err != nil {
		return nil, err
	}
	b.Version = head[0]
	b.ChainID = binary.BigEndian.Uint32(head[1:5])
	if head[5] != authTypeStandard {
		return nil, errors.Errorf("unsupported auth type 0x%02x", head[5])
	}
	if head[6] != hashModeP2PKH {
		return nil, errors.Errorf("unsupported hash mode 0x%02x", head[6])
	}

	signer, err := readN(r, len(b.Auth.Signer))
	if err != nil {
		return nil, err
	}
	copy(b.Auth.Signer[:], signer)
	nums, err := readN(r, 8+8+1)
	if err != nil {
		return nil, err
	}
	b.Auth.Nonce = binary.BigEndian.Uint64(nums[:8])
	b.Auth.Fee = binary.BigEndian.Uint64(nums[8:16])
	b.Auth.KeyEncoding = nums[16]
	if b.Auth.KeyEncoding != keyEncodingCompress && b.Auth.KeyEncoding != keyEncodingUncomp {
		return nil, errors.Errorf("invalid key encoding 0x%02x", b.Auth.KeyEncoding)
	}
	sig, err := readN(r, len(b.Auth.Signature))
	if err != nil {
		return nil, err
	}
	copy(b.Auth.Signature[:], sig)

	modes, err := readN(r, 2+4)
	if err != nil {
		return nil, err
	}
	b.AnchorMode = AnchorMode(modes[0])
	b.PostConditionMode = PostConditionMode(modes[1])
	if n := binary.BigEndian.Uint32(modes[2:]); n != 0 {
		return nil, errors.Errorf("unsupported post conditions (%d)", n)
	}

	kind, err := r.ReadByte()
	if err != nil {
		return nil, errShortTx
	}
	if kind != payloadContractCall {
		return nil, errors.Errorf("unsupported payload type 0x%02x", kind)
	}
	addr, err := readN(r, 1+stacks.AddressHashLength)
	if err != nil {
		return nil, err
	}
	b.Payload.Contract.Address, err = stacks.NewAddress(addr[0], addr[1:])
	if err != nil {
		return nil, err
	}
	if b.Payload.Contract.Name, err = readName(r); err != nil {
		return nil, err
	}
	if b.Payload.Function, err = readName(r); err != nil {
		return nil, err
	}
	count, err := readN(r, 4)
	if err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(count)
	for i := uint32(0); i < n; i++ {
		v, err := clarity.DecodeFrom(r)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d", i)
		}
		b.Payload.Args = append(b.Payload.Args, v)
	}
	if r.Len() != 0 {
		return nil, errors.Errorf("%d trailing bytes after transaction", r.Len())
	}
	return &Transaction{body: b}, nil
}

func readN(r *bytes.Reader, n int) ([]byte, error) {
	if n > r.Len() {
		return nil, errShortTx
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, errShortTx
	}
	return b, nil
}

func readName(r *bytes.Reader) (string, error) {
	n, err := r.ReadByte()
	if err != nil {
		return "", errShortTx
	}
	b, err := readN(r, int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
