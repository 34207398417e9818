// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stacking

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/stx-tools/pox-stacker/cry"
	"github.com/stx-tools/pox-stacker/stacks"
)

// Topic names the pox-4 function a signer authorization is valid for.
type Topic string

const (
	TopicStackStx    Topic = "stack-stx"
	TopicStackExtend Topic = "stack-extend"
)

// AuthIDBits is the width of the random authorization id.
const AuthIDBits = 48

var authIDLimit = new(big.Int).Lsh(big.NewInt(1), AuthIDBits)

// AuthRequest is everything a signer authorization commits to.
type AuthRequest struct {
	Topic       Topic
	RewardCycle uint64
	PoxAddress  stacks.PoxAddress
	Period      uint64
	AuthID      *uint256.Int
	MaxAmount   *uint256.Int
	SignerKey   *cry.PrivateKey
}

// NewAuthID draws a uniform id in [0, 2^48) from r, crypto/rand when r is nil.
func NewAuthID(r io.Reader) (*uint256.Int, error) {
	if r == nil {
		r = rand.Reader
	}
	n, err := rand.Int(r, authIDLimit)
	if err != nil {
		return nil, errors.Wrap(err, "draw auth id")
	}
	id, _ := uint256.FromBig(n)
	return id, nil
}

// MaxAmount is 2^128-1: the authorization does not cap the amount.
func MaxAmount() *uint256.Int {
	v := new(uint256.Int).Lsh(uint256.NewInt(1), 128)
	return v.SubUint64(v, 1)
}

// NewAuthRequest builds the authorization for a Stack or Extend decision.
func NewAuthRequest(d Decision, params Params, info *ProtocolInfo, snap *Snapshot, r io.Reader) (*AuthRequest, error) {
	var topic Topic
	switch d.Kind {
	case Stack:
		topic = TopicStackStx
	case Extend:
		topic = TopicStackExtend
	default:
		return nil, errors.Errorf("no authorization for %v", d.Kind)
	}
	id, err := NewAuthID(r)
	if err != nil {
		return nil, err
	}
	return &AuthRequest{
		Topic:       topic,
		RewardCycle: info.RewardCycleID,
		PoxAddress:  snap.Account.PoxAddress,
		Period:      params.StackingCycles,
		AuthID:      id,
		MaxAmount:   MaxAmount(),
		SignerKey:   snap.Account.SignerKey,
	}, nil
}
