// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package builtin binds the PoX boot contract.
package builtin

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/stx-tools/pox-stacker/clarity"
	"github.com/stx-tools/pox-stacker/cry"
	"github.com/stx-tools/pox-stacker/stacking"
	"github.com/stx-tools/pox-stacker/stacks"
	"github.com/stx-tools/pox-stacker/stacksclient"
	"github.com/stx-tools/pox-stacker/tx"
)

const (
	signerDomainName    = "pox-4-signer"
	signerDomainVersion = "1.0.0"

	signerKeyLength = 33
)

// Broadcaster submits signed transactions.
type Broadcaster interface {
	SendTransaction(ctx context.Context, trx *tx.Transaction) (*stacksclient.TxResult, error)
}

// Pox4 is the pox-4 contract on a network.
type Pox4 struct {
	contract stacks.ContractID
	network  *stacks.Network
	client   Broadcaster
}

func NewPox4(contract stacks.ContractID, network *stacks.Network, client Broadcaster) *Pox4 {
	return &Pox4{contract: contract, network: network, client: client}
}

// Contract returns the contract id.
func (p *Pox4) Contract() stacks.ContractID {
	return p.contract
}

// SignerDomain is the structured data domain of signer authorizations.
func (p *Pox4) SignerDomain() clarity.Tuple {
	return clarity.Tuple{
		"name":     clarity.StringASCII(signerDomainName),
		"version":  clarity.StringASCII(signerDomainVersion),
		"chain-id": clarity.UInt64(uint64(p.network.ChainID)),
	}
}

// SignerMessage is the structured data message a signer authorizes.
func (p *Pox4) SignerMessage(req *stacking.AuthRequest) (clarity.Tuple, error) {
	authID, err := clarity.NewUInt(req.AuthID)
	if err != nil {
		return nil, fmt.Errorf("auth id: %w", err)
	}
	maxAmount, err := clarity.NewUInt(req.MaxAmount)
	if err != nil {
		return nil, fmt.Errorf("max amount: %w", err)
	}
	return clarity.Tuple{
		"pox-addr":     PoxAddressTuple(req.PoxAddress),
		"reward-cycle": clarity.UInt64(req.RewardCycle),
		"topic":        clarity.StringASCII(req.Topic),
		"period":       clarity.UInt64(req.Period),
		"auth-id":      authID,
		"max-amount":   maxAmount,
	}, nil
}

// SignerSignature signs req with its signer key. The signature is [R || S || V].
func (p *Pox4) SignerSignature(req *stacking.AuthRequest) ([]byte, error) {
	msg, err := p.SignerMessage(req)
	if err != nil {
		return nil, err
	}
	sig, err := cry.SignStructuredData(p.SignerDomain(), msg, req.SignerKey)
	if err != nil {
		return nil, fmt.Errorf("unable to sign %s authorization: %w", req.Topic, err)
	}
	return sig, nil
}

// PoxAddressTuple renders a reward address as {version: (buff 1), hashbytes: (buff 32)}.
func PoxAddressTuple(addr stacks.PoxAddress) clarity.Tuple {
	return clarity.Tuple{
		"version":   clarity.Buffer{byte(addr.Version)},
		"hashbytes": clarity.Buffer(addr.HashBytes),
	}
}

// StackStxArgs are the arguments of stack-stx.
type StackStxArgs struct {
	Amount          *uint256.Int
	PoxAddress      stacks.PoxAddress
	StartBurnHeight uint64
	LockPeriod      uint64
	SignerSignature []byte
	SignerKey       []byte
	MaxAmount       *uint256.Int
	AuthID          *uint256.Int
}

// StackExtendArgs are the arguments of stack-extend.
type StackExtendArgs struct {
	ExtendCount     uint64
	PoxAddress      stacks.PoxAddress
	SignerSignature []byte
	SignerKey       []byte
	MaxAmount       *uint256.Int
	AuthID          *uint256.Int
}

// StackStx prepares a stack-stx call.
func (p *Pox4) StackStx(args StackStxArgs) (*Call, error) {
	amount, err := clarity.NewUInt(args.Amount)
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}
	auth, err := authArgs(args.SignerSignature, args.SignerKey, args.MaxAmount, args.AuthID)
	if err != nil {
		return nil, err
	}
	return p.call("stack-stx",
		amount,
		PoxAddressTuple(args.PoxAddress),
		clarity.UInt64(args.StartBurnHeight),
		clarity.UInt64(args.LockPeriod),
		auth[0], auth[1], auth[2], auth[3],
	), nil
}

// StackExtend prepares a stack-extend call.
func (p *Pox4) StackExtend(args StackExtendArgs) (*Call, error) {
	auth, err := authArgs(args.SignerSignature, args.SignerKey, args.MaxAmount, args.AuthID)
	if err != nil {
		return nil, err
	}
	return p.call("stack-extend",
		clarity.UInt64(args.ExtendCount),
		PoxAddressTuple(args.PoxAddress),
		auth[0], auth[1], auth[2], auth[3],
	), nil
}

// authArgs are the trailing (signer-sig, signer-key, max-amount, auth-id) arguments.
func authArgs(sig, signerKey []byte, maxAmount, authID *uint256.Int) ([4]clarity.Value, error) {
	if len(sig) != cry.SignatureLength {
		return [4]clarity.Value{}, fmt.Errorf("invalid signer signature length %d", len(sig))
	}
	if len(signerKey) != signerKeyLength {
		return [4]clarity.Value{}, fmt.Errorf("invalid signer key length %d", len(signerKey))
	}
	maxAmt, err := clarity.NewUInt(maxAmount)
	if err != nil {
		return [4]clarity.Value{}, fmt.Errorf("max amount: %w", err)
	}
	id, err := clarity.NewUInt(authID)
	if err != nil {
		return [4]clarity.Value{}, fmt.Errorf("auth id: %w", err)
	}
	return [4]clarity.Value{
		clarity.Some(clarity.Buffer(sig)),
		clarity.Buffer(signerKey),
		maxAmt,
		id,
	}, nil
}

func (p *Pox4) call(function string, args ...clarity.Value) *Call {
	return &Call{pox: p, function: function, args: args}
}

// Call is a prepared pox-4 contract call.
type Call struct {
	pox      *Pox4
	function string
	args     []clarity.Value
}

// Function returns the contract function name.
func (c *Call) Function() string { return c.function }

// Args returns the clarity arguments.
func (c *Call) Args() []clarity.Value {
	return append([]clarity.Value(nil), c.args...)
}

// Build creates the transaction and signs it with key.
func (c *Call) Build(key *cry.PrivateKey, nonce, fee uint64) (*tx.Transaction, error) {
	trx := tx.NewBuilder(c.pox.network).
		Nonce(nonce).
		Fee(fee).
		AnchorMode(tx.AnchorAny).
		PostConditionMode(tx.PostConditionDeny).
		ContractCall(c.pox.contract, c.function, c.args...).
		Build()
	return tx.Sign(trx, key)
}

// Send broadcasts a transaction made by Build.
func (c *Call) Send(ctx context.Context, trx *tx.Transaction) (*stacksclient.TxResult, error) {
	if c.pox.client == nil {
		return nil, fmt.Errorf("%s: no broadcaster", c.function)
	}
	res, err := c.pox.client.SendTransaction(ctx, trx)
	if err != nil {
		return nil, fmt.Errorf("unable to broadcast %s - %w", c.function, err)
	}
	return res, nil
}
