// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stacksclient is the typed node client the stacker talks to.
package stacksclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/stx-tools/pox-stacker/stacking"
	"github.com/stx-tools/pox-stacker/stacks"
	"github.com/stx-tools/pox-stacker/stacksclient/httpclient"
	"github.com/stx-tools/pox-stacker/tx"
)

// AccountStatus is the on-chain state of an account.
type AccountStatus struct {
	Balance      *uint256.Int
	Locked       *uint256.Int
	UnlockHeight uint64
	Nonce        uint64
}

// TxResult is the outcome of a broadcast. Exactly one of TxID and Error is set.
type TxResult struct {
	TxID   string
	Error  string
	Reason string
}

// Accepted reports whether the node accepted the transaction into its mempool.
func (r *TxResult) Accepted() bool {
	return r.Error == ""
}

type Client struct {
	httpConn *httpclient.Client
}

func New(url string) *Client {
	return &Client{httpConn: httpclient.New(url)}
}

// NewWithHTTP creates a client that sends requests with c.
func NewWithHTTP(url string, c *http.Client) *Client {
	return &Client{httpConn: httpclient.NewWithHTTP(url, c)}
}

// RawHTTPClient returns the underlying HTTP client.
func (c *Client) RawHTTPClient() *httpclient.Client {
	return c.httpConn
}

// PoxInfo reads the PoX state into protocol info.
func (c *Client) PoxInfo(ctx context.Context) (*stacking.ProtocolInfo, error) {
	info, err := c.httpConn.GetPoxInfo(ctx)
	if err != nil {
		return nil, err
	}
	return &stacking.ProtocolInfo{
		ContractID:            info.ContractID,
		CurrentBurnHeight:     info.CurrentBurnchainBlockHeight,
		RewardCycleID:         info.RewardCycleID,
		RewardCycleLength:     info.RewardCycleLength,
		PreparePhaseLength:    info.PreparePhaseBlockLength,
		FirstBurnHeight:       info.FirstBurnchainBlockHeight,
		NextCycleMinThreshold: uint256.NewInt(info.NextCycle.MinThresholdUstx),
	}, nil
}

// AccountStatus reads balance, lock and nonce of addr.
func (c *Client) AccountStatus(ctx context.Context, addr stacks.Address) (*AccountStatus, error) {
	acc, err := c.httpConn.GetAccount(ctx, addr.String())
	if err != nil {
		return nil, err
	}
	balance, err := parseUint128(acc.Balance)
	if err != nil {
		return nil, errors.Wrap(err, "balance")
	}
	locked, err := parseUint128(acc.Locked)
	if err != nil {
		return nil, errors.Wrap(err, "locked")
	}
	return &AccountStatus{
		Balance:      balance,
		Locked:       locked,
		UnlockHeight: acc.UnlockHeight,
		Nonce:        acc.Nonce,
	}, nil
}

// SendTransaction broadcasts trx. Node rejections come back as a result with Error set.
func (c *Client) SendTransaction(ctx context.Context, trx *tx.Transaction) (*TxResult, error) {
	raw, err := trx.Encode()
	if err != nil {
		return nil, errors.Wrap(err, "encode transaction")
	}
	txID, rejection, err := c.httpConn.SendTransaction(ctx, raw)
	if err != nil {
		return nil, err
	}
	if rejection != nil {
		return &TxResult{TxID: rejection.TxID, Error: rejection.Error, Reason: rejection.Reason}, nil
	}
	return &TxResult{TxID: txID}, nil
}

// parseUint128 decodes the zero padded hex integers of the accounts endpoint.
func parseUint128(s string) (*uint256.Int, error) {
	if s == "" || s == "0x" {
		return new(uint256.Int), nil
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, err
	}
	if len(b) > 16 {
		return nil, fmt.Errorf("value %s exceeds 128 bits", s)
	}
	return new(uint256.Int).SetBytes(b), nil
}
