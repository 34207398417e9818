// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package testnode

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stx-tools/pox-stacker/stacks"
	"github.com/stx-tools/pox-stacker/stacksclient/httpclient"
)

func TestNodeLifecycle(t *testing.T) {
	node, err := NewDefaultNode()
	require.NoError(t, err)

	assert.Error(t, node.Stop())
	require.NoError(t, node.Start())
	assert.Error(t, node.Start())
	require.NotNil(t, node.APIServer())
	require.NoError(t, node.Stop())
	assert.Nil(t, node.APIServer())
}

func TestNodeEndpoints(t *testing.T) {
	addr, err := stacks.ParseAddress("ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM")
	require.NoError(t, err)

	node, err := NewNodeBuilder().
		WithBurnHeight(250).
		WithThreshold(42).
		WithAccount(addr, 1_000_000_000_000, 0, 0, 9).
		Build()
	require.NoError(t, err)
	require.NoError(t, node.Start())
	defer node.Stop()

	url := node.APIServer().URL

	res, err := http.Get(url + "/v2/pox")
	require.NoError(t, err)
	var pox httpclient.PoxInfo
	require.NoError(t, json.NewDecoder(res.Body).Decode(&pox))
	res.Body.Close()
	assert.Equal(t, uint64(250), pox.CurrentBurnchainBlockHeight)
	assert.Equal(t, uint64(12), pox.RewardCycleID)
	assert.Equal(t, uint64(42), pox.NextCycle.MinThresholdUstx)

	res, err = http.Get(url + "/v2/accounts/" + addr.String() + "?proof=0")
	require.NoError(t, err)
	var acc httpclient.Account
	require.NoError(t, json.NewDecoder(res.Body).Decode(&acc))
	res.Body.Close()
	assert.Equal(t, "0x0000000000000000000000e8d4a51000", acc.Balance)
	assert.Equal(t, uint64(9), acc.Nonce)

	node.FailAccount(addr)
	res, err = http.Get(url + "/v2/accounts/" + addr.String())
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)

	res, err = http.Post(url+"/v2/transactions", "application/octet-stream", bytes.NewReader([]byte{0x80}))
	require.NoError(t, err)
	var rejection httpclient.BroadcastRejection
	require.NoError(t, json.NewDecoder(res.Body).Decode(&rejection))
	res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Deserialization", rejection.Reason)
	assert.Empty(t, node.Transactions())
}
