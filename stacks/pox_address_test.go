// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stacks

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoxAddressFromPubKey(t *testing.T) {
	pub := mustHex(t, "0390a5cac7c33fda49f70bc1b0866fa0ba7a9440d9de647fecb8132ceb76a94dfa")

	addr, err := PoxAddressFromPubKey(pub, Testnet.BTCParams)
	require.NoError(t, err)
	assert.Equal(t, PoxP2PKH, addr.Version)
	assert.Equal(t, mustHex(t, "6d78de7b0625dfbfc16c3a8a5735f6dc3dc3f2ce"), addr.HashBytes)
	assert.Equal(t, "mqVnk6NPRdhntvfm4hh9vvjiRkFDUuSYsH", addr.String())

	addr, err = PoxAddressFromPubKey(pub, Mainnet.BTCParams)
	require.NoError(t, err)
	assert.Equal(t, "1AyqT3HQccGY7pC9M8in71XPZkeWZ2JA9V", addr.String())
}

func TestParsePoxAddress(t *testing.T) {
	addr, err := ParsePoxAddress("mr1iPkD9N3RJZZxXRk7xF9d36gffa6exNC", &chaincfg.TestNet3Params)
	require.NoError(t, err)
	assert.Equal(t, PoxP2PKH, addr.Version)
	assert.Equal(t, mustHex(t, "7321b74e2b6a7e949e6c4ad313035b1665095017"), addr.HashBytes)

	addr, err = ParsePoxAddress("1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH", &chaincfg.MainNetParams)
	require.NoError(t, err)
	assert.Equal(t, mustHex(t, "751e76e8199196d454941c45d1b3a323f1433bd6"), addr.HashBytes)

	// segwit v0 keyhash from BIP-173
	addr, err = ParsePoxAddress("bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4", &chaincfg.MainNetParams)
	require.NoError(t, err)
	assert.Equal(t, PoxP2WPKH, addr.Version)
	assert.Equal(t, mustHex(t, "751e76e8199196d454941c45d1b3a323f1433bd6"), addr.HashBytes)

	_, err = ParsePoxAddress("1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH", &chaincfg.TestNet3Params)
	assert.Error(t, err)

	_, err = ParsePoxAddress("not-an-address", &chaincfg.TestNet3Params)
	assert.Error(t, err)
}

func TestNetworkByName(t *testing.T) {
	n, err := NetworkByName("")
	require.NoError(t, err)
	assert.Same(t, Testnet, n)
	assert.True(t, n.IsTestnet())

	n, err = NetworkByName("Mainnet")
	require.NoError(t, err)
	assert.Same(t, Mainnet, n)
	assert.False(t, n.IsTestnet())

	_, err = NetworkByName("regtest")
	assert.Error(t, err)
}
