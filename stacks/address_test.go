// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stacks

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestAddressString(t *testing.T) {
	tests := []struct {
		version byte
		hash    string
		want    string
	}{
		{TestnetSingleSigVersion, "6d78de7b0625dfbfc16c3a8a5735f6dc3dc3f2ce", "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM"},
		{MainnetSingleSigVersion, "6d78de7b0625dfbfc16c3a8a5735f6dc3dc3f2ce", "SP1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRCBGD7R"},
		{TestnetSingleSigVersion, "7321b74e2b6a7e949e6c4ad313035b1665095017", "ST1SJ3DTE5DN7X54YDH5D64R3BCB6A2AG2ZQ8YPD5"},
		{MainnetSingleSigVersion, "7321b74e2b6a7e949e6c4ad313035b1665095017", "SP1SJ3DTE5DN7X54YDH5D64R3BCB6A2AG2XG1V316"},
		{TestnetSingleSigVersion, "751e76e8199196d454941c45d1b3a323f1433bd6", "ST1THWXQ8368SDN2MJGE4BMDKMCHZ2GSVTSQDA7QF"},
		{TestnetSingleSigVersion, strings.Repeat("00", 20), "ST000000000000000000002AMW42H"},
		{MainnetSingleSigVersion, strings.Repeat("00", 20), "SP000000000000000000002Q6VF78"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			addr, err := NewAddress(tt.version, mustHex(t, tt.hash))
			require.NoError(t, err)
			assert.Equal(t, tt.want, addr.String())

			parsed, err := ParseAddress(tt.want)
			require.NoError(t, err)
			assert.Equal(t, addr, parsed)
		})
	}
}

func TestParseAddressErrors(t *testing.T) {
	_, err := ParseAddress("")
	assert.Error(t, err)

	_, err = ParseAddress("XT1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM")
	assert.Error(t, err)

	// last character flipped
	_, err = ParseAddress("ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGN")
	assert.ErrorIs(t, err, errBadChecksum)

	_, err = ParseAddress("ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGU")
	assert.ErrorIs(t, err, errInvalidC32Char)
}

func TestParseAddressLowerCase(t *testing.T) {
	addr, err := ParseAddress("st1pqhqkv0rjxzfy1dgx8mnsnyve3vgzjsrtpgzgm")
	require.NoError(t, err)
	assert.Equal(t, "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM", addr.String())
}

func TestAddressText(t *testing.T) {
	var addr Address
	require.NoError(t, addr.UnmarshalText([]byte("ST1SJ3DTE5DN7X54YDH5D64R3BCB6A2AG2ZQ8YPD5")))
	text, err := addr.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "ST1SJ3DTE5DN7X54YDH5D64R3BCB6A2AG2ZQ8YPD5", string(text))
}

func TestNewAddressErrors(t *testing.T) {
	_, err := NewAddress(32, make([]byte, 20))
	assert.Error(t, err)
	_, err = NewAddress(TestnetSingleSigVersion, make([]byte, 19))
	assert.Error(t, err)
}

func TestParseContractID(t *testing.T) {
	id, err := ParseContractID("ST000000000000000000002AMW42H.pox-4")
	require.NoError(t, err)
	assert.Equal(t, "pox-4", id.Name)
	assert.Equal(t, TestnetSingleSigVersion, id.Address.Version)
	assert.Equal(t, [20]byte{}, id.Address.Hash)
	assert.Equal(t, "ST000000000000000000002AMW42H.pox-4", id.String())

	_, err = ParseContractID("ST000000000000000000002AMW42H")
	assert.Error(t, err)
	_, err = ParseContractID("ST000000000000000000002AMW42H.")
	assert.Error(t, err)
	_, err = ParseContractID("bogus.pox-4")
	assert.Error(t, err)
}

func TestC32RoundTrip(t *testing.T) {
	for _, data := range [][]byte{{}, {0}, {0, 0, 1}, {0xff, 0xee}, mustHex(t, "01020304050607")} {
		decoded, err := c32Decode(c32Encode(data))
		require.NoError(t, err)
		assert.Equal(t, data, decoded)
	}
}
