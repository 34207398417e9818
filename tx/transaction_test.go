// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stx-tools/pox-stacker/clarity"
	"github.com/stx-tools/pox-stacker/cry"
	"github.com/stx-tools/pox-stacker/stacks"
)

const testKey = "753b7cc01a1a2e86221266a154af739463fce51219d97e4f856cd7200c3bd2a601"

func newTestTx(t *testing.T) *Transaction {
	pox, err := stacks.ParseContractID("ST000000000000000000002AMW42H.pox-4")
	require.NoError(t, err)
	return NewBuilder(stacks.Testnet).
		Nonce(3).
		Fee(1000).
		ContractCall(pox, "stack-extend", clarity.UInt64(10)).
		Build()
}

func TestEncodeUnsigned(t *testing.T) {
	trx := newTestTx(t)

	raw, err := trx.Hex()
	require.NoError(t, err)
	assert.Equal(t, "80800000000400"+
		"0000000000000000000000000000000000000000"+
		"0000000000000003"+"00000000000003e8"+"00"+
		"0000000000000000000000000000000000000000000000000000000000000000"+
		"0000000000000000000000000000000000000000000000000000000000000000"+"00"+
		"03"+"02"+"00000000"+
		"02"+"1a0000000000000000000000000000000000000000"+
		"05706f782d34"+"0c737461636b2d657874656e64"+
		"00000001"+"010000000000000000000000000000000a", raw)

	id, err := trx.ID()
	require.NoError(t, err)
	assert.Equal(t, "0x437ef2d68cbdda30da6d5210a8db1d00f378656a79f06091944612c180372b16", id.String())
}

func TestSignAndVerify(t *testing.T) {
	key, err := cry.ParsePrivateKey(testKey)
	require.NoError(t, err)

	signed, err := Sign(newTestTx(t), key)
	require.NoError(t, err)
	assert.NoError(t, Verify(signed))

	assert.Equal(t, "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM", signed.Origin(stacks.TestnetSingleSigVersion).String())
	assert.Equal(t, uint64(3), signed.Nonce())
	assert.Equal(t, uint64(1000), signed.Fee())

	// the fee is committed to by the signature
	tampered := signed.WithSignature(signed.Signature())
	tampered.body.Auth.Fee = 1001
	assert.Error(t, Verify(tampered))

	other, err := cry.ParsePrivateKey("7287ba251d44a4d3fd9276c88ce34c5c52a038955511cccaf77e61068649c17801")
	require.NoError(t, err)
	forged := MustSign(newTestTx(t), other)
	forged.body.Auth.Signer = signed.body.Auth.Signer
	assert.Error(t, Verify(forged))
}

func TestSignUncompressed(t *testing.T) {
	key, err := cry.ParsePrivateKey(testKey[:64])
	require.NoError(t, err)

	signed := MustSign(newTestTx(t), key)
	assert.Equal(t, keyEncodingUncomp, signed.body.Auth.KeyEncoding)
	assert.NoError(t, Verify(signed))
}

func TestSigningHashIgnoresFeeAndNonce(t *testing.T) {
	a := newTestTx(t)
	b := NewBuilder(stacks.Testnet).
		Nonce(99).
		Fee(5).
		ContractCall(a.Payload().Contract, "stack-extend", clarity.UInt64(10)).
		Build()

	ha, err := a.SigningHash()
	require.NoError(t, err)
	hb, err := b.SigningHash()
	require.NoError(t, err)
	assert.Equal(t, ha, hb)
	assert.NotEqual(t, a.PresignHash(ha), b.PresignHash(hb))
}

func TestDecode(t *testing.T) {
	key, err := cry.ParsePrivateKey(testKey)
	require.NoError(t, err)
	signed := MustSign(newTestTx(t), key)

	raw, err := signed.Encode()
	require.NoError(t, err)

	decoded, err := Decode(raw)
	require.NoError(t, err)
	assert.NoError(t, Verify(decoded))

	wantID, _ := signed.ID()
	gotID, err := decoded.ID()
	require.NoError(t, err)
	assert.Equal(t, wantID, gotID)
	assert.Equal(t, "stack-extend", decoded.Payload().Function)
	assert.Equal(t, AnchorAny, decoded.AnchorMode())
	assert.Equal(t, PostConditionDeny, decoded.PostConditionMode())
	assert.Equal(t, stacks.Testnet.ChainID, decoded.ChainID())
	assert.Equal(t, stacks.Testnet.TxVersion, decoded.Version())

	_, err = Decode(raw[:len(raw)-1])
	assert.Error(t, err)
	_, err = Decode(append(raw, 0))
	assert.Error(t, err)

	bad := append([]byte(nil), raw...)
	bad[5] = 0x05
	_, err = Decode(bad)
	assert.Error(t, err)

	short, _ := hex.DecodeString("8080")
	_, err = Decode(short)
	assert.Error(t, err)
}

func TestEncodeInvalidName(t *testing.T) {
	pox, err := stacks.ParseContractID("ST000000000000000000002AMW42H.pox-4")
	require.NoError(t, err)
	_, err = NewBuilder(stacks.Testnet).ContractCall(pox, "").Build().Encode()
	assert.Error(t, err)
}
