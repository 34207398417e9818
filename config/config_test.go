// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stx-tools/pox-stacker/account"
	"github.com/stx-tools/pox-stacker/stacking"
	"github.com/stx-tools/pox-stacker/stacks"
)

const tomlConfig = `
[node]
url = "http://localhost"
port = 20443

[[stackers]]
secret_key = "753b7cc01a1a2e86221266a154af739463fce51219d97e4f856cd7200c3bd2a601"
stx_address = "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM"

[[stackers]]
secret_key = "7287ba251d44a4d3fd9276c88ce34c5c52a038955511cccaf77e61068649c17801"
btc_address = "mqVnk6NPRdhntvfm4hh9vvjiRkFDUuSYsH"
`

const yamlConfig = `
network: mainnet
node:
  url: https://api.example.org
pox:
  reward_cycle_length: 2100
  prepare_phase_length: 100
  stacking_cycles: 12
  base_fee: 5000
stackers:
  - secret_key: 7287ba251d44a4d3fd9276c88ce34c5c52a038955511cccaf77e61068649c17801
    signer_key: 753b7cc01a1a2e86221266a154af739463fce51219d97e4f856cd7200c3bd2a601
`

func TestParseTOML(t *testing.T) {
	cfg, err := Parse([]byte(tomlConfig), FormatTOML)
	require.NoError(t, err)

	network, err := cfg.NetworkParams()
	require.NoError(t, err)
	assert.Equal(t, stacks.Testnet, network)

	nodeURL, err := cfg.NodeURL()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:20443", nodeURL)

	assert.Equal(t, stacking.DefaultParams, cfg.Params())
	assert.Equal(t, uint64(DefaultBaseFee), cfg.Pox.BaseFee)

	creds := cfg.Credentials()
	require.Len(t, creds, 2)
	assert.Equal(t, "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM", creds[0].STXAddress)
	assert.Equal(t, "mqVnk6NPRdhntvfm4hh9vvjiRkFDUuSYsH", creds[1].BTCAddress)

	accounts, err := account.DeriveAll(creds, network)
	require.NoError(t, err)
	assert.Equal(t, "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM", accounts[0].StackingAddress.String())
	assert.Equal(t, accounts[0].PoxAddress, accounts[1].PoxAddress)
}

func TestParseYAML(t *testing.T) {
	cfg, err := Parse([]byte(yamlConfig), FormatYAML)
	require.NoError(t, err)

	network, err := cfg.NetworkParams()
	require.NoError(t, err)
	assert.Equal(t, stacks.Mainnet, network)

	nodeURL, err := cfg.NodeURL()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.org", nodeURL)

	assert.Equal(t, stacking.Params{RewardCycleLength: 2100, PreparePhaseLength: 100, StackingCycles: 12}, cfg.Params())
	assert.Equal(t, uint64(5000), cfg.Pox.BaseFee)
	require.Len(t, cfg.Stackers, 1)
	assert.NotEmpty(t, cfg.Stackers[0].SignerKey)
}

func TestParseErrors(t *testing.T) {
	const key = `secret_key = "753b7cc01a1a2e86221266a154af739463fce51219d97e4f856cd7200c3bd2a601"`
	tests := []struct {
		name string
		in   string
		msg  string
	}{
		{"syntax", "[node", "decode toml"},
		{"unknown key", "[node]\nurl = \"http://localhost\"\nhost = \"x\"\n[[stackers]]\n" + key, "decode toml"},
		{"no node url", "[[stackers]]\n" + key, "url is required"},
		{"bad scheme", "[node]\nurl = \"ftp://localhost\"\n[[stackers]]\n" + key, "scheme"},
		{"port twice", "[node]\nurl = \"http://localhost:1\"\nport = 2\n[[stackers]]\n" + key, "port"},
		{"no stackers", "[node]\nurl = \"http://localhost\"", "no stackers"},
		{"no secret", "[node]\nurl = \"http://localhost\"\n[[stackers]]\nstx_address = \"ST1\"", "secret_key is required"},
		{"bad network", "network = \"regtest\"\n[node]\nurl = \"http://localhost\"\n[[stackers]]\n" + key, "unknown network"},
		{"bad prepare phase", "[node]\nurl = \"http://localhost\"\n[pox]\nprepare_phase_length = 20\n[[stackers]]\n" + key, "prepare phase"},
		{"too many cycles", "[node]\nurl = \"http://localhost\"\n[pox]\nstacking_cycles = 13\n[[stackers]]\n" + key, "stacking cycles"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in), FormatTOML)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}

	_, err := Parse([]byte("node:\n  url: http://localhost\n  host: x\n"), FormatYAML)
	assert.ErrorContains(t, err, "decode yaml")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "stacking.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(tomlConfig), 0o600))
	cfg, err := Load(tomlPath)
	require.NoError(t, err)
	assert.Len(t, cfg.Stackers, 2)

	ymlPath := filepath.Join(dir, "stacking.yml")
	require.NoError(t, os.WriteFile(ymlPath, []byte(yamlConfig), 0o600))
	cfg, err = Load(ymlPath)
	require.NoError(t, err)
	assert.Equal(t, "mainnet", cfg.Network)

	_, err = Load(filepath.Join(dir, "stacking.json"))
	assert.ErrorContains(t, err, "unsupported config file extension")

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorContains(t, err, "read config")
}
