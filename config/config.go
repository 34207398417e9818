// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package config loads the stacker configuration from TOML or YAML.
package config

import (
	"bytes"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/stx-tools/pox-stacker/account"
	"github.com/stx-tools/pox-stacker/stacking"
	"github.com/stx-tools/pox-stacker/stacks"
	"gopkg.in/yaml.v3"
)

// Format of a configuration file.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.Errorf("unsupported config file extension %q", filepath.Ext(path))
	}
}

// Config is the content of a configuration file.
type Config struct {
	Network  string    `toml:"network" yaml:"network"`
	Node     Node      `toml:"node" yaml:"node"`
	Pox      Pox       `toml:"pox" yaml:"pox"`
	Stackers []Stacker `toml:"stackers" yaml:"stackers"`
}

// Node is the RPC endpoint. Port, when set, is appended to URL.
type Node struct {
	URL  string `toml:"url" yaml:"url"`
	Port uint16 `toml:"port" yaml:"port"`
}

// Pox overrides the protocol parameters. Zero fields take the defaults.
type Pox struct {
	RewardCycleLength  uint64 `toml:"reward_cycle_length" yaml:"reward_cycle_length"`
	PreparePhaseLength uint64 `toml:"prepare_phase_length" yaml:"prepare_phase_length"`
	StackingCycles     uint64 `toml:"stacking_cycles" yaml:"stacking_cycles"`
	BaseFee            uint64 `toml:"base_fee" yaml:"base_fee"`
}

// Stacker holds the keys of one account.
type Stacker struct {
	SecretKey  string `toml:"secret_key" yaml:"secret_key"`
	STXAddress string `toml:"stx_address" yaml:"stx_address"`
	BTCAddress string `toml:"btc_address" yaml:"btc_address"`
	SignerKey  string `toml:"signer_key" yaml:"signer_key"`
}

// DefaultBaseFee is the first fee of a run when the file sets none.
const DefaultBaseFee = 1000

// Load reads, decodes and validates the file at path.
func Load(path string) (*Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return cfg, nil
}

// Parse decodes and validates data. Unknown keys are rejected.
func Parse(data []byte, format Format) (*Config, error) {
	var cfg Config
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, errors.Wrap(err, "decode toml")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return nil, errors.Wrap(err, "decode yaml")
		}
	default:
		return nil, errors.Errorf("unsupported config format %q", format)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := stacking.DefaultParams
	if c.Pox.RewardCycleLength == 0 {
		c.Pox.RewardCycleLength = def.RewardCycleLength
	}
	if c.Pox.PreparePhaseLength == 0 {
		c.Pox.PreparePhaseLength = def.PreparePhaseLength
	}
	if c.Pox.StackingCycles == 0 {
		c.Pox.StackingCycles = def.StackingCycles
	}
	if c.Pox.BaseFee == 0 {
		c.Pox.BaseFee = DefaultBaseFee
	}
}

// Validate checks everything that can be checked without deriving keys.
func (c *Config) Validate() error {
	if _, err := stacks.NetworkByName(c.Network); err != nil {
		return err
	}
	if _, err := c.NodeURL(); err != nil {
		return err
	}
	if err := c.Params().Validate(); err != nil {
		return errors.Wrap(err, "pox")
	}
	if len(c.Stackers) == 0 {
		return errors.New("no stackers configured")
	}
	for i, s := range c.Stackers {
		if s.SecretKey == "" {
			return errors.Errorf("stacker #%d: secret_key is required", i+1)
		}
	}
	return nil
}

// NodeURL is the node base url with the port applied.
func (c *Config) NodeURL() (string, error) {
	if c.Node.URL == "" {
		return "", errors.New("node: url is required")
	}
	u, err := url.Parse(strings.TrimRight(c.Node.URL, "/"))
	if err != nil {
		return "", errors.Wrap(err, "node: url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errors.Errorf("node: unsupported url scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", errors.New("node: url has no host")
	}
	if c.Node.Port != 0 {
		if u.Port() != "" {
			return "", errors.Errorf("node: port set in both url and port")
		}
		u.Host = net.JoinHostPort(u.Hostname(), strconv.Itoa(int(c.Node.Port)))
	}
	return u.String(), nil
}

// NetworkParams returns the selected network.
func (c *Config) NetworkParams() (*stacks.Network, error) {
	return stacks.NetworkByName(c.Network)
}

// Params returns the protocol parameters.
func (c *Config) Params() stacking.Params {
	return stacking.Params{
		RewardCycleLength:  c.Pox.RewardCycleLength,
		PreparePhaseLength: c.Pox.PreparePhaseLength,
		StackingCycles:     c.Pox.StackingCycles,
	}
}

// Credentials returns the stackers in file order.
func (c *Config) Credentials() []account.Credentials {
	creds := make([]account.Credentials, len(c.Stackers))
	for i, s := range c.Stackers {
		creds[i] = account.Credentials{
			SecretKey:  s.SecretKey,
			STXAddress: s.STXAddress,
			BTCAddress: s.BTCAddress,
			SignerKey:  s.SignerKey,
		}
	}
	return creds
}
